package validation

import (
	"regexp"
	"strings"

	"codedcode/internal/domain"
)

var (
	githubRegexp   = regexp.MustCompile(`^https?://github\.com/[a-zA-Z0-9_-]+/?$`)
	linkedinRegexp = regexp.MustCompile(`^https?://(www\.)?linkedin\.com/in/[a-zA-Z0-9_-]+/?$`)
)

func optionalText(name string, max int, message string) Field {
	return Field{Name: name, Optional: true, Rules: []Rule{Trim(), MaxLength(max, message)}}
}

func optionalChoice(name string, allowed []string, message string) Field {
	return Field{Name: name, Optional: true, Rules: []Rule{Trim(), OneOf(allowed, message)}}
}

// MembershipSchema is the rule set of the membership application form.
var MembershipSchema = Schema{
	nameField("firstName", "First name"),
	nameField("lastName", "Last name"),
	emailField(),
	phoneField(),
	optionalText("studentId", 20, "Student ID must not exceed 20 characters"),
	optionalText("course", 100, "Course name must not exceed 100 characters"),
	optionalChoice("yearOfStudy", domain.Strings(domain.YearsOfStudy), "Please select a valid year of study"),
	optionalText("branch", 100, "Branch must not exceed 100 characters"),
	{Name: "membershipType", Rules: []Rule{
		Trim(),
		OneOf(domain.Strings(domain.MembershipTypes), "Membership type must be either student or alumni"),
	}},
	optionalChoice("programmingExperience", domain.Strings(domain.ProgrammingExperiences),
		"Programming experience must be beginner, intermediate, or advanced"),
	{Name: "interests", Optional: true, Rules: []Rule{
		List("Interests must be an array"),
		Each(domain.Strings(domain.Interests), "Invalid interests selected"),
	}},
	{Name: "githubProfile", Optional: true, Rules: []Rule{
		Trim(),
		Matches(githubRegexp, "Please provide a valid GitHub profile URL"),
	}},
	{Name: "linkedinProfile", Optional: true, Rules: []Rule{
		Trim(),
		Matches(linkedinRegexp, "Please provide a valid LinkedIn profile URL"),
	}},
	optionalText("whyJoin", 1000, "Why join response must not exceed 1000 characters"),
	optionalText("previousExperience", 1000, "Previous experience must not exceed 1000 characters"),
	optionalText("expectations", 1000, "Expectations must not exceed 1000 characters"),
	optionalChoice("heardAboutUs", domain.Strings(domain.HeardAboutUsSources), "Please select how you heard about us"),
	{Name: "agreeTerms", Rules: []Rule{
		True("You must agree to the terms and conditions"),
	}},
	{Name: "newsletterSubscribe", Optional: true, Rules: []Rule{
		Boolean("Newsletter subscription must be true or false"),
	}},
}

// Membership validates an application payload and returns the record to store.
func Membership(input map[string]any) (*domain.MembershipApplication, error) {
	v, err := MembershipSchema.Validate(input)
	if err != nil {
		return nil, err
	}
	submitted, _ := input["email"].(string)
	return &domain.MembershipApplication{
		FirstName:             v.String("firstName"),
		LastName:              v.String("lastName"),
		Email:                 v.String("email"),
		DeliveryEmail:         strings.TrimSpace(submitted),
		Phone:                 v.OptionalString("phone"),
		StudentID:             v.OptionalString("studentId"),
		Course:                v.OptionalString("course"),
		YearOfStudy:           optionalEnum[domain.YearOfStudy](v.OptionalString("yearOfStudy")),
		Branch:                v.OptionalString("branch"),
		MembershipType:        domain.MembershipType(v.String("membershipType")),
		ProgrammingExperience: optionalEnum[domain.ProgrammingExperience](v.OptionalString("programmingExperience")),
		Interests:             toEnums[domain.Interest](v.Strings("interests")),
		GithubProfile:         v.OptionalString("githubProfile"),
		LinkedinProfile:       v.OptionalString("linkedinProfile"),
		WhyJoin:               v.OptionalString("whyJoin"),
		PreviousExperience:    v.OptionalString("previousExperience"),
		Expectations:          v.OptionalString("expectations"),
		HeardAboutUs:          optionalEnum[domain.HeardAboutUs](v.OptionalString("heardAboutUs")),
		AgreeTerms:            v.Bool("agreeTerms"),
		NewsletterSubscribe:   v.OptionalBool("newsletterSubscribe"),
	}, nil
}
