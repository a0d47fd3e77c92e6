package validation

import (
	"regexp"

	"codedcode/internal/domain"
)

var nameRegexp = regexp.MustCompile(`^[A-Za-z\s]+$`)

func nameField(name, label string) Field {
	return Field{Name: name, Rules: []Rule{
		Trim(),
		Length(2, 50, label+" must be between 2 and 50 characters"),
		Matches(nameRegexp, label+" can only contain letters and spaces"),
	}}
}

func emailField() Field {
	return Field{Name: "email", Rules: []Rule{
		Trim(),
		Email("Please provide a valid email address"),
		NormalizeEmail(),
		MaxLength(100, "Email must not exceed 100 characters"),
	}}
}

func phoneField() Field {
	return Field{Name: "phone", Optional: true, Rules: []Rule{
		Trim(),
		MobilePhone("Please provide a valid phone number"),
	}}
}

// ContactSchema is the rule set of the public contact form.
var ContactSchema = Schema{
	nameField("firstName", "First name"),
	nameField("lastName", "Last name"),
	emailField(),
	phoneField(),
	{Name: "subject", Rules: []Rule{
		Trim(),
		Length(5, 100, "Subject must be between 5 and 100 characters"),
		OneOf(domain.Strings(domain.ContactSubjects), "Please select a valid subject"),
	}},
	{Name: "message", Rules: []Rule{
		Trim(),
		Length(10, 1000, "Message must be between 10 and 1000 characters"),
	}},
}

// Contact validates a contact form payload and returns the record to store.
// Status and timestamps are left for the store to assign.
func Contact(input map[string]any) (*domain.ContactSubmission, error) {
	v, err := ContactSchema.Validate(input)
	if err != nil {
		return nil, err
	}
	return &domain.ContactSubmission{
		FirstName: v.String("firstName"),
		LastName:  v.String("lastName"),
		Email:     v.String("email"),
		Phone:     v.OptionalString("phone"),
		Subject:   domain.ContactSubject(v.String("subject")),
		Message:   v.String("message"),
	}, nil
}
