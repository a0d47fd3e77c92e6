package domain

import "slices"

// ContactSubject is the topic selected on the contact form.
type ContactSubject string

const (
	SubjectGeneral       ContactSubject = "general"
	SubjectMembership    ContactSubject = "membership"
	SubjectEvents        ContactSubject = "events"
	SubjectCollaboration ContactSubject = "collaboration"
	SubjectTechnical     ContactSubject = "technical"
	SubjectFeedback      ContactSubject = "feedback"
)

// ContactSubjects lists every legal ContactSubject in display order.
var ContactSubjects = []ContactSubject{
	SubjectGeneral, SubjectMembership, SubjectEvents, SubjectCollaboration, SubjectTechnical, SubjectFeedback,
}

// ContactStatus is the admin workflow state of a contact submission.
type ContactStatus string

const (
	ContactPending   ContactStatus = "pending"
	ContactRead      ContactStatus = "read"
	ContactResponded ContactStatus = "responded"
)

var ContactStatuses = []ContactStatus{ContactPending, ContactRead, ContactResponded}

// Valid reports whether s is one of ContactStatuses.
func (s ContactStatus) Valid() bool { return slices.Contains(ContactStatuses, s) }

// Valid reports whether s is one of ContactSubjects.
func (s ContactSubject) Valid() bool { return slices.Contains(ContactSubjects, s) }

// MembershipStatus is the review state of a membership application.
type MembershipStatus string

const (
	MembershipPending   MembershipStatus = "pending"
	MembershipApproved  MembershipStatus = "approved"
	MembershipRejected  MembershipStatus = "rejected"
	MembershipReviewing MembershipStatus = "reviewing"
)

var MembershipStatuses = []MembershipStatus{MembershipPending, MembershipApproved, MembershipRejected, MembershipReviewing}

func (s MembershipStatus) Valid() bool { return slices.Contains(MembershipStatuses, s) }

// MembershipType distinguishes current students from alumni.
type MembershipType string

const (
	MembershipStudent MembershipType = "student"
	MembershipAlumni  MembershipType = "alumni"
)

var MembershipTypes = []MembershipType{MembershipStudent, MembershipAlumni}

func (t MembershipType) Valid() bool { return slices.Contains(MembershipTypes, t) }

// ProgrammingExperience is the applicant's self-assessed skill level.
type ProgrammingExperience string

const (
	ExperienceBeginner     ProgrammingExperience = "beginner"
	ExperienceIntermediate ProgrammingExperience = "intermediate"
	ExperienceAdvanced     ProgrammingExperience = "advanced"
)

var ProgrammingExperiences = []ProgrammingExperience{ExperienceBeginner, ExperienceIntermediate, ExperienceAdvanced}

func (e ProgrammingExperience) Valid() bool { return slices.Contains(ProgrammingExperiences, e) }

type YearOfStudy string

var YearsOfStudy = []YearOfStudy{
	"1st Year", "2nd Year", "3rd Year", "4th Year", "Graduate", "Post Graduate", "PhD",
}

func (y YearOfStudy) Valid() bool { return slices.Contains(YearsOfStudy, y) }

type HeardAboutUs string

var HeardAboutUsSources = []HeardAboutUs{
	"social-media", "friends", "college-notice", "website", "event", "teacher", "other",
}

func (h HeardAboutUs) Valid() bool { return slices.Contains(HeardAboutUsSources, h) }

// Interest is a tag from the fixed interest vocabulary.
type Interest string

var Interests = []Interest{
	"web-development", "mobile-development", "data-science",
	"machine-learning", "artificial-intelligence", "cybersecurity",
	"blockchain", "devops", "ui-ux-design", "competitive-programming",
	"open-source", "entrepreneurship", "game-development", "iot",
}

func (i Interest) Valid() bool { return slices.Contains(Interests, i) }

// Strings converts a typed enum list to plain strings.
func Strings[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}
