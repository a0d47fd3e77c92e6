package domain

import (
	"context"
	"time"
)

// DefaultApprover is recorded as approvedBy when an approval names nobody.
const DefaultApprover = "Admin"

// MembershipApplication is one application submitted through the join form.
// swagger:model MembershipApplication
type MembershipApplication struct {
	ID                    int64                  `json:"id"`
	FirstName             string                 `json:"firstName"`
	LastName              string                 `json:"lastName"`
	Email                 string                 `json:"email"`
	Phone                 *string                `json:"phone"`
	StudentID             *string                `json:"studentId"`
	Course                *string                `json:"course"`
	YearOfStudy           *YearOfStudy           `json:"yearOfStudy"`
	Branch                *string                `json:"branch"`
	MembershipType        MembershipType         `json:"membershipType"`
	ProgrammingExperience *ProgrammingExperience `json:"programmingExperience"`
	Interests             []Interest             `json:"interests"`
	GithubProfile         *string                `json:"githubProfile"`
	LinkedinProfile       *string                `json:"linkedinProfile"`
	WhyJoin               *string                `json:"whyJoin"`
	PreviousExperience    *string                `json:"previousExperience"`
	Expectations          *string                `json:"expectations"`
	HeardAboutUs          *HeardAboutUs          `json:"heardAboutUs"`
	AgreeTerms            bool                   `json:"agreeTerms"`
	NewsletterSubscribe   *bool                  `json:"newsletterSubscribe"`
	Status                MembershipStatus       `json:"status"`
	ApprovedAt            *time.Time             `json:"approvedAt"`
	ApprovedBy            *string                `json:"approvedBy"`
	Notes                 *string                `json:"notes"`
	IPAddress             string                 `json:"ipAddress,omitempty"`
	UserAgent             string                 `json:"userAgent,omitempty"`
	SubmittedAt           time.Time              `json:"submittedAt"`

	// DeliveryEmail is the address as submitted. Email holds its canonical form for
	// duplicate detection; confirmations go here. It is not stored.
	DeliveryEmail string `json:"-"`
}

// MembershipFilter narrows a membership listing. Zero values mean "no constraint".
type MembershipFilter struct {
	Status                MembershipStatus
	MembershipType        MembershipType
	ProgrammingExperience ProgrammingExperience
	Search                string
}

// MembershipStatusInput is the admin request to move an application to a new status.
type MembershipStatusInput struct {
	Status     string
	ApprovedBy string
	Notes      string
}

// MembershipStatusChange is the validated mutation handed to the repository.
// ApprovedAt and ApprovedBy are only set when Status is approved; nil leaves the stored values untouched.
type MembershipStatusChange struct {
	Status     MembershipStatus
	ApprovedAt *time.Time
	ApprovedBy *string
	Notes      *string
}

// MembershipOverview holds dashboard counters for membership applications.
// swagger:model MembershipOverview
type MembershipOverview struct {
	TotalApplications     int `json:"totalApplications"`
	TodayApplications     int `json:"todayApplications"`
	WeekApplications      int `json:"weekApplications"`
	MonthApplications     int `json:"monthApplications"`
	PendingApplications   int `json:"pendingApplications"`
	ApprovedApplications  int `json:"approvedApplications"`
	RejectedApplications  int `json:"rejectedApplications"`
	ReviewingApplications int `json:"reviewingApplications"`
	StudentApplications   int `json:"studentApplications"`
	AlumniApplications    int `json:"alumniApplications"`
}

// ExperienceCount is one row of the experience breakdown; a nil level counts applicants who left it blank.
type ExperienceCount struct {
	ProgrammingExperience *ProgrammingExperience `json:"programmingExperience"`
	Count                 int                    `json:"count"`
}

type InterestCount struct {
	Interest Interest `json:"interest"`
	Count    int      `json:"count"`
}

// MembershipStats is the membership dashboard payload.
// swagger:model MembershipStats
type MembershipStats struct {
	Overview            MembershipOverview `json:"overview"`
	ExperienceBreakdown []ExperienceCount  `json:"experienceBreakdown"`
	PopularInterests    []InterestCount    `json:"popularInterests"`
}

// MembershipRepository defines storage for membership applications.
type MembershipRepository interface {
	// Create inserts the application and sets its ID, Status and SubmittedAt.
	// A lost race on the unique email constraint returns ErrDuplicateEmail.
	Create(ctx context.Context, m *MembershipApplication) error
	GetByID(ctx context.Context, id int64) (*MembershipApplication, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	List(ctx context.Context, filter MembershipFilter, page PaginationParams) ([]*MembershipApplication, int, error)
	UpdateStatus(ctx context.Context, id int64, change MembershipStatusChange) (*MembershipApplication, error)
	// Stats aggregates counters; breakdowns cover the last 30 days and interests are capped at topInterests.
	Stats(ctx context.Context, topInterests int) (*MembershipStats, error)
}

// MembershipService defines the business logic behind the membership endpoints.
type MembershipService interface {
	Submit(ctx context.Context, input map[string]any, meta SubmissionMeta) (*SubmissionReceipt, error)
	List(ctx context.Context, filter MembershipFilter, page PaginationParams) ([]*MembershipApplication, int, error)
	GetByID(ctx context.Context, id int64) (*MembershipApplication, error)
	UpdateStatus(ctx context.Context, id int64, in MembershipStatusInput) (*MembershipApplication, error)
	Stats(ctx context.Context) (*MembershipStats, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}
