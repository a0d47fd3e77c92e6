package domain

import (
	"context"
	"time"
)

// ContactSubmission is one message sent through the public contact form.
// swagger:model ContactSubmission
type ContactSubmission struct {
	ID          int64          `json:"id"`
	FirstName   string         `json:"firstName"`
	LastName    string         `json:"lastName"`
	Email       string         `json:"email"`
	Phone       *string        `json:"phone"`
	Subject     ContactSubject `json:"subject"`
	Message     string         `json:"message"`
	Status      ContactStatus  `json:"status"`
	IPAddress   string         `json:"ipAddress,omitempty"`
	UserAgent   string         `json:"userAgent,omitempty"`
	SubmittedAt time.Time      `json:"submittedAt"`
}

// SubmissionMeta is request context captured alongside a submission for diagnostics.
type SubmissionMeta struct {
	IPAddress string
	UserAgent string
}

// SubmissionReceipt is returned to the submitter after a successful insert.
// swagger:model SubmissionReceipt
type SubmissionReceipt struct {
	ID          int64     `json:"id"`
	SubmittedAt time.Time `json:"submittedAt"`
	Message     string    `json:"message,omitempty"`
}

// ContactFilter narrows a contact listing. Zero values mean "no constraint".
type ContactFilter struct {
	Status ContactStatus
	Search string
}

// ContactOverview holds dashboard counters for contact submissions.
// swagger:model ContactOverview
type ContactOverview struct {
	TotalSubmissions     int `json:"totalSubmissions"`
	TodaySubmissions     int `json:"todaySubmissions"`
	WeekSubmissions      int `json:"weekSubmissions"`
	MonthSubmissions     int `json:"monthSubmissions"`
	PendingSubmissions   int `json:"pendingSubmissions"`
	ReadSubmissions      int `json:"readSubmissions"`
	RespondedSubmissions int `json:"respondedSubmissions"`
}

// SubjectCount is one row of the contact subject breakdown.
type SubjectCount struct {
	Subject ContactSubject `json:"subject"`
	Count   int            `json:"count"`
}

// ContactStats is the contact dashboard payload.
// swagger:model ContactStats
type ContactStats struct {
	Overview         ContactOverview `json:"overview"`
	SubjectBreakdown []SubjectCount  `json:"subjectBreakdown"`
}

// ContactRepository defines storage for contact submissions.
type ContactRepository interface {
	// Create inserts the submission and sets its ID, Status and SubmittedAt from the stored row.
	Create(ctx context.Context, c *ContactSubmission) error
	GetByID(ctx context.Context, id int64) (*ContactSubmission, error)
	// List returns one page ordered by submission time (newest first) and the total match count.
	List(ctx context.Context, filter ContactFilter, page PaginationParams) ([]*ContactSubmission, int, error)
	UpdateStatus(ctx context.Context, id int64, status ContactStatus) (*ContactSubmission, error)
	Stats(ctx context.Context) (*ContactStats, error)
}

// ContactService defines the business logic behind the contact endpoints.
type ContactService interface {
	Submit(ctx context.Context, input map[string]any, meta SubmissionMeta) (*SubmissionReceipt, error)
	List(ctx context.Context, filter ContactFilter, page PaginationParams) ([]*ContactSubmission, int, error)
	GetByID(ctx context.Context, id int64) (*ContactSubmission, error)
	UpdateStatus(ctx context.Context, id int64, status string) (*ContactSubmission, error)
	Stats(ctx context.Context) (*ContactStats, error)
}
