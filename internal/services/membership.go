package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"codedcode/internal/domain"
	"codedcode/internal/metrics"
	"codedcode/internal/validation"
)

// TopInterests caps the popular-interest breakdown on the dashboard.
const TopInterests = 10

// ReceiptMessage is returned to applicants after a successful submission.
const ReceiptMessage = "Your application has been received and will be reviewed by our team. You will receive a confirmation email shortly."

type membershipService struct {
	logger   *slog.Logger
	repo     domain.MembershipRepository
	notifier domain.Notifier
	now      func() time.Time
}

// NewMembershipService returns a MembershipService. notifier may be nil to disable emails.
func NewMembershipService(logger *slog.Logger, repo domain.MembershipRepository, notifier domain.Notifier) domain.MembershipService {
	return &membershipService{logger: logger, repo: repo, notifier: notifier, now: time.Now}
}

// Submit validates an application, rejects a known email, then stores it.
// The existence check and the insert are separate statements; a concurrent submission that
// wins the race is caught by the unique constraint and also reported as ErrDuplicateEmail.
func (s *membershipService) Submit(ctx context.Context, input map[string]any, meta domain.SubmissionMeta) (*domain.SubmissionReceipt, error) {
	kind := string(domain.KindMembership)
	m, err := validation.Membership(input)
	if err != nil {
		metrics.RecordSubmission(kind, metrics.OutcomeInvalid)
		return nil, err
	}

	exists, err := s.repo.ExistsByEmail(ctx, m.Email)
	if err != nil {
		metrics.RecordSubmission(kind, metrics.OutcomeFailed)
		return nil, fmt.Errorf("check membership email: %w", err)
	}
	if exists {
		metrics.RecordSubmission(kind, metrics.OutcomeDuplicate)
		return nil, domain.ErrDuplicateEmail
	}

	m.IPAddress = meta.IPAddress
	m.UserAgent = meta.UserAgent
	if err := s.repo.Create(ctx, m); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			metrics.RecordSubmission(kind, metrics.OutcomeDuplicate)
			s.logger.InfoContext(ctx, "membership insert lost duplicate email race")
		} else {
			metrics.RecordSubmission(kind, metrics.OutcomeFailed)
		}
		return nil, fmt.Errorf("store membership application: %w", err)
	}
	metrics.RecordSubmission(kind, metrics.OutcomeAccepted)
	s.logger.InfoContext(ctx, "membership application stored", "id", m.ID, "type", m.MembershipType)

	if s.notifier != nil {
		if err := s.notifier.MembershipReceived(context.WithoutCancel(ctx), m); err != nil {
			s.logger.WarnContext(ctx, "membership notification failed", "id", m.ID, "err", err)
		}
	}
	return &domain.SubmissionReceipt{ID: m.ID, SubmittedAt: m.SubmittedAt, Message: ReceiptMessage}, nil
}

func (s *membershipService) List(ctx context.Context, filter domain.MembershipFilter, page domain.PaginationParams) ([]*domain.MembershipApplication, int, error) {
	out, total, err := s.repo.List(ctx, filter, page)
	if err != nil {
		return nil, 0, fmt.Errorf("list membership applications: %w", err)
	}
	return out, total, nil
}

func (s *membershipService) GetByID(ctx context.Context, id int64) (*domain.MembershipApplication, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get membership application %d: %w", id, err)
	}
	return m, nil
}

// UpdateStatus applies an admin decision. Only a move to approved stamps approvedAt and
// approvedBy; later changes leave the stamp in place.
func (s *membershipService) UpdateStatus(ctx context.Context, id int64, in domain.MembershipStatusInput) (*domain.MembershipApplication, error) {
	status, err := validation.MembershipStatus(in.Status)
	if err != nil {
		return nil, err
	}
	approvedBy := strings.TrimSpace(in.ApprovedBy)
	notes := strings.TrimSpace(in.Notes)
	var verr domain.ValidationError
	if utf8.RuneCountInString(approvedBy) > 100 {
		verr.Fields = append(verr.Fields, domain.FieldError{Field: "approvedBy", Message: "Approved by must not exceed 100 characters"})
	}
	if utf8.RuneCountInString(notes) > 1000 {
		verr.Fields = append(verr.Fields, domain.FieldError{Field: "notes", Message: "Notes must not exceed 1000 characters"})
	}
	if len(verr.Fields) > 0 {
		return nil, &verr
	}

	change := domain.MembershipStatusChange{Status: status}
	if status == domain.MembershipApproved {
		now := s.now().UTC()
		if approvedBy == "" {
			approvedBy = domain.DefaultApprover
		}
		change.ApprovedAt = &now
		change.ApprovedBy = &approvedBy
	}
	if notes != "" {
		change.Notes = &notes
	}

	m, err := s.repo.UpdateStatus(ctx, id, change)
	if err != nil {
		return nil, fmt.Errorf("update membership application %d: %w", id, err)
	}
	s.logger.InfoContext(ctx, "membership status updated", "id", id, "status", status)
	return m, nil
}

func (s *membershipService) Stats(ctx context.Context) (*domain.MembershipStats, error) {
	st, err := s.repo.Stats(ctx, TopInterests)
	if err != nil {
		return nil, fmt.Errorf("membership stats: %w", err)
	}
	return st, nil
}

// EmailExists reports whether an application already uses email. The lookup uses the same
// canonical form as submissions, so aliases of a stored address are reported as taken.
func (s *membershipService) EmailExists(ctx context.Context, email string) (bool, error) {
	email = strings.TrimSpace(email)
	if !validation.IsEmail(email) {
		return false, domain.NewValidationError("email", "Invalid email format")
	}
	exists, err := s.repo.ExistsByEmail(ctx, validation.CanonicalEmail(email))
	if err != nil {
		return false, fmt.Errorf("check membership email: %w", err)
	}
	return exists, nil
}
