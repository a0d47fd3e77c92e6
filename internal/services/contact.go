package services

import (
	"context"
	"fmt"
	"log/slog"

	"codedcode/internal/domain"
	"codedcode/internal/metrics"
	"codedcode/internal/validation"
)

type contactService struct {
	logger   *slog.Logger
	repo     domain.ContactRepository
	notifier domain.Notifier
}

// NewContactService returns a ContactService. notifier may be nil to disable emails.
func NewContactService(logger *slog.Logger, repo domain.ContactRepository, notifier domain.Notifier) domain.ContactService {
	return &contactService{logger: logger, repo: repo, notifier: notifier}
}

// Submit validates and stores one contact message. Duplicates are allowed.
func (s *contactService) Submit(ctx context.Context, input map[string]any, meta domain.SubmissionMeta) (*domain.SubmissionReceipt, error) {
	c, err := validation.Contact(input)
	if err != nil {
		metrics.RecordSubmission(string(domain.KindContact), metrics.OutcomeInvalid)
		return nil, err
	}
	c.IPAddress = meta.IPAddress
	c.UserAgent = meta.UserAgent

	if err := s.repo.Create(ctx, c); err != nil {
		metrics.RecordSubmission(string(domain.KindContact), metrics.OutcomeFailed)
		return nil, fmt.Errorf("store contact submission: %w", err)
	}
	metrics.RecordSubmission(string(domain.KindContact), metrics.OutcomeAccepted)
	s.logger.InfoContext(ctx, "contact submission stored", "id", c.ID, "subject", c.Subject)

	if s.notifier != nil {
		if err := s.notifier.ContactReceived(context.WithoutCancel(ctx), c); err != nil {
			s.logger.WarnContext(ctx, "contact notification failed", "id", c.ID, "err", err)
		}
	}
	return &domain.SubmissionReceipt{ID: c.ID, SubmittedAt: c.SubmittedAt}, nil
}

func (s *contactService) List(ctx context.Context, filter domain.ContactFilter, page domain.PaginationParams) ([]*domain.ContactSubmission, int, error) {
	out, total, err := s.repo.List(ctx, filter, page)
	if err != nil {
		return nil, 0, fmt.Errorf("list contact submissions: %w", err)
	}
	return out, total, nil
}

func (s *contactService) GetByID(ctx context.Context, id int64) (*domain.ContactSubmission, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get contact submission %d: %w", id, err)
	}
	return c, nil
}

// UpdateStatus moves a submission to any status in the enum; transitions are unconstrained.
func (s *contactService) UpdateStatus(ctx context.Context, id int64, status string) (*domain.ContactSubmission, error) {
	st, err := validation.ContactStatus(status)
	if err != nil {
		return nil, err
	}
	c, err := s.repo.UpdateStatus(ctx, id, st)
	if err != nil {
		return nil, fmt.Errorf("update contact submission %d: %w", id, err)
	}
	s.logger.InfoContext(ctx, "contact status updated", "id", id, "status", st)
	return c, nil
}

func (s *contactService) Stats(ctx context.Context) (*domain.ContactStats, error) {
	st, err := s.repo.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("contact stats: %w", err)
	}
	return st, nil
}
