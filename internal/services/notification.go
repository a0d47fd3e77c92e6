package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"codedcode/internal/domain"
	"codedcode/internal/metrics"
)

// Email template names.
const (
	TemplateContactAdmin           = "contact_admin"
	TemplateMembershipConfirmation = "membership_confirmation"
	TemplateMembershipAdmin        = "membership_admin"
)

type notificationService struct {
	logger     *slog.Logger
	mailer     domain.Mailer
	renderer   domain.EmailTemplateRenderer
	adminEmail string
}

// NewNotificationService returns a Notifier that renders templates and sends them with mailer.
// Admin notices are skipped when adminEmail is empty.
func NewNotificationService(logger *slog.Logger, mailer domain.Mailer, renderer domain.EmailTemplateRenderer, adminEmail string) domain.Notifier {
	return &notificationService{logger: logger, mailer: mailer, renderer: renderer, adminEmail: adminEmail}
}

// ContactReceived notifies the admin mailbox about a new contact message.
func (s *notificationService) ContactReceived(ctx context.Context, c *domain.ContactSubmission) error {
	if c == nil {
		return fmt.Errorf("contact submission is nil")
	}
	if s.adminEmail == "" {
		return nil
	}
	data := &domain.ContactNoticeEmailData{Submission: c, AdminEmail: s.adminEmail}
	return s.send(ctx, TemplateContactAdmin, s.adminEmail, data)
}

// MembershipReceived confirms receipt to the applicant and notifies the admin mailbox.
// The confirmation goes to the address the applicant typed, not its canonical form.
// Both emails are attempted; their errors are joined.
func (s *notificationService) MembershipReceived(ctx context.Context, m *domain.MembershipApplication) error {
	if m == nil {
		return fmt.Errorf("membership application is nil")
	}
	to := m.DeliveryEmail
	if to == "" {
		to = m.Email
	}
	data := &domain.MembershipEmailData{Application: m, AdminEmail: s.adminEmail}
	err := s.send(ctx, TemplateMembershipConfirmation, to, data)
	if s.adminEmail != "" {
		err = errors.Join(err, s.send(ctx, TemplateMembershipAdmin, s.adminEmail, data))
	}
	return err
}

func (s *notificationService) send(ctx context.Context, template, to string, data any) (err error) {
	defer func() { metrics.RecordNotification(template, err) }()
	subject, htmlBody, textBody, err := s.renderer.Render(template, data)
	if err != nil {
		return fmt.Errorf("failed to render %s template: %w", template, err)
	}
	if err := s.mailer.Send(ctx, to, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send %s email: %w", template, err)
	}
	s.logger.DebugContext(ctx, "notification sent", "template", template)
	return nil
}
