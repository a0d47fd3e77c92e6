package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(ctx context.Context, to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// ContactNoticeEmailData is rendered into the admin notice for a new contact message.
type ContactNoticeEmailData struct {
	Submission *ContactSubmission
	AdminEmail string
}

// MembershipEmailData is rendered into the applicant confirmation and the admin notice.
type MembershipEmailData struct {
	Application *MembershipApplication
	AdminEmail  string
}

// Notifier sends the emails that follow a stored submission.
// Implementations report failures to the caller; submission flows log them and carry on.
type Notifier interface {
	ContactReceived(ctx context.Context, c *ContactSubmission) error
	MembershipReceived(ctx context.Context, m *MembershipApplication) error
}
