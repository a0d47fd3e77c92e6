package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"codedcode/internal/domain"
)

const contactColumns = `id, first_name, last_name, email, phone, subject, message, status,
	COALESCE(ip_address, ''), COALESCE(user_agent, ''), submitted_at`

type contactRepository struct {
	store
}

// NewContactRepository returns a ContactRepository backed by db. Each call is bounded by timeout.
func NewContactRepository(db *sql.DB, timeout time.Duration) domain.ContactRepository {
	return &contactRepository{store: newStore(db, timeout)}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanContact(row rowScanner) (*domain.ContactSubmission, error) {
	c := &domain.ContactSubmission{}
	var phone sql.NullString
	err := row.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email, &phone, &c.Subject, &c.Message,
		&c.Status, &c.IPAddress, &c.UserAgent, &c.SubmittedAt)
	if err != nil {
		return nil, err
	}
	c.Phone = nullString(phone)
	return c, nil
}

func (r *contactRepository) Create(ctx context.Context, c *domain.ContactSubmission) (err error) {
	ctx, cancel := r.begin(ctx)
	defer cancel()
	defer func(start time.Time) { err = r.done("contact.create", start, err) }(time.Now())

	query := `
		INSERT INTO contact_submissions (first_name, last_name, email, phone, subject, message, ip_address, user_agent)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, status, submitted_at
	`
	return r.DB.QueryRowContext(ctx, query,
		c.FirstName, c.LastName, c.Email, c.Phone, c.Subject, c.Message, c.IPAddress, c.UserAgent,
	).Scan(&c.ID, &c.Status, &c.SubmittedAt)
}

func (r *contactRepository) GetByID(ctx context.Context, id int64) (c *domain.ContactSubmission, err error) {
	ctx, cancel := r.begin(ctx)
	defer cancel()
	defer func(start time.Time) { err = r.done("contact.get", start, err) }(time.Now())

	query := `SELECT ` + contactColumns + ` FROM contact_submissions WHERE id = $1`
	return scanContact(r.DB.QueryRowContext(ctx, query, id))
}

func (r *contactRepository) List(ctx context.Context, filter domain.ContactFilter, page domain.PaginationParams) (out []*domain.ContactSubmission, total int, err error) {
	ctx, cancel := r.begin(ctx)
	defer cancel()
	defer func(start time.Time) { err = r.done("contact.list", start, err) }(time.Now())

	var w whereBuilder
	w.eq("status", string(filter.Status))
	w.search(filter.Search, "first_name", "last_name", "email", "subject")

	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM contact_submissions `+w.where(), w.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit, args := w.page(page.Limit(), page.Offset())
	query := fmt.Sprintf(`SELECT %s FROM contact_submissions %s ORDER BY submitted_at DESC, id DESC %s`,
		contactColumns, w.where(), limit)
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	out = make([]*domain.ContactSubmission, 0)
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, c)
	}
	return out, total, rows.Err()
}

func (r *contactRepository) UpdateStatus(ctx context.Context, id int64, status domain.ContactStatus) (c *domain.ContactSubmission, err error) {
	ctx, cancel := r.begin(ctx)
	defer cancel()
	defer func(start time.Time) { err = r.done("contact.update_status", start, err) }(time.Now())

	query := `UPDATE contact_submissions SET status = $1 WHERE id = $2 RETURNING ` + contactColumns
	return scanContact(r.DB.QueryRowContext(ctx, query, status, id))
}

func (r *contactRepository) Stats(ctx context.Context) (s *domain.ContactStats, err error) {
	ctx, cancel := r.begin(ctx)
	defer cancel()
	defer func(start time.Time) { err = r.done("contact.stats", start, err) }(time.Now())

	s = &domain.ContactStats{SubjectBreakdown: make([]domain.SubjectCount, 0)}
	o := &s.Overview
	overview := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE submitted_at >= CURRENT_DATE),
			COUNT(*) FILTER (WHERE submitted_at >= CURRENT_DATE - INTERVAL '7 days'),
			COUNT(*) FILTER (WHERE submitted_at >= CURRENT_DATE - INTERVAL '30 days'),
			COUNT(*) FILTER (WHERE status = $1),
			COUNT(*) FILTER (WHERE status = $2),
			COUNT(*) FILTER (WHERE status = $3)
		FROM contact_submissions
	`
	err = r.DB.QueryRowContext(ctx, overview, domain.ContactPending, domain.ContactRead, domain.ContactResponded).Scan(
		&o.TotalSubmissions, &o.TodaySubmissions, &o.WeekSubmissions, &o.MonthSubmissions,
		&o.PendingSubmissions, &o.ReadSubmissions, &o.RespondedSubmissions,
	)
	if err != nil {
		return nil, err
	}

	breakdown := `
		SELECT subject, COUNT(*) AS count
		FROM contact_submissions
		WHERE submitted_at >= CURRENT_DATE - INTERVAL '30 days'
		GROUP BY subject
		ORDER BY count DESC, subject
	`
	rows, err := r.DB.QueryContext(ctx, breakdown)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var sc domain.SubjectCount
		if err := rows.Scan(&sc.Subject, &sc.Count); err != nil {
			return nil, err
		}
		s.SubjectBreakdown = append(s.SubjectBreakdown, sc)
	}
	return s, rows.Err()
}

func nullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}
