package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"codedcode/internal/domain"
)

const membershipColumns = `id, first_name, last_name, email, phone, student_id, course, year_of_study, branch,
	membership_type, programming_experience, interests, github_profile, linkedin_profile, why_join,
	previous_experience, expectations, heard_about_us, agree_terms, newsletter_subscribe, status,
	approved_at, approved_by, notes, COALESCE(ip_address, ''), COALESCE(user_agent, ''), submitted_at`

type membershipRepository struct {
	store
}

// NewMembershipRepository returns a MembershipRepository backed by db. Each call is bounded by timeout.
func NewMembershipRepository(db *sql.DB, timeout time.Duration) domain.MembershipRepository {
	return &membershipRepository{store: newStore(db, timeout)}
}

func scanMembership(row rowScanner) (*domain.MembershipApplication, error) {
	m := &domain.MembershipApplication{}
	var (
		phone, studentID, course, year, branch, experience sql.NullString
		github, linkedin, whyJoin, previous, expectations  sql.NullString
		heard, approvedBy, notes                           sql.NullString
		newsletter                                         sql.NullBool
		approvedAt                                         sql.NullTime
		interests                                          pq.StringArray
	)
	err := row.Scan(
		&m.ID, &m.FirstName, &m.LastName, &m.Email, &phone, &studentID, &course, &year, &branch,
		&m.MembershipType, &experience, &interests, &github, &linkedin, &whyJoin,
		&previous, &expectations, &heard, &m.AgreeTerms, &newsletter, &m.Status,
		&approvedAt, &approvedBy, &notes, &m.IPAddress, &m.UserAgent, &m.SubmittedAt,
	)
	if err != nil {
		return nil, err
	}
	m.Phone = nullString(phone)
	m.StudentID = nullString(studentID)
	m.Course = nullString(course)
	m.YearOfStudy = nullEnum[domain.YearOfStudy](year)
	m.Branch = nullString(branch)
	m.ProgrammingExperience = nullEnum[domain.ProgrammingExperience](experience)
	m.Interests = make([]domain.Interest, len(interests))
	for i, s := range interests {
		m.Interests[i] = domain.Interest(s)
	}
	m.GithubProfile = nullString(github)
	m.LinkedinProfile = nullString(linkedin)
	m.WhyJoin = nullString(whyJoin)
	m.PreviousExperience = nullString(previous)
	m.Expectations = nullString(expectations)
	m.HeardAboutUs = nullEnum[domain.HeardAboutUs](heard)
	if newsletter.Valid {
		m.NewsletterSubscribe = &newsletter.Bool
	}
	if approvedAt.Valid {
		m.ApprovedAt = &approvedAt.Time
	}
	m.ApprovedBy = nullString(approvedBy)
	m.Notes = nullString(notes)
	return m, nil
}

func nullEnum[T ~string](ns sql.NullString) *T {
	if !ns.Valid {
		return nil
	}
	v := T(ns.String)
	return &v
}

func (r *membershipRepository) Create(ctx context.Context, m *domain.MembershipApplication) (err error) {
	ctx, cancel := r.begin(ctx)
	defer cancel()
	defer func(start time.Time) { err = r.done("membership.create", start, err) }(time.Now())

	interests := make([]string, len(m.Interests))
	for i, in := range m.Interests {
		interests[i] = string(in)
	}
	query := `
		INSERT INTO membership_applications (
			first_name, last_name, email, phone, student_id, course, year_of_study, branch,
			membership_type, programming_experience, interests, github_profile, linkedin_profile,
			why_join, previous_experience, expectations, heard_about_us, agree_terms,
			newsletter_subscribe, ip_address, user_agent
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)
		RETURNING id, status, submitted_at
	`
	return r.DB.QueryRowContext(ctx, query,
		m.FirstName, m.LastName, m.Email, m.Phone, m.StudentID, m.Course, m.YearOfStudy, m.Branch,
		m.MembershipType, m.ProgrammingExperience, pq.Array(interests), m.GithubProfile, m.LinkedinProfile,
		m.WhyJoin, m.PreviousExperience, m.Expectations, m.HeardAboutUs, m.AgreeTerms,
		m.NewsletterSubscribe, m.IPAddress, m.UserAgent,
	).Scan(&m.ID, &m.Status, &m.SubmittedAt)
}

func (r *membershipRepository) GetByID(ctx context.Context, id int64) (m *domain.MembershipApplication, err error) {
	ctx, cancel := r.begin(ctx)
	defer cancel()
	defer func(start time.Time) { err = r.done("membership.get", start, err) }(time.Now())

	query := `SELECT ` + membershipColumns + ` FROM membership_applications WHERE id = $1`
	return scanMembership(r.DB.QueryRowContext(ctx, query, id))
}

func (r *membershipRepository) ExistsByEmail(ctx context.Context, email string) (exists bool, err error) {
	ctx, cancel := r.begin(ctx)
	defer cancel()
	defer func(start time.Time) { err = r.done("membership.exists_by_email", start, err) }(time.Now())

	query := `SELECT EXISTS (SELECT 1 FROM membership_applications WHERE LOWER(email) = $1)`
	err = r.DB.QueryRowContext(ctx, query, strings.ToLower(strings.TrimSpace(email))).Scan(&exists)
	return exists, err
}

func (r *membershipRepository) List(ctx context.Context, filter domain.MembershipFilter, page domain.PaginationParams) (out []*domain.MembershipApplication, total int, err error) {
	ctx, cancel := r.begin(ctx)
	defer cancel()
	defer func(start time.Time) { err = r.done("membership.list", start, err) }(time.Now())

	var w whereBuilder
	w.eq("status", string(filter.Status))
	w.eq("membership_type", string(filter.MembershipType))
	w.eq("programming_experience", string(filter.ProgrammingExperience))
	w.search(filter.Search, "first_name", "last_name", "email", "course")

	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM membership_applications `+w.where(), w.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit, args := w.page(page.Limit(), page.Offset())
	query := fmt.Sprintf(`SELECT %s FROM membership_applications %s ORDER BY submitted_at DESC, id DESC %s`,
		membershipColumns, w.where(), limit)
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	out = make([]*domain.MembershipApplication, 0)
	for rows.Next() {
		m, err := scanMembership(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, m)
	}
	return out, total, rows.Err()
}

// UpdateStatus applies change. approved_at, approved_by and notes are only written when the change carries them.
func (r *membershipRepository) UpdateStatus(ctx context.Context, id int64, change domain.MembershipStatusChange) (m *domain.MembershipApplication, err error) {
	ctx, cancel := r.begin(ctx)
	defer cancel()
	defer func(start time.Time) { err = r.done("membership.update_status", start, err) }(time.Now())

	set := []string{"status = $1"}
	args := []any{change.Status}
	if change.ApprovedAt != nil {
		args = append(args, *change.ApprovedAt)
		set = append(set, fmt.Sprintf("approved_at = $%d", len(args)))
	}
	if change.ApprovedBy != nil {
		args = append(args, *change.ApprovedBy)
		set = append(set, fmt.Sprintf("approved_by = $%d", len(args)))
	}
	if change.Notes != nil {
		args = append(args, *change.Notes)
		set = append(set, fmt.Sprintf("notes = $%d", len(args)))
	}
	args = append(args, id)
	query := fmt.Sprintf(`UPDATE membership_applications SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(set, ", "), len(args), membershipColumns)
	return scanMembership(r.DB.QueryRowContext(ctx, query, args...))
}

func (r *membershipRepository) Stats(ctx context.Context, topInterests int) (s *domain.MembershipStats, err error) {
	ctx, cancel := r.begin(ctx)
	defer cancel()
	defer func(start time.Time) { err = r.done("membership.stats", start, err) }(time.Now())

	s = &domain.MembershipStats{
		ExperienceBreakdown: make([]domain.ExperienceCount, 0),
		PopularInterests:    make([]domain.InterestCount, 0),
	}
	o := &s.Overview
	overview := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE submitted_at >= CURRENT_DATE),
			COUNT(*) FILTER (WHERE submitted_at >= CURRENT_DATE - INTERVAL '7 days'),
			COUNT(*) FILTER (WHERE submitted_at >= CURRENT_DATE - INTERVAL '30 days'),
			COUNT(*) FILTER (WHERE status = $1),
			COUNT(*) FILTER (WHERE status = $2),
			COUNT(*) FILTER (WHERE status = $3),
			COUNT(*) FILTER (WHERE status = $4),
			COUNT(*) FILTER (WHERE membership_type = $5),
			COUNT(*) FILTER (WHERE membership_type = $6)
		FROM membership_applications
	`
	err = r.DB.QueryRowContext(ctx, overview,
		domain.MembershipPending, domain.MembershipApproved, domain.MembershipRejected, domain.MembershipReviewing,
		domain.MembershipStudent, domain.MembershipAlumni,
	).Scan(
		&o.TotalApplications, &o.TodayApplications, &o.WeekApplications, &o.MonthApplications,
		&o.PendingApplications, &o.ApprovedApplications, &o.RejectedApplications, &o.ReviewingApplications,
		&o.StudentApplications, &o.AlumniApplications,
	)
	if err != nil {
		return nil, err
	}

	experience := `
		SELECT programming_experience, COUNT(*) AS count
		FROM membership_applications
		WHERE submitted_at >= CURRENT_DATE - INTERVAL '30 days'
		GROUP BY programming_experience
		ORDER BY count DESC
	`
	rows, err := r.DB.QueryContext(ctx, experience)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var level sql.NullString
		var ec domain.ExperienceCount
		if err := rows.Scan(&level, &ec.Count); err != nil {
			rows.Close()
			return nil, err
		}
		ec.ProgrammingExperience = nullEnum[domain.ProgrammingExperience](level)
		s.ExperienceBreakdown = append(s.ExperienceBreakdown, ec)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	interests := `
		SELECT interest, COUNT(*) AS count
		FROM membership_applications, unnest(interests) AS interest
		WHERE submitted_at >= CURRENT_DATE - INTERVAL '30 days'
		GROUP BY interest
		ORDER BY count DESC, interest
		LIMIT $1
	`
	rows, err = r.DB.QueryContext(ctx, interests, topInterests)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var ic domain.InterestCount
		if err := rows.Scan(&ic.Interest, &ic.Count); err != nil {
			return nil, err
		}
		s.PopularInterests = append(s.PopularInterests, ic)
	}
	return s, rows.Err()
}
