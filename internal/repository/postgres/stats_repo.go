package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"codedcode/internal/domain"
)

var kindTables = map[domain.SubmissionKind]string{
	domain.KindContact:    "contact_submissions",
	domain.KindMembership: "membership_applications",
}

type statsRepository struct {
	store
}

// NewStatsRepository returns a StatsRepository backed by db.
func NewStatsRepository(db *sql.DB, timeout time.Duration) domain.StatsRepository {
	return &statsRepository{store: newStore(db, timeout)}
}

func (r *statsRepository) Overview(ctx context.Context) (o *domain.DashboardOverview, err error) {
	ctx, cancel := r.begin(ctx)
	defer cancel()
	defer func(start time.Time) { err = r.done("stats.overview", start, err) }(time.Now())

	query := `
		SELECT
			(SELECT COUNT(*) FROM contact_submissions),
			(SELECT COUNT(*) FROM contact_submissions WHERE submitted_at >= CURRENT_DATE),
			(SELECT COUNT(*) FROM membership_applications),
			(SELECT COUNT(*) FROM membership_applications WHERE status = $1),
			(SELECT COUNT(*) FROM membership_applications WHERE status = $2)
	`
	o = &domain.DashboardOverview{}
	err = r.DB.QueryRowContext(ctx, query, domain.MembershipPending, domain.MembershipApproved).Scan(
		&o.TotalContacts, &o.TodayContacts, &o.TotalApplications, &o.PendingApplications, &o.ApprovedMembers,
	)
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (r *statsRepository) DailyActivity(ctx context.Context, kind domain.SubmissionKind, days int) (out []domain.DailyCount, err error) {
	table, ok := kindTables[kind]
	if !ok {
		return nil, fmt.Errorf("unknown submission kind %q", kind)
	}
	ctx, cancel := r.begin(ctx)
	defer cancel()
	defer func(start time.Time) { err = r.done("stats.daily_"+string(kind), start, err) }(time.Now())

	query := fmt.Sprintf(`
		SELECT DATE(submitted_at) AS day, COUNT(*)
		FROM %s
		WHERE submitted_at >= CURRENT_DATE - $1::int
		GROUP BY day
		ORDER BY day DESC
	`, table)
	rows, err := r.DB.QueryContext(ctx, query, days)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out = make([]domain.DailyCount, 0, days)
	for rows.Next() {
		var day time.Time
		var count int
		if err := rows.Scan(&day, &count); err != nil {
			return nil, err
		}
		out = append(out, domain.DailyCount{Date: day.Format(time.DateOnly), Count: count})
	}
	return out, rows.Err()
}
