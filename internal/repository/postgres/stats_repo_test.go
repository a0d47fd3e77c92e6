package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"codedcode/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsRepository_Overview(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT \(SELECT COUNT\(\*\) FROM contact_submissions\)`).
		WithArgs("pending", "approved").
		WillReturnRows(sqlmock.NewRows([]string{"a", "b", "c", "d", "e"}).AddRow(30, 2, 12, 4, 6))

	o, err := NewStatsRepository(db, time.Second).Overview(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &domain.DashboardOverview{
		TotalContacts: 30, TodayContacts: 2, TotalApplications: 12, PendingApplications: 4, ApprovedMembers: 6,
	}, o)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStatsRepository_DailyActivity(t *testing.T) {
	ctx := context.Background()
	day1 := time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		kind    domain.SubmissionKind
		mock    func(mock sqlmock.Sqlmock)
		want    []domain.DailyCount
		wantErr bool
	}{
		{
			name: "contacts",
			kind: domain.KindContact,
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`FROM contact_submissions WHERE submitted_at >= CURRENT_DATE - \$1::int GROUP BY day ORDER BY day DESC`).
					WithArgs(7).
					WillReturnRows(sqlmock.NewRows([]string{"day", "count"}).AddRow(day1, 3).AddRow(day2, 1))
			},
			want: []domain.DailyCount{{Date: "2025-03-02", Count: 3}, {Date: "2025-03-01", Count: 1}},
		},
		{
			name: "memberships without activity",
			kind: domain.KindMembership,
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`FROM membership_applications`).
					WithArgs(7).
					WillReturnRows(sqlmock.NewRows([]string{"day", "count"}))
			},
			want: []domain.DailyCount{},
		},
		{
			name:    "unknown kind never reaches the database",
			kind:    domain.SubmissionKind("users; DROP TABLE users"),
			mock:    func(mock sqlmock.Sqlmock) {},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			got, err := NewStatsRepository(db, time.Second).DailyActivity(ctx, tt.kind, 7)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestProbe_Ping(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectPing()
	require.NoError(t, NewProbe(db, time.Second).Ping(context.Background()))

	mock.ExpectPing().WillReturnError(context.DeadlineExceeded)
	err = NewProbe(db, time.Second).Ping(context.Background())
	require.ErrorIs(t, err, domain.ErrUnavailable)
	require.NoError(t, mock.ExpectationsWereMet())
}
