package services

import (
	"context"
	"fmt"
	"time"

	"codedcode/internal/domain"
)

// ActivityDays is the window of the dashboard's daily activity series.
const ActivityDays = 7

type statsService struct {
	repo domain.StatsRepository
	now  func() time.Time
}

func NewStatsService(repo domain.StatsRepository) domain.StatsService {
	return &statsService{repo: repo, now: time.Now}
}

func (s *statsService) Dashboard(ctx context.Context) (*domain.DashboardStats, error) {
	overview, err := s.repo.Overview(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard overview: %w", err)
	}
	contacts, err := s.repo.DailyActivity(ctx, domain.KindContact, ActivityDays)
	if err != nil {
		return nil, fmt.Errorf("contact activity: %w", err)
	}
	memberships, err := s.repo.DailyActivity(ctx, domain.KindMembership, ActivityDays)
	if err != nil {
		return nil, fmt.Errorf("membership activity: %w", err)
	}
	return &domain.DashboardStats{
		Overview:       *overview,
		RecentActivity: domain.RecentActivity{Contacts: contacts, Memberships: memberships},
		LastUpdated:    s.now().UTC(),
	}, nil
}
