package domain

import (
	"context"
	"time"
)

// SubmissionKind names one of the two stored submission tables.
type SubmissionKind string

const (
	KindContact    SubmissionKind = "contact"
	KindMembership SubmissionKind = "membership"
)

// DashboardOverview is the combined headline counters for the admin dashboard.
// swagger:model DashboardOverview
type DashboardOverview struct {
	TotalContacts       int `json:"totalContacts"`
	TodayContacts       int `json:"todayContacts"`
	TotalApplications   int `json:"totalApplications"`
	PendingApplications int `json:"pendingApplications"`
	ApprovedMembers     int `json:"approvedMembers"`
}

// DailyCount is the number of submissions received on one calendar day (YYYY-MM-DD).
type DailyCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type RecentActivity struct {
	Contacts    []DailyCount `json:"contacts"`
	Memberships []DailyCount `json:"memberships"`
}

// DashboardStats is the payload of GET /api/stats.
// swagger:model DashboardStats
type DashboardStats struct {
	Overview       DashboardOverview `json:"overview"`
	RecentActivity RecentActivity    `json:"recentActivity"`
	LastUpdated    time.Time         `json:"lastUpdated"`
}

// StatsRepository defines cross-table aggregate queries.
type StatsRepository interface {
	Overview(ctx context.Context) (*DashboardOverview, error)
	// DailyActivity returns per-day counts for the last days days, newest first.
	DailyActivity(ctx context.Context, kind SubmissionKind, days int) ([]DailyCount, error)
}

// StatsService builds the combined dashboard.
type StatsService interface {
	Dashboard(ctx context.Context) (*DashboardStats, error)
}

// StoreProbe reports whether the relational store is reachable.
type StoreProbe interface {
	Ping(ctx context.Context) error
}
