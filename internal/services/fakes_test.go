package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"codedcode/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var fixedNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

// fakeContactRepo implements domain.ContactRepository for tests.
type fakeContactRepo struct {
	byID      map[int64]*domain.ContactSubmission
	nextID    int64
	createErr error
	getErr    error
	listErr   error
	updateErr error
	stats     *domain.ContactStats
	lastPage  domain.PaginationParams
	lastQuery domain.ContactFilter
}

func newFakeContactRepo() *fakeContactRepo {
	return &fakeContactRepo{byID: make(map[int64]*domain.ContactSubmission)}
}

func (f *fakeContactRepo) Create(ctx context.Context, c *domain.ContactSubmission) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.nextID++
	c.ID = f.nextID
	c.Status = domain.ContactPending
	c.SubmittedAt = fixedNow
	f.byID[c.ID] = c
	return nil
}

func (f *fakeContactRepo) GetByID(ctx context.Context, id int64) (*domain.ContactSubmission, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if c, ok := f.byID[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeContactRepo) List(ctx context.Context, filter domain.ContactFilter, page domain.PaginationParams) ([]*domain.ContactSubmission, int, error) {
	f.lastQuery, f.lastPage = filter, page
	if f.listErr != nil {
		return nil, 0, f.listErr
	}
	out := make([]*domain.ContactSubmission, 0, len(f.byID))
	for _, c := range f.byID {
		out = append(out, c)
	}
	return out, len(out), nil
}

func (f *fakeContactRepo) UpdateStatus(ctx context.Context, id int64, status domain.ContactStatus) (*domain.ContactSubmission, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	c, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	c.Status = status
	cp := *c
	return &cp, nil
}

func (f *fakeContactRepo) Stats(ctx context.Context) (*domain.ContactStats, error) {
	if f.stats == nil {
		return nil, domain.ErrUnavailable
	}
	return f.stats, nil
}

// fakeMembershipRepo implements domain.MembershipRepository for tests.
type fakeMembershipRepo struct {
	byID       map[int64]*domain.MembershipApplication
	nextID     int64
	createErr  error
	existsErr  error
	lastExists string
	lastChange domain.MembershipStatusChange
	lastTop    int
}

func newFakeMembershipRepo() *fakeMembershipRepo {
	return &fakeMembershipRepo{byID: make(map[int64]*domain.MembershipApplication)}
}

func (f *fakeMembershipRepo) Create(ctx context.Context, m *domain.MembershipApplication) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.nextID++
	m.ID = f.nextID
	m.Status = domain.MembershipPending
	m.SubmittedAt = fixedNow
	f.byID[m.ID] = m
	return nil
}

func (f *fakeMembershipRepo) GetByID(ctx context.Context, id int64) (*domain.MembershipApplication, error) {
	if m, ok := f.byID[id]; ok {
		cp := *m
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeMembershipRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	f.lastExists = email
	if f.existsErr != nil {
		return false, f.existsErr
	}
	for _, m := range f.byID {
		if strings.EqualFold(m.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeMembershipRepo) List(ctx context.Context, filter domain.MembershipFilter, page domain.PaginationParams) ([]*domain.MembershipApplication, int, error) {
	var out []*domain.MembershipApplication
	for _, m := range f.byID {
		if filter.Status != "" && m.Status != filter.Status {
			continue
		}
		out = append(out, m)
	}
	return out, len(out), nil
}

func (f *fakeMembershipRepo) UpdateStatus(ctx context.Context, id int64, change domain.MembershipStatusChange) (*domain.MembershipApplication, error) {
	f.lastChange = change
	m, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	m.Status = change.Status
	if change.ApprovedAt != nil {
		m.ApprovedAt = change.ApprovedAt
	}
	if change.ApprovedBy != nil {
		m.ApprovedBy = change.ApprovedBy
	}
	if change.Notes != nil {
		m.Notes = change.Notes
	}
	cp := *m
	return &cp, nil
}

func (f *fakeMembershipRepo) Stats(ctx context.Context, topInterests int) (*domain.MembershipStats, error) {
	f.lastTop = topInterests
	return &domain.MembershipStats{Overview: domain.MembershipOverview{TotalApplications: len(f.byID)}}, nil
}

// fakeNotifier records notifications and optionally fails.
type fakeNotifier struct {
	mu          sync.Mutex
	contacts    []int64
	memberships []int64
	err         error
}

func (f *fakeNotifier) ContactReceived(ctx context.Context, c *domain.ContactSubmission) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.contacts = append(f.contacts, c.ID)
	return f.err
}

func (f *fakeNotifier) MembershipReceived(ctx context.Context, m *domain.MembershipApplication) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.memberships = append(f.memberships, m.ID)
	return f.err
}

// fakeMailer implements domain.Mailer and records every message.
type fakeMailer struct {
	sent   []sentMail
	failTo string
}

type sentMail struct {
	to, subject, html, text string
}

func (f *fakeMailer) Send(ctx context.Context, to, subject, html, text string) error {
	if f.failTo != "" && to == f.failTo {
		return errors.New("mailbox unavailable")
	}
	f.sent = append(f.sent, sentMail{to: to, subject: subject, html: html, text: text})
	return nil
}

// fakeRenderer implements domain.EmailTemplateRenderer, echoing the template name.
type fakeRenderer struct {
	failOn string
}

func (f *fakeRenderer) Render(name string, data any) (string, string, string, error) {
	if name == f.failOn {
		return "", "", "", errors.New("template: missing")
	}
	return "subject:" + name, "<p>" + name + "</p>", name, nil
}

// fakeStatsRepo implements domain.StatsRepository for tests.
type fakeStatsRepo struct {
	overview    *domain.DashboardOverview
	overviewErr error
	daily       map[domain.SubmissionKind][]domain.DailyCount
	dailyErr    error
	days        []int
}

func (f *fakeStatsRepo) Overview(ctx context.Context) (*domain.DashboardOverview, error) {
	if f.overviewErr != nil {
		return nil, f.overviewErr
	}
	return f.overview, nil
}

func (f *fakeStatsRepo) DailyActivity(ctx context.Context, kind domain.SubmissionKind, days int) ([]domain.DailyCount, error) {
	f.days = append(f.days, days)
	if f.dailyErr != nil {
		return nil, f.dailyErr
	}
	return f.daily[kind], nil
}
