package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"codedcode/internal/delivery/http/helpers"
	"codedcode/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeMembershipService implements domain.MembershipService for handler tests.
type fakeMembershipService struct {
	submitErr   error
	listResult  []*domain.MembershipApplication
	listTotal   int
	getErr      error
	updateErr   error
	statsResult *domain.MembershipStats
	exists      bool
	existsErr   error
	lastFilter  domain.MembershipFilter
	lastUpdate  domain.MembershipStatusInput
	lastEmail   string
	listCalled  bool
}

func (f *fakeMembershipService) Submit(ctx context.Context, input map[string]any, meta domain.SubmissionMeta) (*domain.SubmissionReceipt, error) {
	if f.submitErr != nil {
		return nil, f.submitErr
	}
	return &domain.SubmissionReceipt{ID: 4, SubmittedAt: submittedAt, Message: "received"}, nil
}

func (f *fakeMembershipService) List(ctx context.Context, filter domain.MembershipFilter, page domain.PaginationParams) ([]*domain.MembershipApplication, int, error) {
	f.listCalled = true
	f.lastFilter = filter
	return f.listResult, f.listTotal, nil
}

func (f *fakeMembershipService) GetByID(ctx context.Context, id int64) (*domain.MembershipApplication, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return &domain.MembershipApplication{ID: id, FirstName: "Grace"}, nil
}

func (f *fakeMembershipService) UpdateStatus(ctx context.Context, id int64, in domain.MembershipStatusInput) (*domain.MembershipApplication, error) {
	f.lastUpdate = in
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	m := &domain.MembershipApplication{ID: id, Status: domain.MembershipStatus(in.Status)}
	if in.Status == string(domain.MembershipApproved) {
		at, by := submittedAt, domain.DefaultApprover
		m.ApprovedAt, m.ApprovedBy = &at, &by
	}
	return m, nil
}

func (f *fakeMembershipService) Stats(ctx context.Context) (*domain.MembershipStats, error) {
	return f.statsResult, nil
}

func (f *fakeMembershipService) EmailExists(ctx context.Context, email string) (bool, error) {
	f.lastEmail = email
	return f.exists, f.existsErr
}

func TestMembershipController_Submit(t *testing.T) {
	tests := []struct {
		name        string
		svcErr      error
		wantStatus  int
		wantMessage string
	}{
		{name: "created", wantStatus: http.StatusCreated, wantMessage: "Membership application submitted successfully"},
		{
			name:        "duplicate email",
			svcErr:      fmt.Errorf("store membership application: %w", domain.ErrDuplicateEmail),
			wantStatus:  http.StatusConflict,
			wantMessage: "An application with this email already exists",
		},
		{
			name:        "terms not accepted",
			svcErr:      domain.NewValidationError("agreeTerms", "You must agree to the terms and conditions"),
			wantStatus:  http.StatusBadRequest,
			wantMessage: helpers.MsgValidationFailed,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewMembershipController(testLogger, &fakeMembershipService{submitErr: tt.svcErr}, testErrors)
			req := httptest.NewRequest(http.MethodPost, "/api/membership", strings.NewReader(`{"firstName":"Grace"}`))
			rr := httptest.NewRecorder()

			c.Submit(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			env := decodeEnvelope(t, rr)
			assert.Equal(t, tt.wantMessage, env.Message)
			if tt.wantStatus == http.StatusCreated {
				assert.JSONEq(t, `{"id":4,"submittedAt":"2026-03-14T09:30:00Z","message":"received"}`, string(env.Data))
			}
		})
	}
}

func TestMembershipController_List(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantStatus int
		wantField  string
		wantFilter domain.MembershipFilter
	}{
		{
			name:       "all filters",
			query:      "?status=approved&membershipType=alumni&programmingExperience=advanced&search=hopper",
			wantStatus: http.StatusOK,
			wantFilter: domain.MembershipFilter{
				Status:                domain.MembershipApproved,
				MembershipType:        domain.MembershipAlumni,
				ProgrammingExperience: domain.ExperienceAdvanced,
				Search:                "hopper",
			},
		},
		{name: "bad membership type", query: "?membershipType=staff", wantStatus: http.StatusBadRequest, wantField: "membershipType"},
		{name: "bad experience", query: "?programmingExperience=guru", wantStatus: http.StatusBadRequest, wantField: "programmingExperience"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeMembershipService{listResult: []*domain.MembershipApplication{{ID: 1}}, listTotal: 1}
			c := NewMembershipController(testLogger, svc, testErrors)
			rr := httptest.NewRecorder()
			c.List(rr, httptest.NewRequest(http.MethodGet, "/api/membership"+tt.query, nil))

			assert.Equal(t, tt.wantStatus, rr.Code)
			env := decodeEnvelope(t, rr)
			if tt.wantField != "" {
				assert.False(t, svc.listCalled)
				require.Len(t, env.Error.Fields, 1)
				assert.Equal(t, tt.wantField, env.Error.Fields[0].Field)
				return
			}
			assert.Equal(t, tt.wantFilter, svc.lastFilter)
			var data MembershipListResponse
			require.NoError(t, json.Unmarshal(env.Data, &data))
			assert.Len(t, data.Applications, 1)
			assert.Equal(t, 1, data.Pagination.TotalCount)
		})
	}
}

func TestMembershipController_Get(t *testing.T) {
	c := NewMembershipController(testLogger, &fakeMembershipService{getErr: domain.ErrNotFound}, testErrors)
	req := httptest.NewRequest(http.MethodGet, "/api/membership/5", nil)
	req.SetPathValue("id", "5")
	rr := httptest.NewRecorder()
	c.Get(rr, req)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "Membership application not found", decodeEnvelope(t, rr).Message)

	req = httptest.NewRequest(http.MethodGet, "/api/membership/0", nil)
	req.SetPathValue("id", "0")
	rr = httptest.NewRecorder()
	c.Get(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Invalid application ID", decodeEnvelope(t, rr).Message)
}

func TestMembershipController_UpdateStatus(t *testing.T) {
	svc := &fakeMembershipService{}
	c := NewMembershipController(testLogger, svc, testErrors)
	req := httptest.NewRequest(http.MethodPatch, "/api/membership/2/status",
		strings.NewReader(`{"status":"approved","notes":"Welcome aboard"}`))
	req.SetPathValue("id", "2")
	rr := httptest.NewRecorder()

	c.UpdateStatus(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	env := decodeEnvelope(t, rr)
	assert.Equal(t, "Application status updated successfully", env.Message)
	assert.JSONEq(t, `{"id":2,"status":"approved","approvedAt":"2026-03-14T09:30:00Z","approvedBy":"Admin"}`, string(env.Data))
	assert.Equal(t, domain.MembershipStatusInput{Status: "approved", Notes: "Welcome aboard"}, svc.lastUpdate)
}

func TestMembershipController_CheckEmail(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		exists     bool
		existsErr  error
		wantEmail  string
		wantStatus int
		wantData   string
	}{
		{name: "taken", path: "grace@example.com", exists: true, wantEmail: "grace@example.com", wantStatus: http.StatusOK, wantData: `{"exists":true,"message":"An application with this email already exists"}`},
		{name: "available", path: "grace@example.com", wantEmail: "grace@example.com", wantStatus: http.StatusOK, wantData: `{"exists":false,"message":"Email is available"}`},
		{name: "encoded at sign", path: "grace%40example.com", wantEmail: "grace@example.com", wantStatus: http.StatusOK, wantData: `{"exists":false,"message":"Email is available"}`},
		{name: "encoded plus tag", path: "a%2Bb%40gmail.com", exists: true, wantEmail: "a+b@gmail.com", wantStatus: http.StatusOK, wantData: `{"exists":true,"message":"An application with this email already exists"}`},
		{name: "bad format", path: "grace@example.com", existsErr: domain.NewValidationError("email", "Invalid email format"), wantEmail: "grace@example.com", wantStatus: http.StatusBadRequest},
		{name: "bad escape", path: "grace%zzexample.com", wantStatus: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeMembershipService{exists: tt.exists, existsErr: tt.existsErr}
			c := NewMembershipController(testLogger, svc, testErrors)
			req := httptest.NewRequest(http.MethodGet, "/api/membership/check-email/x", nil)
			req.SetPathValue("email", tt.path)
			rr := httptest.NewRecorder()

			c.CheckEmail(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantEmail, svc.lastEmail)
			env := decodeEnvelope(t, rr)
			if tt.wantData != "" {
				assert.JSONEq(t, tt.wantData, string(env.Data))
			} else {
				assert.Equal(t, "Invalid email format", env.Error.Fields[0].Message)
			}
		})
	}
}

func TestMembershipController_Stats(t *testing.T) {
	beginner := domain.ExperienceBeginner
	svc := &fakeMembershipService{statsResult: &domain.MembershipStats{
		Overview:            domain.MembershipOverview{TotalApplications: 3},
		ExperienceBreakdown: []domain.ExperienceCount{{ProgrammingExperience: &beginner, Count: 2}, {Count: 1}},
		PopularInterests:    []domain.InterestCount{{Interest: "iot", Count: 2}},
	}}
	c := NewMembershipController(testLogger, svc, testErrors)
	rr := httptest.NewRecorder()
	c.Stats(rr, httptest.NewRequest(http.MethodGet, "/api/membership/stats/dashboard", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	env := decodeEnvelope(t, rr)
	var got map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Contains(t, got, "experienceBreakdown")
	assert.Contains(t, got, "popularInterests")
	assert.Contains(t, string(env.Data), `{"programmingExperience":null,"count":1}`)
}
