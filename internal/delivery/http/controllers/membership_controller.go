package controllers

import (
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"codedcode/internal/delivery/http/helpers"
	"codedcode/internal/domain"
	"codedcode/internal/validation"
)

var membershipErrors = struct {
	submit, list, get, update, stats, checkEmail helpers.ErrorMessages
}{
	submit:     helpers.ErrorMessages{Failure: "Failed to submit membership application. Please try again later."},
	list:       helpers.ErrorMessages{Failure: "Failed to fetch membership applications"},
	get:        helpers.ErrorMessages{NotFound: "Membership application not found", Failure: "Failed to fetch membership application"},
	update:     helpers.ErrorMessages{NotFound: "Membership application not found", Failure: "Failed to update application status"},
	stats:      helpers.ErrorMessages{Failure: "Failed to fetch membership statistics"},
	checkEmail: helpers.ErrorMessages{Failure: "Failed to check email availability"},
}

const invalidApplicationID = "Invalid application ID"

// MembershipSubmitRequest documents the body of POST /api/membership.
type MembershipSubmitRequest struct {
	FirstName             string   `json:"firstName" example:"Grace"`
	LastName              string   `json:"lastName" example:"Hopper"`
	Email                 string   `json:"email" example:"grace@example.com"`
	Phone                 string   `json:"phone,omitempty"`
	StudentID             string   `json:"studentId,omitempty"`
	Course                string   `json:"course,omitempty"`
	YearOfStudy           string   `json:"yearOfStudy,omitempty"`
	Branch                string   `json:"branch,omitempty"`
	MembershipType        string   `json:"membershipType" enums:"student,alumni"`
	ProgrammingExperience string   `json:"programmingExperience,omitempty" enums:"beginner,intermediate,advanced"`
	Interests             []string `json:"interests,omitempty"`
	GithubProfile         string   `json:"githubProfile,omitempty"`
	LinkedinProfile       string   `json:"linkedinProfile,omitempty"`
	WhyJoin               string   `json:"whyJoin,omitempty"`
	PreviousExperience    string   `json:"previousExperience,omitempty"`
	Expectations          string   `json:"expectations,omitempty"`
	HeardAboutUs          string   `json:"heardAboutUs,omitempty"`
	AgreeTerms            bool     `json:"agreeTerms"`
	NewsletterSubscribe   bool     `json:"newsletterSubscribe,omitempty"`
}

// MembershipListResponse is the data of GET /api/membership.
type MembershipListResponse struct {
	Applications []*domain.MembershipApplication `json:"applications"`
	Pagination   helpers.PaginationMeta          `json:"pagination"`
}

// UpdateMembershipStatusRequest is the body of PATCH /api/membership/{id}/status.
type UpdateMembershipStatusRequest struct {
	Status     string `json:"status" enums:"pending,approved,rejected,reviewing"`
	ApprovedBy string `json:"approvedBy,omitempty"`
	Notes      string `json:"notes,omitempty"`
}

// MembershipStatusResponse is the data of PATCH /api/membership/{id}/status.
type MembershipStatusResponse struct {
	ID         int64                   `json:"id"`
	Status     domain.MembershipStatus `json:"status"`
	ApprovedAt *time.Time              `json:"approvedAt"`
	ApprovedBy *string                 `json:"approvedBy"`
}

// EmailCheckResponse is the data of GET /api/membership/check-email/{email}.
type EmailCheckResponse struct {
	Exists  bool   `json:"exists"`
	Message string `json:"message"`
}

type MembershipController struct {
	Logger  *slog.Logger
	Service domain.MembershipService
	Errors  *helpers.ErrorResponder
}

func NewMembershipController(logger *slog.Logger, svc domain.MembershipService, errs *helpers.ErrorResponder) *MembershipController {
	return &MembershipController{
		Logger:  logger,
		Service: svc,
		Errors:  errs,
	}
}

// Submit godoc
// @Summary Submit a membership application
// @Description One application per email address. Emails are compared after normalisation.
// @Tags membership
// @Accept json
// @Produce json
// @Param application body MembershipSubmitRequest true "Application fields"
// @Success 201 {object} helpers.APIResponse{data=domain.SubmissionReceipt}
// @Failure 400 {object} helpers.APIResponse "error.code: validation_error or bad_request"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 429 {object} helpers.APIResponse "error.code: rate_limited"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Failure 503 {object} helpers.APIResponse "error.code: service_unavailable"
// @Router /api/membership [post]
func (c *MembershipController) Submit(w http.ResponseWriter, r *http.Request) {
	body, ok := helpers.DecodeObject(w, r)
	if !ok {
		return
	}
	receipt, err := c.Service.Submit(r.Context(), body, submissionMeta(r))
	if err != nil {
		c.Errors.Write(w, r, err, membershipErrors.submit)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, "Membership application submitted successfully", receipt)
}

// List godoc
// @Summary List membership applications
// @Description Newest first. search matches first name, last name, email and course.
// @Tags membership
// @Produce json
// @Param page query int false "Page (default 1)"
// @Param limit query int false "Page size (default 20, max 100)"
// @Param status query string false "Status filter" Enums(pending, approved, rejected, reviewing)
// @Param membershipType query string false "Type filter" Enums(student, alumni)
// @Param programmingExperience query string false "Experience filter" Enums(beginner, intermediate, advanced)
// @Param search query string false "Case-insensitive substring"
// @Success 200 {object} helpers.APIResponse{data=controllers.MembershipListResponse}
// @Failure 400 {object} helpers.APIResponse "error.code: validation_error"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/membership [get]
func (c *MembershipController) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	status, err := validation.Filter[domain.MembershipStatus]("status", q.Get("status"))
	if err != nil {
		c.Errors.Write(w, r, err, membershipErrors.list)
		return
	}
	membershipType, err := validation.Filter[domain.MembershipType]("membershipType", q.Get("membershipType"))
	if err != nil {
		c.Errors.Write(w, r, err, membershipErrors.list)
		return
	}
	experience, err := validation.Filter[domain.ProgrammingExperience]("programmingExperience", q.Get("programmingExperience"))
	if err != nil {
		c.Errors.Write(w, r, err, membershipErrors.list)
		return
	}
	filter := domain.MembershipFilter{
		Status:                status,
		MembershipType:        membershipType,
		ProgrammingExperience: experience,
		Search:                strings.TrimSpace(q.Get("search")),
	}
	page := helpers.ParsePagination(r)
	applications, total, err := c.Service.List(r.Context(), filter, page)
	if err != nil {
		c.Errors.Write(w, r, err, membershipErrors.list)
		return
	}
	if applications == nil {
		applications = []*domain.MembershipApplication{}
	}
	w.Header().Set("X-Total-Count", strconv.Itoa(total))
	helpers.WriteJSONSuccess(w, http.StatusOK, "", MembershipListResponse{
		Applications: applications,
		Pagination:   helpers.NewPaginationMeta(page.Page, page.PageSize, total),
	})
}

// Get godoc
// @Summary Get a membership application
// @Tags membership
// @Produce json
// @Param id path int true "Application ID"
// @Success 200 {object} helpers.APIResponse{data=domain.MembershipApplication}
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /api/membership/{id} [get]
func (c *MembershipController) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.PathID(w, r.PathValue("id"), invalidApplicationID)
	if !ok {
		return
	}
	application, err := c.Service.GetByID(r.Context(), id)
	if err != nil {
		c.Errors.Write(w, r, err, membershipErrors.get)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, "", application)
}

// UpdateStatus godoc
// @Summary Review a membership application
// @Description Approving stamps approvedAt and approvedBy (default "Admin"). Later changes keep the stamp.
// @Tags membership
// @Accept json
// @Produce json
// @Param id path int true "Application ID"
// @Param body body UpdateMembershipStatusRequest true "New status"
// @Success 200 {object} helpers.APIResponse{data=controllers.MembershipStatusResponse}
// @Failure 400 {object} helpers.APIResponse "error.code: validation_error or bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /api/membership/{id}/status [patch]
func (c *MembershipController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.PathID(w, r.PathValue("id"), invalidApplicationID)
	if !ok {
		return
	}
	var req UpdateMembershipStatusRequest
	if !helpers.DecodeJSON(w, r, &req) {
		return
	}
	application, err := c.Service.UpdateStatus(r.Context(), id, domain.MembershipStatusInput{
		Status:     req.Status,
		ApprovedBy: req.ApprovedBy,
		Notes:      req.Notes,
	})
	if err != nil {
		c.Errors.Write(w, r, err, membershipErrors.update)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, "Application status updated successfully", MembershipStatusResponse{
		ID:         application.ID,
		Status:     application.Status,
		ApprovedAt: application.ApprovedAt,
		ApprovedBy: application.ApprovedBy,
	})
}

// Stats godoc
// @Summary Membership dashboard statistics
// @Description Counters, experience breakdown and the ten most popular interests over the last 30 days.
// @Tags membership
// @Produce json
// @Success 200 {object} helpers.APIResponse{data=domain.MembershipStats}
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/membership/stats/dashboard [get]
func (c *MembershipController) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := c.Service.Stats(r.Context())
	if err != nil {
		c.Errors.Write(w, r, err, membershipErrors.stats)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, "", stats)
}

// CheckEmail godoc
// @Summary Check whether an email already has an application
// @Tags membership
// @Produce json
// @Param email path string true "Email address, optionally percent-encoded"
// @Success 200 {object} helpers.APIResponse{data=controllers.EmailCheckResponse}
// @Failure 400 {object} helpers.APIResponse "error.code: validation_error"
// @Router /api/membership/check-email/{email} [get]
func (c *MembershipController) CheckEmail(w http.ResponseWriter, r *http.Request) {
	// The router leaves encoded segments untouched, so %40 still needs decoding here.
	email, err := url.PathUnescape(r.PathValue("email"))
	if err != nil {
		c.Errors.Write(w, r, domain.NewValidationError("email", "Invalid email format"), membershipErrors.checkEmail)
		return
	}
	exists, err := c.Service.EmailExists(r.Context(), email)
	if err != nil {
		c.Errors.Write(w, r, err, membershipErrors.checkEmail)
		return
	}
	resp := EmailCheckResponse{Exists: exists, Message: "Email is available"}
	if exists {
		resp.Message = helpers.MsgDuplicateEmail
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, "", resp)
}
