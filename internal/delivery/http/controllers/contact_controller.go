package controllers

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"codedcode/internal/delivery/http/helpers"
	"codedcode/internal/delivery/http/middleware"
	"codedcode/internal/domain"
	"codedcode/internal/validation"
)

var contactErrors = struct {
	submit, list, get, update, stats helpers.ErrorMessages
}{
	submit: helpers.ErrorMessages{Failure: "Failed to submit contact form. Please try again later."},
	list:   helpers.ErrorMessages{Failure: "Failed to fetch contact submissions"},
	get:    helpers.ErrorMessages{NotFound: "Contact submission not found", Failure: "Failed to fetch contact submission"},
	update: helpers.ErrorMessages{NotFound: "Contact submission not found", Failure: "Failed to update status"},
	stats:  helpers.ErrorMessages{Failure: "Failed to fetch contact statistics"},
}

const invalidSubmissionID = "Invalid submission ID"

// ContactSubmitRequest documents the body of POST /api/contact. Handlers decode into a map so
// wrong JSON types are reported per field.
type ContactSubmitRequest struct {
	FirstName string `json:"firstName" example:"Ada"`
	LastName  string `json:"lastName" example:"Lovelace"`
	Email     string `json:"email" example:"ada@example.com"`
	Phone     string `json:"phone,omitempty" example:"+919876543210"`
	Subject   string `json:"subject" enums:"general,membership,events,collaboration,technical,feedback"`
	Message   string `json:"message" example:"I would like to know more about the club."`
}

// ContactListResponse is the data of GET /api/contact.
type ContactListResponse struct {
	Submissions []*domain.ContactSubmission `json:"submissions"`
	Pagination  helpers.PaginationMeta      `json:"pagination"`
}

// UpdateContactStatusRequest is the body of PATCH /api/contact/{id}/status.
type UpdateContactStatusRequest struct {
	Status string `json:"status" enums:"pending,read,responded"`
}

// ContactStatusResponse is the data of PATCH /api/contact/{id}/status.
type ContactStatusResponse struct {
	ID     int64                `json:"id"`
	Status domain.ContactStatus `json:"status"`
}

type ContactController struct {
	Logger  *slog.Logger
	Service domain.ContactService
	Errors  *helpers.ErrorResponder
}

func NewContactController(logger *slog.Logger, svc domain.ContactService, errs *helpers.ErrorResponder) *ContactController {
	return &ContactController{
		Logger:  logger,
		Service: svc,
		Errors:  errs,
	}
}

func submissionMeta(r *http.Request) domain.SubmissionMeta {
	return domain.SubmissionMeta{IPAddress: middleware.ClientIP(r), UserAgent: r.UserAgent()}
}

// Submit godoc
// @Summary Submit the contact form
// @Tags contact
// @Accept json
// @Produce json
// @Param submission body ContactSubmitRequest true "Contact form fields"
// @Success 201 {object} helpers.APIResponse{data=domain.SubmissionReceipt}
// @Failure 400 {object} helpers.APIResponse "error.code: validation_error or bad_request"
// @Failure 429 {object} helpers.APIResponse "error.code: rate_limited"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Failure 503 {object} helpers.APIResponse "error.code: service_unavailable"
// @Router /api/contact [post]
func (c *ContactController) Submit(w http.ResponseWriter, r *http.Request) {
	body, ok := helpers.DecodeObject(w, r)
	if !ok {
		return
	}
	receipt, err := c.Service.Submit(r.Context(), body, submissionMeta(r))
	if err != nil {
		c.Errors.Write(w, r, err, contactErrors.submit)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, "Contact form submitted successfully", receipt)
}

// List godoc
// @Summary List contact submissions
// @Description Newest first. search matches first name, last name, email and subject.
// @Tags contact
// @Produce json
// @Param page query int false "Page (default 1)"
// @Param limit query int false "Page size (default 20, max 100)"
// @Param status query string false "Status filter" Enums(pending, read, responded)
// @Param search query string false "Case-insensitive substring"
// @Success 200 {object} helpers.APIResponse{data=controllers.ContactListResponse}
// @Failure 400 {object} helpers.APIResponse "error.code: validation_error"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/contact [get]
func (c *ContactController) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	status, err := validation.Filter[domain.ContactStatus]("status", q.Get("status"))
	if err != nil {
		c.Errors.Write(w, r, err, contactErrors.list)
		return
	}
	page := helpers.ParsePagination(r)
	filter := domain.ContactFilter{Status: status, Search: strings.TrimSpace(q.Get("search"))}
	submissions, total, err := c.Service.List(r.Context(), filter, page)
	if err != nil {
		c.Errors.Write(w, r, err, contactErrors.list)
		return
	}
	if submissions == nil {
		submissions = []*domain.ContactSubmission{}
	}
	w.Header().Set("X-Total-Count", strconv.Itoa(total))
	helpers.WriteJSONSuccess(w, http.StatusOK, "", ContactListResponse{
		Submissions: submissions,
		Pagination:  helpers.NewPaginationMeta(page.Page, page.PageSize, total),
	})
}

// Get godoc
// @Summary Get a contact submission
// @Tags contact
// @Produce json
// @Param id path int true "Submission ID"
// @Success 200 {object} helpers.APIResponse{data=domain.ContactSubmission}
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /api/contact/{id} [get]
func (c *ContactController) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.PathID(w, r.PathValue("id"), invalidSubmissionID)
	if !ok {
		return
	}
	submission, err := c.Service.GetByID(r.Context(), id)
	if err != nil {
		c.Errors.Write(w, r, err, contactErrors.get)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, "", submission)
}

// UpdateStatus godoc
// @Summary Update a contact submission's status
// @Tags contact
// @Accept json
// @Produce json
// @Param id path int true "Submission ID"
// @Param body body UpdateContactStatusRequest true "New status"
// @Success 200 {object} helpers.APIResponse{data=controllers.ContactStatusResponse}
// @Failure 400 {object} helpers.APIResponse "error.code: validation_error or bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /api/contact/{id}/status [patch]
func (c *ContactController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.PathID(w, r.PathValue("id"), invalidSubmissionID)
	if !ok {
		return
	}
	var req UpdateContactStatusRequest
	if !helpers.DecodeJSON(w, r, &req) {
		return
	}
	submission, err := c.Service.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		c.Errors.Write(w, r, err, contactErrors.update)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, "Status updated successfully", ContactStatusResponse{ID: submission.ID, Status: submission.Status})
}

// Stats godoc
// @Summary Contact dashboard statistics
// @Description Counters plus a subject breakdown over the last 30 days.
// @Tags contact
// @Produce json
// @Success 200 {object} helpers.APIResponse{data=domain.ContactStats}
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/contact/stats/dashboard [get]
func (c *ContactController) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := c.Service.Stats(r.Context())
	if err != nil {
		c.Errors.Write(w, r, err, contactErrors.stats)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, "", stats)
}
