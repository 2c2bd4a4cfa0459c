package handler

import (
	"net/http"
	"strconv"
	"teamhealth/internal/model"
	"teamhealth/internal/service"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// OrganizationHandler handles the organization tree and its rollups
type OrganizationHandler struct {
	orgSvc        *service.OrganizationService
	assessmentSvc *service.AssessmentService
	reportSvc     *service.ReportService
	notifySvc     *service.NotificationService
	logger        *zap.Logger
}

// NewOrganizationHandler creates a new organization handler
func NewOrganizationHandler(
	orgSvc *service.OrganizationService,
	assessmentSvc *service.AssessmentService,
	reportSvc *service.ReportService,
	notifySvc *service.NotificationService,
	logger *zap.Logger,
) *OrganizationHandler {
	return &OrganizationHandler{
		orgSvc:        orgSvc,
		assessmentSvc: assessmentSvc,
		reportSvc:     reportSvc,
		notifySvc:     notifySvc,
		logger:        logger,
	}
}

// Create handles POST /v1/organizations
func (h *OrganizationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateOrganizationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	org, err := h.orgSvc.Create(r.Context(), req)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, org)
}

// List handles GET /v1/organizations?parentId=
func (h *OrganizationHandler) List(w http.ResponseWriter, r *http.Request) {
	orgs, err := h.orgSvc.List(r.Context(), r.URL.Query().Get("parentId"))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, orgs)
}

// Get handles GET /v1/organizations/{id}
func (h *OrganizationHandler) Get(w http.ResponseWriter, r *http.Request) {
	org, err := h.orgSvc.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, org)
}

// Update handles PATCH /v1/organizations/{id}
func (h *OrganizationHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateOrganizationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	org, err := h.orgSvc.Update(r.Context(), mux.Vars(r)["id"], req)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, org)
}

// Delete handles DELETE /v1/organizations/{id}
func (h *OrganizationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.orgSvc.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Assessments handles GET /v1/organizations/{id}/assessments
func (h *OrganizationHandler) Assessments(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if _, err := h.orgSvc.Get(r.Context(), id); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	assessments, err := h.assessmentSvc.ListByOrganization(r.Context(), id)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, assessments)
}

// GenerateSummary handles POST /v1/organizations/{id}/summary
func (h *OrganizationHandler) GenerateSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.reportSvc.GenerateSummary(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// GetSummary handles GET /v1/organizations/{id}/summary
func (h *OrganizationHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.reportSvc.Summary(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// Ranking handles GET /v1/organizations/{id}/ranking?limit=
func (h *OrganizationHandler) Ranking(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	entries, err := h.reportSvc.Ranking(r.Context(), mux.Vars(r)["id"], limit)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// EmailSummary handles POST /v1/organizations/{id}/summary/email
func (h *OrganizationHandler) EmailSummary(w http.ResponseWriter, r *http.Request) {
	var req model.SummaryEmailRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.notifySvc.SendSummary(r.Context(), mux.Vars(r)["id"], req.Recipients)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
