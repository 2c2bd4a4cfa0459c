package handler

import (
	"fmt"
	"net/http"
	"teamhealth/internal/model"
	"teamhealth/internal/service"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// AssessmentHandler handles assessment, report and export endpoints
type AssessmentHandler struct {
	assessmentSvc *service.AssessmentService
	reportSvc     *service.ReportService
	exportSvc     *service.ExportService
	notifySvc     *service.NotificationService
	logger        *zap.Logger
}

// NewAssessmentHandler creates a new assessment handler
func NewAssessmentHandler(
	assessmentSvc *service.AssessmentService,
	reportSvc *service.ReportService,
	exportSvc *service.ExportService,
	notifySvc *service.NotificationService,
	logger *zap.Logger,
) *AssessmentHandler {
	return &AssessmentHandler{
		assessmentSvc: assessmentSvc,
		reportSvc:     reportSvc,
		exportSvc:     exportSvc,
		notifySvc:     notifySvc,
		logger:        logger,
	}
}

// Create handles POST /v1/assessments
func (h *AssessmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateAssessmentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.assessmentSvc.Create(r.Context(), req)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

// Get handles GET /v1/assessments/{id}
func (h *AssessmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	a, err := h.assessmentSvc.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

// Close handles POST /v1/assessments/{id}/close
func (h *AssessmentHandler) Close(w http.ResponseWriter, r *http.Request) {
	a, err := h.assessmentSvc.Close(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

// ListParticipants handles GET /v1/assessments/{id}/participants
func (h *AssessmentHandler) ListParticipants(w http.ResponseWriter, r *http.Request) {
	participants, err := h.assessmentSvc.ListParticipants(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	// responses are exported separately
	for _, p := range participants {
		p.Responses = nil
	}
	writeJSON(w, http.StatusOK, participants)
}

// AddParticipants handles POST /v1/assessments/{id}/participants
func (h *AssessmentHandler) AddParticipants(w http.ResponseWriter, r *http.Request) {
	var req model.AddParticipantsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	participants, err := h.assessmentSvc.AddParticipants(r.Context(), mux.Vars(r)["id"], req)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, participants)
}

// GenerateReport handles POST /v1/assessments/{id}/report
func (h *AssessmentHandler) GenerateReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.reportSvc.GenerateTeamReport(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// GetReport handles GET /v1/assessments/{id}/report
func (h *AssessmentHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.reportSvc.TeamReport(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// TrustMatrix handles GET /v1/assessments/{id}/trust-matrix
func (h *AssessmentHandler) TrustMatrix(w http.ResponseWriter, r *http.Request) {
	pm, err := h.reportSvc.TrustMatrix(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, pm)
}

// Export handles GET /v1/assessments/{id}/export?format=csv|json
func (h *AssessmentHandler) Export(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "csv"
	}
	if format != "csv" && format != "json" {
		writeError(w, http.StatusBadRequest, "format must be csv or json")
		return
	}

	rows, err := h.exportSvc.Rows(r.Context(), id)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	if format == "json" {
		writeJSON(w, http.StatusOK, rows)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="assessment-%s.csv"`, id))
	w.WriteHeader(http.StatusOK)
	if err := service.WriteCSV(w, rows); err != nil {
		h.logger.Warn("csv export interrupted", zap.String("assessment", id), zap.Error(err))
	}
}

// SendInvitations handles POST /v1/assessments/{id}/invitations
func (h *AssessmentHandler) SendInvitations(w http.ResponseWriter, r *http.Request) {
	result, err := h.notifySvc.SendInvitations(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
