package handler

import (
	"net/http"
	"teamhealth/internal/model"
	"teamhealth/internal/scoring"
	"teamhealth/internal/service"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// ParticipantHandler handles the respondent-facing endpoints. The code in
// the path is the only credential.
type ParticipantHandler struct {
	submissionSvc *service.SubmissionService
	logger        *zap.Logger
}

// NewParticipantHandler creates a new participant handler
func NewParticipantHandler(submissionSvc *service.SubmissionService, logger *zap.Logger) *ParticipantHandler {
	return &ParticipantHandler{submissionSvc: submissionSvc, logger: logger}
}

// Questions handles GET /v1/questions
func (h *ParticipantHandler) Questions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scoring.Questions)
}

// Status handles GET /v1/participants/{code}
func (h *ParticipantHandler) Status(w http.ResponseWriter, r *http.Request) {
	status, err := h.submissionSvc.Status(r.Context(), mux.Vars(r)["code"])
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

// Submit handles POST /v1/participants/{code}/responses
func (h *ParticipantHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req model.SubmitResponsesRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.submissionSvc.Submit(r.Context(), mux.Vars(r)["code"], req.Responses)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}
