package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"teamhealth/internal/scoring"
	"teamhealth/internal/service"

	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func decodeJSON(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

// writeServiceError maps service and scoring errors onto HTTP responses.
// Anything unrecognized is logged and reported as a bare 500.
func writeServiceError(w http.ResponseWriter, logger *zap.Logger, err error) {
	var incomplete *scoring.IncompleteResponsesError
	switch {
	case errors.As(err, &incomplete):
		writeJSON(w, http.StatusBadRequest, struct {
			Error string `json:"error"`
			*scoring.IncompleteResponsesError
		}{err.Error(), incomplete})

	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, service.ErrParentNotFound),
		errors.Is(err, service.ErrNoRecipients):
		writeError(w, http.StatusBadRequest, err.Error())

	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidToken):
		writeError(w, http.StatusUnauthorized, err.Error())

	case errors.Is(err, service.ErrOrganizationNotFound),
		errors.Is(err, service.ErrAssessmentNotFound),
		errors.Is(err, service.ErrParticipantNotFound),
		errors.Is(err, service.ErrReportNotFound),
		errors.Is(err, service.ErrSummaryNotFound):
		writeError(w, http.StatusNotFound, err.Error())

	case errors.Is(err, service.ErrAlreadySubmitted),
		errors.Is(err, service.ErrAssessmentClosed),
		errors.Is(err, service.ErrOrganizationInUse),
		errors.Is(err, service.ErrOrganizationCycle):
		writeError(w, http.StatusConflict, err.Error())

	case errors.Is(err, scoring.ErrNoSubmissions),
		errors.Is(err, scoring.ErrNothingToSummarize):
		writeError(w, http.StatusUnprocessableEntity, err.Error())

	default:
		logger.Error("request failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
