package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"rentall-backend/internal/domain"
	"rentall-backend/internal/logger"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		if err := json.NewEncoder(w).Encode(body); err != nil {
			logger.Error("response encoding failed", "error", err)
		}
	}
}

// writeError maps domain error kinds to HTTP statuses in one place.
func writeError(w http.ResponseWriter, err error) {
	var de *domain.Error
	if !errors.As(err, &de) {
		logger.Error("unhandled error", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
		return
	}

	status := http.StatusInternalServerError
	switch de.Kind {
	case domain.ErrKindNotFound:
		status = http.StatusNotFound
	case domain.ErrKindUnauthorized:
		status = http.StatusForbidden
	case domain.ErrKindInvalid:
		status = http.StatusBadRequest
	case domain.ErrKindConflict, domain.ErrKindAlreadyProcessed:
		status = http.StatusConflict
	case domain.ErrKindInternal:
		logger.Error("internal error", "error", de.Err, "message", de.Message)
	}
	writeJSON(w, status, errorResponse{Error: de.Message})
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return false
	}
	return true
}
