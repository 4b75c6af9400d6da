package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jmachaddo/egg-back-home-wms/internal/core/domain"
	"github.com/jmachaddo/egg-back-home-wms/internal/logger"
)

// Client-facing error messages.
const (
	ErrMsgUnauthorized    = "Missing or invalid API key"
	ErrMsgInvalidRequest  = "Invalid request body"
	ErrMsgInvalidLimit    = "Invalid limit parameter"
	ErrMsgNotFound        = "Not found"
	ErrMsgSourceNotFound  = "The store connection has not been configured"
	ErrMsgInternal        = "Something went wrong"
	ErrMsgSyncInProgress  = "A synchronisation is already running"
	ErrMsgSyncUnavailable = "Synchronisation is not available"
)

// ErrorResponse is the body of every error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("http: failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError maps a service error onto a status code and a
// message the dashboard can show as is.
func respondServiceError(w http.ResponseWriter, err error) {
	var syncErr *domain.SyncError
	if errors.As(err, &syncErr) {
		respondJSON(w, statusForKind(syncErr.Kind), ErrorResponse{
			Error: syncErr.Message(),
			Kind:  string(syncErr.Kind),
		})
		return
	}

	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		respondError(w, http.StatusNotFound, ErrMsgNotFound)
	case errors.Is(err, domain.ErrSyncInProgress):
		respondError(w, http.StatusConflict, ErrMsgSyncInProgress)
	default:
		logger.Error("http: %v", err)
		respondError(w, http.StatusInternalServerError, ErrMsgInternal)
	}
}

func statusForKind(kind domain.ErrorKind) int {
	switch kind {
	case domain.KindConfiguration:
		return http.StatusConflict
	case domain.KindAuth, domain.KindNotFound, domain.KindUpstream:
		return http.StatusBadGateway
	case domain.KindNetwork:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
