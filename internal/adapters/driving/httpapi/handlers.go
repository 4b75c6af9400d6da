package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/jmachaddo/egg-back-home-wms/internal/core/domain"
	"github.com/jmachaddo/egg-back-home-wms/internal/core/ports/driving"
	"github.com/jmachaddo/egg-back-home-wms/internal/logger"
)

// Default and maximum values for the limit query parameter.
const (
	defaultLimit = 50
	maxLimit     = 500
)

var validate = validator.New(validator.WithRequiredStructEnabled())

func handleHealthz() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
	}
}

func handleListCustomers(svc driving.CustomerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		customers, err := svc.Search(r.Context(), r.URL.Query().Get("q"))
		if err != nil {
			respondServiceError(w, err)
			return
		}

		resp := CustomerListResponse{
			Count:     len(customers),
			Customers: make([]CustomerResponse, 0, len(customers)),
		}
		for i := range customers {
			resp.Customers = append(resp.Customers, toCustomerResponse(&customers[i]))
		}
		respondJSON(w, http.StatusOK, resp)
	}
}

func handleGetCustomer(svc driving.CustomerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		customer, err := svc.Get(r.Context(), chi.URLParam(r, "code"))
		if err != nil {
			respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, toCustomerResponse(customer))
	}
}

// handleTriggerSync runs a manual sync and waits for it. A run already in
// progress yields 409 with the skipped result.
func handleTriggerSync(scheduler driving.Scheduler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if scheduler == nil {
			respondError(w, http.StatusServiceUnavailable, ErrMsgSyncUnavailable)
			return
		}

		result, err := scheduler.TriggerManual(r.Context())
		if result == nil {
			if err == nil {
				err = domain.NewSyncError(domain.KindUnknown, nil)
			}
			respondServiceError(w, err)
			return
		}

		resp := toSyncResultResponse(result)
		switch {
		case result.Skipped:
			respondJSON(w, http.StatusConflict, resp)
		case result.Err != nil:
			respondJSON(w, statusForKind(result.Err.Kind), resp)
		default:
			respondJSON(w, http.StatusOK, resp)
		}
	}
}

func handleSyncStatus(orch driving.SyncOrchestrator) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, toSyncStatusResponse(orch.Session()))
	}
}

func handleSyncHistory(scheduler driving.Scheduler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, ok := parseLimit(r)
		if !ok {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidLimit)
			return
		}
		if scheduler == nil {
			respondJSON(w, http.StatusOK, []TaskResultResponse{})
			return
		}

		history, err := scheduler.History(r.Context(), limit)
		if err != nil {
			respondServiceError(w, err)
			return
		}

		resp := make([]TaskResultResponse, 0, len(history))
		for _, h := range history {
			resp = append(resp, TaskResultResponse{
				Mode:           string(h.Mode),
				StartedAt:      h.StartedAt,
				EndedAt:        h.EndedAt,
				Success:        h.Success,
				Error:          h.Error,
				ItemsProcessed: h.ItemsProcessed,
			})
		}
		respondJSON(w, http.StatusOK, resp)
	}
}

func handleListLogs(svc driving.ActivityLogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, ok := parseLimit(r)
		if !ok {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidLimit)
			return
		}

		entries, err := svc.List(r.Context(), r.URL.Query().Get("module"), limit)
		if err != nil {
			respondServiceError(w, err)
			return
		}

		resp := make([]LogEntryResponse, 0, len(entries))
		for _, e := range entries {
			resp = append(resp, LogEntryResponse(e))
		}
		respondJSON(w, http.StatusOK, resp)
	}
}

func handleGetSource(svc driving.SourceSettingsService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cfg, err := svc.Get(r.Context())
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				respondError(w, http.StatusNotFound, ErrMsgSourceNotFound)
				return
			}
			respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, toSourceResponse(cfg))
	}
}

func handleConnectSource(svc driving.SourceSettingsService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ConnectSourceRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
			return
		}
		if err := validate.Struct(req); err != nil {
			logger.Debug("http: invalid source request: %v", err)
			respondError(w, http.StatusBadRequest, "base_url and access_token are required")
			return
		}

		cfg, err := svc.Connect(r.Context(), req.BaseURL, req.AccessToken)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, toSourceResponse(cfg))
	}
}

func handleDisconnectSource(svc driving.SourceSettingsService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Disconnect(r.Context()); err != nil {
			respondServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func handleTestSource(svc driving.SourceSettingsService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.TestConnection(r.Context()); err != nil {
			respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, StatusResponse{Status: "ok", Message: "Connection successful"})
	}
}

func toSourceResponse(cfg *domain.SourceConfig) SourceResponse {
	return SourceResponse{
		BaseURL:     cfg.BaseURL,
		AccessToken: cfg.MaskedToken(),
		Connected:   cfg.Connected,
		UpdatedAt:   optionalTime(cfg.UpdatedAt),
	}
}

// parseLimit reads ?limit=, defaulting to defaultLimit and capping at maxLimit.
func parseLimit(r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return defaultLimit, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, false
	}
	return min(n, maxLimit), true
}
