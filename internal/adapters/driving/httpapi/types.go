package httpapi

import (
	"time"

	"github.com/jmachaddo/egg-back-home-wms/internal/core/domain"
)

// CustomerResponse is a customer as returned by the API.
type CustomerResponse struct {
	ID           string    `json:"id"`
	ExternalCode string    `json:"external_code"`
	Name         string    `json:"name"`
	Email        string    `json:"email,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	City         string    `json:"city,omitempty"`
	Country      string    `json:"country,omitempty"`
	Location     string    `json:"location,omitempty"`
	Active       bool      `json:"active"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CustomerListResponse wraps a customer list.
type CustomerListResponse struct {
	Count     int                `json:"count"`
	Customers []CustomerResponse `json:"customers"`
}

// SyncStatusResponse is the session snapshot.
type SyncStatusResponse struct {
	InProgress     bool           `json:"in_progress"`
	Mode           string         `json:"mode,omitempty"`
	ProcessedCount int            `json:"processed_count"`
	LastError      *ErrorResponse `json:"last_error,omitempty"`
	StartedAt      *time.Time     `json:"started_at,omitempty"`
	FinishedAt     *time.Time     `json:"finished_at,omitempty"`
	LastSuccess    *time.Time     `json:"last_success,omitempty"`
}

// SyncResultResponse is the outcome of a triggered sync.
type SyncResultResponse struct {
	Mode       string         `json:"mode"`
	Skipped    bool           `json:"skipped"`
	Processed  int            `json:"processed"`
	Pages      int            `json:"pages"`
	Watermark  *time.Time     `json:"watermark,omitempty"`
	StartedAt  time.Time      `json:"started_at"`
	FinishedAt time.Time      `json:"finished_at"`
	DurationMS int64          `json:"duration_ms"`
	Error      *ErrorResponse `json:"error,omitempty"`
}

// TaskResultResponse is one entry of the sync history.
type TaskResultResponse struct {
	Mode           string    `json:"mode"`
	StartedAt      time.Time `json:"started_at"`
	EndedAt        time.Time `json:"ended_at"`
	Success        bool      `json:"success"`
	Error          string    `json:"error,omitempty"`
	ItemsProcessed int       `json:"items_processed"`
}

// LogEntryResponse is one activity log entry.
type LogEntryResponse struct {
	ID        string    `json:"id"`
	Action    string    `json:"action"`
	Module    string    `json:"module"`
	Details   string    `json:"details"`
	User      string    `json:"user"`
	Timestamp time.Time `json:"timestamp"`
}

// SourceResponse describes the store connection. The token is masked.
type SourceResponse struct {
	BaseURL     string     `json:"base_url"`
	AccessToken string     `json:"access_token"`
	Connected   bool       `json:"connected"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// ConnectSourceRequest is the body of PUT /settings/source.
type ConnectSourceRequest struct {
	BaseURL     string `json:"base_url" validate:"required,max=2048"`
	AccessToken string `json:"access_token" validate:"required,max=512"`
}

// StatusResponse is a plain status message.
type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

func toCustomerResponse(c *domain.Customer) CustomerResponse {
	return CustomerResponse{
		ID:           c.ID,
		ExternalCode: c.ExternalCode,
		Name:         c.Name,
		Email:        c.Email,
		Phone:        c.Phone,
		City:         c.City,
		Country:      c.Country,
		Location:     c.Location(),
		Active:       c.Active,
		UpdatedAt:    c.UpdatedAt,
	}
}

func toSyncStatusResponse(s domain.SyncSession) SyncStatusResponse {
	resp := SyncStatusResponse{
		InProgress:     s.InProgress,
		Mode:           string(s.Mode),
		ProcessedCount: s.ProcessedCount,
		StartedAt:      optionalTime(s.StartedAt),
		FinishedAt:     optionalTime(s.FinishedAt),
		LastSuccess:    optionalTime(s.LastSuccess),
	}
	if s.LastError != nil {
		resp.LastError = &ErrorResponse{Error: s.LastError.Message(), Kind: string(s.LastError.Kind)}
	}
	return resp
}

func toSyncResultResponse(r *domain.SyncResult) SyncResultResponse {
	resp := SyncResultResponse{
		Mode:       string(r.Mode),
		Skipped:    r.Skipped,
		Processed:  r.Processed,
		Pages:      r.Pages,
		StartedAt:  r.StartedAt,
		FinishedAt: r.FinishedAt,
		DurationMS: r.Duration().Milliseconds(),
	}
	if r.WatermarkAdvanced {
		resp.Watermark = optionalTime(r.Watermark)
	}
	if r.Err != nil {
		resp.Error = &ErrorResponse{Error: r.Err.Message(), Kind: string(r.Err.Kind)}
	}
	return resp
}

func optionalTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
