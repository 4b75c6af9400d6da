package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/jmachaddo/egg-back-home-wms/internal/core/domain"
	"github.com/jmachaddo/egg-back-home-wms/internal/core/ports/driven"
	"github.com/jmachaddo/egg-back-home-wms/internal/core/ports/driving"
	"github.com/jmachaddo/egg-back-home-wms/internal/logger"
)

// Ensure SourceSettingsService implements the interface.
var _ driving.SourceSettingsService = (*SourceSettingsService)(nil)

// ActionIntegration is the activity log action for connection changes.
const ActionIntegration = "Integration"

// connectRequest is validated before the settings are stored.
type connectRequest struct {
	BaseURL     string `validate:"required,url,max=2048"`
	AccessToken string `validate:"required,max=512,excludesall= \t\r\n"`
}

// SourceSettingsService manages the e-commerce connection.
type SourceSettingsService struct {
	store    driven.SourceConfigStore
	factory  driven.CustomerSourceFactory
	activity driven.ActivityLog
	validate *validator.Validate
	now      func() time.Time
}

// NewSourceSettingsService creates a new source settings service.
// The factory is only needed for TestConnection; the activity log is optional.
func NewSourceSettingsService(
	store driven.SourceConfigStore,
	factory driven.CustomerSourceFactory,
	activity driven.ActivityLog,
) *SourceSettingsService {
	return &SourceSettingsService{
		store:    store,
		factory:  factory,
		activity: activity,
		validate: validator.New(),
		now:      time.Now,
	}
}

// Get returns the current connection settings.
func (s *SourceSettingsService) Get(ctx context.Context) (*domain.SourceConfig, error) {
	return s.store.Get(ctx)
}

// Connect validates and stores the settings, marking the source connected.
// The URL is stored in normalised form.
func (s *SourceSettingsService) Connect(ctx context.Context, baseURL, accessToken string) (*domain.SourceConfig, error) {
	req := connectRequest{
		BaseURL:     domain.NormaliseBaseURL(baseURL),
		AccessToken: strings.TrimSpace(accessToken),
	}
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, describeValidation(err))
	}

	cfg := domain.SourceConfig{
		BaseURL:     req.BaseURL,
		AccessToken: req.AccessToken,
		Connected:   true,
		UpdatedAt:   s.now(),
	}
	if err := s.store.Save(ctx, cfg); err != nil {
		return nil, fmt.Errorf("save source config: %w", err)
	}

	logger.Info("source: connected to %s", cfg.BaseURL)
	s.record(ctx, "connected: "+cfg.BaseURL)
	return &cfg, nil
}

// Disconnect marks the source disconnected and forgets the token.
// Disconnecting a source that was never configured is a no-op.
func (s *SourceSettingsService) Disconnect(ctx context.Context) error {
	cfg, err := s.store.Get(ctx)
	if errors.Is(err, domain.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("get source config: %w", err)
	}

	cfg.Connected = false
	cfg.AccessToken = ""
	cfg.UpdatedAt = s.now()
	if err := s.store.Save(ctx, *cfg); err != nil {
		return fmt.Errorf("save source config: %w", err)
	}

	logger.Info("source: disconnected from %s", cfg.BaseURL)
	s.record(ctx, "disconnected: "+cfg.BaseURL)
	return nil
}

// TestConnection fetches a single record with the stored settings.
// Failures are returned as *domain.SyncError.
func (s *SourceSettingsService) TestConnection(ctx context.Context) error {
	cfg, err := s.store.Get(ctx)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return domain.NewSyncError(domain.KindStorage, fmt.Errorf("get source config: %w", err))
	}
	if !cfg.IsConfigured() {
		return domain.NewSyncError(domain.KindConfiguration, nil)
	}
	if s.factory == nil {
		return domain.NewSyncError(domain.KindConfiguration, errors.New("customer source factory not configured"))
	}

	source, err := s.factory.Create(*cfg)
	if err != nil {
		return domain.NewSyncError(domain.KindConfiguration, fmt.Errorf("create source client: %w", err))
	}
	if err := source.Ping(ctx); err != nil {
		return domain.ClassifyError(err)
	}
	return nil
}

func (s *SourceSettingsService) record(ctx context.Context, details string) {
	if s.activity == nil {
		return
	}
	entry := &domain.LogEntry{
		Action:  ActionIntegration,
		Module:  domain.ModuleIntegrations,
		Details: details,
		User:    actorFor(ctx, domain.SyncModeManual),
	}
	if err := s.activity.Append(ctx, entry); err != nil {
		logger.Warn("source: failed to write activity log: %v", err)
	}
}

// describeValidation turns validator errors into "field: problem" text.
func describeValidation(err error) string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err.Error()
	}

	parts := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		field := strings.ToLower(e.Field())
		switch e.Tag() {
		case "required":
			parts = append(parts, field+" is required")
		case "url":
			parts = append(parts, field+" is not a valid URL")
		case "max":
			parts = append(parts, fmt.Sprintf("%s must be at most %s characters", field, e.Param()))
		case "excludesall":
			parts = append(parts, field+" must not contain whitespace")
		default:
			parts = append(parts, field+" is invalid")
		}
	}
	return strings.Join(parts, "; ")
}
