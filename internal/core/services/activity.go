package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmachaddo/egg-back-home-wms/internal/core/domain"
	"github.com/jmachaddo/egg-back-home-wms/internal/core/ports/driven"
	"github.com/jmachaddo/egg-back-home-wms/internal/core/ports/driving"
)

// Ensure ActivityLogService implements the interface.
var _ driving.ActivityLogService = (*ActivityLogService)(nil)

// ActivityLogService records and lists activity log entries.
type ActivityLogService struct {
	log driven.ActivityLog
}

// NewActivityLogService creates a new activity log service.
func NewActivityLogService(log driven.ActivityLog) *ActivityLogService {
	return &ActivityLogService{log: log}
}

// Record appends an entry attributed to the actor in ctx, or the system.
func (s *ActivityLogService) Record(ctx context.Context, action, module, details string) error {
	action = strings.TrimSpace(action)
	module = strings.TrimSpace(module)
	if action == "" || module == "" {
		return fmt.Errorf("%w: action and module are required", domain.ErrInvalidInput)
	}

	user := domain.ActorFromContext(ctx)
	if user == "" {
		user = domain.SystemActor
	}

	entry := &domain.LogEntry{Action: action, Module: module, Details: details, User: user}
	if err := s.log.Append(ctx, entry); err != nil {
		return fmt.Errorf("append activity log: %w", err)
	}
	return nil
}

// List returns entries newest first. The Settings filter also matches
// Users and Integrations entries. A limit of 0 means no limit.
func (s *ActivityLogService) List(ctx context.Context, module string, limit int) ([]domain.LogEntry, error) {
	if limit < 0 {
		return nil, fmt.Errorf("%w: limit must not be negative", domain.ErrInvalidInput)
	}
	entries, err := s.log.List(ctx, strings.TrimSpace(module), limit)
	if err != nil {
		return nil, fmt.Errorf("list activity log: %w", err)
	}
	return entries, nil
}
