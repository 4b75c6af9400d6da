package sqlite

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jmachaddo/egg-back-home-wms/internal/core/domain"
	"github.com/jmachaddo/egg-back-home-wms/internal/core/ports/driven"
)

// activityLog implements driven.ActivityLog.
type activityLog struct {
	store *Store
}

var _ driven.ActivityLog = (*activityLog)(nil)

// Append records an entry.
func (s *activityLog) Append(ctx context.Context, entry *domain.LogEntry) error {
	if entry == nil {
		return domain.ErrInvalidInput
	}
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO activity_log (id, action, module, details, user_name, timestamp)
		VALUES (?, ?, ?, ?, ?, ?)
	`, entry.ID, entry.Action, entry.Module, entry.Details, entry.User, formatTime(entry.Timestamp))

	if err != nil {
		return fmt.Errorf("appending activity log entry: %w", err)
	}
	return nil
}

// List returns entries newest first.
func (s *activityLog) List(ctx context.Context, module string, limit int) ([]domain.LogEntry, error) {
	query := `SELECT id, action, module, details, user_name, timestamp FROM activity_log`
	var args []any

	if modules := domain.ModulesFor(module); len(modules) > 0 {
		query += " WHERE module IN (?" + strings.Repeat(", ?", len(modules)-1) + ")"
		for _, m := range modules {
			args = append(args, m)
		}
	}
	query += " ORDER BY timestamp DESC, rowid DESC"
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying activity log: %w", err)
	}
	defer rows.Close()

	var entries []domain.LogEntry //nolint:prealloc // size unknown from query
	for rows.Next() {
		var e domain.LogEntry
		var ts string
		if err := rows.Scan(&e.ID, &e.Action, &e.Module, &e.Details, &e.User, &ts); err != nil {
			return nil, fmt.Errorf("scanning activity log entry: %w", err)
		}
		e.Timestamp = parseTime(ts)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating activity log: %w", err)
	}

	return entries, nil
}
