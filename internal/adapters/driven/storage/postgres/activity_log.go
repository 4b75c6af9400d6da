package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jmachaddo/egg-back-home-wms/internal/core/domain"
	"github.com/jmachaddo/egg-back-home-wms/internal/core/ports/driven"
)

// activityLog implements driven.ActivityLog.
type activityLog struct {
	pool *pgxpool.Pool
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

	_, err := s.pool.Exec(ctx, `
		INSERT INTO activity_log (id, action, module, details, user_name, timestamp)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, entry.ID, entry.Action, entry.Module, entry.Details, entry.User, entry.Timestamp.UTC())
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
		args = append(args, modules)
		query += fmt.Sprintf(" WHERE module = ANY($%d)", len(args))
	}
	query += " ORDER BY timestamp DESC, seq DESC"
	if limit > 0 {
		args = append(args, limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying activity log: %w", err)
	}
	defer rows.Close()

	var entries []domain.LogEntry //nolint:prealloc // size unknown from query
	for rows.Next() {
		var e domain.LogEntry
		if err := rows.Scan(&e.ID, &e.Action, &e.Module, &e.Details, &e.User, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("scanning activity log entry: %w", err)
		}
		e.Timestamp = e.Timestamp.UTC()
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating activity log: %w", err)
	}

	return entries, nil
}
