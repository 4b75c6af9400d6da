package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jmachaddo/egg-back-home-wms/internal/core/domain"
	"github.com/jmachaddo/egg-back-home-wms/internal/core/ports/driven"
)

// schedulerStore implements driven.SchedulerStore.
type schedulerStore struct {
	pool *pgxpool.Pool
}

var _ driven.SchedulerStore = (*schedulerStore)(nil)

// GetTask retrieves a scheduled task by ID.
// Returns nil and no error if the task does not exist.
func (s *schedulerStore) GetTask(ctx context.Context, taskID string) (*domain.ScheduledTask, error) {
	var task domain.ScheduledTask
	var intervalNs int64
	var lastRun, nextRun, lastSuccess *time.Time

	err := s.pool.QueryRow(ctx, `
		SELECT id, name, interval_ns, last_run, next_run, last_error, last_success, enabled
		FROM scheduled_tasks WHERE id = $1
	`, taskID).Scan(&task.ID, &task.Name, &intervalNs,
		&lastRun, &nextRun, &task.LastError, &lastSuccess, &task.Enabled)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scanning scheduled task: %w", err)
	}

	task.Interval = time.Duration(intervalNs)
	task.LastRun = derefTime(lastRun)
	task.NextRun = derefTime(nextRun)
	task.LastSuccess = derefTime(lastSuccess)
	return &task, nil
}

// SaveTask persists a task's state.
func (s *schedulerStore) SaveTask(ctx context.Context, task *domain.ScheduledTask) error {
	if task == nil {
		return domain.ErrInvalidInput
	}

	_, err := s.pool.Exec(ctx, `
		INSERT INTO scheduled_tasks (id, name, interval_ns, last_run, next_run, last_error, last_success, enabled)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			interval_ns = EXCLUDED.interval_ns,
			last_run = EXCLUDED.last_run,
			next_run = EXCLUDED.next_run,
			last_error = EXCLUDED.last_error,
			last_success = EXCLUDED.last_success,
			enabled = EXCLUDED.enabled
	`, task.ID, task.Name, int64(task.Interval),
		nullableTime(task.LastRun), nullableTime(task.NextRun),
		task.LastError, nullableTime(task.LastSuccess), task.Enabled)
	if err != nil {
		return fmt.Errorf("saving scheduled task: %w", err)
	}
	return nil
}

// RecordResult logs a task execution result.
func (s *schedulerStore) RecordResult(ctx context.Context, result *domain.TaskResult) error {
	if result == nil {
		return domain.ErrInvalidInput
	}

	_, err := s.pool.Exec(ctx, `
		INSERT INTO task_results (task_id, mode, started_at, ended_at, success, error, items_processed)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, result.TaskID, string(result.Mode), result.StartedAt.UTC(), result.EndedAt.UTC(),
		result.Success, result.Error, result.ItemsProcessed)
	if err != nil {
		return fmt.Errorf("recording task result: %w", err)
	}
	return nil
}

// GetTaskHistory returns recent results for a task, most recent first.
// A limit of 0 returns everything.
func (s *schedulerStore) GetTaskHistory(ctx context.Context, taskID string, limit int) ([]domain.TaskResult, error) {
	// LIMIT NULL means no limit in PostgreSQL.
	var lim *int
	if limit > 0 {
		lim = &limit
	}
	rows, err := s.pool.Query(ctx, `
		SELECT task_id, mode, started_at, ended_at, success, error, items_processed
		FROM task_results
		WHERE task_id = $1
		ORDER BY started_at DESC, id DESC
		LIMIT $2
	`, taskID, lim)
	if err != nil {
		return nil, fmt.Errorf("querying task history: %w", err)
	}
	defer rows.Close()

	var results []domain.TaskResult //nolint:prealloc // size unknown from query
	for rows.Next() {
		var result domain.TaskResult
		var mode string
		if err := rows.Scan(&result.TaskID, &mode, &result.StartedAt, &result.EndedAt,
			&result.Success, &result.Error, &result.ItemsProcessed); err != nil {
			return nil, fmt.Errorf("scanning task result: %w", err)
		}
		result.Mode = domain.SyncMode(mode)
		result.StartedAt = result.StartedAt.UTC()
		result.EndedAt = result.EndedAt.UTC()
		results = append(results, result)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating task history: %w", err)
	}

	return results, nil
}

// PruneHistory keeps the most recent 'keep' results per task.
func (s *schedulerStore) PruneHistory(ctx context.Context, keep int) error {
	_, err := s.pool.Exec(ctx, `
		DELETE FROM task_results
		WHERE id IN (
			SELECT id FROM (
				SELECT id, ROW_NUMBER() OVER (PARTITION BY task_id ORDER BY started_at DESC, id DESC) AS rn
				FROM task_results
			) ranked WHERE rn > $1
		)
	`, keep)
	if err != nil {
		return fmt.Errorf("pruning task history: %w", err)
	}
	return nil
}
