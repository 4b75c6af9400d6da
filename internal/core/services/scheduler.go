package services

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/jmachaddo/egg-back-home-wms/internal/core/domain"
	"github.com/jmachaddo/egg-back-home-wms/internal/core/ports/driven"
	"github.com/jmachaddo/egg-back-home-wms/internal/core/ports/driving"
)

// Ensure Scheduler implements the interface.
var _ driving.Scheduler = (*Scheduler)(nil)

// Scheduler runs automatic customer syncs on a fixed interval or a cron
// schedule, and forwards manual triggers to the orchestrator.
type Scheduler struct {
	config   domain.SchedulerConfig
	store    driven.SchedulerStore
	syncOrch driving.SyncOrchestrator

	mu         sync.Mutex
	running    bool
	stopCh     chan struct{}
	generation uint64
	callbacks  []func(*domain.SyncResult, error)
	wg         sync.WaitGroup
}

// NewScheduler creates a scheduler with configuration.
// The store is optional; without it no history is kept.
func NewScheduler(
	config domain.SchedulerConfig,
	store driven.SchedulerStore,
	syncOrch driving.SyncOrchestrator,
) *Scheduler {
	if config.HistoryLimit <= 0 {
		config.HistoryLimit = domain.DefaultSchedulerConfig().HistoryLimit
	}
	return &Scheduler{
		config:   config,
		store:    store,
		syncOrch: syncOrch,
	}
}

// Start begins the scheduler loop. This method blocks until Stop is called
// or ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) error {
	schedule, err := s.schedule()
	if err != nil {
		return err
	}

	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return nil // Already running
	}
	s.running = true
	s.stopCh = make(chan struct{})
	stopCh := s.stopCh
	gen := s.generation
	s.mu.Unlock()

	if err := s.ensureTask(ctx, schedule); err != nil {
		log.Printf("scheduler: failed to initialise task: %v", err)
	}

	if s.config.RunOnStart {
		s.dispatch(ctx, gen, schedule)
	}

	if s.config.Schedule != "" {
		return s.runCron(ctx, stopCh, gen, schedule)
	}
	return s.runTicker(ctx, stopCh, gen, schedule)
}

// schedule returns the cron schedule, or a constant delay for the interval.
func (s *Scheduler) schedule() (cron.Schedule, error) {
	if s.config.Schedule != "" {
		sched, err := cron.ParseStandard(s.config.Schedule)
		if err != nil {
			return nil, fmt.Errorf("%w: sync schedule %q: %v", domain.ErrInvalidInput, s.config.Schedule, err)
		}
		return sched, nil
	}
	if s.config.Interval <= 0 {
		return nil, fmt.Errorf("%w: sync interval must be positive", domain.ErrInvalidInput)
	}
	return intervalSchedule(s.config.Interval), nil
}

// runTicker fires every Interval.
func (s *Scheduler) runTicker(ctx context.Context, stopCh <-chan struct{}, gen uint64, schedule cron.Schedule) error {
	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.markStopped(stopCh)
			return ctx.Err()
		case <-stopCh:
			return nil
		case <-ticker.C:
			s.dispatch(ctx, gen, schedule)
		}
	}
}

// runCron fires on the cron expression.
func (s *Scheduler) runCron(ctx context.Context, stopCh <-chan struct{}, gen uint64, schedule cron.Schedule) error {
	c := cron.New()
	c.Schedule(schedule, cron.FuncJob(func() {
		s.dispatch(ctx, gen, schedule)
	}))
	c.Start()
	defer c.Stop()

	select {
	case <-ctx.Done():
		s.markStopped(stopCh)
		return ctx.Err()
	case <-stopCh:
		return nil
	}
}

// Stop prevents further runs and drops the results of runs already
// dispatched. It does not wait for them; use Wait for that.
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return nil
	}
	s.running = false
	s.generation++
	close(s.stopCh)
	return nil
}

// markStopped handles context cancellation as a Stop for the given run.
func (s *Scheduler) markStopped(stopCh <-chan struct{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running && s.stopCh == stopCh {
		s.running = false
		s.generation++
		close(s.stopCh)
	}
}

// Wait blocks until every dispatched run has finished.
func (s *Scheduler) Wait() {
	s.wg.Wait()
}

// TriggerManual runs a manual sync now. A run already in progress makes
// this a skipped no-op.
func (s *Scheduler) TriggerManual(ctx context.Context) (*domain.SyncResult, error) {
	result, err := s.syncOrch.RunSync(ctx, domain.SyncModeManual)
	s.recordResult(context.WithoutCancel(ctx), result, nil)

	s.mu.Lock()
	callbacks := append([]func(*domain.SyncResult, error){}, s.callbacks...)
	s.mu.Unlock()
	for _, fn := range callbacks {
		fn(result, err)
	}
	return result, err
}

// OnResult registers fn to receive every run outcome.
func (s *Scheduler) OnResult(fn func(*domain.SyncResult, error)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.callbacks = append(s.callbacks, fn)
}

// History returns recent run results, most recent first.
func (s *Scheduler) History(ctx context.Context, limit int) ([]domain.TaskResult, error) {
	if s.store == nil {
		return nil, nil
	}
	results, err := s.store.GetTaskHistory(ctx, domain.TaskIDCustomerSync, limit)
	if err != nil {
		return nil, fmt.Errorf("get sync history: %w", err)
	}
	return results, nil
}

// ensureTask creates or updates the sync task in the store.
func (s *Scheduler) ensureTask(ctx context.Context, schedule cron.Schedule) error {
	if s.store == nil {
		return nil
	}
	task, err := s.store.GetTask(ctx, domain.TaskIDCustomerSync)
	if err != nil {
		return err
	}

	now := time.Now()
	if task == nil {
		task = &domain.ScheduledTask{
			ID:      domain.TaskIDCustomerSync,
			Name:    "Customer Sync",
			Enabled: true,
		}
	}
	if task.Interval != s.config.Interval || task.NextRun.IsZero() {
		task.Interval = s.config.Interval
		task.NextRun = schedule.Next(now)
	}
	return s.store.SaveTask(ctx, task)
}

// dispatch starts an automatic run in the background. The run is detached
// from ctx cancellation so a session in flight at shutdown can finish;
// Stop and Wait decide what happens to its result.
func (s *Scheduler) dispatch(ctx context.Context, gen uint64, schedule cron.Schedule) {
	runCtx := context.WithoutCancel(ctx)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		result, err := s.syncOrch.RunSync(runCtx, domain.SyncModeAuto)
		if err != nil {
			log.Printf("scheduler: auto sync returned error: %v", err)
		}

		s.mu.Lock()
		current := s.generation == gen
		callbacks := append([]func(*domain.SyncResult, error){}, s.callbacks...)
		s.mu.Unlock()

		if !current {
			return
		}
		s.recordResult(runCtx, result, schedule)
		for _, fn := range callbacks {
			fn(result, err)
		}
	}()
}

// recordResult stores a completed run and updates the task state.
// Skipped runs are not recorded.
func (s *Scheduler) recordResult(ctx context.Context, result *domain.SyncResult, schedule cron.Schedule) {
	if s.store == nil || result == nil || result.Skipped {
		return
	}

	taskResult := &domain.TaskResult{
		TaskID:         domain.TaskIDCustomerSync,
		Mode:           result.Mode,
		StartedAt:      result.StartedAt,
		EndedAt:        result.FinishedAt,
		Success:        result.Err == nil,
		ItemsProcessed: result.Processed,
	}
	if result.Err != nil {
		taskResult.Error = result.Err.Error()
	}

	if recordErr := s.store.RecordResult(ctx, taskResult); recordErr != nil {
		log.Printf("scheduler: failed to record result: %v", recordErr)
	}

	// Keep the last HistoryLimit results.
	if pruneErr := s.store.PruneHistory(ctx, s.config.HistoryLimit); pruneErr != nil {
		log.Printf("scheduler: failed to prune history: %v", pruneErr)
	}

	task, err := s.store.GetTask(ctx, domain.TaskIDCustomerSync)
	if err != nil || task == nil {
		return
	}
	task.LastRun = taskResult.StartedAt
	if taskResult.Success {
		task.LastError = ""
		task.LastSuccess = taskResult.EndedAt
	} else {
		task.LastError = taskResult.Error
	}
	if schedule != nil {
		task.NextRun = schedule.Next(taskResult.EndedAt)
	}
	if saveErr := s.store.SaveTask(ctx, task); saveErr != nil {
		log.Printf("scheduler: failed to save task: %v", saveErr)
	}
}

// intervalSchedule is a cron.Schedule with a fixed delay that, unlike
// cron.Every, keeps sub-second precision.
type intervalSchedule time.Duration

func (d intervalSchedule) Next(t time.Time) time.Time {
	return t.Add(time.Duration(d))
}
