package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jmachaddo/egg-back-home-wms/internal/core/domain"
	"github.com/jmachaddo/egg-back-home-wms/internal/core/ports/driven"
	"github.com/jmachaddo/egg-back-home-wms/internal/core/ports/driving"
	"github.com/jmachaddo/egg-back-home-wms/internal/logger"
	"github.com/jmachaddo/egg-back-home-wms/internal/metrics"
)

// Ensure SyncOrchestrator implements the interface.
var _ driving.SyncOrchestrator = (*SyncOrchestrator)(nil)

// Activity log actions written by the orchestrator.
const (
	ActionSyncError = "Sync error"
	actionSyncFmt   = "Sync (%s)"
)

// SyncOrchestrator runs customer synchronisation sessions.
// At most one session runs at a time; overlapping calls are skipped.
type SyncOrchestrator struct {
	sourceConfig driven.SourceConfigStore
	customers    driven.CustomerStore
	watermarks   driven.WatermarkStore
	factory      driven.CustomerSourceFactory
	normaliser   driven.CustomerNormaliser
	activity     driven.ActivityLog
	now          func() time.Time

	mu          sync.Mutex
	session     domain.SyncSession
	list        []domain.Customer
	loaded      bool
	subscribers map[int]func(domain.SyncSession)
	nextSubID   int
}

// NewSyncOrchestrator creates a new sync orchestrator.
// The activity log is optional; if nil, no entries are written.
func NewSyncOrchestrator(
	sourceConfig driven.SourceConfigStore,
	customers driven.CustomerStore,
	watermarks driven.WatermarkStore,
	factory driven.CustomerSourceFactory,
	normaliser driven.CustomerNormaliser,
	activity driven.ActivityLog,
) *SyncOrchestrator {
	return &SyncOrchestrator{
		sourceConfig: sourceConfig,
		customers:    customers,
		watermarks:   watermarks,
		factory:      factory,
		normaliser:   normaliser,
		activity:     activity,
		now:          time.Now,
		subscribers:  make(map[int]func(domain.SyncSession)),
	}
}

// SetClock replaces the time source. Used by tests.
func (o *SyncOrchestrator) SetClock(now func() time.Time) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.now = now
}

// RunSync runs one synchronisation session.
//
// Manual runs return the classified *domain.SyncError on failure. Auto runs
// never return an error; the failure is carried in result.Err and logged.
// A call made while a session is running returns a skipped result.
func (o *SyncOrchestrator) RunSync(ctx context.Context, mode domain.SyncMode) (result *domain.SyncResult, err error) {
	if !mode.IsValid() {
		return nil, fmt.Errorf("%w: sync mode %q", domain.ErrInvalidInput, mode)
	}

	o.mu.Lock()
	start := o.now()
	if o.session.InProgress {
		skipped := &domain.SyncResult{
			Mode:       mode,
			Skipped:    true,
			Processed:  o.session.ProcessedCount,
			StartedAt:  start,
			FinishedAt: start,
		}
		o.mu.Unlock()
		metrics.SyncRunsTotal.WithLabelValues(string(mode), metrics.OutcomeSkipped).Inc()
		logger.Debug("sync: %s run skipped, a session is already in progress", mode)
		return skipped, nil
	}
	o.session.InProgress = true
	o.session.Mode = mode
	o.session.ProcessedCount = 0
	o.session.LastError = nil
	o.session.StartedAt = start
	o.session.FinishedAt = time.Time{}
	snapshot := o.session
	o.mu.Unlock()

	metrics.SyncInProgress.Set(1)
	o.notify(snapshot)
	logger.Info("sync: starting %s run", mode)

	result = &domain.SyncResult{Mode: mode, StartedAt: start}
	silent := false
	defer func() {
		if r := recover(); r != nil {
			logger.Error("sync: recovered from panic: %v", r)
			result.Err = domain.NewSyncError(domain.KindUnknown, fmt.Errorf("panic: %v", r))
			silent = false
		}
		err = o.complete(ctx, result, silent)
	}()

	result.Err, silent = o.run(ctx, result)
	return result, nil
}

// run performs the fetch, normalise, upsert loop.
// silent reports an auto run skipped because the source is not connected.
func (o *SyncOrchestrator) run(ctx context.Context, result *domain.SyncResult) (serr *domain.SyncError, silent bool) {
	cfg, err := o.sourceConfig.Get(ctx)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return storageError(fmt.Errorf("get source config: %w", err)), false
	}
	if !cfg.IsConfigured() {
		if result.Mode == domain.SyncModeAuto {
			logger.Debug("sync: source not connected, nothing to do")
			return nil, true
		}
		return domain.NewSyncError(domain.KindConfiguration, nil), false
	}

	if o.factory == nil {
		return domain.NewSyncError(domain.KindConfiguration, errors.New("customer source factory not configured")), false
	}
	source, err := o.factory.Create(*cfg)
	if err != nil {
		return domain.NewSyncError(domain.KindConfiguration, fmt.Errorf("create source client: %w", err)), false
	}

	var since *time.Time
	wm, err := o.watermarks.Get(ctx, domain.EntityCustomers)
	switch {
	case err == nil:
		since = &wm.LastSyncedAt
	case errors.Is(err, domain.ErrNotFound):
		logger.Debug("sync: no watermark, fetching full collection")
	default:
		return storageError(fmt.Errorf("get watermark: %w", err)), false
	}

	pageURL := source.InitialURL(since)
	for pageURL != "" {
		page, err := source.FetchPage(ctx, pageURL)
		if err != nil {
			return domain.ClassifyError(err), false
		}
		result.Pages++
		metrics.SyncPagesFetched.Inc()

		if len(page.Records) > 0 {
			if err := o.upsertPage(ctx, page.Records); err != nil {
				return storageError(err), false
			}
			result.Processed += len(page.Records)
			metrics.SyncCustomersUpserted.Add(float64(len(page.Records)))
			o.setProgress(result.Processed)
		}

		if page.NextURL == pageURL {
			return domain.NewSyncError(domain.KindUpstream,
				fmt.Errorf("next page link repeats the current page after %d pages", result.Pages)), false
		}
		pageURL = page.NextURL
	}

	// The list is reloaded first so a failed reload leaves the watermark alone.
	if _, err := o.reload(ctx); err != nil {
		return storageError(err), false
	}

	// A zero-record auto run leaves the watermark alone.
	if result.Processed > 0 || result.Mode == domain.SyncModeManual {
		next := domain.SyncWatermark{EntityType: domain.EntityCustomers, LastSyncedAt: result.StartedAt}
		if err := o.watermarks.Set(ctx, next); err != nil {
			return storageError(fmt.Errorf("set watermark: %w", err)), false
		}
		result.WatermarkAdvanced = true
		result.Watermark = next.LastSyncedAt
		metrics.SyncWatermark.Set(float64(next.LastSyncedAt.Unix()))
	}
	return nil, false
}

// upsertPage normalises a page and writes it in one batch.
func (o *SyncOrchestrator) upsertPage(ctx context.Context, records []domain.RawCustomer) error {
	stamp := o.clock()
	batch := make([]domain.Customer, 0, len(records))
	for i := range records {
		c := o.normaliser.Normalise(&records[i])
		c.ID = ""
		c.UpdatedAt = stamp
		batch = append(batch, c)
	}
	if err := o.customers.UpsertBatch(ctx, batch); err != nil {
		return fmt.Errorf("upsert customers: %w", err)
	}
	return nil
}

// complete records the outcome and clears the in-progress flag.
func (o *SyncOrchestrator) complete(ctx context.Context, result *domain.SyncResult, silent bool) error {
	result.FinishedAt = o.clock()
	ctx = context.WithoutCancel(ctx)

	outcome := metrics.OutcomeSuccess
	if result.Err != nil {
		outcome = metrics.OutcomeFailure
	}
	metrics.SyncRunsTotal.WithLabelValues(string(result.Mode), outcome).Inc()
	metrics.SyncDuration.WithLabelValues(string(result.Mode)).Observe(result.Duration().Seconds())

	switch {
	case result.Err != nil:
		logger.Warn("sync: %s run failed after %d customers: %v", result.Mode, result.Processed, result.Err)
		o.record(ctx, &domain.LogEntry{
			Action:  ActionSyncError,
			Module:  domain.ModuleMasterData,
			Details: "failed: " + result.Err.Message(),
			User:    actorFor(ctx, result.Mode),
		})
	case !silent:
		logger.Info("sync: %s run synchronised %d customers in %s", result.Mode, result.Processed, result.Duration())
		o.record(ctx, &domain.LogEntry{
			Action:  fmt.Sprintf(actionSyncFmt, result.Mode),
			Module:  domain.ModuleMasterData,
			Details: fmt.Sprintf("synchronised %d customers", result.Processed),
			User:    actorFor(ctx, result.Mode),
		})
	}

	o.mu.Lock()
	o.session.InProgress = false
	o.session.ProcessedCount = result.Processed
	o.session.FinishedAt = result.FinishedAt
	o.session.LastError = result.Err
	if result.Err == nil && !silent {
		o.session.LastSuccess = result.FinishedAt
	}
	snapshot := o.session
	o.mu.Unlock()

	metrics.SyncInProgress.Set(0)
	o.notify(snapshot)

	if result.Err != nil && result.Mode == domain.SyncModeManual {
		return result.Err
	}
	return nil
}

// record appends an activity entry; failures are logged, not returned.
func (o *SyncOrchestrator) record(ctx context.Context, entry *domain.LogEntry) {
	if o.activity == nil {
		return
	}
	if err := o.activity.Append(ctx, entry); err != nil {
		logger.Warn("sync: failed to write activity log: %v", err)
	}
}

// Session returns a snapshot of the current session.
func (o *SyncOrchestrator) Session() domain.SyncSession {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.session
}

// Customers returns the customer list as of the last successful run.
// The store is read on first use.
func (o *SyncOrchestrator) Customers(ctx context.Context) ([]domain.Customer, error) {
	o.mu.Lock()
	if o.loaded {
		out := make([]domain.Customer, len(o.list))
		copy(out, o.list)
		o.mu.Unlock()
		return out, nil
	}
	o.mu.Unlock()

	return o.reload(ctx)
}

// reload refreshes the cached customer list from the store.
func (o *SyncOrchestrator) reload(ctx context.Context) ([]domain.Customer, error) {
	list, err := o.customers.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}

	o.mu.Lock()
	o.list = list
	o.loaded = true
	o.mu.Unlock()

	out := make([]domain.Customer, len(list))
	copy(out, list)
	return out, nil
}

// Subscribe registers fn to receive a session snapshot on every change.
// The returned function removes the subscription.
func (o *SyncOrchestrator) Subscribe(fn func(domain.SyncSession)) (unsubscribe func()) {
	o.mu.Lock()
	id := o.nextSubID
	o.nextSubID++
	o.subscribers[id] = fn
	o.mu.Unlock()

	return func() {
		o.mu.Lock()
		delete(o.subscribers, id)
		o.mu.Unlock()
	}
}

func (o *SyncOrchestrator) setProgress(processed int) {
	o.mu.Lock()
	o.session.ProcessedCount = processed
	snapshot := o.session
	o.mu.Unlock()
	o.notify(snapshot)
}

// notify calls subscribers outside the lock.
func (o *SyncOrchestrator) notify(snapshot domain.SyncSession) {
	o.mu.Lock()
	fns := make([]func(domain.SyncSession), 0, len(o.subscribers))
	for _, fn := range o.subscribers {
		fns = append(fns, fn)
	}
	o.mu.Unlock()

	for _, fn := range fns {
		fn(snapshot)
	}
}

func (o *SyncOrchestrator) clock() time.Time {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.now()
}

// storageError classifies store failures. Errors that are already
// classified keep their kind.
func storageError(err error) *domain.SyncError {
	var se *domain.SyncError
	if errors.As(err, &se) {
		return se
	}
	return domain.NewSyncError(domain.KindStorage, err)
}

// actorFor names the user recorded in activity entries.
// Auto runs are always attributed to the system.
func actorFor(ctx context.Context, mode domain.SyncMode) string {
	if mode == domain.SyncModeAuto {
		return domain.SystemActor
	}
	if actor := domain.ActorFromContext(ctx); actor != "" {
		return actor
	}
	return mode.DefaultActor()
}
