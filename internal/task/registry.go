package task

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ProgressFunc reports coarse completion milestones for a running job.
// Values are clamped into [0,100]; a value lower than the last reported
// one is ignored rather than rejected, which tolerates out-of-order
// callbacks from the job internals.
type ProgressFunc func(percent int)

// Work is one unit of deferred execution owned by a single task. It runs
// on its own goroutine, reports progress through the supplied callback,
// and finishes by returning a result or an error. Returning a *JobError
// preserves the failure category on the task; any other error is recorded
// as an internal failure.
type Work func(ctx context.Context, report ProgressFunc) (any, error)

// RegistryConfig holds configuration for the task registry.
type RegistryConfig struct {
	// MaxTasks caps how many tasks the registry tracks at once.
	// CreateTask fails with ErrResourceExhausted beyond this.
	MaxTasks int

	// TaskTimeout is how long a task may stay running before the sweeper
	// forces it to failed. This is the only path by which a task becomes
	// terminal without worker cooperation.
	TaskTimeout time.Duration

	// Retention is how long terminal tasks remain readable after their
	// completion timestamp before the sweeper drops them.
	Retention time.Duration

	// SweepInterval defines how often the background sweeper runs.
	// If zero, defaults to 30 seconds.
	SweepInterval time.Duration
}

// DefaultRegistryConfig returns a RegistryConfig with reasonable defaults.
func DefaultRegistryConfig() RegistryConfig {
	return RegistryConfig{
		MaxTasks:      1000,
		TaskTimeout:   5 * time.Minute,
		Retention:     time.Hour,
		SweepInterval: 30 * time.Second,
	}
}

// Registry creates, tracks, and exposes the lifecycle of asynchronous
// generation tasks. It is constructed explicitly and passed to whichever
// component needs it; there is no package-level instance.
type Registry struct {
	mu    sync.Mutex
	tasks map[uuid.UUID]*Task

	config  RegistryConfig
	logger  *slog.Logger
	metrics *registryMetrics

	ctx        context.Context
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
}

// NewRegistry creates a task registry. Metrics are registered on the given
// registerer when it is non-nil.
func NewRegistry(config RegistryConfig, logger *slog.Logger, reg registerer) *Registry {
	if config.SweepInterval == 0 {
		config.SweepInterval = 30 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Registry{
		tasks:      make(map[uuid.UUID]*Task),
		config:     config,
		logger:     logger.With(slog.String("component", "task_registry")),
		metrics:    newRegistryMetrics(reg),
		ctx:        ctx,
		cancelFunc: cancel,
	}
}

// CreateTask allocates a fresh task in pending status and returns its ID.
// Fails only with ErrResourceExhausted when the registry is at capacity.
func (r *Registry) CreateTask() (uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.config.MaxTasks > 0 && len(r.tasks) >= r.config.MaxTasks {
		return uuid.Nil, ErrResourceExhausted
	}

	id := uuid.New()
	r.tasks[id] = &Task{
		ID:        id,
		Status:    StatusPending,
		CreatedAt: time.Now().UTC(),
	}

	r.metrics.created.Inc()
	r.metrics.inFlight.Inc()
	return id, nil
}

// Start transitions a pending task to running and schedules work on its
// own goroutine, so the caller returns immediately. Every outcome of the
// work, including a panic, is translated into a terminal task state.
// Returns ErrTaskNotFound for an unknown ID and ErrInvalidState if the
// task is not pending.
func (r *Registry) Start(id uuid.UUID, work Work) error {
	r.mu.Lock()
	t, ok := r.tasks[id]
	if !ok {
		r.mu.Unlock()
		return ErrTaskNotFound
	}
	if t.Status != StatusPending {
		r.mu.Unlock()
		return fmt.Errorf("%w: task is %s, want pending", ErrInvalidState, t.Status)
	}
	t.Status = StatusRunning
	t.StartedAt = time.Now().UTC()
	r.mu.Unlock()

	r.logger.Info("task started", "task_id", id)

	r.wg.Add(1)
	go r.execute(id, work)
	return nil
}

// execute runs one unit of work and reports its outcome back into the
// registry. It is the single writer for the task until a terminal state
// is reached; only the sweeper may preempt it.
func (r *Registry) execute(id uuid.UUID, work Work) {
	defer r.wg.Done()
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("task panicked", "task_id", id, "panic", rec)
			r.Fail(id, CategoryInternal, fmt.Sprintf("panic: %v", rec))
		}
	}()

	report := func(percent int) { r.ReportProgress(id, percent) }

	result, err := work(r.ctx, report)
	if err != nil {
		category := CategoryInternal
		var jobErr *JobError
		if errors.As(err, &jobErr) {
			category = jobErr.Category
		}
		r.Fail(id, category, err.Error())
		return
	}
	r.Complete(id, result)
}

// ReportProgress records a progress update for a running task. The value
// is clamped into [0,100] and must not decrease; lower values are ignored.
// No-op for unknown or terminal tasks.
func (r *Registry) ReportProgress(id uuid.UUID, percent int) {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tasks[id]
	if !ok || t.Status.Terminal() {
		return
	}
	if percent > t.Progress {
		t.Progress = percent
	}
}

// Complete transitions a running task to succeeded and attaches the result.
// Idempotent: once a task is terminal the first writer has won and further
// calls are no-ops, so a duplicate completion signal from a retried worker
// cannot corrupt state.
func (r *Registry) Complete(id uuid.UUID, result any) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tasks[id]
	if !ok || t.Status.Terminal() {
		return
	}

	t.Status = StatusSucceeded
	t.Progress = 100
	t.Result = result
	t.CompletedAt = time.Now().UTC()

	r.metrics.succeeded.Inc()
	r.metrics.inFlight.Dec()
	r.logger.Info("task succeeded", "task_id", id)
}

// Fail transitions a running task to failed with a categorized error.
// Idempotent in the same way as Complete.
func (r *Registry) Fail(id uuid.UUID, category ErrorCategory, detail string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failLocked(id, category, detail)
}

func (r *Registry) failLocked(id uuid.UUID, category ErrorCategory, detail string) {
	t, ok := r.tasks[id]
	if !ok || t.Status.Terminal() {
		return
	}

	t.Status = StatusFailed
	t.Category = category
	t.Error = detail
	t.CompletedAt = time.Now().UTC()

	r.metrics.failed.WithLabelValues(string(category)).Inc()
	r.metrics.inFlight.Dec()
	r.logger.Warn("task failed", "task_id", id, "category", category, "detail", detail)
}

// Get returns an immutable snapshot of the task's current state. Safe to
// call concurrently with any in-flight mutation; readers never observe a
// partially updated task. Returns ErrTaskNotFound for an unknown ID.
func (r *Registry) Get(id uuid.UUID) (Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tasks[id]
	if !ok {
		return Task{}, ErrTaskNotFound
	}
	return *t, nil
}

// Sweep forces any running task older than the configured timeout to
// failed with a timeout category, and drops terminal tasks past the
// retention window. Called periodically by Run, and callable directly
// with an explicit clock for tests.
func (r *Registry) Sweep(now time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, t := range r.tasks {
		switch {
		case t.Status == StatusRunning && r.config.TaskTimeout > 0 &&
			now.Sub(t.StartedAt) > r.config.TaskTimeout:
			r.failLocked(id, CategoryTimeout, fmt.Sprintf(
				"task exceeded %s timeout", r.config.TaskTimeout))

		case t.Status.Terminal() && r.config.Retention > 0 &&
			now.Sub(t.CompletedAt) > r.config.Retention:
			delete(r.tasks, id)
		}
	}
}

// Run starts the background sweeper and blocks until the given context is
// cancelled. A hung external call must not leave a task running forever,
// so the sweeper runs independent of worker cooperation.
func (r *Registry) Run(ctx context.Context) {
	ticker := time.NewTicker(r.config.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-r.ctx.Done():
			return
		case now := <-ticker.C:
			r.Sweep(now)
		}
	}
}

// Stop cancels all running work and waits for worker goroutines to finish.
func (r *Registry) Stop() {
	r.cancelFunc()
	r.wg.Wait()
}

// Len reports how many tasks the registry currently tracks.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.tasks)
}
