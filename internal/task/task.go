package task

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Status represents the current state of a task
type Status string

// Possible task status values. Pending and running are the only
// non-terminal states; succeeded and failed are absorbing.
const (
	StatusPending   Status = "pending"
	StatusRunning   Status = "running"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Terminal reports whether the status admits no further transitions.
func (s Status) Terminal() bool {
	return s == StatusSucceeded || s == StatusFailed
}

// ErrorCategory classifies why a task failed. Polling clients receive the
// category plus a human-readable detail, never a raw error trace.
type ErrorCategory string

// Possible failure categories.
const (
	CategoryUpstream    ErrorCategory = "upstream_error"
	CategoryTimeout     ErrorCategory = "generation_timeout"
	CategoryMalformed   ErrorCategory = "generation_malformed_response"
	CategoryPersistence ErrorCategory = "persistence_error"
	CategoryInternal    ErrorCategory = "internal_error"
)

// Registry operation errors. These propagate synchronously to callers;
// worker failures instead surface as data on the failed task.
var (
	// ErrTaskNotFound is returned when the given task ID is unknown.
	ErrTaskNotFound = errors.New("task not found")

	// ErrInvalidState is returned when an operation is not valid for the
	// task's current state, e.g. starting a task twice.
	ErrInvalidState = errors.New("operation not valid for current task state")

	// ErrResourceExhausted is returned when the registry cannot track any
	// more tasks.
	ErrResourceExhausted = errors.New("task registry capacity exhausted")
)

// Task is an immutable snapshot of one asynchronous generation request.
// Exactly one of Result and Error is populated once the status is terminal.
type Task struct {
	ID          uuid.UUID     `json:"id"`
	Status      Status        `json:"status"`
	Progress    int           `json:"progress"`
	Result      any           `json:"result,omitempty"`
	Category    ErrorCategory `json:"error_category,omitempty"`
	Error       string        `json:"error,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	StartedAt   time.Time     `json:"started_at,omitzero"`
	CompletedAt time.Time     `json:"completed_at,omitzero"`
}

// JobError carries a failure category alongside the underlying error so the
// registry can record why a job failed without inspecting collaborator
// error types itself.
type JobError struct {
	Category ErrorCategory
	Err      error
}

// Error implements the error interface for JobError.
func (e *JobError) Error() string {
	return string(e.Category) + ": " + e.Err.Error()
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *JobError) Unwrap() error {
	return e.Err
}

// NewJobError creates a JobError with the given category and cause.
func NewJobError(category ErrorCategory, err error) *JobError {
	return &JobError{Category: category, Err: err}
}
