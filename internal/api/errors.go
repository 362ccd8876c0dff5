package api

import (
	"errors"
	"net/http"

	"github.com/marchen/vocabforge/internal/selection"
	"github.com/marchen/vocabforge/internal/service"
	"github.com/marchen/vocabforge/internal/store"
	"github.com/marchen/vocabforge/internal/task"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes without
// leaking internal error types or messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, task.ErrTaskNotFound),
		errors.Is(err, store.ErrWordNotFound),
		errors.Is(err, store.ErrEssayNotFound),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Bad request errors
	case errors.Is(err, service.ErrInvalidWordCount),
		errors.Is(err, service.ErrInvalidEssayType),
		errors.Is(err, service.ErrInvalidPagination),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	// Conflict errors
	case errors.Is(err, task.ErrInvalidState),
		errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	// Capacity and precondition errors
	case errors.Is(err, task.ErrResourceExhausted):
		return http.StatusTooManyRequests
	case errors.Is(err, selection.ErrInsufficientWords):
		return http.StatusConflict

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-facing message for the
// error.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, task.ErrTaskNotFound):
		return "Task not found"
	case errors.Is(err, store.ErrWordNotFound):
		return "Word not found"
	case errors.Is(err, store.ErrEssayNotFound):
		return "Essay not found"
	case errors.Is(err, store.ErrNotFound):
		return "Resource not found"
	case errors.Is(err, service.ErrInvalidWordCount):
		return "Word count must be between 1 and 20"
	case errors.Is(err, service.ErrInvalidEssayType):
		return "Essay type must be one of: story, fairy_tale, news, prophecy"
	case errors.Is(err, service.ErrInvalidPagination):
		return "Page parameters must be positive"
	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid request data"
	case errors.Is(err, task.ErrInvalidState):
		return "Task is not in a state that allows this operation"
	case errors.Is(err, store.ErrDuplicate):
		return "Resource already exists"
	case errors.Is(err, task.ErrResourceExhausted):
		return "Too many generation tasks in flight, try again later"
	case errors.Is(err, selection.ErrInsufficientWords):
		return "Not enough words in the vocabulary for this request"
	default:
		return "An unexpected error occurred"
	}
}
