package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/marchen/vocabforge/internal/domain"
)

// EssayStore defines the interface for essay data persistence.
type EssayStore interface {
	// Create saves a new essay to the store. Essays are immutable once
	// created; there is deliberately no update operation.
	// Returns validation errors from the domain Essay if data is invalid.
	Create(ctx context.Context, essay *domain.Essay) error

	// GetByID retrieves an essay by its unique ID.
	// Returns ErrEssayNotFound if the essay does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Essay, error)

	// List retrieves essays ordered newest first, with limit/offset pagination.
	// Returns an empty slice if no essays exist in the requested window.
	List(ctx context.Context, limit, offset int) ([]*domain.Essay, error)

	// Count returns the total number of essays.
	Count(ctx context.Context) (int, error)
}
