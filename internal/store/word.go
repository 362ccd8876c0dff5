package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/marchen/vocabforge/internal/domain"
)

// WordStore defines the interface for word data persistence.
// Writes are visible to any read issued after the write call returns.
type WordStore interface {
	// Create saves a new word to the store.
	// Returns ErrWordExists if a word with the same text already exists.
	// Returns validation errors from the domain Word if data is invalid.
	Create(ctx context.Context, word *domain.Word) error

	// GetByID retrieves a word by its unique ID.
	// Returns ErrWordNotFound if the word does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Word, error)

	// GetByText retrieves a word by its text.
	// Returns ErrWordNotFound if the word does not exist.
	GetByText(ctx context.Context, text string) (*domain.Word, error)

	// GetByTexts retrieves words matching the given texts, preserving the
	// order of the input slice. Unknown texts are silently skipped.
	GetByTexts(ctx context.Context, texts []string) ([]*domain.Word, error)

	// UpdateContent replaces a word's learning content in a single write,
	// so readers never observe a partially populated payload.
	// Returns ErrWordNotFound if the word does not exist.
	UpdateContent(ctx context.Context, id uuid.UUID, content *domain.LearningContent) error

	// IncrementLearnCount adds one to a word's learn count.
	// Returns ErrWordNotFound if the word does not exist.
	IncrementLearnCount(ctx context.Context, id uuid.UUID) error

	// List returns all words ordered by insertion (CreatedAt, then ID).
	// The selection policy applies its ordering rules on top of this snapshot.
	List(ctx context.Context) ([]*domain.Word, error)

	// Count returns the total number of words.
	Count(ctx context.Context) (int, error)

	// CountUnstudied returns the number of words with a zero learn count.
	CountUnstudied(ctx context.Context) (int, error)

	// CountStudied returns the number of words with a positive learn count.
	CountStudied(ctx context.Context) (int, error)

	// CountWithContent returns the number of words carrying a learning payload.
	CountWithContent(ctx context.Context) (int, error)
}
