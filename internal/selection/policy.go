// Package selection decides which words form the next generation batch.
// The policy is pure with respect to the word-store snapshot it reads: it
// performs no writes, so concurrent selections are safe and may overlap.
package selection

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/marchen/vocabforge/internal/domain"
	"github.com/marchen/vocabforge/internal/store"
)

// ErrInsufficientWords is returned when the store holds fewer words than
// the requested batch size.
var ErrInsufficientWords = errors.New("not enough words to fill the batch")

// WordLister is the read-only slice of store.WordStore the policy needs.
type WordLister interface {
	List(ctx context.Context) ([]*domain.Word, error)
}

// Policy chooses the next batch of words to study. Never-studied words are
// preferred in insertion order; the remainder is filled oldest-least-learned
// first. Ordering is deterministic so two selections over the same snapshot
// agree.
type Policy struct {
	words WordLister
}

// NewPolicy creates a selection policy reading from the given store.
func NewPolicy(words WordLister) *Policy {
	return &Policy{words: words}
}

// Ensure the full store interface satisfies WordLister.
var _ WordLister = (store.WordStore)(nil)

// Select returns batchSize words ordered by ascending learn count, breaking
// ties by insertion order (CreatedAt, then ID). Words with a zero learn
// count therefore always precede studied ones. Returns ErrInsufficientWords
// if the store holds fewer than batchSize words.
func (p *Policy) Select(ctx context.Context, batchSize int) ([]*domain.Word, error) {
	if batchSize <= 0 {
		return nil, fmt.Errorf("batch size must be positive, got %d", batchSize)
	}

	words, err := p.words.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list words: %w", err)
	}

	if len(words) < batchSize {
		return nil, fmt.Errorf("%w: have %d, want %d", ErrInsufficientWords, len(words), batchSize)
	}

	ordered := make([]*domain.Word, len(words))
	copy(ordered, words)

	// The store lists words in insertion order; a stable sort on learn
	// count preserves that order within each count bucket.
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].LearnCount < ordered[j].LearnCount
	})

	return ordered[:batchSize], nil
}
