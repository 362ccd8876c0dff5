package selection

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marchen/vocabforge/internal/domain"
)

// fakeLister returns a fixed word snapshot in insertion order.
type fakeLister struct {
	words []*domain.Word
	err   error
}

func (f *fakeLister) List(ctx context.Context) ([]*domain.Word, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.words, nil
}

// makeWord builds a word with a deterministic insertion timestamp.
func makeWord(text string, learnCount int, insertedAt time.Time) *domain.Word {
	return &domain.Word{
		ID:         uuid.New(),
		Text:       text,
		LearnCount: learnCount,
		CreatedAt:  insertedAt,
		UpdatedAt:  insertedAt,
	}
}

func wordTexts(words []*domain.Word) []string {
	texts := make([]string, len(words))
	for i, w := range words {
		texts[i] = w.Text
	}
	return texts
}

func TestPolicy_Select(t *testing.T) {
	t.Parallel()

	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("unstudied words first in insertion order", func(t *testing.T) {
		t.Parallel()

		// Scenario: abate:0, zeal:0, brief:3 inserted in that order.
		lister := &fakeLister{words: []*domain.Word{
			makeWord("abate", 0, base),
			makeWord("zeal", 0, base.Add(time.Minute)),
			makeWord("brief", 3, base.Add(2*time.Minute)),
		}}
		policy := NewPolicy(lister)

		batch, err := policy.Select(context.Background(), 2)
		require.NoError(t, err)
		assert.Equal(t, []string{"abate", "zeal"}, wordTexts(batch))
	})

	t.Run("remainder filled oldest-least-learned first", func(t *testing.T) {
		t.Parallel()

		lister := &fakeLister{words: []*domain.Word{
			makeWord("candid", 2, base),
			makeWord("dour", 1, base.Add(time.Minute)),
			makeWord("ebb", 0, base.Add(2*time.Minute)),
			makeWord("fickle", 1, base.Add(3*time.Minute)),
		}}
		policy := NewPolicy(lister)

		batch, err := policy.Select(context.Background(), 4)
		require.NoError(t, err)
		assert.Equal(t, []string{"ebb", "dour", "fickle", "candid"}, wordTexts(batch))
	})

	t.Run("no duplicate identities within one call", func(t *testing.T) {
		t.Parallel()

		words := make([]*domain.Word, 10)
		for i := range words {
			words[i] = makeWord(string(rune('a'+i)), i%3, base.Add(time.Duration(i)*time.Minute))
		}
		policy := NewPolicy(&fakeLister{words: words})

		batch, err := policy.Select(context.Background(), 10)
		require.NoError(t, err)

		seen := make(map[uuid.UUID]bool)
		for _, w := range batch {
			assert.False(t, seen[w.ID], "duplicate word %s", w.Text)
			seen[w.ID] = true
		}
	})

	t.Run("insufficient words", func(t *testing.T) {
		t.Parallel()

		lister := &fakeLister{words: []*domain.Word{
			makeWord("abate", 0, base),
		}}
		policy := NewPolicy(lister)

		_, err := policy.Select(context.Background(), 2)
		assert.ErrorIs(t, err, ErrInsufficientWords)
	})

	t.Run("store error is wrapped", func(t *testing.T) {
		t.Parallel()

		storeErr := errors.New("connection reset")
		policy := NewPolicy(&fakeLister{err: storeErr})

		_, err := policy.Select(context.Background(), 1)
		assert.ErrorIs(t, err, storeErr)
	})

	t.Run("non-positive batch size", func(t *testing.T) {
		t.Parallel()

		policy := NewPolicy(&fakeLister{})
		_, err := policy.Select(context.Background(), 0)
		assert.Error(t, err)
	})
}
