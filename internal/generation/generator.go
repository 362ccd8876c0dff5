package generation

import (
	"context"

	"github.com/marchen/vocabforge/internal/domain"
)

// Generator defines the boundary between the application core and external
// AI/LLM services. The core only needs success or failure plus a payload
// matching the expected schema; everything else about the provider is a
// black box.
type Generator interface {
	// WordProfile generates the structured learning payload for one word:
	// phonetics, translations, parts of speech, phrases, etymology and
	// example sentences.
	//
	// Returns ErrUpstream, ErrTimeout or ErrMalformedResponse (possibly
	// wrapped) on failure.
	WordProfile(ctx context.Context, word string) (*WordProfileSchema, error)

	// Essay generates a short text of the given type that uses every word
	// in the batch, together with its translation.
	Essay(ctx context.Context, words []string, essayType domain.EssayType) (*EssaySchema, error)
}
