package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// EssayType tags the narrative style an essay was generated in.
type EssayType string

// Possible essay type values, matching the generation prompt styles.
const (
	EssayTypeStory     EssayType = "story"
	EssayTypeFairyTale EssayType = "fairy_tale"
	EssayTypeNews      EssayType = "news"
	EssayTypeProphecy  EssayType = "prophecy"
)

// Common validation errors for Essay
var (
	ErrEmptyEssayID      = errors.New("essay ID cannot be empty")
	ErrEmptyEssayWords   = errors.New("essay must reference at least one word")
	ErrEmptyEssayContent = errors.New("essay content must be fully populated")
	ErrInvalidEssayType  = errors.New("invalid essay type")
)

// EssayContent is the generated text payload of an essay.
type EssayContent struct {
	Title       string    `json:"title"`
	Type        EssayType `json:"type"`
	EnglishText string    `json:"english_text"`
	Translation string    `json:"translation"`
}

// Essay represents one generated short text built around a batch of words.
// An essay is immutable once created; regeneration produces a new record.
type Essay struct {
	ID        uuid.UUID    `json:"id"`
	Words     []string     `json:"words"`
	Content   EssayContent `json:"content"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// NewEssay creates a new Essay over the given words with the given content.
// It generates a new UUID and sets the creation/update timestamps.
// Returns an error if validation fails.
func NewEssay(words []string, content EssayContent) (*Essay, error) {
	now := time.Now().UTC()
	essay := &Essay{
		ID:        uuid.New(),
		Words:     words,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := essay.Validate(); err != nil {
		return nil, err
	}

	return essay, nil
}

// Validate checks if the Essay has valid data.
func (e *Essay) Validate() error {
	if e.ID == uuid.Nil {
		return ErrEmptyEssayID
	}

	if len(e.Words) == 0 {
		return ErrEmptyEssayWords
	}

	for _, w := range e.Words {
		if w == "" {
			return ErrEmptyEssayWords
		}
	}

	if !IsValidEssayType(e.Content.Type) {
		return ErrInvalidEssayType
	}

	if e.Content.Title == "" || e.Content.EnglishText == "" || e.Content.Translation == "" {
		return ErrEmptyEssayContent
	}

	return nil
}

// IsValidEssayType checks if the given type is a known EssayType.
func IsValidEssayType(t EssayType) bool {
	switch t {
	case EssayTypeStory, EssayTypeFairyTale, EssayTypeNews, EssayTypeProphecy:
		return true
	default:
		return false
	}
}
