package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for Word
var (
	ErrEmptyWordID       = errors.New("word ID cannot be empty")
	ErrEmptyWordText     = errors.New("word text cannot be empty")
	ErrNegativeLearn     = errors.New("learn count cannot be negative")
	ErrPartialWordContent = errors.New("word learning content must be fully populated")
)

// Phrase is a common phrase using the word together with its translation.
type Phrase struct {
	Text        string `json:"text"`
	Translation string `json:"translation"`
}

// Example is an example sentence using the word together with its translation.
type Example struct {
	Sentence    string `json:"sentence"`
	Translation string `json:"translation"`
}

// LearningContent is the structured study payload generated for a word.
// A word either has no content at all or a fully populated payload;
// readers never observe a partially written one.
type LearningContent struct {
	Phonetic      string    `json:"phonetic"`
	Pronunciation string    `json:"pronunciation"`
	PartsOfSpeech []string  `json:"parts_of_speech"`
	Translations  []string  `json:"translations"`
	CommonPhrases []Phrase  `json:"common_phrases"`
	Etymology     string    `json:"etymology"`
	Examples      []Example `json:"examples"`
}

// Validate checks that the learning content carries every required field.
// Pronunciation and etymology are informative extras the model sometimes
// omits, so they are not required.
func (c *LearningContent) Validate() error {
	if c.Phonetic == "" ||
		len(c.PartsOfSpeech) == 0 ||
		len(c.Translations) == 0 ||
		len(c.Examples) == 0 {
		return ErrPartialWordContent
	}
	for _, e := range c.Examples {
		if e.Sentence == "" || e.Translation == "" {
			return ErrPartialWordContent
		}
	}
	for _, p := range c.CommonPhrases {
		if p.Text == "" {
			return ErrPartialWordContent
		}
	}
	return nil
}

// Word represents a vocabulary entry. LearnCount tracks how many times the
// word has been attached to a newly generated essay; it only ever increases.
// Content is nil until an enrichment run populates it.
type Word struct {
	ID         uuid.UUID        `json:"id"`
	Text       string           `json:"text"`
	LearnCount int              `json:"learn_count"`
	Content    *LearningContent `json:"content,omitempty"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
}

// NewWord creates a new Word with the given text, a fresh UUID, a zero learn
// count and no learning content. Returns an error if validation fails.
func NewWord(text string) (*Word, error) {
	now := time.Now().UTC()
	word := &Word{
		ID:        uuid.New(),
		Text:      text,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := word.Validate(); err != nil {
		return nil, err
	}

	return word, nil
}

// Validate checks if the Word has valid data.
func (w *Word) Validate() error {
	if w.ID == uuid.Nil {
		return ErrEmptyWordID
	}

	if w.Text == "" {
		return ErrEmptyWordText
	}

	if w.LearnCount < 0 {
		return ErrNegativeLearn
	}

	if w.Content != nil {
		if err := w.Content.Validate(); err != nil {
			return err
		}
	}

	return nil
}

// HasContent reports whether the word already carries a learning payload.
func (w *Word) HasContent() bool {
	return w.Content != nil
}
