package domain

import (
	"testing"

	"github.com/google/uuid"
)

func validContent() *LearningContent {
	return &LearningContent{
		Phonetic:      "/kənˈtempərəri/",
		Pronunciation: "con·tem·po·rary",
		PartsOfSpeech: []string{"adjective", "noun"},
		Translations:  []string{"当代的", "同时代的"},
		CommonPhrases: []Phrase{{Text: "contemporary art", Translation: "当代艺术"}},
		Etymology:     "con- (together) + tempus (time)",
		Examples: []Example{
			{Sentence: "Contemporary music is diverse.", Translation: "当代音乐丰富多样。"},
			{Sentence: "She studies contemporary history.", Translation: "她研究当代史。"},
		},
	}
}

func TestNewWord(t *testing.T) {
	t.Parallel()

	word, err := NewWord("abate")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if word.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}

	if word.Text != "abate" {
		t.Errorf("Expected text abate, got %s", word.Text)
	}

	if word.LearnCount != 0 {
		t.Errorf("Expected learn count 0, got %d", word.LearnCount)
	}

	if word.HasContent() {
		t.Error("Expected new word to have no learning content")
	}

	if word.CreatedAt.IsZero() {
		t.Error("Expected non-zero CreatedAt time")
	}

	// Test invalid text
	_, err = NewWord("")
	if err != ErrEmptyWordText {
		t.Errorf("Expected error %v, got %v", ErrEmptyWordText, err)
	}
}

func TestWordValidate(t *testing.T) {
	t.Parallel()

	validWord := Word{
		ID:   uuid.New(),
		Text: "zeal",
	}

	if err := validWord.Validate(); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}

	// Negative learn count
	negative := validWord
	negative.LearnCount = -1
	if err := negative.Validate(); err != ErrNegativeLearn {
		t.Errorf("Expected error %v, got %v", ErrNegativeLearn, err)
	}

	// Missing ID
	noID := validWord
	noID.ID = uuid.Nil
	if err := noID.Validate(); err != ErrEmptyWordID {
		t.Errorf("Expected error %v, got %v", ErrEmptyWordID, err)
	}

	// Fully populated content passes
	withContent := validWord
	withContent.Content = validContent()
	if err := withContent.Validate(); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
}

func TestLearningContentValidate(t *testing.T) {
	t.Parallel()

	if err := validContent().Validate(); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// Each required field missing must fail
	cases := map[string]func(*LearningContent){
		"missing phonetic":       func(c *LearningContent) { c.Phonetic = "" },
		"missing parts of speech": func(c *LearningContent) { c.PartsOfSpeech = nil },
		"missing translations":   func(c *LearningContent) { c.Translations = nil },
		"missing examples":       func(c *LearningContent) { c.Examples = nil },
		"example without translation": func(c *LearningContent) {
			c.Examples[0].Translation = ""
		},
		"empty phrase": func(c *LearningContent) {
			c.CommonPhrases[0].Text = ""
		},
	}

	for name, mutate := range cases {
		content := validContent()
		mutate(content)
		if err := content.Validate(); err != ErrPartialWordContent {
			t.Errorf("%s: expected error %v, got %v", name, ErrPartialWordContent, err)
		}
	}

	// Optional fields may be empty
	optional := validContent()
	optional.Pronunciation = ""
	optional.Etymology = ""
	if err := optional.Validate(); err != nil {
		t.Errorf("Expected no error for missing optional fields, got %v", err)
	}
}
