package domain

import (
	"testing"

	"github.com/google/uuid"
)

func validEssayContent() EssayContent {
	return EssayContent{
		Title:       "The Brief Storm",
		Type:        EssayTypeStory,
		EnglishText: "The storm began to abate, and the town's zeal returned.",
		Translation: "暴风雨开始减弱，小镇的热情又回来了。",
	}
}

func TestNewEssay(t *testing.T) {
	t.Parallel()

	words := []string{"abate", "zeal"}
	essay, err := NewEssay(words, validEssayContent())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if essay.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}

	if len(essay.Words) != 2 {
		t.Errorf("Expected 2 words, got %d", len(essay.Words))
	}

	if essay.CreatedAt.IsZero() {
		t.Error("Expected non-zero CreatedAt time")
	}

	// Test empty word list
	_, err = NewEssay(nil, validEssayContent())
	if err != ErrEmptyEssayWords {
		t.Errorf("Expected error %v, got %v", ErrEmptyEssayWords, err)
	}
}

func TestEssayValidate(t *testing.T) {
	t.Parallel()

	base := Essay{
		ID:      uuid.New(),
		Words:   []string{"abate"},
		Content: validEssayContent(),
	}

	if err := base.Validate(); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}

	// Blank word entry
	blank := base
	blank.Words = []string{""}
	if err := blank.Validate(); err != ErrEmptyEssayWords {
		t.Errorf("Expected error %v, got %v", ErrEmptyEssayWords, err)
	}

	// Unknown essay type
	badType := base
	badType.Content.Type = EssayType("poem")
	if err := badType.Validate(); err != ErrInvalidEssayType {
		t.Errorf("Expected error %v, got %v", ErrInvalidEssayType, err)
	}

	// Missing translation
	noTranslation := base
	noTranslation.Content.Translation = ""
	if err := noTranslation.Validate(); err != ErrEmptyEssayContent {
		t.Errorf("Expected error %v, got %v", ErrEmptyEssayContent, err)
	}
}

func TestIsValidEssayType(t *testing.T) {
	t.Parallel()

	for _, et := range []EssayType{EssayTypeStory, EssayTypeFairyTale, EssayTypeNews, EssayTypeProphecy} {
		if !IsValidEssayType(et) {
			t.Errorf("Expected %s to be valid", et)
		}
	}

	if IsValidEssayType(EssayType("limerick")) {
		t.Error("Expected limerick to be invalid")
	}
}
