package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/marchen/vocabforge/internal/domain"
	"github.com/marchen/vocabforge/internal/service"
	"github.com/marchen/vocabforge/internal/task"
)

// GenerateRequest is the body of POST /api/generate.
type GenerateRequest struct {
	WordCount int    `json:"word_count" validate:"required,gt=0"`
	EssayType string `json:"essay_type" validate:"required"`
}

// GenerateResponse acknowledges an accepted generation request.
type GenerateResponse struct {
	TaskID string `json:"task_id"`
}

// TaskResponse is the polling view of one task.
type TaskResponse struct {
	ID            string     `json:"id"`
	Status        string     `json:"status"`
	Progress      int        `json:"progress"`
	EssayID       string     `json:"essay_id,omitempty"`
	Error         string     `json:"error,omitempty"`
	ErrorCategory string     `json:"error_category,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
}

// PhraseResponse is one phrase in a word's learning content.
type PhraseResponse struct {
	Text        string `json:"text"`
	Translation string `json:"translation"`
}

// ExampleResponse is one example sentence in a word's learning content.
type ExampleResponse struct {
	Sentence    string `json:"sentence"`
	Translation string `json:"translation"`
}

// ContentResponse is a word's learning payload.
type ContentResponse struct {
	Phonetic      string            `json:"phonetic"`
	Pronunciation string            `json:"pronunciation,omitempty"`
	PartsOfSpeech []string          `json:"part_of_speech"`
	Translations  []string          `json:"translations"`
	CommonPhrases []PhraseResponse  `json:"common_phrases,omitempty"`
	Etymology     string            `json:"etymology,omitempty"`
	Examples      []ExampleResponse `json:"examples"`
}

// WordResponse is the API view of one word.
type WordResponse struct {
	ID         string           `json:"id"`
	Text       string           `json:"text"`
	LearnCount int              `json:"learn_count"`
	Content    *ContentResponse `json:"content,omitempty"`
}

// EssayResponse is the API view of one essay with its word details.
type EssayResponse struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Type        string         `json:"type"`
	EnglishText string         `json:"english_content"`
	Translation string         `json:"chinese_translation"`
	Words       []WordResponse `json:"words"`
	CreatedAt   time.Time      `json:"created_at"`
}

// EssayListResponse is one page of essays.
type EssayListResponse struct {
	Essays     []EssayResponse `json:"essays"`
	TotalCount int             `json:"total_count"`
	Page       int             `json:"page"`
	PerPage    int             `json:"per_page"`
}

// StatsResponse carries the aggregate study counters.
type StatsResponse struct {
	TotalWords       int `json:"total_words"`
	StudiedWords     int `json:"studied_words"`
	UnstudiedWords   int `json:"unstudied_words"`
	WordsWithContent int `json:"words_with_content"`
	TotalEssays      int `json:"total_essays"`
}

// taskToResponse converts a task snapshot into its polling view.
func taskToResponse(t task.Task) TaskResponse {
	resp := TaskResponse{
		ID:            t.ID.String(),
		Status:        string(t.Status),
		Progress:      t.Progress,
		Error:         t.Error,
		ErrorCategory: string(t.Category),
		CreatedAt:     t.CreatedAt,
	}
	if essayID, ok := t.Result.(uuid.UUID); ok {
		resp.EssayID = essayID.String()
	}
	if !t.CompletedAt.IsZero() {
		completed := t.CompletedAt
		resp.CompletedAt = &completed
	}
	return resp
}

// wordToResponse converts a domain word into its API view.
func wordToResponse(word *domain.Word) WordResponse {
	resp := WordResponse{
		ID:         word.ID.String(),
		Text:       word.Text,
		LearnCount: word.LearnCount,
	}
	if word.Content != nil {
		content := &ContentResponse{
			Phonetic:      word.Content.Phonetic,
			Pronunciation: word.Content.Pronunciation,
			PartsOfSpeech: word.Content.PartsOfSpeech,
			Translations:  word.Content.Translations,
			Etymology:     word.Content.Etymology,
		}
		for _, p := range word.Content.CommonPhrases {
			content.CommonPhrases = append(content.CommonPhrases, PhraseResponse(p))
		}
		for _, e := range word.Content.Examples {
			content.Examples = append(content.Examples, ExampleResponse(e))
		}
		resp.Content = content
	}
	return resp
}

// essayViewToResponse converts a service essay view into its API view.
func essayViewToResponse(view service.EssayView) EssayResponse {
	resp := EssayResponse{
		ID:          view.Essay.ID.String(),
		Title:       view.Essay.Content.Title,
		Type:        string(view.Essay.Content.Type),
		EnglishText: view.Essay.Content.EnglishText,
		Translation: view.Essay.Content.Translation,
		CreatedAt:   view.Essay.CreatedAt,
	}
	for _, word := range view.Words {
		resp.Words = append(resp.Words, wordToResponse(word))
	}
	return resp
}
