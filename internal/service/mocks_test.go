package service

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/marchen/vocabforge/internal/domain"
	"github.com/marchen/vocabforge/internal/generation"
)

// mockSelector returns a fixed batch.
type mockSelector struct {
	SelectFn func(ctx context.Context, batchSize int) ([]*domain.Word, error)
}

func (m *mockSelector) Select(ctx context.Context, batchSize int) ([]*domain.Word, error) {
	return m.SelectFn(ctx, batchSize)
}

// mockGenerator returns canned schemas unless overridden.
type mockGenerator struct{}

func (m *mockGenerator) WordProfile(ctx context.Context, word string) (*generation.WordProfileSchema, error) {
	return &generation.WordProfileSchema{
		Phonetic:      "/tɛst/",
		PartsOfSpeech: []string{"noun"},
		Translations:  []string{"测试"},
		Examples: []generation.ExampleSchema{
			{Sentence: "A test sentence.", Translation: "一个测试句子。"},
		},
	}, nil
}

func (m *mockGenerator) Essay(ctx context.Context, words []string, essayType domain.EssayType) (*generation.EssaySchema, error) {
	return &generation.EssaySchema{
		Title:       "Test Essay",
		EnglishText: "A short test essay.",
		Translation: "一篇简短的测试短文。",
	}, nil
}

// mockWordStore implements store.WordStore with overridable behavior.
type mockWordStore struct {
	mu     sync.Mutex
	byText map[string]*domain.Word

	CountFn            func(ctx context.Context) (int, error)
	CountUnstudiedFn   func(ctx context.Context) (int, error)
	CountStudiedFn     func(ctx context.Context) (int, error)
	CountWithContentFn func(ctx context.Context) (int, error)
	GetByTextsFn       func(ctx context.Context, texts []string) ([]*domain.Word, error)
}

func newMockWordStore() *mockWordStore {
	return &mockWordStore{byText: make(map[string]*domain.Word)}
}

func (m *mockWordStore) add(word *domain.Word) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byText[word.Text] = word
}

func (m *mockWordStore) Create(ctx context.Context, word *domain.Word) error {
	m.add(word)
	return nil
}

func (m *mockWordStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Word, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, w := range m.byText {
		if w.ID == id {
			return w, nil
		}
	}
	return nil, errNotFoundForTest
}

func (m *mockWordStore) GetByText(ctx context.Context, text string) (*domain.Word, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if w, ok := m.byText[text]; ok {
		return w, nil
	}
	return nil, errNotFoundForTest
}

func (m *mockWordStore) GetByTexts(ctx context.Context, texts []string) ([]*domain.Word, error) {
	if m.GetByTextsFn != nil {
		return m.GetByTextsFn(ctx, texts)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.Word
	for _, text := range texts {
		if w, ok := m.byText[text]; ok {
			out = append(out, w)
		}
	}
	return out, nil
}

func (m *mockWordStore) UpdateContent(ctx context.Context, id uuid.UUID, content *domain.LearningContent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, w := range m.byText {
		if w.ID == id {
			w.Content = content
			return nil
		}
	}
	return errNotFoundForTest
}

func (m *mockWordStore) IncrementLearnCount(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, w := range m.byText {
		if w.ID == id {
			w.LearnCount++
			return nil
		}
	}
	return errNotFoundForTest
}

func (m *mockWordStore) List(ctx context.Context) ([]*domain.Word, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*domain.Word, 0, len(m.byText))
	for _, w := range m.byText {
		out = append(out, w)
	}
	return out, nil
}

func (m *mockWordStore) Count(ctx context.Context) (int, error) {
	if m.CountFn != nil {
		return m.CountFn(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.byText), nil
}

func (m *mockWordStore) CountUnstudied(ctx context.Context) (int, error) {
	if m.CountUnstudiedFn != nil {
		return m.CountUnstudiedFn(ctx)
	}
	return 0, nil
}

func (m *mockWordStore) CountStudied(ctx context.Context) (int, error) {
	if m.CountStudiedFn != nil {
		return m.CountStudiedFn(ctx)
	}
	return 0, nil
}

func (m *mockWordStore) CountWithContent(ctx context.Context) (int, error) {
	if m.CountWithContentFn != nil {
		return m.CountWithContentFn(ctx)
	}
	return 0, nil
}

// mockEssayStore implements store.EssayStore with overridable behavior.
type mockEssayStore struct {
	mu     sync.Mutex
	essays []*domain.Essay

	GetByIDFn func(ctx context.Context, id uuid.UUID) (*domain.Essay, error)
	ListFn    func(ctx context.Context, limit, offset int) ([]*domain.Essay, error)
	CountFn   func(ctx context.Context) (int, error)
}

func newMockEssayStore() *mockEssayStore {
	return &mockEssayStore{}
}

func (m *mockEssayStore) Create(ctx context.Context, essay *domain.Essay) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.essays = append(m.essays, essay)
	return nil
}

func (m *mockEssayStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Essay, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.essays {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, errNotFoundForTest
}

func (m *mockEssayStore) List(ctx context.Context, limit, offset int) ([]*domain.Essay, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, limit, offset)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if offset >= len(m.essays) {
		return nil, nil
	}
	end := offset + limit
	if end > len(m.essays) {
		end = len(m.essays)
	}
	return m.essays[offset:end], nil
}

func (m *mockEssayStore) Count(ctx context.Context) (int, error) {
	if m.CountFn != nil {
		return m.CountFn(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.essays), nil
}
