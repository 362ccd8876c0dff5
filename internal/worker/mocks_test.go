package worker

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/marchen/vocabforge/internal/domain"
	"github.com/marchen/vocabforge/internal/generation"
	"github.com/marchen/vocabforge/internal/store"
)

// mockSelector returns a canned batch or error.
type mockSelector struct {
	SelectFn func(ctx context.Context, batchSize int) ([]*domain.Word, error)
}

func (m *mockSelector) Select(ctx context.Context, batchSize int) ([]*domain.Word, error) {
	return m.SelectFn(ctx, batchSize)
}

// mockGenerator counts invocations and defers to overridable Fn fields.
type mockGenerator struct {
	mu             sync.Mutex
	profileCalls   map[string]int
	essayCalls     int
	WordProfileFn  func(ctx context.Context, word string) (*generation.WordProfileSchema, error)
	EssayFn        func(ctx context.Context, words []string, essayType domain.EssayType) (*generation.EssaySchema, error)
}

func newMockGenerator() *mockGenerator {
	m := &mockGenerator{profileCalls: make(map[string]int)}
	m.WordProfileFn = func(ctx context.Context, word string) (*generation.WordProfileSchema, error) {
		return validProfile(), nil
	}
	m.EssayFn = func(ctx context.Context, words []string, essayType domain.EssayType) (*generation.EssaySchema, error) {
		return validEssaySchema(), nil
	}
	return m
}

func (m *mockGenerator) WordProfile(ctx context.Context, word string) (*generation.WordProfileSchema, error) {
	m.mu.Lock()
	m.profileCalls[word]++
	m.mu.Unlock()
	return m.WordProfileFn(ctx, word)
}

func (m *mockGenerator) Essay(ctx context.Context, words []string, essayType domain.EssayType) (*generation.EssaySchema, error) {
	m.mu.Lock()
	m.essayCalls++
	m.mu.Unlock()
	return m.EssayFn(ctx, words, essayType)
}

func (m *mockGenerator) profileCallCount(word string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.profileCalls[word]
}

func (m *mockGenerator) essayCallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.essayCalls
}

// mockWordStore records writes in memory.
type mockWordStore struct {
	mu          sync.Mutex
	contents    map[uuid.UUID]*domain.LearningContent
	learnCounts map[uuid.UUID]int

	UpdateContentFn       func(ctx context.Context, id uuid.UUID, content *domain.LearningContent) error
	IncrementLearnCountFn func(ctx context.Context, id uuid.UUID) error
}

func newMockWordStore() *mockWordStore {
	m := &mockWordStore{
		contents:    make(map[uuid.UUID]*domain.LearningContent),
		learnCounts: make(map[uuid.UUID]int),
	}
	m.UpdateContentFn = func(ctx context.Context, id uuid.UUID, content *domain.LearningContent) error {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.contents[id] = content
		return nil
	}
	m.IncrementLearnCountFn = func(ctx context.Context, id uuid.UUID) error {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.learnCounts[id]++
		return nil
	}
	return m
}

func (m *mockWordStore) Create(ctx context.Context, word *domain.Word) error { return nil }

func (m *mockWordStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Word, error) {
	return nil, store.ErrWordNotFound
}

func (m *mockWordStore) GetByText(ctx context.Context, text string) (*domain.Word, error) {
	return nil, store.ErrWordNotFound
}

func (m *mockWordStore) GetByTexts(ctx context.Context, texts []string) ([]*domain.Word, error) {
	return nil, nil
}

func (m *mockWordStore) UpdateContent(ctx context.Context, id uuid.UUID, content *domain.LearningContent) error {
	return m.UpdateContentFn(ctx, id, content)
}

func (m *mockWordStore) IncrementLearnCount(ctx context.Context, id uuid.UUID) error {
	return m.IncrementLearnCountFn(ctx, id)
}

func (m *mockWordStore) List(ctx context.Context) ([]*domain.Word, error) { return nil, nil }

func (m *mockWordStore) Count(ctx context.Context) (int, error) { return 0, nil }

func (m *mockWordStore) CountUnstudied(ctx context.Context) (int, error) { return 0, nil }

func (m *mockWordStore) CountStudied(ctx context.Context) (int, error) { return 0, nil }

func (m *mockWordStore) CountWithContent(ctx context.Context) (int, error) { return 0, nil }

func (m *mockWordStore) learnCount(id uuid.UUID) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.learnCounts[id]
}

func (m *mockWordStore) contentFor(id uuid.UUID) *domain.LearningContent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.contents[id]
}

// mockEssayStore records created essays in memory.
type mockEssayStore struct {
	mu     sync.Mutex
	essays []*domain.Essay

	CreateFn func(ctx context.Context, essay *domain.Essay) error
}

func newMockEssayStore() *mockEssayStore {
	m := &mockEssayStore{}
	m.CreateFn = func(ctx context.Context, essay *domain.Essay) error {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.essays = append(m.essays, essay)
		return nil
	}
	return m
}

func (m *mockEssayStore) Create(ctx context.Context, essay *domain.Essay) error {
	return m.CreateFn(ctx, essay)
}

func (m *mockEssayStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Essay, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.essays {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, store.ErrEssayNotFound
}

func (m *mockEssayStore) List(ctx context.Context, limit, offset int) ([]*domain.Essay, error) {
	return nil, nil
}

func (m *mockEssayStore) Count(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.essays), nil
}

func (m *mockEssayStore) created() []*domain.Essay {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.essays
}

// validProfile returns a complete word profile response.
func validProfile() *generation.WordProfileSchema {
	return &generation.WordProfileSchema{
		Phonetic:      "/əˈbeɪt/",
		Pronunciation: "a·bate",
		PartsOfSpeech: []string{"verb"},
		Translations:  []string{"减弱", "减轻"},
		CommonPhrases: []generation.PhraseSchema{{Text: "abate a storm", Translation: "暴风雨减弱"}},
		Etymology:     "from Old French abattre",
		Examples: []generation.ExampleSchema{
			{Sentence: "The storm finally abated.", Translation: "暴风雨终于减弱了。"},
			{Sentence: "His anger abated over time.", Translation: "随着时间流逝他的怒气渐消。"},
		},
	}
}

// validEssaySchema returns a complete essay response.
func validEssaySchema() *generation.EssaySchema {
	return &generation.EssaySchema{
		Title:       "The Quiet Harbor",
		EnglishText: "The storm began to abate as the sailors' zeal carried them home.",
		Translation: "当水手们满怀热情驶向家乡时，暴风雨开始减弱。",
	}
}
