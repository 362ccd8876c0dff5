package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marchen/vocabforge/internal/domain"
	"github.com/marchen/vocabforge/internal/task"
	"github.com/marchen/vocabforge/internal/worker"
)

var errNotFoundForTest = errors.New("not found")

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type serviceFixture struct {
	svc      StudyService
	registry *task.Registry
	words    *mockWordStore
	essays   *mockEssayStore
}

func newFixture(t *testing.T, batch []*domain.Word) *serviceFixture {
	t.Helper()

	registry := task.NewRegistry(task.DefaultRegistryConfig(), testLogger(), prometheus.NewRegistry())
	t.Cleanup(registry.Stop)

	words := newMockWordStore()
	for _, w := range batch {
		words.add(w)
	}
	essays := newMockEssayStore()

	sel := &mockSelector{
		SelectFn: func(ctx context.Context, batchSize int) ([]*domain.Word, error) {
			return batch, nil
		},
	}
	job, err := worker.NewEssayJob(sel, &mockGenerator{}, words, essays, testLogger())
	require.NoError(t, err)

	svc, err := NewStudyService(registry, job, words, essays, testLogger())
	require.NoError(t, err)

	return &serviceFixture{svc: svc, registry: registry, words: words, essays: essays}
}

func waitTerminal(t *testing.T, f *serviceFixture, id uuid.UUID) task.Task {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		snapshot, err := f.svc.GetTask(id)
		require.NoError(t, err)
		if snapshot.Status.Terminal() {
			return snapshot
		}
		select {
		case <-deadline:
			t.Fatalf("task %s did not reach a terminal state", id)
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestNewStudyService_Validation(t *testing.T) {
	t.Parallel()

	registry := task.NewRegistry(task.DefaultRegistryConfig(), testLogger(), prometheus.NewRegistry())
	t.Cleanup(registry.Stop)
	words := newMockWordStore()
	essays := newMockEssayStore()
	job, err := worker.NewEssayJob(
		&mockSelector{SelectFn: func(ctx context.Context, n int) ([]*domain.Word, error) { return nil, nil }},
		&mockGenerator{}, words, essays, testLogger())
	require.NoError(t, err)

	_, err = NewStudyService(nil, job, words, essays, testLogger())
	assert.Error(t, err)
	_, err = NewStudyService(registry, nil, words, essays, testLogger())
	assert.Error(t, err)
	_, err = NewStudyService(registry, job, nil, essays, testLogger())
	assert.Error(t, err)
	_, err = NewStudyService(registry, job, words, nil, testLogger())
	assert.Error(t, err)
}

func TestStartGeneration_RequestValidation(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)

	_, err := f.svc.StartGeneration(context.Background(), 0, domain.EssayTypeStory)
	assert.ErrorIs(t, err, ErrInvalidWordCount)

	_, err = f.svc.StartGeneration(context.Background(), 500, domain.EssayTypeStory)
	assert.ErrorIs(t, err, ErrInvalidWordCount)

	_, err = f.svc.StartGeneration(context.Background(), 3, domain.EssayType("haiku"))
	assert.ErrorIs(t, err, ErrInvalidEssayType)

	// Nothing registered for rejected requests.
	assert.Equal(t, 0, f.registry.Len())
}

func TestStartGeneration_RunsToCompletion(t *testing.T) {
	t.Parallel()

	batch := []*domain.Word{
		{ID: uuid.New(), Text: "abate", CreatedAt: time.Now().UTC()},
		{ID: uuid.New(), Text: "zeal", CreatedAt: time.Now().UTC()},
	}
	f := newFixture(t, batch)

	id, err := f.svc.StartGeneration(context.Background(), 2, domain.EssayTypeStory)
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, id)

	snapshot := waitTerminal(t, f, id)
	assert.Equal(t, task.StatusSucceeded, snapshot.Status)
	assert.Equal(t, 100, snapshot.Progress)

	essayID, ok := snapshot.Result.(uuid.UUID)
	require.True(t, ok, "task result should be the essay id")

	view, err := f.svc.GetEssay(context.Background(), essayID)
	require.NoError(t, err)
	assert.Equal(t, []string{"abate", "zeal"}, view.Essay.Words)
	require.Len(t, view.Words, 2)
	assert.Equal(t, 1, view.Words[0].LearnCount)
}

func TestStartGeneration_CapacityExhausted(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)

	cfg := task.DefaultRegistryConfig()
	cfg.MaxTasks = 1
	registry := task.NewRegistry(cfg, testLogger(), prometheus.NewRegistry())
	t.Cleanup(registry.Stop)

	job, err := worker.NewEssayJob(
		&mockSelector{SelectFn: func(ctx context.Context, n int) ([]*domain.Word, error) { return nil, nil }},
		&mockGenerator{}, f.words, f.essays, testLogger())
	require.NoError(t, err)
	svc, err := NewStudyService(registry, job, f.words, f.essays, testLogger())
	require.NoError(t, err)

	_, err = registry.CreateTask()
	require.NoError(t, err)

	_, err = svc.StartGeneration(context.Background(), 2, domain.EssayTypeStory)
	assert.ErrorIs(t, err, task.ErrResourceExhausted)
}

func TestGetTask_Unknown(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)
	_, err := f.svc.GetTask(uuid.New())
	assert.ErrorIs(t, err, task.ErrTaskNotFound)
}

func TestListEssays(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)
	f.words.add(&domain.Word{ID: uuid.New(), Text: "abate"})

	for range 3 {
		essay, err := domain.NewEssay([]string{"abate"}, domain.EssayContent{
			Title:       "T",
			Type:        domain.EssayTypeStory,
			EnglishText: "E",
			Translation: "C",
		})
		require.NoError(t, err)
		require.NoError(t, f.essays.Create(context.Background(), essay))
	}

	page, err := f.svc.ListEssays(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, page.TotalCount)
	assert.Len(t, page.Essays, 2)
	assert.Equal(t, 1, page.Page)
	require.Len(t, page.Essays[0].Words, 1)
	assert.Equal(t, "abate", page.Essays[0].Words[0].Text)

	page, err = f.svc.ListEssays(context.Background(), 2, 2)
	require.NoError(t, err)
	assert.Len(t, page.Essays, 1)

	_, err = f.svc.ListEssays(context.Background(), 0, 10)
	assert.ErrorIs(t, err, ErrInvalidPagination)
	_, err = f.svc.ListEssays(context.Background(), 1, 0)
	assert.ErrorIs(t, err, ErrInvalidPagination)
}

func TestGetStats(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)
	f.words.CountFn = func(ctx context.Context) (int, error) { return 10, nil }
	f.words.CountUnstudiedFn = func(ctx context.Context) (int, error) { return 4, nil }
	f.words.CountStudiedFn = func(ctx context.Context) (int, error) { return 6, nil }
	f.words.CountWithContentFn = func(ctx context.Context) (int, error) { return 7, nil }
	f.essays.CountFn = func(ctx context.Context) (int, error) { return 2, nil }

	stats, err := f.svc.GetStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &Stats{
		TotalWords:       10,
		StudiedWords:     6,
		UnstudiedWords:   4,
		WordsWithContent: 7,
		TotalEssays:      2,
	}, stats)
}
