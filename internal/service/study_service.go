package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/marchen/vocabforge/internal/domain"
	"github.com/marchen/vocabforge/internal/store"
	"github.com/marchen/vocabforge/internal/task"
	"github.com/marchen/vocabforge/internal/worker"
)

// maxWordsPerEssay caps one generation run; larger batches produce essays
// too long to recite.
const maxWordsPerEssay = 20

// EssayView is an essay together with the resolved details of the words it
// was built from.
type EssayView struct {
	Essay *domain.Essay
	Words []*domain.Word
}

// EssayPage is one page of the essay listing, newest first.
type EssayPage struct {
	Essays     []EssayView
	TotalCount int
	Page       int
	PerPage    int
}

// Stats aggregates the study progress counters.
type Stats struct {
	TotalWords       int
	StudiedWords     int
	UnstudiedWords   int
	WordsWithContent int
	TotalEssays      int
}

// StudyService exposes the application's use cases to the transport layer.
type StudyService interface {
	// StartGeneration validates the request, registers a new task and
	// dispatches the essay generation job. It returns the task id the
	// client polls.
	StartGeneration(ctx context.Context, wordCount int, essayType domain.EssayType) (uuid.UUID, error)

	// GetTask returns a snapshot of the given task.
	GetTask(id uuid.UUID) (task.Task, error)

	// GetEssay returns one essay with its word details.
	GetEssay(ctx context.Context, id uuid.UUID) (*EssayView, error)

	// ListEssays returns one page of essays, newest first, with word
	// details resolved.
	ListEssays(ctx context.Context, page, perPage int) (*EssayPage, error)

	// GetStats returns the aggregate study counters.
	GetStats(ctx context.Context) (*Stats, error)
}

// studyServiceImpl implements StudyService over the task registry, the
// essay job factory and the content stores.
type studyServiceImpl struct {
	registry *task.Registry
	job      *worker.EssayJob
	words    store.WordStore
	essays   store.EssayStore
	logger   *slog.Logger
}

var _ StudyService = (*studyServiceImpl)(nil)

// NewStudyService creates a StudyService. It returns an error if any of the
// required dependencies are nil.
func NewStudyService(
	registry *task.Registry,
	job *worker.EssayJob,
	words store.WordStore,
	essays store.EssayStore,
	logger *slog.Logger,
) (StudyService, error) {
	if registry == nil {
		return nil, fmt.Errorf("task registry cannot be nil")
	}
	if job == nil {
		return nil, fmt.Errorf("essay job cannot be nil")
	}
	if words == nil {
		return nil, fmt.Errorf("word store cannot be nil")
	}
	if essays == nil {
		return nil, fmt.Errorf("essay store cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &studyServiceImpl{
		registry: registry,
		job:      job,
		words:    words,
		essays:   essays,
		logger:   logger.With(slog.String("component", "study_service")),
	}, nil
}

// StartGeneration implements StudyService.StartGeneration.
func (s *studyServiceImpl) StartGeneration(
	ctx context.Context,
	wordCount int,
	essayType domain.EssayType,
) (uuid.UUID, error) {
	if wordCount <= 0 || wordCount > maxWordsPerEssay {
		return uuid.Nil, fmt.Errorf("%w: got %d, want 1-%d", ErrInvalidWordCount, wordCount, maxWordsPerEssay)
	}
	if !domain.IsValidEssayType(essayType) {
		return uuid.Nil, fmt.Errorf("%w: %q", ErrInvalidEssayType, essayType)
	}

	id, err := s.registry.CreateTask()
	if err != nil {
		return uuid.Nil, err
	}

	if err := s.registry.Start(id, s.job.Work(wordCount, essayType)); err != nil {
		// CreateTask just made the task, so Start can only race the
		// sweeper; surface whatever it reports.
		return uuid.Nil, err
	}

	s.logger.InfoContext(ctx, "generation task started",
		slog.String("task_id", id.String()),
		slog.Int("word_count", wordCount),
		slog.String("essay_type", string(essayType)))
	return id, nil
}

// GetTask implements StudyService.GetTask.
func (s *studyServiceImpl) GetTask(id uuid.UUID) (task.Task, error) {
	return s.registry.Get(id)
}

// GetEssay implements StudyService.GetEssay.
func (s *studyServiceImpl) GetEssay(ctx context.Context, id uuid.UUID) (*EssayView, error) {
	essay, err := s.essays.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	words, err := s.words.GetByTexts(ctx, essay.Words)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve essay words: %w", err)
	}

	return &EssayView{Essay: essay, Words: words}, nil
}

// ListEssays implements StudyService.ListEssays.
func (s *studyServiceImpl) ListEssays(ctx context.Context, page, perPage int) (*EssayPage, error) {
	if page <= 0 || perPage <= 0 {
		return nil, fmt.Errorf("%w: page=%d per_page=%d", ErrInvalidPagination, page, perPage)
	}

	total, err := s.essays.Count(ctx)
	if err != nil {
		return nil, err
	}

	essays, err := s.essays.List(ctx, perPage, (page-1)*perPage)
	if err != nil {
		return nil, err
	}

	views := make([]EssayView, 0, len(essays))
	for _, essay := range essays {
		words, err := s.words.GetByTexts(ctx, essay.Words)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve essay words: %w", err)
		}
		views = append(views, EssayView{Essay: essay, Words: words})
	}

	return &EssayPage{
		Essays:     views,
		TotalCount: total,
		Page:       page,
		PerPage:    perPage,
	}, nil
}

// GetStats implements StudyService.GetStats.
func (s *studyServiceImpl) GetStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}
	var err error

	if stats.TotalWords, err = s.words.Count(ctx); err != nil {
		return nil, err
	}
	if stats.UnstudiedWords, err = s.words.CountUnstudied(ctx); err != nil {
		return nil, err
	}
	if stats.StudiedWords, err = s.words.CountStudied(ctx); err != nil {
		return nil, err
	}
	if stats.WordsWithContent, err = s.words.CountWithContent(ctx); err != nil {
		return nil, err
	}
	if stats.TotalEssays, err = s.essays.Count(ctx); err != nil {
		return nil, err
	}

	return stats, nil
}
