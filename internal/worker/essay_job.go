// Package worker executes one essay generation job end to end: select a
// word batch, enrich words that have no learning content yet, compose an
// essay over the batch, and persist everything through the content stores.
// Every failure is translated into a categorized job error so the task
// registry can record it; nothing escapes unreported.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/marchen/vocabforge/internal/domain"
	"github.com/marchen/vocabforge/internal/generation"
	"github.com/marchen/vocabforge/internal/selection"
	"github.com/marchen/vocabforge/internal/store"
	"github.com/marchen/vocabforge/internal/task"
)

// Dependency validation errors.
var (
	ErrNilSelector   = errors.New("selection policy cannot be nil")
	ErrNilGenerator  = errors.New("generator cannot be nil")
	ErrNilWordStore  = errors.New("word store cannot be nil")
	ErrNilEssayStore = errors.New("essay store cannot be nil")
)

// Progress milestones. Word enrichment fills the span between
// progressSelected and progressEnriched; the registry sets 100 on
// completion.
const (
	progressSelected  = 10
	progressEnriched  = 70
	progressComposed  = 85
	progressPersisted = 95
)

// Selector is the slice of the selection policy the job needs.
type Selector interface {
	Select(ctx context.Context, batchSize int) ([]*domain.Word, error)
}

// EssayJob builds task work units that generate one essay. The job itself
// is stateless and safe to share; each Work invocation owns its task.
type EssayJob struct {
	selector  Selector
	generator generation.Generator
	words     store.WordStore
	essays    store.EssayStore
	logger    *slog.Logger
}

// NewEssayJob creates an essay job factory with the given collaborators.
func NewEssayJob(
	selector Selector,
	generator generation.Generator,
	words store.WordStore,
	essays store.EssayStore,
	logger *slog.Logger,
) (*EssayJob, error) {
	if selector == nil {
		return nil, ErrNilSelector
	}
	if generator == nil {
		return nil, ErrNilGenerator
	}
	if words == nil {
		return nil, ErrNilWordStore
	}
	if essays == nil {
		return nil, ErrNilEssayStore
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &EssayJob{
		selector:  selector,
		generator: generator,
		words:     words,
		essays:    essays,
		logger:    logger.With(slog.String("component", "essay_job")),
	}, nil
}

// Work returns a unit of deferred execution generating one essay of the
// given type over wordCount words. The returned result is the new essay's
// ID.
func (j *EssayJob) Work(wordCount int, essayType domain.EssayType) task.Work {
	return func(ctx context.Context, report task.ProgressFunc) (any, error) {
		return j.run(ctx, report, wordCount, essayType)
	}
}

func (j *EssayJob) run(
	ctx context.Context,
	report task.ProgressFunc,
	wordCount int,
	essayType domain.EssayType,
) (uuid.UUID, error) {
	log := j.logger.With(slog.String("essay_type", string(essayType)))

	// 1. Select the batch.
	batch, err := j.selector.Select(ctx, wordCount)
	if err != nil {
		if errors.Is(err, selection.ErrInsufficientWords) {
			return uuid.Nil, task.NewJobError(task.CategoryInternal, err)
		}
		return uuid.Nil, task.NewJobError(task.CategoryPersistence, err)
	}
	report(progressSelected)
	log.Info("word batch selected", "count", len(batch))

	// 2. Enrich each word that has no learning content yet. A word whose
	// enrichment fails is skipped without touching its learn count, so it
	// stays eligible for the next run.
	var ready []*domain.Word
	var lastErr error
	span := progressEnriched - progressSelected
	for i, word := range batch {
		if err := j.enrichWord(ctx, word); err != nil {
			lastErr = err
			log.Warn("word enrichment failed, skipping word",
				"word", word.Text, "error", err)
		} else {
			ready = append(ready, word)
		}
		report(progressSelected + span*(i+1)/len(batch))
	}

	if len(ready) == 0 {
		if lastErr == nil {
			lastErr = errors.New("no words available for essay generation")
		}
		return uuid.Nil, categorize(fmt.Errorf("no words successfully enriched: %w", lastErr))
	}

	// 3. Compose the essay over the words that made it through.
	texts := make([]string, len(ready))
	for i, w := range ready {
		texts[i] = w.Text
	}

	schema, err := j.generateEssayWithRetry(ctx, texts, essayType)
	if err != nil {
		return uuid.Nil, categorize(err)
	}
	report(progressComposed)

	essay, err := domain.NewEssay(texts, domain.EssayContent{
		Title:       schema.Title,
		Type:        essayType,
		EnglishText: schema.EnglishText,
		Translation: schema.Translation,
	})
	if err != nil {
		return uuid.Nil, task.NewJobError(task.CategoryMalformed,
			fmt.Errorf("%w: %w", generation.ErrMalformedResponse, err))
	}

	// 4. Persist the essay. Persistence failures are local defects, never
	// retried.
	if err := j.essays.Create(ctx, essay); err != nil {
		return uuid.Nil, task.NewJobError(task.CategoryPersistence,
			fmt.Errorf("failed to save essay: %w", err))
	}
	report(progressPersisted)

	// 5. Attach the words: each word referenced by the new essay gets its
	// learn count bumped. The essay already exists at this point, so a
	// failed increment is logged rather than failing the task; the word
	// simply stays preferred by the next selection.
	for _, w := range ready {
		if err := j.words.IncrementLearnCount(ctx, w.ID); err != nil {
			log.Warn("failed to increment learn count",
				"word", w.Text, "error", err)
		}
	}

	log.Info("essay generated", "essay_id", essay.ID, "words", len(texts))
	return essay.ID, nil
}

// enrichWord generates and persists the learning content for one word.
// Words that already carry content are left untouched.
func (j *EssayJob) enrichWord(ctx context.Context, word *domain.Word) error {
	if word.HasContent() {
		return nil
	}

	schema, err := j.generateProfileWithRetry(ctx, word.Text)
	if err != nil {
		return err
	}

	content := schema.Content()
	if err := content.Validate(); err != nil {
		return fmt.Errorf("%w: %w", generation.ErrMalformedResponse, err)
	}

	if err := j.words.UpdateContent(ctx, word.ID, content); err != nil {
		return fmt.Errorf("failed to save learning content: %w", err)
	}
	word.Content = content
	return nil
}

// generateProfileWithRetry calls the generator for a word profile,
// retrying exactly once on a malformed response or transient upstream
// error.
func (j *EssayJob) generateProfileWithRetry(
	ctx context.Context,
	word string,
) (*generation.WordProfileSchema, error) {
	schema, err := j.generator.WordProfile(ctx, word)
	if err != nil && retryable(err) {
		j.logger.Warn("retrying word profile generation", "word", word, "error", err)
		schema, err = j.generator.WordProfile(ctx, word)
	}
	if err != nil {
		return nil, err
	}
	return schema, nil
}

// generateEssayWithRetry calls the generator for an essay, retrying
// exactly once on a malformed response or transient upstream error.
func (j *EssayJob) generateEssayWithRetry(
	ctx context.Context,
	words []string,
	essayType domain.EssayType,
) (*generation.EssaySchema, error) {
	schema, err := j.generator.Essay(ctx, words, essayType)
	if err != nil && retryable(err) {
		j.logger.Warn("retrying essay generation", "error", err)
		schema, err = j.generator.Essay(ctx, words, essayType)
	}
	if err != nil {
		return nil, err
	}
	if schema.Title == "" || schema.EnglishText == "" || schema.Translation == "" {
		return nil, fmt.Errorf("%w: essay response missing required fields",
			generation.ErrMalformedResponse)
	}
	return schema, nil
}

// retryable reports whether an error warrants the single internal retry.
// Persistence errors and timeouts surface immediately.
func retryable(err error) bool {
	return errors.Is(err, generation.ErrMalformedResponse) ||
		errors.Is(err, generation.ErrUpstream)
}

// categorize maps a generation error onto its task failure category.
func categorize(err error) *task.JobError {
	switch {
	case errors.Is(err, generation.ErrTimeout):
		return task.NewJobError(task.CategoryTimeout, err)
	case errors.Is(err, generation.ErrMalformedResponse):
		return task.NewJobError(task.CategoryMalformed, err)
	case errors.Is(err, generation.ErrUpstream),
		errors.Is(err, generation.ErrContentBlocked):
		return task.NewJobError(task.CategoryUpstream, err)
	default:
		return task.NewJobError(task.CategoryInternal, err)
	}
}
