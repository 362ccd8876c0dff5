package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/marchen/vocabforge/internal/domain"
	"github.com/marchen/vocabforge/internal/store"
)

// PostgresEssayStore implements the store.EssayStore interface
// using a PostgreSQL database as the storage backend.
type PostgresEssayStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresEssayStore creates a new PostgreSQL implementation of the
// EssayStore interface. If logger is nil, a default logger is used.
func NewPostgresEssayStore(db store.DBTX, logger *slog.Logger) *PostgresEssayStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresEssayStore{
		db:     db,
		logger: logger.With(slog.String("component", "essay_store")),
	}
}

// Ensure PostgresEssayStore implements store.EssayStore interface
var _ store.EssayStore = (*PostgresEssayStore)(nil)

// Create implements store.EssayStore.Create.
func (s *PostgresEssayStore) Create(ctx context.Context, essay *domain.Essay) error {
	if err := essay.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	wordsJSON, err := json.Marshal(essay.Words)
	if err != nil {
		return fmt.Errorf("failed to encode essay words: %w", err)
	}

	query := `
		INSERT INTO essays (id, words, title, essay_type, english_text, translation, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err = s.db.ExecContext(
		ctx,
		query,
		essay.ID,
		string(wordsJSON),
		essay.Content.Title,
		string(essay.Content.Type),
		essay.Content.EnglishText,
		essay.Content.Translation,
		essay.CreatedAt,
		essay.UpdatedAt,
	)
	if err != nil {
		s.logger.Error("failed to create essay",
			slog.String("error", err.Error()),
			slog.String("essay_id", essay.ID.String()))
		return MapError(err)
	}

	s.logger.Info("essay created",
		slog.String("essay_id", essay.ID.String()),
		slog.Int("word_count", len(essay.Words)))
	return nil
}

// GetByID implements store.EssayStore.GetByID.
// Returns store.ErrEssayNotFound if the essay does not exist.
func (s *PostgresEssayStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Essay, error) {
	query := `
		SELECT id, words, title, essay_type, english_text, translation, created_at, updated_at
		FROM essays
		WHERE id = $1
	`
	essay, err := scanEssayRow(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, store.ErrEssayNotFound
		}
		return nil, err
	}
	return essay, nil
}

// List implements store.EssayStore.List: newest first with limit/offset.
func (s *PostgresEssayStore) List(ctx context.Context, limit, offset int) ([]*domain.Essay, error) {
	query := `
		SELECT id, words, title, essay_type, english_text, translation, created_at, updated_at
		FROM essays
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := s.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var essays []*domain.Essay
	for rows.Next() {
		essay, err := scanEssayRow(rows)
		if err != nil {
			return nil, err
		}
		essays = append(essays, essay)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return essays, nil
}

// Count implements store.EssayStore.Count.
func (s *PostgresEssayStore) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM essays").Scan(&count); err != nil {
		return 0, MapError(err)
	}
	return count, nil
}

// scanEssayRow reads one essay row, decoding the JSONB word list.
func scanEssayRow(row rowScanner) (*domain.Essay, error) {
	var essay domain.Essay
	var wordsJSON string
	var essayType string

	err := row.Scan(
		&essay.ID,
		&wordsJSON,
		&essay.Content.Title,
		&essayType,
		&essay.Content.EnglishText,
		&essay.Content.Translation,
		&essay.CreatedAt,
		&essay.UpdatedAt,
	)
	if err != nil {
		return nil, MapError(err)
	}

	if err := json.Unmarshal([]byte(wordsJSON), &essay.Words); err != nil {
		return nil, fmt.Errorf("failed to decode essay words: %w", err)
	}
	essay.Content.Type = domain.EssayType(essayType)

	return &essay, nil
}
