package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/marchen/vocabforge/internal/domain"
	"github.com/marchen/vocabforge/internal/store"
)

// PostgresWordStore implements the store.WordStore interface
// using a PostgreSQL database as the storage backend.
type PostgresWordStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresWordStore creates a new PostgreSQL implementation of the
// WordStore interface. The database handle must be initialized and managed
// by the caller. If logger is nil, a default logger is used.
func NewPostgresWordStore(db store.DBTX, logger *slog.Logger) *PostgresWordStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresWordStore{
		db:     db,
		logger: logger.With(slog.String("component", "word_store")),
	}
}

// Ensure PostgresWordStore implements store.WordStore interface
var _ store.WordStore = (*PostgresWordStore)(nil)

// Create implements store.WordStore.Create.
// Returns store.ErrWordExists if a word with the same text already exists.
func (s *PostgresWordStore) Create(ctx context.Context, word *domain.Word) error {
	if err := word.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	contentJSON, err := marshalContent(word.Content)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO words (id, text, learn_count, content, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err = s.db.ExecContext(
		ctx,
		query,
		word.ID,
		word.Text,
		word.LearnCount,
		contentJSON,
		word.CreatedAt,
		word.UpdatedAt,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return fmt.Errorf("%w: %q", store.ErrWordExists, word.Text)
		}
		s.logger.Error("failed to create word",
			slog.String("error", err.Error()),
			slog.String("word", word.Text))
		return MapError(err)
	}

	return nil
}

// GetByID implements store.WordStore.GetByID.
// Returns store.ErrWordNotFound if the word does not exist.
func (s *PostgresWordStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Word, error) {
	query := `
		SELECT id, text, learn_count, content, created_at, updated_at
		FROM words
		WHERE id = $1
	`
	return s.scanWord(s.db.QueryRowContext(ctx, query, id))
}

// GetByText implements store.WordStore.GetByText.
// Returns store.ErrWordNotFound if the word does not exist.
func (s *PostgresWordStore) GetByText(ctx context.Context, text string) (*domain.Word, error) {
	query := `
		SELECT id, text, learn_count, content, created_at, updated_at
		FROM words
		WHERE text = $1
	`
	return s.scanWord(s.db.QueryRowContext(ctx, query, text))
}

// GetByTexts implements store.WordStore.GetByTexts. The result preserves
// the order of the input slice; unknown texts are skipped.
func (s *PostgresWordStore) GetByTexts(ctx context.Context, texts []string) ([]*domain.Word, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	// JSONB carries the list into the query to avoid array-driver coupling.
	textsJSON, err := json.Marshal(texts)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal text list: %w", err)
	}

	query := `
		SELECT id, text, learn_count, content, created_at, updated_at
		FROM words
		WHERE text IN (SELECT jsonb_array_elements_text($1::jsonb))
	`
	rows, err := s.db.QueryContext(ctx, query, textsJSON)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	byText := make(map[string]*domain.Word, len(texts))
	for rows.Next() {
		word, err := scanWordRow(rows)
		if err != nil {
			return nil, err
		}
		byText[word.Text] = word
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	ordered := make([]*domain.Word, 0, len(texts))
	for _, text := range texts {
		if word, ok := byText[text]; ok {
			ordered = append(ordered, word)
		}
	}
	return ordered, nil
}

// UpdateContent implements store.WordStore.UpdateContent. The payload is
// written in a single UPDATE, so a reader sees either the old content or
// the complete new one.
func (s *PostgresWordStore) UpdateContent(ctx context.Context, id uuid.UUID, content *domain.LearningContent) error {
	if content == nil {
		return fmt.Errorf("%w: learning content cannot be nil", store.ErrInvalidEntity)
	}
	if err := content.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	contentJSON, err := marshalContent(content)
	if err != nil {
		return err
	}

	query := `
		UPDATE words
		SET content = $1, updated_at = $2
		WHERE id = $3
	`
	result, err := s.db.ExecContext(ctx, query, contentJSON, time.Now().UTC(), id)
	if err != nil {
		return MapError(err)
	}
	if err := CheckRowsAffected(result, "word"); err != nil {
		return store.ErrWordNotFound
	}

	return nil
}

// IncrementLearnCount implements store.WordStore.IncrementLearnCount.
// The increment happens in the database, so concurrent increments cannot
// lose updates.
func (s *PostgresWordStore) IncrementLearnCount(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE words
		SET learn_count = learn_count + 1, updated_at = $1
		WHERE id = $2
	`
	result, err := s.db.ExecContext(ctx, query, time.Now().UTC(), id)
	if err != nil {
		return MapError(err)
	}
	if err := CheckRowsAffected(result, "word"); err != nil {
		return store.ErrWordNotFound
	}

	return nil
}

// List implements store.WordStore.List: all words in insertion order.
func (s *PostgresWordStore) List(ctx context.Context) ([]*domain.Word, error) {
	query := `
		SELECT id, text, learn_count, content, created_at, updated_at
		FROM words
		ORDER BY created_at ASC, id ASC
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var words []*domain.Word
	for rows.Next() {
		word, err := scanWordRow(rows)
		if err != nil {
			return nil, err
		}
		words = append(words, word)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return words, nil
}

// Count implements store.WordStore.Count.
func (s *PostgresWordStore) Count(ctx context.Context) (int, error) {
	return s.countWhere(ctx, "")
}

// CountUnstudied implements store.WordStore.CountUnstudied.
func (s *PostgresWordStore) CountUnstudied(ctx context.Context) (int, error) {
	return s.countWhere(ctx, "WHERE learn_count = 0")
}

// CountStudied implements store.WordStore.CountStudied.
func (s *PostgresWordStore) CountStudied(ctx context.Context) (int, error) {
	return s.countWhere(ctx, "WHERE learn_count > 0")
}

// CountWithContent implements store.WordStore.CountWithContent.
func (s *PostgresWordStore) CountWithContent(ctx context.Context) (int, error) {
	return s.countWhere(ctx, "WHERE content IS NOT NULL")
}

func (s *PostgresWordStore) countWhere(ctx context.Context, where string) (int, error) {
	var count int
	query := "SELECT COUNT(*) FROM words " + where
	if err := s.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, MapError(err)
	}
	return count, nil
}

// rowScanner matches both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func (s *PostgresWordStore) scanWord(row rowScanner) (*domain.Word, error) {
	word, err := scanWordRow(row)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, store.ErrWordNotFound
		}
		return nil, err
	}
	return word, nil
}

// scanWordRow reads one word row, decoding the optional JSONB payload.
func scanWordRow(row rowScanner) (*domain.Word, error) {
	var word domain.Word
	var contentJSON sql.NullString

	err := row.Scan(
		&word.ID,
		&word.Text,
		&word.LearnCount,
		&contentJSON,
		&word.CreatedAt,
		&word.UpdatedAt,
	)
	if err != nil {
		return nil, MapError(err)
	}

	if contentJSON.Valid && contentJSON.String != "" {
		var content domain.LearningContent
		if err := json.Unmarshal([]byte(contentJSON.String), &content); err != nil {
			return nil, fmt.Errorf("failed to decode learning content: %w", err)
		}
		word.Content = &content
	}

	return &word, nil
}

// marshalContent encodes a learning payload for storage. A nil payload is
// stored as NULL, keeping "no content" distinct from "empty content".
func marshalContent(content *domain.LearningContent) (any, error) {
	if content == nil {
		return nil, nil
	}
	data, err := json.Marshal(content)
	if err != nil {
		return nil, fmt.Errorf("failed to encode learning content: %w", err)
	}
	return string(data), nil
}
