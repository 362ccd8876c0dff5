package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/spf13/cobra"

	"github.com/marchen/vocabforge/internal/platform/postgres"
)

// env is the shared command environment: a database connection and the
// stores built over it.
type env struct {
	db     *sql.DB
	words  *postgres.PostgresWordStore
	essays *postgres.PostgresEssayStore
	logger *slog.Logger
}

// databaseURLFlag registers the --database-url flag, falling back to the
// VOCABFORGE_DATABASE_URL environment variable the server uses.
func databaseURLFlag(cmd *cobra.Command) *string {
	return cmd.Flags().String("database-url", os.Getenv("VOCABFORGE_DATABASE_URL"),
		"PostgreSQL connection string (defaults to $VOCABFORGE_DATABASE_URL)")
}

// newEnv connects to the database and builds the stores. CLI output goes to
// stdout; logs stay on stderr so piping the output works.
func newEnv(ctx context.Context, databaseURL string) (*env, error) {
	if databaseURL == "" {
		return nil, fmt.Errorf("database URL is required (set --database-url or VOCABFORGE_DATABASE_URL)")
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := postgres.RunMigrations(ctx, db, logger); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &env{
		db:     db,
		words:  postgres.NewPostgresWordStore(db, logger),
		essays: postgres.NewPostgresEssayStore(db, logger),
		logger: logger,
	}, nil
}

func (e *env) close() {
	_ = e.db.Close()
}
