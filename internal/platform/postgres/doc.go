// Package postgres provides PostgreSQL-specific implementations for the
// persistence interfaces defined in internal/store. It handles query
// execution and mapping between domain entities and database records,
// including the JSONB learning payloads.
package postgres
