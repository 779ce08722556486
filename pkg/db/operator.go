// Package db defines the storage contracts of HSDB. The pgx-backed
// implementation lives in internal/iodb.
package db

import (
	"context"

	"github.com/hoopsync/hsdb/pkg/config"
	"github.com/hoopsync/hsdb/pkg/schema"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Operator defines the interface for basic database management
// operations. It provides connection lifecycle management and exposes
// the pgxpool.Pool for high-level lifecycle components to execute
// their specialized SQL operations internally.
//
// Design rationale:
// - Keeps interface minimal to avoid bloat with mixed semantics
// - Pool() enables components to use performance-critical features
// - Schema creation and migration are handled by GORM AutoMigrate via
//   SchemaManager
type Operator interface {
	// Connect establishes a connection pool to the database.
	Connect(context.Context, *config.DatabaseConfig) error

	// Close closes the database connection pool.
	Close() error

	// Pool returns the underlying pgxpool.Pool for high-level
	// components to execute specialized SQL operations. Components use
	// this for transactions, bulk upserts and custom queries.
	Pool() *pgxpool.Pool

	// TableExists checks if a table exists in the database.
	TableExists(ctx context.Context, tableName string) (bool, error)

	// HasTables checks if the database has any tables in the public
	// schema. Used to determine if schema creation should prompt for
	// confirmation.
	HasTables(ctx context.Context) (bool, error)

	// DropAllTables drops all tables in the public schema.
	// Used during schema initialization when overwriting existing
	// data.
	DropAllTables(ctx context.Context) error
}

// Store defines the reconciliation persistence contract. All writes
// are idempotent upserts keyed by game id, batched under the
// PostgreSQL parameter limit, and retried with bounded exponential
// backoff on transient failures.
type Store interface {
	// UpsertCoverage writes coverage rows, one per game.
	UpsertCoverage(ctx context.Context, recs []schema.CoverageRecord) error

	// UpsertDiscrepancies writes discrepancy rows keyed by
	// (game_id, field_name). A re-run overwrites the prior row for the
	// same key.
	UpsertDiscrepancies(ctx context.Context, recs []schema.DiscrepancyRecord) error

	// UpsertQualityScores writes quality rows, one per game.
	UpsertQualityScores(ctx context.Context, recs []schema.QualityScoreRecord) error

	// ReplaceEntityMappings replaces the persisted mapping cache with
	// the rows of the current artifact.
	ReplaceEntityMappings(ctx context.Context, rows []schema.EntityMappingRow) error

	// UpsertMergedGames writes merged games keyed by identity key.
	UpsertMergedGames(ctx context.Context, recs []schema.MergedGame) error

	// MultiSourceGameIDs returns the ids of games covered by at least
	// two sources.
	MultiSourceGameIDs(ctx context.Context) ([]string, error)

	// CoverageRows returns all coverage rows ordered by game id.
	CoverageRows(ctx context.Context) ([]schema.CoverageRecord, error)

	// QualityRows returns all quality rows ordered by game id.
	QualityRows(ctx context.Context) ([]schema.QualityScoreRecord, error)

	// DiscrepancyRows returns all discrepancy rows for one game.
	DiscrepancyRows(ctx context.Context, gameID string) ([]schema.DiscrepancyRecord, error)
}
