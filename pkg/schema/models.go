// Package schema provides database schema models for HSDB.
// Models carry both `db`/`ddl` tags for explicit DDL generation and
// TableName methods for GORM AutoMigrate.
package schema

import (
	"database/sql"
	"time"
)

// DDLGenerator defines how Go models generate PostgreSQL DDL.
type DDLGenerator interface {
	// TableDDL returns the CREATE TABLE statement for this model.
	TableDDL() string

	// IndexDDL returns CREATE INDEX statements for this model.
	// Returns empty slice if no indexes needed.
	IndexDDL() []string

	// TableName returns the PostgreSQL table name for this model.
	TableName() string
}

// CoverageRecord summarizes which sources supplied a canonical game.
// One row per game, fully overwritten on every reconciliation run.
type CoverageRecord struct {
	// GameID is the canonical game identifier from the mapping
	// artifact.
	GameID string `db:"game_id" ddl:"UUID PRIMARY KEY" gorm:"primaryKey;type:uuid"`

	// Season the game belongs to, e.g. "2023-24".
	Season string `db:"season" ddl:"VARCHAR(20)"`

	// SourcesPresent is a JSON map of source name to presence flag.
	SourcesPresent string `db:"sources_present" ddl:"JSONB" gorm:"type:jsonb"`

	// EventCounts is a JSON map of source name to registered item
	// count.
	EventCounts string `db:"event_counts" ddl:"JSONB" gorm:"type:jsonb"`

	// TotalSources is the number of sources that supplied the game.
	TotalSources int `db:"total_sources" ddl:"INT NOT NULL DEFAULT 0"`

	// HasDiscrepancies is true when detection produced at least one
	// discrepancy for this game.
	HasDiscrepancies bool `db:"has_discrepancies" ddl:"BOOLEAN NOT NULL DEFAULT FALSE"`

	// QualityScore duplicates the quality row's score for cheap
	// coverage-level filtering.
	QualityScore int `db:"quality_score" ddl:"INT NOT NULL DEFAULT 0"`

	// PrimarySource is the most trusted present source.
	PrimarySource string `db:"primary_source" ddl:"VARCHAR(50)"`

	// BackupSources is a JSON array of the remaining present sources
	// in trust order.
	BackupSources string `db:"backup_sources" ddl:"JSONB" gorm:"type:jsonb"`

	// UpdatedAt records the last reconciliation touch.
	UpdatedAt time.Time `db:"updated_at" ddl:"TIMESTAMP WITHOUT TIME ZONE"`
}

// DiscrepancyRecord is one detected cross-source disagreement. One row
// per (game, field).
type DiscrepancyRecord struct {
	// ID is a UUID v4 assigned at detection time.
	ID string `db:"id" ddl:"UUID PRIMARY KEY" gorm:"primaryKey;type:uuid"`

	// GameID is the canonical game the disagreement belongs to.
	GameID string `db:"game_id" ddl:"UUID NOT NULL" gorm:"type:uuid;uniqueIndex:idx_discrepancies_game_field"`

	// FieldName is the comparable field, e.g. "home_score".
	FieldName string `db:"field_name" ddl:"VARCHAR(50) NOT NULL" gorm:"uniqueIndex:idx_discrepancies_game_field"`

	// Category is the field class: count, score or date.
	Category string `db:"category" ddl:"VARCHAR(20)"`

	// SourceValues is a JSON map of source name to raw value; null for
	// a source that omitted the field.
	SourceValues string `db:"source_values" ddl:"JSONB" gorm:"type:jsonb"`

	// Difference is max minus min over the numeric values.
	Difference float64 `db:"difference" ddl:"DOUBLE PRECISION"`

	// PercentDifference is difference over mean times 100, zero when
	// the mean is zero.
	PercentDifference float64 `db:"percent_difference" ddl:"DOUBLE PRECISION"`

	// Severity is LOW, MEDIUM or HIGH.
	Severity string `db:"severity" ddl:"VARCHAR(10) NOT NULL"`

	// RecommendedSource is the source whose value the resolution
	// policy picked.
	RecommendedSource string `db:"recommended_source" ddl:"VARCHAR(50)"`

	// RecommendedValue is the picked raw value.
	RecommendedValue string `db:"recommended_value" ddl:"VARCHAR(100)"`

	// Policy names the resolution policy that produced the
	// recommendation.
	Policy string `db:"policy" ddl:"VARCHAR(30)"`

	// ResolutionStatus tracks downstream handling; every row starts as
	// DETECTED.
	ResolutionStatus string `db:"resolution_status" ddl:"VARCHAR(20) NOT NULL DEFAULT 'DETECTED'" gorm:"default:DETECTED"`

	// CreatedAt is the detection timestamp.
	CreatedAt time.Time `db:"created_at" ddl:"TIMESTAMP WITHOUT TIME ZONE"`
}

// QualityScoreRecord is the per-game quality verdict. One row per
// game, fully recomputed each run.
type QualityScoreRecord struct {
	// GameID is the canonical game identifier.
	GameID string `db:"game_id" ddl:"UUID PRIMARY KEY" gorm:"primaryKey;type:uuid"`

	// RunID is the reconciliation run that produced the verdict.
	RunID string `db:"run_id" ddl:"UUID" gorm:"type:uuid"`

	// QualityScore is the 0-100 score.
	QualityScore int `db:"quality_score" ddl:"INT NOT NULL"`

	// Uncertainty is LOW, MEDIUM or HIGH.
	Uncertainty string `db:"uncertainty" ddl:"VARCHAR(10) NOT NULL"`

	// EventCountIssue flags an event-count discrepancy.
	EventCountIssue bool `db:"event_count_issue" ddl:"BOOLEAN NOT NULL DEFAULT FALSE"`

	// CoordinateIssue flags a coordinate-class discrepancy.
	CoordinateIssue bool `db:"coordinate_issue" ddl:"BOOLEAN NOT NULL DEFAULT FALSE"`

	// ScoreIssue flags a home or away score discrepancy.
	ScoreIssue bool `db:"score_issue" ddl:"BOOLEAN NOT NULL DEFAULT FALSE"`

	// TimingIssue flags a game-date discrepancy.
	TimingIssue bool `db:"timing_issue" ddl:"BOOLEAN NOT NULL DEFAULT FALSE"`

	// TrainingEligible is false only below the hard cutoff.
	TrainingEligible bool `db:"training_eligible" ddl:"BOOLEAN NOT NULL DEFAULT TRUE"`

	// TrainingWeight is the score expressed as a 0-1 sample weight.
	TrainingWeight float64 `db:"training_weight" ddl:"DOUBLE PRECISION"`

	// SourceCount is the number of sources behind the verdict.
	SourceCount int `db:"source_count" ddl:"INT NOT NULL DEFAULT 0"`

	// Notes is a short human-readable account of the deductions.
	Notes string `db:"notes" ddl:"TEXT"`

	// UpdatedAt records the last recomputation.
	UpdatedAt time.Time `db:"updated_at" ddl:"TIMESTAMP WITHOUT TIME ZONE"`
}

// EntityMappingRow is the persisted cache of one mapping artifact
// binding.
type EntityMappingRow struct {
	// GameID is the canonical game identifier.
	GameID string `db:"game_id" ddl:"UUID NOT NULL" gorm:"type:uuid;uniqueIndex:idx_entity_mappings_game_source"`

	// SourceName is the provider that uses NativeID for the game.
	SourceName string `db:"source_name" ddl:"VARCHAR(50) NOT NULL" gorm:"uniqueIndex:idx_entity_mappings_game_source;uniqueIndex:idx_entity_mappings_source_native"`

	// NativeID is the provider's own identifier for the game.
	NativeID string `db:"native_id" ddl:"VARCHAR(100) NOT NULL" gorm:"uniqueIndex:idx_entity_mappings_source_native"`

	// CreatedAt is the artifact-load timestamp.
	CreatedAt time.Time `db:"created_at" ddl:"TIMESTAMP WITHOUT TIME ZONE"`
}

// MergedGame is one deduplicated game produced by the merge
// orchestrator when no mapping artifact exists.
type MergedGame struct {
	// ID is the UUID v5 composite identity key.
	ID string `db:"id" ddl:"UUID PRIMARY KEY" gorm:"primaryKey;type:uuid"`

	// Season the game belongs to.
	Season string `db:"season" ddl:"VARCHAR(20)"`

	// GameDate at day granularity, e.g. "2023-10-24".
	GameDate string `db:"game_date" ddl:"VARCHAR(10)"`

	// HomeTeam and AwayTeam are the normalized team names.
	HomeTeam string `db:"home_team" ddl:"VARCHAR(100) NOT NULL"`
	AwayTeam string `db:"away_team" ddl:"VARCHAR(100) NOT NULL"`

	// HomeScore and AwayScore are the resolved final scores; null when
	// no source supplied one.
	HomeScore sql.NullInt32 `db:"home_score" ddl:"INT"`
	AwayScore sql.NullInt32 `db:"away_score" ddl:"INT"`

	// EventCount is the resolved play-by-play event count.
	EventCount sql.NullInt32 `db:"event_count" ddl:"INT"`

	// SourcesMerged is a JSON array of the source names that
	// contributed.
	SourcesMerged string `db:"sources_merged" ddl:"JSONB" gorm:"type:jsonb"`

	// MergeTimestamp is when the merged record was synthesized.
	MergeTimestamp time.Time `db:"merge_timestamp" ddl:"TIMESTAMP WITHOUT TIME ZONE"`
}
