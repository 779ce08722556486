// Package hsdb holds the lifecycle contracts of the HoopSync database.
// Implementations live under internal; commands depend only on these
// interfaces.
package hsdb

import (
	"context"
	"time"
)

// SchemaManager defines the interface for database schema management.
// It uses GORM AutoMigrate to handle both initial schema creation and
// migrations. Schema management is idempotent - safe to run multiple
// times. Config is provided during construction via NewManager.
type SchemaManager interface {
	// Create creates the initial database schema using GORM
	// AutoMigrate. If tables already exist, behavior depends on user
	// confirmation via DropAllTables.
	Create(ctx context.Context) error

	// Migrate updates the database schema to the latest version.
	Migrate(ctx context.Context) error
}

// Reconciler runs one reconciliation pass over the configured sources:
// coverage scan, discrepancy detection, severity classification,
// resolution, quality scoring, persistence.
type Reconciler interface {
	// Reconcile processes every game in the mapping artifact and
	// returns the run summary. A partial run caused by per-source
	// failures still returns a summary; an error means the run as a
	// whole could not proceed.
	Reconcile(ctx context.Context) (*RunSummary, error)
}

// Merger deduplicates per-source records without a mapping artifact,
// grouping them by composite identity key and synthesizing merged
// games.
type Merger interface {
	// Merge loads all enabled source snapshots, groups records by
	// identity key, resolves per-field conflicts and persists the
	// merged games.
	Merge(ctx context.Context) (*MergeSummary, error)
}

// Exporter writes the reconciled dataset to files for downstream
// training pipelines.
type Exporter interface {
	// Export writes the nested JSON snapshot and the flat CSV dataset
	// to the output directory.
	Export(ctx context.Context) (*ExportSummary, error)
}

// RunSummary reports one reconciliation run.
type RunSummary struct {
	// RunID is a UUID assigned at run start.
	RunID string `json:"runId"`

	// Season restricts the run when non-empty.
	Season string `json:"season,omitempty"`

	// EntitiesProcessed counts every game the run attempted.
	EntitiesProcessed int `json:"entitiesProcessed"`

	// FullyReconciled counts games processed without any source or
	// store error.
	FullyReconciled int `json:"fullyReconciled"`

	// Partial counts games where at least one source failed but
	// reconciliation over the remaining sources succeeded.
	Partial int `json:"partial"`

	// Failed counts games that could not be persisted.
	Failed int `json:"failed"`

	// SingleSource counts games supplied by fewer than two sources.
	SingleSource int `json:"singleSource"`

	// DiscrepanciesByField counts detected discrepancies per field
	// name.
	DiscrepanciesByField map[string]int `json:"discrepanciesByField"`

	// DiscrepanciesBySeverity counts detected discrepancies per
	// severity level.
	DiscrepanciesBySeverity map[string]int `json:"discrepanciesBySeverity"`

	// QualityTiers is the histogram of uncertainty tiers after the
	// run.
	QualityTiers map[string]int `json:"qualityTiers"`

	// TierTransitions counts games per "old->new" uncertainty tier
	// pair against the previous run. Games without a stored tier
	// count under "NEW".
	TierTransitions map[string]int `json:"tierTransitions"`

	// Duration is the wall-clock run time.
	Duration time.Duration `json:"duration"`
}

// MergeSummary reports one merge pass.
type MergeSummary struct {
	// RecordsProcessed counts every source record read.
	RecordsProcessed int `json:"recordsProcessed"`

	// MergedGames counts distinct identity keys persisted.
	MergedGames int `json:"mergedGames"`

	// DuplicatesFound counts records that collapsed into an existing
	// key.
	DuplicatesFound int `json:"duplicatesFound"`

	// ConflictsResolved counts per-field disagreements settled by
	// policy.
	ConflictsResolved int `json:"conflictsResolved"`

	// SourceErrors counts sources that failed to load.
	SourceErrors int `json:"sourceErrors"`

	// Duration is the wall-clock pass time.
	Duration time.Duration `json:"duration"`
}

// ExportSummary reports one export pass.
type ExportSummary struct {
	// SnapshotPath is the nested JSON file written.
	SnapshotPath string `json:"snapshotPath"`

	// DatasetPath is the flat CSV file written.
	DatasetPath string `json:"datasetPath"`

	// Entities is the number of exported games.
	Entities int `json:"entities"`

	// Duration is the wall-clock pass time.
	Duration time.Duration `json:"duration"`
}
