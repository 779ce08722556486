// Package config provides configuration management for HSDB.
//
// This package has no I/O dependencies (no file operations, no network
// calls). Validation functions may write user-facing warnings via
// gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - Database: host, port, user, password, database, ssl_mode, batch_size
//   - Thresholds, Trust, Quality, Retry sections
//   - Log: level, format, destination
//   - General: jobs_number
//
// Runtime-only fields (CLI flags only):
//   - Reconcile.Season, Reconcile.Sources, Reconcile.MappingFile,
//     Reconcile.OutputDir (per-command)
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use HSDB_ prefix with underscores for nesting:
//
//	HSDB_DATABASE_HOST=localhost
//	HSDB_DATABASE_PORT=5432
//	HSDB_LOG_LEVEL=info
//	HSDB_JOBS_NUMBER=8
package config

import (
	"runtime"
)

// Config represents the complete HSDB configuration.
type Config struct {
	// Database contains PostgreSQL connection settings.
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`

	// Reconcile contains settings specific to the reconcile, merge and
	// export commands.
	Reconcile ReconcileConfig `mapstructure:"reconcile" yaml:"reconcile"`

	// Thresholds control severity classification of discrepancies.
	Thresholds ThresholdsConfig `mapstructure:"thresholds" yaml:"thresholds"`

	// Trust contains the static per-source trust ranking used by
	// resolution policies.
	Trust TrustConfig `mapstructure:"trust" yaml:"trust"`

	// Quality controls quality-score computation.
	Quality QualityConfig `mapstructure:"quality" yaml:"quality"`

	// Retry controls bounded backoff for transient store failures.
	Retry RetryConfig `mapstructure:"retry" yaml:"retry"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// JobsNumber is the number of concurrent workers for per-entity
	// processing. Default value is set according to the number of
	// available threads.
	JobsNumber int `mapstructure:"jobs_number" yaml:"jobs_number"`

	// HomeDir determines where config, cache and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string
}

// DatabaseConfig contains PostgreSQL connection parameters.
type DatabaseConfig struct {
	// Host is the PostgreSQL server hostname or IP address.
	Host string `mapstructure:"host" yaml:"host"`

	// Port is the PostgreSQL server port number.
	Port int `mapstructure:"port" yaml:"port"`

	// User is the PostgreSQL database username.
	User string `mapstructure:"user" yaml:"user"`

	// Password is the PostgreSQL database password.
	Password string `mapstructure:"password" yaml:"password"`

	// Database is the PostgreSQL database name to connect to.
	Database string `mapstructure:"database" yaml:"database"`

	// SSLMode specifies the SSL connection mode.
	// Valid values: "disable", "require", "verify-ca", "verify-full"
	SSLMode string `mapstructure:"ssl_mode" yaml:"ssl_mode"`

	// BatchSize defines the number of rows per batched upsert.
	// PostgreSQL limits a statement to 65535 parameters, so the
	// effective batch is capped by row width as well.
	BatchSize int `mapstructure:"batch_size" yaml:"batch_size"`
}

// ReconcileConfig contains settings specific to reconciliation runs.
// All fields are runtime-only and come from CLI flags.
type ReconcileConfig struct {
	// Season restricts a run to one season (e.g. "2023-24").
	// Empty means all seasons present in the mapping artifact.
	Season string `mapstructure:"season" yaml:"season"`

	// Sources restricts a run to a subset of source names.
	// Empty slice means all sources from sources.yaml.
	Sources []string `mapstructure:"sources" yaml:"sources"`

	// MappingFile is the path to the entity-mapping artifact.
	// Empty means the default location in the config directory.
	MappingFile string `mapstructure:"mapping_file" yaml:"mapping_file"`

	// OutputDir is where export snapshots are written.
	OutputDir string `mapstructure:"output_dir" yaml:"output_dir"`
}

// ThresholdsConfig contains severity classification boundaries.
// The defaults are heuristic and expected to be calibrated against a
// labeled sample rather than treated as fixed business rules.
type ThresholdsConfig struct {
	// CountLowPct is the exclusive upper bound of LOW percent
	// difference for count-like fields.
	CountLowPct float64 `mapstructure:"count_low_pct" yaml:"count_low_pct"`

	// CountMediumPct is the inclusive upper bound of MEDIUM percent
	// difference for count-like fields. Above it is HIGH.
	CountMediumPct float64 `mapstructure:"count_medium_pct" yaml:"count_medium_pct"`

	// ScoreLowDiff is the inclusive upper bound of LOW absolute
	// difference for score fields.
	ScoreLowDiff float64 `mapstructure:"score_low_diff" yaml:"score_low_diff"`

	// ScoreMediumDiff is the inclusive upper bound of MEDIUM absolute
	// difference for score fields. Above it is HIGH.
	ScoreMediumDiff float64 `mapstructure:"score_medium_diff" yaml:"score_medium_diff"`
}

// TrustConfig contains the static trust ranking of sources.
type TrustConfig struct {
	// Ranking lists source names from most to least trusted.
	// Sources absent from the ranking sort after ranked ones,
	// alphabetically for determinism.
	Ranking []string `mapstructure:"ranking" yaml:"ranking"`
}

// QualityConfig controls quality-score computation.
type QualityConfig struct {
	// SingleSourceBaseline is the score for entities covered by one
	// source only.
	SingleSourceBaseline int `mapstructure:"single_source_baseline" yaml:"single_source_baseline"`

	// MultiSourceBaseline is the score for multi-source entities with
	// zero discrepancies.
	MultiSourceBaseline int `mapstructure:"multi_source_baseline" yaml:"multi_source_baseline"`

	// PenaltyHigh, PenaltyMedium and PenaltyLow are per-discrepancy
	// deductions by severity.
	PenaltyHigh   int `mapstructure:"penalty_high" yaml:"penalty_high"`
	PenaltyMedium int `mapstructure:"penalty_medium" yaml:"penalty_medium"`
	PenaltyLow    int `mapstructure:"penalty_low" yaml:"penalty_low"`

	// Floor is the minimum score after penalties.
	Floor int `mapstructure:"floor" yaml:"floor"`

	// TrainingCutoff is the hard cutoff below which an entity is not
	// training-eligible.
	TrainingCutoff int `mapstructure:"training_cutoff" yaml:"training_cutoff"`
}

// RetryConfig controls bounded exponential backoff for transient
// store errors.
type RetryConfig struct {
	// Attempts is the maximum number of tries per store operation.
	Attempts int `mapstructure:"attempts" yaml:"attempts"`

	// BackoffMillis is the initial backoff; it doubles per attempt.
	BackoffMillis int `mapstructure:"backoff_millis" yaml:"backoff_millis"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json' or 'text'.
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Database: DatabaseConfig{
			Host:      "localhost",
			Port:      5432,
			User:      "postgres",
			Password:  "postgres",
			Database:  "hoopsync",
			SSLMode:   "disable",
			BatchSize: 5_000,
		},
		Thresholds: ThresholdsConfig{
			CountLowPct:     5,
			CountMediumPct:  10,
			ScoreLowDiff:    2,
			ScoreMediumDiff: 5,
		},
		Trust: TrustConfig{
			Ranking: []string{"nba_stats", "bigdataball", "kaggle"},
		},
		Quality: QualityConfig{
			SingleSourceBaseline: 70,
			MultiSourceBaseline:  95,
			PenaltyHigh:          10,
			PenaltyMedium:        5,
			PenaltyLow:           2,
			Floor:                50,
			TrainingCutoff:       40,
		},
		Retry: RetryConfig{
			Attempts:      3,
			BackoffMillis: 250,
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
		JobsNumber: runtime.NumCPU(), // Default to number of CPU threads
	}

	return res
}
