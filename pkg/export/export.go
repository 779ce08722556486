// Package export defines the serialized shapes of the reconciled
// dataset. File writing lives in internal/ioexport.
package export

import (
	"math"
	"time"
)

// Snapshot is the nested JSON export of one reconciled database.
type Snapshot struct {
	Metadata Metadata `json:"metadata"`
	Games    []Game   `json:"games"`
}

// Metadata describes the export as a whole.
type Metadata struct {
	// ExportedAt is the snapshot timestamp.
	ExportedAt time.Time `json:"exportedAt"`

	// RunID identifies the reconciliation run the snapshot reflects.
	// Empty when the stored rows mix several runs.
	RunID string `json:"runId,omitempty"`

	// TotalEntities is the number of exported games.
	TotalEntities int `json:"totalEntities"`

	// QualityTiers is the histogram of uncertainty tiers.
	QualityTiers map[string]int `json:"qualityTiers"`

	// SourceCoverage is the histogram of per-game source counts,
	// keyed by the count as a decimal string.
	SourceCoverage map[string]int `json:"sourceCoverage"`
}

// Game is one exported entity.
type Game struct {
	GameID string `json:"gameId"`
	Season string `json:"season,omitempty"`

	// QualityScore is the 0-100 reconciliation score.
	QualityScore int `json:"qualityScore"`

	// Uncertainty is LOW, MEDIUM or HIGH.
	Uncertainty string `json:"uncertainty"`

	// TrainingEligible is false only below the hard cutoff.
	TrainingEligible bool `json:"trainingEligible"`

	// TrainingWeight is the 0-1 sample weight, rounded to four
	// decimal places.
	TrainingWeight float64 `json:"trainingWeight"`

	// SourceCount is how many sources supplied the game.
	SourceCount int `json:"sourceCount"`

	// RecommendedSource is the most trusted source that supplied the
	// game; consumers preferring one provider per game should use it.
	RecommendedSource string `json:"recommendedSource,omitempty"`

	// DiscrepantFields lists the field names the sources disputed,
	// absent when the sources agreed.
	DiscrepantFields []string `json:"discrepantFields,omitempty"`

	// Flags marks the discrepancy classes observed for the game.
	Flags Flags `json:"flags"`
}

// Flags mirrors the quality issue flags in export form.
type Flags struct {
	EventCount bool `json:"eventCount,omitempty"`
	Coordinate bool `json:"coordinate,omitempty"`
	Score      bool `json:"score,omitempty"`
	Timing     bool `json:"timing,omitempty"`
}

// RoundWeight rounds a training weight to four decimal places, the
// declared precision of the export format. A round-trip through the
// files reproduces weights exactly at this precision.
func RoundWeight(w float64) float64 {
	return math.Round(w*10000) / 10000
}

// CSVHeader is the column order of the flat dataset variant.
func CSVHeader() []string {
	return []string{
		"game_id",
		"season",
		"quality_score",
		"uncertainty",
		"training_eligible",
		"training_weight",
		"source_count",
		"recommended_source",
		"event_count_issue",
		"coordinate_issue",
		"score_issue",
		"timing_issue",
	}
}
