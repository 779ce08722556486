// Package quality converts an entity's coverage and discrepancy set
// into a 0–100 trust score, an uncertainty bucket and a
// training-eligibility flag.
//
// Scores are always fully recomputed from the current discrepancy set
// so reruns cannot drift; nothing here is incremental.
package quality

import (
	"fmt"
	"strings"

	"github.com/hoopsync/hsdb/pkg/compare"
	"github.com/hoopsync/hsdb/pkg/config"
	"github.com/hoopsync/hsdb/pkg/severity"
)

// Uncertainty buckets a quality score for coarse filtering.
type Uncertainty string

const (
	UncertaintyLow    Uncertainty = "LOW"
	UncertaintyMedium Uncertainty = "MEDIUM"
	UncertaintyHigh   Uncertainty = "HIGH"
)

// Issue is one classified discrepancy considered by the scorer.
type Issue struct {
	Field    string
	Severity severity.Level
}

// IssueFlags mark which problem categories an entity exhibits.
type IssueFlags struct {
	EventCount bool `json:"event_count"`
	Coordinate bool `json:"coordinate"`
	Score      bool `json:"score"`
	Timing     bool `json:"timing"`
}

// Result is the computed quality record for one entity.
type Result struct {
	// Score is the 0–100 composite trust score.
	Score int

	// Uncertainty is a deterministic function of Score.
	Uncertainty Uncertainty

	// TrainingEligible is false only when Score falls below the hard
	// cutoff.
	TrainingEligible bool

	// Flags mark the problem categories present in the discrepancy
	// set.
	Flags IssueFlags

	// Notes is a short human-readable account of the deductions.
	Notes string
}

// Scorer computes quality results from configured baselines and
// penalties. Immutable after construction, safe for concurrent use.
type Scorer struct {
	cfg config.QualityConfig
}

// New creates a Scorer, validating the quality configuration.
func New(cfg config.QualityConfig) (*Scorer, error) {
	if cfg.SingleSourceBaseline < 0 || cfg.SingleSourceBaseline > 100 ||
		cfg.MultiSourceBaseline < 0 || cfg.MultiSourceBaseline > 100 {
		return nil, BaselineRangeError(cfg)
	}
	if cfg.PenaltyHigh < 0 || cfg.PenaltyMedium < 0 || cfg.PenaltyLow < 0 {
		return nil, NegativePenaltyError(cfg)
	}
	if cfg.Floor < 0 || cfg.Floor > 100 {
		return nil, FloorRangeError(cfg)
	}
	return &Scorer{cfg: cfg}, nil
}

// Score computes the quality result for one entity. Single-source
// entities get the single-source baseline and, having nothing to
// compare, never carry penalties. Multi-source entities start from
// the multi-source baseline and lose points per discrepancy by
// severity, floored at the configured minimum and never negative.
func (s *Scorer) Score(totalSources int, issues []Issue) Result {
	var score int
	var notes []string

	if totalSources < 2 {
		score = s.cfg.SingleSourceBaseline
		notes = append(notes,
			"single-source entity, no cross-validation possible")
	} else {
		score = s.cfg.MultiSourceBaseline
		penalty := 0
		for _, is := range issues {
			switch is.Severity {
			case severity.High:
				penalty += s.cfg.PenaltyHigh
			case severity.Medium:
				penalty += s.cfg.PenaltyMedium
			default:
				penalty += s.cfg.PenaltyLow
			}
		}
		score -= penalty
		if score < s.cfg.Floor {
			score = s.cfg.Floor
		}
		if penalty > 0 {
			notes = append(notes, fmt.Sprintf(
				"%d discrepancy(ies), %d point penalty",
				len(issues), penalty))
		}
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	return Result{
		Score:            score,
		Uncertainty:      UncertaintyFor(score),
		TrainingEligible: score >= s.cfg.TrainingCutoff,
		Flags:            flagsFor(issues),
		Notes:            strings.Join(notes, "; "),
	}
}

// UncertaintyFor maps a quality score to its uncertainty bucket.
// The mapping is total and deterministic: ≥90 LOW, 70–89 MEDIUM,
// otherwise HIGH.
func UncertaintyFor(score int) Uncertainty {
	switch {
	case score >= 90:
		return UncertaintyLow
	case score >= 70:
		return UncertaintyMedium
	default:
		return UncertaintyHigh
	}
}

// TrainingWeight normalizes a score to [0,1] for use as a model
// sample weight.
func TrainingWeight(score int) float64 {
	return float64(score) / 100
}

func flagsFor(issues []Issue) IssueFlags {
	var f IssueFlags
	for _, is := range issues {
		switch is.Field {
		case compare.FieldEventCount:
			f.EventCount = true
		case compare.FieldCoordinateCount:
			f.Coordinate = true
		case compare.FieldHomeScore, compare.FieldAwayScore:
			f.Score = true
		case compare.FieldGameDate:
			f.Timing = true
		}
	}
	return f
}
