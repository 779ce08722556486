// Package severity classifies discrepancies into coarse LOW, MEDIUM
// and HIGH buckets using per-category thresholds.
//
// Classification is a pure function of (field, difference, percent
// difference); thresholds come from configuration and are heuristic
// defaults meant for calibration, not fixed business rules.
package severity

import (
	"github.com/hoopsync/hsdb/pkg/compare"
	"github.com/hoopsync/hsdb/pkg/config"
)

// Level is the coarse magnitude classification of a discrepancy.
type Level string

const (
	Low    Level = "LOW"
	Medium Level = "MEDIUM"
	High   Level = "HIGH"
)

// Classifier assigns severity levels from configured thresholds.
// It is immutable after construction and safe for concurrent use.
type Classifier struct {
	t          config.ThresholdsConfig
	categories map[string]compare.Category
}

// New creates a Classifier for the given thresholds and comparable
// fields. Threshold bounds must be non-negative and ascending;
// violations are fatal configuration errors.
func New(t config.ThresholdsConfig, fields []compare.Field) (*Classifier, error) {
	if t.CountLowPct < 0 || t.ScoreLowDiff < 0 {
		return nil, NegativeThresholdError(t)
	}
	if t.CountLowPct >= t.CountMediumPct {
		return nil, BoundsOrderError("count",
			t.CountLowPct, t.CountMediumPct)
	}
	if t.ScoreLowDiff >= t.ScoreMediumDiff {
		return nil, BoundsOrderError("score",
			t.ScoreLowDiff, t.ScoreMediumDiff)
	}

	cats := make(map[string]compare.Category, len(fields))
	for _, f := range fields {
		cats[f.Name] = f.Category
	}
	return &Classifier{t: t, categories: cats}, nil
}

// Classify maps a discrepancy's magnitude to a severity level.
// Count-like fields classify by percent difference, score fields by
// absolute point difference, and date fields are always HIGH because
// dates are expected to match exactly. Unknown fields fall back to
// count-like thresholds.
func (c *Classifier) Classify(field string, diff, pctDiff float64) Level {
	cat, ok := c.categories[field]
	if !ok {
		cat = compare.CategoryCount
	}

	switch cat {
	case compare.CategoryDate:
		return High
	case compare.CategoryScore:
		switch {
		case diff <= c.t.ScoreLowDiff:
			return Low
		case diff <= c.t.ScoreMediumDiff:
			return Medium
		default:
			return High
		}
	default:
		switch {
		case pctDiff < c.t.CountLowPct:
			return Low
		case pctDiff <= c.t.CountMediumPct:
			return Medium
		default:
			return High
		}
	}
}
