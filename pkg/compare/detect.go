package compare

import (
	"math"

	"github.com/hoopsync/hsdb/pkg/sources"
)

// Discrepancy is one detected disagreement: one field of one game
// where at least two providers supplied different values. It stores
// every provider's value, not one record per conflicting pair.
type Discrepancy struct {
	// GameID is the canonical game identifier.
	GameID string

	// Field is the comparable field name.
	Field string

	// Category is the field's comparison category.
	Category Category

	// Values holds each provider's raw value; nil means the provider
	// supplied a record but no value for this field. Providers whose
	// record failed to load are absent from the map.
	Values map[string]*string

	// Numeric holds the normalized numeric value per provider that
	// supplied one.
	Numeric map[string]float64

	// Difference is max−min over the non-null normalized values
	// (days for dates).
	Difference float64

	// PercentDifference is Difference relative to the mean of the
	// non-null values ×100. Zero for dates and whenever the mean is
	// zero; never computed with a zero denominator.
	PercentDifference float64
}

// ShapeIssue reports a malformed field value. The value was excluded
// from comparison; nothing else about the entity was affected.
type ShapeIssue struct {
	GameID string
	Source string
	Field  string
	Err    error
}

// Detect pairwise-compares provider records of one game over the given
// comparable fields. Records must belong to at least two providers for
// anything to be detected; the caller guards that. A nil record slice
// entry is ignored.
//
// For every field where ≥2 providers supplied non-null values and any
// two of them differ (zero tolerance for numbers, day granularity for
// dates), exactly one Discrepancy is produced.
func Detect(
	gameID string,
	recs []*sources.Record,
	fields []Field,
) ([]Discrepancy, []ShapeIssue) {
	var discs []Discrepancy
	var issues []ShapeIssue

	for _, f := range fields {
		values := make(map[string]*string, len(recs))
		numeric := make(map[string]float64, len(recs))

		for _, r := range recs {
			if r == nil {
				continue
			}
			v, err := f.Extract(r)
			if err != nil {
				// Malformed value: treated as missing for this field,
				// reported for the run summary.
				issues = append(issues, ShapeIssue{
					GameID: gameID,
					Source: r.Source,
					Field:  f.Name,
					Err:    err,
				})
				values[r.Source] = nil
				continue
			}
			if !v.Present {
				values[r.Source] = nil
				continue
			}
			raw := v.Raw
			values[r.Source] = &raw
			numeric[r.Source] = v.Num
		}

		if len(numeric) < 2 || allEqual(numeric) {
			continue
		}

		diff, pct := spread(numeric, f.Category)
		discs = append(discs, Discrepancy{
			GameID:            gameID,
			Field:             f.Name,
			Category:          f.Category,
			Values:            values,
			Numeric:           numeric,
			Difference:        diff,
			PercentDifference: pct,
		})
	}

	return discs, issues
}

// allEqual reports whether every non-null value matches. Normalized
// values are integral (counts, scores, epoch days), so exact
// comparison is intended.
func allEqual(numeric map[string]float64) bool {
	first := math.NaN()
	for _, v := range numeric {
		if math.IsNaN(first) {
			first = v
			continue
		}
		if v != first {
			return false
		}
	}
	return true
}

// spread computes difference and percent difference over non-null
// values. With two values this is |a−b|; with more it is max−min.
func spread(numeric map[string]float64, cat Category) (float64, float64) {
	minV := math.Inf(1)
	maxV := math.Inf(-1)
	var sum float64
	for _, v := range numeric {
		minV = math.Min(minV, v)
		maxV = math.Max(maxV, v)
		sum += v
	}
	diff := maxV - minV

	if cat == CategoryDate {
		// Percent of an epoch-day average is meaningless; dates are
		// classified by their category, not their magnitude.
		return diff, 0
	}

	avg := sum / float64(len(numeric))
	if avg == 0 {
		return diff, 0
	}
	return diff, diff / avg * 100
}
