// Package compare implements field-level discrepancy detection between
// providers' views of one game.
//
// Comparison works over a fixed, explicit list of comparable fields.
// Each field knows its category (count-like, score, date) and how to
// extract a normalized value from a provider record. Extraction never
// aborts an entity: a malformed value is reported as a shape issue and
// treated as missing for that field only.
package compare

import (
	"strconv"
	"time"

	"github.com/hoopsync/hsdb/pkg/sources"
)

// Category groups comparable fields by comparison semantics.
type Category string

const (
	// CategoryCount covers item counts; compared with zero tolerance,
	// severity by percent difference.
	CategoryCount Category = "count"
	// CategoryScore covers final scores; severity by absolute point
	// difference.
	CategoryScore Category = "score"
	// CategoryDate covers dates at day granularity; any difference is
	// significant.
	CategoryDate Category = "date"
)

// Canonical comparable field names.
const (
	FieldEventCount      = "event_count"
	FieldHomeScore       = "home_score"
	FieldAwayScore       = "away_score"
	FieldGameDate        = "game_date"
	FieldCoordinateCount = "coordinate_count"
)

// Value is one provider's normalized value for one field.
type Value struct {
	// Present is false when the provider did not supply the field.
	Present bool
	// Raw is the value as the provider shipped it.
	Raw string
	// Num is the normalized numeric form used for comparison:
	// the number itself for counts and scores, days since epoch for
	// dates.
	Num float64
}

// Field describes one comparable field.
type Field struct {
	// Name is the canonical field name shared by all providers.
	Name string
	// Category selects comparison and resolution semantics.
	Category Category
	// Extract pulls the field from a record. A nil error with
	// Present=false means the provider has no value; an error means
	// the value exists but cannot be interpreted.
	Extract func(r *sources.Record) (Value, error)
}

// DefaultFields returns the comparable-field vocabulary. The order is
// fixed; detection output follows it.
func DefaultFields() []Field {
	return []Field{
		{
			Name:     FieldEventCount,
			Category: CategoryCount,
			Extract:  intField(func(r *sources.Record) *int { return r.EventCount }),
		},
		{
			Name:     FieldHomeScore,
			Category: CategoryScore,
			Extract:  intField(func(r *sources.Record) *int { return r.HomeScore }),
		},
		{
			Name:     FieldAwayScore,
			Category: CategoryScore,
			Extract:  intField(func(r *sources.Record) *int { return r.AwayScore }),
		},
		{
			Name:     FieldGameDate,
			Category: CategoryDate,
			Extract:  dateField,
		},
		{
			Name:     FieldCoordinateCount,
			Category: CategoryCount,
			Extract:  extrasIntField(FieldCoordinateCount),
		},
	}
}

func intField(get func(r *sources.Record) *int) func(*sources.Record) (Value, error) {
	return func(r *sources.Record) (Value, error) {
		v := get(r)
		if v == nil {
			return Value{}, nil
		}
		return Value{
			Present: true,
			Raw:     strconv.Itoa(*v),
			Num:     float64(*v),
		}, nil
	}
}

func extrasIntField(key string) func(*sources.Record) (Value, error) {
	return func(r *sources.Record) (Value, error) {
		raw, ok := r.Extras[key]
		if !ok || raw == "" {
			return Value{}, nil
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return Value{}, BadIntError(key, raw, err)
		}
		return Value{Present: true, Raw: raw, Num: float64(n)}, nil
	}
}

// dateField normalizes game dates to whole days since the Unix epoch.
// Timestamps are truncated to the date part, so providers disagreeing
// only on time of day compare equal.
func dateField(r *sources.Record) (Value, error) {
	raw := r.GameDate
	if raw == "" {
		return Value{}, nil
	}
	s := raw
	if len(s) > 10 {
		s = s[:10]
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Value{}, BadDateError(raw, err)
	}
	days := float64(t.Unix() / 86400)
	return Value{Present: true, Raw: s, Num: days}, nil
}
