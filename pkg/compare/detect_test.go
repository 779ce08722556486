package compare_test

import (
	"testing"

	"github.com/hoopsync/hsdb/pkg/compare"
	"github.com/hoopsync/hsdb/pkg/sources"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rec(src string, events, home, away int, date string) *sources.Record {
	return &sources.Record{
		Source:     src,
		GameDate:   date,
		HomeScore:  sources.Int(home),
		AwayScore:  sources.Int(away),
		EventCount: sources.Int(events),
	}
}

func TestDetectAgreement(t *testing.T) {
	recs := []*sources.Record{
		rec("nba_stats", 300, 100, 98, "2023-10-24"),
		rec("bigdataball", 300, 100, 98, "2023-10-24"),
	}

	discs, issues := compare.Detect("g1", recs, compare.DefaultFields())
	assert.Empty(t, discs)
	assert.Empty(t, issues)
}

func TestDetectEventCount(t *testing.T) {
	recs := []*sources.Record{
		rec("nba_stats", 300, 100, 98, "2023-10-24"),
		rec("bigdataball", 280, 100, 98, "2023-10-24"),
	}

	discs, issues := compare.Detect("g1", recs, compare.DefaultFields())
	require.Len(t, discs, 1)
	assert.Empty(t, issues)

	d := discs[0]
	assert.Equal(t, "g1", d.GameID)
	assert.Equal(t, compare.FieldEventCount, d.Field)
	assert.Equal(t, compare.CategoryCount, d.Category)
	assert.InEpsilon(t, 20.0, d.Difference, 1e-9)
	// 20 / 290 * 100
	assert.InDelta(t, 6.897, d.PercentDifference, 0.001)

	require.NotNil(t, d.Values["nba_stats"])
	assert.Equal(t, "300", *d.Values["nba_stats"])
	require.NotNil(t, d.Values["bigdataball"])
	assert.Equal(t, "280", *d.Values["bigdataball"])
}

func TestDetectScore(t *testing.T) {
	recs := []*sources.Record{
		rec("nba_stats", 300, 102, 98, "2023-10-24"),
		rec("bigdataball", 300, 108, 98, "2023-10-24"),
	}

	discs, _ := compare.Detect("g1", recs, compare.DefaultFields())
	require.Len(t, discs, 1)
	assert.Equal(t, compare.FieldHomeScore, discs[0].Field)
	assert.InEpsilon(t, 6.0, discs[0].Difference, 1e-9)
}

func TestDetectDateThreeSources(t *testing.T) {
	recs := []*sources.Record{
		rec("nba_stats", 300, 100, 98, "2023-10-24"),
		rec("bigdataball", 300, 100, 98, "2023-10-25"),
		rec("kaggle", 300, 100, 98, "2023-10-23"),
	}

	discs, _ := compare.Detect("g1", recs, compare.DefaultFields())
	require.Len(t, discs, 1)

	d := discs[0]
	assert.Equal(t, compare.FieldGameDate, d.Field)
	assert.Equal(t, compare.CategoryDate, d.Category)
	// One record per field with all three values, not one per pair.
	require.Len(t, d.Values, 3)
	assert.Equal(t, "2023-10-24", *d.Values["nba_stats"])
	assert.Equal(t, "2023-10-25", *d.Values["bigdataball"])
	assert.Equal(t, "2023-10-23", *d.Values["kaggle"])
	assert.InEpsilon(t, 2.0, d.Difference, 1e-9)
	assert.Zero(t, d.PercentDifference)
}

func TestDetectDateDayGranularity(t *testing.T) {
	a := rec("nba_stats", 300, 100, 98, "2023-10-24T19:30:00Z")
	b := rec("bigdataball", 300, 100, 98, "2023-10-24")

	discs, issues := compare.Detect("g1", []*sources.Record{a, b},
		compare.DefaultFields())
	assert.Empty(t, discs)
	assert.Empty(t, issues)
}

func TestDetectNullsMatch(t *testing.T) {
	a := rec("nba_stats", 300, 100, 98, "2023-10-24")
	b := rec("bigdataball", 300, 100, 98, "2023-10-24")
	a.EventCount = nil
	b.EventCount = nil

	discs, _ := compare.Detect("g1", []*sources.Record{a, b},
		compare.DefaultFields())
	assert.Empty(t, discs, "both null counts as a match")
}

func TestDetectSingleNonNullSkipped(t *testing.T) {
	a := rec("nba_stats", 300, 100, 98, "2023-10-24")
	b := rec("bigdataball", 300, 100, 98, "2023-10-24")
	b.HomeScore = nil

	discs, _ := compare.Detect("g1", []*sources.Record{a, b},
		compare.DefaultFields())
	assert.Empty(t, discs, "one non-null value cannot disagree")
}

func TestDetectMalformedValue(t *testing.T) {
	a := rec("nba_stats", 300, 100, 98, "2023-10-24")
	b := rec("bigdataball", 280, 100, 98, "not-a-date")

	discs, issues := compare.Detect("g1", []*sources.Record{a, b},
		compare.DefaultFields())

	// The malformed date is excluded, other fields still compared.
	require.Len(t, issues, 1)
	assert.Equal(t, "bigdataball", issues[0].Source)
	assert.Equal(t, compare.FieldGameDate, issues[0].Field)

	require.Len(t, discs, 1)
	assert.Equal(t, compare.FieldEventCount, discs[0].Field)
}

func TestDetectExtrasCoordinateCount(t *testing.T) {
	a := rec("nba_stats", 300, 100, 98, "2023-10-24")
	b := rec("bigdataball", 300, 100, 98, "2023-10-24")
	a.Extras = map[string]string{"coordinate_count": "512"}
	b.Extras = map[string]string{"coordinate_count": "498"}

	discs, _ := compare.Detect("g1", []*sources.Record{a, b},
		compare.DefaultFields())
	require.Len(t, discs, 1)
	assert.Equal(t, compare.FieldCoordinateCount, discs[0].Field)
	assert.InEpsilon(t, 14.0, discs[0].Difference, 1e-9)
}

func TestDetectZeroDenominator(t *testing.T) {
	a := rec("nba_stats", 0, 100, 98, "2023-10-24")
	b := rec("bigdataball", 0, 100, 98, "2023-10-24")
	a.Extras = map[string]string{"coordinate_count": "3"}
	b.Extras = map[string]string{"coordinate_count": "-3"}

	discs, _ := compare.Detect("g1", []*sources.Record{a, b},
		compare.DefaultFields())
	require.Len(t, discs, 1)
	assert.Equal(t, compare.FieldCoordinateCount, discs[0].Field)
	// avg is zero; percent difference guards to 0 instead of Inf.
	assert.Zero(t, discs[0].PercentDifference)
}

func TestDetectNilRecordIgnored(t *testing.T) {
	a := rec("nba_stats", 300, 100, 98, "2023-10-24")

	discs, issues := compare.Detect("g1", []*sources.Record{a, nil},
		compare.DefaultFields())
	assert.Empty(t, discs)
	assert.Empty(t, issues)
}
