package resolve_test

import (
	"strconv"
	"testing"

	"github.com/hoopsync/hsdb/pkg/compare"
	"github.com/hoopsync/hsdb/pkg/resolve"
	"github.com/stretchr/testify/assert"
)

var ranking = resolve.NewRanking(
	[]string{"nba_stats", "bigdataball", "kaggle"})

func disc(field string, cat compare.Category,
	vals map[string]float64) compare.Discrepancy {
	values := make(map[string]*string, len(vals))
	for src := range vals {
		raw := strconv.FormatFloat(vals[src], 'f', -1, 64)
		values[src] = &raw
	}
	return compare.Discrepancy{
		GameID:   "g1",
		Field:    field,
		Category: cat,
		Values:   values,
		Numeric:  vals,
	}
}

func TestRanking(t *testing.T) {
	assert.True(t, ranking.MoreTrusted("nba_stats", "kaggle"))
	assert.False(t, ranking.MoreTrusted("kaggle", "bigdataball"))
	// Unranked sources sort after ranked ones, alphabetically.
	assert.True(t, ranking.MoreTrusted("kaggle", "espn"))
	assert.True(t, ranking.MoreTrusted("aaa", "bbb"))

	assert.Equal(t, "bigdataball",
		ranking.Best([]string{"kaggle", "bigdataball"}))
	assert.Equal(t,
		[]string{"nba_stats", "bigdataball", "kaggle"},
		ranking.Order([]string{"kaggle", "nba_stats", "bigdataball"}))
}

func TestPreferLarger(t *testing.T) {
	d := disc(compare.FieldEventCount, compare.CategoryCount,
		map[string]float64{"nba_stats": 300, "bigdataball": 280})
	three := "300"
	d.Values["nba_stats"] = &three

	rec := resolve.Resolve(d, ranking)
	assert.Equal(t, "nba_stats", rec.Source)
	assert.Equal(t, "300", rec.Value)
}

func TestPreferLargerFromLessTrusted(t *testing.T) {
	// The larger count wins even when it comes from the lower-ranked
	// provider.
	d := disc(compare.FieldEventCount, compare.CategoryCount,
		map[string]float64{"nba_stats": 280, "kaggle": 310})
	raw := "310"
	d.Values["kaggle"] = &raw

	rec := resolve.Resolve(d, ranking)
	assert.Equal(t, "kaggle", rec.Source)
	assert.Equal(t, "310", rec.Value)
}

func TestPreferLargerTieBreaksByTrust(t *testing.T) {
	d := disc(compare.FieldCoordinateCount, compare.CategoryCount,
		map[string]float64{
			"kaggle":      500,
			"bigdataball": 500,
			"nba_stats":   400,
		})

	rec := resolve.Resolve(d, ranking)
	assert.Equal(t, "bigdataball", rec.Source)
}

func TestPreferTrustedScore(t *testing.T) {
	d := disc(compare.FieldHomeScore, compare.CategoryScore,
		map[string]float64{"nba_stats": 102, "bigdataball": 108})
	raw := "102"
	d.Values["nba_stats"] = &raw

	rec := resolve.Resolve(d, ranking)
	// Highest-ranked source wins regardless of value.
	assert.Equal(t, "nba_stats", rec.Source)
	assert.Equal(t, "102", rec.Value)
}

func TestPreferTrustedDate(t *testing.T) {
	d := disc(compare.FieldGameDate, compare.CategoryDate,
		map[string]float64{"bigdataball": 19654, "kaggle": 19655})
	raw := "2023-10-25"
	d.Values["bigdataball"] = &raw

	rec := resolve.Resolve(d, ranking)
	assert.Equal(t, "bigdataball", rec.Source)
	assert.Equal(t, "2023-10-25", rec.Value)
}

func TestRecommendedSourceSuppliedValue(t *testing.T) {
	// The winner must always be a provider with a non-null value;
	// nba_stats is most trusted but supplied nothing here.
	d := disc(compare.FieldAwayScore, compare.CategoryScore,
		map[string]float64{"bigdataball": 98, "kaggle": 99})

	rec := resolve.Resolve(d, ranking)
	assert.Equal(t, "bigdataball", rec.Source)
}

func TestDeterminism(t *testing.T) {
	d := disc(compare.FieldEventCount, compare.CategoryCount,
		map[string]float64{
			"nba_stats":   300,
			"bigdataball": 300,
			"kaggle":      300,
		})

	first := resolve.Resolve(d, ranking)
	for range 20 {
		assert.Equal(t, first, resolve.Resolve(d, ranking))
	}
}
