package iomerge

import (
	"testing"
	"time"

	"github.com/hoopsync/hsdb/pkg/compare"
	"github.com/hoopsync/hsdb/pkg/config"
	"github.com/hoopsync/hsdb/pkg/identity"
	"github.com/hoopsync/hsdb/pkg/resolve"
	"github.com/hoopsync/hsdb/pkg/sources"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMerger() *merger {
	cfg := config.New()
	return &merger{
		cfg:     cfg,
		fields:  compare.DefaultFields(),
		ranking: resolve.NewRanking(cfg.Trust.Ranking),
	}
}

func rec(src, native, home, away, date, season string,
	homeScore, awayScore, events int,
) *sources.Record {
	return &sources.Record{
		Source:     src,
		NativeID:   native,
		HomeTeam:   home,
		AwayTeam:   away,
		GameDate:   date,
		Season:     season,
		HomeScore:  sources.Int(homeScore),
		AwayScore:  sources.Int(awayScore),
		EventCount: sources.Int(events),
	}
}

func TestGroupByIdentity(t *testing.T) {
	records := []*sources.Record{
		rec("nba_stats", "n1", "Boston Celtics", "New York Knicks",
			"2023-10-24", "2023-24", 108, 104, 300),
		rec("kaggle", "k1", "boston celtics", "new york knicks",
			"2023-10-24T19:30:00Z", "2023-24", 108, 104, 280),
		rec("nba_stats", "n2", "Denver Nuggets", "Los Angeles Lakers",
			"2023-10-24", "2023-24", 119, 107, 290),
	}

	groups, err := groupByIdentity(records)
	require.NoError(t, err)
	assert.Len(t, groups, 2, "two sources of one game collapse")
}

func TestGroupByIdentitySameSourceCollision(t *testing.T) {
	records := []*sources.Record{
		rec("nba_stats", "n1", "Boston Celtics", "New York Knicks",
			"2023-10-24", "2023-24", 108, 104, 300),
		rec("nba_stats", "n1-dup", "Boston Celtics", "New York Knicks",
			"2023-10-24", "2023-24", 108, 104, 300),
	}

	_, err := groupByIdentity(records)
	assert.Error(t, err,
		"one source supplying one game twice is a data defect")
}

func TestGroupByIdentitySkipsUnderivable(t *testing.T) {
	records := []*sources.Record{
		rec("nba_stats", "n1", "Boston Celtics", "New York Knicks",
			"2023-10-24", "2023-24", 108, 104, 300),
		{Source: "kaggle", NativeID: "k-broken"},
	}

	groups, err := groupByIdentity(records)
	require.NoError(t, err)
	assert.Len(t, groups, 1)
}

func TestSynthesizeAgreement(t *testing.T) {
	m := newTestMerger()
	recs := []*sources.Record{
		rec("kaggle", "k1", "boston celtics", "new york knicks",
			"2023-10-24", "2023-24", 108, 104, 280),
		rec("nba_stats", "n1", "Boston Celtics", "New York Knicks",
			"2023-10-24", "2023-24", 108, 104, 280),
	}

	game, conflicts := m.synthesize("key-1", recs, time.Now())

	assert.Zero(t, conflicts)
	assert.Equal(t, "key-1", game.ID)
	assert.Equal(t, "Boston Celtics", game.HomeTeam,
		"team names come from the most trusted source")
	require.True(t, game.HomeScore.Valid)
	assert.EqualValues(t, 108, game.HomeScore.Int32)
	assert.Equal(t, `["nba_stats","kaggle"]`, game.SourcesMerged)
}

func TestSynthesizeCountConflictPrefersLarger(t *testing.T) {
	m := newTestMerger()
	recs := []*sources.Record{
		rec("nba_stats", "n1", "Boston Celtics", "New York Knicks",
			"2023-10-24", "2023-24", 108, 104, 280),
		rec("kaggle", "k1", "Boston Celtics", "New York Knicks",
			"2023-10-24", "2023-24", 108, 104, 300),
	}

	game, conflicts := m.synthesize("key-1", recs, time.Now())

	assert.Equal(t, 1, conflicts)
	require.True(t, game.EventCount.Valid)
	assert.EqualValues(t, 300, game.EventCount.Int32,
		"larger count wins even from the less trusted source")
}

func TestSynthesizeScoreConflictPrefersTrusted(t *testing.T) {
	m := newTestMerger()
	recs := []*sources.Record{
		rec("kaggle", "k1", "Boston Celtics", "New York Knicks",
			"2023-10-24", "2023-24", 102, 104, 300),
		rec("nba_stats", "n1", "Boston Celtics", "New York Knicks",
			"2023-10-24", "2023-24", 108, 104, 300),
	}

	game, conflicts := m.synthesize("key-1", recs, time.Now())

	assert.Equal(t, 1, conflicts)
	require.True(t, game.HomeScore.Valid)
	assert.EqualValues(t, 108, game.HomeScore.Int32)
}

func TestSynthesizeNullColumns(t *testing.T) {
	m := newTestMerger()
	recs := []*sources.Record{
		{
			Source:   "kaggle",
			NativeID: "k1",
			HomeTeam: "Boston Celtics",
			AwayTeam: "New York Knicks",
			GameDate: "2023-10-24",
			Season:   "2023-24",
		},
	}

	game, conflicts := m.synthesize("key-1", recs, time.Now())

	assert.Zero(t, conflicts)
	assert.False(t, game.HomeScore.Valid)
	assert.False(t, game.AwayScore.Valid)
	assert.False(t, game.EventCount.Valid)
}

func TestSynthesizeDateTruncated(t *testing.T) {
	m := newTestMerger()
	recs := []*sources.Record{
		rec("nba_stats", "n1", "Boston Celtics", "New York Knicks",
			"2023-10-24T19:30:00Z", "2023-24", 108, 104, 300),
	}

	game, _ := m.synthesize("key-1", recs, time.Now())
	assert.Equal(t, "2023-10-24", game.GameDate)
}

func TestIdentityKeysMatchGrouping(t *testing.T) {
	a := rec("nba_stats", "n1", "Boston Celtics", "New York Knicks",
		"2023-10-24", "2023-24", 108, 104, 300)
	b := rec("kaggle", "k1", "BOSTON CELTICS", "new york  knicks",
		"2023-10-24T19:30:00Z", "2023-24", 108, 104, 280)

	ka, err := identity.New(a)
	require.NoError(t, err)
	kb, err := identity.New(b)
	require.NoError(t, err)
	assert.Equal(t, ka, kb)
}
