package ioreconcile

import (
	"context"
	"testing"

	"github.com/hoopsync/hsdb/pkg/compare"
	"github.com/hoopsync/hsdb/pkg/config"
	"github.com/hoopsync/hsdb/pkg/coverage"
	"github.com/hoopsync/hsdb/pkg/hsdb"
	"github.com/hoopsync/hsdb/pkg/mapping"
	"github.com/hoopsync/hsdb/pkg/quality"
	"github.com/hoopsync/hsdb/pkg/resolve"
	"github.com/hoopsync/hsdb/pkg/schema"
	"github.com/hoopsync/hsdb/pkg/severity"
	"github.com/hoopsync/hsdb/pkg/sources"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeFetcher serves canned records for one source.
type fakeFetcher struct {
	source string
	recs   map[string]*sources.Record
	err    error
}

func (f *fakeFetcher) Source() string { return f.source }

func (f *fakeFetcher) FetchRecord(
	_ context.Context, nativeID string,
) (*sources.Record, bool, error) {
	if f.err != nil {
		return nil, false, f.err
	}
	rec, ok := f.recs[nativeID]
	return rec, ok, nil
}

// fakeStore records upserts in memory.
type fakeStore struct {
	coverage []schema.CoverageRecord
	discs    []schema.DiscrepancyRecord
	quality  []schema.QualityScoreRecord
	mappings []schema.EntityMappingRow
	failWith error
}

func (s *fakeStore) UpsertCoverage(_ context.Context, recs []schema.CoverageRecord) error {
	if s.failWith != nil {
		return s.failWith
	}
	s.coverage = append(s.coverage, recs...)
	return nil
}

func (s *fakeStore) UpsertDiscrepancies(_ context.Context, recs []schema.DiscrepancyRecord) error {
	if s.failWith != nil {
		return s.failWith
	}
	s.discs = append(s.discs, recs...)
	return nil
}

func (s *fakeStore) UpsertQualityScores(_ context.Context, recs []schema.QualityScoreRecord) error {
	if s.failWith != nil {
		return s.failWith
	}
	s.quality = append(s.quality, recs...)
	return nil
}

func (s *fakeStore) ReplaceEntityMappings(_ context.Context, rows []schema.EntityMappingRow) error {
	s.mappings = rows
	return nil
}

func (s *fakeStore) UpsertMergedGames(_ context.Context, _ []schema.MergedGame) error {
	return nil
}

func (s *fakeStore) MultiSourceGameIDs(_ context.Context) ([]string, error) {
	return nil, nil
}

func (s *fakeStore) CoverageRows(_ context.Context) ([]schema.CoverageRecord, error) {
	return s.coverage, nil
}

func (s *fakeStore) QualityRows(_ context.Context) ([]schema.QualityScoreRecord, error) {
	return s.quality, nil
}

func (s *fakeStore) DiscrepancyRows(_ context.Context, _ string) ([]schema.DiscrepancyRecord, error) {
	return s.discs, nil
}

func newTestReconciler(t *testing.T, store *fakeStore) *reconciler {
	t.Helper()
	cfg := config.New()
	fields := compare.DefaultFields()

	classifier, err := severity.New(cfg.Thresholds, fields)
	require.NoError(t, err)
	scorer, err := quality.New(cfg.Quality)
	require.NoError(t, err)

	return &reconciler{
		cfg:        cfg,
		store:      store,
		fields:     fields,
		classifier: classifier,
		scorer:     scorer,
		ranking:    resolve.NewRanking(cfg.Trust.Ranking),
	}
}

func rec(src string, home, away, events int, date string) *sources.Record {
	return &sources.Record{
		Source:     src,
		GameDate:   date,
		HomeScore:  sources.Int(home),
		AwayScore:  sources.Int(away),
		EventCount: sources.Int(events),
	}
}

const (
	gameID    = "7d4e0fcb-37e5-5a19-93c8-05ec1b2b1a4f"
	testRunID = "b2a4c1de-9d0f-4f58-8b6a-2f6f5a1c3e77"
)

func TestProcessEntityAgreement(t *testing.T) {
	store := &fakeStore{}
	r := newTestReconciler(t, store)

	fetchers := []fetcher{
		&fakeFetcher{source: "nba_stats", recs: map[string]*sources.Record{
			"n1": rec("nba_stats", 108, 104, 300, "2023-10-24"),
		}},
		&fakeFetcher{source: "kaggle", recs: map[string]*sources.Record{
			"k1": rec("kaggle", 108, 104, 300, "2023-10-24"),
		}},
	}

	ent := mapping.Entity{
		ID:      gameID,
		Sources: map[string]string{"nba_stats": "n1", "kaggle": "k1"},
	}
	tracker := coverage.NewTracker(r.ranking)

	res := r.processEntity(context.Background(), testRunID, ent, fetchers, tracker)

	assert.Zero(t, res.sourceErrors)
	assert.False(t, res.storeFailed)
	assert.False(t, res.singleSource)
	assert.Empty(t, res.discFields)
	assert.Equal(t, "LOW", res.tier)

	require.Len(t, store.quality, 1)
	assert.Equal(t, 95, store.quality[0].QualityScore)
	assert.Equal(t, testRunID, store.quality[0].RunID)
	require.Len(t, store.coverage, 1)
	assert.False(t, store.coverage[0].HasDiscrepancies)
	assert.Equal(t, "nba_stats", store.coverage[0].PrimarySource)
	assert.Empty(t, store.discs)
}

func TestProcessEntityScoreDiscrepancy(t *testing.T) {
	store := &fakeStore{}
	r := newTestReconciler(t, store)

	fetchers := []fetcher{
		&fakeFetcher{source: "nba_stats", recs: map[string]*sources.Record{
			"n1": rec("nba_stats", 108, 104, 300, "2023-10-24"),
		}},
		&fakeFetcher{source: "kaggle", recs: map[string]*sources.Record{
			"k1": rec("kaggle", 102, 104, 300, "2023-10-24"),
		}},
	}

	ent := mapping.Entity{
		ID:      gameID,
		Sources: map[string]string{"nba_stats": "n1", "kaggle": "k1"},
	}
	tracker := coverage.NewTracker(r.ranking)

	res := r.processEntity(context.Background(), testRunID, ent, fetchers, tracker)

	assert.Equal(t, []string{"home_score"}, res.discFields)
	assert.Equal(t, []string{"HIGH"}, res.discSeverities)
	assert.Equal(t, "MEDIUM", res.tier)

	require.Len(t, store.discs, 1)
	d := store.discs[0]
	assert.Equal(t, "home_score", d.FieldName)
	assert.Equal(t, "HIGH", d.Severity)
	assert.InDelta(t, 6, d.Difference, 1e-9)
	assert.Equal(t, "nba_stats", d.RecommendedSource)
	assert.Equal(t, "108", d.RecommendedValue)
	assert.Equal(t, "prefer_trusted", d.Policy)
	assert.Equal(t, "DETECTED", d.ResolutionStatus)

	require.Len(t, store.quality, 1)
	assert.Equal(t, 85, store.quality[0].QualityScore)
	assert.True(t, store.quality[0].ScoreIssue)
	assert.InDelta(t, 0.85, store.quality[0].TrainingWeight, 1e-9)
}

func TestProcessEntitySingleSource(t *testing.T) {
	store := &fakeStore{}
	r := newTestReconciler(t, store)

	fetchers := []fetcher{
		&fakeFetcher{source: "nba_stats", recs: map[string]*sources.Record{
			"n1": rec("nba_stats", 108, 104, 300, "2023-10-24"),
		}},
	}

	ent := mapping.Entity{
		ID:      gameID,
		Sources: map[string]string{"nba_stats": "n1"},
	}
	tracker := coverage.NewTracker(r.ranking)

	res := r.processEntity(context.Background(), testRunID, ent, fetchers, tracker)

	assert.True(t, res.singleSource)
	assert.Empty(t, res.discFields, "single-source games skip detection")
	require.Len(t, store.quality, 1)
	assert.Equal(t, 70, store.quality[0].QualityScore)
}

func TestProcessEntitySourceError(t *testing.T) {
	store := &fakeStore{}
	r := newTestReconciler(t, store)

	fetchers := []fetcher{
		&fakeFetcher{source: "nba_stats", recs: map[string]*sources.Record{
			"n1": rec("nba_stats", 108, 104, 300, "2023-10-24"),
		}},
		&fakeFetcher{source: "kaggle", err: assert.AnError},
	}

	ent := mapping.Entity{
		ID:      gameID,
		Sources: map[string]string{"nba_stats": "n1", "kaggle": "k1"},
	}
	tracker := coverage.NewTracker(r.ranking)

	res := r.processEntity(context.Background(), testRunID, ent, fetchers, tracker)

	assert.Equal(t, 1, res.sourceErrors)
	assert.False(t, res.storeFailed)
	assert.True(t, res.singleSource,
		"the failed source contributes no record")
	require.Len(t, store.quality, 1)
	assert.Equal(t, 70, store.quality[0].QualityScore)
}

func TestProcessEntityStoreFailure(t *testing.T) {
	store := &fakeStore{failWith: assert.AnError}
	r := newTestReconciler(t, store)

	fetchers := []fetcher{
		&fakeFetcher{source: "nba_stats", recs: map[string]*sources.Record{
			"n1": rec("nba_stats", 108, 104, 300, "2023-10-24"),
		}},
	}

	ent := mapping.Entity{
		ID:      gameID,
		Sources: map[string]string{"nba_stats": "n1"},
	}
	tracker := coverage.NewTracker(r.ranking)

	res := r.processEntity(context.Background(), testRunID, ent, fetchers, tracker)
	assert.True(t, res.storeFailed)
}

func TestFoldResult(t *testing.T) {
	s := newSummary("run-1", "2023-24")

	foldResult(s, entityResult{
		gameID:         "g1",
		discFields:     []string{"home_score"},
		discSeverities: []string{"HIGH"},
		tier:           "MEDIUM",
	})
	foldResult(s, entityResult{gameID: "g2", sourceErrors: 1,
		singleSource: true, tier: "MEDIUM"})
	foldResult(s, entityResult{gameID: "g3", storeFailed: true,
		tier: "LOW"})

	assert.Equal(t, 3, s.EntitiesProcessed)
	assert.Equal(t, 1, s.FullyReconciled)
	assert.Equal(t, 1, s.Partial)
	assert.Equal(t, 1, s.Failed)
	assert.Equal(t, 1, s.SingleSource)
	assert.Equal(t, 1, s.DiscrepanciesByField["home_score"])
	assert.Equal(t, 1, s.DiscrepanciesBySeverity["HIGH"])
	assert.Equal(t, map[string]int{"MEDIUM": 2, "LOW": 1}, s.QualityTiers)
}

func TestFoldResultTierTransitions(t *testing.T) {
	s := newSummary("run-1", "")

	foldResult(s, entityResult{gameID: "g1", tier: "LOW"})
	foldResult(s, entityResult{gameID: "g2", prevTier: "HIGH",
		tier: "MEDIUM"})
	foldResult(s, entityResult{gameID: "g3", prevTier: "MEDIUM",
		tier: "MEDIUM"})

	want := map[string]int{
		"NEW->LOW":       1,
		"HIGH->MEDIUM":   1,
		"MEDIUM->MEDIUM": 1,
	}
	assert.Equal(t, want, s.TierTransitions,
		"games without a stored tier count as NEW")
}

func TestPriorTiers(t *testing.T) {
	store := &fakeStore{quality: []schema.QualityScoreRecord{
		{GameID: "g1", Uncertainty: "HIGH"},
		{GameID: "g2", Uncertainty: "LOW"},
	}}
	r := newTestReconciler(t, store)

	prior := r.priorTiers(context.Background())
	assert.Equal(t, map[string]string{"g1": "HIGH", "g2": "LOW"}, prior)
	assert.Empty(t, prior["g3"],
		"unknown games report an empty prior tier")
}

func TestEncodeValues(t *testing.T) {
	v := "108"
	out := encodeValues(map[string]*string{
		"nba_stats": &v,
		"kaggle":    nil,
	})
	assert.Contains(t, out, `"nba_stats":"108"`)
	assert.Contains(t, out, `"kaggle":null`)
}

var _ hsdb.Reconciler = (*reconciler)(nil)
