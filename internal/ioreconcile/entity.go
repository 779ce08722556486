package ioreconcile

import (
	"context"
	"log/slog"
	"time"

	"github.com/gnames/gnfmt"
	"github.com/google/uuid"
	"github.com/hoopsync/hsdb/pkg/compare"
	"github.com/hoopsync/hsdb/pkg/coverage"
	"github.com/hoopsync/hsdb/pkg/hsdb"
	"github.com/hoopsync/hsdb/pkg/mapping"
	"github.com/hoopsync/hsdb/pkg/quality"
	"github.com/hoopsync/hsdb/pkg/resolve"
	"github.com/hoopsync/hsdb/pkg/schema"
	"github.com/hoopsync/hsdb/pkg/sources"
)

// fetcher is the part of the snapshot adapter the pipeline needs.
type fetcher interface {
	Source() string
	FetchRecord(ctx context.Context, nativeID string) (*sources.Record, bool, error)
}

// entityResult is the outcome of one game's pipeline pass.
type entityResult struct {
	gameID       string
	sourceErrors int
	storeFailed  bool
	singleSource bool

	discFields     []string
	discSeverities []string
	tier           string
	prevTier       string
}

// processEntity runs the full pipeline for one game: fetch, coverage,
// detect, classify, resolve, score, persist. Source failures degrade
// the result; only a store failure marks the game failed.
func (r *reconciler) processEntity(
	ctx context.Context,
	runID string,
	ent mapping.Entity,
	fetchers []fetcher,
	tracker *coverage.Tracker,
) entityResult {
	res := entityResult{gameID: ent.ID}

	recs := r.fetchRecords(ctx, ent, fetchers, tracker, &res)

	summary, ok := tracker.Summarize(ent.ID)
	if !ok {
		// No source supplied the game; it is still scored so the gap
		// is visible downstream.
		summary = coverage.Summary{GameID: ent.ID, SingleSource: true}
	}
	res.singleSource = summary.SingleSource

	var discs []compare.Discrepancy
	if summary.TotalSources >= 2 {
		var issues []compare.ShapeIssue
		discs, issues = compare.Detect(ent.ID, recs, r.fields)
		for _, is := range issues {
			slog.Warn("Malformed field value excluded from comparison",
				"game_id", is.GameID, "source", is.Source,
				"field", is.Field, "error", is.Err)
		}
	}

	discRows, qIssues := r.classifyAll(ent.ID, discs, &res)
	result := r.scorer.Score(summary.TotalSources, qIssues)
	res.tier = string(result.Uncertainty)

	now := time.Now()
	covRow := coverageRow(ent, summary, len(discs), result.Score, now)
	qualRow := qualityRow(ent.ID, runID, summary.TotalSources, result, now)

	if err := r.persistEntity(ctx, covRow, discRows, qualRow); err != nil {
		res.storeFailed = true
		slog.Error("Failed to persist game, continuing",
			"game_id", ent.ID, "error", err)
	}
	return res
}

// fetchRecords pulls the game's record from every source that maps
// it, registering coverage as it goes.
func (r *reconciler) fetchRecords(
	ctx context.Context,
	ent mapping.Entity,
	fetchers []fetcher,
	tracker *coverage.Tracker,
	res *entityResult,
) []*sources.Record {
	var recs []*sources.Record
	for _, f := range fetchers {
		nativeID, ok := ent.Sources[f.Source()]
		if !ok {
			continue
		}
		rec, found, err := f.FetchRecord(ctx, nativeID)
		if err != nil {
			res.sourceErrors++
			slog.Warn("Source read failed for game",
				"game_id", ent.ID, "source", f.Source(), "error", err)
			continue
		}
		if !found {
			continue
		}

		count := -1
		if rec.EventCount != nil {
			count = *rec.EventCount
		}
		tracker.RegisterPresence(ent.ID, f.Source(), count)
		recs = append(recs, rec)
	}
	return recs
}

// classifyAll turns detected discrepancies into store rows and quality
// issues.
func (r *reconciler) classifyAll(
	gameID string,
	discs []compare.Discrepancy,
	res *entityResult,
) ([]schema.DiscrepancyRecord, []quality.Issue) {
	now := time.Now()
	rows := make([]schema.DiscrepancyRecord, 0, len(discs))
	issues := make([]quality.Issue, 0, len(discs))

	for _, d := range discs {
		level := r.classifier.Classify(d.Field, d.Difference, d.PercentDifference)
		rec := resolve.Resolve(d, r.ranking)

		rows = append(rows, schema.DiscrepancyRecord{
			ID:                uuid.NewString(),
			GameID:            gameID,
			FieldName:         d.Field,
			Category:          string(d.Category),
			SourceValues:      encodeValues(d.Values),
			Difference:        d.Difference,
			PercentDifference: d.PercentDifference,
			Severity:          string(level),
			RecommendedSource: rec.Source,
			RecommendedValue:  rec.Value,
			Policy:            resolve.ForCategory(d.Category).Name(),
			ResolutionStatus:  "DETECTED",
			CreatedAt:         now,
		})
		issues = append(issues, quality.Issue{Field: d.Field, Severity: level})

		res.discFields = append(res.discFields, d.Field)
		res.discSeverities = append(res.discSeverities, string(level))
	}
	return rows, issues
}

// persistEntity upserts the game's coverage, discrepancy and quality
// rows.
func (r *reconciler) persistEntity(
	ctx context.Context,
	cov schema.CoverageRecord,
	discs []schema.DiscrepancyRecord,
	qual schema.QualityScoreRecord,
) error {
	if err := r.store.UpsertCoverage(ctx, []schema.CoverageRecord{cov}); err != nil {
		return err
	}
	if len(discs) > 0 {
		if err := r.store.UpsertDiscrepancies(ctx, discs); err != nil {
			return err
		}
	}
	return r.store.UpsertQualityScores(ctx,
		[]schema.QualityScoreRecord{qual})
}

// coverageRow builds the coverage store row for one game.
func coverageRow(
	ent mapping.Entity,
	s coverage.Summary,
	discCount int,
	score int,
	now time.Time,
) schema.CoverageRecord {
	return schema.CoverageRecord{
		GameID:           ent.ID,
		Season:           ent.Season,
		SourcesPresent:   encodeJSON(s.Sources),
		EventCounts:      encodeJSON(s.EventCounts),
		TotalSources:     s.TotalSources,
		HasDiscrepancies: discCount > 0,
		QualityScore:     score,
		PrimarySource:    s.PrimarySource,
		BackupSources:    encodeJSON(s.BackupSources),
		UpdatedAt:        now,
	}
}

// qualityRow builds the quality store row for one game.
func qualityRow(
	gameID, runID string,
	sourceCount int,
	res quality.Result,
	now time.Time,
) schema.QualityScoreRecord {
	return schema.QualityScoreRecord{
		GameID:           gameID,
		RunID:            runID,
		QualityScore:     res.Score,
		Uncertainty:      string(res.Uncertainty),
		EventCountIssue:  res.Flags.EventCount,
		CoordinateIssue:  res.Flags.Coordinate,
		ScoreIssue:       res.Flags.Score,
		TimingIssue:      res.Flags.Timing,
		TrainingEligible: res.TrainingEligible,
		TrainingWeight:   quality.TrainingWeight(res.Score),
		SourceCount:      sourceCount,
		Notes:            res.Notes,
		UpdatedAt:        now,
	}
}

// encodeValues serializes the per-source raw values, keeping explicit
// nulls for sources that omitted the field.
func encodeValues(values map[string]*string) string {
	return encodeJSON(values)
}

// encodeJSON serializes small summary maps for jsonb columns. The
// inputs are plain maps and slices of strings; encoding cannot fail
// for them.
func encodeJSON(v any) string {
	bs, err := gnfmt.GNjson{}.Encode(v)
	if err != nil {
		return "{}"
	}
	return string(bs)
}

// newSummary creates an empty run summary with initialized counters.
func newSummary(runID, season string) *hsdb.RunSummary {
	return &hsdb.RunSummary{
		RunID:                   runID,
		Season:                  season,
		DiscrepanciesByField:    make(map[string]int),
		DiscrepanciesBySeverity: make(map[string]int),
		QualityTiers:            make(map[string]int),
		TierTransitions:         make(map[string]int),
	}
}

// foldResult merges one game's outcome into the run summary.
func foldResult(s *hsdb.RunSummary, res entityResult) {
	s.EntitiesProcessed++
	switch {
	case res.storeFailed:
		s.Failed++
	case res.sourceErrors > 0:
		s.Partial++
	default:
		s.FullyReconciled++
	}
	if res.singleSource {
		s.SingleSource++
	}
	for _, f := range res.discFields {
		s.DiscrepanciesByField[f]++
	}
	for _, sev := range res.discSeverities {
		s.DiscrepanciesBySeverity[sev]++
	}
	if res.tier != "" {
		s.QualityTiers[res.tier]++
		prev := res.prevTier
		if prev == "" {
			prev = "NEW"
		}
		s.TierTransitions[prev+"->"+res.tier]++
	}
}
