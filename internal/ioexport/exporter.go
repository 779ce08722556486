// Package ioexport writes the reconciled dataset to files: a nested
// JSON snapshot and a flat CSV variant for direct sample weighting.
// This is an impure I/O package.
package ioexport

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/hoopsync/hsdb/internal/iodb"
	"github.com/hoopsync/hsdb/pkg/config"
	"github.com/hoopsync/hsdb/pkg/db"
	"github.com/hoopsync/hsdb/pkg/export"
	"github.com/hoopsync/hsdb/pkg/hsdb"
	"github.com/hoopsync/hsdb/pkg/schema"
)

// exporter implements the hsdb.Exporter interface.
type exporter struct {
	cfg      *config.Config
	operator db.Operator
	store    db.Store
}

// New creates an Exporter.
func New(cfg *config.Config, op db.Operator) hsdb.Exporter {
	e := &exporter{cfg: cfg, operator: op}
	if pool := op.Pool(); pool != nil {
		e.store = iodb.NewPgxStore(pool, cfg)
	}
	return e
}

// Export writes the snapshot and the flat dataset to the output
// directory.
func (e *exporter) Export(ctx context.Context) (*hsdb.ExportSummary, error) {
	if e.store == nil {
		return nil, NotConnectedError()
	}

	start := time.Now()
	slog.Info("Starting export")

	quality, err := e.store.QualityRows(ctx)
	if err != nil {
		return nil, err
	}
	if len(quality) == 0 {
		return nil, EmptyDatasetError()
	}
	coverage, err := e.store.CoverageRows(ctx)
	if err != nil {
		return nil, err
	}
	disputed, err := e.discrepantFields(ctx)
	if err != nil {
		return nil, err
	}

	snap := buildSnapshot(quality, coverage, disputed, time.Now())

	outDir := e.cfg.Reconcile.OutputDir
	if outDir == "" {
		outDir = config.ExportDir(e.cfg.HomeDir)
	}
	if err = os.MkdirAll(outDir, 0755); err != nil {
		return nil, WriteError(outDir, err)
	}

	stamp := start.Format("20060102-150405")
	snapshotPath := filepath.Join(outDir,
		fmt.Sprintf("snapshot-%s.json", stamp))
	datasetPath := filepath.Join(outDir,
		fmt.Sprintf("dataset-%s.csv", stamp))

	if err = WriteSnapshot(snapshotPath, snap); err != nil {
		return nil, err
	}
	if err = WriteDataset(datasetPath, snap); err != nil {
		return nil, err
	}

	summary := &hsdb.ExportSummary{
		SnapshotPath: snapshotPath,
		DatasetPath:  datasetPath,
		Entities:     len(snap.Games),
		Duration:     time.Since(start),
	}

	slog.Info("Export finished",
		"entities", summary.Entities,
		"snapshot", snapshotPath,
		"dataset", datasetPath,
		"duration", summary.Duration)
	msg := fmt.Sprintf("Exported %s games to %s",
		humanize.Comma(int64(summary.Entities)), outDir)
	gn.Message(msg)

	return summary, nil
}

// discrepantFields lists the disputed field names per multi-source
// game from the filtered store scans.
func (e *exporter) discrepantFields(
	ctx context.Context,
) (map[string][]string, error) {
	ids, err := e.store.MultiSourceGameIDs(ctx)
	if err != nil {
		return nil, err
	}
	res := make(map[string][]string, len(ids))
	for _, id := range ids {
		rows, err := e.store.DiscrepancyRows(ctx, id)
		if err != nil {
			return nil, err
		}
		for _, row := range rows {
			res[id] = append(res[id], row.FieldName)
		}
	}
	return res, nil
}

// buildSnapshot assembles the export from store rows. Coverage rows
// enrich the per-game records; a game without one still exports.
func buildSnapshot(
	quality []schema.QualityScoreRecord,
	coverage []schema.CoverageRecord,
	disputed map[string][]string,
	now time.Time,
) export.Snapshot {
	covByID := make(map[string]schema.CoverageRecord, len(coverage))
	for _, c := range coverage {
		covByID[c.GameID] = c
	}

	snap := export.Snapshot{
		Metadata: export.Metadata{
			ExportedAt:     now,
			RunID:          sharedRunID(quality),
			TotalEntities:  len(quality),
			QualityTiers:   make(map[string]int),
			SourceCoverage: make(map[string]int),
		},
	}

	for _, q := range quality {
		cov := covByID[q.GameID]
		game := export.Game{
			GameID:            q.GameID,
			Season:            cov.Season,
			QualityScore:      q.QualityScore,
			Uncertainty:       q.Uncertainty,
			TrainingEligible:  q.TrainingEligible,
			TrainingWeight:    export.RoundWeight(q.TrainingWeight),
			SourceCount:       q.SourceCount,
			RecommendedSource: cov.PrimarySource,
			DiscrepantFields:  disputed[q.GameID],
			Flags: export.Flags{
				EventCount: q.EventCountIssue,
				Coordinate: q.CoordinateIssue,
				Score:      q.ScoreIssue,
				Timing:     q.TimingIssue,
			},
		}
		snap.Games = append(snap.Games, game)

		snap.Metadata.QualityTiers[q.Uncertainty]++
		snap.Metadata.SourceCoverage[strconv.Itoa(q.SourceCount)]++
	}
	return snap
}

// sharedRunID returns the run id every quality row carries, or empty
// when the rows mix runs.
func sharedRunID(quality []schema.QualityScoreRecord) string {
	if len(quality) == 0 {
		return ""
	}
	runID := quality[0].RunID
	for _, q := range quality[1:] {
		if q.RunID != runID {
			return ""
		}
	}
	return runID
}

// WriteSnapshot writes the nested JSON file.
func WriteSnapshot(path string, snap export.Snapshot) error {
	bs, err := gnfmt.GNjson{Pretty: true}.Encode(snap)
	if err != nil {
		return EncodeError(err)
	}
	if err = os.WriteFile(path, bs, 0644); err != nil {
		return WriteError(path, err)
	}
	return nil
}

// LoadSnapshot reads a snapshot file back. Used by downstream tooling
// and round-trip checks.
func LoadSnapshot(path string) (*export.Snapshot, error) {
	bs, err := os.ReadFile(path)
	if err != nil {
		return nil, ReadError(path, err)
	}
	var snap export.Snapshot
	if err = (gnfmt.GNjson{}).Decode(bs, &snap); err != nil {
		return nil, EncodeError(err)
	}
	return &snap, nil
}

// WriteDataset writes the flat CSV variant.
func WriteDataset(path string, snap export.Snapshot) error {
	f, err := os.Create(path)
	if err != nil {
		return WriteError(path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err = w.Write(export.CSVHeader()); err != nil {
		return WriteError(path, err)
	}
	for _, g := range snap.Games {
		row := []string{
			g.GameID,
			g.Season,
			strconv.Itoa(g.QualityScore),
			g.Uncertainty,
			strconv.FormatBool(g.TrainingEligible),
			strconv.FormatFloat(g.TrainingWeight, 'f', 4, 64),
			strconv.Itoa(g.SourceCount),
			g.RecommendedSource,
			strconv.FormatBool(g.Flags.EventCount),
			strconv.FormatBool(g.Flags.Coordinate),
			strconv.FormatBool(g.Flags.Score),
			strconv.FormatBool(g.Flags.Timing),
		}
		if err = w.Write(row); err != nil {
			return WriteError(path, err)
		}
	}
	w.Flush()
	if err = w.Error(); err != nil {
		return WriteError(path, err)
	}
	return nil
}
