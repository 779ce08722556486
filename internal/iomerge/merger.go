// Package iomerge implements the Merger interface: mapping-free
// deduplication of per-source records grouped by composite identity
// key. This is an impure I/O package.
package iomerge

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/hoopsync/hsdb/internal/ioadapter"
	"github.com/hoopsync/hsdb/internal/iodb"
	"github.com/hoopsync/hsdb/internal/iosources"
	"github.com/hoopsync/hsdb/pkg/compare"
	"github.com/hoopsync/hsdb/pkg/config"
	"github.com/hoopsync/hsdb/pkg/db"
	"github.com/hoopsync/hsdb/pkg/hsdb"
	"github.com/hoopsync/hsdb/pkg/identity"
	"github.com/hoopsync/hsdb/pkg/resolve"
	"github.com/hoopsync/hsdb/pkg/schema"
	"github.com/hoopsync/hsdb/pkg/sources"
)

// merger implements the hsdb.Merger interface.
type merger struct {
	cfg      *config.Config
	operator db.Operator
	store    db.Store

	fields  []compare.Field
	ranking *resolve.Ranking
}

// New creates a Merger.
func New(cfg *config.Config, op db.Operator) hsdb.Merger {
	m := &merger{
		cfg:      cfg,
		operator: op,
		fields:   compare.DefaultFields(),
		ranking:  resolve.NewRanking(cfg.Trust.Ranking),
	}
	if pool := op.Pool(); pool != nil {
		m.store = iodb.NewPgxStore(pool, cfg)
	}
	return m
}

// Merge loads every enabled snapshot, groups records by identity key
// and persists one merged game per key.
func (m *merger) Merge(ctx context.Context) (*hsdb.MergeSummary, error) {
	if m.store == nil {
		return nil, NotConnectedError()
	}

	start := time.Now()
	slog.Info("Starting merge pass")

	records, summary, err := m.loadRecords(ctx)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, NoRecordsError()
	}

	groups, err := groupByIdentity(records)
	if err != nil {
		return nil, err
	}
	summary.MergedGames = len(groups)
	summary.DuplicatesFound = summary.RecordsProcessed - len(groups)

	merged := m.synthesizeAll(groups, summary)
	if err = m.store.UpsertMergedGames(ctx, merged); err != nil {
		return nil, err
	}

	summary.Duration = time.Since(start)
	m.report(summary)
	return summary, nil
}

// loadRecords reads every record of every enabled source. A source
// that fails contributes zero records and is counted; the pass fails
// only when all sources fail.
func (m *merger) loadRecords(
	ctx context.Context,
) ([]*sources.Record, *hsdb.MergeSummary, error) {
	sourcesConfig, err := iosources.New(m.cfg).Load()
	if err != nil {
		return nil, nil, err
	}
	selected, err := sourcesConfig.Filter(m.cfg.Reconcile.Sources)
	if err != nil {
		return nil, nil, err
	}

	summary := &hsdb.MergeSummary{}
	var records []*sources.Record
	for _, src := range selected {
		recs, err := loadSource(ctx, src)
		if err != nil {
			summary.SourceErrors++
			gn.PrintErrorMessage(err)
			slog.Error("Source failed to load, skipping",
				"source", src.Name, "error", err)
			continue
		}
		records = append(records, recs...)
	}
	summary.RecordsProcessed = len(records)

	if summary.SourceErrors == len(selected) {
		return nil, nil, AllSourcesFailedError(summary.SourceErrors)
	}
	return records, summary, nil
}

func loadSource(
	ctx context.Context,
	src sources.SourceConfig,
) ([]*sources.Record, error) {
	a, err := ioadapter.Open(src)
	if err != nil {
		return nil, err
	}
	defer a.Close()
	return a.AllRecords(ctx)
}

// groupByIdentity buckets records by composite key. Two records of
// the same source mapping to one key is a fatal collision; records
// whose key cannot be derived are skipped with a warning.
func groupByIdentity(
	records []*sources.Record,
) (map[identity.Key][]*sources.Record, error) {
	groups := make(map[identity.Key][]*sources.Record)
	for _, rec := range records {
		key, err := identity.New(rec)
		if err != nil {
			slog.Warn("Record skipped, identity key underivable",
				"source", rec.Source, "native_id", rec.NativeID,
				"error", err)
			continue
		}
		for _, prev := range groups[key] {
			if prev.Source == rec.Source {
				return nil, identity.CollisionError(string(key),
					prev.Source+"/"+prev.NativeID,
					rec.Source+"/"+rec.NativeID)
			}
		}
		groups[key] = append(groups[key], rec)
	}
	return groups, nil
}

// synthesizeAll builds merged games in deterministic key order.
func (m *merger) synthesizeAll(
	groups map[identity.Key][]*sources.Record,
	summary *hsdb.MergeSummary,
) []schema.MergedGame {
	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, string(k))
	}
	sort.Strings(keys)

	now := time.Now()
	merged := make([]schema.MergedGame, 0, len(keys))
	for _, k := range keys {
		game, conflicts := m.synthesize(k, groups[identity.Key(k)], now)
		summary.ConflictsResolved += conflicts
		merged = append(merged, game)
	}
	return merged
}

// report logs and prints the merge summary.
func (m *merger) report(s *hsdb.MergeSummary) {
	slog.Info("Merge pass finished",
		"records", s.RecordsProcessed,
		"merged_games", s.MergedGames,
		"duplicates", s.DuplicatesFound,
		"conflicts_resolved", s.ConflictsResolved,
		"source_errors", s.SourceErrors,
		"duration", s.Duration)

	msg := fmt.Sprintf(
		"Merged %s records into %s games in %s: %d duplicates, %d conflicts resolved",
		humanize.Comma(int64(s.RecordsProcessed)),
		humanize.Comma(int64(s.MergedGames)),
		gnfmt.TimeString(s.Duration.Seconds()),
		s.DuplicatesFound, s.ConflictsResolved)
	gn.Message(msg)
}
