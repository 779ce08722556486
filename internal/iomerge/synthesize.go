package iomerge

import (
	"database/sql"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/hoopsync/hsdb/pkg/compare"
	"github.com/hoopsync/hsdb/pkg/resolve"
	"github.com/hoopsync/hsdb/pkg/schema"
	"github.com/hoopsync/hsdb/pkg/sources"
)

// synthesize builds one merged game from its group. Team names, date
// and season come from the most trusted supplier; numeric fields go
// through the per-category resolution policy when sources disagree.
// Returns the game and the number of conflicts policy had to settle.
func (m *merger) synthesize(
	key string,
	recs []*sources.Record,
	now time.Time,
) (schema.MergedGame, int) {
	recs = m.byTrust(recs)
	base := recs[0]

	game := schema.MergedGame{
		ID:             key,
		Season:         base.Season,
		GameDate:       dayOf(base.GameDate),
		HomeTeam:       base.HomeTeam,
		AwayTeam:       base.AwayTeam,
		SourcesMerged:  encodeSources(m.ranking, recs),
		MergeTimestamp: now,
	}

	discs, _ := compare.Detect(key, recs, m.fields)
	resolved := make(map[string]string, len(discs))
	conflicts := 0
	for _, d := range discs {
		rec := resolve.Resolve(d, m.ranking)
		resolved[d.Field] = rec.Value
		conflicts++
	}

	game.HomeScore = mergedInt(compare.FieldHomeScore, resolved, recs,
		func(r *sources.Record) *int { return r.HomeScore })
	game.AwayScore = mergedInt(compare.FieldAwayScore, resolved, recs,
		func(r *sources.Record) *int { return r.AwayScore })
	game.EventCount = mergedInt(compare.FieldEventCount, resolved, recs,
		func(r *sources.Record) *int { return r.EventCount })

	if v, ok := resolved[compare.FieldGameDate]; ok {
		game.GameDate = dayOf(v)
	}
	return game, conflicts
}

// byTrust returns the group's records sorted from most to least
// trusted source.
func (m *merger) byTrust(recs []*sources.Record) []*sources.Record {
	out := make([]*sources.Record, len(recs))
	copy(out, recs)
	sort.SliceStable(out, func(i, j int) bool {
		return m.ranking.MoreTrusted(out[i].Source, out[j].Source)
	})
	return out
}

// mergedInt settles one integer column: the policy's pick when the
// sources conflicted, otherwise the first non-null value in trust
// order. Null when no source supplied one.
func mergedInt(
	field string,
	resolved map[string]string,
	recs []*sources.Record,
	get func(*sources.Record) *int,
) sql.NullInt32 {
	if raw, ok := resolved[field]; ok {
		if n, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil {
			return sql.NullInt32{Int32: int32(n), Valid: true}
		}
	}
	for _, r := range recs {
		if v := get(r); v != nil {
			return sql.NullInt32{Int32: int32(*v), Valid: true}
		}
	}
	return sql.NullInt32{}
}

// encodeSources serializes the contributing source names in trust
// order.
func encodeSources(ranking *resolve.Ranking, recs []*sources.Record) string {
	names := make([]string, 0, len(recs))
	for _, r := range recs {
		names = append(names, r.Source)
	}
	names = ranking.Order(names)

	var sb strings.Builder
	sb.WriteString(`[`)
	for i, n := range names {
		if i > 0 {
			sb.WriteString(`,`)
		}
		sb.WriteString(strconv.Quote(n))
	}
	sb.WriteString(`]`)
	return sb.String()
}

// dayOf truncates a timestamp to its date component.
func dayOf(date string) string {
	date = strings.TrimSpace(date)
	if len(date) > 10 {
		date = date[:10]
	}
	return date
}
