// Package identity derives deterministic composite keys for game
// records. Two records describe the same real-world game when their
// normalized home team, away team, date and season agree, regardless
// of which provider supplied them. Native provider identifiers are
// deliberately excluded so that independent snapshots of the same game
// collapse to one key.
package identity

import (
	"strings"

	"github.com/gnames/gnuuid"
	"github.com/hoopsync/hsdb/pkg/sources"
)

// Key is a UUID v5 string computed from the normalized composite of a
// game record. Equal keys mean the same game.
type Key string

// New builds the composite key for a record. The inputs are normalized
// before hashing: team names are lower-cased with collapsed internal
// whitespace, the date is truncated to day granularity, and the season
// is trimmed. Records that differ only in formatting produce the same
// key.
func New(rec *sources.Record) (Key, error) {
	if rec == nil {
		return "", NilRecordError()
	}

	home := normalizeTeam(rec.HomeTeam)
	away := normalizeTeam(rec.AwayTeam)
	if home == "" || away == "" {
		return "", MissingTeamError(rec.Source, rec.NativeID)
	}

	date := normalizeDate(rec.GameDate)
	if date == "" {
		return "", MissingDateError(rec.Source, rec.NativeID)
	}

	composite := home + "|" + away + "|" + date + "|" +
		strings.TrimSpace(rec.Season)
	return Key(gnuuid.New(composite).String()), nil
}

// normalizeTeam lower-cases a team name and collapses runs of internal
// whitespace to single spaces.
func normalizeTeam(name string) string {
	fields := strings.Fields(strings.ToLower(name))
	return strings.Join(fields, " ")
}

// normalizeDate truncates a timestamp to its date component. Provider
// snapshots disagree on time-of-day and timezone far more often than
// on the calendar day, so day granularity is the identity boundary.
func normalizeDate(date string) string {
	date = strings.TrimSpace(date)
	if len(date) > 10 {
		date = date[:10]
	}
	return date
}
