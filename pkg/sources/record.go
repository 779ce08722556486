package sources

// Record is one provider's view of one game. It is produced by the
// source adapter and is read-only to the reconciliation core. Fields a
// provider does not supply stay nil; absence is data, not an error.
type Record struct {
	// Source is the provider name from sources.yaml.
	Source string

	// NativeID is the provider's own identifier for the game.
	NativeID string

	// GameDate is the raw date string as the provider shipped it.
	// Typically "2006-01-02"; a malformed value is excluded from
	// comparison, never fatal.
	GameDate string

	// Season is the provider's season label, e.g. "2023-24".
	Season string

	// HomeTeam and AwayTeam are provider team labels.
	HomeTeam string
	AwayTeam string

	// HomeScore and AwayScore are final scores; nil when the provider
	// has no score for the game.
	HomeScore *int
	AwayScore *int

	// EventCount is the number of play-by-play items the provider
	// captured for the game; nil when unavailable.
	EventCount *int

	// Extras is an opaque key→value bag of provider-specific fields.
	// Extensible comparable fields (e.g. coordinate_count) read from
	// here.
	Extras map[string]string
}

// Int returns a pointer to i. Convenience for building records.
func Int(i int) *int { return &i }
