// Package resolve implements resolution policies: deterministic rules
// that pick which provider's value to trust when providers disagree.
//
// Each field category has a named policy. Policies are pure functions
// of the discrepancy's per-provider values and the static trust
// ranking, so identical inputs always produce identical
// recommendations across reruns.
package resolve

import (
	"sort"

	"github.com/hoopsync/hsdb/pkg/compare"
)

// Recommendation is the outcome of resolving one discrepancy.
type Recommendation struct {
	// Source is the provider whose value is recommended. It is always
	// one of the providers that supplied a non-null value.
	Source string

	// Value is the recommended raw value.
	Value string
}

// Policy decides a recommendation for one discrepancy.
type Policy interface {
	// Name identifies the policy in ledgers and logs.
	Name() string

	// Resolve picks the recommended provider and value.
	Resolve(d compare.Discrepancy, r *Ranking) Recommendation
}

// Ranking is the static per-source trust order for a run. Lower rank
// means more trusted. It is read-only and safe to share.
type Ranking struct {
	order map[string]int
}

// NewRanking builds a Ranking from names ordered most to least
// trusted.
func NewRanking(names []string) *Ranking {
	order := make(map[string]int, len(names))
	for i, n := range names {
		if _, ok := order[n]; !ok {
			order[n] = i
		}
	}
	return &Ranking{order: order}
}

// MoreTrusted reports whether source a outranks source b. Sources
// absent from the ranking sort after ranked ones; ties break
// alphabetically so the result never depends on map iteration order.
func (r *Ranking) MoreTrusted(a, b string) bool {
	ra, aok := r.order[a]
	rb, bok := r.order[b]
	switch {
	case aok && bok && ra != rb:
		return ra < rb
	case aok != bok:
		return aok
	default:
		return a < b
	}
}

// Best returns the most trusted of the given sources.
func (r *Ranking) Best(names []string) string {
	if len(names) == 0 {
		return ""
	}
	best := names[0]
	for _, n := range names[1:] {
		if r.MoreTrusted(n, best) {
			best = n
		}
	}
	return best
}

// Order returns the given sources sorted most to least trusted.
func (r *Ranking) Order(names []string) []string {
	res := make([]string, len(names))
	copy(res, names)
	sort.Slice(res, func(i, j int) bool {
		return r.MoreTrusted(res[i], res[j])
	})
	return res
}

// ForCategory returns the default policy for a field category:
// count-like fields prefer the larger (assumed more complete) value,
// scores and dates always follow the trust ranking.
func ForCategory(c compare.Category) Policy {
	switch c {
	case compare.CategoryCount:
		return PreferLarger{}
	default:
		return PreferTrusted{}
	}
}

// Resolve applies the default policy of the discrepancy's category.
func Resolve(d compare.Discrepancy, r *Ranking) Recommendation {
	return ForCategory(d.Category).Resolve(d, r)
}

// PreferLarger recommends the largest value, assuming the provider
// that captured more items is the more complete one. Ties between
// providers with the same value break by trust ranking.
type PreferLarger struct{}

// Name implements Policy.
func (PreferLarger) Name() string { return "prefer_larger" }

// Resolve implements Policy.
func (PreferLarger) Resolve(
	d compare.Discrepancy, r *Ranking,
) Recommendation {
	var best string
	var bestV float64
	for _, src := range orderedSources(d.Numeric) {
		v := d.Numeric[src]
		switch {
		case best == "", v > bestV:
			best, bestV = src, v
		case v == bestV && r.MoreTrusted(src, best):
			best = src
		}
	}
	return recommendationFor(d, best)
}

// PreferTrusted recommends the highest-ranked provider that supplied
// a non-null value, regardless of the value itself.
type PreferTrusted struct{}

// Name implements Policy.
func (PreferTrusted) Name() string { return "prefer_trusted" }

// Resolve implements Policy.
func (PreferTrusted) Resolve(
	d compare.Discrepancy, r *Ranking,
) Recommendation {
	best := r.Best(orderedSources(d.Numeric))
	return recommendationFor(d, best)
}

// orderedSources returns the providers with non-null values in a
// stable alphabetical order.
func orderedSources(numeric map[string]float64) []string {
	res := make([]string, 0, len(numeric))
	for src := range numeric {
		res = append(res, src)
	}
	sort.Strings(res)
	return res
}

func recommendationFor(d compare.Discrepancy, src string) Recommendation {
	rec := Recommendation{Source: src}
	if v := d.Values[src]; v != nil {
		rec.Value = *v
	}
	return rec
}
