package corpus

import (
	"strings"

	"github.com/samber/lo"
)

// FilterByDifficulty returns the entries eligible for d. Simple draws from
// characters only, medium adds short phrases, hard adds long phrases.
// Unknown difficulties are treated as simple. The result is a fresh slice;
// the pool is never modified.
func FilterByDifficulty(pool *Pool, d Difficulty) []Entry {
	if pool == nil {
		return nil
	}

	var tiers [][]Entry
	switch d {
	case DifficultyMedium:
		tiers = [][]Entry{pool.Characters, pool.ShortPhrases}
	case DifficultyHard:
		tiers = [][]Entry{pool.Characters, pool.ShortPhrases, pool.LongPhrases}
	default:
		tiers = [][]Entry{pool.Characters}
	}
	return lo.Flatten(tiers)
}

// FilterBySource keeps entries whose source contains source. An empty
// source or "all" returns the entries unchanged.
func FilterBySource(entries []Entry, source string) []Entry {
	if source == "" || source == "all" {
		return entries
	}
	return lo.Filter(entries, func(e Entry, _ int) bool {
		return strings.Contains(e.Source, source)
	})
}

// Sources lists the distinct non-empty sources in first-seen order.
func Sources(entries []Entry) []string {
	sources := lo.FilterMap(entries, func(e Entry, _ int) (string, bool) {
		return e.Source, e.Source != ""
	})
	return lo.Uniq(sources)
}
