// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package reconcile aligns a re-ranked result list with its baseline and
// reports how far each entry moved.
//
// Entries are matched by identifier, then by exact normalized title, then by
// fuzzy title similarity. Matching is deterministic: the fuzzy pass walks
// baseline keys in insertion order.
//
// The fuzzy pass compares each unmatched entry against every baseline title,
// so reconciling two N-item lists costs O(N²) similarity computations in the
// worst case. That is fine for result pages of tens of items.
package reconcile

import (
	"github.com/pdiddy/search-boost/pkg/types"
)

// FuzzyThreshold is the title similarity an entry must exceed (strictly) to
// be accepted as a fuzzy match.
const FuzzyThreshold = 0.8

type candidate struct {
	entry types.ResultEntry
	index int
}

// lookupTable maps normalized titles and identifiers to baseline entries.
// Titles and identifiers share one key space, so an identifier equal to some
// normalized title replaces that title's entry.
type lookupTable struct {
	keys  []string
	byKey map[string]candidate
}

func newLookupTable(original []types.ResultEntry) *lookupTable {
	t := &lookupTable{byKey: make(map[string]candidate, 2*len(original))}
	for i, e := range original {
		c := candidate{entry: e, index: i}
		if e.Title != "" {
			t.put(NormalizeTitle(e.Title), c)
		}
		if e.Identifier != "" {
			t.put(e.Identifier, c)
		}
	}
	return t
}

// put stores c under key. Overwriting keeps the key's first insertion position.
func (t *lookupTable) put(key string, c candidate) {
	if _, ok := t.byKey[key]; !ok {
		t.keys = append(t.keys, key)
	}
	t.byKey[key] = c
}

func (t *lookupTable) get(key string) (candidate, bool) {
	c, ok := t.byKey[key]
	return c, ok
}

// fuzzy returns the most similar titled candidate above FuzzyThreshold.
// Candidates tied at the best score resolve to the last one visited.
func (t *lookupTable) fuzzy(title string) (candidate, float64, bool) {
	var (
		best      candidate
		bestScore float64
		found     bool
	)
	for _, key := range t.keys {
		c := t.byKey[key]
		if c.entry.Title == "" {
			continue
		}
		score := TitleSimilarity(title, c.entry.Title)
		if score > FuzzyThreshold && score >= bestScore {
			best, bestScore, found = c, score, true
		}
	}
	return best, bestScore, found
}

// Reconcile annotates every boosted entry with its baseline rank and rank
// change. If either list is empty the boosted entries are returned without
// annotations.
func Reconcile(original, boosted []types.ResultEntry) []types.AnnotatedEntry {
	out := make([]types.AnnotatedEntry, len(boosted))
	if len(original) == 0 || len(boosted) == 0 {
		for j, e := range boosted {
			out[j] = types.AnnotatedEntry{ResultEntry: e}
		}
		return out
	}

	table := newLookupTable(original)
	for j, e := range boosted {
		rec := match(table, e)
		if rec.Method != types.MatchNone {
			i := *rec.OriginalRank - 1
			rec.RankChange = i - j
		}
		out[j] = types.AnnotatedEntry{ResultEntry: e, Match: &rec}
	}
	return out
}

// match runs the identifier, exact title and fuzzy title steps in order.
func match(table *lookupTable, e types.ResultEntry) types.MatchRecord {
	found := func(c candidate, method types.MatchMethod, sim float64) types.MatchRecord {
		rank := c.index + 1
		return types.MatchRecord{OriginalRank: &rank, Method: method, Similarity: sim}
	}

	if e.Identifier != "" {
		if c, ok := table.get(e.Identifier); ok {
			return found(c, types.MatchIdentifier, 0)
		}
	}
	if e.Title != "" {
		if c, ok := table.get(NormalizeTitle(e.Title)); ok {
			return found(c, types.MatchTitle, 0)
		}
		if c, score, ok := table.fuzzy(e.Title); ok {
			return found(c, types.MatchFuzzy, score)
		}
	}
	return types.MatchRecord{Method: types.MatchNone}
}
