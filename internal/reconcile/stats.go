// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package reconcile

import (
	"strconv"

	"github.com/pdiddy/search-boost/pkg/types"
)

// DefaultPersistence is the RBO persistence parameter. Higher values give
// more weight to agreement deeper in the lists.
const DefaultPersistence = 0.98

// Summarize counts how reconciled entries moved. Entries without a baseline
// match (or without annotations at all) count as unmatched, not unchanged.
// The RBO field is left for the caller; see RankBiasedOverlap.
func Summarize(results []types.AnnotatedEntry) types.MovementStats {
	stats := types.MovementStats{Count: len(results)}
	if len(results) == 0 {
		return stats
	}

	total := 0
	for _, r := range results {
		if r.Match == nil || !r.Match.Matched() {
			stats.Unmatched++
			continue
		}
		change := r.Match.RankChange
		switch {
		case change > 0:
			stats.MovedUp++
			stats.MaxRankIncrease = max(stats.MaxRankIncrease, change)
			total += change
		case change < 0:
			stats.MovedDown++
			stats.MaxRankDecrease = max(stats.MaxRankDecrease, -change)
			total -= change
		default:
			stats.Unchanged++
		}
	}
	stats.AvgRankChange = float64(total) / float64(len(results))
	return stats
}

// RankBiasedOverlap compares the baseline order with the reconciled boosted
// order using extrapolated rank-biased overlap (Webber et al. 2010). A boosted
// entry matched to baseline rank r shares that entry's identity; unmatched
// entries are unique. Identical orders score 1, disjoint lists 0.
// p outside (0, 1) falls back to DefaultPersistence.
func RankBiasedOverlap(original []types.ResultEntry, boosted []types.AnnotatedEntry, p float64) float64 {
	if p <= 0 || p >= 1 {
		p = DefaultPersistence
	}
	if len(original) == 0 && len(boosted) == 0 {
		return 1
	}
	if len(original) == 0 || len(boosted) == 0 {
		return 0
	}

	s := make([]string, len(original))
	for i := range original {
		s[i] = "o" + strconv.Itoa(i)
	}
	t := make([]string, len(boosted))
	for j, b := range boosted {
		if b.Match != nil && b.Match.Matched() {
			t[j] = "o" + strconv.Itoa(*b.Match.OriginalRank-1)
		} else {
			t[j] = "b" + strconv.Itoa(j)
		}
	}
	return rbo(s, t, p)
}

// rbo computes RBO_ext over the depth of the longer list. The shorter list
// contributes its full contents at depths beyond its length.
func rbo(s, t []string, p float64) float64 {
	k := max(len(s), len(t))
	seenS := make(map[string]bool, len(s))
	seenT := make(map[string]bool, len(t))

	var (
		overlap int
		sum     float64
		weight  = 1.0
	)
	for d := 1; d <= k; d++ {
		if d <= len(s) {
			if x := s[d-1]; !seenS[x] {
				seenS[x] = true
				if seenT[x] {
					overlap++
				}
			}
		}
		if d <= len(t) {
			if x := t[d-1]; !seenT[x] {
				seenT[x] = true
				if seenS[x] {
					overlap++
				}
			}
		}
		weight *= p
		sum += float64(overlap) / float64(d) * weight
	}
	return float64(overlap)/float64(k)*weight + (1-p)/p*sum
}
