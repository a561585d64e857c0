// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package reconcile

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/search-boost/pkg/types"
)

func entry(id, title string) types.ResultEntry {
	return types.ResultEntry{Identifier: id, Title: title}
}

func TestNormalizeTitle(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Dark Matter: A Review (2nd ed.)", "dark matter a review 2nd ed"},
		{"  Spaced \t out\n title ", "spaced out title"},
		{"!!!", ""},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeTitle(tt.in), "NormalizeTitle(%q)", tt.in)
	}
}

func TestTitleSimilarity(t *testing.T) {
	assert.Equal(t, 0.0, TitleSimilarity("", "anything"))
	assert.Equal(t, 0.0, TitleSimilarity("anything", ""))
	assert.Equal(t, 1.0, TitleSimilarity("Dark Matter", "dark matter!"))
	assert.InDelta(t, 5.0/6.0, TitleSimilarity(
		"Neural Network Approaches to X",
		"Neural Network Approaches to X, Revisited"), 1e-9)
}

func TestReconcileIdenticalLists(t *testing.T) {
	list := []types.ResultEntry{
		entry("2020ApJ...1A", "Galaxy Rotation Curves"),
		entry("", "Cosmic Microwave Background Anisotropies"),
		entry("2021MNRAS.2B", "Dark Energy Survey Results"),
	}

	got := Reconcile(list, list)
	require.Len(t, got, len(list))
	for i, r := range got {
		require.NotNil(t, r.Match, "entry %d", i)
		require.NotNil(t, r.Match.OriginalRank, "entry %d", i)
		assert.Equal(t, i+1, *r.Match.OriginalRank)
		assert.Equal(t, 0, r.Match.RankChange)
	}
	assert.Equal(t, types.MatchIdentifier, got[0].Match.Method)
	assert.Equal(t, types.MatchTitle, got[1].Match.Method)
}

func TestReconcileIdentifierMatch(t *testing.T) {
	original := []types.ResultEntry{
		entry("A", "First"), entry("B", "Second"), entry("C", "Third"), entry("D", "Fourth"),
	}
	boosted := []types.ResultEntry{
		entry("D", "Fourth paper retitled entirely"), entry("A", "First"),
	}

	got := Reconcile(original, boosted)
	require.Len(t, got, 2)
	require.NotNil(t, got[0].Match.OriginalRank)
	assert.Equal(t, 4, *got[0].Match.OriginalRank)
	assert.Equal(t, 3, got[0].Match.RankChange)
	assert.Equal(t, types.MatchIdentifier, got[0].Match.Method)

	assert.Equal(t, 1, *got[1].Match.OriginalRank)
	assert.Equal(t, -1, got[1].Match.RankChange)
}

func TestReconcileIdentifierBeatsTitle(t *testing.T) {
	original := []types.ResultEntry{entry("X1", "Shared Title"), entry("X2", "Other")}
	boosted := []types.ResultEntry{entry("X2", "Shared Title")}

	got := Reconcile(original, boosted)
	assert.Equal(t, 2, *got[0].Match.OriginalRank)
	assert.Equal(t, types.MatchIdentifier, got[0].Match.Method)
}

func TestReconcileFuzzyMatch(t *testing.T) {
	original := []types.ResultEntry{
		entry("", "Stellar Populations in Dwarf Galaxies"),
		entry("", "Neural Network Approaches to X, Revisited"),
	}
	boosted := []types.ResultEntry{entry("", "Neural Network Approaches to X")}

	got := Reconcile(original, boosted)
	require.NotNil(t, got[0].Match.OriginalRank)
	assert.Equal(t, 2, *got[0].Match.OriginalRank)
	assert.Equal(t, 1, got[0].Match.RankChange)
	assert.Equal(t, types.MatchFuzzy, got[0].Match.Method)
	assert.InDelta(t, 5.0/6.0, got[0].Match.Similarity, 1e-9)
}

func TestReconcileFuzzyThresholdIsStrict(t *testing.T) {
	// 4 shared words out of 5 is exactly 0.8, which is not enough.
	original := []types.ResultEntry{entry("", "alpha beta gamma delta epsilon")}
	boosted := []types.ResultEntry{entry("", "alpha beta gamma delta")}

	got := Reconcile(original, boosted)
	require.NotNil(t, got[0].Match)
	assert.Nil(t, got[0].Match.OriginalRank)
	assert.Equal(t, 0, got[0].Match.RankChange)
	assert.Equal(t, types.MatchNone, got[0].Match.Method)
	assert.False(t, got[0].Match.Matched())
}

func TestReconcileFuzzyTieGoesToLastCandidate(t *testing.T) {
	original := []types.ResultEntry{
		entry("", "alpha beta gamma delta epsilon zeta"),
		entry("", "alpha beta gamma delta epsilon eta"),
	}
	boosted := []types.ResultEntry{entry("", "alpha beta gamma delta epsilon")}

	got := Reconcile(original, boosted)
	require.NotNil(t, got[0].Match.OriginalRank)
	assert.Equal(t, 2, *got[0].Match.OriginalRank)
}

// Titles and identifiers share one key space. When an identifier equals
// another entry's normalized title, the later insertion wins. This is a
// known limitation, kept so results stay comparable with earlier runs.
func TestReconcileKeyCollisionLaterInsertionWins(t *testing.T) {
	original := []types.ResultEntry{
		entry("", "2019ApJ"),
		entry("2019apj", "Unrelated Title"),
	}
	boosted := []types.ResultEntry{entry("", "2019ApJ")}

	got := Reconcile(original, boosted)
	require.NotNil(t, got[0].Match.OriginalRank)
	assert.Equal(t, 2, *got[0].Match.OriginalRank)
	assert.Equal(t, types.MatchTitle, got[0].Match.Method)
}

func TestReconcileUnmatched(t *testing.T) {
	original := []types.ResultEntry{entry("A", "Quasar Luminosity Functions")}
	boosted := []types.ResultEntry{entry("Z", "Exoplanet Atmospheres"), entry("", "")}

	got := Reconcile(original, boosted)
	for _, r := range got {
		require.NotNil(t, r.Match)
		assert.Nil(t, r.Match.OriginalRank)
		assert.Equal(t, 0, r.Match.RankChange)
	}
}

func TestReconcilePassThrough(t *testing.T) {
	list := []types.ResultEntry{entry("A", "One"), entry("B", "Two")}

	tests := []struct {
		name     string
		original []types.ResultEntry
		boosted  []types.ResultEntry
		wantLen  int
	}{
		{"no baseline", nil, list, 2},
		{"empty baseline", []types.ResultEntry{}, list, 2},
		{"no boosted", list, nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Reconcile(tt.original, tt.boosted)
			require.Len(t, got, tt.wantLen)
			for i, r := range got {
				assert.Nil(t, r.Match)
				assert.Equal(t, tt.boosted[i], r.ResultEntry)
			}
		})
	}
}

func TestReconcileLargeListIsDeterministic(t *testing.T) {
	var original, boosted []types.ResultEntry
	for i := 0; i < 50; i++ {
		original = append(original, entry("", fmt.Sprintf("paper number %d about galaxies and stars", i)))
	}
	for i := 49; i >= 0; i-- {
		boosted = append(boosted, entry("", fmt.Sprintf("Paper number %d about galaxies and stars", i)))
	}

	a := Reconcile(original, boosted)
	b := Reconcile(original, boosted)
	assert.Equal(t, a, b)
	assert.Equal(t, 49, a[0].Match.RankChange)
	assert.Equal(t, -49, a[49].Match.RankChange)
}
