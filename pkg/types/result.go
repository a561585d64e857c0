// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ResultEntry is one ranked document returned by a search backend. Only
// Identifier and Title take part in reconciliation; everything else is
// carried through for display.
type ResultEntry struct {
	// Identifier is a stable catalog ID (ADS bibcode, DOI). Empty when unknown.
	Identifier string `json:"identifier,omitempty" yaml:"identifier,omitempty"`

	// Title is the document title as returned by the backend.
	Title string `json:"title,omitempty" yaml:"title,omitempty"`

	Authors       []string `json:"authors,omitempty" yaml:"authors,omitempty"`
	Year          int      `json:"year,omitempty" yaml:"year,omitempty"`
	CitationCount int      `json:"citation_count,omitempty" yaml:"citation_count,omitempty"`
	Doctype       string   `json:"doctype,omitempty" yaml:"doctype,omitempty"`

	// Score is the backend relevance score, when the backend reports one.
	Score float64 `json:"score,omitempty" yaml:"score,omitempty"`

	// Metadata holds any other backend fields, untouched.
	Metadata map[string]any `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// MatchMethod records which reconciliation step paired an entry with the baseline.
type MatchMethod string

const (
	MatchIdentifier MatchMethod = "identifier"
	MatchTitle      MatchMethod = "title"
	MatchFuzzy      MatchMethod = "fuzzy"
	MatchNone       MatchMethod = "none"
)

// MatchRecord describes where a re-ranked entry sat in the baseline list.
//
// RankChange is originalIndex - newIndex: positive means the entry moved up.
// An unmatched entry also has RankChange 0, so callers that need to tell
// "unchanged" from "not in the baseline" must check OriginalRank for nil.
type MatchRecord struct {
	// OriginalRank is the 1-based baseline rank, nil when no match was found.
	OriginalRank *int `json:"original_rank" yaml:"original_rank"`

	RankChange int `json:"rank_change" yaml:"rank_change"`

	Method MatchMethod `json:"match_method" yaml:"match_method"`

	// Similarity is the title similarity for fuzzy matches.
	Similarity float64 `json:"similarity,omitempty" yaml:"similarity,omitempty"`
}

// Matched reports whether the entry was found in the baseline.
func (m MatchRecord) Matched() bool {
	return m.OriginalRank != nil
}

// AnnotatedEntry is a re-ranked entry with its reconciliation result. Match is
// nil when reconciliation was skipped because one of the lists was empty.
type AnnotatedEntry struct {
	ResultEntry `yaml:",inline"`
	Match       *MatchRecord `json:"match,omitempty" yaml:"match,omitempty"`
}

// MovementStats summarizes how a boosted list moved relative to the baseline.
type MovementStats struct {
	Count     int `json:"count" yaml:"count"`
	MovedUp   int `json:"moved_up" yaml:"moved_up"`
	MovedDown int `json:"moved_down" yaml:"moved_down"`
	Unchanged int `json:"unchanged" yaml:"unchanged"`
	Unmatched int `json:"unmatched" yaml:"unmatched"`

	// AvgRankChange is the mean absolute rank change across all entries.
	AvgRankChange   float64 `json:"avg_rank_change" yaml:"avg_rank_change"`
	MaxRankIncrease int     `json:"max_rank_increase" yaml:"max_rank_increase"`
	MaxRankDecrease int     `json:"max_rank_decrease" yaml:"max_rank_decrease"`

	// RBO is the rank-biased overlap between baseline and boosted order.
	RBO float64 `json:"rbo" yaml:"rbo"`
}
