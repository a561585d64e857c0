// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package experiment

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/search-boost/pkg/types"
)

// FormatTable writes the reconciled list as a human-readable table to w,
// followed by the movement summary.
func FormatTable(annotated []types.AnnotatedEntry, stats types.MovementStats, w io.Writer) {
	if len(annotated) == 0 {
		fmt.Fprintln(w, "No results found.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-4s  %-6s  %-10s  %-60s  %s\n",
		"Rank", "Was", "Change", "Match", "Title", "Year")
	fmt.Fprintln(w, strings.Repeat("-", 100))

	for i, e := range annotated {
		was, change, method := "-", "", ""
		if e.Match != nil {
			method = string(e.Match.Method)
			if e.Match.Matched() {
				was = fmt.Sprintf("%d", *e.Match.OriginalRank)
				change = formatChange(e.Match.RankChange)
			}
		}
		year := ""
		if e.Year > 0 {
			year = fmt.Sprintf("%d", e.Year)
		}
		fmt.Fprintf(w, "%-4d  %-4s  %-6s  %-10s  %-60s  %s\n",
			i+1, was, change, method, truncate(e.Title, 60), year)
	}

	fmt.Fprintln(w)
	FormatStats(stats, w)
}

// FormatStats writes a one-paragraph movement summary to w.
func FormatStats(s types.MovementStats, w io.Writer) {
	fmt.Fprintf(w, "%d results: %d up, %d down, %d unchanged, %d not in baseline\n",
		s.Count, s.MovedUp, s.MovedDown, s.Unchanged, s.Unmatched)
	fmt.Fprintf(w, "avg |change| %.2f, max up %d, max down %d, RBO %.3f\n",
		s.AvgRankChange, s.MaxRankIncrease, s.MaxRankDecrease, s.RBO)
}

// FormatRun writes the queries, then the reconciled table.
func FormatRun(run *types.ExperimentRun, w io.Writer) {
	fmt.Fprintf(w, "Run:         %s\n", run.ID)
	fmt.Fprintf(w, "Backend:     %s\n", run.Backend)
	fmt.Fprintf(w, "Query:       %s\n", run.Query)
	fmt.Fprintf(w, "Transformed: %s\n\n", run.TransformedQuery)
	FormatTable(run.Boosted, run.Stats, w)
}

// FormatJSON writes v as indented JSON to w.
func FormatJSON(v any, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func formatChange(c int) string {
	switch {
	case c > 0:
		return fmt.Sprintf("+%d", c)
	case c < 0:
		return fmt.Sprintf("%d", c)
	default:
		return "="
	}
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
