// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/search-boost/internal/experiment"
	"github.com/pdiddy/search-boost/internal/history"
	"github.com/pdiddy/search-boost/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history [run-id]",
	Short: "List recorded experiment runs",
	Long: `History lists recent experiment runs from the database at history.path,
newest first. Given a run ID it shows that run's summary.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum number of runs to list")
	historyCmd.Flags().Bool("json", false, "output as JSON")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	if appCfg.History.Path == "" {
		return fmt.Errorf("history is not configured: set history.path or SEARCH_BOOST_HISTORY_PATH")
	}
	store, err := history.Open(appCfg.History.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()
	asJSON, _ := cmd.Flags().GetBool("json")

	if len(args) == 1 {
		run, err := store.Get(ctx, args[0])
		if err != nil {
			return err
		}
		if asJSON {
			return experiment.FormatJSON(run, os.Stdout)
		}
		fmt.Printf("Run:         %s\n", run.ID)
		fmt.Printf("Created:     %s\n", run.CreatedAt.Format("2006-01-02 15:04:05"))
		fmt.Printf("Backend:     %s\n", run.Backend)
		fmt.Printf("Query:       %s\n", run.Query)
		fmt.Printf("Transformed: %s\n\n", run.TransformedQuery)
		experiment.FormatStats(run.Stats, os.Stdout)
		return nil
	}

	limit, _ := cmd.Flags().GetInt("limit")
	runs, err := store.List(ctx, limit)
	if err != nil {
		return err
	}
	if asJSON {
		return experiment.FormatJSON(runs, os.Stdout)
	}
	formatHistory(runs, os.Stdout)
	return nil
}

func formatHistory(runs []types.RunSummary, w io.Writer) {
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded.")
		return
	}
	fmt.Fprintf(w, "%-36s  %-16s  %-4s  %-4s  %-4s  %-5s  %s\n",
		"ID", "Created", "Up", "Down", "Same", "RBO", "Query")
	fmt.Fprintln(w, strings.Repeat("-", 100))
	for _, r := range runs {
		fmt.Fprintf(w, "%-36s  %-16s  %-4d  %-4d  %-4d  %-5.3f  %s\n",
			r.ID, r.CreatedAt.Format("2006-01-02 15:04"),
			r.Stats.MovedUp, r.Stats.MovedDown, r.Stats.Unchanged, r.Stats.RBO, r.Query)
	}
}
