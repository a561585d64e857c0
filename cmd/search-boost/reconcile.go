// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/search-boost/internal/api"
	"github.com/pdiddy/search-boost/internal/backend"
	"github.com/pdiddy/search-boost/internal/experiment"
)

var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Compare two saved result lists",
	Long: `Reconcile matches each entry of the boosted list to the baseline list by
identifier, then normalized title, then fuzzy title similarity, and reports
each entry's previous rank and how far it moved.

Both files hold a result list as written by 'run --save-results', or a bare
YAML/JSON list of entries.`,
	RunE: runReconcile,
}

func init() {
	reconcileCmd.Flags().String("original", "", "baseline result file (required)")
	reconcileCmd.Flags().String("boosted", "", "boosted result file (required)")
	reconcileCmd.Flags().Bool("json", false, "output as JSON")
	_ = reconcileCmd.MarkFlagRequired("original")
	_ = reconcileCmd.MarkFlagRequired("boosted")

	rootCmd.AddCommand(reconcileCmd)
}

func runReconcile(cmd *cobra.Command, args []string) error {
	originalPath, _ := cmd.Flags().GetString("original")
	boostedPath, _ := cmd.Flags().GetString("boosted")

	original, err := backend.ReadResultFile(originalPath)
	if err != nil {
		return fmt.Errorf("loading baseline: %w", err)
	}
	boosted, err := backend.ReadResultFile(boostedPath)
	if err != nil {
		return fmt.Errorf("loading boosted results: %w", err)
	}

	results, stats := experiment.Compare(original.Results, boosted.Results)

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return experiment.FormatJSON(api.ReconcileResponse{Results: results, Stats: stats}, os.Stdout)
	}
	experiment.FormatTable(results, stats, os.Stdout)
	return nil
}
