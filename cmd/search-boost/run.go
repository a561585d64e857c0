// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdiddy/search-boost/internal/backend"
	"github.com/pdiddy/search-boost/internal/experiment"
	"github.com/pdiddy/search-boost/internal/history"
	"github.com/pdiddy/search-boost/internal/logger"
	"github.com/pdiddy/search-boost/pkg/types"
)

var runCmd = &cobra.Command{
	Use:   "run [query]",
	Short: "Run a boost experiment against the search backend",
	Long: `Run transforms the query, searches the backend with both the original and
the boosted query, and shows how each boosted result moved relative to the
baseline. When history.path is configured the run summary is recorded.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExperiment,
}

func init() {
	addBoostFlags(runCmd)
	f := runCmd.Flags()
	f.String("backend", "", "backend override: ads, compare, or file")
	f.String("baseline-file", "", "baseline result file for the file backend")
	f.String("boosted-file", "", "boosted result file for the file backend")
	f.Int("rows", 0, "number of results to request (default from config)")
	f.String("save", "", "write the full run to this YAML file")
	f.String("save-results", "", "write baseline.yaml and boosted.yaml to this directory")
	f.Bool("no-history", false, "do not record the run in history")
	f.Bool("json", false, "output as JSON")

	rootCmd.AddCommand(runCmd)
}

func runExperiment(cmd *cobra.Command, args []string) error {
	boostCfg, err := boostConfigFromFlags(cmd)
	if err != nil {
		return err
	}

	beCfg := backendConfigFromFlags(cmd, appCfg.Backend)
	be, err := backend.New(beCfg)
	if err != nil {
		return err
	}

	runner := &experiment.Runner{Backend: be, Logger: appLog}
	if noHistory, _ := cmd.Flags().GetBool("no-history"); !noHistory && appCfg.History.Path != "" {
		store, err := history.Open(appCfg.History.Path)
		if err != nil {
			return err
		}
		defer store.Close()
		runner.History = store
	}

	ctx := logger.ContextWithLogger(context.Background(), appLog)
	run, err := runner.Run(ctx, experiment.Request{
		Query:  strings.Join(args, " "),
		Config: boostCfg,
	})
	if err != nil {
		return err
	}

	if path, _ := cmd.Flags().GetString("save"); path != "" {
		if err := experiment.WriteFile(path, run); err != nil {
			return err
		}
		appLog.Info("saved run", zap.String("path", path))
	}
	if dir, _ := cmd.Flags().GetString("save-results"); dir != "" {
		if err := saveResults(dir, run); err != nil {
			return err
		}
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return experiment.FormatJSON(run, os.Stdout)
	}
	experiment.FormatRun(run, os.Stdout)
	return nil
}

// backendConfigFromFlags applies per-invocation overrides to the configured
// backend settings.
func backendConfigFromFlags(cmd *cobra.Command, cfg types.BackendConfig) types.BackendConfig {
	f := cmd.Flags()
	if kind, _ := f.GetString("backend"); kind != "" {
		cfg.Kind = types.BackendKind(kind)
	}
	if p, _ := f.GetString("baseline-file"); p != "" {
		cfg.BaselinePath = p
	}
	if p, _ := f.GetString("boosted-file"); p != "" {
		cfg.BoostedPath = p
	}
	if rows, _ := f.GetInt("rows"); rows > 0 {
		cfg.Rows = rows
	}
	return cfg
}

// saveResults writes both result lists so they can be replayed through the
// file backend or the reconcile command.
func saveResults(dir string, run *types.ExperimentRun) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating results directory: %w", err)
	}
	boosted := make([]types.ResultEntry, len(run.Boosted))
	for i, e := range run.Boosted {
		boosted[i] = e.ResultEntry
	}
	if err := backend.WriteResultFile(filepath.Join(dir, "baseline.yaml"), run.Query, run.Backend, run.Baseline); err != nil {
		return err
	}
	return backend.WriteResultFile(filepath.Join(dir, "boosted.yaml"), run.TransformedQuery, run.Backend, boosted)
}
