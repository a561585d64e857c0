// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the search-boost CLI: query field
// boosting, rank reconciliation and boost experiments.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/search-boost/internal/backend"
	"github.com/pdiddy/search-boost/internal/logger"
	"github.com/pdiddy/search-boost/internal/secrets"
	"github.com/pdiddy/search-boost/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	// appCfg is the merged configuration from file, environment and secrets.
	appCfg types.AppConfig

	// appLog is built from appCfg.Log once configuration is loaded.
	appLog = zap.NewNop()
)

// rootCmd is the base command for the search-boost CLI.
var rootCmd = &cobra.Command{
	Use:   "search-boost",
	Short: "Field-boost search queries and measure how rankings move",
	Long: `search-boost rewrites a free-text query into a field-weighted boolean query,
runs the original and boosted queries against a search backend, and reports
how each result moved between the two rankings.

Field weights come from a boost file (--boost) or repeated --field flags.
Backend, history and server settings come from search-boost.yaml or
SEARCH_BOOST_* environment variables. The ADS token may also be placed in
.secrets/ads-api-token.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = appLog.Sync()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./search-boost.yaml or ~/.config/search-boost/config.yaml)")
	pf.String("secrets-dir", ".secrets/", "directory of secret files")
	pf.String("log-level", "", "log level: debug, info, warn, error")
	pf.Bool("log-json", false, "write logs as JSON")

	_ = viper.BindPFlag("log.level", pf.Lookup("log-level"))
	_ = viper.BindPFlag("log.json", pf.Lookup("log-json"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("search-boost")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "search-boost"))
		}
	}

	setDefaults()

	viper.SetEnvPrefix("SEARCH_BOOST")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// setDefaults registers every config key so environment variables can
// override keys that are absent from the config file.
func setDefaults() {
	viper.SetDefault("backend.kind", string(types.BackendADS))
	viper.SetDefault("backend.base_url", "")
	viper.SetDefault("backend.token", "")
	viper.SetDefault("backend.source", "ads")
	viper.SetDefault("backend.rows", 20)
	viper.SetDefault("backend.timeout", "30s")
	viper.SetDefault("backend.user_agent", "search-boost/"+version)
	viper.SetDefault("backend.fields", backend.DefaultFields)
	viper.SetDefault("backend.baseline_path", "")
	viper.SetDefault("backend.boosted_path", "")
	viper.SetDefault("history.path", "")
	viper.SetDefault("server.addr", ":8080")
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.json", false)
}

// loadConfig decodes viper settings into appCfg, builds the logger and
// fills credentials from the secrets directory.
func loadConfig(cmd *cobra.Command, args []string) error {
	if err := viper.Unmarshal(&appCfg); err != nil {
		return fmt.Errorf("decoding config: %w", err)
	}

	l, err := logger.New(appCfg.Log)
	if err != nil {
		return err
	}
	appLog = l

	dir, _ := cmd.Flags().GetString("secrets-dir")
	s, err := secrets.Load(dir, appLog)
	if err != nil {
		return err
	}
	if len(s) > 0 {
		keys := make([]string, 0, len(s))
		for k := range s {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		appLog.Debug("loaded secrets", zap.Strings("keys", keys))
	}
	secrets.Apply(&appCfg, s)
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
