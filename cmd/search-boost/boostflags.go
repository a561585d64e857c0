// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"

	"github.com/pdiddy/search-boost/internal/boost"
	"github.com/pdiddy/search-boost/pkg/types"
)

// addBoostFlags registers the flags that describe a boost configuration.
func addBoostFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("boost", "", "boost config file (YAML or JSON)")
	f.StringArray("field", nil, "field weight as name=weight; repeat in priority order")
	f.Bool("disable", false, "turn field boosting off (query is only sanitized)")
	f.Float64("citation-boost", 0, "citation count boost forwarded to the backend")
	f.Float64("recency-boost", 0, "recency boost forwarded to the backend")
	f.Int("reference-year", 0, "reference year for the recency boost")
}

// boostConfigFromFlags builds the boost configuration: the --boost file
// first, then --field weights in the order given, then scalar overrides.
// Passing --field without a file enables boosting.
func boostConfigFromFlags(cmd *cobra.Command) (types.BoostConfig, error) {
	var cfg types.BoostConfig
	f := cmd.Flags()

	if path, _ := f.GetString("boost"); path != "" {
		loaded, err := boost.LoadConfig(path)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	fields, _ := f.GetStringArray("field")
	for _, fw := range fields {
		name, w, err := boost.ParseFieldWeight(fw)
		if err != nil {
			return cfg, err
		}
		cfg.FieldWeights.Set(name, w)
	}
	if len(fields) > 0 && !f.Changed("boost") {
		cfg.Enabled = true
	}

	if f.Changed("citation-boost") {
		cfg.CitationWeight, _ = f.GetFloat64("citation-boost")
	}
	if f.Changed("recency-boost") {
		cfg.RecencyWeight, _ = f.GetFloat64("recency-boost")
	}
	if f.Changed("reference-year") {
		cfg.ReferenceYear, _ = f.GetInt("reference-year")
	}
	if disable, _ := f.GetBool("disable"); disable {
		cfg.Enabled = false
	}
	return cfg, nil
}
