// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/search-boost/internal/api"
	"github.com/pdiddy/search-boost/internal/boost"
	"github.com/pdiddy/search-boost/internal/experiment"
)

var transformCmd = &cobra.Command{
	Use:   "transform [query]",
	Short: "Rewrite a query into a field-boosted query",
	Long: `Transform strips any boost syntax left in the query, splits it into terms and
quoted phrases, and expands them into weighted clauses for every field with a
positive weight, highest weight first. No backend is contacted.

  search-boost transform --field title=2 --field abstract=1 'dark "matter halo"'`,
	Args: cobra.MinimumNArgs(1),
	RunE: runTransform,
}

func init() {
	addBoostFlags(transformCmd)
	transformCmd.Flags().Bool("json", false, "output as JSON")

	rootCmd.AddCommand(transformCmd)
}

func runTransform(cmd *cobra.Command, args []string) error {
	cfg, err := boostConfigFromFlags(cmd)
	if err != nil {
		return err
	}

	query := strings.Join(args, " ")
	transformed := boost.TransformQuery(query, cfg)

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return experiment.FormatJSON(api.TransformResponse{
			Query:            query,
			TransformedQuery: transformed,
		}, os.Stdout)
	}
	fmt.Println(transformed)
	return nil
}
