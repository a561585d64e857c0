// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package boost turns a free-text query and a field weight configuration
// into a field-qualified, weighted boolean query for the search backend.
//
// The pipeline is Sanitize → Tokenize → Expand. Every function is pure and
// safe for concurrent use.
package boost

import (
	"github.com/pdiddy/search-boost/pkg/types"
)

// TransformQuery rewrites query according to cfg. When boosting is disabled
// or no field has a positive weight, the sanitized query is returned as is.
// An empty query always yields an empty string.
func TransformQuery(query string, cfg types.BoostConfig) string {
	clean := Sanitize(query, query)
	if clean == "" {
		return ""
	}
	if !cfg.Enabled {
		return clean
	}
	if len(ActiveFields(cfg.FieldWeights)) == 0 {
		return clean
	}
	terms, phrases := Tokenize(clean)
	return Expand(terms, phrases, cfg.FieldWeights)
}
