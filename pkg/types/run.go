// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// ExperimentRun is one complete boost experiment: the query before and after
// transformation, both result lists, and the movement between them. The boost
// configuration is reported but never written to run files.
type ExperimentRun struct {
	ID               string           `json:"id" yaml:"id"`
	CreatedAt        time.Time        `json:"created_at" yaml:"created_at"`
	Query            string           `json:"query" yaml:"query"`
	TransformedQuery string           `json:"transformed_query" yaml:"transformed_query"`
	Backend          string           `json:"backend" yaml:"backend"`
	Config           BoostConfig      `json:"boost_config" yaml:"-"`
	Baseline         []ResultEntry    `json:"baseline" yaml:"baseline"`
	Boosted          []AnnotatedEntry `json:"boosted" yaml:"boosted"`
	Stats            MovementStats    `json:"stats" yaml:"stats"`
}

// Summary returns the history record for the run.
func (r *ExperimentRun) Summary() RunSummary {
	return RunSummary{
		ID:               r.ID,
		CreatedAt:        r.CreatedAt,
		Query:            r.Query,
		TransformedQuery: r.TransformedQuery,
		Backend:          r.Backend,
		Stats:            r.Stats,
	}
}

// RunSummary is the persisted form of an experiment run. Result lists and the
// boost configuration are not kept.
type RunSummary struct {
	ID               string        `json:"id" yaml:"id"`
	CreatedAt        time.Time     `json:"created_at" yaml:"created_at"`
	Query            string        `json:"query" yaml:"query"`
	TransformedQuery string        `json:"transformed_query" yaml:"transformed_query"`
	Backend          string        `json:"backend" yaml:"backend"`
	Stats            MovementStats `json:"stats" yaml:"stats"`
}
