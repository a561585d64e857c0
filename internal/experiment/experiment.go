// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package experiment runs a boost experiment end to end: it transforms the
// query, fetches the baseline and boosted result lists, reconciles them and
// records the outcome.
package experiment

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pdiddy/search-boost/internal/backend"
	"github.com/pdiddy/search-boost/internal/boost"
	"github.com/pdiddy/search-boost/internal/logger"
	"github.com/pdiddy/search-boost/internal/reconcile"
	"github.com/pdiddy/search-boost/pkg/types"
)

// Recorder stores run summaries. *history.Store implements it.
type Recorder interface {
	Record(ctx context.Context, run types.RunSummary) error
}

// Request is one experiment: a query and the boost settings to try.
type Request struct {
	Query  string
	Config types.BoostConfig
}

// Runner executes experiments against a single backend. History is
// optional. Logger falls back to the logger stored in the context.
type Runner struct {
	Backend backend.Backend
	History Recorder
	Logger  *zap.Logger

	now   func() time.Time
	newID func() string
}

// Run transforms req.Query, searches with both the original and transformed
// query concurrently, and reconciles the boosted list against the baseline.
// Either search failing fails the run. A history write failure is logged and
// does not.
func (r *Runner) Run(ctx context.Context, req Request) (*types.ExperimentRun, error) {
	log := r.Logger
	if log == nil {
		log = logger.FromContext(ctx)
	}
	if r.Backend == nil {
		return nil, fmt.Errorf("no search backend configured")
	}
	if strings.TrimSpace(req.Query) == "" {
		return nil, backend.ErrEmptyQuery
	}

	transformed := boost.TransformQuery(req.Query, req.Config)
	log.Debug("transformed query",
		zap.String("query", req.Query),
		zap.String("transformed", transformed))

	baseline, boosted, err := r.fetch(ctx, req, transformed)
	if err != nil {
		return nil, err
	}

	annotated, stats := Compare(baseline, boosted)
	logMatches(log, annotated)

	run := &types.ExperimentRun{
		ID:               r.id(),
		CreatedAt:        r.clock().UTC(),
		Query:            req.Query,
		TransformedQuery: transformed,
		Backend:          r.Backend.Name(),
		Config:           req.Config,
		Baseline:         baseline,
		Boosted:          annotated,
		Stats:            stats,
	}

	if r.History != nil {
		if err := r.History.Record(ctx, run.Summary()); err != nil {
			log.Warn("recording run failed", zap.String("run_id", run.ID), zap.Error(err))
		}
	}

	log.Info("experiment complete",
		zap.String("run_id", run.ID),
		zap.Int("results", stats.Count),
		zap.Int("moved_up", stats.MovedUp),
		zap.Int("moved_down", stats.MovedDown),
		zap.Float64("rbo", stats.RBO))
	return run, nil
}

// fetch runs the baseline and boosted searches in parallel.
func (r *Runner) fetch(ctx context.Context, req Request, transformed string) (baseline, boosted []types.ResultEntry, err error) {
	type searchResult struct {
		boosted bool
		results []types.ResultEntry
		err     error
	}

	searches := []backend.Request{
		{Query: req.Query, OriginalQuery: req.Query, Factors: req.Config.BoostFactors},
		{Query: transformed, OriginalQuery: req.Query, UseTransformedQuery: true, Factors: req.Config.BoostFactors},
	}

	ch := make(chan searchResult, len(searches))
	var wg sync.WaitGroup
	for _, s := range searches {
		wg.Add(1)
		go func(s backend.Request) {
			defer wg.Done()
			results, err := r.Backend.Search(ctx, s)
			ch <- searchResult{boosted: s.UseTransformedQuery, results: results, err: err}
		}(s)
	}

	go func() {
		wg.Wait()
		close(ch)
	}()

	var errs []string
	for sr := range ch {
		role := "baseline"
		if sr.boosted {
			role = "boosted"
		}
		if sr.err != nil {
			errs = append(errs, fmt.Sprintf("%s search: %v", role, sr.err))
			continue
		}
		if sr.boosted {
			boosted = sr.results
		} else {
			baseline = sr.results
		}
	}
	if len(errs) > 0 {
		return nil, nil, fmt.Errorf("%w: %s", ErrSearchFailed, strings.Join(errs, "; "))
	}
	return baseline, boosted, nil
}

// Compare reconciles boosted against original and summarizes the movement,
// including rank-biased overlap.
func Compare(original, boosted []types.ResultEntry) ([]types.AnnotatedEntry, types.MovementStats) {
	annotated := reconcile.Reconcile(original, boosted)
	stats := reconcile.Summarize(annotated)
	stats.RBO = reconcile.RankBiasedOverlap(original, annotated, reconcile.DefaultPersistence)
	return annotated, stats
}

func logMatches(log *zap.Logger, annotated []types.AnnotatedEntry) {
	if !log.Core().Enabled(zap.DebugLevel) {
		return
	}
	for i, e := range annotated {
		if e.Match == nil {
			continue
		}
		log.Debug("match",
			zap.Int("rank", i+1),
			zap.String("method", string(e.Match.Method)),
			zap.Int("rank_change", e.Match.RankChange),
			zap.String("title", e.Title))
	}
}

func (r *Runner) clock() time.Time {
	if r.now != nil {
		return r.now()
	}
	return time.Now()
}

func (r *Runner) id() string {
	if r.newID != nil {
		return r.newID()
	}
	return uuid.NewString()
}
