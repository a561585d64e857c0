// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package experiment

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/pdiddy/search-boost/internal/backend"
	"github.com/pdiddy/search-boost/internal/boost"
	"github.com/pdiddy/search-boost/pkg/types"
)

type fakeBackend struct {
	mu       sync.Mutex
	requests []backend.Request
	baseline []types.ResultEntry
	boosted  []types.ResultEntry
	err      error
}

func (f *fakeBackend) Name() string { return "fake" }

func (f *fakeBackend) Search(_ context.Context, req backend.Request) ([]types.ResultEntry, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()
	if f.err != nil && req.UseTransformedQuery {
		return nil, f.err
	}
	if req.UseTransformedQuery {
		return f.boosted, nil
	}
	return f.baseline, nil
}

type fakeRecorder struct {
	runs []types.RunSummary
	err  error
}

func (f *fakeRecorder) Record(_ context.Context, run types.RunSummary) error {
	f.runs = append(f.runs, run)
	return f.err
}

func entries(titles ...string) []types.ResultEntry {
	out := make([]types.ResultEntry, len(titles))
	for i, t := range titles {
		out[i] = types.ResultEntry{Title: t}
	}
	return out
}

func boostConfig() types.BoostConfig {
	var fw types.FieldWeights
	fw.Set("title", 2)
	fw.Set("abstract", 1)
	return types.BoostConfig{
		Enabled:      true,
		FieldWeights: fw,
		BoostFactors: types.BoostFactors{CitationWeight: 0.5, ReferenceYear: 2025},
	}
}

func TestRunReconcilesAndRecords(t *testing.T) {
	fb := &fakeBackend{
		baseline: entries("Alpha", "Beta", "Gamma"),
		boosted:  entries("Gamma", "Alpha", "Delta"),
	}
	rec := &fakeRecorder{}
	fixed := time.Date(2026, 5, 1, 9, 30, 0, 0, time.UTC)
	r := &Runner{
		Backend: fb,
		History: rec,
		now:     func() time.Time { return fixed },
		newID:   func() string { return "run-fixed" },
	}

	cfg := boostConfig()
	run, err := r.Run(context.Background(), Request{Query: "dark matter", Config: cfg})
	require.NoError(t, err)

	assert.Equal(t, "run-fixed", run.ID)
	assert.Equal(t, fixed, run.CreatedAt)
	assert.Equal(t, "fake", run.Backend)
	assert.Equal(t, boost.TransformQuery("dark matter", cfg), run.TransformedQuery)
	assert.Len(t, run.Baseline, 3)
	require.Len(t, run.Boosted, 3)

	assert.Equal(t, 2, run.Boosted[0].Match.RankChange)
	assert.Equal(t, -1, run.Boosted[1].Match.RankChange)
	assert.False(t, run.Boosted[2].Match.Matched())

	assert.Equal(t, 3, run.Stats.Count)
	assert.Equal(t, 1, run.Stats.MovedUp)
	assert.Equal(t, 1, run.Stats.MovedDown)
	assert.Equal(t, 1, run.Stats.Unmatched)
	assert.Greater(t, run.Stats.RBO, 0.0)
	assert.Less(t, run.Stats.RBO, 1.0)

	require.Len(t, rec.runs, 1)
	assert.Equal(t, run.Summary(), rec.runs[0])

	require.Len(t, fb.requests, 2)
	for _, req := range fb.requests {
		assert.Equal(t, "dark matter", req.OriginalQuery)
		assert.Equal(t, cfg.BoostFactors, req.Factors)
		if req.UseTransformedQuery {
			assert.Equal(t, run.TransformedQuery, req.Query)
		} else {
			assert.Equal(t, "dark matter", req.Query)
		}
	}
}

func TestRunSearchFailure(t *testing.T) {
	fb := &fakeBackend{baseline: entries("A"), err: errors.New("boom")}
	rec := &fakeRecorder{}
	r := &Runner{Backend: fb, History: rec}

	_, err := r.Run(context.Background(), Request{Query: "q", Config: boostConfig()})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSearchFailed)
	assert.Contains(t, err.Error(), "boosted search: boom")
	assert.Empty(t, rec.runs)
}

func TestRunEmptyQuery(t *testing.T) {
	r := &Runner{Backend: &fakeBackend{}}
	_, err := r.Run(context.Background(), Request{Query: "  "})
	assert.ErrorIs(t, err, backend.ErrEmptyQuery)
}

func TestRunHistoryFailureIsLogged(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	r := &Runner{
		Backend: &fakeBackend{baseline: entries("A"), boosted: entries("A")},
		History: &fakeRecorder{err: errors.New("disk full")},
		Logger:  zap.New(core),
	}
	run, err := r.Run(context.Background(), Request{Query: "q"})
	require.NoError(t, err)
	assert.Equal(t, 1.0, run.Stats.RBO)
	assert.Equal(t, 1, logs.FilterMessage("recording run failed").Len())
}

func TestRunLogsMatchesAtDebug(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	r := &Runner{
		Backend: &fakeBackend{baseline: entries("A", "B"), boosted: entries("B", "A")},
		Logger:  zap.New(core),
	}
	_, err := r.Run(context.Background(), Request{Query: "q"})
	require.NoError(t, err)

	matches := logs.FilterMessage("match").All()
	require.Len(t, matches, 2)
	assert.Equal(t, "title", matches[0].ContextMap()["method"])
}

func TestCompareEmptyBaselinePassesThrough(t *testing.T) {
	annotated, stats := Compare(nil, entries("A", "B"))
	require.Len(t, annotated, 2)
	assert.Nil(t, annotated[0].Match)
	assert.Equal(t, 2, stats.Unmatched)
	assert.Equal(t, 0.0, stats.RBO)
}

func TestFormatTable(t *testing.T) {
	annotated, stats := Compare(entries("Alpha", "Beta"), entries("Beta", "Alpha", "New"))
	var buf bytes.Buffer
	FormatTable(annotated, stats, &buf)
	out := buf.String()

	assert.Contains(t, out, "Rank")
	assert.Contains(t, out, "+1")
	assert.Contains(t, out, "-1")
	assert.Contains(t, out, "none")
	assert.Contains(t, out, "3 results: 1 up, 1 down, 0 unchanged, 1 not in baseline")
}

func TestFormatTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	FormatTable(nil, types.MovementStats{}, &buf)
	assert.Equal(t, "No results found.\n", buf.String())
}

func TestRunFileRoundTrip(t *testing.T) {
	r := &Runner{
		Backend: &fakeBackend{baseline: entries("A", "B"), boosted: entries("B", "A")},
		now:     func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) },
		newID:   func() string { return "file-run" },
	}
	run, err := r.Run(context.Background(), Request{Query: "q", Config: boostConfig()})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, WriteFile(path, run))

	got, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, run.ID, got.ID)
	assert.Equal(t, run.TransformedQuery, got.TransformedQuery)
	assert.Equal(t, run.Stats, got.Stats)
	assert.Equal(t, run.Boosted, got.Boosted)
	assert.Equal(t, types.BoostConfig{}, got.Config)
}
