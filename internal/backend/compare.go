// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/pdiddy/search-boost/pkg/types"
)

// CompareBackend posts to a search-comparisons service, which runs the query
// against its configured engines and applies the metadata boosts server side.
type CompareBackend struct {
	Client *http.Client
	Config types.BackendConfig
}

// Name returns the backend identifier.
func (b *CompareBackend) Name() string { return "compare" }

// compareRequest is the body of POST /api/search/compare.
type compareRequest struct {
	Query               string        `json:"query"`
	OriginalQuery       string        `json:"originalQuery"`
	Sources             []string      `json:"sources"`
	Metrics             []string      `json:"metrics"`
	Fields              []string      `json:"fields"`
	MaxResults          int           `json:"max_results"`
	UseTransformedQuery bool          `json:"useTransformedQuery"`
	BoostConfig         *compareBoost `json:"boost_config,omitempty"`
}

type compareBoost struct {
	Name string `json:"name"`
	types.BoostFactors
}

type compareResponse struct {
	Results map[string][]map[string]any `json:"results"`
}

type compareError struct {
	Detail string `json:"detail"`
}

var compareMetrics = []string{"ndcg@10", "precision@10", "recall@10"}

// Search sends req to the compare service and returns the configured
// source's result list.
func (b *CompareBackend) Search(ctx context.Context, req Request) ([]types.ResultEntry, error) {
	if strings.TrimSpace(req.Query) == "" {
		return nil, ErrEmptyQuery
	}

	body := compareRequest{
		Query:               req.Query,
		OriginalQuery:       req.OriginalQuery,
		Sources:             []string{b.Config.Source},
		Metrics:             compareMetrics,
		Fields:              b.Config.Fields,
		MaxResults:          b.Config.Rows,
		UseTransformedQuery: req.UseTransformedQuery,
	}
	if req.UseTransformedQuery {
		body.BoostConfig = &compareBoost{Name: "Boosted Results", BoostFactors: req.Factors}
	}

	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encoding compare request: %w", err)
	}

	reqURL := strings.TrimRight(b.Config.BaseURL, "/") + "/api/search/compare"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("User-Agent", b.Config.UserAgent)

	resp, err := b.Client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("compare service request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var ce compareError
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		if json.Unmarshal(raw, &ce) == nil && ce.Detail != "" {
			return nil, fmt.Errorf("%w: compare service returned HTTP %d: %s", ErrUnexpectedStatus, resp.StatusCode, ce.Detail)
		}
		return nil, fmt.Errorf("%w: compare service returned HTTP %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	var cr compareResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return nil, fmt.Errorf("parsing compare response: %w", err)
	}

	docs := cr.Results[b.Config.Source]
	results := make([]types.ResultEntry, 0, len(docs))
	for _, doc := range docs {
		results = append(results, entryFromDoc(doc, "bibcode", "doi", "url"))
	}
	return results, nil
}
