// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package backend fetches ranked result lists from an external search
// service. Each backend (ADS API, compare service, saved files) implements
// Backend per the Strategy pattern.
package backend

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/pdiddy/search-boost/pkg/types"
)

const (
	defaultRows      = 20
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "search-boost/0.1"
	defaultSource    = "ads"
)

// DefaultFields are the document fields requested when none are configured.
var DefaultFields = []string{"title", "abstract", "authors", "year", "citation_count", "doctype"}

var (
	// ErrEmptyQuery is returned when a request carries no query text.
	ErrEmptyQuery = errors.New("empty query")

	// ErrUnexpectedStatus wraps any non-success HTTP response.
	ErrUnexpectedStatus = errors.New("unexpected HTTP status")

	// ErrMissingToken is returned by the ADS backend when no API token is set.
	ErrMissingToken = errors.New("ADS API token not configured")
)

// Request is one search issued to a backend.
type Request struct {
	// Query is the text the backend executes: the boosted query, or the
	// original query for the baseline.
	Query string

	// OriginalQuery is the untransformed query, sent for reference.
	OriginalQuery string

	// UseTransformedQuery is false for the baseline request.
	UseTransformedQuery bool

	// Factors are forwarded to backends that understand them.
	Factors types.BoostFactors
}

// Backend searches a single service and returns results in rank order.
type Backend interface {
	Name() string
	Search(ctx context.Context, req Request) ([]types.ResultEntry, error)
}

// New builds the backend selected by cfg.Kind.
func New(cfg types.BackendConfig) (Backend, error) {
	cfg = withDefaults(cfg)
	client := &http.Client{Timeout: cfg.Timeout}

	switch cfg.Kind {
	case types.BackendADS, "":
		return &ADSBackend{Client: client, Config: cfg}, nil
	case types.BackendCompare:
		if cfg.BaseURL == "" {
			return nil, fmt.Errorf("compare backend requires a base URL")
		}
		return &CompareBackend{Client: client, Config: cfg}, nil
	case types.BackendFile:
		return &FileBackend{BaselinePath: cfg.BaselinePath, BoostedPath: cfg.BoostedPath}, nil
	default:
		return nil, fmt.Errorf("unknown backend %q: use ads, compare, or file", cfg.Kind)
	}
}

func withDefaults(cfg types.BackendConfig) types.BackendConfig {
	if cfg.Rows <= 0 {
		cfg.Rows = defaultRows
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	if cfg.Source == "" {
		cfg.Source = defaultSource
	}
	if len(cfg.Fields) == 0 {
		cfg.Fields = DefaultFields
	}
	return cfg
}

// entryFromDoc maps a decoded JSON document onto a ResultEntry. The first
// non-empty key in idKeys becomes the identifier; unknown keys are kept in
// Metadata.
func entryFromDoc(doc map[string]any, idKeys ...string) types.ResultEntry {
	var (
		e     types.ResultEntry
		idKey string
	)
	for _, k := range idKeys {
		if s := firstString(doc[k]); s != "" {
			e.Identifier, idKey = s, k
			break
		}
	}

	for k, v := range doc {
		switch k {
		case "title":
			e.Title = firstString(v)
		case "author", "authors":
			e.Authors = stringList(v)
		case "year":
			e.Year = toInt(v)
		case "citation_count":
			e.CitationCount = toInt(v)
		case "doctype":
			e.Doctype = firstString(v)
		case "score", "_score":
			e.Score = toFloat(v)
		default:
			if k == idKey {
				continue
			}
			if e.Metadata == nil {
				e.Metadata = make(map[string]any)
			}
			e.Metadata[k] = v
		}
	}
	return e
}

// firstString returns v if it is a string, or its first element if it is a
// list of strings. ADS returns title and doi as single-element lists.
func firstString(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case []any:
		if len(t) > 0 {
			if s, ok := t[0].(string); ok {
				return strings.TrimSpace(s)
			}
		}
	}
	return ""
}

func stringList(v any) []string {
	switch t := v.(type) {
	case string:
		return []string{t}
	case []any:
		out := make([]string, 0, len(t))
		for _, x := range t {
			if s, ok := x.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

func toInt(v any) int {
	switch t := v.(type) {
	case float64:
		return int(t)
	case string:
		n, _ := strconv.Atoi(strings.TrimSpace(t))
		return n
	}
	return 0
}

func toFloat(v any) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case string:
		f, _ := strconv.ParseFloat(strings.TrimSpace(t), 64)
		return f
	}
	return 0
}
