// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/pdiddy/search-boost/pkg/types"
)

// DefaultADSBaseURL is the public ADS API root.
const DefaultADSBaseURL = "https://api.adsabs.harvard.edu/v1"

// adsFieldMapping translates result field names to ADS field list names.
var adsFieldMapping = map[string]string{
	"title":          "title",
	"abstract":       "abstract",
	"authors":        "author",
	"author":         "author",
	"year":           "year",
	"citation_count": "citation_count",
	"doctype":        "doctype",
	"doi":            "doi",
	"property":       "property",
}

// ADSBackend queries the ADS search API directly. It executes whatever query
// string it is given; the metadata boost factors have no ADS equivalent and
// are not sent.
type ADSBackend struct {
	Client *http.Client
	Config types.BackendConfig
}

// Name returns the backend identifier.
func (b *ADSBackend) Name() string { return "ads" }

// Search runs req.Query against /search/query sorted by score.
func (b *ADSBackend) Search(ctx context.Context, req Request) ([]types.ResultEntry, error) {
	if strings.TrimSpace(req.Query) == "" {
		return nil, ErrEmptyQuery
	}
	if b.Config.Token == "" {
		return nil, ErrMissingToken
	}

	base := b.Config.BaseURL
	if base == "" {
		base = DefaultADSBaseURL
	}
	params := url.Values{
		"q":    {req.Query},
		"fl":   {strings.Join(adsFields(b.Config.Fields), ",")},
		"rows": {strconv.Itoa(b.Config.Rows)},
		"sort": {"score desc"},
	}
	reqURL := strings.TrimRight(base, "/") + "/search/query?" + params.Encode()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+b.Config.Token)
	httpReq.Header.Set("User-Agent", b.Config.UserAgent)

	resp, err := b.Client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("ADS API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: ADS API returned HTTP %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	var ar adsResponse
	if err := json.NewDecoder(resp.Body).Decode(&ar); err != nil {
		return nil, fmt.Errorf("parsing ADS response: %w", err)
	}

	results := make([]types.ResultEntry, 0, len(ar.Response.Docs))
	for _, doc := range ar.Response.Docs {
		results = append(results, entryFromDoc(doc, "bibcode", "doi"))
	}
	return results, nil
}

// adsFields returns the ADS field list for the requested fields. bibcode and
// score are always included.
func adsFields(fields []string) []string {
	out := []string{"bibcode", "score"}
	seen := map[string]bool{"bibcode": true, "score": true}
	for _, f := range fields {
		af, ok := adsFieldMapping[f]
		if !ok || seen[af] {
			continue
		}
		seen[af] = true
		out = append(out, af)
	}
	return out
}

type adsResponse struct {
	Response struct {
		NumFound int              `json:"numFound"`
		Docs     []map[string]any `json:"docs"`
	} `json:"response"`
}
