// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package boost

import (
	"regexp"
	"strings"
)

// Patterns that recover the base term from a query that was already boosted,
// tried in order. The first capture is greedy: it runs to the first quote
// when one exists, otherwise to the last caret.
var basePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^[^:]*:([^"]*)["^]`), // title:term^2.0 ...
	regexp.MustCompile(`^[^:]*:"([^"]*)"`),   // title:"term"
	regexp.MustCompile(`^([^:]+)$`),          // term^2.0
}

// Sanitize strips field-boost syntax a previous transform left in raw and
// returns the free-text query. If nothing can be recovered it falls back to
// fallback, the caller's last known unboosted query. Both results are trimmed.
func Sanitize(raw, fallback string) string {
	clean := strings.TrimSpace(raw)
	if !strings.ContainsAny(clean, ":^") {
		return clean
	}

	for _, re := range basePatterns {
		m := re.FindStringSubmatch(clean)
		if m == nil {
			continue
		}
		if term := strings.TrimSpace(m[1]); term != "" {
			return term
		}
		break
	}
	return strings.TrimSpace(fallback)
}
