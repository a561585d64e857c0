// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package boost

import "strings"

// Tokenize splits a clean query into unquoted terms and quoted phrases, each
// in source order.
//
// A token starting with `"` opens a phrase and restarts accumulation. A token
// ending with `"` closes the phrase and flushes it, even if no phrase was
// open. A phrase that is never closed is dropped along with every token
// accumulated after its opening quote.
func Tokenize(clean string) (terms, phrases []string) {
	var (
		current  []string
		inPhrase bool
	)
	for _, word := range strings.Fields(clean) {
		switch {
		case strings.HasPrefix(word, `"`):
			inPhrase = true
			current = []string{word[1:]}
		case strings.HasSuffix(word, `"`):
			inPhrase = false
			current = append(current, word[:len(word)-1])
			phrases = append(phrases, strings.Join(current, " "))
			current = nil
		case inPhrase:
			current = append(current, word)
		default:
			terms = append(terms, word)
		}
	}
	return terms, phrases
}
