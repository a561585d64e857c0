// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package reconcile

import (
	"strings"
	"unicode"
)

// NormalizeTitle returns a lowercased, punctuation-stripped version of the
// title with whitespace runs collapsed to single spaces.
func NormalizeTitle(title string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// TitleSimilarity is the Jaccard similarity of the normalized word sets of
// two titles. It is 0 when either title is empty.
func TitleSimilarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	return Jaccard(wordSet(NormalizeTitle(a)), wordSet(NormalizeTitle(b)))
}

// Jaccard returns |a ∩ b| / |a ∪ b|. Two empty sets are identical.
func Jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1
	}
	inter := 0
	for w := range a {
		if _, ok := b[w]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	return float64(inter) / float64(union)
}

// wordSet splits a normalized title on single spaces. A title that normalizes
// to "" yields the one-element set {""}.
func wordSet(normalized string) map[string]struct{} {
	words := strings.Split(normalized, " ")
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
