// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package boost

import (
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/pdiddy/search-boost/pkg/types"
)

func weights(pairs ...any) types.FieldWeights {
	var fw types.FieldWeights
	for i := 0; i+1 < len(pairs); i += 2 {
		fw.Set(pairs[i].(string), pairs[i+1].(float64))
	}
	return fw
}

func enabled(fw types.FieldWeights) types.BoostConfig {
	return types.BoostConfig{Enabled: true, FieldWeights: fw}
}

// --- Sanitize ---

func TestSanitize(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		fallback string
		want     string
	}{
		{"plain query", "dark matter", "", "dark matter"},
		{"plain query is trimmed", "  dark matter  ", "", "dark matter"},
		{"single boosted term", "title:galaxy^2.0", "", "galaxy"},
		{"boosted query keeps text up to the last caret", "title:galaxy^2.0 OR abstract:galaxy^1.0", "", "galaxy^2.0 OR abstract:galaxy"},
		{"quote ends the capture before any caret", `title:a^1.0 OR title:"a b"^1.0`, "", "a^1.0 OR title:"},
		{"quoted clause falls back", `title:"dark matter"^1.0`, " dark matter ", "dark matter"},
		{"caret without colon", "galaxy^2.0", "", "galaxy^2.0"},
		{"nothing recoverable", "title:", " quasar ", "quasar"},
		{"nothing recoverable and no fallback", ":", "", ""},
		{"empty", "", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sanitize(tt.raw, tt.fallback); got != tt.want {
				t.Errorf("Sanitize(%q, %q) = %q, want %q", tt.raw, tt.fallback, got, tt.want)
			}
		})
	}
}

// --- Tokenize ---

func TestTokenize(t *testing.T) {
	tests := []struct {
		name        string
		query       string
		wantTerms   []string
		wantPhrases []string
	}{
		{"terms only", "machine learning", []string{"machine", "learning"}, nil},
		{"collapses whitespace", "  machine \t  learning ", []string{"machine", "learning"}, nil},
		{"phrase between terms", `a "b c" d`, []string{"a", "d"}, []string{"b c"}},
		{"two phrases", `"a b" "c d"`, nil, []string{"a b", "c d"}},
		{"closing quote without opening", `foo bar"`, []string{"foo"}, []string{"bar"}},
		// Unterminated phrases are dropped with everything after the quote.
		{"unterminated phrase", `a "b c`, []string{"a"}, nil},
		{"single quoted token never closes", `"solo" x`, nil, nil},
		{"empty", "", nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			terms, phrases := Tokenize(tt.query)
			if !reflect.DeepEqual(terms, tt.wantTerms) {
				t.Errorf("terms = %q, want %q", terms, tt.wantTerms)
			}
			if !reflect.DeepEqual(phrases, tt.wantPhrases) {
				t.Errorf("phrases = %q, want %q", phrases, tt.wantPhrases)
			}
		})
	}
}

// --- Expansion ---

func TestCombinations(t *testing.T) {
	got := Combinations([]string{"a", "b", "c"}, 2)
	want := [][]string{{"a", "b"}, {"a", "c"}, {"b", "c"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Combinations = %q, want %q", got, want)
	}

	if got := Combinations([]string{"a"}, 2); got != nil {
		t.Errorf("Combinations with k > n = %q, want nil", got)
	}
}

func TestFieldClausesCount(t *testing.T) {
	terms := []string{"a", "b", "c", "d"}
	clauses := FieldClauses("title", 1, terms, nil)
	// 4 single terms + 2^4 - 4 - 1 combinations.
	if len(clauses) != 4+11 {
		t.Errorf("len(clauses) = %d, want 15", len(clauses))
	}
	last := clauses[len(clauses)-1].String()
	if last != `title:"a b c d"^1.0` {
		t.Errorf("last clause = %q, want the full combination", last)
	}
}

func TestFieldClausesDeterministic(t *testing.T) {
	terms := []string{"x", "y", "z"}
	phrases := []string{"p q"}
	a := FieldClauses("abstract", 0.7, terms, phrases)
	b := FieldClauses("abstract", 0.7, terms, phrases)
	if !reflect.DeepEqual(a, b) {
		t.Error("FieldClauses returned different output for identical input")
	}
}

func TestFormatWeight(t *testing.T) {
	tests := []struct {
		w    float64
		want string
	}{
		{1, "1.0"},
		{0.5, "0.5"},
		{1.26, "1.3"},
		{10, "10.0"},
		{0.25, "0.3"},
		{1.25, "1.3"},
		{0.75, "0.8"},
		{0.15, "0.1"},
		{math.Inf(1), "Infinity"},
	}
	for _, tt := range tests {
		if got := FormatWeight(tt.w); got != tt.want {
			t.Errorf("FormatWeight(%v) = %q, want %q", tt.w, got, tt.want)
		}
	}
}

func TestActiveFieldsOrder(t *testing.T) {
	fw := weights("abstract", 1.0, "year", 0.0, "title", 2.0, "author", 1.0, "keyword", -1.0)
	got := ActiveFields(fw)
	var names []string
	for _, f := range got {
		names = append(names, f.Field)
	}
	want := []string{"title", "abstract", "author"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("ActiveFields order = %v, want %v", names, want)
	}
}

func TestActiveFieldsNonFinite(t *testing.T) {
	fw := weights("abstract", 1.0, "title", math.Inf(1), "author", math.NaN())
	got := ActiveFields(fw)
	var names []string
	for _, f := range got {
		names = append(names, f.Field)
	}
	want := []string{"title", "abstract"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("ActiveFields = %v, want %v", names, want)
	}
}

// --- TransformQuery ---

func TestTransformQuery(t *testing.T) {
	tests := []struct {
		name  string
		query string
		cfg   types.BoostConfig
		want  string
	}{
		{
			name:  "empty query",
			query: "",
			cfg:   enabled(weights("title", 1.0)),
			want:  "",
		},
		{
			name:  "terms and their combination",
			query: "machine learning",
			cfg:   enabled(weights("title", 1.0)),
			want:  `title:machine^1.0 OR title:learning^1.0 OR title:"machine learning"^1.0`,
		},
		{
			name:  "phrase mixed with term",
			query: `"deep learning" networks`,
			cfg:   enabled(weights("title", 0.5)),
			want: `title:networks^0.5 OR title:"deep learning"^0.5 OR ` +
				`title:"deep learning networks"^0.5 OR title:"networks deep learning"^0.5`,
		},
		{
			name:  "phrase only",
			query: `"dark matter"`,
			cfg:   enabled(weights("abstract", 2.0)),
			want:  `abstract:"dark matter"^2.0`,
		},
		{
			name:  "highest weight first, ties keep configured order",
			query: "quasar",
			cfg:   enabled(weights("abstract", 1.0, "title", 2.0, "author", 1.0)),
			want:  "title:quasar^2.0 OR abstract:quasar^1.0 OR author:quasar^1.0",
		},
		{
			name:  "no positive weights returns sanitized query",
			query: "  dark matter ",
			cfg:   enabled(weights("title", 0.0, "abstract", -1.0)),
			want:  "dark matter",
		},
		{
			name:  "disabled returns sanitized query",
			query: "title:galaxy^2.0",
			cfg:   types.BoostConfig{Enabled: false, FieldWeights: weights("title", 1.0)},
			want:  "galaxy",
		},
		{
			name:  "tied weights round half up",
			query: "galaxy",
			cfg:   enabled(weights("title", 1.25, "abstract", 0.25)),
			want:  "title:galaxy^1.3 OR abstract:galaxy^0.3",
		},
		{
			name:  "infinite weight",
			query: "galaxy",
			cfg:   enabled(weights("abstract", 1.0, "title", math.Inf(1))),
			want:  "title:galaxy^Infinity OR abstract:galaxy^1.0",
		},
		{
			name:  "unterminated phrase expands to nothing",
			query: `"dark matter`,
			cfg:   enabled(weights("title", 1.0)),
			want:  "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TransformQuery(tt.query, tt.cfg); got != tt.want {
				t.Errorf("TransformQuery(%q)\n got  %q\n want %q", tt.query, got, tt.want)
			}
		})
	}
}

func TestTransformQueryDisabledEqualsSanitize(t *testing.T) {
	for _, q := range []string{"", "galaxy", "title:galaxy^1.0", `abstract:"x y"^2.0`, "a^b"} {
		off := types.BoostConfig{Enabled: false, FieldWeights: weights("title", 3.0)}
		zero := enabled(weights("title", 0.0))
		if got, want := TransformQuery(q, off), Sanitize(q, q); got != want {
			t.Errorf("disabled TransformQuery(%q) = %q, want %q", q, got, want)
		}
		if got, want := TransformQuery(q, zero), Sanitize(q, q); got != want {
			t.Errorf("zero-weight TransformQuery(%q) = %q, want %q", q, got, want)
		}
	}
}

func TestTransformQueryDoesNotNest(t *testing.T) {
	cfg := enabled(weights("title", 1.0))
	once := TransformQuery("galaxy", cfg)
	twice := TransformQuery(once, cfg)
	if once != twice {
		t.Errorf("re-transform = %q, want %q", twice, once)
	}
	if strings.Count(twice, ":") != 1 {
		t.Errorf("re-transform nested boosts: %q", twice)
	}
}

func TestTransformQueryMultiClauseResanitize(t *testing.T) {
	cfg := enabled(weights("title", 1.0))
	once := TransformQuery("machine learning", cfg)
	if want := `title:machine^1.0 OR title:learning^1.0 OR title:"machine learning"^1.0`; once != want {
		t.Fatalf("TransformQuery = %q, want %q", once, want)
	}

	base := Sanitize(once, "")
	if want := "machine^1.0 OR title:learning^1.0 OR title:"; base != want {
		t.Fatalf("Sanitize(%q) = %q, want %q", once, base, want)
	}

	twice := TransformQuery(once, cfg)
	if !strings.HasPrefix(twice, "title:machine^1.0^1.0 OR ") {
		t.Errorf("re-transform = %q, want recovered tokens expanded again", twice)
	}
	if !strings.Contains(twice, "title:learning^1.0^1.0") {
		t.Errorf("re-transform dropped the second term: %q", twice)
	}
}
