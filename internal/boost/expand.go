// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package boost

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/pdiddy/search-boost/pkg/types"
)

// clauseSeparator joins clauses into the final backend query.
const clauseSeparator = " OR "

// Clause is one field-qualified, weighted sub-expression of the boosted query.
type Clause struct {
	Field  string
	Text   string
	Weight float64
	// Quoted marks phrase clauses, which serialize with double quotes.
	Quoted bool
}

// String renders the clause as field:text^w or field:"text"^w.
func (c Clause) String() string {
	var b strings.Builder
	b.WriteString(c.Field)
	b.WriteByte(':')
	if c.Quoted {
		b.WriteByte('"')
		b.WriteString(c.Text)
		b.WriteByte('"')
	} else {
		b.WriteString(c.Text)
	}
	b.WriteByte('^')
	b.WriteString(FormatWeight(c.Weight))
	return b.String()
}

// FormatWeight formats a boost weight with one decimal place. Exact ties
// round half up, so 1.25 renders as "1.3". An infinite weight renders as
// "Infinity".
func FormatWeight(w float64) string {
	if math.IsInf(w, 0) {
		if w < 0 {
			return "-Infinity"
		}
		return "Infinity"
	}
	// A tie at one decimal is exactly representable only when 4*w is odd.
	if q := w * 4; q == math.Trunc(q) && math.Mod(q, 2) != 0 {
		w = math.Copysign(math.Ceil(math.Abs(w)*10)/10, w)
	}
	return strconv.FormatFloat(w, 'f', 1, 64)
}

// ActiveFields returns the fields with a positive weight, ordered by weight
// descending. NaN is never positive. Equal weights keep their configured order.
func ActiveFields(weights types.FieldWeights) types.FieldWeights {
	active := make(types.FieldWeights, 0, len(weights))
	for _, fw := range weights {
		if fw.Weight > 0 {
			active = append(active, fw)
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		return active[i].Weight > active[j].Weight
	})
	return active
}

// Expand emits the weighted clauses for every active field, highest weight
// first, and joins them with " OR ". It returns "" when no field is active.
func Expand(terms, phrases []string, weights types.FieldWeights) string {
	var parts []string
	for _, fw := range ActiveFields(weights) {
		for _, c := range FieldClauses(fw.Field, fw.Weight, terms, phrases) {
			parts = append(parts, c.String())
		}
	}
	return strings.Join(parts, clauseSeparator)
}

// FieldClauses returns the clauses for a single field in emission order:
// single terms, phrases, term combinations of size 2..n, then every
// phrase/term pairing in both orders.
//
// The combination step enumerates all 2^n - n - 1 ordered subsets of the
// terms, so the output grows exponentially with the number of unquoted terms.
// A 10-term query already produces over a thousand clauses per field.
func FieldClauses(field string, w float64, terms, phrases []string) []Clause {
	var clauses []Clause
	term := func(text string) Clause { return Clause{Field: field, Text: text, Weight: w} }
	phrase := func(text string) Clause { return Clause{Field: field, Text: text, Weight: w, Quoted: true} }

	for _, t := range terms {
		clauses = append(clauses, term(t))
	}
	for _, p := range phrases {
		clauses = append(clauses, phrase(p))
	}
	if len(terms) >= 2 {
		for size := 2; size <= len(terms); size++ {
			for _, combo := range Combinations(terms, size) {
				clauses = append(clauses, phrase(strings.Join(combo, " ")))
			}
		}
	}
	if len(terms) > 0 && len(phrases) > 0 {
		for _, p := range phrases {
			for _, t := range terms {
				clauses = append(clauses, phrase(p+" "+t), phrase(t+" "+p))
			}
		}
	}
	return clauses
}

// Combinations returns every size-k subset of items with elements kept in
// their original relative order, listed in ascending index order.
func Combinations(items []string, k int) [][]string {
	if k <= 0 || k > len(items) {
		return nil
	}
	var (
		out     [][]string
		current = make([]string, 0, k)
	)
	var combine func(start int)
	combine = func(start int) {
		if len(current) == k {
			out = append(out, append([]string(nil), current...))
			return
		}
		for i := start; i < len(items); i++ {
			current = append(current, items[i])
			combine(i + 1)
			current = current[:len(current)-1]
		}
	}
	combine(0)
	return out
}
