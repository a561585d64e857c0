// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v3"
)

// FieldWeight is one entry of a field boost configuration.
type FieldWeight struct {
	Field  string  `json:"field" yaml:"field"`
	Weight float64 `json:"weight" yaml:"weight"`
}

// FieldWeights is an ordered field-to-weight mapping. Order is the order in
// which the operator listed the fields and breaks ties between equal weights.
// Weights that are empty, null or not numeric decode as 0 and are therefore
// ignored by query expansion.
type FieldWeights []FieldWeight

// Set adds field with weight w, or updates it in place if already present.
func (fw *FieldWeights) Set(field string, w float64) {
	for i := range *fw {
		if (*fw)[i].Field == field {
			(*fw)[i].Weight = w
			return
		}
	}
	*fw = append(*fw, FieldWeight{Field: field, Weight: w})
}

// Get returns the weight for field and whether the field is present.
func (fw FieldWeights) Get(field string) (float64, bool) {
	for _, f := range fw {
		if f.Field == field {
			return f.Weight, true
		}
	}
	return 0, false
}

// ParseWeight converts a raw weight value to a float. Anything that does not
// parse as a number yields 0.
func ParseWeight(raw string) float64 {
	w, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0
	}
	return w
}

// UnmarshalYAML decodes a YAML mapping while keeping key order.
func (fw *FieldWeights) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("field weights: expected a mapping, got %s", node.ShortTag())
	}
	out := make(FieldWeights, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i], node.Content[i+1]
		w := 0.0
		if val.Kind == yaml.ScalarNode && val.ShortTag() != "!!null" {
			w = ParseWeight(val.Value)
		}
		out.Set(key.Value, w)
	}
	*fw = out
	return nil
}

// MarshalYAML encodes the weights as an ordered mapping.
func (fw FieldWeights) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, f := range fw {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: f.Field},
			&yaml.Node{Kind: yaml.ScalarNode, Value: strconv.FormatFloat(f.Weight, 'f', -1, 64)},
		)
	}
	return node, nil
}

// UnmarshalJSON decodes a JSON object while keeping key order. Values may be
// numbers, numeric strings, empty strings or null.
func (fw *FieldWeights) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("field weights: %w", err)
	}
	if tok == nil {
		*fw = nil
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("field weights: expected an object")
	}

	var out FieldWeights
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("field weights: %w", err)
		}
		key, _ := keyTok.(string)

		var raw any
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("field weights: value for %q: %w", key, err)
		}
		w := 0.0
		switch v := raw.(type) {
		case json.Number:
			w = ParseWeight(v.String())
		case string:
			w = ParseWeight(v)
		}
		out.Set(key, w)
	}
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("field weights: %w", err)
	}
	*fw = out
	return nil
}

// MarshalJSON encodes the weights as an ordered JSON object.
func (fw FieldWeights) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range fw {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Field)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.WriteString(strconv.FormatFloat(f.Weight, 'f', -1, 64))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// BoostFactors are the metadata boosts forwarded verbatim to the search
// backend. Query expansion never reads them.
type BoostFactors struct {
	CitationWeight float64            `json:"citation_boost" yaml:"citation_boost"`
	RecencyWeight  float64            `json:"recency_boost" yaml:"recency_boost"`
	ReferenceYear  int                `json:"reference_year" yaml:"reference_year"`
	DoctypeWeights map[string]float64 `json:"doctype_boosts,omitempty" yaml:"doctype_boosts,omitempty"`
}

// BoostConfig is the operator-edited weighting for one experiment session.
type BoostConfig struct {
	// Enabled turns field boosting on. When false the query is only sanitized.
	Enabled bool `json:"enabled" yaml:"enabled"`

	// FieldWeights maps document fields (title, abstract, author, ...) to weights.
	FieldWeights FieldWeights `json:"field_weights" yaml:"field_weights"`

	BoostFactors `yaml:",inline"`
}
