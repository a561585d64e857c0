// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package boost

import (
	"fmt"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/search-boost/pkg/types"
)

// LoadConfig reads a boost configuration from a YAML or JSON file. Field
// weights keep the order in which the file lists them.
func LoadConfig(path string) (types.BoostConfig, error) {
	var cfg types.BoostConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading boost config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing boost config %s: %w", path, err)
	}
	return cfg, nil
}

// ParseFieldWeight parses a "field=weight" pair. A weight that is not a
// number parses as 0, which disables the field.
func ParseFieldWeight(s string) (string, float64, error) {
	field, raw, ok := strings.Cut(s, "=")
	field = strings.TrimSpace(field)
	if !ok || field == "" {
		return "", 0, fmt.Errorf("invalid field weight %q: want field=weight", s)
	}
	return field, types.ParseWeight(raw), nil
}
