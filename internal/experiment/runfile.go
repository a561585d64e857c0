// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package experiment

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/search-boost/pkg/types"
)

// WriteFile saves a run to path as YAML. The boost configuration is not
// written.
func WriteFile(path string, run *types.ExperimentRun) error {
	data, err := yaml.Marshal(run)
	if err != nil {
		return fmt.Errorf("marshaling run: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing run file: %w", err)
	}
	return nil
}

// ReadFile loads a run saved by WriteFile.
func ReadFile(path string) (*types.ExperimentRun, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading run file: %w", err)
	}
	var run types.ExperimentRun
	if err := yaml.Unmarshal(data, &run); err != nil {
		return nil, fmt.Errorf("parsing run file %s: %w", path, err)
	}
	return &run, nil
}
