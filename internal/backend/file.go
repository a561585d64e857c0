// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package backend

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/search-boost/pkg/types"
)

// ResultFile is the on-disk form of a ranked result list. JSON files decode
// too, since JSON is valid YAML.
type ResultFile struct {
	Query     string              `yaml:"query,omitempty"`
	Source    string              `yaml:"source,omitempty"`
	Timestamp time.Time           `yaml:"timestamp,omitempty"`
	Results   []types.ResultEntry `yaml:"results"`
}

// WriteResultFile saves a result list to path as YAML.
func WriteResultFile(path, query, source string, results []types.ResultEntry) error {
	rf := ResultFile{
		Query:     query,
		Source:    source,
		Timestamp: time.Now().UTC(),
		Results:   results,
	}
	data, err := yaml.Marshal(&rf)
	if err != nil {
		return fmt.Errorf("marshaling result file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadResultFile loads a result list written by WriteResultFile. A file
// holding a bare list of entries is accepted as well.
func ReadResultFile(path string) (*ResultFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading result file: %w", err)
	}

	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("parsing result file %s: %w", path, err)
	}

	var rf ResultFile
	if len(node.Content) > 0 && node.Content[0].Kind == yaml.SequenceNode {
		if err := node.Content[0].Decode(&rf.Results); err != nil {
			return nil, fmt.Errorf("parsing result file %s: %w", path, err)
		}
		return &rf, nil
	}
	if err := node.Decode(&rf); err != nil {
		return nil, fmt.Errorf("parsing result file %s: %w", path, err)
	}
	return &rf, nil
}

// FileBackend serves saved result lists instead of querying a service. The
// baseline request reads BaselinePath; the boosted request reads BoostedPath.
type FileBackend struct {
	BaselinePath string
	BoostedPath  string
}

// Name returns the backend identifier.
func (b *FileBackend) Name() string { return "file" }

// Search ignores the query text and returns the file for the request role.
func (b *FileBackend) Search(_ context.Context, req Request) ([]types.ResultEntry, error) {
	path := b.BaselinePath
	if req.UseTransformedQuery {
		path = b.BoostedPath
	}
	if path == "" {
		return nil, fmt.Errorf("file backend: no result file configured")
	}
	rf, err := ReadResultFile(path)
	if err != nil {
		return nil, err
	}
	return rf.Results, nil
}
