// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by backends that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "search-boost/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// BackendKind selects the search backend implementation.
type BackendKind string

const (
	BackendADS     BackendKind = "ads"
	BackendCompare BackendKind = "compare"
	BackendFile    BackendKind = "file"
)

// BackendConfig holds settings for the search backend.
type BackendConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// Kind selects the backend: ads, compare, or file.
	Kind BackendKind `json:"kind" yaml:"kind" mapstructure:"kind"`

	// BaseURL is the API root, e.g. "https://api.adsabs.harvard.edu/v1"
	// for ADS or "http://localhost:8000" for the compare service.
	BaseURL string `json:"base_url" yaml:"base_url" mapstructure:"base_url"`

	// Token is the ADS API bearer token.
	Token string `json:"token,omitempty" yaml:"token,omitempty" mapstructure:"token"`

	// Source names the engine the compare service should query (default "ads").
	Source string `json:"source" yaml:"source" mapstructure:"source"`

	// Rows is the number of results requested per query (default 20).
	Rows int `json:"rows" yaml:"rows" mapstructure:"rows"`

	// Fields lists the document fields requested from the backend.
	Fields []string `json:"fields" yaml:"fields" mapstructure:"fields"`

	// BaselinePath and BoostedPath are result files read by the file backend.
	BaselinePath string `json:"baseline_path,omitempty" yaml:"baseline_path,omitempty" mapstructure:"baseline_path"`
	BoostedPath  string `json:"boosted_path,omitempty" yaml:"boosted_path,omitempty" mapstructure:"boosted_path"`
}

// HistoryConfig holds settings for the experiment run history.
type HistoryConfig struct {
	// Path is the SQLite database file. Empty disables history.
	Path string `json:"path" yaml:"path" mapstructure:"path"`
}

// ServerConfig holds settings for the HTTP API.
type ServerConfig struct {
	Addr string `json:"addr" yaml:"addr" mapstructure:"addr"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `json:"level" yaml:"level" mapstructure:"level"`

	// JSON selects JSON output instead of console output.
	JSON bool `json:"json" yaml:"json" mapstructure:"json"`
}

// AppConfig groups all settings for the application.
type AppConfig struct {
	Backend BackendConfig `json:"backend" yaml:"backend" mapstructure:"backend"`
	History HistoryConfig `json:"history" yaml:"history" mapstructure:"history"`
	Server  ServerConfig  `json:"server" yaml:"server" mapstructure:"server"`
	Log     LogConfig     `json:"log" yaml:"log" mapstructure:"log"`
}
