// Package config loads and validates the YAML run configuration that
// drives a benchmark run: which vendors and models to query, where the
// stimulus catalog lives, and how results are collected and stored.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ModelSpec names a vendor plus its raw generation parameters. Params
// are decoded by the vendor registry, so unknown keys surface there.
type ModelSpec struct {
	Vendor string         `yaml:"vendor" json:"vendor"`
	Params map[string]any `yaml:"params,omitempty" json:"params,omitempty"`
}

// RunConfig is the top-level run configuration.
type RunConfig struct {
	Name            string      `yaml:"name,omitempty" json:"name,omitempty"`
	Models          []ModelSpec `yaml:"models" json:"models"`
	Catalog         string      `yaml:"catalog,omitempty" json:"catalog,omitempty"`
	ResultsDir      string      `yaml:"results_dir,omitempty" json:"results_dir,omitempty"`
	CompressResults bool        `yaml:"compress_results,omitempty" json:"compress_results,omitempty"`
	Parallel        bool        `yaml:"parallel,omitempty" json:"parallel,omitempty"`
	MaxWorkers      int         `yaml:"max_workers,omitempty" json:"max_workers,omitempty"`
	PaceMS          int         `yaml:"pace_ms,omitempty" json:"pace_ms,omitempty"`
	TimeoutSeconds  int         `yaml:"timeout_seconds,omitempty" json:"timeout_seconds,omitempty"`
}

// Default returns the configuration used when no file is given: a
// single Gemini model against the builtin catalog.
func Default() *RunConfig {
	return &RunConfig{
		Name: "retention-benchmark",
		Models: []ModelSpec{
			{Vendor: "gemini", Params: map[string]any{"model": "gemini-2.5-flash"}},
		},
		ResultsDir:     "results",
		TimeoutSeconds: 120,
	}
}

// Load reads a run configuration from a YAML file.
func Load(path string) (*RunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes and validates YAML configuration bytes.
func Parse(data []byte) (*RunConfig, error) {
	var cfg RunConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration and fills in defaults for
// unset fields.
func (c *RunConfig) Validate() error {
	if len(c.Models) == 0 {
		return fmt.Errorf("config must list at least one model")
	}
	for i, m := range c.Models {
		if m.Vendor == "" {
			return fmt.Errorf("models[%d]: vendor is required", i)
		}
	}
	if c.MaxWorkers < 0 {
		return fmt.Errorf("max_workers must be positive, got %d", c.MaxWorkers)
	}
	if c.PaceMS < 0 {
		return fmt.Errorf("pace_ms must not be negative, got %d", c.PaceMS)
	}
	if c.TimeoutSeconds < 0 {
		return fmt.Errorf("timeout_seconds must be positive, got %d", c.TimeoutSeconds)
	}
	if c.ResultsDir == "" {
		c.ResultsDir = "results"
	}
	if c.TimeoutSeconds == 0 {
		c.TimeoutSeconds = 120
	}
	return nil
}

// Timeout returns the per-generation timeout as a duration.
func (c *RunConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Pace returns the delay inserted between sequential generations.
func (c *RunConfig) Pace() time.Duration {
	return time.Duration(c.PaceMS) * time.Millisecond
}
