package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("full config", func(t *testing.T) {
		cfg, err := Parse([]byte(`
name: marker-retention
models:
  - vendor: gemini
    params:
      model: gemini-2.5-flash
      temperature: 0.3
  - vendor: cohere
catalog: stimuli.yaml
results_dir: out
compress_results: true
parallel: true
max_workers: 8
pace_ms: 250
timeout_seconds: 90
`))
		require.NoError(t, err)
		require.Equal(t, "marker-retention", cfg.Name)
		require.Len(t, cfg.Models, 2)
		require.Equal(t, "gemini", cfg.Models[0].Vendor)
		require.Equal(t, "gemini-2.5-flash", cfg.Models[0].Params["model"])
		require.Equal(t, "out", cfg.ResultsDir)
		require.True(t, cfg.CompressResults)
		require.True(t, cfg.Parallel)
		require.Equal(t, 8, cfg.MaxWorkers)
		require.Equal(t, 250*time.Millisecond, cfg.Pace())
		require.Equal(t, 90*time.Second, cfg.Timeout())
	})

	t.Run("defaults filled in", func(t *testing.T) {
		cfg, err := Parse([]byte("models:\n  - vendor: openai\n"))
		require.NoError(t, err)
		require.Equal(t, "results", cfg.ResultsDir)
		require.Equal(t, 120*time.Second, cfg.Timeout())
	})

	t.Run("no models rejected", func(t *testing.T) {
		_, err := Parse([]byte("name: empty\n"))
		require.ErrorContains(t, err, "at least one model")
	})

	t.Run("missing vendor rejected", func(t *testing.T) {
		_, err := Parse([]byte("models:\n  - params:\n      model: x\n"))
		require.ErrorContains(t, err, "vendor is required")
	})

	t.Run("negative pace rejected", func(t *testing.T) {
		_, err := Parse([]byte("models:\n  - vendor: openai\npace_ms: -5\n"))
		require.ErrorContains(t, err, "pace_ms")
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := Parse([]byte("models: [unclosed"))
		require.ErrorContains(t, err, "parsing config")
	})
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	require.Len(t, cfg.Models, 1)
	require.Equal(t, "gemini", cfg.Models[0].Vendor)
}
