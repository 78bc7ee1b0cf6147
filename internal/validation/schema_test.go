package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateConfigBytes(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		errs := ValidateConfigBytes([]byte(`
models:
  - vendor: gemini
    params:
      model: gemini-2.5-flash
      temperature: 0.5
results_dir: results
parallel: true
`))
		require.Empty(t, errs)
	})

	t.Run("missing models", func(t *testing.T) {
		errs := ValidateConfigBytes([]byte("name: no-models\n"))
		require.NotEmpty(t, errs)
	})

	t.Run("unknown vendor", func(t *testing.T) {
		errs := ValidateConfigBytes([]byte("models:\n  - vendor: watson\n"))
		require.NotEmpty(t, errs)
		require.True(t, hasErrorAt(errs, "/models/0/vendor"))
	})

	t.Run("unknown param key", func(t *testing.T) {
		errs := ValidateConfigBytes([]byte(`
models:
  - vendor: gemini
    params:
      tempreature: 0.5
`))
		require.NotEmpty(t, errs)
	})

	t.Run("temperature out of range", func(t *testing.T) {
		errs := ValidateConfigBytes([]byte(`
models:
  - vendor: gemini
    params:
      temperature: 3.5
`))
		require.NotEmpty(t, errs)
	})

	t.Run("yaml parse error", func(t *testing.T) {
		errs := ValidateConfigBytes([]byte("models: [unclosed"))
		require.Len(t, errs, 1)
		require.Contains(t, errs[0], "YAML parse error")
	})
}

func TestValidateCatalogBytes(t *testing.T) {
	t.Run("valid catalog", func(t *testing.T) {
		errs := ValidateCatalogBytes([]byte(`
stimuli:
  - id: aave_1
    variety: AAVE
    task: paraphrase
    text: "finna go real quick"
    expected_markers: ["finna", "real quick"]
`))
		require.Empty(t, errs)
	})

	t.Run("bad task enum", func(t *testing.T) {
		errs := ValidateCatalogBytes([]byte(`
stimuli:
  - id: x
    variety: AAVE
    task: summarize
    text: "t"
    expected_markers: ["m"]
`))
		require.NotEmpty(t, errs)
		require.True(t, hasErrorAt(errs, "/stimuli/0/task"))
	})

	t.Run("empty markers array", func(t *testing.T) {
		errs := ValidateCatalogBytes([]byte(`
stimuli:
  - id: x
    variety: AAVE
    task: explain
    text: "t"
    expected_markers: []
`))
		require.NotEmpty(t, errs)
	})

	t.Run("empty stimuli list", func(t *testing.T) {
		errs := ValidateCatalogBytes([]byte("stimuli: []\n"))
		require.NotEmpty(t, errs)
	})
}

func hasErrorAt(errs []string, location string) bool {
	for _, e := range errs {
		if strings.HasPrefix(e, location+":") {
			return true
		}
	}
	return false
}
