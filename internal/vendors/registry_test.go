package vendors

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNames(t *testing.T) {
	require.Equal(t, []string{"anthropic", "cohere", "gemini", "mistral", "openai"}, Names())
}

func TestEnvKey(t *testing.T) {
	require.Equal(t, "GEMINI_API_KEY", EnvKey("gemini"))
	require.Equal(t, "OPENAI_API_KEY", EnvKey("openai"))
}

func TestCreate(t *testing.T) {
	t.Run("unknown vendor", func(t *testing.T) {
		_, err := Create("watson", nil)
		require.ErrorContains(t, err, `"watson" is not a known vendor`)
	})

	t.Run("missing api key", func(t *testing.T) {
		t.Setenv("OPENAI_API_KEY", "")
		_, err := Create("openai", nil)
		require.ErrorContains(t, err, "OPENAI_API_KEY is not set")
	})

	t.Run("valid params", func(t *testing.T) {
		t.Setenv("OPENAI_API_KEY", "sk-test")
		gen, err := Create("openai", map[string]any{
			"model":       "gpt-4o",
			"temperature": 0.7,
			"max_tokens":  512,
		})
		require.NoError(t, err)
		require.Equal(t, "openai/gpt-4o", gen.Name())
	})

	t.Run("default model", func(t *testing.T) {
		t.Setenv("GEMINI_API_KEY", "test")
		gen, err := Create("gemini", nil)
		require.NoError(t, err)
		require.Equal(t, "gemini/gemini-2.5-flash", gen.Name())
	})

	t.Run("unknown param rejected", func(t *testing.T) {
		t.Setenv("OPENAI_API_KEY", "sk-test")
		_, err := Create("openai", map[string]any{"tempreature": 0.5})
		require.ErrorContains(t, err, "invalid parameters")
	})
}

func TestMockGenerator(t *testing.T) {
	t.Run("matched response", func(t *testing.T) {
		m := &MockGenerator{
			Responses: map[string]string{"finna": "still finna"},
			Fallback:  "generic",
		}
		got, err := m.Generate(context.Background(), "Paraphrase: I'm finna go")
		require.NoError(t, err)
		require.Equal(t, "still finna", got)
	})

	t.Run("fallback and call recording", func(t *testing.T) {
		m := &MockGenerator{Fallback: "generic"}
		got, err := m.Generate(context.Background(), "anything")
		require.NoError(t, err)
		require.Equal(t, "generic", got)
		require.Equal(t, []string{"anything"}, m.Calls)
	})

	t.Run("default name", func(t *testing.T) {
		require.Equal(t, "mock", (&MockGenerator{}).Name())
		require.Equal(t, "custom", (&MockGenerator{VendorName: "custom"}).Name())
	})
}
