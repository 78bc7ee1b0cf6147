package vendors

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/go-viper/mapstructure/v2"
)

// Factory builds a Generator from decoded parameters.
type Factory func(apiKey string, params Params) (Generator, error)

var factories = map[string]Factory{
	"openai":    newOpenAI,
	"anthropic": newAnthropic,
	"gemini":    newGemini,
	"mistral":   newMistral,
	"cohere":    newCohere,
}

// Names returns the registered vendor names, sorted.
func Names() []string {
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// EnvKey returns the environment variable holding a vendor's API key,
// e.g. "GEMINI_API_KEY" for "gemini".
func EnvKey(name string) string {
	return strings.ToUpper(name) + "_API_KEY"
}

// Create builds a Generator by registry name. rawParams is the vendor's
// parameter map from the run config (temperature, max_tokens, ...); unknown
// keys are rejected so typos surface at setup time. The API key is read
// from the vendor's environment variable.
func Create(name string, rawParams map[string]any) (Generator, error) {
	factory, ok := factories[name]
	if !ok {
		return nil, fmt.Errorf("%q is not a known vendor (have: %s)", name, strings.Join(Names(), ", "))
	}

	var params Params
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &params,
		ErrorUnused: true,
	})
	if err != nil {
		return nil, err
	}
	if rawParams != nil {
		if err := decoder.Decode(rawParams); err != nil {
			return nil, fmt.Errorf("vendor %s: invalid parameters: %w", name, err)
		}
	}

	apiKey := os.Getenv(EnvKey(name))
	if apiKey == "" {
		return nil, fmt.Errorf("vendor %s: %s is not set", name, EnvKey(name))
	}

	return factory(apiKey, params)
}
