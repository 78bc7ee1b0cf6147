// Package vendors provides the text-generation capability behind the
// benchmark: one Generator implementation per hosted model API, all exposed
// through the same interface so no vendor identity leaks downstream.
package vendors

import (
	"context"
	"net/http"
	"strings"
	"time"
)

// Generator is the uniform generation capability the collector consumes.
type Generator interface {
	// Name returns the registry name of the vendor.
	Name() string

	// Generate produces a completion for the prompt. Failures are returned
	// as errors by value; the collector converts them into failed outcomes.
	Generate(ctx context.Context, prompt string) (string, error)
}

// Params holds the generation parameters shared across vendors. Zero values
// mean "use the vendor default".
type Params struct {
	Model       string  `mapstructure:"model"`
	Temperature float64 `mapstructure:"temperature"`
	TopP        float64 `mapstructure:"top_p"`
	MaxTokens   int     `mapstructure:"max_tokens"`
}

func (p Params) maxTokensOr(def int) int {
	if p.MaxTokens > 0 {
		return p.MaxTokens
	}
	return def
}

func (p Params) modelOr(def string) string {
	if p.Model != "" {
		return p.Model
	}
	return def
}

// newHTTPClient returns the client used by the REST-based vendors.
func newHTTPClient() *http.Client {
	return &http.Client{Timeout: 60 * time.Second}
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
