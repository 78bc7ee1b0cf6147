package vendors

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const (
	defaultMistralModel = "mistral-large-latest"

	// Model tried when the primary Mistral model is unavailable.
	fallbackMistralModel = "mistral-medium-latest"
)

// Overridable in tests.
var mistralChatURL = "https://api.mistral.ai/v1/chat/completions"

type mistralRequest struct {
	Model       string           `json:"model"`
	Messages    []mistralMessage `json:"messages"`
	Temperature *float64         `json:"temperature,omitempty"`
	TopP        *float64         `json:"top_p,omitempty"`
	MaxTokens   int              `json:"max_tokens,omitempty"`
}

type mistralMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type mistralResponse struct {
	Choices []struct {
		Message mistralMessage `json:"message"`
	} `json:"choices"`
	Message string `json:"message,omitempty"`
}

type mistralGenerator struct {
	httpClient *http.Client
	apiKey     string
	model      string
	params     Params
}

func newMistral(apiKey string, params Params) (Generator, error) {
	return &mistralGenerator{
		httpClient: newHTTPClient(),
		apiKey:     apiKey,
		model:      params.modelOr(defaultMistralModel),
		params:     params,
	}, nil
}

func (g *mistralGenerator) Name() string { return "mistral/" + g.model }

func (g *mistralGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	text, err := g.complete(ctx, g.model, prompt)
	if err != nil && g.model == defaultMistralModel {
		// The large model is sometimes gated; retry once on the medium tier.
		fbText, fbErr := g.complete(ctx, fallbackMistralModel, prompt)
		if fbErr == nil {
			return fbText, nil
		}
		return "", err
	}
	return text, err
}

func (g *mistralGenerator) complete(ctx context.Context, model, prompt string) (string, error) {
	reqBody := mistralRequest{
		Model:     model,
		Messages:  []mistralMessage{{Role: "user", Content: prompt}},
		MaxTokens: g.params.MaxTokens,
	}
	if g.params.Temperature > 0 {
		reqBody.Temperature = &g.params.Temperature
	}
	if g.params.TopP > 0 {
		reqBody.TopP = &g.params.TopP
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("mistral: encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, mistralChatURL, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("mistral: building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("mistral: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("mistral: reading response: %w", err)
	}

	var parsed mistralResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("mistral: decoding response (status %d): %w", resp.StatusCode, err)
	}
	if resp.StatusCode != http.StatusOK {
		msg := parsed.Message
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return "", fmt.Errorf("mistral: status %d: %s", resp.StatusCode, msg)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("mistral: response contained no choices")
	}
	return parsed.Choices[0].Message.Content, nil
}
