package vendors

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const defaultCohereModel = "command-r"

// Overridable in tests.
var cohereChatURL = "https://api.cohere.com/v2/chat"

type cohereRequest struct {
	Model       string          `json:"model"`
	Messages    []cohereMessage `json:"messages"`
	Temperature *float64        `json:"temperature,omitempty"`
	P           *float64        `json:"p,omitempty"`
	MaxTokens   int             `json:"max_tokens,omitempty"`
}

type cohereMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type cohereResponse struct {
	Message struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	} `json:"message"`
}

type cohereGenerator struct {
	httpClient *http.Client
	apiKey     string
	model      string
	params     Params
}

func newCohere(apiKey string, params Params) (Generator, error) {
	return &cohereGenerator{
		httpClient: newHTTPClient(),
		apiKey:     apiKey,
		model:      params.modelOr(defaultCohereModel),
		params:     params,
	}, nil
}

func (g *cohereGenerator) Name() string { return "cohere/" + g.model }

func (g *cohereGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	reqBody := cohereRequest{
		Model:     g.model,
		Messages:  []cohereMessage{{Role: "user", Content: prompt}},
		MaxTokens: g.params.MaxTokens,
	}
	if g.params.Temperature > 0 {
		reqBody.Temperature = &g.params.Temperature
	}
	if g.params.TopP > 0 {
		reqBody.P = &g.params.TopP
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("cohere: encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, cohereChatURL, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("cohere: building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("cohere: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("cohere: reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Message string `json:"message"`
		}
		_ = json.Unmarshal(body, &apiErr)
		if apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		return "", fmt.Errorf("cohere: status %d: %s", resp.StatusCode, apiErr.Message)
	}

	var parsed cohereResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("cohere: decoding response: %w", err)
	}
	for _, block := range parsed.Message.Content {
		if block.Type == "text" {
			return block.Text, nil
		}
	}
	return "", fmt.Errorf("cohere: response contained no text block")
}
