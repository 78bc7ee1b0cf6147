package vendors

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const defaultGeminiModel = "gemini-2.5-flash"

// Overridable in tests.
var geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta/models"

type geminiRequest struct {
	Contents         []geminiContent `json:"contents"`
	GenerationConfig *geminiGenConf  `json:"generationConfig,omitempty"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenConf struct {
	Temperature     *float64 `json:"temperature,omitempty"`
	TopP            *float64 `json:"topP,omitempty"`
	MaxOutputTokens int      `json:"maxOutputTokens,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error,omitempty"`
}

type geminiGenerator struct {
	httpClient *http.Client
	apiKey     string
	model      string
	params     Params
}

func newGemini(apiKey string, params Params) (Generator, error) {
	return &geminiGenerator{
		httpClient: newHTTPClient(),
		apiKey:     apiKey,
		model:      params.modelOr(defaultGeminiModel),
		params:     params,
	}, nil
}

func (g *geminiGenerator) Name() string { return "gemini/" + g.model }

func (g *geminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	reqBody := geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	}
	conf := &geminiGenConf{MaxOutputTokens: g.params.MaxTokens}
	if g.params.Temperature > 0 {
		conf.Temperature = &g.params.Temperature
	}
	if g.params.TopP > 0 {
		conf.TopP = &g.params.TopP
	}
	if conf.Temperature != nil || conf.TopP != nil || conf.MaxOutputTokens > 0 {
		reqBody.GenerationConfig = conf
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("gemini: encoding request: %w", err)
	}

	url := fmt.Sprintf("%s/%s:generateContent", geminiBaseURL, g.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("gemini: building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", g.apiKey)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("gemini: reading response: %w", err)
	}

	var parsed geminiResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("gemini: decoding response (status %d): %w", resp.StatusCode, err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("gemini: %s: %s", parsed.Error.Status, parsed.Error.Message)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini: response contained no candidates")
	}
	return parsed.Candidates[0].Content.Parts[0].Text, nil
}
