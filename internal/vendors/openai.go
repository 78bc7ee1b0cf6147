package vendors

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

const defaultOpenAIModel = "gpt-4o-mini"

type openAIGenerator struct {
	client *openai.Client
	model  string
	params Params
}

func newOpenAI(apiKey string, params Params) (Generator, error) {
	return &openAIGenerator{
		client: openai.NewClient(apiKey),
		model:  params.modelOr(defaultOpenAIModel),
		params: params,
	}, nil
}

func (g *openAIGenerator) Name() string { return "openai/" + g.model }

func (g *openAIGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	}
	if g.params.Temperature > 0 {
		req.Temperature = float32(g.params.Temperature)
	}
	if g.params.TopP > 0 {
		req.TopP = float32(g.params.TopP)
	}
	if g.params.MaxTokens > 0 {
		req.MaxCompletionTokens = g.params.MaxTokens
	}

	resp, err := g.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("openai: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai: response contained no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
