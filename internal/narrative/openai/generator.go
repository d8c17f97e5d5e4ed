package openai

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

// Generator implements the narrative.TextGenerator interface using OpenAI
type Generator struct {
	client *openai.Client
	model  string
}

// NewGenerator creates a new OpenAI text generator instance
func NewGenerator(apiKey string, model string) *Generator {
	client := openai.NewClient(apiKey)
	if model == "" {
		model = openai.GPT4
	}
	return &Generator{
		client: client,
		model:  model,
	}
}

// Complete implements the TextGenerator interface
func (g *Generator) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: g.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role: openai.ChatMessageRoleSystem,
					Content: "You are a professional crypto risk analyst who writes clear reports for retail investors. " +
						"Always follow the section labels requested in the prompt exactly.",
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: 0.3, // lower temperature for stable report structure
		},
	)
	if err != nil {
		return "", fmt.Errorf("openai api error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from openai")
	}

	return resp.Choices[0].Message.Content, nil
}
