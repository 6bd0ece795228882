package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"
)

type openAIClient struct {
	client *openai.Client
	models ModelSet
}

// NewOpenAIClient builds a GenerationClient on the chat completions API.
// baseURL may point at any OpenAI-compatible endpoint.
func NewOpenAIClient(apiKey, baseURL string, models ModelSet) (GenerationClient, error) {
	if apiKey == "" {
		return nil, errors.New("openai API key is required")
	}

	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}

	return &openAIClient{
		client: openai.NewClientWithConfig(config),
		models: models,
	}, nil
}

func (o *openAIClient) Provider() string { return "openai" }

func (o *openAIClient) Model(kind CallKind) string { return o.models.model(kind) }

// Invoke implements GenerationClient.
func (o *openAIClient) Invoke(ctx context.Context, kind CallKind, prompt string) (string, error) {
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.Model(kind),
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: o.models.temperature(kind),
	})
	if err != nil {
		log.Error().Err(err).Str("kind", string(kind)).Msg("❌ OpenAI API error")
		return "", classifyGenerationError(err)
	}

	if len(resp.Choices) == 0 {
		return "", &InternalError{Err: fmt.Errorf("no choices in %s response", o.Model(kind))}
	}

	return resp.Choices[0].Message.Content, nil
}
