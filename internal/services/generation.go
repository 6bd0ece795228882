package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"
	"google.golang.org/genai"

	"alfredoptarigan/prepio/internal/config"
)

// CallKind tells the generation client which model settings to use.
type CallKind string

const (
	CallQuestions CallKind = "questions"
	CallFeedback  CallKind = "feedback"
)

// GenerationClient sends a single prompt to the hosted model and returns the
// response text. Errors are always one of ServiceUnavailableError,
// UpstreamRequestError or InternalError.
type GenerationClient interface {
	Invoke(ctx context.Context, kind CallKind, prompt string) (string, error)
	Model(kind CallKind) string
	Provider() string
}

// ModelSet holds the per-call model identifiers and sampling settings.
type ModelSet struct {
	Questions           string
	Feedback            string
	QuestionTemperature float32
	FeedbackTemperature float32
}

func (m ModelSet) model(kind CallKind) string {
	if kind == CallQuestions {
		return m.Questions
	}
	return m.Feedback
}

func (m ModelSet) temperature(kind CallKind) float32 {
	if kind == CallQuestions {
		return m.QuestionTemperature
	}
	return m.FeedbackTemperature
}

// NewGenerationClient builds the client for the configured provider.
func NewGenerationClient(ctx context.Context, cfg config.GenerationConfig) (GenerationClient, error) {
	models := ModelSet{
		Questions:           cfg.QuestionModel,
		Feedback:            cfg.FeedbackModel,
		QuestionTemperature: cfg.QuestionTemperature,
		FeedbackTemperature: cfg.FeedbackTemperature,
	}

	switch cfg.Provider {
	case config.ProviderGemini:
		return NewGeminiClient(ctx, cfg.GeminiAPIKey, models)
	case config.ProviderOpenAI:
		return NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, models)
	default:
		return nil, fmt.Errorf("unknown generation provider %q", cfg.Provider)
	}
}

type geminiClient struct {
	client *genai.Client
	models ModelSet
}

// GeminiOption customizes the underlying genai client config.
type GeminiOption func(*genai.ClientConfig)

// WithGeminiBaseURL points the client at a different endpoint.
func WithGeminiBaseURL(baseURL string) GeminiOption {
	return func(cc *genai.ClientConfig) {
		cc.HTTPOptions.BaseURL = baseURL
	}
}

func NewGeminiClient(ctx context.Context, apiKey string, models ModelSet, opts ...GeminiOption) (GenerationClient, error) {
	if apiKey == "" {
		return nil, errors.New("gemini API key is required")
	}

	cc := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	for _, opt := range opts {
		opt(cc)
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &geminiClient{
		client: client,
		models: models,
	}, nil
}

func (g *geminiClient) Provider() string { return "gemini" }

func (g *geminiClient) Model(kind CallKind) string { return g.models.model(kind) }

// Invoke implements GenerationClient.
func (g *geminiClient) Invoke(ctx context.Context, kind CallKind, prompt string) (string, error) {
	temperature := g.models.temperature(kind)
	genConfig := &genai.GenerateContentConfig{
		Temperature:     &temperature,
		MaxOutputTokens: 4096,
	}

	// Question lists come back as a bare JSON array of strings.
	if kind == CallQuestions {
		genConfig.ResponseMIMEType = "application/json"
		genConfig.ResponseSchema = &genai.Schema{
			Type:  genai.TypeArray,
			Items: &genai.Schema{Type: genai.TypeString},
		}
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.Model(kind), genai.Text(prompt), genConfig)
	if err != nil {
		log.Error().Err(err).Str("kind", string(kind)).Msg("❌ Gemini API error")
		return "", classifyGenerationError(err)
	}

	if resp == nil {
		return "", &InternalError{Err: errors.New("no response generated (nil response)")}
	}

	return resp.Text(), nil
}

// classifyGenerationError maps a provider error onto the error taxonomy
// using the HTTP status it carries.
func classifyGenerationError(err error) error {
	if err == nil {
		return nil
	}

	status, ok := upstreamStatus(err)
	switch {
	case ok && status >= http.StatusInternalServerError:
		return &ServiceUnavailableError{Code: status, Err: err}
	case ok && status >= http.StatusBadRequest:
		return &UpstreamRequestError{Code: status, Err: err}
	default:
		return &InternalError{Err: err}
	}
}

func upstreamStatus(err error) (int, bool) {
	var (
		geminiValue  genai.APIError
		geminiPtr    *genai.APIError
		openaiAPI    *openai.APIError
		openaiReqErr *openai.RequestError
	)

	switch {
	case errors.As(err, &geminiValue):
		return geminiValue.Code, geminiValue.Code != 0
	case errors.As(err, &geminiPtr) && geminiPtr != nil:
		return geminiPtr.Code, geminiPtr.Code != 0
	case errors.As(err, &openaiAPI):
		return openaiAPI.HTTPStatusCode, openaiAPI.HTTPStatusCode != 0
	case errors.As(err, &openaiReqErr):
		return openaiReqErr.HTTPStatusCode, openaiReqErr.HTTPStatusCode != 0
	}
	return 0, false
}

