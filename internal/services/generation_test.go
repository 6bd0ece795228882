package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"alfredoptarigan/prepio/internal/config"
)

var testModels = ModelSet{
	Questions:           "question-model",
	Feedback:            "feedback-model",
	QuestionTemperature: 0.7,
	FeedbackTemperature: 0.4,
}

func TestClassifyGenerationError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		kind     string
		wantCode int
	}{
		{"gemini 503", genai.APIError{Code: 503, Status: "UNAVAILABLE"}, "service_unavailable", 503},
		{"gemini 500", genai.APIError{Code: 500}, "service_unavailable", 500},
		{"gemini 401", genai.APIError{Code: 401, Status: "UNAUTHENTICATED"}, "upstream_request_error", 401},
		{"gemini 429", genai.APIError{Code: 429}, "upstream_request_error", 429},
		{"gemini pointer", &genai.APIError{Code: 404}, "upstream_request_error", 404},
		{"wrapped", errors.Join(errors.New("call failed"), genai.APIError{Code: 502}), "service_unavailable", 502},
		{"openai 503", &openai.APIError{HTTPStatusCode: 503}, "service_unavailable", 503},
		{"openai 401", &openai.APIError{HTTPStatusCode: 401}, "upstream_request_error", 401},
		{"openai request error", &openai.RequestError{HTTPStatusCode: 400, Err: errors.New("bad")}, "upstream_request_error", 400},
		{"no status", errors.New("dial tcp: connection refused"), "internal_error", 0},
		{"zero status", genai.APIError{}, "internal_error", 0},
		{"context", context.DeadlineExceeded, "internal_error", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := classifyGenerationError(tt.err)

			assert.Equal(t, tt.kind, ErrorKind(err))
			assert.Equal(t, tt.wantCode, StatusCode(err))
			assert.Equal(t, tt.err, errors.Unwrap(err))
		})
	}
}

func TestClassifyGenerationError_Nil(t *testing.T) {
	assert.NoError(t, classifyGenerationError(nil))
}

func TestClassifyGenerationError_Types(t *testing.T) {
	var unavailable *ServiceUnavailableError
	require.ErrorAs(t, classifyGenerationError(genai.APIError{Code: 503}), &unavailable)
	assert.Equal(t, 503, unavailable.Code)

	var upstream *UpstreamRequestError
	require.ErrorAs(t, classifyGenerationError(genai.APIError{Code: 401}), &upstream)
	assert.Equal(t, 401, upstream.Code)

	var internal *InternalError
	assert.ErrorAs(t, classifyGenerationError(errors.New("boom")), &internal)
}

func newTestGeminiClient(t *testing.T, handler http.HandlerFunc) GenerationClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewGeminiClient(context.Background(), "test-key", testModels, WithGeminiBaseURL(server.URL+"/"))
	require.NoError(t, err)
	return client
}

func writeGeminiText(w http.ResponseWriter, text string) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"candidates": []map[string]any{
			{
				"content": map[string]any{
					"role":  "model",
					"parts": []map[string]any{{"text": text}},
				},
				"finishReason": "STOP",
			},
		},
	})
}

func TestGeminiClient_QuestionCall(t *testing.T) {
	var (
		path string
		body map[string]any
	)
	client := newTestGeminiClient(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		writeGeminiText(w, `["Q1","Q2","Q3"]`)
	})

	text, err := client.Invoke(context.Background(), CallQuestions, "prompt text")

	require.NoError(t, err)
	assert.Equal(t, `["Q1","Q2","Q3"]`, text)
	assert.True(t, strings.HasSuffix(path, "/models/question-model:generateContent"), path)

	genConfig, ok := body["generationConfig"].(map[string]any)
	require.True(t, ok, "generationConfig missing: %v", body)
	assert.Equal(t, "application/json", genConfig["responseMimeType"])
	assert.NotNil(t, genConfig["responseSchema"])
}

func TestGeminiClient_FeedbackCallIsPlainText(t *testing.T) {
	var (
		path string
		body map[string]any
	)
	client := newTestGeminiClient(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		writeGeminiText(w, "## What went well\n- clear")
	})

	text, err := client.Invoke(context.Background(), CallFeedback, "prompt text")

	require.NoError(t, err)
	assert.Equal(t, "## What went well\n- clear", text)
	assert.True(t, strings.HasSuffix(path, "/models/feedback-model:generateContent"), path)

	genConfig, _ := body["generationConfig"].(map[string]any)
	assert.Nil(t, genConfig["responseMimeType"])
}

func TestGeminiClient_StatusClassification(t *testing.T) {
	tests := []struct {
		status int
		kind   string
	}{
		{http.StatusServiceUnavailable, "service_unavailable"},
		{http.StatusUnauthorized, "upstream_request_error"},
		{http.StatusNotFound, "upstream_request_error"},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			client := newTestGeminiClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				json.NewEncoder(w).Encode(map[string]any{
					"error": map[string]any{
						"code":    tt.status,
						"message": "upstream said no",
						"status":  "ERROR",
					},
				})
			})

			_, err := client.Invoke(context.Background(), CallQuestions, "prompt")

			require.Error(t, err)
			assert.Equal(t, tt.kind, ErrorKind(err))
			assert.Equal(t, tt.status, StatusCode(err))
		})
	}
}

func TestGeminiClient_TransportFailureIsInternal(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client, err := NewGeminiClient(context.Background(), "test-key", testModels, WithGeminiBaseURL(url+"/"))
	require.NoError(t, err)

	_, err = client.Invoke(context.Background(), CallFeedback, "prompt")

	require.Error(t, err)
	assert.Equal(t, "internal_error", ErrorKind(err))
	assert.Zero(t, StatusCode(err))
}

func TestNewGeminiClient_RequiresKey(t *testing.T) {
	_, err := NewGeminiClient(context.Background(), "", testModels)
	assert.Error(t, err)
}

func TestModelSet(t *testing.T) {
	assert.Equal(t, "question-model", testModels.model(CallQuestions))
	assert.Equal(t, "feedback-model", testModels.model(CallFeedback))
	assert.Equal(t, float32(0.7), testModels.temperature(CallQuestions))
	assert.Equal(t, float32(0.4), testModels.temperature(CallFeedback))
}

func TestNewGenerationClient(t *testing.T) {
	cfg := config.GenerationConfig{
		Provider:      config.ProviderOpenAI,
		OpenAIAPIKey:  "test-key",
		QuestionModel: "gpt-4o-mini",
		FeedbackModel: "gpt-4o",
	}

	client, err := NewGenerationClient(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, "openai", client.Provider())
	assert.Equal(t, "gpt-4o", client.Model(CallFeedback))

	cfg.Provider = config.ProviderGemini
	cfg.GeminiAPIKey = "test-key"
	client, err = NewGenerationClient(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, "gemini", client.Provider())

	cfg.Provider = "anthropic"
	_, err = NewGenerationClient(context.Background(), cfg)
	assert.Error(t, err)
}
