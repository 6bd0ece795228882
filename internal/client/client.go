// Package client talks to the interview HTTP API. Client satisfies
// interview.Backend so a session can run against a remote server.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strconv"
	"strings"
	"time"

	"alfredoptarigan/prepio/internal/models"
)

// APIError is a non-2xx answer from the server. Message is the server's
// user-facing error text.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 2 * time.Minute},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GenerateQuestions uploads the document with its declared media type as the
// part Content-Type.
func (c *Client) GenerateQuestions(ctx context.Context, doc *models.UploadedDocument, req models.GenerationRequest) ([]string, error) {
	if doc == nil {
		return nil, fmt.Errorf("no document to upload")
	}

	body := new(bytes.Buffer)
	w := multipart.NewWriter(body)

	if req.Category != "" {
		if err := w.WriteField("questionType", req.Category); err != nil {
			return nil, fmt.Errorf("failed to write form: %w", err)
		}
	}
	if req.QuestionCount > 0 {
		if err := w.WriteField("questionCount", strconv.Itoa(req.QuestionCount)); err != nil {
			return nil, fmt.Errorf("failed to write form: %w", err)
		}
	}

	filename := doc.Filename
	if filename == "" {
		filename = "resume"
	}
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="resume"; filename=%q`, filename))
	if doc.MediaType != models.MediaTypeUnknown {
		header.Set("Content-Type", string(doc.MediaType))
	}
	part, err := w.CreatePart(header)
	if err != nil {
		return nil, fmt.Errorf("failed to write form: %w", err)
	}
	if _, err := part.Write(doc.Data); err != nil {
		return nil, fmt.Errorf("failed to write form: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to write form: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/generate-questions", body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", w.FormDataContentType())

	var resp models.QuestionsResponse
	if err := c.do(httpReq, &resp); err != nil {
		return nil, err
	}
	return resp.Questions, nil
}

func (c *Client) GetFeedback(ctx context.Context, question, answer string) (string, error) {
	payload, err := json.Marshal(models.FeedbackRequest{Question: question, Answer: answer})
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/get-feedback", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	var resp models.FeedbackResponse
	if err := c.do(httpReq, &resp); err != nil {
		return "", err
	}
	return resp.Feedback, nil
}

func (c *Client) do(req *http.Request, target any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach server: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errBody models.ErrorResponse
		if json.Unmarshal(raw, &errBody) != nil || errBody.Error == "" {
			errBody.Error = http.StatusText(resp.StatusCode)
		}
		return &APIError{StatusCode: resp.StatusCode, Message: errBody.Error}
	}

	if err := json.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
