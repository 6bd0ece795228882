package services

import (
	"context"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"alfredoptarigan/prepio/internal/models"
)

// Recorder accepts audit records. Implementations must not block the caller
// for long and must not fail the generation call.
type Recorder interface {
	Record(record *models.GenerationRecord)
}

type recordingClient struct {
	inner    GenerationClient
	recorder Recorder
	now      func() time.Time
}

// WithRecording wraps a GenerationClient so every call produces one
// GenerationRecord. Prompt and response text are measured, never stored.
func WithRecording(inner GenerationClient, recorder Recorder) GenerationClient {
	return &recordingClient{inner: inner, recorder: recorder, now: time.Now}
}

func (r *recordingClient) Provider() string { return r.inner.Provider() }

func (r *recordingClient) Model(kind CallKind) string { return r.inner.Model(kind) }

func (r *recordingClient) Invoke(ctx context.Context, kind CallKind, prompt string) (string, error) {
	start := r.now()
	text, err := r.inner.Invoke(ctx, kind, prompt)

	record := &models.GenerationRecord{
		ID:            uuid.New(),
		Kind:          string(kind),
		Provider:      r.inner.Provider(),
		Model:         r.inner.Model(kind),
		Outcome:       models.OutcomeSucceeded,
		LatencyMs:     r.now().Sub(start).Milliseconds(),
		PromptChars:   utf8.RuneCountInString(prompt),
		ResponseChars: utf8.RuneCountInString(text),
		CreatedAt:     start,
	}
	if err != nil {
		record.Outcome = models.OutcomeFailed
		record.ErrorKind = ErrorKind(err)
		record.StatusCode = StatusCode(err)
	}

	r.recorder.Record(record)

	return text, err
}
