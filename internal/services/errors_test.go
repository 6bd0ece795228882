package services

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorKind(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{&UnsupportedMediaTypeError{MediaType: "image/png"}, "unsupported_media_type"},
		{missingInput("No resume file uploaded."), "missing_input"},
		{invalidInput("bad count"), "invalid_input"},
		{fmt.Errorf("wrap: %w", &ServiceUnavailableError{Code: 503}), "service_unavailable"},
		{fmt.Errorf("wrap: %w", &UpstreamRequestError{Code: 403}), "upstream_request_error"},
		{fmt.Errorf("%w: not json", ErrMalformedOutput), "malformed_output"},
		{&InternalError{Err: errors.New("boom")}, "internal_error"},
		{errors.New("anything else"), "internal_error"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ErrorKind(tt.err), "%v", tt.err)
	}
}

func TestStatusCode(t *testing.T) {
	assert.Equal(t, 502, StatusCode(fmt.Errorf("x: %w", &ServiceUnavailableError{Code: 502})))
	assert.Equal(t, 404, StatusCode(&UpstreamRequestError{Code: 404}))
	assert.Zero(t, StatusCode(&InternalError{}))
	assert.Zero(t, StatusCode(nil))
}

func TestInputErrorMessage(t *testing.T) {
	err := missingInput("Question and answer are required.")
	assert.Equal(t, "Question and answer are required.", err.Error())
	assert.ErrorIs(t, err, ErrMissingInput)
	assert.NotErrorIs(t, err, ErrInvalidInput)
}

func TestUserMessage(t *testing.T) {
	assert.Equal(t, UnsupportedMediaTypeMessage, UserMessage(&UnsupportedMediaTypeError{MediaType: "image/png"}, "x"))
	assert.Equal(t, "No resume file uploaded.", UserMessage(missingInput("No resume file uploaded."), "x"))
	assert.Contains(t, UserMessage(&ServiceUnavailableError{Code: 503}, "x"), "(Status: 503)")
	assert.Contains(t, UserMessage(&UpstreamRequestError{Code: 401}, "x"), "(Status: 401)")
	assert.Equal(t, MalformedOutputMessage, UserMessage(fmt.Errorf("%w: junk", ErrMalformedOutput), "x"))
	assert.Equal(t, "fallback", UserMessage(&InternalError{Err: errors.New("db password wrong")}, "fallback"))
}
