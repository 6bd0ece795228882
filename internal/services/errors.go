package services

import (
	"errors"
	"fmt"

	"alfredoptarigan/prepio/internal/models"
)

var (
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrMissingInput         = errors.New("missing input")
	ErrInvalidInput         = errors.New("invalid input")
	ErrMalformedOutput      = errors.New("malformed generation output")
)

// UnsupportedMediaTypeMessage is the caller-facing text for a rejected upload.
const UnsupportedMediaTypeMessage = "Unsupported file type. Please upload a PDF, DOCX, or TXT file."

// UnsupportedMediaTypeError is returned by the extractor for any declared
// type outside PDF, DOCX and plain text.
type UnsupportedMediaTypeError struct {
	MediaType models.MediaType
}

func (e *UnsupportedMediaTypeError) Error() string {
	return fmt.Sprintf("unsupported file type %q: please upload a PDF, DOCX, or TXT file", e.MediaType.String())
}

func (e *UnsupportedMediaTypeError) Unwrap() error { return ErrUnsupportedMediaType }

// InputError reports a caller input problem. Message is safe to return as is.
type InputError struct {
	Kind    error
	Message string
}

func (e *InputError) Error() string { return e.Message }

func (e *InputError) Unwrap() error { return e.Kind }

func missingInput(message string) error {
	return &InputError{Kind: ErrMissingInput, Message: message}
}

func invalidInput(message string) error {
	return &InputError{Kind: ErrInvalidInput, Message: message}
}

// ServiceUnavailableError is an upstream failure with status >= 500.
// It is transient and safe for the caller to retry later.
type ServiceUnavailableError struct {
	Code int
	Err  error
}

func (e *ServiceUnavailableError) Error() string {
	return fmt.Sprintf("generation service unavailable (status %d): %v", e.Code, e.Err)
}

func (e *ServiceUnavailableError) Unwrap() error { return e.Err }

// UpstreamRequestError is an upstream rejection with a 4xx status. It points
// at configuration (credentials, model name, request shape), not end-user input.
type UpstreamRequestError struct {
	Code int
	Err  error
}

func (e *UpstreamRequestError) Error() string {
	return fmt.Sprintf("generation request rejected (status %d): %v", e.Code, e.Err)
}

func (e *UpstreamRequestError) Unwrap() error { return e.Err }

// InternalError wraps any failure without a usable status code.
type InternalError struct {
	Err error
}

func (e *InternalError) Error() string {
	if e.Err == nil {
		return "internal error"
	}
	return fmt.Sprintf("internal error: %v", e.Err)
}

func (e *InternalError) Unwrap() error { return e.Err }

// ErrorKind names the taxonomy bucket of err, for logs and audit records.
func ErrorKind(err error) string {
	var (
		unavailable *ServiceUnavailableError
		upstream    *UpstreamRequestError
	)

	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrUnsupportedMediaType):
		return "unsupported_media_type"
	case errors.Is(err, ErrMissingInput):
		return "missing_input"
	case errors.Is(err, ErrInvalidInput):
		return "invalid_input"
	case errors.As(err, &unavailable):
		return "service_unavailable"
	case errors.As(err, &upstream):
		return "upstream_request_error"
	case errors.Is(err, ErrMalformedOutput):
		return "malformed_output"
	default:
		return "internal_error"
	}
}

// StatusCode returns the upstream status carried by err, or 0.
func StatusCode(err error) int {
	var (
		unavailable *ServiceUnavailableError
		upstream    *UpstreamRequestError
	)
	if errors.As(err, &unavailable) {
		return unavailable.Code
	}
	if errors.As(err, &upstream) {
		return upstream.Code
	}
	return 0
}

const MalformedOutputMessage = "The AI service returned an unexpected response. Please try again."

// UserMessage returns text about err that is safe to show an end user.
// fallback covers anything unclassified.
func UserMessage(err error, fallback string) string {
	var inputErr *InputError

	switch ErrorKind(err) {
	case "unsupported_media_type":
		return UnsupportedMediaTypeMessage
	case "missing_input", "invalid_input":
		if errors.As(err, &inputErr) {
			return inputErr.Message
		}
	case "service_unavailable":
		return fmt.Sprintf("The AI service is currently unavailable. Please try again later. (Status: %d)", StatusCode(err))
	case "upstream_request_error":
		return fmt.Sprintf("There was an issue with the AI service request. Please check your configuration. (Status: %d)", StatusCode(err))
	case "malformed_output":
		return MalformedOutputMessage
	}
	return fallback
}
