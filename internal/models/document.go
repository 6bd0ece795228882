package models

import (
	"mime"
	"path/filepath"
	"strings"
)

// MediaType is the declared format of an uploaded document.
type MediaType string

const (
	MediaTypePDF       MediaType = "application/pdf"
	MediaTypeDOCX      MediaType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MediaTypePlainText MediaType = "text/plain"
	MediaTypeUnknown   MediaType = ""
)

// SupportedMediaTypes lists the accepted formats in display order.
var SupportedMediaTypes = []MediaType{MediaTypePDF, MediaTypeDOCX, MediaTypePlainText}

// ParseMediaType maps a declared Content-Type header value to a MediaType.
// Parameters such as charset are ignored. Anything not accepted keeps its
// raw value so error messages can name it; IsSupported reports false for it.
func ParseMediaType(contentType string) MediaType {
	contentType = strings.TrimSpace(contentType)
	if contentType == "" {
		return MediaTypeUnknown
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return MediaType(strings.ToLower(contentType))
	}

	return MediaType(strings.ToLower(mediaType))
}

// MediaTypeFromFilename declares a media type from a file extension. Only
// local tooling uses this; the HTTP boundary trusts the declared part header.
func MediaTypeFromFilename(name string) MediaType {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return MediaTypePDF
	case ".docx":
		return MediaTypeDOCX
	case ".txt", ".text":
		return MediaTypePlainText
	default:
		return MediaTypeUnknown
	}
}

func (m MediaType) IsSupported() bool {
	for _, supported := range SupportedMediaTypes {
		if m == supported {
			return true
		}
	}
	return false
}

func (m MediaType) String() string {
	if m == MediaTypeUnknown {
		return "unknown"
	}
	return string(m)
}

// UploadedDocument is consumed once by extraction and must not be retained.
type UploadedDocument struct {
	Filename  string
	Data      []byte
	MediaType MediaType
}

// GenerationRequest parameterises question generation.
type GenerationRequest struct {
	Category      string
	QuestionCount int
}
