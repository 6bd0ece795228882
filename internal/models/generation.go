package models

import (
	"time"

	"github.com/google/uuid"
)

type GenerationOutcome string

const (
	OutcomeSucceeded GenerationOutcome = "succeeded"
	OutcomeFailed    GenerationOutcome = "failed"
)

// GenerationRecord is the audit entry for one generation call. Prompt and
// response text are never stored, only their sizes.
type GenerationRecord struct {
	ID            uuid.UUID         `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Kind          string            `gorm:"type:text;not null;index" json:"kind"`
	Provider      string            `gorm:"type:text" json:"provider"`
	Model         string            `gorm:"type:text" json:"model"`
	Outcome       GenerationOutcome `gorm:"type:text;not null" json:"outcome"`
	ErrorKind     string            `gorm:"type:text" json:"error_kind,omitempty"`
	StatusCode    int               `json:"status_code,omitempty"`
	LatencyMs     int64             `json:"latency_ms"`
	PromptChars   int               `json:"prompt_chars"`
	ResponseChars int               `json:"response_chars"`
	CreatedAt     time.Time         `gorm:"default:CURRENT_TIMESTAMP;index" json:"created_at"`
}

func (GenerationRecord) TableName() string {
	return "generation_records"
}
