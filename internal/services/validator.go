package services

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

const questionListSchemaURL = "schema://question-list.json"

// questionListSchema accepts a non-empty JSON array whose elements are all strings.
const questionListSchema = `{"type": "array", "items": {"type": "string"}, "minItems": 1}`

// QuestionListValidator turns raw model output into an ordered question list.
type QuestionListValidator struct {
	schema *jsonschema.Schema
	strict bool
}

// NewQuestionListValidator compiles the question list schema. With strict set,
// a list whose length differs from the requested count is rejected.
func NewQuestionListValidator(strict bool) *QuestionListValidator {
	def, err := jsonschema.UnmarshalJSON(strings.NewReader(questionListSchema))
	if err != nil {
		panic(fmt.Sprintf("question list schema: %v", err))
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource(questionListSchemaURL, def); err != nil {
		panic(fmt.Sprintf("question list schema: %v", err))
	}

	return &QuestionListValidator{
		schema: c.MustCompile(questionListSchemaURL),
		strict: strict,
	}
}

// Parse strictly decodes raw as a JSON array of strings. Order is preserved.
// expected is advisory unless the validator is strict.
func (v *QuestionListValidator) Parse(raw string, expected int) ([]string, error) {
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: invalid JSON: %v", ErrMalformedOutput, err)
	}

	if err := v.schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedOutput, err)
	}

	items := doc.([]any)
	questions := make([]string, len(items))
	for i, item := range items {
		questions[i] = item.(string)
	}

	if expected > 0 && len(questions) != expected {
		if v.strict {
			return nil, fmt.Errorf("%w: expected %d questions, got %d", ErrMalformedOutput, expected, len(questions))
		}
		log.Warn().
			Int("expected", expected).
			Int("received", len(questions)).
			Msg("⚠️ Question count differs from the requested count")
	}

	return questions, nil
}
