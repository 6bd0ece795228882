package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"alfredoptarigan/prepio/internal/models"
)

type InterviewService interface {
	GenerateQuestions(ctx context.Context, doc *models.UploadedDocument, req models.GenerationRequest) ([]string, error)
	GetFeedback(ctx context.Context, question, answer string) (string, error)
}

// InterviewOptions carries the defaults applied to incomplete requests.
type InterviewOptions struct {
	DefaultQuestionType  string
	DefaultQuestionCount int
	StrictQuestionCount  bool
}

type interviewService struct {
	extractor     DocumentExtractor
	client        GenerationClient
	promptBuilder *PromptBuilder
	validator     *QuestionListValidator
	opts          InterviewOptions
}

func NewInterviewService(extractor DocumentExtractor, client GenerationClient, opts InterviewOptions) InterviewService {
	if opts.DefaultQuestionType == "" {
		opts.DefaultQuestionType = "General"
	}
	if opts.DefaultQuestionCount < 1 {
		opts.DefaultQuestionCount = 5
	}

	return &interviewService{
		extractor:     extractor,
		client:        client,
		promptBuilder: NewPromptBuilder(),
		validator:     NewQuestionListValidator(opts.StrictQuestionCount),
		opts:          opts,
	}
}

// ParseGenerationRequest reads the raw form values. An empty count is left
// at zero so the service default applies.
func ParseGenerationRequest(questionType, questionCount string) (models.GenerationRequest, error) {
	req := models.GenerationRequest{Category: strings.TrimSpace(questionType)}

	questionCount = strings.TrimSpace(questionCount)
	if questionCount == "" {
		return req, nil
	}

	count, err := strconv.Atoi(questionCount)
	if err != nil || count < 1 {
		return req, invalidInput("questionCount must be a positive integer.")
	}
	req.QuestionCount = count

	return req, nil
}

// GenerateQuestions runs extraction, prompt construction, the generation
// call and validation in order. Any stage failure aborts the pipeline.
func (s *interviewService) GenerateQuestions(ctx context.Context, doc *models.UploadedDocument, req models.GenerationRequest) ([]string, error) {
	if doc == nil {
		return nil, missingInput("No resume file uploaded.")
	}

	if req.Category == "" {
		req.Category = s.opts.DefaultQuestionType
	}
	switch {
	case req.QuestionCount == 0:
		req.QuestionCount = s.opts.DefaultQuestionCount
	case req.QuestionCount < 0:
		return nil, invalidInput("questionCount must be a positive integer.")
	}

	log.Debug().
		Str("filename", doc.Filename).
		Str("media_type", doc.MediaType.String()).
		Msg("📄 Extracting resume text...")

	text, err := s.extractor.Extract(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to extract resume: %w", err)
	}

	prompt := s.promptBuilder.BuildQuestionPrompt(text, req.Category, req.QuestionCount)
	log.Debug().
		Int("resume_chars", len(text)).
		Int("prompt_chars", len(prompt)).
		Str("category", req.Category).
		Int("count", req.QuestionCount).
		Msg("🤖 Generating interview questions...")

	raw, err := s.client.Invoke(ctx, CallQuestions, prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to generate questions: %w", err)
	}

	questions, err := s.validator.Parse(raw, req.QuestionCount)
	if err != nil {
		log.Error().Err(err).Int("response_chars", len(raw)).Msg("❌ Failed to parse question list")
		return nil, fmt.Errorf("failed to parse questions: %w", err)
	}

	log.Info().Int("count", len(questions)).Msg("✅ Interview questions generated")
	return questions, nil
}

// GetFeedback returns the model's markdown feedback as is. Only emptiness
// is checked.
func (s *interviewService) GetFeedback(ctx context.Context, question, answer string) (string, error) {
	if strings.TrimSpace(question) == "" || strings.TrimSpace(answer) == "" {
		return "", missingInput("Question and answer are required.")
	}

	prompt := s.promptBuilder.BuildFeedbackPrompt(question, answer)
	log.Debug().Int("prompt_chars", len(prompt)).Msg("🤖 Generating answer feedback...")

	feedback, err := s.client.Invoke(ctx, CallFeedback, prompt)
	if err != nil {
		return "", fmt.Errorf("failed to generate feedback: %w", err)
	}

	if strings.TrimSpace(feedback) == "" {
		return "", fmt.Errorf("%w: empty feedback", ErrMalformedOutput)
	}

	log.Info().Int("feedback_chars", len(feedback)).Msg("✅ Feedback generated")
	return feedback, nil
}
