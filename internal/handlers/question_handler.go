package handlers

import (
	"fmt"
	"io"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/prepio/internal/models"
	"alfredoptarigan/prepio/internal/services"
)

// ResumeField is the multipart field carrying the résumé file.
const ResumeField = "resume"

type QuestionHandler struct {
	interviewService services.InterviewService
	maxFileSize      int64
}

func NewQuestionHandler(interviewService services.InterviewService, maxFileSize int64) *QuestionHandler {
	return &QuestionHandler{
		interviewService: interviewService,
		maxFileSize:      maxFileSize,
	}
}

// HandleGenerateQuestions handles POST /api/generate-questions
func (h *QuestionHandler) HandleGenerateQuestions(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile(ResumeField)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: "No resume file uploaded.",
		})
	}

	if fileHeader.Size > h.maxFileSize {
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(models.ErrorResponse{
			Error: fmt.Sprintf("Resume file too large. Max size: %d bytes", h.maxFileSize),
		})
	}

	req, err := services.ParseGenerationRequest(c.FormValue("questionType"), c.FormValue("questionCount"))
	if err != nil {
		return writeServiceError(c, err, "An internal server error occurred.")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return writeServiceError(c, fmt.Errorf("failed to open upload: %w", err), "An internal server error occurred.")
	}
	data, err := io.ReadAll(file)
	file.Close()
	if err != nil {
		return writeServiceError(c, fmt.Errorf("failed to read upload: %w", err), "An internal server error occurred.")
	}

	doc := &models.UploadedDocument{
		Filename:  fileHeader.Filename,
		Data:      data,
		MediaType: models.ParseMediaType(fileHeader.Header.Get(fiber.HeaderContentType)),
	}

	questions, err := h.interviewService.GenerateQuestions(c.UserContext(), doc, req)
	if err != nil {
		return writeServiceError(c, err, "An internal server error occurred.")
	}

	return c.JSON(models.QuestionsResponse{Questions: questions})
}
