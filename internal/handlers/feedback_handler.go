package handlers

import (
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/prepio/internal/models"
	"alfredoptarigan/prepio/internal/services"
)

type FeedbackHandler struct {
	interviewService services.InterviewService
}

func NewFeedbackHandler(interviewService services.InterviewService) *FeedbackHandler {
	return &FeedbackHandler{
		interviewService: interviewService,
	}
}

// HandleGetFeedback handles POST /api/get-feedback
func (h *FeedbackHandler) HandleGetFeedback(c *fiber.Ctx) error {
	var req models.FeedbackRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: "Invalid request payload",
		})
	}

	feedback, err := h.interviewService.GetFeedback(c.UserContext(), req.Question, req.Answer)
	if err != nil {
		return writeServiceError(c, err, "An internal server error occurred while getting feedback.")
	}

	return c.JSON(models.FeedbackResponse{Feedback: feedback})
}
