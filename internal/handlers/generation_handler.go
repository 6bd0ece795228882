package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"alfredoptarigan/prepio/internal/models"
	"alfredoptarigan/prepio/internal/repositories"
)

const (
	defaultGenerationLimit = 20
	maxGenerationLimit     = 100
)

type GenerationHandler struct {
	generationRepo repositories.GenerationRepository
}

func NewGenerationHandler(generationRepo repositories.GenerationRepository) *GenerationHandler {
	return &GenerationHandler{
		generationRepo: generationRepo,
	}
}

// HandleListGenerations handles GET /api/generations
func (h *GenerationHandler) HandleListGenerations(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", defaultGenerationLimit)
	if limit < 1 {
		limit = defaultGenerationLimit
	}
	if limit > maxGenerationLimit {
		limit = maxGenerationLimit
	}

	records, err := h.generationRepo.FindRecent(limit)
	if err != nil {
		log.Error().Err(err).Msg("❌ Failed to list generation records")
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{
			Error: "Failed to list generation records",
		})
	}

	if records == nil {
		records = []models.GenerationRecord{}
	}

	return c.JSON(models.GenerationListResponse{
		Generations: records,
		Count:       len(records),
	})
}

// HandleGetGeneration handles GET /api/generations/:id
func (h *GenerationHandler) HandleGetGeneration(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: "Invalid generation ID format",
		})
	}

	record, err := h.generationRepo.FindByID(id)
	if errors.Is(err, repositories.ErrRecordNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse{
			Error: "Generation record not found",
		})
	}
	if err != nil {
		log.Error().Err(err).Str("id", id.String()).Msg("❌ Failed to load generation record")
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{
			Error: "Failed to load generation record",
		})
	}

	return c.JSON(record)
}
