package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alfredoptarigan/prepio/internal/models"
)

var ErrRecordNotFound = errors.New("generation record not found")

type GenerationRepository interface {
	Create(record *models.GenerationRecord) error
	FindByID(id uuid.UUID) (*models.GenerationRecord, error)
	FindRecent(limit int) ([]models.GenerationRecord, error)
}

type generationRepository struct {
	db *gorm.DB
}

func NewGenerationRepository(db *gorm.DB) GenerationRepository {
	return &generationRepository{db: db}
}

func (r *generationRepository) Create(record *models.GenerationRecord) error {
	if err := r.db.Create(record).Error; err != nil {
		return fmt.Errorf("failed to create generation record: %w", err)
	}
	return nil
}

func (r *generationRepository) FindByID(id uuid.UUID) (*models.GenerationRecord, error) {
	var record models.GenerationRecord
	if err := r.db.Where("id = ?", id).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to find generation record: %w", err)
	}
	return &record, nil
}

// FindRecent returns the newest records first.
func (r *generationRepository) FindRecent(limit int) ([]models.GenerationRecord, error) {
	var records []models.GenerationRecord
	if err := r.db.Order("created_at DESC").Limit(limit).Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list generation records: %w", err)
	}
	return records, nil
}
