package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alfredoptarigan/resume-screener/internal/models"
)

var (
	ErrExtractionNotFound = errors.New("extraction not found")
	// ErrAuditDisabled is returned by the no-op repository used when no
	// database is configured.
	ErrAuditDisabled = errors.New("extraction audit disabled")
)

type ExtractionRepository interface {
	Create(extraction *models.Extraction) error
	FindByID(id uuid.UUID) (*models.Extraction, error)
}

type extractionRepository struct {
	db *gorm.DB
}

func NewExtractionRepository(db *gorm.DB) ExtractionRepository {
	return &extractionRepository{db: db}
}

// Create implements ExtractionRepository.
func (r *extractionRepository) Create(extraction *models.Extraction) error {
	if extraction.ID == uuid.Nil {
		extraction.ID = uuid.New()
	}

	if err := r.db.Create(extraction).Error; err != nil {
		return fmt.Errorf("failed to create extraction: %w", err)
	}

	return nil
}

// FindByID implements ExtractionRepository.
func (r *extractionRepository) FindByID(id uuid.UUID) (*models.Extraction, error) {
	var extraction models.Extraction
	if err := r.db.Where("id = ?", id).First(&extraction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrExtractionNotFound
		}
		return nil, fmt.Errorf("failed to find extraction: %w", err)
	}

	return &extraction, nil
}

type noopExtractionRepository struct{}

// NewNoopExtractionRepository records nothing. Create reports
// ErrAuditDisabled and every lookup misses.
func NewNoopExtractionRepository() ExtractionRepository {
	return noopExtractionRepository{}
}

func (noopExtractionRepository) Create(*models.Extraction) error {
	return ErrAuditDisabled
}

func (noopExtractionRepository) FindByID(uuid.UUID) (*models.Extraction, error) {
	return nil, ErrExtractionNotFound
}
