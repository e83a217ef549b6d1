package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/lumeo-edu/assess-go-api/internal/models"
)

// AssessmentFilter narrows audit record queries.
type AssessmentFilter struct {
	Kind     string
	Page     int
	PageSize int
}

// AssessmentRepository defines data operations for assessment audit records.
type AssessmentRepository interface {
	Create(ctx context.Context, record *models.AssessmentRecord) error
	GetByReference(ctx context.Context, referenceID string) (models.AssessmentRecord, error)
	List(ctx context.Context, filter AssessmentFilter) ([]models.AssessmentRecord, int64, error)
}

type assessmentRepository struct {
	db *gorm.DB
}

// NewAssessmentRepository instantiates the repository.
func NewAssessmentRepository(db *gorm.DB) AssessmentRepository {
	return &assessmentRepository{db: db}
}

func (r *assessmentRepository) Create(ctx context.Context, record *models.AssessmentRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *assessmentRepository) GetByReference(ctx context.Context, referenceID string) (models.AssessmentRecord, error) {
	var record models.AssessmentRecord
	if err := r.db.WithContext(ctx).Where("reference_id = ?", referenceID).First(&record).Error; err != nil {
		return models.AssessmentRecord{}, err
	}
	return record, nil
}

func (r *assessmentRepository) List(ctx context.Context, filter AssessmentFilter) ([]models.AssessmentRecord, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.AssessmentRecord{})

	if filter.Kind != "" {
		query = query.Where("kind = ?", filter.Kind)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	pageSize := filter.PageSize
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}

	var records []models.AssessmentRecord
	if err := query.Order("created_at DESC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&records).Error; err != nil {
		return nil, 0, err
	}

	return records, total, nil
}
