package repository

import (
	"exam_prep_backend/internal/model"

	"gorm.io/gorm"
)

type IngestJobRepository struct {
	DB *gorm.DB
}

func NewIngestJobRepository(db *gorm.DB) *IngestJobRepository {
	return &IngestJobRepository{DB: db}
}

func (r *IngestJobRepository) Create(job *model.IngestJob) error {
	return r.DB.Create(job).Error
}

func (r *IngestJobRepository) List(page, pageSize int) ([]model.IngestJob, int64, error) {
	var jobs []model.IngestJob
	var total int64

	query := r.DB.Model(&model.IngestJob{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Order("created_at DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&jobs).Error
	return jobs, total, err
}

func (r *IngestJobRepository) FindByID(id uint) (*model.IngestJob, error) {
	var job model.IngestJob
	err := r.DB.First(&job, id).Error
	return &job, err
}
