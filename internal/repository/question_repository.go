package repository

import (
	"exam_prep_backend/internal/model"

	"gorm.io/gorm"
)

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

func (r *QuestionRepository) Create(q *model.Question) error {
	return r.DB.Create(q).Error
}

func (r *QuestionRepository) FindByID(id uint) (*model.Question, error) {
	var q model.Question
	err := r.DB.First(&q, id).Error
	return &q, err
}

func (r *QuestionRepository) Update(q *model.Question) error {
	return r.DB.Save(q).Error
}

func (r *QuestionRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Question{}, id).Error
}

// QuestionFilter narrows listing and practice selection. Zero values are
// ignored.
type QuestionFilter struct {
	Category    string
	Subcategory string
	Difficulty  string
	Type        string
	Date        string
	Keyword     string
}

func (r *QuestionRepository) filtered(f QuestionFilter) *gorm.DB {
	query := r.DB.Model(&model.Question{}).Where("active = ?", true)
	if f.Category != "" {
		query = query.Where("category = ?", f.Category)
	}
	if f.Subcategory != "" {
		query = query.Where("subcategory = ?", f.Subcategory)
	}
	if f.Difficulty != "" {
		query = query.Where("difficulty = ?", f.Difficulty)
	}
	if f.Type != "" {
		query = query.Where("type = ?", f.Type)
	}
	if f.Date != "" {
		query = query.Where("question_date = ?", f.Date)
	}
	if f.Keyword != "" {
		query = query.Where("question LIKE ?", "%"+f.Keyword+"%")
	}
	return query
}

func (r *QuestionRepository) List(f QuestionFilter, page, pageSize int) ([]model.Question, int64, error) {
	var questions []model.Question
	var total int64

	query := r.filtered(f)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Order("created_at DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&questions).Error
	return questions, total, err
}

// FindForPractice picks up to limit random active questions matching the
// filter.
func (r *QuestionRepository) FindForPractice(f QuestionFilter, limit int) ([]model.Question, error) {
	var questions []model.Question
	err := r.filtered(f).Order("RAND()").Limit(limit).Find(&questions).Error
	return questions, err
}

func (r *QuestionRepository) Categories() ([]string, error) {
	var categories []string
	err := r.DB.Model(&model.Question{}).Where("active = ?", true).
		Distinct("category").Order("category").Pluck("category", &categories).Error
	return categories, err
}

func (r *QuestionRepository) Subcategories(category string) ([]string, error) {
	var subs []string
	err := r.DB.Model(&model.Question{}).
		Where("active = ? AND category = ? AND subcategory <> ''", true, category).
		Distinct("subcategory").Order("subcategory").Pluck("subcategory", &subs).Error
	return subs, err
}

func (r *QuestionRepository) CountByFilter(f QuestionFilter) (int64, error) {
	var total int64
	err := r.filtered(f).Count(&total).Error
	return total, err
}
