package repository

import (
	"time"

	"exam_prep_backend/internal/model"

	"gorm.io/gorm"
)

type TestRepository struct {
	DB *gorm.DB
}

func NewTestRepository(db *gorm.DB) *TestRepository {
	return &TestRepository{DB: db}
}

// Create stores the test and its question links in one transaction.
func (r *TestRepository) Create(test *model.MockTest, questionIDs []uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(test).Error; err != nil {
			return err
		}
		links := make([]model.MockTestQuestion, 0, len(questionIDs))
		for i, qid := range questionIDs {
			links = append(links, model.MockTestQuestion{
				TestID:     test.ID,
				QuestionID: qid,
				Order:      i + 1,
			})
		}
		if len(links) > 0 {
			if err := tx.Create(&links).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *TestRepository) FindByID(id string) (*model.MockTest, error) {
	var test model.MockTest
	err := r.DB.Where("id = ?", id).First(&test).Error
	return &test, err
}

// FindQuestions returns the test's questions in their configured order.
func (r *TestRepository) FindQuestions(testID string) ([]model.MockTestQuestion, error) {
	var links []model.MockTestQuestion
	err := r.DB.Preload("Question").
		Where("test_id = ?", testID).Order("`order` ASC").
		Find(&links).Error
	return links, err
}

func (r *TestRepository) List(category string, publishedOnly bool, page, pageSize int) ([]model.MockTest, int64, error) {
	var tests []model.MockTest
	var total int64

	query := r.DB.Model(&model.MockTest{})
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if publishedOnly {
		query = query.Where("is_published = ?", true)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Order("created_at DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&tests).Error
	return tests, total, err
}

func (r *TestRepository) Update(test *model.MockTest) error {
	return r.DB.Save(test).Error
}

func (r *TestRepository) Publish(testID string) error {
	now := time.Now()
	return r.DB.Model(&model.MockTest{}).Where("id = ?", testID).
		Updates(map[string]interface{}{
			"is_published": true,
			"published_at": now,
		}).Error
}

func (r *TestRepository) Delete(testID string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("test_id = ?", testID).Delete(&model.MockTestQuestion{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", testID).Delete(&model.MockTest{}).Error
	})
}

func (r *TestRepository) CountQuestions(testID string) (int64, error) {
	var total int64
	err := r.DB.Model(&model.MockTestQuestion{}).Where("test_id = ?", testID).Count(&total).Error
	return total, err
}
