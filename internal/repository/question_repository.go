package repository

import (
	"learning_buddy_backend/internal/model"

	"gorm.io/gorm"
)

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

func orderedOptions(db *gorm.DB) *gorm.DB {
	return db.Order("position asc, id asc")
}

func (r *QuestionRepository) ListInterestQuestions() ([]model.InterestQuestion, error) {
	var qs []model.InterestQuestion
	err := r.DB.Preload("Options", orderedOptions).
		Order("position asc, id asc").
		Find(&qs).Error
	return qs, err
}

func (r *QuestionRepository) ListTechQuestions() ([]model.TechQuestion, error) {
	var qs []model.TechQuestion
	err := r.DB.Preload("Options", orderedOptions).
		Order("position asc, id asc").
		Find(&qs).Error
	return qs, err
}
