package repository

import (
	"learning_buddy_backend/internal/model"

	"gorm.io/gorm"
)

type AnswerRepository struct {
	DB *gorm.DB
}

func NewAnswerRepository(db *gorm.DB) *AnswerRepository {
	return &AnswerRepository{DB: db}
}

// Replace 覆盖用户某一类答案（重新作答时使用）
func (r *AnswerRepository) Replace(tx *gorm.DB, userID uint, kind model.AnswerKind, answers []model.OnboardingAnswer) error {
	if err := tx.Unscoped().
		Where("user_id = ? AND kind = ?", userID, kind).
		Delete(&model.OnboardingAnswer{}).Error; err != nil {
		return err
	}
	if len(answers) == 0 {
		return nil
	}
	return tx.Create(&answers).Error
}

func (r *AnswerRepository) ListByUser(userID uint, kind model.AnswerKind) ([]model.OnboardingAnswer, error) {
	var answers []model.OnboardingAnswer
	err := r.DB.Where("user_id = ? AND kind = ?", userID, kind).
		Order("position asc, id asc").
		Find(&answers).Error
	return answers, err
}
