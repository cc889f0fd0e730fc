package repository

import (
	"learning_buddy_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

func (r *ProgressRepository) ListByUser(userID uint) ([]model.StudentProgress, error) {
	var records []model.StudentProgress
	err := r.DB.Where("user_id = ?", userID).Order("course_id asc").Find(&records).Error
	return records, err
}

func (r *ProgressRepository) FindByUserAndCourse(userID, courseID uint) (*model.StudentProgress, error) {
	var p model.StudentProgress
	err := r.DB.Where("user_id = ? AND course_id = ?", userID, courseID).First(&p).Error
	return &p, err
}

// Upsert 按 (user_id, course_id) 插入或更新
func (r *ProgressRepository) Upsert(p *model.StudentProgress) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "course_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"course_name",
			"active_tutorials",
			"completed_tutorials",
			"is_graduated",
			"exam_score",
			"updated_at",
		}),
	}).Create(p).Error
}
