package repository

import (
	"learning_buddy_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(user *model.User) error {
	if user.OnboardingStage == "" {
		user.OnboardingStage = model.StageCollectingProfile
	}
	if user.Role == "" {
		user.Role = model.Student
	}
	return r.DB.Create(user).Error
}

func (r *UserRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	err := r.DB.First(&user, id).Error
	return &user, err
}

func (r *UserRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("email = ?", email).First(&user).Error
	return &user, err
}

func (r *UserRepository) Update(user *model.User) error {
	return r.DB.Save(user).Error
}

func (r *UserRepository) TouchLastLogin(userID uint) error {
	return r.DB.Model(&model.User{}).
		Where("id = ?", userID).
		Update("last_login", time.Now()).
		Error
}

// AdvanceStage 仅当当前阶段等于 from 时才更新，防止并发请求跳过阶段
func (r *UserRepository) AdvanceStage(tx *gorm.DB, userID uint, from, to model.OnboardingStage) (bool, error) {
	res := tx.Model(&model.User{}).
		Where("id = ? AND onboarding_stage = ?", userID, from).
		Update("onboarding_stage", to)
	return res.RowsAffected == 1, res.Error
}
