package service

import (
	"errors"
	"learning_buddy_backend/internal/model"
	"learning_buddy_backend/internal/repository"
	"learning_buddy_backend/internal/util"

	"gorm.io/gorm"
)

type UserService struct {
	UserRepo *repository.UserRepository
}

func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{UserRepo: userRepo}
}

type UpdateProfileInput struct {
	Name         *string `json:"name" binding:"omitempty,min=1,max=100"`
	Occupation   *string `json:"occupation" binding:"omitempty,max=100"`
	LearningGoal *string `json:"learning_goal" binding:"omitempty,max=255"`
}

func (s *UserService) GetUserByID(id uint) (*model.User, error) {
	user, err := s.UserRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrUserNotFound
	}
	return user, err
}

func (s *UserService) UpdateProfile(id uint, in UpdateProfileInput) (*model.User, error) {
	user, err := s.GetUserByID(id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		user.Name = *in.Name
	}
	if in.Occupation != nil {
		user.Occupation = *in.Occupation
	}
	if in.LearningGoal != nil {
		user.LearningGoal = *in.LearningGoal
	}
	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}
