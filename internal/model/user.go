package model

import (
	"time"
)

type UserRole string

const (
	Student UserRole = "student"
	Admin   UserRole = "admin"
)

// swagger:model User
type User struct {
	BaseModel
	Name            string          `gorm:"size:100;not null" json:"name"`
	Email           string          `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Password        string          `gorm:"size:100;not null" json:"-"`
	Role            UserRole        `gorm:"size:20;default:'student'" json:"role"`
	Occupation      string          `gorm:"size:100" json:"occupation"`
	LearningGoal    string          `gorm:"size:255" json:"learningGoal"`
	OnboardingStage OnboardingStage `gorm:"size:32;default:'collecting_profile'" json:"onboardingStage"`
	LastLogin       *time.Time      `json:"lastLogin,omitempty"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) OnboardingCompleted() bool {
	return u.OnboardingStage == StageReady
}
