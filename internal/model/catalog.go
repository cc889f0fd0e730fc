package model

import (
	"learning_buddy_backend/internal/engine"
)

// swagger:model LearningPath
type LearningPath struct {
	ID         uint     `gorm:"primaryKey;autoIncrement:false" json:"learning_path_id" yaml:"id"`
	Name       string   `gorm:"size:255;not null" json:"learning_path_name" yaml:"name"`
	Categories []string `gorm:"serializer:json;type:text" json:"categories" yaml:"categories"`
	Courses    []Course `gorm:"foreignKey:LearningPathID" json:"-" yaml:"-"`
}

func (LearningPath) TableName() string {
	return "learning_paths"
}

func (p LearningPath) ToEngine() engine.LearningPath {
	return engine.LearningPath{ID: int(p.ID), Name: p.Name, Categories: p.Categories}
}

// swagger:model Course
type Course struct {
	ID             uint     `gorm:"primaryKey;autoIncrement:false" json:"course_id" yaml:"id"`
	LearningPathID uint     `gorm:"index;not null" json:"learning_path_id" yaml:"learning_path_id"`
	Name           string   `gorm:"size:255;not null" json:"course_name" yaml:"name"`
	LevelLabel     string   `gorm:"column:course_level_str;size:32;not null" json:"course_level_str" yaml:"level"`
	HoursToStudy   float64  `gorm:"not null" json:"hours_to_study" yaml:"hours"`
	Categories     []string `gorm:"serializer:json;type:text" json:"categories" yaml:"categories"`
}

func (Course) TableName() string {
	return "courses"
}

func (c Course) ToEngine() (engine.Course, error) {
	level, err := engine.ParseLevel(c.LevelLabel)
	if err != nil {
		return engine.Course{}, err
	}
	return engine.Course{
		ID:             int(c.ID),
		LearningPathID: int(c.LearningPathID),
		Name:           c.Name,
		Level:          level,
		Hours:          c.HoursToStudy,
		Categories:     c.Categories,
	}, nil
}

// swagger:model Tutorial
type Tutorial struct {
	ID       uint   `gorm:"primaryKey;autoIncrement:false" json:"tutorial_id" yaml:"id"`
	CourseID uint   `gorm:"index;not null" json:"course_id" yaml:"course_id"`
	Title    string `gorm:"size:255;not null" json:"tutorial_title" yaml:"title"`
	Position int    `gorm:"default:0" json:"position" yaml:"position"`
}

func (Tutorial) TableName() string {
	return "tutorials"
}
