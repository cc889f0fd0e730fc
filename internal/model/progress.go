package model

import "learning_buddy_backend/internal/engine"

// StudentProgress 每个 (用户, 课程) 一条记录
type StudentProgress struct {
	BaseModel
	UserID             uint     `gorm:"uniqueIndex:idx_progress_user_course;not null" json:"userId"`
	CourseID           uint     `gorm:"uniqueIndex:idx_progress_user_course;not null" json:"course_id"`
	CourseName         string   `gorm:"size:255" json:"course_name"`
	ActiveTutorials    int      `gorm:"default:0" json:"active_tutorials"`
	CompletedTutorials int      `gorm:"default:0" json:"completed_tutorials"`
	IsGraduated        bool     `gorm:"default:false" json:"is_graduated"`
	ExamScore          *float64 `json:"exam_score,omitempty"`
}

func (StudentProgress) TableName() string {
	return "student_progress"
}

func (p StudentProgress) ToEngine() engine.ProgressRecord {
	return engine.ProgressRecord{
		CourseID:           int(p.CourseID),
		CourseName:         p.CourseName,
		ActiveTutorials:    p.ActiveTutorials,
		CompletedTutorials: p.CompletedTutorials,
		IsGraduated:        p.IsGraduated,
		ExamScore:          p.ExamScore,
	}
}
