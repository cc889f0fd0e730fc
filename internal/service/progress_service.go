package service

import (
	"learning_buddy_backend/internal/engine"
	"learning_buddy_backend/internal/model"
	"learning_buddy_backend/internal/repository"
)

type ProgressService struct {
	Repo    *repository.ProgressRepository
	Catalog *CatalogService
}

func NewProgressService(repo *repository.ProgressRepository, catalog *CatalogService) *ProgressService {
	return &ProgressService{Repo: repo, Catalog: catalog}
}

type ProgressInput struct {
	CourseID           uint     `json:"course_id" binding:"required"`
	ActiveTutorials    int      `json:"active_tutorials"`
	CompletedTutorials int      `json:"completed_tutorials"`
	IsGraduated        bool     `json:"is_graduated"`
	ExamScore          *float64 `json:"exam_score"`
}

func (s *ProgressService) List(userID uint) ([]model.StudentProgress, error) {
	return s.Repo.ListByUser(userID)
}

func (s *ProgressService) Stats(userID uint) (engine.ProgressStats, error) {
	rows, err := s.Repo.ListByUser(userID)
	if err != nil {
		return engine.ProgressStats{}, err
	}
	records := make([]engine.ProgressRecord, 0, len(rows))
	for _, r := range rows {
		records = append(records, r.ToEngine())
	}
	return engine.Aggregate(records)
}

// Update 按 (用户, 课程) 插入或更新进度，课程必须存在于目录中
func (s *ProgressService) Update(userID uint, in ProgressInput) (*model.StudentProgress, error) {
	catalog, err := s.Catalog.Catalog()
	if err != nil {
		return nil, err
	}
	course, err := catalog.LookupCourse(int(in.CourseID))
	if err != nil {
		return nil, err
	}

	p := &model.StudentProgress{
		UserID:             userID,
		CourseID:           in.CourseID,
		CourseName:         course.Name,
		ActiveTutorials:    in.ActiveTutorials,
		CompletedTutorials: in.CompletedTutorials,
		IsGraduated:        in.IsGraduated,
		ExamScore:          in.ExamScore,
	}
	// 复用聚合时的记录校验（计数非负、分数范围）
	if _, err := engine.Aggregate([]engine.ProgressRecord{p.ToEngine()}); err != nil {
		return nil, err
	}

	if err := s.Repo.Upsert(p); err != nil {
		return nil, err
	}
	return s.Repo.FindByUserAndCourse(userID, in.CourseID)
}
