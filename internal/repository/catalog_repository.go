package repository

import (
	"learning_buddy_backend/internal/model"

	"gorm.io/gorm"
)

type CatalogRepository struct {
	DB *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{DB: db}
}

func (r *CatalogRepository) ListPaths() ([]model.LearningPath, error) {
	var paths []model.LearningPath
	err := r.DB.Order("id asc").Find(&paths).Error
	return paths, err
}

func (r *CatalogRepository) ListCourses() ([]model.Course, error) {
	var courses []model.Course
	err := r.DB.Order("id asc").Find(&courses).Error
	return courses, err
}

func (r *CatalogRepository) ListTutorials(courseID uint) ([]model.Tutorial, error) {
	var tutorials []model.Tutorial
	query := r.DB.Model(&model.Tutorial{})
	if courseID > 0 {
		query = query.Where("course_id = ?", courseID)
	}
	err := query.Order("course_id asc, position asc, id asc").Find(&tutorials).Error
	return tutorials, err
}

func (r *CatalogRepository) CountTutorials(courseID uint) (int64, error) {
	var n int64
	err := r.DB.Model(&model.Tutorial{}).Where("course_id = ?", courseID).Count(&n).Error
	return n, err
}

// CatalogSnapshot 一次完整的参考数据导入
type CatalogSnapshot struct {
	Paths             []model.LearningPath
	Courses           []model.Course
	Tutorials         []model.Tutorial
	InterestQuestions []model.InterestQuestion
	TechQuestions     []model.TechQuestion
}

// ReplaceAll 在一个事务中替换全部参考数据，导入失败时旧数据保持不变
func (r *CatalogRepository) ReplaceAll(s CatalogSnapshot) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		for _, m := range []any{
			&model.InterestOption{},
			&model.InterestQuestion{},
			&model.TechOption{},
			&model.TechQuestion{},
			&model.Tutorial{},
			&model.Course{},
			&model.LearningPath{},
		} {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(m).Error; err != nil {
				return err
			}
		}

		if len(s.Paths) > 0 {
			if err := tx.Omit("Courses").Create(&s.Paths).Error; err != nil {
				return err
			}
		}
		if len(s.Courses) > 0 {
			if err := tx.Create(&s.Courses).Error; err != nil {
				return err
			}
		}
		if len(s.Tutorials) > 0 {
			if err := tx.CreateInBatches(&s.Tutorials, 500).Error; err != nil {
				return err
			}
		}
		if len(s.InterestQuestions) > 0 {
			if err := tx.Create(&s.InterestQuestions).Error; err != nil {
				return err
			}
		}
		if len(s.TechQuestions) > 0 {
			if err := tx.Create(&s.TechQuestions).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
