package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"learning_buddy_backend/internal/config"
	"learning_buddy_backend/internal/engine"
	"learning_buddy_backend/internal/model"
	"learning_buddy_backend/internal/repository"
	"learning_buddy_backend/internal/util"
	"learning_buddy_backend/pkg/logger"
	"learning_buddy_backend/pkg/monitoring"
	"os"
	"sync/atomic"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CatalogService 持有当前的目录索引与题库，整体原子替换
type CatalogService struct {
	Repo         *repository.CatalogRepository
	QuestionRepo *repository.QuestionRepository
	Storage      *StorageService
	Redis        *redis.Client
	Cfg          config.CatalogConfig

	instanceID string
	catalog    atomic.Pointer[engine.Catalog]
	bank       atomic.Pointer[QuestionBank]
}

func NewCatalogService(repo *repository.CatalogRepository, questionRepo *repository.QuestionRepository, storage *StorageService, rdb *redis.Client, cfg config.CatalogConfig) *CatalogService {
	return &CatalogService{
		Repo:         repo,
		QuestionRepo: questionRepo,
		Storage:      storage,
		Redis:        rdb,
		Cfg:          cfg,
		instanceID:   uuid.NewString(),
	}
}

// Reload rebuilds the catalog index and question bank from the database.
// On failure the previous index stays in place.
func (s *CatalogService) Reload(ctx context.Context) error {
	paths, err := s.Repo.ListPaths()
	if err != nil {
		return err
	}
	courses, err := s.Repo.ListCourses()
	if err != nil {
		return err
	}

	enginePaths := make([]engine.LearningPath, 0, len(paths))
	for _, p := range paths {
		enginePaths = append(enginePaths, p.ToEngine())
	}
	engineCourses := make([]engine.Course, 0, len(courses))
	for _, c := range courses {
		ec, err := c.ToEngine()
		if err != nil {
			return err
		}
		engineCourses = append(engineCourses, ec)
	}
	catalog, err := engine.NewCatalog(enginePaths, engineCourses)
	if err != nil {
		return err
	}

	interest, err := s.QuestionRepo.ListInterestQuestions()
	if err != nil {
		return err
	}
	tech, err := s.QuestionRepo.ListTechQuestions()
	if err != nil {
		return err
	}

	s.catalog.Store(catalog)
	s.bank.Store(NewQuestionBank(interest, tech))
	monitoring.CatalogCourses.Set(float64(catalog.Len()))

	logger.Log.Info("catalog loaded",
		zap.Int("paths", len(paths)),
		zap.Int("courses", catalog.Len()),
		zap.Int("interest_questions", len(interest)),
		zap.Int("tech_questions", len(tech)),
	)
	return nil
}

func (s *CatalogService) Catalog() (*engine.Catalog, error) {
	c := s.catalog.Load()
	if c == nil {
		return nil, util.ErrCatalogNotLoaded
	}
	return c, nil
}

func (s *CatalogService) Bank() (*QuestionBank, error) {
	b := s.bank.Load()
	if b == nil {
		return nil, util.ErrCatalogNotLoaded
	}
	return b, nil
}

// Size 返回已加载课程数，未加载时为 0
func (s *CatalogService) Size() int {
	if c := s.catalog.Load(); c != nil {
		return c.Len()
	}
	return 0
}

// Import replaces all reference data with the feed, reloads the local index
// and tells the other instances to reload theirs.
func (s *CatalogService) Import(ctx context.Context, feed *CatalogFeed) error {
	if err := feed.Normalize(); err != nil {
		return err
	}
	if err := s.Repo.ReplaceAll(feed.snapshot()); err != nil {
		return err
	}
	if err := s.Reload(ctx); err != nil {
		return err
	}
	s.publishReload(ctx)
	return nil
}

func (s *CatalogService) ImportReader(ctx context.Context, r io.Reader) error {
	feed, err := ParseCatalogFeed(r)
	if err != nil {
		return err
	}
	return s.Import(ctx, feed)
}

func (s *CatalogService) ImportFile(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return s.ImportReader(ctx, f)
}

// ImportFromSource 按配置的来源（本地文件或对象存储）导入目录数据
func (s *CatalogService) ImportFromSource(ctx context.Context) error {
	if s.Cfg.Source != util.CatalogSourceMinio {
		return s.ImportFile(ctx, s.Cfg.Path)
	}
	if s.Storage == nil {
		return errors.New("catalog source is minio but storage is not configured")
	}
	obj, err := s.Storage.Open(ctx, s.Cfg.Object)
	if err != nil {
		return err
	}
	defer obj.Close()
	return s.ImportReader(ctx, obj)
}

// Upload 保存管理员上传的目录文件到对象存储后导入
func (s *CatalogService) Upload(ctx context.Context, data []byte) error {
	feed, err := ParseCatalogFeed(bytes.NewReader(data))
	if err != nil {
		return err
	}
	if s.Storage != nil {
		if _, err := s.Storage.Upload(ctx, s.Cfg.Object, bytes.NewReader(data), int64(len(data)), "application/yaml"); err != nil {
			return err
		}
	}
	return s.Import(ctx, feed)
}

func (s *CatalogService) publishReload(ctx context.Context) {
	if s.Redis == nil {
		return
	}
	if err := s.Redis.Publish(ctx, s.Cfg.ReloadChannel, s.instanceID).Err(); err != nil {
		logger.Log.Warn("publish catalog reload failed", zap.Error(err))
	}
}

// Subscribe reloads the index whenever another instance imports a catalog.
// It blocks until ctx is cancelled.
func (s *CatalogService) Subscribe(ctx context.Context) {
	if s.Redis == nil {
		return
	}
	pubsub := s.Redis.Subscribe(ctx, s.Cfg.ReloadChannel)
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			if msg.Payload == s.instanceID {
				continue
			}
			if err := s.Reload(ctx); err != nil {
				logger.Log.Error("catalog reload from broadcast failed", zap.Error(err))
			}
		}
	}
}

// PathDetail 学习路径及其课程
type PathDetail struct {
	engine.LearningPath
	Courses []engine.Course `json:"courses"`
}

func (s *CatalogService) ListPaths() ([]engine.LearningPath, error) {
	c, err := s.Catalog()
	if err != nil {
		return nil, err
	}
	return c.Paths(), nil
}

func (s *CatalogService) GetPath(id int) (*PathDetail, error) {
	c, err := s.Catalog()
	if err != nil {
		return nil, err
	}
	path, err := c.LookupPath(id)
	if err != nil {
		return nil, err
	}
	courses, err := c.CoursesForPath(id)
	if err != nil {
		return nil, err
	}
	return &PathDetail{LearningPath: path, Courses: courses}, nil
}

// ListCourses 可按学习路径和/或类别过滤，两者同时给出时取交集
func (s *CatalogService) ListCourses(pathID int, category string) ([]engine.Course, error) {
	c, err := s.Catalog()
	if err != nil {
		return nil, err
	}

	var courses []engine.Course
	switch {
	case pathID > 0:
		courses, err = c.CoursesForPath(pathID)
		if err != nil {
			return nil, err
		}
	case category != "":
		return c.CoursesByCategory(category), nil
	default:
		return c.Courses(), nil
	}

	if category == "" {
		return courses, nil
	}
	want := make(map[int]bool)
	for _, course := range c.CoursesByCategory(category) {
		want[course.ID] = true
	}
	filtered := make([]engine.Course, 0, len(courses))
	for _, course := range courses {
		if want[course.ID] {
			filtered = append(filtered, course)
		}
	}
	return filtered, nil
}

func (s *CatalogService) ListTutorials(courseID int) ([]model.Tutorial, error) {
	if courseID > 0 {
		c, err := s.Catalog()
		if err != nil {
			return nil, err
		}
		if _, err := c.LookupCourse(courseID); err != nil {
			return nil, err
		}
	}
	return s.Repo.ListTutorials(uint(courseID))
}

// LevelInfo 课程难度等级
type LevelInfo struct {
	ID   int          `json:"id"`
	Name engine.Level `json:"name"`
}

func (s *CatalogService) Levels() []LevelInfo {
	levels := engine.Levels()
	out := make([]LevelInfo, 0, len(levels))
	for _, l := range levels {
		out = append(out, LevelInfo{ID: int(l), Name: l})
	}
	return out
}
