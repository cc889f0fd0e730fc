package service

import (
	"context"
	"learning_buddy_backend/internal/config"
	"learning_buddy_backend/internal/engine"
	"learning_buddy_backend/internal/model"
	"learning_buddy_backend/internal/repository"
	"learning_buddy_backend/pkg/database"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const (
	catAI  = "Artificial Intelligence"
	catWeb = "Web Development"
)

// testFeed: two paths, three Intermediate courses, a two-question interest
// survey and a small tech quiz.
const testFeed = `
learning_paths:
  - id: 1
    name: AI Engineer
    categories: [Artificial Intelligence]
  - id: 2
    name: Back-End Developer
    categories: [Web Development]
courses:
  - {id: 11, learning_path_id: 1, name: Machine Learning Terapan, level: Menengah, hours: 30}
  - {id: 12, learning_path_id: 1, name: Belajar Pengembangan ML Operations, level: Menengah, hours: 20}
  - {id: 21, learning_path_id: 2, name: Belajar Back-End Pemula, level: Menengah, hours: 25}
tutorials:
  - {id: 1, course_id: 11, title: Regresi}
  - {id: 2, course_id: 11, title: Klasifikasi}
  - {id: 3, course_id: 21, title: HTTP Dasar}
interest_questions:
  - id: 1
    question: Apa yang ingin kamu bangun?
    options:
      - {id: 1, text: Model prediksi, category: Artificial Intelligence}
      - {id: 2, text: Website, category: Web Development}
  - id: 2
    question: Peran impianmu?
    options:
      - {id: 3, text: ML Engineer, category: artificial intelligence}
      - {id: 4, text: Back-End Developer, category: Web Development}
tech_questions:
  - id: 1
    question: Tujuan data training?
    category: Artificial Intelligence
    difficulty: Basic
    options:
      - {id: 1, text: Melatih model, correct: true}
      - {id: 2, text: Menyimpan prediksi}
  - id: 2
    question: Mencegah overfitting?
    category: Artificial Intelligence
    difficulty: intermediate
    options:
      - {id: 3, text: Regularisasi, correct: true}
      - {id: 4, text: Menghapus data validasi}
  - id: 3
    question: Tag untuk tautan?
    category: Web Development
    difficulty: basic
    options:
      - {id: 5, text: "<a>", correct: true}
      - {id: 6, text: "<href>"}
`

type testEnv struct {
	db             *gorm.DB
	users          *repository.UserRepository
	catalog        *CatalogService
	questions      *QuestionService
	recommendation *RecommendationService
	onboarding     *OnboardingService
	progress       *ProgressService
	auth           *AuthService
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := database.OpenMemory(name)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := openTestDB(t)

	cfg := &config.Config{
		JWT:     config.JWTConfig{Secret: "test-secret", ExpireTime: time.Hour},
		Catalog: newTestCatalogConfig(),
	}
	userRepo := repository.NewUserRepository(db)
	answerRepo := repository.NewAnswerRepository(db)
	progressRepo := repository.NewProgressRepository(db)

	env := &testEnv{db: db, users: userRepo}
	env.catalog = NewCatalogService(repository.NewCatalogRepository(db), repository.NewQuestionRepository(db), nil, nil, cfg.Catalog)
	env.questions = NewQuestionService(env.catalog)
	env.recommendation = NewRecommendationService(env.catalog, answerRepo, progressRepo, engine.DefaultWeights())
	env.onboarding = NewOnboardingService(db, userRepo, answerRepo, env.questions, env.recommendation)
	env.progress = NewProgressService(progressRepo, env.catalog)
	env.auth = NewAuthService(userRepo, cfg)

	require.NoError(t, env.catalog.ImportReader(context.Background(), strings.NewReader(testFeed)))
	return env
}

func (e *testEnv) createUser(t *testing.T, email string) *model.User {
	t.Helper()
	u := &model.User{Name: "Sari", Email: email, Password: "rahasia123"}
	require.NoError(t, e.auth.Register(u))
	return u
}

func answer(questionID, optionID uint) AnswerInput {
	return AnswerInput{QuestionID: questionID, OptionID: optionID}
}

func newTestCatalogConfig() config.CatalogConfig {
	return config.CatalogConfig{Source: "file", Object: "catalog.yaml", ReloadChannel: "catalog:reload"}
}

func newTestStorageConfig(dir string) *config.StorageConfig {
	return &config.StorageConfig{Type: "local", LocalPath: dir}
}
