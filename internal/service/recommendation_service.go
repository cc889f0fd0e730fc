package service

import (
	"context"
	"learning_buddy_backend/internal/engine"
	"learning_buddy_backend/internal/model"
	"learning_buddy_backend/internal/repository"
	"learning_buddy_backend/pkg/logger"
	"learning_buddy_backend/pkg/monitoring"
	"learning_buddy_backend/pkg/tracing"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

const (
	SourceAPI        = "api"
	SourceOnboarding = "onboarding"
)

type RecommendationService struct {
	Catalog      *CatalogService
	AnswerRepo   *repository.AnswerRepository
	ProgressRepo *repository.ProgressRepository

	weights atomic.Pointer[engine.Weights]
}

func NewRecommendationService(catalog *CatalogService, answerRepo *repository.AnswerRepository, progressRepo *repository.ProgressRepository, weights engine.Weights) *RecommendationService {
	s := &RecommendationService{
		Catalog:      catalog,
		AnswerRepo:   answerRepo,
		ProgressRepo: progressRepo,
	}
	s.weights.Store(&weights)
	return s
}

// SetWeights 配置热更新时调用，非法权重被拒绝并保留旧值
func (s *RecommendationService) SetWeights(w engine.Weights) error {
	if err := w.Validate(); err != nil {
		return err
	}
	s.weights.Store(&w)
	return nil
}

func (s *RecommendationService) Weights() engine.Weights {
	return *s.weights.Load()
}

// Profile builds the learner's skill profile from stored onboarding answers.
func (s *RecommendationService) Profile(ctx context.Context, userID uint) (engine.SkillProfile, error) {
	_, span := tracing.Tracer.Start(ctx, "recommendation.profile")
	defer span.End()

	catalog, err := s.Catalog.Catalog()
	if err != nil {
		return engine.SkillProfile{}, err
	}
	interestRows, err := s.AnswerRepo.ListByUser(userID, model.AnswerInterest)
	if err != nil {
		return engine.SkillProfile{}, err
	}
	techRows, err := s.AnswerRepo.ListByUser(userID, model.AnswerTech)
	if err != nil {
		return engine.SkillProfile{}, err
	}
	span.SetAttributes(
		attribute.Int("answers.interest", len(interestRows)),
		attribute.Int("answers.tech", len(techRows)),
	)

	profile, err := engine.NewProfileBuilder(catalog, s.Weights()).Build(InterestAnswers(interestRows), TechAnswers(techRows))
	if err != nil {
		span.RecordError(err)
		return engine.SkillProfile{}, err
	}
	return profile, nil
}

func (s *RecommendationService) progress(ctx context.Context, userID uint) (engine.ProgressStats, []int, error) {
	_, span := tracing.Tracer.Start(ctx, "recommendation.progress")
	defer span.End()

	rows, err := s.ProgressRepo.ListByUser(userID)
	if err != nil {
		return engine.ProgressStats{}, nil, err
	}
	records := make([]engine.ProgressRecord, 0, len(rows))
	for _, r := range rows {
		records = append(records, r.ToEngine())
	}
	stats, err := engine.Aggregate(records)
	if err != nil {
		span.RecordError(err)
		return engine.ProgressStats{}, nil, err
	}
	return stats, engine.CompletedCourseIDs(records), nil
}

// Recommend 加载画像与学习进度后排序推荐。topN 为 0 时使用默认值
func (s *RecommendationService) Recommend(ctx context.Context, userID uint, topN int, source string) (result *engine.Result, err error) {
	start := time.Now()
	ctx, span := tracing.Tracer.Start(ctx, "recommendation.Recommend")
	span.SetAttributes(
		attribute.Int("user.id", int(userID)),
		attribute.Int("top_n", topN),
		attribute.String("source", source),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
		monitoring.ObserveRecommendation(source, err, time.Since(start))
	}()

	catalog, err := s.Catalog.Catalog()
	if err != nil {
		return nil, err
	}
	profile, err := s.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}
	stats, completed, err := s.progress(ctx, userID)
	if err != nil {
		return nil, err
	}

	_, rankSpan := tracing.Tracer.Start(ctx, "recommendation.rank")
	res, err := engine.NewRanker(catalog, s.Weights()).Recommend(engine.Request{
		Profile:            profile,
		Stats:              stats,
		CompletedCourseIDs: completed,
		TopN:               topN,
	})
	rankSpan.End()
	if err != nil {
		return nil, err
	}

	logger.Log.Debug("recommendation ranked",
		zap.Uint("user_id", userID),
		zap.String("source", source),
		zap.Int("courses", len(res.RecommendedCourses)),
		zap.Stringer("tier", res.SkillAnalysis.Tier),
	)
	return &res, nil
}
