package service

import (
	"context"
	"errors"
	"learning_buddy_backend/internal/engine"
	"learning_buddy_backend/internal/model"
	"learning_buddy_backend/internal/repository"
	"learning_buddy_backend/internal/util"
	"learning_buddy_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// OnboardingService 驱动引导流程状态机：个人信息 -> 兴趣问卷 -> 技术测验 -> 完成
type OnboardingService struct {
	DB             *gorm.DB
	UserRepo       *repository.UserRepository
	AnswerRepo     *repository.AnswerRepository
	Questions      *QuestionService
	Recommendation *RecommendationService
}

func NewOnboardingService(db *gorm.DB, userRepo *repository.UserRepository, answerRepo *repository.AnswerRepository, questions *QuestionService, recommendation *RecommendationService) *OnboardingService {
	return &OnboardingService{
		DB:             db,
		UserRepo:       userRepo,
		AnswerRepo:     answerRepo,
		Questions:      questions,
		Recommendation: recommendation,
	}
}

type ProfileInput struct {
	Name         string `json:"name"`
	Occupation   string `json:"occupation" binding:"required,max=100"`
	LearningGoal string `json:"learning_goal" binding:"required,max=255"`
}

type OnboardingStatus struct {
	Stage         model.OnboardingStage `json:"stage"`
	Completed     bool                  `json:"completed"`
	InterestCount int                   `json:"interest_answers"`
	TechCount     int                   `json:"tech_answers"`
}

type OnboardingResult struct {
	Stage           model.OnboardingStage `json:"stage"`
	PrimaryInterest string                `json:"primary_interest"`
	Recommendation  *engine.Result        `json:"recommendation"`
}

func (s *OnboardingService) user(userID uint) (*model.User, error) {
	user, err := s.UserRepo.FindByID(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrUserNotFound
	}
	return user, err
}

func (s *OnboardingService) requireStage(userID uint, stage model.OnboardingStage) error {
	user, err := s.user(userID)
	if err != nil {
		return err
	}
	if user.OnboardingStage != stage {
		return util.ErrOnboardingStage
	}
	return nil
}

// advance 在事务中执行 fn 并把阶段从 from 推进到下一阶段
func (s *OnboardingService) advance(userID uint, from model.OnboardingStage, fn func(tx *gorm.DB) error) (model.OnboardingStage, error) {
	to, ok := from.Next()
	if !ok {
		return "", util.ErrOnboardingStage
	}
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		moved, err := s.UserRepo.AdvanceStage(tx, userID, from, to)
		if err != nil {
			return err
		}
		if !moved {
			return util.ErrOnboardingStage
		}
		return fn(tx)
	})
	if err != nil {
		return "", err
	}
	return to, nil
}

func (s *OnboardingService) SubmitProfile(userID uint, in ProfileInput) (*OnboardingStatus, error) {
	if err := s.requireStage(userID, model.StageCollectingProfile); err != nil {
		return nil, err
	}

	stage, err := s.advance(userID, model.StageCollectingProfile, func(tx *gorm.DB) error {
		updates := map[string]any{
			"occupation":    in.Occupation,
			"learning_goal": in.LearningGoal,
		}
		if in.Name != "" {
			updates["name"] = in.Name
		}
		return tx.Model(&model.User{}).Where("id = ?", userID).Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}
	return &OnboardingStatus{Stage: stage}, nil
}

func (s *OnboardingService) SubmitInterests(userID uint, inputs []AnswerInput) (*OnboardingStatus, error) {
	if err := s.requireStage(userID, model.StageCollectingInterests); err != nil {
		return nil, err
	}
	answers, err := s.Questions.ResolveInterest(userID, inputs)
	if err != nil {
		return nil, err
	}

	stage, err := s.advance(userID, model.StageCollectingInterests, func(tx *gorm.DB) error {
		return s.AnswerRepo.Replace(tx, userID, model.AnswerInterest, answers)
	})
	if err != nil {
		return nil, err
	}
	return &OnboardingStatus{Stage: stage, InterestCount: len(answers)}, nil
}

// SubmitTech 保存技术测验答案并完成引导，返回首选兴趣和首批推荐
func (s *OnboardingService) SubmitTech(ctx context.Context, userID uint, inputs []AnswerInput) (*OnboardingResult, error) {
	if err := s.requireStage(userID, model.StageCollectingTechAnswers); err != nil {
		return nil, err
	}
	answers, err := s.Questions.ResolveTech(userID, inputs)
	if err != nil {
		return nil, err
	}

	stage, err := s.advance(userID, model.StageCollectingTechAnswers, func(tx *gorm.DB) error {
		return s.AnswerRepo.Replace(tx, userID, model.AnswerTech, answers)
	})
	if err != nil {
		return nil, err
	}

	interests, err := s.AnswerRepo.ListByUser(userID, model.AnswerInterest)
	if err != nil {
		return nil, err
	}
	rec, err := s.Recommendation.Recommend(ctx, userID, 0, SourceOnboarding)
	if err != nil {
		return nil, err
	}

	primary := engine.PrimaryInterest(InterestAnswers(interests))
	logger.Log.Info("onboarding completed",
		zap.Uint("user_id", userID),
		zap.String("primary_interest", primary),
	)
	return &OnboardingResult{
		Stage:           stage,
		PrimaryInterest: primary,
		Recommendation:  rec,
	}, nil
}

func (s *OnboardingService) Status(userID uint) (*OnboardingStatus, error) {
	user, err := s.user(userID)
	if err != nil {
		return nil, err
	}
	interests, err := s.AnswerRepo.ListByUser(userID, model.AnswerInterest)
	if err != nil {
		return nil, err
	}
	tech, err := s.AnswerRepo.ListByUser(userID, model.AnswerTech)
	if err != nil {
		return nil, err
	}
	return &OnboardingStatus{
		Stage:         user.OnboardingStage,
		Completed:     user.OnboardingCompleted(),
		InterestCount: len(interests),
		TechCount:     len(tech),
	}, nil
}
