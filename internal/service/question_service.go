package service

import (
	"learning_buddy_backend/internal/engine"
	"learning_buddy_backend/internal/model"
)

type QuestionService struct {
	Catalog *CatalogService
}

func NewQuestionService(catalog *CatalogService) *QuestionService {
	return &QuestionService{Catalog: catalog}
}

func (s *QuestionService) InterestQuestions() ([]model.InterestQuestion, error) {
	bank, err := s.Catalog.Bank()
	if err != nil {
		return nil, err
	}
	return bank.InterestQuestions(), nil
}

func (s *QuestionService) TechQuestions(category, difficulty string) ([]model.TechQuestion, error) {
	bank, err := s.Catalog.Bank()
	if err != nil {
		return nil, err
	}
	return bank.TechQuestions(category, difficulty), nil
}

func (s *QuestionService) sources() (*engine.Catalog, *QuestionBank, error) {
	catalog, err := s.Catalog.Catalog()
	if err != nil {
		return nil, nil, err
	}
	bank, err := s.Catalog.Bank()
	if err != nil {
		return nil, nil, err
	}
	return catalog, bank, nil
}

// ResolveInterest 将 (题目, 选项) 解析为兴趣类别，类别按目录拼写归一。同一选项重复提交视为非法输入
func (s *QuestionService) ResolveInterest(userID uint, inputs []AnswerInput) ([]model.OnboardingAnswer, error) {
	if len(inputs) == 0 {
		return nil, engine.InvalidInput("at least one interest answer is required")
	}
	catalog, bank, err := s.sources()
	if err != nil {
		return nil, err
	}

	seen := make(map[AnswerInput]bool, len(inputs))
	answers := make([]model.OnboardingAnswer, 0, len(inputs))
	for i, in := range inputs {
		if seen[in] {
			return nil, engine.InvalidInput("option %d of question %d submitted twice", in.OptionID, in.QuestionID)
		}
		seen[in] = true

		opt, err := bank.ResolveInterest(in.QuestionID, in.OptionID)
		if err != nil {
			return nil, err
		}
		answers = append(answers, model.OnboardingAnswer{
			UserID:     userID,
			Kind:       model.AnswerInterest,
			QuestionID: in.QuestionID,
			OptionID:   in.OptionID,
			Category:   catalog.Canonical(opt.Category),
			Position:   i,
		})
	}
	return answers, nil
}

// ResolveTech 每道技术题只能作答一次
func (s *QuestionService) ResolveTech(userID uint, inputs []AnswerInput) ([]model.OnboardingAnswer, error) {
	catalog, bank, err := s.sources()
	if err != nil {
		return nil, err
	}

	seen := make(map[uint]bool, len(inputs))
	answers := make([]model.OnboardingAnswer, 0, len(inputs))
	for i, in := range inputs {
		if seen[in.QuestionID] {
			return nil, engine.InvalidInput("tech question %d answered twice", in.QuestionID)
		}
		seen[in.QuestionID] = true

		q, opt, err := bank.ResolveTech(in.QuestionID, in.OptionID)
		if err != nil {
			return nil, err
		}
		answers = append(answers, model.OnboardingAnswer{
			UserID:     userID,
			Kind:       model.AnswerTech,
			QuestionID: in.QuestionID,
			OptionID:   in.OptionID,
			Category:   catalog.Canonical(q.Category),
			Difficulty: q.Difficulty,
			Correct:    opt.IsCorrect,
			Position:   i,
		})
	}
	return answers, nil
}
