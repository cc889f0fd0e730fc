package service

import (
	"fmt"
	"learning_buddy_backend/internal/engine"
	"learning_buddy_backend/internal/model"
	"learning_buddy_backend/internal/util"
	"strings"
)

// QuestionBank 题目 -> 选项的只读索引，加载时构建，答案按 (题目, 选项) 解析
type QuestionBank struct {
	interest     []model.InterestQuestion
	tech         []model.TechQuestion
	interestByID map[uint]model.InterestQuestion
	techByID     map[uint]model.TechQuestion
}

func NewQuestionBank(interest []model.InterestQuestion, tech []model.TechQuestion) *QuestionBank {
	b := &QuestionBank{
		interest:     interest,
		tech:         tech,
		interestByID: make(map[uint]model.InterestQuestion, len(interest)),
		techByID:     make(map[uint]model.TechQuestion, len(tech)),
	}
	for _, q := range interest {
		b.interestByID[q.ID] = q
	}
	for _, q := range tech {
		b.techByID[q.ID] = q
	}
	return b
}

func (b *QuestionBank) InterestQuestions() []model.InterestQuestion {
	out := make([]model.InterestQuestion, len(b.interest))
	copy(out, b.interest)
	return out
}

// TechQuestions filters by category and difficulty, both case-insensitive.
// Empty filters match everything.
func (b *QuestionBank) TechQuestions(category, difficulty string) []model.TechQuestion {
	out := make([]model.TechQuestion, 0, len(b.tech))
	for _, q := range b.tech {
		if category != "" && !strings.EqualFold(q.Category, category) {
			continue
		}
		if difficulty != "" && !strings.EqualFold(q.Difficulty, difficulty) {
			continue
		}
		out = append(out, q)
	}
	return out
}

func (b *QuestionBank) ResolveInterest(questionID, optionID uint) (model.InterestOption, error) {
	q, ok := b.interestByID[questionID]
	if !ok {
		return model.InterestOption{}, fmt.Errorf("%w: interest question %d", util.ErrQuestionNotFound, questionID)
	}
	for _, o := range q.Options {
		if o.ID == optionID {
			return o, nil
		}
	}
	return model.InterestOption{}, fmt.Errorf("%w: option %d, interest question %d", util.ErrOptionNotFound, optionID, questionID)
}

func (b *QuestionBank) ResolveTech(questionID, optionID uint) (model.TechQuestion, model.TechOption, error) {
	q, ok := b.techByID[questionID]
	if !ok {
		return model.TechQuestion{}, model.TechOption{}, fmt.Errorf("%w: tech question %d", util.ErrQuestionNotFound, questionID)
	}
	for _, o := range q.Options {
		if o.ID == optionID {
			return q, o, nil
		}
	}
	return model.TechQuestion{}, model.TechOption{}, fmt.Errorf("%w: option %d, tech question %d", util.ErrOptionNotFound, optionID, questionID)
}

// AnswerInput 用户提交的一条答案
type AnswerInput struct {
	QuestionID uint `json:"question_id" binding:"required"`
	OptionID   uint `json:"option_id" binding:"required"`
}

// InterestAnswers converts stored answers for the profile builder.
func InterestAnswers(answers []model.OnboardingAnswer) []engine.InterestAnswer {
	out := make([]engine.InterestAnswer, 0, len(answers))
	for _, a := range answers {
		out = append(out, engine.InterestAnswer{Category: a.Category})
	}
	return out
}

func TechAnswers(answers []model.OnboardingAnswer) []engine.TechAnswer {
	out := make([]engine.TechAnswer, 0, len(answers))
	for _, a := range answers {
		out = append(out, engine.TechAnswer{
			Category:   a.Category,
			Difficulty: a.Difficulty,
			Correct:    a.Correct,
			Score:      a.Score,
		})
	}
	return out
}
