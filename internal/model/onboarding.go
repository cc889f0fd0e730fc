package model

// OnboardingStage 引导流程状态机:
// collecting_profile -> collecting_interests -> collecting_tech_answers -> ready
type OnboardingStage string

const (
	StageCollectingProfile     OnboardingStage = "collecting_profile"
	StageCollectingInterests   OnboardingStage = "collecting_interests"
	StageCollectingTechAnswers OnboardingStage = "collecting_tech_answers"
	StageReady                 OnboardingStage = "ready"
)

var nextStage = map[OnboardingStage]OnboardingStage{
	StageCollectingProfile:     StageCollectingInterests,
	StageCollectingInterests:   StageCollectingTechAnswers,
	StageCollectingTechAnswers: StageReady,
}

// Next returns the stage that follows s, or false when s is terminal or unknown.
func (s OnboardingStage) Next() (OnboardingStage, bool) {
	next, ok := nextStage[s]
	return next, ok
}

type AnswerKind string

const (
	AnswerInterest AnswerKind = "interest"
	AnswerTech     AnswerKind = "tech"
)

// OnboardingAnswer 保存已解析的答案（类别/难度/正误），题目变更不影响历史画像
type OnboardingAnswer struct {
	BaseModel
	UserID     uint       `gorm:"index;not null" json:"userId"`
	Kind       AnswerKind `gorm:"size:16;index;not null" json:"kind"`
	QuestionID uint       `json:"questionId"`
	OptionID   uint       `json:"optionId"`
	Category   string     `gorm:"size:100;not null" json:"category"`
	Difficulty string     `gorm:"size:32" json:"difficulty,omitempty"`
	Correct    bool       `json:"correct"`
	Score      *float64   `json:"score,omitempty"`
	Position   int        `json:"position"`
}

func (OnboardingAnswer) TableName() string {
	return "onboarding_answers"
}
