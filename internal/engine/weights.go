package engine

import (
	"maps"
	"math"
	"slices"
)

// Weights holds every tunable constant of the scoring engine.
type Weights struct {
	// profile
	InterestWeight   float64 `json:"interest_weight"`
	QuizWeight       float64 `json:"quiz_weight"`
	NeutralQuizScore float64 `json:"neutral_quiz_score"`
	WeakThreshold    float64 `json:"weak_threshold"`

	// ranking
	CategoryMatchWeight    float64 `json:"category_match_weight"`
	LevelFitWeight         float64 `json:"level_fit_weight"`
	IntermediateTierFloor  float64 `json:"intermediate_tier_floor"`
	AdvancedTierFloor      float64 `json:"advanced_tier_floor"`
	ColdStartCategoryMatch float64 `json:"cold_start_category_match"`

	DefaultTopN        int `json:"default_top_n"`
	MaxCompletedSkills int `json:"max_completed_skills"`
	MaxWeakAreas       int `json:"max_weak_areas"`
}

const (
	DefaultInterestWeight         = 0.4
	DefaultQuizWeight             = 0.6
	DefaultNeutralQuizScore       = 0.5
	DefaultWeakThreshold          = 0.5
	DefaultCategoryMatchWeight    = 0.6
	DefaultLevelFitWeight         = 0.4
	DefaultIntermediateTierFloor  = 0.33
	DefaultAdvancedTierFloor      = 0.66
	DefaultColdStartCategoryMatch = 0.5
	DefaultTopN                   = 10
	DefaultMaxCompletedSkills     = 10
	DefaultMaxWeakAreas           = 5
)

func DefaultWeights() Weights {
	return Weights{
		InterestWeight:         DefaultInterestWeight,
		QuizWeight:             DefaultQuizWeight,
		NeutralQuizScore:       DefaultNeutralQuizScore,
		WeakThreshold:          DefaultWeakThreshold,
		CategoryMatchWeight:    DefaultCategoryMatchWeight,
		LevelFitWeight:         DefaultLevelFitWeight,
		IntermediateTierFloor:  DefaultIntermediateTierFloor,
		AdvancedTierFloor:      DefaultAdvancedTierFloor,
		ColdStartCategoryMatch: DefaultColdStartCategoryMatch,
		DefaultTopN:            DefaultTopN,
		MaxCompletedSkills:     DefaultMaxCompletedSkills,
		MaxWeakAreas:           DefaultMaxWeakAreas,
	}
}

// Validate rejects weight sets that would push scores outside their ranges.
func (w Weights) Validate() error {
	unit := map[string]float64{
		"interest_weight":           w.InterestWeight,
		"quiz_weight":               w.QuizWeight,
		"neutral_quiz_score":        w.NeutralQuizScore,
		"weak_threshold":            w.WeakThreshold,
		"category_match_weight":     w.CategoryMatchWeight,
		"level_fit_weight":          w.LevelFitWeight,
		"intermediate_tier_floor":   w.IntermediateTierFloor,
		"advanced_tier_floor":       w.AdvancedTierFloor,
		"cold_start_category_match": w.ColdStartCategoryMatch,
	}
	for _, name := range slices.Sorted(maps.Keys(unit)) {
		if v := unit[name]; math.IsNaN(v) || v < 0 || v > 1 {
			return InvalidInput("%s must be within [0,1], got %v", name, v)
		}
	}
	if !nearlyEqual(w.InterestWeight+w.QuizWeight, 1) {
		return InvalidInput("interest_weight + quiz_weight must equal 1")
	}
	if !nearlyEqual(w.CategoryMatchWeight+w.LevelFitWeight, 1) {
		return InvalidInput("category_match_weight + level_fit_weight must equal 1")
	}
	if w.IntermediateTierFloor >= w.AdvancedTierFloor {
		return InvalidInput("intermediate_tier_floor must be below advanced_tier_floor")
	}
	if w.DefaultTopN <= 0 {
		return InvalidInput("default_top_n must be positive")
	}
	if w.MaxCompletedSkills < 0 || w.MaxWeakAreas < 0 {
		return InvalidInput("skill analysis limits must not be negative")
	}
	return nil
}

// tier maps an average proficiency into a level band.
func (w Weights) tier(avg float64) Level {
	switch {
	case avg >= w.AdvancedTierFloor:
		return LevelAdvanced
	case avg >= w.IntermediateTierFloor:
		return LevelIntermediate
	default:
		return LevelBasic
	}
}

func nearlyEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// round1 rounds to one decimal place.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
