package service

import (
	"context"
	"learning_buddy_backend/internal/engine"
	"learning_buddy_backend/internal/model"
	"learning_buddy_backend/internal/util"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completeProfileStep(t *testing.T, env *testEnv, userID uint) {
	t.Helper()
	status, err := env.onboarding.SubmitProfile(userID, ProfileInput{Occupation: "Mahasiswa", LearningGoal: "Menjadi ML Engineer"})
	require.NoError(t, err)
	assert.Equal(t, model.StageCollectingInterests, status.Stage)
}

func TestOnboarding_FullFlow(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "sari@example.com")
	ctx := context.Background()

	completeProfileStep(t, env, user.ID)

	status, err := env.onboarding.SubmitInterests(user.ID, []AnswerInput{
		answer(1, 1), // AI
		answer(2, 3), // AI, lower-case spelling in the question bank
		answer(1, 2), // Web
	})
	require.NoError(t, err)
	assert.Equal(t, model.StageCollectingTechAnswers, status.Stage)
	assert.Equal(t, 3, status.InterestCount)

	result, err := env.onboarding.SubmitTech(ctx, user.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, model.StageReady, result.Stage)
	assert.Equal(t, catAI, result.PrimaryInterest)

	// interest-only profile: AI 0.7, Web 0.5, Intermediate tier
	rec := result.Recommendation
	require.NotNil(t, rec)
	require.Len(t, rec.RecommendedCourses, 3)
	ids := []int{rec.RecommendedCourses[0].Course.ID, rec.RecommendedCourses[1].Course.ID, rec.RecommendedCourses[2].Course.ID}
	assert.Equal(t, []int{21, 12, 11}, ids)
	assert.Equal(t, 70.0, rec.RecommendedCourses[0].Score)
	assert.Equal(t, engine.LevelIntermediate, rec.SkillAnalysis.Tier)

	final, err := env.onboarding.Status(user.ID)
	require.NoError(t, err)
	assert.True(t, final.Completed)
	assert.Equal(t, 3, final.InterestCount)
	assert.Equal(t, 0, final.TechCount)

	stored, err := env.users.FindByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Mahasiswa", stored.Occupation)
	assert.Equal(t, "Sari", stored.Name)
}

func TestOnboarding_TechAnswersShapeTheProfile(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "budi@example.com")
	ctx := context.Background()

	completeProfileStep(t, env, user.ID)
	_, err := env.onboarding.SubmitInterests(user.ID, []AnswerInput{answer(1, 1), answer(2, 3), answer(1, 2)})
	require.NoError(t, err)

	result, err := env.onboarding.SubmitTech(ctx, user.ID, []AnswerInput{
		answer(1, 1), // AI basic, correct
		answer(2, 4), // AI intermediate, wrong
		answer(3, 5), // Web basic, correct
	})
	require.NoError(t, err)

	// AI 0.4*1 + 0.6*0.5 = 0.7, Web 0.4*0.5 + 0.6*1 = 0.8; the mean puts the
	// learner in the Advanced tier so Intermediate courses get half level fit.
	profile, err := env.recommendation.Profile(ctx, user.ID)
	require.NoError(t, err)
	assert.InDelta(t, 0.7, profile.Proficiency[catAI], 1e-9)
	assert.InDelta(t, 0.8, profile.Proficiency[catWeb], 1e-9)
	assert.Empty(t, profile.WeakAreas)

	rec := result.Recommendation
	require.Len(t, rec.RecommendedCourses, 3)
	assert.Equal(t, engine.LevelAdvanced, rec.SkillAnalysis.Tier)
	assert.Equal(t, 12, rec.RecommendedCourses[0].Course.ID)
	assert.Equal(t, 11, rec.RecommendedCourses[1].Course.ID)
	assert.Equal(t, 21, rec.RecommendedCourses[2].Course.ID)
	assert.Equal(t, 38.0, rec.RecommendedCourses[0].Score)
	assert.Equal(t, 32.0, rec.RecommendedCourses[2].Score)
}

func TestOnboarding_StepsMustRunInOrder(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "rina@example.com")
	ctx := context.Background()

	_, err := env.onboarding.SubmitInterests(user.ID, []AnswerInput{answer(1, 1)})
	assert.ErrorIs(t, err, util.ErrOnboardingStage)

	_, err = env.onboarding.SubmitTech(ctx, user.ID, nil)
	assert.ErrorIs(t, err, util.ErrOnboardingStage)

	completeProfileStep(t, env, user.ID)

	_, err = env.onboarding.SubmitProfile(user.ID, ProfileInput{Occupation: "x", LearningGoal: "y"})
	assert.ErrorIs(t, err, util.ErrOnboardingStage)

	_, err = env.onboarding.SubmitTech(ctx, user.ID, nil)
	assert.ErrorIs(t, err, util.ErrOnboardingStage)

	status, err := env.onboarding.Status(user.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StageCollectingInterests, status.Stage)
	assert.False(t, status.Completed)
}

func TestOnboarding_RejectsBadAnswersWithoutAdvancing(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "dewi@example.com")
	completeProfileStep(t, env, user.ID)

	cases := []struct {
		name    string
		answers []AnswerInput
		want    error
	}{
		{"empty", nil, engine.ErrInvalidInput},
		{"unknown question", []AnswerInput{answer(99, 1)}, util.ErrQuestionNotFound},
		{"option of another question", []AnswerInput{answer(1, 3)}, util.ErrOptionNotFound},
		{"duplicate option", []AnswerInput{answer(1, 1), answer(1, 1)}, engine.ErrInvalidInput},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := env.onboarding.SubmitInterests(user.ID, tc.answers)
			assert.ErrorIs(t, err, tc.want)
		})
	}

	status, err := env.onboarding.Status(user.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StageCollectingInterests, status.Stage)
	assert.Equal(t, 0, status.InterestCount)
}

func TestOnboarding_TechQuestionAnsweredTwice(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "agus@example.com")
	completeProfileStep(t, env, user.ID)
	_, err := env.onboarding.SubmitInterests(user.ID, []AnswerInput{answer(1, 1)})
	require.NoError(t, err)

	_, err = env.onboarding.SubmitTech(context.Background(), user.ID, []AnswerInput{answer(1, 1), answer(1, 2)})
	assert.ErrorIs(t, err, engine.ErrInvalidInput)
}

func TestOnboarding_UnknownUser(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.onboarding.Status(404)
	assert.ErrorIs(t, err, util.ErrUserNotFound)

	_, err = env.onboarding.SubmitProfile(404, ProfileInput{Occupation: "x", LearningGoal: "y"})
	assert.ErrorIs(t, err, util.ErrUserNotFound)
}
