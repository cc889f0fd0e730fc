package service

import (
	"learning_buddy_backend/internal/model"
	"learning_buddy_backend/internal/util"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService_RegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)

	user := &model.User{Name: "Ayu", Email: " Ayu@Example.com ", Password: "rahasia123"}
	require.NoError(t, env.auth.Register(user))
	assert.NotZero(t, user.ID)
	assert.Equal(t, "ayu@example.com", user.Email)
	assert.NotEqual(t, "rahasia123", user.Password)
	assert.Equal(t, model.Student, user.Role)
	assert.Equal(t, model.StageCollectingProfile, user.OnboardingStage)

	dup := &model.User{Name: "Ayu", Email: "ayu@example.com", Password: "lainnya123"}
	assert.ErrorIs(t, env.auth.Register(dup), util.ErrEmailRegistered)

	token, logged, err := env.auth.Login("AYU@example.com", "rahasia123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, logged.ID)

	claims, err := util.ParseJWT(token, env.auth.Cfg.JWT.Secret)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, model.Student, claims.Role)

	stored, err := env.users.FindByID(user.ID)
	require.NoError(t, err)
	assert.NotNil(t, stored.LastLogin)

	_, _, err = env.auth.Login("ayu@example.com", "salah")
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)
	_, _, err = env.auth.Login("nobody@example.com", "rahasia123")
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)
}

func TestUserService_UpdateProfile(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "wati@example.com")
	users := NewUserService(env.users)

	goal := "Menjadi Android Developer"
	updated, err := users.UpdateProfile(user.ID, UpdateProfileInput{LearningGoal: &goal})
	require.NoError(t, err)
	assert.Equal(t, goal, updated.LearningGoal)
	assert.Equal(t, "Sari", updated.Name)

	_, err = users.GetUserByID(12345)
	assert.ErrorIs(t, err, util.ErrUserNotFound)
}
