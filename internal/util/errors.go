package util

import "errors"

var (
	ErrUserNotFound       = errors.New("用户不存在")
	ErrEmailRegistered    = errors.New("该邮箱已被注册")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrOnboardingStage    = errors.New("onboarding step is not available at the current stage")
	ErrOnboardingPending  = errors.New("onboarding is not complete")
	ErrQuestionNotFound   = errors.New("question not found")
	ErrOptionNotFound     = errors.New("option does not belong to question")
	ErrCourseNotFound     = errors.New("course not found")
	ErrCatalogNotLoaded   = errors.New("catalog not loaded")
)
