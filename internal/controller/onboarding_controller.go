package controller

import (
	"learning_buddy_backend/internal/service"
	"learning_buddy_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type OnboardingController struct {
	OnboardingService *service.OnboardingService
}

func NewOnboardingController(onboardingService *service.OnboardingService) *OnboardingController {
	return &OnboardingController{OnboardingService: onboardingService}
}

// AnswersRequest 兴趣问卷/技术测验提交
type AnswersRequest struct {
	Answers []service.AnswerInput `json:"answers" binding:"dive"`
}

// SubmitProfile godoc
// @Summary 引导第一步：职业与学习目标
// @Tags 引导
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Failure 409 {object} util.Response "当前阶段不允许该操作"
// @Router /api/onboarding/profile [post]
func (c *OnboardingController) SubmitProfile(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.ProfileInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	status, err := c.OnboardingService.SubmitProfile(claims.UserID, req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, status)
}

func (c *OnboardingController) SubmitInterests(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req AnswersRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	status, err := c.OnboardingService.SubmitInterests(claims.UserID, req.Answers)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, status)
}

// SubmitTech 完成引导并返回首批推荐
func (c *OnboardingController) SubmitTech(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req AnswersRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.OnboardingService.SubmitTech(ctx.Request.Context(), claims.UserID, req.Answers)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

func (c *OnboardingController) Status(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	status, err := c.OnboardingService.Status(claims.UserID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, status)
}
