package controller

import (
	"learning_buddy_backend/internal/service"
	"learning_buddy_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type RecommendationController struct {
	RecommendationService *service.RecommendationService
}

func NewRecommendationController(recommendationService *service.RecommendationService) *RecommendationController {
	return &RecommendationController{RecommendationService: recommendationService}
}

// Recommend godoc
// @Summary 个性化课程与学习路径推荐
// @Tags 推荐
// @Produce json
// @Security ApiKeyAuth
// @Param top_n query int false "返回课程数，默认 10"
// @Success 200 {object} util.Response{data=engine.Result}
// @Router /api/recommendation [get]
func (c *RecommendationController) Recommend(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	topN, err := util.ParseOptionalInt(ctx.Query("top_n"), 0)
	if err != nil {
		util.BadRequest(ctx, "top_n must be an integer")
		return
	}

	result, err := c.RecommendationService.Recommend(ctx.Request.Context(), claims.UserID, topN, service.SourceAPI)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, result)
}
