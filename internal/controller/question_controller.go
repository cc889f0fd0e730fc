package controller

import (
	"learning_buddy_backend/internal/service"
	"learning_buddy_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuestionController struct {
	QuestionService *service.QuestionService
}

func NewQuestionController(questionService *service.QuestionService) *QuestionController {
	return &QuestionController{QuestionService: questionService}
}

func (c *QuestionController) InterestQuestions(ctx *gin.Context) {
	questions, err := c.QuestionService.InterestQuestions()
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, questions)
}

func (c *QuestionController) TechQuestions(ctx *gin.Context) {
	questions, err := c.QuestionService.TechQuestions(ctx.Query("category"), ctx.Query("difficulty"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, questions)
}
