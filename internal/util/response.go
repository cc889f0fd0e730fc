package util

import (
	"errors"
	"learning_buddy_backend/internal/engine"
	"learning_buddy_backend/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Response 统一响应结构
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    data,
	})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    http.StatusCreated,
		Message: "created",
		Data:    data,
	})
}

func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
	})
}

func Unauthorized(c *gin.Context) {
	Error(c, http.StatusUnauthorized, "Unauthorized")
}

func Forbidden(c *gin.Context) {
	Error(c, http.StatusForbidden, "Forbidden")
}

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

func NotFound(c *gin.Context) {
	Error(c, http.StatusNotFound, "Resource not found")
}

func Conflict(c *gin.Context, message string) {
	Error(c, http.StatusConflict, message)
}

func InternalServerError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, "Internal server error")
}

func ServiceUnavailable(c *gin.Context, message string) {
	Error(c, http.StatusServiceUnavailable, message)
}

func LogInternalError(c *gin.Context, err error) {
	logger.Log.Error("Internal server error",
		zap.String("path", c.FullPath()),
		zap.String("request_id", c.GetString(ContextRequestIDKey)),
		zap.Error(err),
	)
	InternalServerError(c)
}

// HandleError 将业务错误映射为 HTTP 状态码，未知错误记录日志后返回 500
func HandleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, engine.ErrInvalidInput),
		errors.Is(err, ErrQuestionNotFound),
		errors.Is(err, ErrOptionNotFound):
		BadRequest(c, err.Error())
	case errors.Is(err, engine.ErrNotFound), errors.Is(err, ErrCourseNotFound):
		Error(c, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrUserNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		NotFound(c)
	case errors.Is(err, ErrInvalidCredentials):
		Error(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, ErrPermissionDenied):
		Forbidden(c)
	case errors.Is(err, ErrEmailRegistered),
		errors.Is(err, ErrOnboardingStage),
		errors.Is(err, ErrOnboardingPending):
		Conflict(c, err.Error())
	case errors.Is(err, ErrCatalogNotLoaded):
		ServiceUnavailable(c, err.Error())
	default:
		LogInternalError(c, err)
	}
}
