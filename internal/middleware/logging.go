package middleware

import (
	"learning_buddy_backend/internal/util"
	"learning_buddy_backend/pkg/logger"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func AccessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("request_id", c.GetString(util.ContextRequestIDKey)),
		}
		if claims := util.GetUserFromContext(c); claims != nil {
			fields = append(fields, zap.Uint("user_id", claims.UserID))
		}
		if c.Writer.Status() >= 500 {
			logger.Log.Warn("request failed", fields...)
			return
		}
		logger.Log.Info("request", fields...)
	}
}
