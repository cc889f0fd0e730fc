package app

import (
	"learning_buddy_backend/internal/config"
	"learning_buddy_backend/internal/middleware"
	"learning_buddy_backend/internal/model"
	"learning_buddy_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	a.registerPublicRoutes(router, c)

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		a.registerStudentRoutes(authGroup, c)
	}

	// 3. 管理员相关接口
	a.registerAdminRoutes(router, c, cfg)
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	api := router.Group("/api")
	{
		api.GET("/health", c.health.HealthCheck)
		api.POST("/register", c.auth.Register)
		api.POST("/login", c.auth.Login)

		// 目录（参考数据）
		api.GET("/learning-paths", c.catalog.ListPaths)
		api.GET("/learning-paths/:id", c.catalog.GetPath)
		api.GET("/courses", c.catalog.ListCourses)
		api.GET("/tutorials", c.catalog.ListTutorials)
		api.GET("/course-levels", c.catalog.ListLevels)

		// 题库
		api.GET("/questions/interest", c.question.InterestQuestions)
		api.GET("/questions/tech", c.question.TechQuestions)
	}
}

func (a *App) registerStudentRoutes(group *gin.RouterGroup, c *controllers) {
	group.GET("/profile", c.user.GetProfile)
	group.PUT("/user/profile", c.user.UpdateProfile)

	onboarding := group.Group("/onboarding")
	{
		onboarding.GET("/status", c.onboarding.Status)
		onboarding.POST("/profile", c.onboarding.SubmitProfile)
		onboarding.POST("/interests", c.onboarding.SubmitInterests)
		onboarding.POST("/tech", c.onboarding.SubmitTech)
	}

	progress := group.Group("/progress")
	{
		progress.GET("", c.progress.List)
		progress.GET("/stats", c.progress.Stats)
		progress.POST("/update", c.progress.Update)
	}

	group.GET("/recommendation", c.recommendation.Recommend)
}

func (a *App) registerAdminRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.Admin))
	{
		admin.PUT("/catalog", c.catalog.Import)
		admin.POST("/catalog/reload", c.catalog.Reload)
	}
}
