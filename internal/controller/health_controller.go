package controller

import (
	"learning_buddy_backend/internal/service"
	"learning_buddy_backend/internal/util"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type HealthController struct {
	DB      *gorm.DB
	Catalog *service.CatalogService
}

func NewHealthController(db *gorm.DB, catalog *service.CatalogService) *HealthController {
	return &HealthController{DB: db, Catalog: catalog}
}

// @Summary 健康检查
// @Description 检查数据库连接与目录索引
// @Tags 系统
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/health [get]
func (c *HealthController) HealthCheck(ctx *gin.Context) {
	// 检查数据库连接
	sqlDB, err := c.DB.DB()
	if err != nil {
		util.InternalServerError(ctx)
		return
	}

	if err := sqlDB.PingContext(ctx.Request.Context()); err != nil {
		util.Error(ctx, http.StatusServiceUnavailable, "Database unavailable")
		return
	}

	catalogStatus := "up"
	if _, err := c.Catalog.Catalog(); err != nil {
		catalogStatus = "not_loaded"
	}

	util.Success(ctx, gin.H{
		"status": "ok",
		"components": gin.H{
			"database": "up",
			"catalog":  catalogStatus,
		},
		"catalog_courses": c.Catalog.Size(),
	})
}
