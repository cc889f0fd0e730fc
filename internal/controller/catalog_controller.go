package controller

import (
	"io"
	"learning_buddy_backend/internal/service"
	"learning_buddy_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

// 上传目录文件的大小上限
const maxCatalogUpload = 8 << 20

type CatalogController struct {
	CatalogService *service.CatalogService
}

func NewCatalogController(catalogService *service.CatalogService) *CatalogController {
	return &CatalogController{CatalogService: catalogService}
}

// ListPaths godoc
// @Summary 学习路径列表
// @Tags 目录
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/learning-paths [get]
func (c *CatalogController) ListPaths(ctx *gin.Context) {
	paths, err := c.CatalogService.ListPaths()
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, paths)
}

// GetPath godoc
// @Summary 学习路径详情（含课程）
// @Tags 目录
// @Produce json
// @Param id path int true "学习路径ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/learning-paths/{id} [get]
func (c *CatalogController) GetPath(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil || id <= 0 {
		util.BadRequest(ctx, "无效的学习路径ID")
		return
	}

	detail, err := c.CatalogService.GetPath(id)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, detail)
}

func (c *CatalogController) ListCourses(ctx *gin.Context) {
	pathID, err := util.ParseOptionalInt(ctx.Query("lp_id"), 0)
	if err != nil || pathID < 0 {
		util.BadRequest(ctx, "无效的 lp_id")
		return
	}

	courses, err := c.CatalogService.ListCourses(pathID, ctx.Query("category"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, courses)
}

func (c *CatalogController) ListTutorials(ctx *gin.Context) {
	courseID, err := util.ParseOptionalInt(ctx.Query("course_id"), 0)
	if err != nil || courseID < 0 {
		util.BadRequest(ctx, "无效的 course_id")
		return
	}

	tutorials, err := c.CatalogService.ListTutorials(courseID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, tutorials)
}

func (c *CatalogController) ListLevels(ctx *gin.Context) {
	util.Success(ctx, c.CatalogService.Levels())
}

// Import godoc
// @Summary 导入目录数据（YAML）
// @Description 替换全部学习路径、课程、教程和题库，并通知其他实例重新加载
// @Tags 管理
// @Accept application/x-yaml
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/admin/catalog [put]
func (c *CatalogController) Import(ctx *gin.Context) {
	data, err := io.ReadAll(io.LimitReader(ctx.Request.Body, maxCatalogUpload+1))
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if len(data) > maxCatalogUpload {
		util.BadRequest(ctx, "catalog file too large")
		return
	}

	if err := c.CatalogService.Upload(ctx.Request.Context(), data); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"courses": c.CatalogService.Size()})
}

// Reload 从数据库重新加载目录索引
func (c *CatalogController) Reload(ctx *gin.Context) {
	if err := c.CatalogService.Reload(ctx.Request.Context()); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"courses": c.CatalogService.Size()})
}
