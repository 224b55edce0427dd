package controller

import (
	"github.com/gin-gonic/gin"

	"lms_backend/internal/service"
	"lms_backend/internal/util"
)

type LevelController struct {
	LevelService *service.LevelService
}

func NewLevelController(levelService *service.LevelService) *LevelController {
	return &LevelController{LevelService: levelService}
}

type levelReq struct {
	Name string `json:"name" binding:"required"`
}

// @Summary 等级列表
// @Tags 等级管理
// @Security BearerAuth
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/levels [get]
func (c *LevelController) ListLevels(ctx *gin.Context) {
	levels, err := c.LevelService.ListAll()
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, levels)
}

// @Summary 创建等级
// @Tags 等级管理
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param level body levelReq true "等级信息"
// @Success 201 {object} util.Response
// @Router /api/admin/levels [post]
func (c *LevelController) CreateLevel(ctx *gin.Context) {
	var req levelReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	level, err := c.LevelService.Create(req.Name)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Created(ctx, level)
}

// @Summary 更新等级
// @Tags 等级管理
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "等级ID"
// @Param level body levelReq true "等级信息"
// @Success 200 {object} util.Response
// @Router /api/admin/levels/{id} [put]
func (c *LevelController) UpdateLevel(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))

	var req levelReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	level, err := c.LevelService.Update(id, req.Name)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, level)
}

// @Summary 删除等级
// @Tags 等级管理
// @Security BearerAuth
// @Produce json
// @Param id path int true "等级ID"
// @Success 200 {object} util.Response
// @Router /api/admin/levels/{id} [delete]
func (c *LevelController) DeleteLevel(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if err := c.LevelService.Delete(id); err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
