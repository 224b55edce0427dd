package controller

import (
	"github.com/gin-gonic/gin"

	"lms_backend/internal/service"
	"lms_backend/internal/util"
)

type ModuleController struct {
	ModuleService *service.ModuleService
}

func NewModuleController(moduleService *service.ModuleService) *ModuleController {
	return &ModuleController{ModuleService: moduleService}
}

// @Summary 模块列表
// @Tags 模块管理
// @Security BearerAuth
// @Produce json
// @Param level_id query int false "按等级过滤"
// @Success 200 {object} util.Response
// @Router /api/admin/modules [get]
func (c *ModuleController) ListModules(ctx *gin.Context) {
	levelID := util.MustParseUint(ctx.Query("level_id"))

	var err error
	var modules interface{}
	if levelID > 0 {
		modules, err = c.ModuleService.ListByLevel(levelID)
	} else {
		modules, err = c.ModuleService.ListAll()
	}
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, modules)
}

// @Summary 创建模块
// @Tags 模块管理
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param module body service.ModuleReq true "模块信息"
// @Success 201 {object} util.Response
// @Router /api/admin/modules [post]
func (c *ModuleController) CreateModule(ctx *gin.Context) {
	var req service.ModuleReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	module, err := c.ModuleService.Create(req)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Created(ctx, module)
}

// @Summary 模块详情
// @Tags 模块管理
// @Security BearerAuth
// @Produce json
// @Param id path int true "模块ID"
// @Success 200 {object} util.Response
// @Router /api/admin/modules/{id} [get]
func (c *ModuleController) GetModule(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	module, err := c.ModuleService.GetByID(id)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, module)
}

// @Summary 更新模块
// @Tags 模块管理
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "模块ID"
// @Param module body service.ModuleReq true "模块信息"
// @Success 200 {object} util.Response
// @Router /api/admin/modules/{id} [put]
func (c *ModuleController) UpdateModule(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))

	var req service.ModuleReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	module, err := c.ModuleService.Update(id, req)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, module)
}

// @Summary 删除模块
// @Tags 模块管理
// @Security BearerAuth
// @Produce json
// @Param id path int true "模块ID"
// @Success 200 {object} util.Response
// @Router /api/admin/modules/{id} [delete]
func (c *ModuleController) DeleteModule(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if err := c.ModuleService.Delete(id); err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// @Summary 主题列表
// @Tags 模块管理
// @Security BearerAuth
// @Produce json
// @Param module_id query int false "按模块过滤"
// @Success 200 {object} util.Response
// @Router /api/admin/topics [get]
func (c *ModuleController) ListTopics(ctx *gin.Context) {
	moduleID := util.MustParseUint(ctx.Query("module_id"))
	topics, err := c.ModuleService.ListTopics(moduleID)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, topics)
}

// @Summary 创建主题
// @Tags 模块管理
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param topic body service.TopicReq true "主题信息"
// @Success 201 {object} util.Response
// @Router /api/admin/topics [post]
func (c *ModuleController) CreateTopic(ctx *gin.Context) {
	var req service.TopicReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	topic, err := c.ModuleService.CreateTopic(req)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Created(ctx, topic)
}

// @Summary 更新主题
// @Tags 模块管理
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "主题ID"
// @Param topic body service.TopicReq true "主题信息"
// @Success 200 {object} util.Response
// @Router /api/admin/topics/{id} [put]
func (c *ModuleController) UpdateTopic(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))

	var req service.TopicReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	topic, err := c.ModuleService.UpdateTopic(id, req)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, topic)
}

// @Summary 删除主题
// @Tags 模块管理
// @Security BearerAuth
// @Produce json
// @Param id path int true "主题ID"
// @Success 200 {object} util.Response
// @Router /api/admin/topics/{id} [delete]
func (c *ModuleController) DeleteTopic(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if err := c.ModuleService.DeleteTopic(id); err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
