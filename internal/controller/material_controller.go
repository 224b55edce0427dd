package controller

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"lms_backend/internal/service"
	"lms_backend/internal/util"
)

type MaterialController struct {
	MaterialService *service.MaterialService
}

func NewMaterialController(materialService *service.MaterialService) *MaterialController {
	return &MaterialController{MaterialService: materialService}
}

type materialUpdateReq struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	CategoryID  uint   `json:"categoryId"`
}

// @Summary 上传学习资料
// @Tags 资料管理
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param name formData string true "资料名称"
// @Param description formData string false "描述"
// @Param categoryId formData int true "分类ID"
// @Param moduleId formData int false "所属模块"
// @Param file formData file true "附件"
// @Success 201 {object} util.Response
// @Router /api/admin/materials [post]
func (c *MaterialController) UploadMaterial(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.MaterialReq
	if err := ctx.ShouldBind(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}

	material, err := c.MaterialService.Upload(ctx.Request.Context(), claims.UserID, req, fileHeader)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Created(ctx, material)
}

// @Summary 资料列表
// @Tags 资料管理
// @Security BearerAuth
// @Produce json
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(20)
// @Param category_id query int false "按分类过滤"
// @Param module_id query int false "按模块过滤"
// @Success 200 {object} util.Response
// @Router /api/materials [get]
func (c *MaterialController) ListMaterials(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	categoryID := util.MustParseUint(ctx.Query("category_id"))
	moduleID := util.MustParseUint(ctx.Query("module_id"))

	materials, total, err := c.MaterialService.List(page, limit, categoryID, moduleID)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"items": materials, "total": total})
}

// @Summary 资料详情
// @Tags 资料管理
// @Security BearerAuth
// @Produce json
// @Param id path int true "资料ID"
// @Success 200 {object} util.Response
// @Router /api/materials/{id} [get]
func (c *MaterialController) GetMaterial(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	material, err := c.MaterialService.GetByID(id)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, material)
}

// @Summary 更新资料
// @Tags 资料管理
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "资料ID"
// @Param material body materialUpdateReq true "资料信息"
// @Success 200 {object} util.Response
// @Router /api/admin/materials/{id} [put]
func (c *MaterialController) UpdateMaterial(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))

	var req materialUpdateReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	material, err := c.MaterialService.Update(id, req.Name, req.Description, req.CategoryID)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, material)
}

// @Summary 删除资料
// @Tags 资料管理
// @Security BearerAuth
// @Produce json
// @Param id path int true "资料ID"
// @Success 200 {object} util.Response
// @Router /api/admin/materials/{id} [delete]
func (c *MaterialController) DeleteMaterial(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if err := c.MaterialService.Delete(ctx.Request.Context(), id); err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// @Summary 分类列表
// @Tags 资料管理
// @Security BearerAuth
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/categories [get]
func (c *MaterialController) ListCategories(ctx *gin.Context) {
	categories, err := c.MaterialService.ListCategories()
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, categories)
}

// @Summary 创建分类
// @Tags 资料管理
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param category body service.CategoryReq true "分类信息"
// @Success 201 {object} util.Response
// @Router /api/admin/categories [post]
func (c *MaterialController) CreateCategory(ctx *gin.Context) {
	var req service.CategoryReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	category, err := c.MaterialService.CreateCategory(req)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Created(ctx, category)
}

// @Summary 更新分类
// @Tags 资料管理
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "分类ID"
// @Param category body service.CategoryReq true "分类信息"
// @Success 200 {object} util.Response
// @Router /api/admin/categories/{id} [put]
func (c *MaterialController) UpdateCategory(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))

	var req service.CategoryReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	category, err := c.MaterialService.UpdateCategory(id, req)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, category)
}

// @Summary 删除分类
// @Tags 资料管理
// @Security BearerAuth
// @Produce json
// @Param id path int true "分类ID"
// @Success 200 {object} util.Response
// @Router /api/admin/categories/{id} [delete]
func (c *MaterialController) DeleteCategory(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if err := c.MaterialService.DeleteCategory(id); err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
