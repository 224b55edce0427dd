package controller

import (
	"github.com/gin-gonic/gin"

	"lms_backend/internal/model"
	"lms_backend/internal/service"
	"lms_backend/internal/util"
)

type AssessmentController struct {
	AssessmentService *service.AssessmentService
	ProgressService   *service.ProgressService
}

func NewAssessmentController(assessmentService *service.AssessmentService, progressService *service.ProgressService) *AssessmentController {
	return &AssessmentController{AssessmentService: assessmentService, ProgressService: progressService}
}

type submissionReq struct {
	Answers []model.SelectedAnswer `json:"answers"`
}

// @Summary 入学测试或模块列表
// @Description 未定级学员返回入学测试题目，已定级学员返回模块列表
// @Tags 测评
// @Security BearerAuth
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/assessment [get]
func (c *AssessmentController) GetEntranceTestOrModules(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	resp, err := c.AssessmentService.GetEntranceTestOrModules(claims.UserID)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, resp)
}

// @Summary 提交入学测试
// @Tags 测评
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param submission body submissionReq true "作答"
// @Success 200 {object} util.Response
// @Router /api/assessment/entrance [post]
func (c *AssessmentController) SubmitEntranceTest(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req submissionReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.AssessmentService.SubmitEntranceTest(claims.UserID, req.Answers)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// @Summary 学员模块列表
// @Tags 测评
// @Security BearerAuth
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/modules [get]
func (c *AssessmentController) GetUserModules(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	modules, err := c.AssessmentService.GetUserModules(claims.UserID)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, modules)
}

// @Summary 模块测试
// @Tags 测评
// @Security BearerAuth
// @Produce json
// @Param id path int true "模块ID"
// @Success 200 {object} util.Response
// @Router /api/modules/{id}/test [get]
func (c *AssessmentController) GetModuleTest(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	moduleID := util.MustParseUint(ctx.Param("id"))
	payload, err := c.AssessmentService.GetModuleTest(ctx.Request.Context(), claims.UserID, moduleID)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, payload)
}

// @Summary 提交模块测试
// @Tags 测评
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "模块ID"
// @Param submission body submissionReq true "作答"
// @Success 200 {object} util.Response
// @Router /api/modules/{id}/test [post]
func (c *AssessmentController) SubmitModuleTest(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	moduleID := util.MustParseUint(ctx.Param("id"))

	var req submissionReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.AssessmentService.SubmitModuleTest(claims.UserID, moduleID, req.Answers)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// @Summary 学习进度
// @Tags 测评
// @Security BearerAuth
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/progress [get]
func (c *AssessmentController) GetProgress(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	record, err := c.ProgressService.GetProgress(claims.UserID)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, record)
}
