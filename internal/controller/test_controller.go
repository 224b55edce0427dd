package controller

import (
	"github.com/gin-gonic/gin"

	"lms_backend/internal/service"
	"lms_backend/internal/util"
)

type TestController struct {
	TestService     *service.TestService
	QuestionService *service.QuestionService
}

func NewTestController(testService *service.TestService, questionService *service.QuestionService) *TestController {
	return &TestController{TestService: testService, QuestionService: questionService}
}

type linkQuestionReq struct {
	QuestionID uint `json:"question_id" binding:"required"`
}

// @Summary 测试列表
// @Tags 测试管理
// @Security BearerAuth
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/admin/tests [get]
func (c *TestController) ListTests(ctx *gin.Context) {
	tests, err := c.TestService.ListAll()
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, tests)
}

// @Summary 创建测试
// @Tags 测试管理
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param test body service.TestReq true "测试信息"
// @Success 201 {object} util.Response
// @Router /api/admin/tests [post]
func (c *TestController) CreateTest(ctx *gin.Context) {
	var req service.TestReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	test, err := c.TestService.Create(req)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Created(ctx, test)
}

// @Summary 测试详情
// @Tags 测试管理
// @Security BearerAuth
// @Produce json
// @Param id path int true "测试ID"
// @Success 200 {object} util.Response
// @Router /api/admin/tests/{id} [get]
func (c *TestController) GetTest(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	test, err := c.TestService.GetByID(id)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, test)
}

// @Summary 更新测试
// @Tags 测试管理
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "测试ID"
// @Param test body service.TestReq true "测试信息"
// @Success 200 {object} util.Response
// @Router /api/admin/tests/{id} [put]
func (c *TestController) UpdateTest(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))

	var req service.TestReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	test, err := c.TestService.Update(id, req)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, test)
}

// @Summary 删除测试
// @Tags 测试管理
// @Security BearerAuth
// @Produce json
// @Param id path int true "测试ID"
// @Success 200 {object} util.Response
// @Router /api/admin/tests/{id} [delete]
func (c *TestController) DeleteTest(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if err := c.TestService.Delete(id); err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// @Summary 测试下的题目
// @Tags 测试管理
// @Security BearerAuth
// @Produce json
// @Param id path int true "测试ID"
// @Success 200 {object} util.Response
// @Router /api/admin/tests/{id}/questions [get]
func (c *TestController) ListTestQuestions(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	entries, err := c.TestService.ListQuestions(id)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, entries)
}

// @Summary 挂接题目到测试
// @Tags 测试管理
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "测试ID"
// @Param link body linkQuestionReq true "题目ID"
// @Success 201 {object} util.Response
// @Router /api/admin/tests/{id}/questions [post]
func (c *TestController) LinkQuestion(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))

	var req linkQuestionReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	link, err := c.TestService.LinkQuestion(id, req.QuestionID)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Created(ctx, link)
}

// @Summary 解绑测试题目
// @Tags 测试管理
// @Security BearerAuth
// @Produce json
// @Param linkId path int true "关联ID"
// @Success 200 {object} util.Response
// @Router /api/admin/test-questions/{linkId} [delete]
func (c *TestController) UnlinkQuestion(ctx *gin.Context) {
	linkID := util.MustParseUint(ctx.Param("linkId"))
	if err := c.TestService.UnlinkQuestion(linkID); err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// @Summary 出题可选主题
// @Tags 测试管理
// @Security BearerAuth
// @Produce json
// @Param id path int true "测试ID"
// @Success 200 {object} util.Response
// @Router /api/admin/tests/{id}/topics [get]
func (c *TestController) ListSelectableTopics(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	topics, err := c.QuestionService.ListSelectableTopics(id)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, topics)
}
