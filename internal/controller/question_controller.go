package controller

import (
	"github.com/gin-gonic/gin"

	"lms_backend/internal/service"
	"lms_backend/internal/util"
)

type QuestionController struct {
	QuestionService *service.QuestionService
}

func NewQuestionController(questionService *service.QuestionService) *QuestionController {
	return &QuestionController{QuestionService: questionService}
}

type optionUpdateReq struct {
	Value string `json:"value" binding:"required"`
}

type linkOptionReq struct {
	OptionID uint `json:"option_id" binding:"required"`
}

// @Summary 创建题目
// @Tags 题库管理
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param question body service.CreateQuestionReq true "题目、选项与目标测试"
// @Success 201 {object} util.Response
// @Router /api/admin/questions [post]
func (c *QuestionController) CreateQuestion(ctx *gin.Context) {
	var req service.CreateQuestionReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	detail, err := c.QuestionService.Create(req)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Created(ctx, detail)
}

// @Summary 题目详情
// @Tags 题库管理
// @Security BearerAuth
// @Produce json
// @Param id path int true "题目ID"
// @Success 200 {object} util.Response
// @Router /api/admin/questions/{id} [get]
func (c *QuestionController) GetQuestion(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	detail, err := c.QuestionService.GetDetail(id)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, detail)
}

// @Summary 更新题目
// @Tags 题库管理
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "题目ID"
// @Param question body service.UpdateQuestionReq true "标量字段"
// @Success 200 {object} util.Response
// @Router /api/admin/questions/{id} [put]
func (c *QuestionController) UpdateQuestion(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))

	var req service.UpdateQuestionReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	question, err := c.QuestionService.Update(id, req)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, question)
}

// @Summary 删除题目
// @Tags 题库管理
// @Security BearerAuth
// @Produce json
// @Param id path int true "题目ID"
// @Success 200 {object} util.Response
// @Router /api/admin/questions/{id} [delete]
func (c *QuestionController) DeleteQuestion(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if err := c.QuestionService.Delete(id); err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// @Summary 题目的选项
// @Tags 题库管理
// @Security BearerAuth
// @Produce json
// @Param id path int true "题目ID"
// @Success 200 {object} util.Response
// @Router /api/admin/questions/{id}/options [get]
func (c *QuestionController) ListOptions(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	options, err := c.QuestionService.ListOptions(id)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, options)
}

// @Summary 挂接已有选项到题目
// @Tags 题库管理
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "题目ID"
// @Param link body linkOptionReq true "选项ID"
// @Success 201 {object} util.Response
// @Router /api/admin/questions/{id}/options [post]
func (c *QuestionController) LinkOption(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	var req linkOptionReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	link, err := c.QuestionService.LinkOption(id, req.OptionID)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Created(ctx, link)
}

// @Summary 解绑题目选项
// @Tags 题库管理
// @Security BearerAuth
// @Produce json
// @Param linkId path int true "关联ID"
// @Success 200 {object} util.Response
// @Router /api/admin/question-options/{linkId} [delete]
func (c *QuestionController) UnlinkOption(ctx *gin.Context) {
	linkID := util.MustParseUint(ctx.Param("linkId"))
	if err := c.QuestionService.UnlinkOption(linkID); err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// @Summary 更新选项
// @Tags 题库管理
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "选项ID"
// @Param option body optionUpdateReq true "选项内容"
// @Success 200 {object} util.Response
// @Router /api/admin/options/{id} [put]
func (c *QuestionController) UpdateOption(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))

	var req optionUpdateReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	option, err := c.QuestionService.UpdateOption(id, req.Value)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, option)
}

// @Summary 删除选项
// @Tags 题库管理
// @Security BearerAuth
// @Produce json
// @Param id path int true "选项ID"
// @Success 200 {object} util.Response
// @Router /api/admin/options/{id} [delete]
func (c *QuestionController) DeleteOption(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if err := c.QuestionService.DeleteOption(id); err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
