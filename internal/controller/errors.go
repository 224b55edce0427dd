package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"lms_backend/internal/util"
)

// handleServiceError 把业务层哨兵错误映射到对应的 HTTP 状态码
func handleServiceError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrQuestionTextRequired),
		errors.Is(err, util.ErrTopicRequired),
		errors.Is(err, util.ErrOptionCount),
		errors.Is(err, util.ErrOneCorrectOption),
		errors.Is(err, util.ErrCorrectNotLinked),
		errors.Is(err, util.ErrTopicOutsideModule),
		errors.Is(err, util.ErrEmptySubmission):
		util.BadRequest(ctx, err.Error())
	case errors.Is(err, util.ErrUserNotFound),
		errors.Is(err, util.ErrTestNotFound),
		errors.Is(err, util.ErrModuleNotFound),
		errors.Is(err, util.ErrModuleTestMissing),
		errors.Is(err, util.ErrEntranceTestNotSetup),
		errors.Is(err, gorm.ErrRecordNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrEmailRegistered),
		errors.Is(err, util.ErrOptionAlreadyLinked),
		errors.Is(err, util.ErrEntranceCompleted),
		errors.Is(err, util.ErrTestAlreadyPassed):
		util.Conflict(ctx, err.Error())
	case errors.Is(err, util.ErrModuleLocked),
		errors.Is(err, util.ErrEntranceNotCompleted):
		util.Error(ctx, http.StatusForbidden, err.Error())
	case errors.Is(err, util.ErrUnauthorized):
		util.Unauthorized(ctx)
	default:
		util.LogInternalError(ctx, err)
	}
}
