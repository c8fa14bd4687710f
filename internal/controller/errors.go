package controller

import (
	"errors"
	"mock_interview_backend/internal/repository"
	"mock_interview_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// respondError 将 service 层错误映射为 HTTP 响应
func respondError(ctx *gin.Context, err error) {
	var qe *util.QueryError
	switch {
	case errors.As(err, &qe):
		util.ErrorWithDetails(ctx, 500, qe.Message, qe.Err.Error())
	case errors.Is(err, util.ErrNotConfigured):
		util.ServiceUnavailable(ctx, "Database not configured")
	case errors.Is(err, util.ErrInterviewNotFound):
		util.NotFound(ctx, "Interview not found")
	case errors.Is(err, util.ErrQuestionNotFound):
		util.NotFound(ctx, "Question not found")
	case errors.Is(err, repository.ErrUserNotFound):
		util.NotFound(ctx, "User not found")
	case errors.Is(err, util.ErrInvalidTransition),
		errors.Is(err, util.ErrNotInProgress),
		errors.Is(err, util.ErrNoQuestions):
		util.Conflict(ctx, err.Error())
	case errors.Is(err, util.ErrInvalidFileType),
		errors.Is(err, util.ErrInvalidVideoExt),
		errors.Is(err, util.ErrInvalidResumeExt):
		util.BadRequest(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}
