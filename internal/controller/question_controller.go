package controller

import (
	"mock_interview_backend/internal/middleware"
	"mock_interview_backend/internal/service"
	"mock_interview_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuestionController struct {
	InterviewService  *service.InterviewService
	EvaluationService *service.EvaluationService
}

func NewQuestionController(interviewService *service.InterviewService, evaluationService *service.EvaluationService) *QuestionController {
	return &QuestionController{
		InterviewService:  interviewService,
		EvaluationService: evaluationService,
	}
}

// GenerateQuestions godoc
// @Summary 生成面试题
// @Description 配置了 AI 时由模型出题，否则使用内置模板；传入 interviewId 时缓存结果
// @Tags 题目
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.GenerateQuestionsRequest true "岗位信息"
// @Success 200 {object} util.Response{data=object}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response "面试不存在或不属于当前用户"
// @Router /api/questions/generate [post]
func (c *QuestionController) GenerateQuestions(ctx *gin.Context) {
	var req service.GenerateQuestionsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	questions, source, err := c.InterviewService.GenerateQuestions(ctx.Request.Context(), middleware.CurrentUserID(ctx), req)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"questions": service.ToGeneratedQuestions(questions),
		"source":    source,
	})
}

// Evaluate godoc
// @Summary 评估单个回答
// @Description 返回固定的示例评估结果
// @Tags 题目
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.EvaluationRequest true "回答内容"
// @Success 200 {object} util.Response{data=model.Evaluation}
// @Router /api/evaluation [post]
func (c *QuestionController) Evaluate(ctx *gin.Context) {
	var req service.EvaluationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	util.Success(ctx, c.EvaluationService.Evaluate(ctx.Request.Context(), req))
}
