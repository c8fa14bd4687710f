package controller

import (
	"mock_interview_backend/internal/middleware"
	"mock_interview_backend/internal/service"
	"mock_interview_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type InterviewController struct {
	InterviewService *service.InterviewService
	RecordingService *service.RecordingService
}

func NewInterviewController(interviewService *service.InterviewService, recordingService *service.RecordingService) *InterviewController {
	return &InterviewController{
		InterviewService: interviewService,
		RecordingService: recordingService,
	}
}

// swagger:model AnswerRequest
type AnswerRequest struct {
	Transcript string `json:"transcript" binding:"required"`
}

// ListInterviews godoc
// @Summary 面试列表
// @Tags 面试
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=object} "interviews 按创建时间倒序"
// @Failure 500 {object} util.Response
// @Router /api/interviews [get]
func (c *InterviewController) ListInterviews(ctx *gin.Context) {
	interviews, err := c.InterviewService.List(ctx.Request.Context(), middleware.CurrentUserID(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"interviews": interviews})
}

// CreateInterview godoc
// @Summary 创建面试草稿
// @Tags 面试
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.CreateInterviewRequest true "岗位信息"
// @Success 201 {object} util.Response{data=object}
// @Failure 400 {object} util.Response
// @Router /api/interviews [post]
func (c *InterviewController) CreateInterview(ctx *gin.Context) {
	var req service.CreateInterviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	interview, err := c.InterviewService.Create(ctx.Request.Context(), middleware.CurrentUserID(ctx), req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, gin.H{"interview": interview})
}

// GetInterview godoc
// @Summary 面试详情
// @Description 包含题目、回答、评估以及各维度平均分
// @Tags 面试
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "面试 ID"
// @Success 200 {object} util.Response{data=service.InterviewDetail}
// @Failure 404 {object} util.Response
// @Router /api/interviews/{id} [get]
func (c *InterviewController) GetInterview(ctx *gin.Context) {
	detail, err := c.InterviewService.GetDetail(ctx.Request.Context(), middleware.CurrentUserID(ctx), ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, detail)
}

// StartInterview godoc
// @Summary 开始面试
// @Description 草稿状态转为进行中，并生成题目
// @Tags 面试
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "面试 ID"
// @Success 200 {object} util.Response{data=service.InterviewDetail}
// @Failure 409 {object} util.Response "状态不允许"
// @Failure 503 {object} util.Response "未配置数据库"
// @Router /api/interviews/{id}/start [post]
func (c *InterviewController) StartInterview(ctx *gin.Context) {
	detail, err := c.InterviewService.Start(ctx.Request.Context(), middleware.CurrentUserID(ctx), ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, detail)
}

// SubmitAnswer godoc
// @Summary 提交文字回答
// @Tags 面试
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "面试 ID"
// @Param   questionId path int true "题目 ID"
// @Param   body body AnswerRequest true "回答内容"
// @Success 200 {object} util.Response{data=model.Response}
// @Failure 404 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /api/interviews/{id}/questions/{questionId}/answer [post]
func (c *InterviewController) SubmitAnswer(ctx *gin.Context) {
	questionID, ok := parseQuestionID(ctx)
	if !ok {
		return
	}

	var req AnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	response, err := c.InterviewService.Answer(ctx.Request.Context(), middleware.CurrentUserID(ctx), ctx.Param("id"), questionID, req.Transcript)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, response)
}

// UploadRecording godoc
// @Summary 上传回答录像
// @Tags 面试
// @Accept  multipart/form-data
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "面试 ID"
// @Param   questionId path int true "题目 ID"
// @Param   file formData file true "录像文件 (mp4/mov/webm/mkv)"
// @Success 200 {object} util.Response{data=model.Response}
// @Failure 400 {object} util.Response
// @Router /api/interviews/{id}/questions/{questionId}/recording [post]
func (c *InterviewController) UploadRecording(ctx *gin.Context) {
	questionID, ok := parseQuestionID(ctx)
	if !ok {
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer file.Close()

	response, err := c.RecordingService.Upload(ctx.Request.Context(), middleware.CurrentUserID(ctx), ctx.Param("id"), questionID, service.RecordingUpload{
		Filename: fileHeader.Filename,
		Size:     fileHeader.Size,
		Reader:   file,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, response)
}

// CompleteInterview godoc
// @Summary 完成面试
// @Description 进行中转为已完成，总分为各题评估总分的平均值
// @Tags 面试
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "面试 ID"
// @Success 200 {object} util.Response{data=model.Interview}
// @Failure 409 {object} util.Response
// @Router /api/interviews/{id}/complete [post]
func (c *InterviewController) CompleteInterview(ctx *gin.Context) {
	interview, err := c.InterviewService.Complete(ctx.Request.Context(), middleware.CurrentUserID(ctx), ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, interview)
}

func parseQuestionID(ctx *gin.Context) (uint, bool) {
	id := util.MustParseUint(ctx.Param("questionId"))
	if id == 0 {
		util.BadRequest(ctx, "invalid question id")
		return 0, false
	}
	return id, true
}
