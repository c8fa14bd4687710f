package controller

import (
	"mock_interview_backend/internal/middleware"
	"mock_interview_backend/internal/service"
	"mock_interview_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ResumeController struct {
	ResumeService *service.ResumeService
}

func NewResumeController(resumeService *service.ResumeService) *ResumeController {
	return &ResumeController{ResumeService: resumeService}
}

// UploadResume godoc
// @Summary 上传简历
// @Tags 面试
// @Accept  multipart/form-data
// @Produce  json
// @Security ApiKeyAuth
// @Param   file formData file true "简历文件 (pdf/doc/docx/txt)"
// @Success 201 {object} util.Response{data=object} "url"
// @Failure 400 {object} util.Response
// @Router /api/resumes [post]
func (c *ResumeController) UploadResume(ctx *gin.Context) {
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

	url, err := c.ResumeService.Upload(ctx.Request.Context(), middleware.CurrentUserID(ctx), fileHeader.Filename, file, fileHeader.Size)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, gin.H{"url": url})
}
