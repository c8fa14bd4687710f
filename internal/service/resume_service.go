package service

import (
	"context"
	"fmt"
	"io"
	"mock_interview_backend/internal/util"
	"path/filepath"
	"strings"
)

type ResumeService struct {
	Storage *StorageService
}

func NewResumeService(storage *StorageService) *ResumeService {
	return &ResumeService{Storage: storage}
}

// Upload 保存简历文件并返回访问地址，创建面试时作为 resumeUrl 传入
func (s *ResumeService) Upload(ctx context.Context, userID, filename string, reader io.ReadSeeker, size int64) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !util.HasExtension(ext, util.AllowedResumeExtensions) {
		return "", util.ErrInvalidResumeExt
	}

	// docx 为 zip 容器，doc 识别为 octet-stream
	mimeType, err := util.ValidateMimeType(reader, []string{util.MimePDF, util.MimeText, util.MimeZip, util.MimeOctetStream})
	if err != nil {
		return "", err
	}
	if _, err := reader.Seek(0, io.SeekStart); err != nil {
		return "", err
	}

	key := ObjectKey(fmt.Sprintf("resumes/%s", userID), ext)
	return s.Storage.Upload(ctx, key, reader, size, mimeType)
}
