package service

import (
	"context"
	"fmt"
	"io"
	"mock_interview_backend/internal/model"
	"mock_interview_backend/internal/util"
	"mock_interview_backend/pkg/logger"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// RecordingService 处理回答录像：校验、ffprobe 读取时长、截取缩略图、上传存储
type RecordingService struct {
	Storage    *StorageService
	Interviews *InterviewService
	TempDir    string

	// 便于测试替换
	Probe     func(path string) (*util.VideoInfo, error)
	Thumbnail func(videoPath, thumbnailPath, offset string) error
}

func NewRecordingService(storage *StorageService, interviews *InterviewService) *RecordingService {
	return &RecordingService{
		Storage:    storage,
		Interviews: interviews,
		TempDir:    os.TempDir(),
		Probe:      util.GetVideoInfo,
		Thumbnail:  util.GenerateThumbnail,
	}
}

type RecordingUpload struct {
	Filename string
	Size     int64
	Reader   io.ReadSeeker
}

func (s *RecordingService) Upload(ctx context.Context, userID, interviewID string, questionID uint, upload RecordingUpload) (*model.Response, error) {
	ext := strings.ToLower(filepath.Ext(upload.Filename))
	if !util.HasExtension(ext, util.AllowedVideoExtensions) {
		return nil, util.ErrInvalidVideoExt
	}

	mimeType, err := util.ValidateMimeType(upload.Reader, []string{util.MimeVideo, util.MimeOctetStream})
	if err != nil {
		return nil, err
	}
	if _, err := upload.Reader.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	if !util.IsVideo(mimeType) {
		mimeType = "video/" + strings.TrimPrefix(ext, ".")
	}

	// 先确认题目有效再落盘
	if _, _, err := s.Interviews.activeQuestion(ctx, userID, interviewID, questionID); err != nil {
		return nil, err
	}

	workDir, err := os.MkdirTemp(s.TempDir, "recording-*")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(workDir)

	videoPath := filepath.Join(workDir, "answer"+ext)
	if err := writeFile(videoPath, upload.Reader); err != nil {
		return nil, err
	}

	var duration float64
	if info, err := s.Probe(videoPath); err != nil {
		logger.Log.Warn("Failed to probe recording", zap.String("interviewID", interviewID), zap.Error(err))
	} else {
		duration = info.Duration
	}

	prefix := fmt.Sprintf("recordings/%s", interviewID)
	recordingKey := ObjectKey(prefix, ext)
	recordingURL, err := s.Storage.UploadFile(ctx, recordingKey, videoPath, mimeType)
	if err != nil {
		return nil, fmt.Errorf("upload recording: %w", err)
	}
	uploaded := []string{recordingKey}

	var thumbnailURL string
	thumbKey := ObjectKey(prefix, ".jpg")
	thumbPath := filepath.Join(workDir, "thumb.jpg")
	if err := s.Thumbnail(videoPath, thumbPath, thumbnailOffset(duration)); err != nil {
		logger.Log.Warn("Failed to generate thumbnail", zap.String("interviewID", interviewID), zap.Error(err))
	} else if url, err := s.Storage.UploadFile(ctx, thumbKey, thumbPath, "image/jpeg"); err != nil {
		logger.Log.Warn("Failed to upload thumbnail", zap.Error(err))
	} else {
		thumbnailURL = url
		uploaded = append(uploaded, thumbKey)
	}

	response, err := s.Interviews.AttachRecording(ctx, userID, interviewID, questionID, recordingURL, thumbnailURL, duration)
	if err != nil {
		// 回答未保存，清理已上传的对象
		for _, key := range uploaded {
			if delErr := s.Storage.Delete(ctx, key); delErr != nil {
				logger.Log.Warn("Failed to remove orphaned upload", zap.String("key", key), zap.Error(delErr))
			}
		}
		return nil, err
	}
	return response, nil
}

// thumbnailOffset 短视频取第 0 秒，否则取第 1 秒
func thumbnailOffset(duration float64) string {
	if duration > 1 {
		return "00:00:01"
	}
	return "00:00:00"
}

func writeFile(path string, r io.Reader) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, r)
	return err
}
