package service

import (
	"context"
	"mock_interview_backend/internal/util"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResumeService_Upload(t *testing.T) {
	storage, dir := newLocalStorage(t)
	svc := NewResumeService(storage)

	body := "%PDF-1.4\nresume body"
	url, err := svc.Upload(context.Background(), "u1", "CV.PDF", strings.NewReader(body), int64(len(body)))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/uploads/resumes/u1/"))
	assert.True(t, strings.HasSuffix(url, ".pdf"))

	data, err := os.ReadFile(filepath.Join(dir, strings.TrimPrefix(url, "/uploads/")))
	require.NoError(t, err)
	assert.Equal(t, body, string(data))
}

func TestResumeService_Rejects(t *testing.T) {
	storage, _ := newLocalStorage(t)
	svc := NewResumeService(storage)

	_, err := svc.Upload(context.Background(), "u1", "cv.exe", strings.NewReader("MZ"), 2)
	assert.ErrorIs(t, err, util.ErrInvalidResumeExt)

	png := "\x89PNG\r\n\x1a\n0000"
	_, err = svc.Upload(context.Background(), "u1", "cv.pdf", strings.NewReader(png), int64(len(png)))
	assert.ErrorIs(t, err, util.ErrInvalidFileType)
}
