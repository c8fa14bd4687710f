package logger

import (
	"mock_interview_backend/internal/config"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestSetLevel(t *testing.T) {
	cfg := &config.Config{}
	cfg.Server.Mode = "release"
	SetLevel(cfg)
	assert.Equal(t, zapcore.InfoLevel, Level())

	cfg.Server.Mode = "debug"
	SetLevel(cfg)
	assert.Equal(t, zapcore.DebugLevel, Level())

	cfg.Log.Level = "warn"
	SetLevel(cfg)
	assert.Equal(t, zapcore.WarnLevel, Level())

	cfg.Log.Level = "not-a-level"
	SetLevel(cfg)
	assert.Equal(t, zapcore.DebugLevel, Level())
}
