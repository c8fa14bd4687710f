package configwatcher

import (
	"context"
	"fmt"
	"mock_interview_backend/internal/config"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const baseConfig = `
jwt:
  secret: watcher-test-secret
log:
  level: %s
storage:
  type: memory
`

func writeConfig(t *testing.T, dir, level string) {
	t.Helper()
	content := []byte(fmt.Sprintf(baseConfig, level))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), content, 0644))
}

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "info")

	reloaded := make(chan *config.Config, 4)
	w := New(filepath.Join(dir, "config.yaml"), func(cfg *config.Config) {
		reloaded <- cfg
	})
	w.Debounce = 50 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// 等待监听建立
	time.Sleep(100 * time.Millisecond)
	writeConfig(t, dir, "warn")

	select {
	case cfg := <-reloaded:
		assert.Equal(t, "warn", cfg.Log.Level)
	case <-time.After(5 * time.Second):
		t.Fatal("config was not reloaded")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWatcher_MissingDirectory(t *testing.T) {
	w := New(filepath.Join(t.TempDir(), "missing", "config.yaml"), nil)
	assert.Error(t, w.Run(context.Background()))
}
