// Package configwatcher 监听配置文件变化并热加载日志级别等可在线调整的配置
package configwatcher

import (
	"context"
	"mock_interview_backend/internal/config"
	"mock_interview_backend/pkg/logger"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const defaultDebounce = time.Second

type Reloader func(cfg *config.Config)

type Watcher struct {
	// ConfigFile 配置文件路径，例如 configs/config.yaml
	ConfigFile string
	Debounce   time.Duration
	OnReload   Reloader
}

func New(configFile string, onReload Reloader) *Watcher {
	return &Watcher{
		ConfigFile: configFile,
		Debounce:   defaultDebounce,
		OnReload:   onReload,
	}
}

// Run 阻塞直到 ctx 取消。监听所在目录而不是文件本身，编辑器原子替换文件后仍能收到事件
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	absPath, err := filepath.Abs(w.ConfigFile)
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(absPath)); err != nil {
		return err
	}

	debounce := w.Debounce
	if debounce <= 0 {
		debounce = defaultDebounce
	}
	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != absPath {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				// 防抖
				timer.Reset(debounce)
			}
		case <-timer.C:
			newCfg, err := config.LoadConfig(filepath.Dir(absPath))
			if err != nil {
				logger.Log.Error("Failed to reload config", zap.Error(err))
				continue
			}
			logger.Log.Info("Config reloaded", zap.String("file", absPath))
			if w.OnReload != nil {
				w.OnReload(newCfg)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Log.Error("Config watcher error", zap.Error(err))
		}
	}
}

// ApplyLogLevel 默认的热加载动作：只调整日志级别
func ApplyLogLevel(cfg *config.Config) {
	logger.SetLevel(cfg)
}
