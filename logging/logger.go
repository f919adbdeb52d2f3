package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"

	"github.com/browserup/sorcery-desktop/pkg/paths"
)

var (
	loggers   = make(map[string]*logrus.Entry)
	loggersMu sync.Mutex
)

// NewLogger creates and returns a pre-configured logger for a specific
// component. Singleton per component, so repeated calls are cheap and share
// one sink configuration.
func NewLogger(component string) *logrus.Entry {
	loggersMu.Lock()
	defer loggersMu.Unlock()

	if logger, exists := loggers[component]; exists {
		return logger
	}

	logger := logrus.New()

	cfg := Config{Level: "info"}
	if v := os.Getenv("SORCERY_LOG_LEVEL"); v != "" {
		cfg.Level = v
	}
	if os.Getenv("SORCERY_LOG_CALLER") == "true" {
		cfg.ReportCaller = true
	}
	if v := os.Getenv("SORCERY_LOG_FORMAT"); v != "" {
		cfg.Format.Preset = v
	}

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
	logger.SetReportCaller(cfg.ReportCaller)

	switch cfg.Format.Preset {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	case "simple":
		logger.SetFormatter(&TextFormatter{Config: FormatConfig{DisableTimestamp: true, DisableComponent: true}})
	default:
		logger.SetFormatter(&TextFormatter{Config: cfg.Format})
	}

	var writers []io.Writer

	logDir := paths.LogDir()
	if logDir != "" {
		now := time.Now()
		logFilePath := filepath.Join(logDir, fmt.Sprintf("%s-%s.log", component, now.Format("2006-01-02")))
		if err := os.MkdirAll(logDir, 0o755); err == nil {
			if file, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666); err == nil {
				writers = append(writers, file)
			}
		}
	}

	shouldLogToStderr := false
	switch cfg.Format.StructuredToStderr {
	case "always":
		shouldLogToStderr = true
	case "never":
		shouldLogToStderr = false
	default: // "auto"
		isDebug := os.Getenv("SORCERY_DEBUG") == "1" || logger.GetLevel() == logrus.DebugLevel
		isInteractive := isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
		if isDebug || !isInteractive {
			shouldLogToStderr = true
		}
	}

	if shouldLogToStderr {
		writers = append(writers, os.Stderr)
	}

	switch len(writers) {
	case 0:
		logger.SetOutput(io.Discard)
	case 1:
		logger.SetOutput(writers[0])
	default:
		logger.SetOutput(io.MultiWriter(writers...))
	}

	entry := logger.WithField("component", component)
	loggers[component] = entry
	return entry
}
