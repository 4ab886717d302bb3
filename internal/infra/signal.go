package infra

import (
	"errors"
	"io/fs"
	"os"

	"go.uber.org/zap"

	"github.com/eliteGoblin/focusd/fakeeditor/internal/domain"
)

// FileSignalChecker implements domain.SignalChecker by stat-ing the marker file.
// It never creates, writes or removes the file.
type FileSignalChecker struct {
	path   string
	logger *zap.Logger
}

// NewFileSignalChecker creates a checker for the config's marker path.
func NewFileSignalChecker(config domain.MonitorConfig, logger *zap.Logger) domain.SignalChecker {
	return &FileSignalChecker{
		path:   config.SignalPath(),
		logger: logger,
	}
}

// Check reports whether the marker file exists.
func (c *FileSignalChecker) Check() domain.SignalState {
	_, err := os.Stat(c.path)
	if err == nil {
		return domain.SignalPresent
	}
	if !errors.Is(err, fs.ErrNotExist) {
		// Possibly transient; the timeout still bounds the wait.
		c.logger.Warn("cannot access signal file",
			zap.String("path", c.path),
			zap.Error(err))
	}
	return domain.SignalAbsent
}

// Ensure FileSignalChecker implements domain.SignalChecker.
var _ domain.SignalChecker = (*FileSignalChecker)(nil)
