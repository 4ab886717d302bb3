package infra

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"

	"github.com/eliteGoblin/focusd/fakeeditor/internal/domain"
)

const (
	// SignalDirEnv names the directory the harness drops the marker file into.
	SignalDirEnv = "JJ_FAKEEDITOR_SIGNAL_DIR"

	// LogLevelEnv overrides the diagnostic log level (debug|info|warn|error).
	LogLevelEnv = "FAKEEDITOR_LOG_LEVEL"

	keySignalDir = "signal_dir"
	keyLogLevel  = "log_level"
)

// NewEnvConfig returns a viper instance bound to the editor's environment variables.
func NewEnvConfig() *viper.Viper {
	v := viper.New()
	_ = v.BindEnv(keySignalDir, SignalDirEnv)
	_ = v.BindEnv(keyLogLevel, LogLevelEnv)
	return v
}

// LoadMonitorConfig builds the wait loop config from the environment.
// Only the signal directory comes from the environment; poll interval,
// timeout and file name are fixed.
func LoadMonitorConfig(v *viper.Viper) (domain.MonitorConfig, error) {
	dir := v.GetString(keySignalDir)
	if strings.TrimSpace(dir) == "" {
		return domain.MonitorConfig{}, fmt.Errorf("%w: %s", domain.ErrSignalDirUnset, SignalDirEnv)
	}
	return domain.NewMonitorConfig(dir), nil
}

// LoadLogLevel returns the configured log level, defaulting to info.
// The returned error is non-nil when a value was set but could not be parsed.
func LoadLogLevel(v *viper.Viper) (zapcore.Level, error) {
	raw := strings.TrimSpace(v.GetString(keyLogLevel))
	if raw == "" {
		return zapcore.InfoLevel, nil
	}
	level, err := zapcore.ParseLevel(raw)
	if err != nil {
		return zapcore.InfoLevel, fmt.Errorf("invalid %s %q: %w", LogLevelEnv, raw, err)
	}
	return level, nil
}
