// Package domain contains core entities and interfaces.
// This is the innermost layer in Clean Architecture - no external dependencies.
package domain

import (
	"errors"
	"path/filepath"
	"time"
)

const (
	// DefaultPollInterval is how often the wait loop ticks.
	DefaultPollInterval = 50 * time.Millisecond

	// DefaultTimeout is the total wait budget before giving up.
	DefaultTimeout = 5000 * time.Millisecond

	// SignalFileName is the only marker file the harness ever creates.
	SignalFileName = "0"

	// OutputSentinel terminates the identity block on stdout.
	OutputSentinel = "FAKEEDITOR_OUTPUT_END"
)

var (
	// ErrSignalDirUnset is returned when the signal directory env var is missing or empty.
	ErrSignalDirUnset = errors.New("signal directory not set")

	// ErrWorkingDir is returned when the current working directory cannot be read.
	ErrWorkingDir = errors.New("cannot determine working directory")
)

// ProcessContext is what the editor was launched with.
// Captured once at startup and never mutated.
type ProcessContext struct {
	PID  int
	Dir  string
	Args []string
}

// MonitorConfig holds the wait loop settings.
type MonitorConfig struct {
	SignalDir      string
	PollInterval   time.Duration // Must be much smaller than Timeout
	Timeout        time.Duration
	SignalFileName string
}

// NewMonitorConfig returns a config with the fixed poll interval, timeout and file name.
func NewMonitorConfig(signalDir string) MonitorConfig {
	return MonitorConfig{
		SignalDir:      signalDir,
		PollInterval:   DefaultPollInterval,
		Timeout:        DefaultTimeout,
		SignalFileName: SignalFileName,
	}
}

// SignalPath returns the full path of the marker file.
func (c MonitorConfig) SignalPath() string {
	return filepath.Join(c.SignalDir, c.SignalFileName)
}

// ParentStatus tags what we know about the launching process.
type ParentStatus int

const (
	// ParentMonitored means a parent PID was found and is checked every tick.
	ParentMonitored ParentStatus = iota
	// ParentMonitoringDisabled means the parent could not be determined.
	// The timeout is the only safety net in this state.
	ParentMonitoringDisabled
	// ParentOrphaned means we were already reparented to init before monitoring began.
	ParentOrphaned
)

func (s ParentStatus) String() string {
	switch s {
	case ParentMonitored:
		return "monitored"
	case ParentMonitoringDisabled:
		return "disabled"
	case ParentOrphaned:
		return "orphaned"
	default:
		return "unknown"
	}
}

// ParentHandle identifies the launching process.
type ParentHandle struct {
	Status ParentStatus
	PID    int
	Reason string // Why monitoring is disabled, if it is
}

// Enabled reports whether the wait loop should probe the parent.
func (h ParentHandle) Enabled() bool {
	return h.Status == ParentMonitored
}

// SignalState is the result of one signal file check.
type SignalState int

const (
	SignalAbsent SignalState = iota
	SignalPresent
)

// Outcome is the single terminal state of a run.
type Outcome int

const (
	OutcomeCompleted Outcome = iota
	OutcomeTimeout
	OutcomeParentGone
	OutcomeSetupError
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCompleted:
		return "completed"
	case OutcomeTimeout:
		return "timeout"
	case OutcomeParentGone:
		return "parent_gone"
	case OutcomeSetupError:
		return "setup_error"
	default:
		return "unknown"
	}
}

// ExitCode maps the outcome to a process exit status.
func (o Outcome) ExitCode() int {
	if o == OutcomeCompleted {
		return 0
	}
	return 1
}
