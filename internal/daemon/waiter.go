// Package daemon implements the editor's wait loop and run lifecycle.
package daemon

import (
	"time"

	"go.uber.org/zap"

	"github.com/eliteGoblin/focusd/fakeeditor/internal/domain"
)

// WaiterConfig holds wait loop timing.
type WaiterConfig struct {
	PollInterval time.Duration // Sleep between ticks
	Timeout      time.Duration // Total budget measured from process start
}

// DefaultWaiterConfig returns default wait loop timing.
func DefaultWaiterConfig() WaiterConfig {
	return WaiterConfig{
		PollInterval: domain.DefaultPollInterval, // 50ms
		Timeout:      domain.DefaultTimeout,      // 5s
	}
}

// WaiterConfigFrom copies the timing out of a monitor config.
// Unset (non-positive) values fall back to the defaults; a zero poll
// interval would otherwise spin.
func WaiterConfigFrom(mc domain.MonitorConfig) WaiterConfig {
	config := DefaultWaiterConfig()
	if mc.PollInterval > 0 {
		config.PollInterval = mc.PollInterval
	}
	if mc.Timeout > 0 {
		config.Timeout = mc.Timeout
	}
	return config
}

// Waiter polls for the signal file while watching the parent and the clock.
// It runs on the caller's goroutine; the sleep between ticks is not interruptible.
type Waiter struct {
	config WaiterConfig
	parent domain.ParentMonitor
	signal domain.SignalChecker
	logger *zap.Logger
	now    func() time.Time
	sleep  func(time.Duration)
}

// NewWaiter creates a new wait loop.
func NewWaiter(
	config WaiterConfig,
	parent domain.ParentMonitor,
	signal domain.SignalChecker,
	logger *zap.Logger,
) *Waiter {
	return &Waiter{
		config: config,
		parent: parent,
		signal: signal,
		logger: logger,
		now:    time.Now,
		sleep:  time.Sleep,
	}
}

// Wait blocks until one terminal outcome is reached.
// Each tick checks, in order: timeout, parent liveness, signal file.
func (w *Waiter) Wait(handle domain.ParentHandle, start time.Time) domain.Outcome {
	ticks := 0
	for {
		elapsed := w.now().Sub(start)
		if elapsed > w.config.Timeout {
			w.logger.Error("timed out waiting for signal file",
				zap.Duration("timeout", w.config.Timeout),
				zap.Duration("elapsed", elapsed),
				zap.Int("ticks", ticks))
			return domain.OutcomeTimeout
		}

		if handle.Enabled() && !w.parent.IsAlive(handle) {
			w.logger.Error("parent process is gone, exiting",
				zap.Int("ppid", handle.PID),
				zap.Duration("elapsed", elapsed))
			return domain.OutcomeParentGone
		}

		if w.signal.Check() == domain.SignalPresent {
			w.logger.Debug("signal file found",
				zap.Duration("elapsed", elapsed),
				zap.Int("ticks", ticks))
			return domain.OutcomeCompleted
		}

		ticks++
		w.sleep(w.config.PollInterval)
	}
}
