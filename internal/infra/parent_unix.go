//go:build !windows

package infra

import (
	"errors"

	"go.uber.org/zap"
	"golang.org/x/sys/unix"

	"github.com/eliteGoblin/focusd/fakeeditor/internal/domain"
)

// initPID is the permanent reaper that adopts orphaned processes.
const initPID = 1

// SignalParentMonitor implements domain.ParentMonitor with signal 0 probes.
type SignalParentMonitor struct {
	logger  *zap.Logger
	getppid func() int
	probe   func(pid int) error
}

// NewParentMonitor creates the POSIX parent monitor.
func NewParentMonitor(logger *zap.Logger) domain.ParentMonitor {
	return &SignalParentMonitor{
		logger:  logger,
		getppid: unix.Getppid,
		probe: func(pid int) error {
			return unix.Kill(pid, 0)
		},
	}
}

// Resolve reads the parent PID once.
// A parent of 1 means the launcher already exited and we were reparented.
func (m *SignalParentMonitor) Resolve() domain.ParentHandle {
	ppid := m.getppid()
	if ppid == initPID {
		return domain.ParentHandle{
			Status: domain.ParentOrphaned,
			PID:    ppid,
			Reason: "already reparented to init",
		}
	}
	return domain.ParentHandle{Status: domain.ParentMonitored, PID: ppid}
}

// IsAlive sends signal 0 to the parent. Only ESRCH proves it is gone;
// any other error (e.g. EPERM) is logged and the parent is assumed alive.
func (m *SignalParentMonitor) IsAlive(handle domain.ParentHandle) bool {
	err := m.probe(handle.PID)
	if err == nil {
		return true
	}
	if errors.Is(err, unix.ESRCH) {
		return false
	}
	m.logger.Warn("parent liveness probe failed",
		zap.Int("ppid", handle.PID),
		zap.Error(err))
	return true
}

// Close is a no-op; POSIX probing holds no handle.
func (m *SignalParentMonitor) Close() error {
	return nil
}

// Ensure SignalParentMonitor implements domain.ParentMonitor.
var _ domain.ParentMonitor = (*SignalParentMonitor)(nil)
