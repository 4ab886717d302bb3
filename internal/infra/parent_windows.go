//go:build windows

package infra

import (
	"errors"
	"fmt"
	"unsafe"

	"go.uber.org/zap"
	"golang.org/x/sys/windows"

	"github.com/eliteGoblin/focusd/fakeeditor/internal/domain"
)

// idlePID is the System Idle Process placeholder; never a real parent.
const idlePID = 0

// HandleParentMonitor implements domain.ParentMonitor with a process
// snapshot walk and a non-blocking wait on a SYNCHRONIZE handle.
type HandleParentMonitor struct {
	logger *zap.Logger
	handle windows.Handle
	lookup func() (uint32, error)
}

// NewParentMonitor creates the Windows parent monitor.
func NewParentMonitor(logger *zap.Logger) domain.ParentMonitor {
	return &HandleParentMonitor{
		logger: logger,
		lookup: func() (uint32, error) {
			return lookupParentPID(windows.GetCurrentProcessId())
		},
	}
}

// Resolve walks the process snapshot for our own entry and reads its parent.
// Any failure disables monitoring rather than failing the run.
func (m *HandleParentMonitor) Resolve() domain.ParentHandle {
	ppid, err := m.lookup()
	if err != nil {
		// The session reports the disabled state; keep this for tracing.
		m.logger.Debug("parent lookup failed", zap.Error(err))
		return domain.ParentHandle{
			Status: domain.ParentMonitoringDisabled,
			Reason: err.Error(),
		}
	}
	return domain.ParentHandle{Status: domain.ParentMonitored, PID: int(ppid)}
}

func lookupParentPID(self uint32) (uint32, error) {
	snapshot, err := windows.CreateToolhelp32Snapshot(windows.TH32CS_SNAPPROCESS, 0)
	if err != nil {
		return 0, fmt.Errorf("process snapshot: %w", err)
	}
	defer func() { _ = windows.CloseHandle(snapshot) }()

	var entry windows.ProcessEntry32
	entry.Size = uint32(unsafe.Sizeof(entry))

	err = windows.Process32First(snapshot, &entry)
	for err == nil {
		if entry.ProcessID == self {
			if entry.ParentProcessID == idlePID {
				return 0, errors.New("parent reported as idle process")
			}
			return entry.ParentProcessID, nil
		}
		err = windows.Process32Next(snapshot, &entry)
	}
	if errors.Is(err, windows.ERROR_NO_MORE_FILES) {
		return 0, fmt.Errorf("own process %d not found in snapshot", self)
	}
	return 0, fmt.Errorf("walk process snapshot: %w", err)
}

// IsAlive opens the parent on first use and polls it with a zero timeout.
// Signaled, or a handle that cannot be opened, both mean the parent is gone.
func (m *HandleParentMonitor) IsAlive(handle domain.ParentHandle) bool {
	if m.handle == 0 {
		h, err := windows.OpenProcess(windows.SYNCHRONIZE, false, uint32(handle.PID))
		if err != nil {
			m.logger.Debug("cannot open parent process",
				zap.Int("ppid", handle.PID),
				zap.Error(err))
			return false
		}
		m.handle = h
	}

	event, err := windows.WaitForSingleObject(m.handle, 0)
	switch {
	case err != nil:
		m.logger.Warn("parent wait failed",
			zap.Int("ppid", handle.PID),
			zap.Error(err))
		return true
	case event == uint32(windows.WAIT_TIMEOUT):
		return true
	default:
		return false
	}
}

// Close releases the parent handle if one was opened.
func (m *HandleParentMonitor) Close() error {
	if m.handle == 0 {
		return nil
	}
	err := windows.CloseHandle(m.handle)
	m.handle = 0
	return err
}

// Ensure HandleParentMonitor implements domain.ParentMonitor.
var _ domain.ParentMonitor = (*HandleParentMonitor)(nil)
