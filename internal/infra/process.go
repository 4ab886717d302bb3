// Package infra implements infrastructure concerns (parent process, signal file, config).
package infra

import (
	"github.com/shirou/gopsutil/v3/process"

	"github.com/eliteGoblin/focusd/fakeeditor/internal/domain"
)

const unknownProcess = "unknown"

// ProcessDescriberImpl implements domain.ProcessDescriber using gopsutil.
type ProcessDescriberImpl struct{}

// NewProcessDescriber creates a new process describer.
func NewProcessDescriber() domain.ProcessDescriber {
	return &ProcessDescriberImpl{}
}

// Describe returns the executable name of pid, or "unknown" if it cannot be read.
// The process may have exited between resolve and lookup.
func (d *ProcessDescriberImpl) Describe(pid int) string {
	if pid <= 0 {
		return unknownProcess
	}
	p, err := process.NewProcess(int32(pid))
	if err != nil {
		return unknownProcess
	}
	name, err := p.Name()
	if err != nil || name == "" {
		return unknownProcess
	}
	return name
}

// Ensure ProcessDescriberImpl implements domain.ProcessDescriber.
var _ domain.ProcessDescriber = (*ProcessDescriberImpl)(nil)
