// Package usecase contains application logic.
package usecase

import (
	"bufio"
	"fmt"
	"os"
	"strconv"

	"github.com/eliteGoblin/focusd/fakeeditor/internal/domain"
)

// Announcer writes the identity block the test reads back from stdout:
// pid, working directory, one line per argument, then the sentinel.
type Announcer struct {
	out    *bufio.Writer
	getpid func() int
	getwd  func() (string, error)
}

// NewAnnouncer creates an announcer writing to out.
func NewAnnouncer(out *bufio.Writer) *Announcer {
	return &Announcer{
		out:    out,
		getpid: os.Getpid,
		getwd:  os.Getwd,
	}
}

// Announce emits and flushes the identity block and returns what it captured.
// If the working directory cannot be read, the pid line is still flushed.
func (a *Announcer) Announce(args []string) (domain.ProcessContext, error) {
	pc := domain.ProcessContext{
		PID:  a.getpid(),
		Args: append([]string(nil), args...),
	}

	a.writeLine(strconv.Itoa(pc.PID))

	dir, err := a.getwd()
	if err != nil {
		_ = a.out.Flush()
		return pc, fmt.Errorf("%w: %v", domain.ErrWorkingDir, err)
	}
	pc.Dir = dir
	a.writeLine(dir)

	for _, arg := range pc.Args {
		a.writeLine(arg)
	}
	a.writeLine(domain.OutputSentinel)

	if err := a.out.Flush(); err != nil {
		return pc, fmt.Errorf("flush identity block: %w", err)
	}
	return pc, nil
}

// bufio.Writer keeps the first write error and reports it from Flush.
func (a *Announcer) writeLine(s string) {
	_, _ = a.out.WriteString(s)
	_ = a.out.WriteByte('\n')
}
