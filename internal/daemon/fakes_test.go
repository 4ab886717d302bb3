package daemon

import (
	"time"

	"github.com/eliteGoblin/focusd/fakeeditor/internal/domain"
)

// fakeClock advances only when the code under test sleeps.
type fakeClock struct {
	now    time.Time
	sleeps int
	onTick func(elapsed time.Duration)
	start  time.Time
}

func newFakeClock() *fakeClock {
	t := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return &fakeClock{now: t, start: t}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Sleep(d time.Duration) {
	c.sleeps++
	c.now = c.now.Add(d)
	if c.onTick != nil {
		c.onTick(c.now.Sub(c.start))
	}
}

func (c *fakeClock) Elapsed() time.Duration { return c.now.Sub(c.start) }

// mockParentMonitor is a test double for domain.ParentMonitor
type mockParentMonitor struct {
	handle       domain.ParentHandle
	alive        bool
	resolveCalls int
	aliveCalls   int
	closeCalls   int
	closeErr     error
}

func (m *mockParentMonitor) Resolve() domain.ParentHandle {
	m.resolveCalls++
	return m.handle
}

func (m *mockParentMonitor) IsAlive(domain.ParentHandle) bool {
	m.aliveCalls++
	return m.alive
}

func (m *mockParentMonitor) Close() error {
	m.closeCalls++
	return m.closeErr
}

// mockSignalChecker reports present from the presentAt-th check onward (1-based).
// Zero means never.
type mockSignalChecker struct {
	presentAt int
	calls     int
}

func (m *mockSignalChecker) Check() domain.SignalState {
	m.calls++
	if m.presentAt > 0 && m.calls >= m.presentAt {
		return domain.SignalPresent
	}
	return domain.SignalAbsent
}

type mockDescriber struct{}

func (mockDescriber) Describe(int) string { return "jj" }

func aliveParent() *mockParentMonitor {
	return &mockParentMonitor{
		handle: domain.ParentHandle{Status: domain.ParentMonitored, PID: 4242},
		alive:  true,
	}
}
