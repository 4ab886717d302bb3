package domain

// ParentMonitor resolves the launching process and checks whether it is still alive.
// Implementations: signal-0 probing on POSIX, Toolhelp snapshot + wait handle on Windows.
type ParentMonitor interface {
	// Resolve determines the parent once at startup.
	Resolve() ParentHandle

	// IsAlive probes the parent. Only called when the handle is Enabled.
	IsAlive(handle ParentHandle) bool

	// Close releases any OS handle held for the parent.
	Close() error
}

// SignalChecker looks for the completion marker file.
type SignalChecker interface {
	// Check reports whether the marker is present. Errors other than
	// "not found" are logged and reported as absent.
	Check() SignalState
}

// ProcessDescriber looks up a human-readable name for a PID (diagnostics only).
type ProcessDescriber interface {
	Describe(pid int) string
}
