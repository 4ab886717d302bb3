// Package fixtures provides test helpers for integration tests.
package fixtures

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/eliteGoblin/focusd/fakeeditor/internal/domain"
	"github.com/eliteGoblin/focusd/fakeeditor/internal/infra"
)

// SignalDir plays the harness side of the signal protocol.
type SignalDir struct {
	Path string
}

// NewSignalDir creates an empty signal directory under baseDir.
func NewSignalDir(baseDir string) (*SignalDir, error) {
	path := filepath.Join(baseDir, "signal")
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, err
	}
	return &SignalDir{Path: path}, nil
}

// Env returns the environment entry pointing the editor at this directory.
func (s *SignalDir) Env() string {
	return infra.SignalDirEnv + "=" + s.Path
}

// Signal creates the marker file that tells the editor to exit 0.
func (s *SignalDir) Signal() error {
	return os.WriteFile(filepath.Join(s.Path, domain.SignalFileName), nil, 0644)
}

// SignalAfter creates the marker file after d and reports the result.
func (s *SignalDir) SignalAfter(d time.Duration) <-chan error {
	done := make(chan error, 1)
	go func() {
		time.Sleep(d)
		done <- s.Signal()
	}()
	return done
}

// Signaled checks if the marker file exists.
func (s *SignalDir) Signaled() bool {
	_, err := os.Stat(filepath.Join(s.Path, domain.SignalFileName))
	return err == nil
}

// EnvWithout returns os.Environ() minus any entry for key.
func EnvWithout(key string) []string {
	var env []string
	prefix := key + "="
	for _, kv := range os.Environ() {
		if strings.HasPrefix(kv, prefix) {
			continue
		}
		env = append(env, kv)
	}
	return env
}
