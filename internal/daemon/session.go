package daemon

import (
	"bufio"
	"io"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/eliteGoblin/focusd/fakeeditor/internal/domain"
	"github.com/eliteGoblin/focusd/fakeeditor/internal/infra"
	"github.com/eliteGoblin/focusd/fakeeditor/internal/usecase"
)

// Session owns one editor run: announce, resolve parent, wait, then flush.
// The output writer and clock live here and are handed to each step.
type Session struct {
	out       *bufio.Writer
	announcer *usecase.Announcer
	env       *viper.Viper
	parent    domain.ParentMonitor
	describer domain.ProcessDescriber
	logger    *zap.Logger
	now       func() time.Time
	sleep     func(time.Duration)
}

// NewSession creates a session writing the identity block to stdout.
func NewSession(
	stdout io.Writer,
	env *viper.Viper,
	parent domain.ParentMonitor,
	describer domain.ProcessDescriber,
	logger *zap.Logger,
) *Session {
	out := bufio.NewWriter(stdout)
	return &Session{
		out:       out,
		announcer: usecase.NewAnnouncer(out),
		env:       env,
		parent:    parent,
		describer: describer,
		logger:    logger,
		now:       time.Now,
		sleep:     time.Sleep,
	}
}

// Run executes the editor lifecycle and returns its single outcome.
// Stdout is flushed, the parent handle released and the logger synced
// before Run returns, whatever the outcome.
func (s *Session) Run(args []string) domain.Outcome {
	start := s.now()
	outcome := s.run(args, start)

	if err := s.parent.Close(); err != nil {
		s.logger.Warn("failed to release parent handle", zap.Error(err))
	}
	if err := s.out.Flush(); err != nil {
		s.logger.Warn("failed to flush stdout", zap.Error(err))
	}
	s.logger.Debug("exiting",
		zap.Stringer("outcome", outcome),
		zap.Int("exit_code", outcome.ExitCode()))
	_ = s.logger.Sync()

	return outcome
}

func (s *Session) run(args []string, start time.Time) domain.Outcome {
	pc, err := s.announcer.Announce(args)
	if err != nil {
		s.logger.Error("setup failed", zap.Error(err))
		return domain.OutcomeSetupError
	}
	s.logger.Debug("identity announced",
		zap.Int("pid", pc.PID),
		zap.String("cwd", pc.Dir),
		zap.Strings("args", pc.Args))

	config, err := infra.LoadMonitorConfig(s.env)
	if err != nil {
		s.logger.Error("setup failed", zap.Error(err))
		return domain.OutcomeSetupError
	}

	handle := s.parent.Resolve()
	switch handle.Status {
	case domain.ParentOrphaned:
		s.logger.Error("parent process is gone before monitoring started",
			zap.Int("ppid", handle.PID),
			zap.String("reason", handle.Reason))
		return domain.OutcomeParentGone
	case domain.ParentMonitoringDisabled:
		s.logger.Warn("parent monitoring disabled, relying on timeout",
			zap.String("reason", handle.Reason))
	default:
		s.logger.Debug("monitoring parent",
			zap.Int("ppid", handle.PID),
			zap.String("name", s.describer.Describe(handle.PID)))
	}

	signal := infra.NewFileSignalChecker(config, s.logger)
	s.logger.Debug("waiting for signal file",
		zap.String("path", config.SignalPath()),
		zap.Duration("poll", config.PollInterval),
		zap.Duration("timeout", config.Timeout))

	waiter := NewWaiter(WaiterConfigFrom(config), s.parent, signal, s.logger)
	waiter.now = s.now
	waiter.sleep = s.sleep
	return waiter.Wait(handle, start)
}
