// Package main is the CLI entry point for fakeeditor, a stand-in for an
// interactive editor in version-control integration tests.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/eliteGoblin/focusd/fakeeditor/internal/daemon"
	"github.com/eliteGoblin/focusd/fakeeditor/internal/infra"
)

var (
	// Version info (set via ldflags)
	Version = "0.1.0"
	Commit  = "dev"
)

// exitError carries a non-zero exit status out of cobra.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

func main() {
	if err := execute(os.Args[1:]); err != nil {
		var ee *exitError
		if errors.As(err, &ee) {
			os.Exit(ee.code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// execute runs the editor without cobra's command lookup. Execute would
// route reserved names such as "__complete" to cobra's own hidden commands,
// and every argument here belongs to the tool under test.
func execute(args []string) error {
	return rootCmd.RunE(rootCmd, args)
}

var rootCmd = &cobra.Command{
	Use:   "fakeeditor [args...]",
	Short: "Editor stand-in for version-control integration tests",
	Long: `fakeeditor replaces an interactive editor during automated tests.

It prints its pid, working directory and arguments, one per line, followed by
` + "FAKEEDITOR_OUTPUT_END" + `. It then waits for a file named "0" to appear in
$` + infra.SignalDirEnv + ` and exits 0. It exits 1 if its parent process
dies or 5 seconds pass first.

All arguments are passed through untouched; there are no flags.`,
	Version: Version,
	// The editor's argv belongs to the tool under test.
	DisableFlagParsing: true,
	Args:               cobra.ArbitraryArgs,
	SilenceErrors:      true,
	SilenceUsage:       true,
	RunE:               runEditor,
}

func runEditor(cmd *cobra.Command, args []string) error {
	env := infra.NewEnvConfig()
	logger := createLogger(env)

	logger.Debug("fakeeditor starting",
		zap.String("version", Version),
		zap.String("commit", Commit))

	session := daemon.NewSession(
		cmd.OutOrStdout(),
		env,
		infra.NewParentMonitor(logger),
		infra.NewProcessDescriber(),
		logger,
	)

	outcome := session.Run(args)
	if code := outcome.ExitCode(); code != 0 {
		return &exitError{code: code}
	}
	return nil
}

// createLogger builds the diagnostic logger. Stdout is reserved for the
// identity block, so everything goes to stderr.
func createLogger(env *viper.Viper) *zap.Logger {
	config := zap.NewDevelopmentConfig()
	config.OutputPaths = []string{"stderr"}
	config.ErrorOutputPaths = []string{"stderr"}
	config.DisableStacktrace = true
	config.EncoderConfig.TimeKey = "time"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	level, levelErr := infra.LoadLogLevel(env)
	config.Level = zap.NewAtomicLevelAt(level)

	logger, err := config.Build()
	if err != nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("fakeeditor")
	if levelErr != nil {
		logger.Warn("using default log level", zap.Error(levelErr))
	}
	return logger
}
