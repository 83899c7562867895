package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/valutatrade/hubrun/internal/executor"
	"github.com/valutatrade/hubrun/internal/graph"
	"github.com/valutatrade/hubrun/pkg/logger"
)

var (
	cfgFile  string
	workDir  string
	logLevel string
	timeout  string
)

// usageError marks failures of the invocation itself (unknown task, bad
// config) as opposed to failures of the commands being run.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

var rootCmd = &cobra.Command{
	Use:   "hubrun <task>",
	Short: "Task runner for the valutatrade-hub project",
	Long: `hubrun maps named tasks to shell command sequences and runs them
sequentially, dependencies first, stopping at the first failing command.
Without a hubrun.yaml it carries the valutatrade-hub task set built in.`,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init(logLevel)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return &usageError{err: errors.New("a task name is required")}
		}
		if len(args) > 1 {
			return &usageError{err: fmt.Errorf("expected one task name, got %d arguments", len(args))}
		}
		return runTarget(cmd, args[0])
	},
}

// Execute runs the CLI and terminates the process with the resolved
// exit code: the failing command's own status, 2 for usage and
// configuration errors, 1 otherwise.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)

		var uErr *usageError
		if errors.As(err, &uErr) {
			fmt.Fprintln(os.Stderr)
			fmt.Fprintln(os.Stderr, rootCmd.UsageString())
			os.Exit(2)
		}

		var exitErr *executor.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}

		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to a hubrun.yaml (default: ./hubrun.yaml if present)")
	rootCmd.PersistentFlags().StringVar(&workDir, "dir", "", "Working directory for task commands")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level: trace, debug, info, warn, error")
	rootCmd.Flags().StringVar(&timeout, "timeout", "", "Abort the run after this duration (e.g. 10m)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(historyCmd)
}

// classify wraps invocation-level failures so Execute maps them to
// exit code 2.
func classify(err error) error {
	if err == nil {
		return nil
	}

	var cycleErr *graph.CycleError
	if errors.Is(err, graph.ErrUnknownTask) || errors.As(err, &cycleErr) {
		return &usageError{err: err}
	}
	return err
}
