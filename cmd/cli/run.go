package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/valutatrade/hubrun/internal/config"
	"github.com/valutatrade/hubrun/internal/executor"
	"github.com/valutatrade/hubrun/internal/graph"
	"github.com/valutatrade/hubrun/internal/history"
	"github.com/valutatrade/hubrun/internal/runner"
	"github.com/valutatrade/hubrun/pkg/logger"
)

// loadGraph reads the configuration and indexes its task set, applying
// CLI flag overrides.
func loadGraph() (*config.Config, *graph.Graph, error) {
	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		return nil, nil, &usageError{err: err}
	}

	if workDir != "" {
		cfg.Runner.WorkDir = workDir
	}

	g, err := graph.New(cfg.Tasks)
	if err != nil {
		return nil, nil, classify(err)
	}
	return cfg, g, nil
}

// runTarget executes one named task: dependencies first, own commands
// after, halting at the first non-zero exit.
func runTarget(cmd *cobra.Command, target string) error {
	log := logger.WithComponent("cli")

	cfg, g, err := loadGraph()
	if err != nil {
		return err
	}

	exec := executor.NewShellExecutor(cfg.Runner.Shell, cfg.Runner.WorkDir)

	var store runner.HistoryStore
	if cfg.Runner.HistoryFile != "" {
		path := cfg.Runner.HistoryFile
		if cfg.Runner.WorkDir != "" && !filepath.IsAbs(path) {
			path = filepath.Join(cfg.Runner.WorkDir, path)
		}
		store = history.NewStore(path, cfg.Runner.HistoryLimit)
	}

	r := runner.NewRunner(g, exec, store, cfg.Runner.WorkDir)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if timeout != "" {
		d, parseErr := time.ParseDuration(timeout)
		if parseErr != nil {
			return &usageError{err: fmt.Errorf("invalid --timeout: %w", parseErr)}
		}
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d)
		defer cancel()
	}

	record, err := r.Run(ctx, target)
	if err != nil {
		if record != nil {
			log.Error().
				Str("task", target).
				Int("exit_code", record.ExitCode).
				Msg("Run failed")
		}
		return classify(err)
	}
	return nil
}
