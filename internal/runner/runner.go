package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/valutatrade/hubrun/internal/executor"
	"github.com/valutatrade/hubrun/internal/graph"
	"github.com/valutatrade/hubrun/internal/models"
	"github.com/valutatrade/hubrun/pkg/logger"
)

// HistoryStore persists run records. Append failures must not fail the
// run itself.
type HistoryStore interface {
	Append(record models.RunRecord) error
}

// Runner resolves a task's dependency edges and executes the resulting
// plan strictly sequentially, halting at the first command that exits
// non-zero.
type Runner struct {
	graph   *graph.Graph
	exec    executor.CommandExecutor
	history HistoryStore
	workDir string

	// Stdout receives task success messages; subprocess output goes
	// wherever the executor sends it.
	Stdout io.Writer
}

// NewRunner creates a Runner. history may be nil to disable run records.
func NewRunner(g *graph.Graph, exec executor.CommandExecutor, history HistoryStore, workDir string) *Runner {
	return &Runner{
		graph:   g,
		exec:    exec,
		history: history,
		workDir: workDir,
		Stdout:  os.Stdout,
	}
}

// Run executes the named task after all of its dependencies. The returned
// record is always non-nil for a known task; the error carries the first
// failing step (use executor.ExitCode to derive the process exit status).
func (r *Runner) Run(ctx context.Context, target string) (*models.RunRecord, error) {
	log := logger.WithComponent("runner")

	plan, err := r.graph.Plan(target)
	if err != nil {
		return nil, err
	}

	record := models.NewRunRecord(target)
	log.Info().
		Str("run_id", record.ID.String()).
		Str("task", target).
		Int("tasks_planned", len(plan)).
		Msg("Starting run")

	for _, task := range plan {
		if err := r.runTask(ctx, task, log); err != nil {
			var failed string
			var exitErr *executor.ExitError
			if errors.As(err, &exitErr) {
				failed = exitErr.Step.Command
			}
			record.Finish(executor.ExitCode(err), failed)
			r.saveRecord(record, log)
			return record, err
		}
	}

	record.Finish(0, "")
	r.saveRecord(record, log)
	log.Info().
		Str("run_id", record.ID.String()).
		Str("task", target).
		Int64("duration_ms", record.DurationMS).
		Msg("Run succeeded")
	return record, nil
}

// runTask executes one task's resolved steps in order and prints its
// success message once every step has passed.
func (r *Runner) runTask(ctx context.Context, task *models.Task, log zerolog.Logger) error {
	steps, err := r.expand(task)
	if err != nil {
		return err
	}

	log.Debug().Str("task", task.Name).Int("steps", len(steps)).Msg("Running task")

	for _, step := range steps {
		start := time.Now()
		if err := r.exec.Run(ctx, step); err != nil {
			log.Error().
				Str("task", step.Task).
				Str("command", step.Command).
				Dur("duration", time.Since(start)).
				Err(err).
				Msg("Step failed")
			return err
		}
		log.Debug().
			Str("task", step.Task).
			Str("command", step.Command).
			Dur("duration", time.Since(start)).
			Msg("Step succeeded")
	}

	if task.Message != "" {
		fmt.Fprintln(r.Stdout, task.Message)
	}
	return nil
}

// expand resolves a task definition into concrete steps: syntax-check
// expansion first, then the declared commands in order.
func (r *Runner) expand(task *models.Task) ([]models.Step, error) {
	var steps []models.Step

	if task.SyntaxDir != "" {
		syntax, err := syntaxSteps(task, r.workDir)
		if err != nil {
			return nil, err
		}
		steps = append(steps, syntax...)
	}

	for _, cmd := range task.Commands {
		steps = append(steps, models.Step{Task: task.Name, Command: cmd})
	}
	return steps, nil
}

func (r *Runner) saveRecord(record *models.RunRecord, log zerolog.Logger) {
	if r.history == nil {
		return
	}
	if err := r.history.Append(*record); err != nil {
		log.Warn().Err(err).Msg("Failed to append run history")
	}
}
