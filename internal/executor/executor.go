package executor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/valutatrade/hubrun/internal/models"
)

// CommandExecutor runs a single resolved step to completion.
type CommandExecutor interface {
	Run(ctx context.Context, step models.Step) error
}

// ExitError reports a step that ran but exited non-zero. The code is
// propagated verbatim as the process exit status.
type ExitError struct {
	Step models.Step
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("task %s: command %q exited with code %d", e.Step.Task, e.Step.Command, e.Code)
}

// ExitCode maps an executor error to a process exit status: 0 for nil,
// the subprocess code for ExitError, 1 otherwise.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return 1
}

// ShellExecutor runs steps through the configured shell in the configured
// directory. The wrapped tools own their diagnostics, so the subprocess
// inherits stdout/stderr instead of capturing them.
type ShellExecutor struct {
	Shell  string
	Dir    string
	Stdout io.Writer
	Stderr io.Writer
}

// NewShellExecutor creates a ShellExecutor writing to the process stdio.
func NewShellExecutor(shell, dir string) *ShellExecutor {
	if shell == "" {
		shell = "sh"
	}
	return &ShellExecutor{
		Shell:  shell,
		Dir:    dir,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

func (e *ShellExecutor) Run(ctx context.Context, step models.Step) error {
	cmd := exec.CommandContext(ctx, e.Shell, "-c", step.Command)
	cmd.Dir = e.Dir
	cmd.Stdin = os.Stdin
	cmd.Stdout = e.Stdout
	cmd.Stderr = e.Stderr

	return classifyRunError(ctx, step, cmd.Run())
}

// classifyRunError maps a command outcome to the runner's error taxonomy.
// A process that ran to completion keeps its own exit status even when the
// context expired in the same instant; a negative exit code means the
// process was killed, which is attributed to the context when it is done.
func classifyRunError(ctx context.Context, step models.Step, err error) error {
	if err == nil {
		return nil
	}

	var execErr *exec.ExitError
	if errors.As(err, &execErr) && execErr.ExitCode() >= 0 {
		return &ExitError{Step: step, Code: execErr.ExitCode()}
	}

	if ctx.Err() != nil {
		return fmt.Errorf("task %s: command %q: %w", step.Task, step.Command, ctx.Err())
	}

	if errors.As(err, &execErr) {
		return fmt.Errorf("task %s: command %q: %w", step.Task, step.Command, err)
	}

	return fmt.Errorf("task %s: starting command %q: %w", step.Task, step.Command, err)
}
