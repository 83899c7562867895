package models

import (
	"time"

	"github.com/google/uuid"
)

type RunStatus string

const (
	RunStatusPending   RunStatus = "pending"
	RunStatusRunning   RunStatus = "running"
	RunStatusSucceeded RunStatus = "succeeded"
	RunStatusFailed    RunStatus = "failed"
)

// Step is a single resolved shell command attributed to the task that
// declared (or expanded to) it.
type Step struct {
	Task    string `json:"task"`
	Command string `json:"command"`
}

// StepResult records the outcome of one executed step.
type StepResult struct {
	Step     Step          `json:"step"`
	ExitCode int           `json:"exit_code"`
	Duration time.Duration `json:"duration"`
}

// RunRecord is the persisted summary of one runner invocation.
type RunRecord struct {
	ID            uuid.UUID `json:"id"`
	Task          string    `json:"task"`
	Status        RunStatus `json:"status"`
	ExitCode      int       `json:"exit_code"`
	FailedCommand string    `json:"failed_command,omitempty"`
	StartedAt     time.Time `json:"started_at"`
	DurationMS    int64     `json:"duration_ms"`
}

// NewRunRecord creates a pending record for the given target task.
func NewRunRecord(task string) *RunRecord {
	return &RunRecord{
		ID:        uuid.New(),
		Task:      task,
		Status:    RunStatusRunning,
		StartedAt: time.Now().UTC(),
	}
}

// Finish marks the record as succeeded or failed and stamps its duration.
func (r *RunRecord) Finish(exitCode int, failedCommand string) {
	r.ExitCode = exitCode
	r.FailedCommand = failedCommand
	r.DurationMS = time.Since(r.StartedAt).Milliseconds()
	if exitCode == 0 {
		r.Status = RunStatusSucceeded
	} else {
		r.Status = RunStatusFailed
	}
}
