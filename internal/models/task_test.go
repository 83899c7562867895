package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/valutatrade/hubrun/internal/models"
)

func TestTaskValidate(t *testing.T) {
	t.Run("valid_command_task", func(t *testing.T) {
		task := models.Task{Name: "build", Commands: []string{"poetry build"}}
		assert.NoError(t, task.Validate())
	})

	t.Run("valid_dependency_only_task", func(t *testing.T) {
		task := models.Task{Name: "check", DependsOn: []string{"lint"}, Message: "ok"}
		assert.NoError(t, task.Validate())
	})

	t.Run("valid_syntax_task", func(t *testing.T) {
		task := models.Task{Name: "check-syntax", SyntaxDir: "valutatrade_hub"}
		assert.NoError(t, task.Validate())
	})

	t.Run("missing_name", func(t *testing.T) {
		task := models.Task{Commands: []string{"true"}}
		assert.EqualError(t, task.Validate(), "task name is required")
	})

	t.Run("no_effect", func(t *testing.T) {
		task := models.Task{Name: "noop"}
		err := task.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "no commands")
	})

	t.Run("self_dependency", func(t *testing.T) {
		task := models.Task{Name: "a", DependsOn: []string{"a"}}
		err := task.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "depends on itself")
	})
}

func TestRunRecordFinish(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		rec := models.NewRunRecord("check")
		assert.Equal(t, models.RunStatusRunning, rec.Status)

		rec.Finish(0, "")
		assert.Equal(t, models.RunStatusSucceeded, rec.Status)
		assert.Zero(t, rec.ExitCode)
	})

	t.Run("failure", func(t *testing.T) {
		rec := models.NewRunRecord("lint")
		rec.Finish(3, "poetry run flake8 valutatrade_hub")
		assert.Equal(t, models.RunStatusFailed, rec.Status)
		assert.Equal(t, 3, rec.ExitCode)
		assert.Equal(t, "poetry run flake8 valutatrade_hub", rec.FailedCommand)
	})
}
