package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valutatrade/hubrun/internal/config"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := config.LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "sh", cfg.Runner.Shell)
	assert.Equal(t, ".hubrun/history.json", cfg.Runner.HistoryFile)
	assert.Equal(t, 100, cfg.Runner.HistoryLimit)
	require.Len(t, cfg.Tasks, 10)

	byName := make(map[string]int, len(cfg.Tasks))
	for i, task := range cfg.Tasks {
		byName[task.Name] = i
	}

	for _, name := range []string{
		"install", "project", "build", "publish", "package-install",
		"lint", "format", "format-check", "check", "check-syntax",
	} {
		assert.Contains(t, byName, name)
	}

	check := cfg.Tasks[byName["check"]]
	assert.Equal(t, []string{"lint", "format-check"}, check.DependsOn)
	assert.NotEmpty(t, check.Message)

	syntax := cfg.Tasks[byName["check-syntax"]]
	assert.Equal(t, "valutatrade_hub", syntax.SyntaxDir)
	assert.NotEmpty(t, syntax.Message)

	publish := cfg.Tasks[byName["publish"]]
	assert.Equal(t, []string{"poetry publish --dry-run"}, publish.Commands)
}

func TestLoadConfigFile(t *testing.T) {
	t.Run("tasks_replace_defaults", func(t *testing.T) {
		path := writeConfig(t, `
runner:
  shell: bash
  history_limit: 5
tasks:
  - name: greet
    commands:
      - echo hello
`)
		cfg, err := config.LoadConfig(path)
		require.NoError(t, err)

		assert.Equal(t, "bash", cfg.Runner.Shell)
		assert.Equal(t, 5, cfg.Runner.HistoryLimit)
		require.Len(t, cfg.Tasks, 1)
		assert.Equal(t, "greet", cfg.Tasks[0].Name)
		assert.Equal(t, []string{"echo hello"}, cfg.Tasks[0].Commands)
	})

	t.Run("runner_only_keeps_default_tasks", func(t *testing.T) {
		path := writeConfig(t, `
runner:
  shell: zsh
`)
		cfg, err := config.LoadConfig(path)
		require.NoError(t, err)

		assert.Equal(t, "zsh", cfg.Runner.Shell)
		assert.Len(t, cfg.Tasks, 10)
	})

	t.Run("missing_explicit_path", func(t *testing.T) {
		_, err := config.LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.Error(t, err)
	})

	t.Run("duplicate_task_names", func(t *testing.T) {
		path := writeConfig(t, `
tasks:
  - name: lint
    commands: ["flake8 ."]
  - name: lint
    commands: ["ruff check ."]
`)
		_, err := config.LoadConfig(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "duplicate task name")
	})

	t.Run("task_without_effect", func(t *testing.T) {
		path := writeConfig(t, `
tasks:
  - name: noop
`)
		_, err := config.LoadConfig(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no commands")
	})
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hubrun.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
