package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"

	"github.com/valutatrade/hubrun/internal/models"
)

type Config struct {
	Runner RunnerConfig  `mapstructure:"runner"`
	Tasks  []models.Task `mapstructure:"tasks"`
}

type RunnerConfig struct {
	Shell        string `mapstructure:"shell"`
	WorkDir      string `mapstructure:"work_dir"`
	HistoryFile  string `mapstructure:"history_file"`
	HistoryLimit int    `mapstructure:"history_limit"`
}

// DefaultTasks is the built-in task set mirroring the valutatrade-hub
// Makefile. A config file that declares its own tasks replaces it entirely.
func DefaultTasks() []models.Task {
	return []models.Task{
		{Name: "install", Commands: []string{"poetry install"}},
		{Name: "project", Commands: []string{"poetry run project"}},
		{Name: "build", Commands: []string{"poetry build"}},
		{Name: "publish", Commands: []string{"poetry publish --dry-run"}},
		{Name: "package-install", Commands: []string{"python3 -m pip install dist/*.whl"}},
		{Name: "lint", Commands: []string{"poetry run flake8 valutatrade_hub"}},
		{Name: "format", Commands: []string{"poetry run black valutatrade_hub"}},
		{Name: "format-check", Commands: []string{"poetry run black --check valutatrade_hub"}},
		{
			Name:      "check",
			DependsOn: []string{"lint", "format-check"},
			Message:   "Все проверки пройдены!",
		},
		{
			Name:      "check-syntax",
			SyntaxDir: "valutatrade_hub",
			Message:   "Синтаксис всех файлов корректен!",
		},
	}
}

// LoadConfig reads the runner configuration. With an empty path it looks for
// an optional hubrun.yaml in the current directory and falls back to the
// built-in defaults; an explicit path must exist.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %q: %w", path, err)
		}
	} else {
		v.SetConfigName("hubrun")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if len(cfg.Tasks) == 0 {
		cfg.Tasks = DefaultTasks()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks every task definition and the uniqueness of task names.
// Edge and cycle validation belongs to the graph package.
func (c *Config) Validate() error {
	seen := make(map[string]struct{}, len(c.Tasks))
	for i := range c.Tasks {
		t := &c.Tasks[i]
		if err := t.Validate(); err != nil {
			return err
		}
		if _, ok := seen[t.Name]; ok {
			return fmt.Errorf("duplicate task name %q", t.Name)
		}
		seen[t.Name] = struct{}{}
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("runner.shell", "sh")
	v.SetDefault("runner.work_dir", "")
	v.SetDefault("runner.history_file", ".hubrun/history.json")
	v.SetDefault("runner.history_limit", 100)
}
