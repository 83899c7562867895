package models

import (
	"errors"
	"fmt"
)

// Task is a named, ordered sequence of shell commands plus optional
// prerequisite tasks. The task set is fixed at load time and never
// mutated during a run.
type Task struct {
	Name      string   `mapstructure:"name" json:"name" yaml:"name"`
	Commands  []string `mapstructure:"commands" json:"commands,omitempty" yaml:"commands,omitempty"`
	DependsOn []string `mapstructure:"depends_on" json:"depends_on,omitempty" yaml:"depends_on,omitempty"`

	// Message is printed on stdout after every step of the task has
	// succeeded. Dependency tasks run first, so the message also implies
	// their success.
	Message string `mapstructure:"message" json:"message,omitempty" yaml:"message,omitempty"`

	// SyntaxDir, when set, expands at run time into one byte-compile step
	// per .py file found under the directory (recursive, sorted).
	SyntaxDir string `mapstructure:"syntax_dir" json:"syntax_dir,omitempty" yaml:"syntax_dir,omitempty"`
}

// Validate performs basic validation on the task definition.
func (t *Task) Validate() error {
	if t.Name == "" {
		return errors.New("task name is required")
	}

	if len(t.Commands) == 0 && len(t.DependsOn) == 0 && t.SyntaxDir == "" {
		return fmt.Errorf("task %q has no commands, dependencies or syntax_dir", t.Name)
	}

	for _, dep := range t.DependsOn {
		if dep == t.Name {
			return fmt.Errorf("task %q depends on itself", t.Name)
		}
	}

	return nil
}
