package runner

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/valutatrade/hubrun/internal/models"
)

// discoverPython walks dir recursively and returns every .py file,
// sorted lexicographically. Directory ordering from the OS is never
// trusted. A missing directory yields an empty list: the syntax check
// succeeds vacuously when there is nothing to compile.
func discoverPython(dir string) ([]string, error) {
	if _, err := os.Stat(dir); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("scanning %q: %w", dir, err)
	}

	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ".py") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %q: %w", dir, err)
	}

	sort.Strings(files)
	return files, nil
}

// syntaxSteps expands a task's SyntaxDir into one byte-compile step per
// discovered source file.
func syntaxSteps(task *models.Task, baseDir string) ([]models.Step, error) {
	dir := task.SyntaxDir
	if baseDir != "" && !filepath.IsAbs(dir) {
		dir = filepath.Join(baseDir, dir)
	}

	files, err := discoverPython(dir)
	if err != nil {
		return nil, err
	}

	steps := make([]models.Step, 0, len(files))
	for _, f := range files {
		if baseDir != "" {
			if rel, relErr := filepath.Rel(baseDir, f); relErr == nil {
				f = rel
			}
		}
		steps = append(steps, models.Step{
			Task:    task.Name,
			Command: fmt.Sprintf("python3 -m py_compile %s", shellQuote(f)),
		})
	}
	return steps, nil
}

// shellQuote single-quotes s for sh -c, escaping embedded quotes.
func shellQuote(s string) string {
	if s == "" {
		return "''"
	}
	if !strings.ContainsAny(s, " \t\n'\"\\$&|;<>()*?[]#~%") {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
