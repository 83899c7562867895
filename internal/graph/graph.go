// Package graph resolves task dependency edges into a sequential
// execution plan. Edges must form a finite DAG; resolution is
// deterministic and follows declaration order.
package graph

import (
	"errors"
	"fmt"
	"strings"

	"github.com/valutatrade/hubrun/internal/models"
)

// ErrUnknownTask is returned when a task name does not match any
// declared task.
var ErrUnknownTask = errors.New("unknown task")

// CycleError reports one cycle found among the dependency edges.
type CycleError struct {
	Path []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("dependency cycle: %s", strings.Join(e.Path, " -> "))
}

// Graph is an immutable index over a validated task set.
type Graph struct {
	tasks map[string]*models.Task
	order []string
}

// New indexes the task set and proves the dependency edges are acyclic.
// Duplicate names and edges to undeclared tasks are rejected.
func New(tasks []models.Task) (*Graph, error) {
	g := &Graph{
		tasks: make(map[string]*models.Task, len(tasks)),
		order: make([]string, 0, len(tasks)),
	}

	for i := range tasks {
		t := &tasks[i]
		if _, ok := g.tasks[t.Name]; ok {
			return nil, fmt.Errorf("duplicate task name %q", t.Name)
		}
		g.tasks[t.Name] = t
		g.order = append(g.order, t.Name)
	}

	for _, name := range g.order {
		for _, dep := range g.tasks[name].DependsOn {
			if _, ok := g.tasks[dep]; !ok {
				return nil, fmt.Errorf("task %q: dependency %q: %w", name, dep, ErrUnknownTask)
			}
		}
	}

	if cycle := g.findCycle(); cycle != nil {
		return nil, &CycleError{Path: cycle}
	}

	return g, nil
}

// Task returns the declared task by name.
func (g *Graph) Task(name string) (*models.Task, bool) {
	t, ok := g.tasks[name]
	return t, ok
}

// Names returns task names in declaration order.
func (g *Graph) Names() []string {
	out := make([]string, len(g.order))
	copy(out, g.order)
	return out
}

// Plan returns the dependency-first execution order for target: every
// dependency task appears fully before its dependent, each task at most
// once, siblings in declaration order.
func (g *Graph) Plan(target string) ([]*models.Task, error) {
	if _, ok := g.tasks[target]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTask, target)
	}

	var plan []*models.Task
	visited := make(map[string]bool, len(g.tasks))

	var visit func(name string)
	visit = func(name string) {
		if visited[name] {
			return
		}
		visited[name] = true
		t := g.tasks[name]
		for _, dep := range t.DependsOn {
			visit(dep)
		}
		plan = append(plan, t)
	}
	visit(target)

	return plan, nil
}

// findCycle walks every component depth-first over declaration order and
// returns one deterministic cycle witness, or nil if the graph is acyclic.
func (g *Graph) findCycle() []string {
	const (
		white = iota
		gray
		black
	)

	color := make(map[string]int, len(g.tasks))
	var cycle []string

	var visit func(name string, stack []string) bool
	visit = func(name string, stack []string) bool {
		color[name] = gray
		stack = append(stack, name)

		for _, dep := range g.tasks[name].DependsOn {
			switch color[dep] {
			case gray:
				// Close the witness at the first repeated node.
				for i, n := range stack {
					if n == dep {
						cycle = append(append(cycle, stack[i:]...), dep)
						return true
					}
				}
			case white:
				if visit(dep, stack) {
					return true
				}
			}
		}

		color[name] = black
		return false
	}

	for _, name := range g.order {
		if color[name] == white {
			if visit(name, nil) {
				return cycle
			}
		}
	}
	return nil
}
