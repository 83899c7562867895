package cli

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valutatrade/hubrun/internal/executor"
	"github.com/valutatrade/hubrun/internal/graph"
)

func TestClassify(t *testing.T) {
	t.Run("unknown_task_is_usage_error", func(t *testing.T) {
		err := classify(fmt.Errorf("planning: %w", graph.ErrUnknownTask))
		require.Error(t, err)

		var uErr *usageError
		require.ErrorAs(t, err, &uErr)
		assert.ErrorIs(t, err, graph.ErrUnknownTask)
	})

	t.Run("cycle_is_usage_error", func(t *testing.T) {
		cycle := &graph.CycleError{Path: []string{"a", "b", "a"}}
		err := classify(fmt.Errorf("loading tasks: %w", cycle))
		require.Error(t, err)

		var uErr *usageError
		require.ErrorAs(t, err, &uErr)
	})

	t.Run("exit_error_passes_through", func(t *testing.T) {
		exitErr := &executor.ExitError{Code: 3}
		err := classify(exitErr)
		assert.Equal(t, error(exitErr), err)

		var uErr *usageError
		assert.False(t, errors.As(err, &uErr))
	})

	t.Run("other_errors_pass_through", func(t *testing.T) {
		plain := errors.New("history file unwritable")
		assert.Equal(t, plain, classify(plain))
	})

	t.Run("nil_stays_nil", func(t *testing.T) {
		assert.NoError(t, classify(nil))
	})
}
