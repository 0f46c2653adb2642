package util

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errTransient = errors.New("transient")

func TestRetryWithContext(t *testing.T) {
	t.Run("succeeds after failures", func(t *testing.T) {
		calls := 0
		got, err := RetryWithContext(context.Background(), 3, 0, nil, func(context.Context) (string, error) {
			calls++
			if calls < 3 {
				return "", errTransient
			}
			return "ok", nil
		})
		require.NoError(t, err)
		assert.Equal(t, "ok", got)
		assert.Equal(t, 3, calls)
	})

	t.Run("returns last error", func(t *testing.T) {
		calls := 0
		_, err := RetryWithContext(context.Background(), 2, 0, nil, func(context.Context) (int, error) {
			calls++
			return 0, errTransient
		})
		assert.ErrorIs(t, err, errTransient)
		assert.Equal(t, 2, calls)
	})

	t.Run("permanent error stops", func(t *testing.T) {
		calls := 0
		permanent := errors.New("permanent")
		_, err := RetryWithContext(context.Background(), 5, 0, func(err error) bool {
			return errors.Is(err, permanent)
		}, func(context.Context) (int, error) {
			calls++
			return 0, permanent
		})
		assert.ErrorIs(t, err, permanent)
		assert.Equal(t, 1, calls)
	})

	t.Run("zero tries runs once", func(t *testing.T) {
		calls := 0
		_, _ = RetryWithContext(context.Background(), 0, 0, nil, func(context.Context) (int, error) {
			calls++
			return 0, errTransient
		})
		assert.Equal(t, 1, calls)
	})

	t.Run("canceled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := RetryWithContext(ctx, 3, 0, nil, func(context.Context) (int, error) {
			t.Fatal("fn must not be called")
			return 0, nil
		})
		assert.ErrorIs(t, err, context.Canceled)
	})
}
