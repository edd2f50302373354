package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDo(t *testing.T) {
	t.Run("returns nil on first success", func(t *testing.T) {
		calls := 0
		err := Do(context.Background(), func() error {
			calls++
			return nil
		})

		require.NoError(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("retries until success", func(t *testing.T) {
		calls := 0
		err := Do(context.Background(), func() error {
			calls++
			if calls < 3 {
				return errors.New("transient")
			}
			return nil
		}, Attempts(5), InitialDelay(time.Millisecond))

		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("exhausts the attempt budget and wraps the last error", func(t *testing.T) {
		boom := errors.New("still down")
		calls := 0
		err := Do(context.Background(), func() error {
			calls++
			return boom
		}, Attempts(4), InitialDelay(time.Millisecond), MaxDelay(2*time.Millisecond))

		require.Error(t, err)
		assert.ErrorIs(t, err, boom)
		assert.Contains(t, err.Error(), "4 attempt(s)")
		assert.Equal(t, 4, calls)
	})

	t.Run("stops when the context is cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		calls := 0
		err := Do(ctx, func() error {
			calls++
			return errors.New("down")
		}, Attempts(10), InitialDelay(time.Hour))

		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, calls)
	})
}
