package googlecloud

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"cloud.google.com/go/datastore"
	"github.com/stretchr/testify/assert"
)

func TestWrapDatastoreError(t *testing.T) {
	assert.Nil(t, WrapDatastoreError(nil))
	assert.Equal(t, ErrNotFound, WrapDatastoreError(datastore.ErrNoSuchEntity))
	assert.Equal(t, ErrNotFound, WrapDatastoreError(fmt.Errorf("get: %w", datastore.ErrNoSuchEntity)))

	other := errors.New("unavailable")
	assert.Equal(t, other, WrapDatastoreError(other))

	assert.True(t, IsNotFoundError(ErrNotFound))
	assert.True(t, IsNotFoundError(datastore.ErrNoSuchEntity))
	assert.False(t, IsNotFoundError(other))
}

func TestWithRetry(t *testing.T) {
	ctx := context.Background()
	cfg := RetryConfig{MaxAttempts: 3, InitialWait: time.Millisecond, MaxWait: 2 * time.Millisecond}

	t.Run("SuccessAfterRetries", func(t *testing.T) {
		calls := 0
		err := WithRetry(ctx, cfg, func() error {
			calls++
			if calls < 3 {
				return errors.New("transient")
			}
			return nil
		})
		assert.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("GivesUp", func(t *testing.T) {
		calls := 0
		err := WithRetry(ctx, cfg, func() error {
			calls++
			return errors.New("transient")
		})
		assert.EqualError(t, err, "transient")
		assert.Equal(t, 3, calls)
	})

	t.Run("NotRetryable", func(t *testing.T) {
		calls := 0
		err := WithRetry(ctx, cfg, func() error {
			calls++
			return ErrInvalidKey
		})
		assert.ErrorIs(t, err, ErrInvalidKey)
		assert.Equal(t, 1, calls)
	})

	t.Run("Cancelled", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		err := WithRetry(cctx, RetryConfig{MaxAttempts: 5, InitialWait: time.Second}, func() error {
			return errors.New("transient")
		})
		assert.ErrorIs(t, err, context.Canceled)
	})
}
