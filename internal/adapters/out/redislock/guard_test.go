package redislock_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"parcel/internal/adapters/out/redislock"
	"parcel/internal/pkg/errs"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockLockClient struct {
	mock.Mock
}

func (m *MockLockClient) SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd {
	args := m.Called(ctx, key, value, expiration)
	return args.Get(0).(*redis.BoolCmd)
}

func (m *MockLockClient) Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd {
	called := m.Called(ctx, script, keys, args)
	return called.Get(0).(*redis.Cmd)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestGuard_Acquire(t *testing.T) {
	t.Run("should set the key with a token and release it with the same token", func(t *testing.T) {
		client := new(MockLockClient)
		guard := redislock.NewGuard(client, "parcel:", 5*time.Second, discardLogger())

		var token any
		client.On("SetNX", mock.Anything, "parcel:shipment:1", mock.Anything, 5*time.Second).
			Run(func(args mock.Arguments) { token = args.Get(2) }).
			Return(redis.NewBoolResult(true, nil)).Once()

		release, err := guard.Acquire(t.Context(), "shipment:1")
		require.NoError(t, err)
		require.NotNil(t, release)

		client.On("Eval", mock.Anything, mock.Anything, []string{"parcel:shipment:1"}, []interface{}{token}).
			Return(redis.NewCmdResult(int64(1), nil)).Once()

		release()
		release()

		client.AssertExpectations(t)
	})

	t.Run("should report a held key as in flight", func(t *testing.T) {
		client := new(MockLockClient)
		guard := redislock.NewGuard(client, "", 0, discardLogger())
		client.On("SetNX", mock.Anything, "shipment:1", mock.Anything, redislock.DefaultTTL).
			Return(redis.NewBoolResult(false, nil)).Once()

		release, err := guard.Acquire(t.Context(), "shipment:1")

		require.ErrorIs(t, err, errs.ErrOperationInFlight)
		assert.Nil(t, release)
	})

	t.Run("should return redis errors", func(t *testing.T) {
		client := new(MockLockClient)
		guard := redislock.NewGuard(client, "", 0, discardLogger())
		down := errors.New("connection refused")
		client.On("SetNX", mock.Anything, "shipment:1", mock.Anything, redislock.DefaultTTL).
			Return(redis.NewBoolResult(false, down)).Once()

		_, err := guard.Acquire(t.Context(), "shipment:1")

		require.ErrorIs(t, err, down)
	})

	t.Run("should swallow release failures", func(t *testing.T) {
		client := new(MockLockClient)
		guard := redislock.NewGuard(client, "", 0, discardLogger())
		client.On("SetNX", mock.Anything, "k", mock.Anything, redislock.DefaultTTL).
			Return(redis.NewBoolResult(true, nil)).Once()
		client.On("Eval", mock.Anything, mock.Anything, []string{"k"}, mock.Anything).
			Return(redis.NewCmdResult(nil, errors.New("timeout"))).Once()

		release, err := guard.Acquire(t.Context(), "k")
		require.NoError(t, err)

		assert.NotPanics(t, release)
		client.AssertExpectations(t)
	})

	t.Run("should require a key", func(t *testing.T) {
		guard := redislock.NewGuard(new(MockLockClient), "", 0, discardLogger())

		_, err := guard.Acquire(t.Context(), "")

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestMemoryGuard(t *testing.T) {
	t.Run("should admit a key once until released", func(t *testing.T) {
		guard := redislock.NewMemoryGuard()

		release, err := guard.Acquire(t.Context(), "a")
		require.NoError(t, err)

		_, err = guard.Acquire(t.Context(), "a")
		require.ErrorIs(t, err, errs.ErrOperationInFlight)

		other, err := guard.Acquire(t.Context(), "b")
		require.NoError(t, err)
		other()

		release()
		release()

		again, err := guard.Acquire(t.Context(), "a")
		require.NoError(t, err)
		again()
	})

	t.Run("should admit exactly one of many concurrent callers", func(t *testing.T) {
		guard := redislock.NewMemoryGuard()
		var admitted atomic.Int32
		var wg sync.WaitGroup
		releases := make(chan func(), 20)

		for range 20 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				release, err := guard.Acquire(t.Context(), "shipment:1")
				if err == nil {
					admitted.Add(1)
					releases <- release
				}
			}()
		}
		wg.Wait()
		close(releases)

		assert.Equal(t, int32(1), admitted.Load())
		for release := range releases {
			release()
		}
	})
}
