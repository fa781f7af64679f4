// Package redislock admits one mutating call per key at a time, either within
// one process (MemoryGuard) or across instances sharing a Redis (Guard).
package redislock

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"parcel/internal/core/ports"
	"parcel/internal/pkg/errs"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// DefaultTTL bounds how long a crashed holder keeps a key.
const DefaultTTL = 30 * time.Second

// releaseTimeout bounds the unlock round trip.
const releaseTimeout = 2 * time.Second

// releaseScript deletes the key only if it still holds our token.
const releaseScript = `if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`

// lockClient is the subset of *redis.Client the guard uses.
type lockClient interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd
}

// Guard holds keys in Redis with SET NX PX. Each acquisition writes a random
// token, and release removes the key only while the token still matches, so
// an expired holder cannot free a key someone else has taken since.
type Guard struct {
	client lockClient
	prefix string
	ttl    time.Duration
	logger *slog.Logger
}

var _ ports.InFlightGuard = (*Guard)(nil)

func NewGuard(client lockClient, prefix string, ttl time.Duration, logger *slog.Logger) *Guard {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Guard{
		client: client,
		prefix: prefix,
		ttl:    ttl,
		logger: logger.With("component", "redislock"),
	}
}

func (g *Guard) Acquire(ctx context.Context, key string) (func(), error) {
	if key == "" {
		return nil, errs.NewValueIsRequiredError("lock key")
	}

	fullKey := g.prefix + key
	token := uuid.NewString()

	ok, err := g.client.SetNX(ctx, fullKey, token, g.ttl).Result()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errs.ErrOperationInFlight
	}

	var once sync.Once
	release := func() {
		once.Do(func() {
			releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), releaseTimeout)
			defer cancel()
			if err := g.client.Eval(releaseCtx, releaseScript, []string{fullKey}, token).Err(); err != nil {
				g.logger.WarnContext(ctx, "Failed to release lock, it will expire", "key", fullKey, "error", err)
			}
		})
	}
	return release, nil
}

// MemoryGuard is the single-process guard.
type MemoryGuard struct {
	mu   sync.Mutex
	held map[string]struct{}
}

var _ ports.InFlightGuard = (*MemoryGuard)(nil)

func NewMemoryGuard() *MemoryGuard {
	return &MemoryGuard{held: make(map[string]struct{})}
}

func (g *MemoryGuard) Acquire(_ context.Context, key string) (func(), error) {
	if key == "" {
		return nil, errs.NewValueIsRequiredError("lock key")
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.held[key]; ok {
		return nil, errs.ErrOperationInFlight
	}
	g.held[key] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			delete(g.held, key)
			g.mu.Unlock()
		})
	}, nil
}
