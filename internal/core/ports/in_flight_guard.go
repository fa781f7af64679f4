package ports

import "context"

// InFlightGuard admits one mutating call per key at a time. Acquire returns
// errs.ErrOperationInFlight when the key is already held; the caller must
// call release once done.
type InFlightGuard interface {
	Acquire(ctx context.Context, key string) (release func(), err error)
}
