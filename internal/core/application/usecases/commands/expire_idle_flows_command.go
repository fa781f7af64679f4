package commands

import (
	"errors"
	"time"

	"parcel/internal/pkg/errs"
	"parcel/internal/pkg/guard"
)

var ErrExpireIdleFlowsCommandIsNotConstructed = errors.New(
	"ExpireIdleFlowsCommand must be created via NewExpireIdleFlowsCommand constructor",
)

// ExpireIdleFlowsCommand resets every flow idle for longer than TTL as of Now.
// Flows with a call in flight are never expired.
type ExpireIdleFlowsCommand struct { //nolint:recvcheck //using for validation
	now time.Time
	ttl time.Duration

	guard guard.ConstructorGuard
}

func NewExpireIdleFlowsCommand(now time.Time, ttl time.Duration) (ExpireIdleFlowsCommand, error) {
	var nowErr, ttlErr error
	if now.IsZero() {
		nowErr = errs.NewValueIsRequiredError("now")
	}
	if ttl <= 0 {
		ttlErr = errs.NewValueIsOutOfRangeError("ttl", ttl, "1ns", "unbounded")
	}
	if err := errors.Join(nowErr, ttlErr); err != nil {
		return ExpireIdleFlowsCommand{}, err
	}

	return ExpireIdleFlowsCommand{
		now:   now,
		ttl:   ttl,
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (c ExpireIdleFlowsCommand) Validate() error {
	return c.guard.Validate(ErrExpireIdleFlowsCommandIsNotConstructed)
}

func (c ExpireIdleFlowsCommand) Now() time.Time     { return c.now }
func (c ExpireIdleFlowsCommand) TTL() time.Duration { return c.ttl }
