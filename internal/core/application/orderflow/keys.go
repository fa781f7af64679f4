package orderflow

import (
	"strconv"
	"time"

	"github.com/google/uuid"
)

// KeyGenerator issues idempotency keys, one per submission attempt.
type KeyGenerator interface {
	NewKey() string
}

// TimeRandomKeys builds keys from a millisecond timestamp and a random
// UUID, e.g. "1767225600000-6f1c...". The prefix keeps keys sortable in
// desk logs; the suffix makes collisions negligible.
type TimeRandomKeys struct {
	now func() time.Time
}

func NewTimeRandomKeys() TimeRandomKeys {
	return TimeRandomKeys{now: time.Now}
}

func (g TimeRandomKeys) NewKey() string {
	now := g.now
	if now == nil {
		now = time.Now
	}
	return strconv.FormatInt(now().UnixMilli(), 10) + "-" + uuid.NewString()
}
