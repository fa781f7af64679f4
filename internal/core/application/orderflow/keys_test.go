package orderflow_test

import (
	"strconv"
	"strings"
	"testing"
	"time"

	"parcel/internal/core/application/orderflow"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeRandomKeys(t *testing.T) {
	keys := orderflow.NewTimeRandomKeys()
	before := time.Now().UnixMilli()

	seen := make(map[string]struct{})
	for range 100 {
		k := keys.NewKey()
		_, dup := seen[k]
		require.False(t, dup, "duplicate key %s", k)
		seen[k] = struct{}{}

		ts, suffix, ok := strings.Cut(k, "-")
		require.True(t, ok)
		ms, err := strconv.ParseInt(ts, 10, 64)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, ms, before)
		_, err = uuid.Parse(suffix)
		require.NoError(t, err)
	}
}
