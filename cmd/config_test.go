package cmd_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"parcel/cmd"
	"parcel/internal/jobs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("DB_USER", "parcel")
	t.Setenv("DB_NAME", "parcel")
}

func TestLoadConfig(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "absent.env")

	t.Run("should apply defaults", func(t *testing.T) {
		setRequired(t)

		cfg, err := cmd.LoadConfig(missing)

		require.NoError(t, err)
		assert.Equal(t, "8080", cfg.HTTPPort)
		assert.Equal(t, 10*time.Second, cfg.OrderDeskTimeout)
		assert.Equal(t, 30*time.Minute, cfg.FlowTTL)
		assert.Equal(t, 30*time.Second, cfg.InFlightTTL)
		assert.Empty(t, cfg.KafkaBrokers)
		assert.Equal(t, jobs.DefaultSchedules, cfg.Schedules)
		assert.Equal(t, "host=localhost port=5432 user=parcel password= dbname=parcel sslmode=disable", cfg.DSN())
	})

	t.Run("should read values from the environment", func(t *testing.T) {
		setRequired(t)
		t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,")
		t.Setenv("FLOW_TTL", "45m")
		t.Setenv("REDIS_DB", "3")
		t.Setenv("ORDER_DESK_URL", "https://desk.example.com")

		cfg, err := cmd.LoadConfig(missing)

		require.NoError(t, err)
		assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers)
		assert.Equal(t, 45*time.Minute, cfg.FlowTTL)
		assert.Equal(t, 3, cfg.RedisDB)
		assert.Equal(t, "https://desk.example.com", cfg.OrderDeskURL)
	})

	t.Run("should read an env file", func(t *testing.T) {
		setRequired(t)
		// godotenv never overrides a variable that is already set.
		t.Setenv("HTTP_PORT", "")
		require.NoError(t, os.Unsetenv("HTTP_PORT"))
		env := filepath.Join(t.TempDir(), "test.env")
		require.NoError(t, os.WriteFile(env, []byte("HTTP_PORT=9090\n"), 0o600))

		cfg, err := cmd.LoadConfig(env)

		require.NoError(t, err)
		assert.Equal(t, "9090", cfg.HTTPPort)
		require.NoError(t, os.Unsetenv("HTTP_PORT"))
	})

	t.Run("should report every invalid value", func(t *testing.T) {
		t.Setenv("DB_USER", "")
		t.Setenv("DB_NAME", "")
		t.Setenv("FLOW_TTL", "forever")
		t.Setenv("REDIS_DB", "-1")

		_, err := cmd.LoadConfig(missing)

		require.Error(t, err)
		assert.ErrorContains(t, err, "DB_USER is required")
		assert.ErrorContains(t, err, "DB_NAME is required")
		assert.ErrorContains(t, err, "FLOW_TTL")
		assert.ErrorContains(t, err, "REDIS_DB")
	})
}
