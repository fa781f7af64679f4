package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"parcel/internal/jobs"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// An empty OrderDeskURL runs against the in-memory desk.
	OrderDeskURL     string
	OrderDeskAPIKey  string
	OrderDeskTimeout time.Duration

	// No brokers means events stay in the outbox.
	KafkaBrokers     []string
	KafkaTopicPrefix string

	// An empty RedisAddr keeps the in-flight guard in process.
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	InFlightTTL   time.Duration

	FlowTTL   time.Duration
	Schedules jobs.Schedules
}

// DSN is the libpq connection string for gorm's postgres driver.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// LoadConfig reads .env when present and then the process environment, which
// wins over the file.
func LoadConfig(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	var errList []error
	duration := func(key string, def time.Duration) time.Duration {
		raw := os.Getenv(key)
		if raw == "" {
			return def
		}
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			errList = append(errList, fmt.Errorf("%s: %q is not a positive duration", key, raw))
			return def
		}
		return d
	}

	redisDB := 0
	if raw := os.Getenv("REDIS_DB"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			errList = append(errList, fmt.Errorf("REDIS_DB: %q is not a database number", raw))
		}
		redisDB = n
	}

	cfg := Config{
		HTTPPort:         envOr("HTTP_PORT", "8080"),
		DBHost:           envOr("DB_HOST", "localhost"),
		DBPort:           envOr("DB_PORT", "5432"),
		DBUser:           os.Getenv("DB_USER"),
		DBPassword:       os.Getenv("DB_PASSWORD"),
		DBName:           os.Getenv("DB_NAME"),
		DBSslMode:        envOr("DB_SSLMODE", "disable"),
		OrderDeskURL:     os.Getenv("ORDER_DESK_URL"),
		OrderDeskAPIKey:  os.Getenv("ORDER_DESK_API_KEY"),
		OrderDeskTimeout: duration("ORDER_DESK_TIMEOUT", 10*time.Second),
		KafkaBrokers:     splitList(os.Getenv("KAFKA_BROKERS")),
		KafkaTopicPrefix: os.Getenv("KAFKA_TOPIC_PREFIX"),
		RedisAddr:        os.Getenv("REDIS_ADDR"),
		RedisPassword:    os.Getenv("REDIS_PASSWORD"),
		RedisDB:          redisDB,
		InFlightTTL:      duration("IN_FLIGHT_TTL", 30*time.Second),
		FlowTTL:          duration("FLOW_TTL", 30*time.Minute),
		Schedules: jobs.Schedules{
			OutboxRelay: envOr("OUTBOX_RELAY_SCHEDULE", jobs.DefaultSchedules.OutboxRelay),
			FlowExpiry:  envOr("FLOW_EXPIRY_SCHEDULE", jobs.DefaultSchedules.FlowExpiry),
		},
	}

	if cfg.DBUser == "" {
		errList = append(errList, errors.New("DB_USER is required"))
	}
	if cfg.DBName == "" {
		errList = append(errList, errors.New("DB_NAME is required"))
	}

	if err := errors.Join(errList...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func splitList(raw string) []string {
	var out []string
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
