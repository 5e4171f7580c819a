package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
[server]
http_port = 9090

[database]
host = "db"
dbname = "availability"
password = "from-file"

[booking]
timezone = "Europe/Moscow"
min_notice_minutes = 120
advance_booking_days = 30

[kafka]
enabled = true
topic = "events"
`)

	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, 10, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "secret", cfg.Database.Password)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "host=db port=5432 user=postgres password=secret dbname=availability sslmode=disable", cfg.Database.DSN())

	policy, err := cfg.Booking.Policy()
	require.NoError(t, err)
	assert.Equal(t, "Europe/Moscow", policy.Loc().String())
	assert.Equal(t, 120, policy.MinNoticeMinutes)
	assert.Equal(t, 30, policy.AdvanceBookingDays)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, ErrReadConfig)

	_, err = Load(writeConfig(t, "[booking]\ntimezone = \"Mars/Olympus\"\n"))
	assert.ErrorIs(t, err, ErrInvalidConfig)

	t.Setenv("DB_PORT", "five")
	_, err = Load(writeConfig(t, ""))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *Config)
	}{
		{name: "port", modify: func(c *Config) { c.Server.HTTPPort = 0 }},
		{name: "redis addr", modify: func(c *Config) { c.Redis.Enabled = true; c.Redis.Addr = "" }},
		{name: "kafka topic", modify: func(c *Config) { c.Kafka.Enabled = true; c.Kafka.Topic = "" }},
		{name: "range", modify: func(c *Config) { c.Booking.MaxRangeDays = 0 }},
		{name: "rate limit", modify: func(c *Config) { c.RateLimit.RPS = 0 }},
		{name: "rate limit ttl", modify: func(c *Config) { c.RateLimit.Enabled = true; c.RateLimit.TTLSeconds = 0 }},
	}

	require.NoError(t, Default().Validate())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}
