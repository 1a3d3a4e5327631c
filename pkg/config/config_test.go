package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Fulfillment-api/pkg/config"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("DB_DRIVER", "memory")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.DB.Driver)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.False(t, cfg.Redis.Enabled())
	assert.False(t, cfg.Kafka.Enabled())
	assert.Equal(t, 10<<20, cfg.Import.MaxUploadBytes)
	assert.Equal(t, time.Minute, cfg.Redis.LockTTL)
}

func TestLoad_DesdeEntorno(t *testing.T) {
	t.Setenv("DB_DRIVER", "Postgres")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("IMPORT_DEFAULT_CHARSET", "Windows-1252")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.DB.Driver)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "windows-1252", cfg.Import.DefaultCharset)
}

func TestLoad_DriverInvalido(t *testing.T) {
	t.Setenv("DB_DRIVER", "mongo")
	_, err := config.Load()
	assert.Error(t, err)
}

func TestLoad_ProduccionExigeSecreto(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("DB_DRIVER", "memory")
	t.Setenv("JWT_SECRET", "")
	_, err := config.Load()
	assert.Error(t, err)
}

func TestDSN(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss", DBName: "fulfillment", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss@db:5432/fulfillment?sslmode=disable", c.DSN())
	c.DatabaseURL = "postgres://x"
	assert.Equal(t, "postgres://x", c.ConnectionString())
}
