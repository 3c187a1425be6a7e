package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"SERVICE_NAME", "SERVER_PORT", "DATABASE_URL", "DB_DRIVER", "DB_AUTO_MIGRATE", "KAFKA_BROKERS", "RATE_LIMIT_RPS", "JWT_SECRET"} {
		t.Setenv(k, "")
	}

	cfg := Load()
	require.Equal(t, "factory_registry", cfg.ServiceName)
	require.Equal(t, 8080, cfg.ServerPort)
	require.Equal(t, "pgx", cfg.DBDriver)
	require.True(t, cfg.AutoMigrate)
	require.Empty(t, cfg.KafkaBrokers)
	require.Zero(t, cfg.RateLimitRPS)
	require.Empty(t, cfg.JWTSecret)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("DB_AUTO_MIGRATE", "false")
	t.Setenv("KAFKA_BROKERS", " k1:9092, ,k2:9092 ")
	t.Setenv("RATE_LIMIT_RPS", "12.5")
	t.Setenv("JWT_SECRET", "s3cret")

	cfg := Load()
	require.Equal(t, 9090, cfg.ServerPort)
	require.Equal(t, "sqlite", cfg.DBDriver)
	require.False(t, cfg.AutoMigrate)
	require.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	require.InDelta(t, 12.5, cfg.RateLimitRPS, 0.0001)
	require.Equal(t, []byte("s3cret"), cfg.JWTSecret)
}

func TestEnvDefaultsOnGarbage(t *testing.T) {
	t.Setenv("X_INT", "nope")
	t.Setenv("X_BOOL", "maybe")
	t.Setenv("X_FLOAT", "-3")

	require.Equal(t, 7, EnvIntDefault("X_INT", 7))
	require.True(t, EnvBoolDefault("X_BOOL", true))
	require.Equal(t, 1.5, EnvFloatDefault("X_FLOAT", 1.5))
}

func TestOneOf(t *testing.T) {
	require.NoError(t, OneOf("pgx", "DB_DRIVER", "pgx", "postgres", "sqlite"))
	require.Error(t, OneOf("mysql", "DB_DRIVER", "pgx", "postgres", "sqlite"))
}
