package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, StoreDriverPostgres, cfg.StoreDriver)
	assert.Equal(t, "8080", cfg.ServerConfig.Port)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "info", cfg.Level)
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost:3001"}, cfg.CORSAllowedOrigins)
	assert.False(t, cfg.ApplySchema)
}

func TestLoad_FlagsAndEnv(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := Load([]string{"--store-driver", "MEMORY", "--port", "9090", "--db-max-open-conns", "3", "--db-apply-schema"})
	require.NoError(t, err)

	assert.Equal(t, StoreDriverMemory, cfg.StoreDriver)
	assert.Equal(t, "9090", cfg.ServerConfig.Port)
	assert.Equal(t, "db.internal", cfg.Host)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, 3, cfg.MaxOpenConns)
	assert.True(t, cfg.ApplySchema)
}

func TestLoad_CommaSeparatedOrigins(t *testing.T) {
	cfg, err := Load([]string{"--cors-allowed-origins", "https://a.example,https://b.example"})
	require.NoError(t, err)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
}

func TestLoad_UnknownStoreDriver(t *testing.T) {
	_, err := Load([]string{"--store-driver", "mongo"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown store driver")
}

func TestPostgresConfig_DSN(t *testing.T) {
	p := PostgresConfig{Host: "h", Port: "5433", User: "u", Password: "p", DBName: "d", SSLMode: "require"}
	assert.Equal(t, "host=h port=5433 user=u password=p dbname=d sslmode=require", p.DSN())
}
