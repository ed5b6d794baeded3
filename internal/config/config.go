package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexflint/go-arg"
)

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

// Config holds everything the server needs at startup.
// Every field can be set by flag or by environment variable.
type Config struct {
	ServerConfig
	LoggerConfig
	PostgresConfig

	StoreDriver string `arg:"--store-driver,env:STORE_DRIVER" default:"postgres" help:"customer store backend: postgres or memory"`
}

type ServerConfig struct {
	Port               string        `arg:"--port,env:PORT" default:"8080" help:"HTTP listen port"`
	CORSAllowedOrigins []string      `arg:"--cors-allowed-origins,env:CORS_ALLOWED_ORIGINS" help:"comma separated list of allowed CORS origins"`
	ShutdownTimeout    time.Duration `arg:"--shutdown-timeout,env:SHUTDOWN_TIMEOUT" default:"10s" help:"grace period for in-flight requests on shutdown"`
}

type LoggerConfig struct {
	Level  string `arg:"--log-level,env:LOG_LEVEL" default:"info" help:"zerolog level"`
	Format string `arg:"--log-format,env:LOG_FORMAT" default:"console" help:"console or json"`
}

type PostgresConfig struct {
	Host            string        `arg:"--db-host,env:DB_HOST" default:"localhost"`
	Port            string        `arg:"--db-port,env:DB_PORT" default:"5432"`
	User            string        `arg:"--db-user,env:DB_USER" default:"customers_user"`
	Password        string        `arg:"--db-password,env:DB_PASSWORD" default:"customers_password"`
	DBName          string        `arg:"--db-name,env:DB_NAME" default:"customers_db"`
	SSLMode         string        `arg:"--db-sslmode,env:DB_SSLMODE" default:"disable"`
	MaxOpenConns    int           `arg:"--db-max-open-conns,env:DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `arg:"--db-max-idle-conns,env:DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `arg:"--db-conn-max-lifetime,env:DB_CONN_MAX_LIFETIME" default:"5m"`
	ApplySchema     bool          `arg:"--db-apply-schema,env:DB_APPLY_SCHEMA" help:"create the customers table on startup if missing"`
}

// Load parses args (without the program name) and the environment into a Config.
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	p, err := arg.NewParser(arg.Config{Program: "customers-server"}, cfg)
	if err != nil {
		return nil, fmt.Errorf("building config parser: %w", err)
	}
	if err := p.Parse(args); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// MustLoad is Load for main: it prints usage and exits on bad input.
func MustLoad() *Config {
	cfg := &Config{}
	p := arg.MustParse(cfg)
	if err := cfg.validate(); err != nil {
		p.Fail(err.Error())
	}
	return cfg
}

func (c *Config) validate() error {
	c.StoreDriver = strings.ToLower(strings.TrimSpace(c.StoreDriver))
	switch c.StoreDriver {
	case StoreDriverPostgres, StoreDriverMemory:
	default:
		return fmt.Errorf("unknown store driver %q (want %s or %s)", c.StoreDriver, StoreDriverPostgres, StoreDriverMemory)
	}
	if strings.TrimSpace(c.ServerConfig.Port) == "" {
		return fmt.Errorf("server port must not be empty")
	}
	if len(c.ServerConfig.CORSAllowedOrigins) == 1 && strings.Contains(c.ServerConfig.CORSAllowedOrigins[0], ",") {
		c.ServerConfig.CORSAllowedOrigins = strings.Split(c.ServerConfig.CORSAllowedOrigins[0], ",")
	}
	if len(c.ServerConfig.CORSAllowedOrigins) == 0 {
		c.ServerConfig.CORSAllowedOrigins = []string{"http://localhost:3000", "http://localhost:3001"} // Default origins
	}
	return nil
}

// DSN renders the lib/pq key=value connection string.
func (p PostgresConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.DBName, p.SSLMode)
}
