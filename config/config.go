package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Store drivers accepted by STORE_DRIVER.
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
)

// Config holds the full application configuration loaded from environment variables or .env file.
//
// Example ENV:
//
//	SERVER_PORT=8080
//	STORE_DRIVER=memory
//	CSV_DIR=./prices
//	INGEST_PARALLEL=1
//	INGEST_BATCH_SIZE=500
//	RATE_LIMIT_REQUESTS=60
//	RATE_LIMIT_WINDOW=1m
//	ADMIN_USER=ops
//	ADMIN_PASSWORD=change-me
//	POSTGRES_HOST=localhost
//	POSTGRES_DB=cryptorec
type Config struct {
	Server      ServerConfig
	StoreDriver string // memory or postgres
	Ingest      IngestConfig
	RateLimit   RateLimitConfig
	Admin       AdminConfig
	Postgres    PostgresConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port           string        // The TCP port the HTTP server will listen on (e.g., "8080")
	RequestTimeout time.Duration // Per-request context deadline
}

// IngestConfig controls where price files are read from and how.
type IngestConfig struct {
	Dir       string
	Parallel  int
	BatchSize int
}

// RateLimitConfig is the per-client token bucket: Requests per Window,
// with a burst of Requests.
type RateLimitConfig struct {
	Requests int
	Window   time.Duration
}

// AdminConfig holds the basic auth credentials for /admin. There are no
// defaults: /admin is only mounted when both are set.
type AdminConfig struct {
	User     string
	Password string
}

// Enabled reports whether both credentials are configured.
func (a AdminConfig) Enabled() bool {
	return a.User != "" && a.Password != ""
}

// PostgresConfig defines connection details for PostgreSQL.
//
// Fields:
//   - Host: hostname of the database server.
//   - Port: port number of the database server (default 5432).
//   - User: username for authentication.
//   - Password: password for authentication.
//   - DBName: target database name.
//   - SSLMode: SSL mode (e.g., "disable", "require").
//   - URL: computed DSN used by database/sql to connect.
type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	URL      string
}

// AppConfig is the globally accessible configuration instance, populated
// once via LoadConfig().
var AppConfig Config

// LoadConfig initializes the global AppConfig by reading from .env file
// or directly from environment variables.
//
// Precedence (from lowest to highest):
//  1. Defaults set in this function.
//  2. Values from .env file (if present).
//  3. Environment variables.
//
// Fatal exit:
//   - If required variables are missing or invalid, validateConfig() terminates
//     the app with a descriptive log message.
func LoadConfig() {
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("REQUEST_TIMEOUT", "10s")

	viper.SetDefault("STORE_DRIVER", DriverMemory)
	viper.SetDefault("CSV_DIR", "./prices")
	viper.SetDefault("INGEST_PARALLEL", 1)
	viper.SetDefault("INGEST_BATCH_SIZE", 500)

	viper.SetDefault("RATE_LIMIT_REQUESTS", 60)
	viper.SetDefault("RATE_LIMIT_WINDOW", "1m")

	viper.SetDefault("POSTGRES_HOST", "localhost")
	viper.SetDefault("POSTGRES_PORT", 5432)
	viper.SetDefault("POSTGRES_USER", "postgres")
	viper.SetDefault("POSTGRES_PASSWORD", "postgres")
	viper.SetDefault("POSTGRES_DB", "cryptorec")
	viper.SetDefault("POSTGRES_SSLMODE", "disable")

	// Optionally read from .env if present (common in local dev)
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig() // ignore error if no .env

	viper.AutomaticEnv()

	AppConfig = Config{
		Server: ServerConfig{
			Port:           viper.GetString("SERVER_PORT"),
			RequestTimeout: viper.GetDuration("REQUEST_TIMEOUT"),
		},
		StoreDriver: strings.ToLower(strings.TrimSpace(viper.GetString("STORE_DRIVER"))),
		Ingest: IngestConfig{
			Dir:       viper.GetString("CSV_DIR"),
			Parallel:  viper.GetInt("INGEST_PARALLEL"),
			BatchSize: viper.GetInt("INGEST_BATCH_SIZE"),
		},
		RateLimit: RateLimitConfig{
			Requests: viper.GetInt("RATE_LIMIT_REQUESTS"),
			Window:   viper.GetDuration("RATE_LIMIT_WINDOW"),
		},
		Admin: AdminConfig{
			User:     viper.GetString("ADMIN_USER"),
			Password: viper.GetString("ADMIN_PASSWORD"),
		},
		Postgres: PostgresConfig{
			Host:     viper.GetString("POSTGRES_HOST"),
			Port:     viper.GetInt("POSTGRES_PORT"),
			User:     viper.GetString("POSTGRES_USER"),
			Password: viper.GetString("POSTGRES_PASSWORD"),
			DBName:   viper.GetString("POSTGRES_DB"),
			SSLMode:  viper.GetString("POSTGRES_SSLMODE"),
		},
	}

	AppConfig.Postgres.URL = fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		AppConfig.Postgres.User,
		AppConfig.Postgres.Password,
		AppConfig.Postgres.Host,
		AppConfig.Postgres.Port,
		AppConfig.Postgres.DBName,
		AppConfig.Postgres.SSLMode,
	)

	validateConfig()
}

// validateConfig terminates the application when AppConfig is incomplete.
func validateConfig() {
	if problems := AppConfig.problems(); len(problems) > 0 {
		log.Fatalf("❌ Invalid configuration: %v\n", problems)
	}
}

// problems lists the missing or invalid keys. Postgres keys are only
// checked when the postgres driver is selected.
func (c Config) problems() []string {
	var missing []string

	if c.Server.Port == "" {
		missing = append(missing, "SERVER_PORT")
	}
	switch c.StoreDriver {
	case DriverMemory:
	case DriverPostgres:
		if c.Postgres.Host == "" {
			missing = append(missing, "POSTGRES_HOST")
		}
		if c.Postgres.Port == 0 {
			missing = append(missing, "POSTGRES_PORT")
		}
		if c.Postgres.User == "" {
			missing = append(missing, "POSTGRES_USER")
		}
		if c.Postgres.Password == "" {
			missing = append(missing, "POSTGRES_PASSWORD")
		}
		if c.Postgres.DBName == "" {
			missing = append(missing, "POSTGRES_DB")
		}
	default:
		missing = append(missing, "STORE_DRIVER")
	}
	if c.Ingest.Dir == "" {
		missing = append(missing, "CSV_DIR")
	}
	if c.RateLimit.Requests <= 0 {
		missing = append(missing, "RATE_LIMIT_REQUESTS")
	}
	if c.RateLimit.Window <= 0 {
		missing = append(missing, "RATE_LIMIT_WINDOW")
	}
	// Both unset disables /admin. Exactly one set is an error.
	if (c.Admin.User == "") != (c.Admin.Password == "") {
		missing = append(missing, "ADMIN_USER/ADMIN_PASSWORD")
	}

	return missing
}
