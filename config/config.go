package config

import (
	"fmt"
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds the full application configuration loaded from environment variables or .env file.
//
// It is composed of smaller structs that represent different concerns of the system:
// the HTTP server, the upstream SSE trade feed, and the Postgres sink.
//
// Example YAML/ENV equivalent:
//
//	SERVER_PORT=8080
//	STREAM_URL=https://arena.b3.com.br/marketdata/negocios/sse
//	STREAM_DURATION_SECONDS=60
//	STREAM_CONNECT_TIMEOUT_SECONDS=30
//	POSTGRES_HOST=localhost
//	POSTGRES_PORT=5432
//	POSTGRES_USER=admin
//	POSTGRES_PASSWORD=secret
//	POSTGRES_DB=b3stream
//	POSTGRES_SSLMODE=disable
type Config struct {
	Server   ServerConfig   // HTTP server configuration (api mode)
	Stream   StreamConfig   // Upstream SSE feed settings (collect mode)
	Postgres PostgresConfig // PostgreSQL connection settings
}

// ServerConfig holds HTTP server settings such as the port to listen on.
type ServerConfig struct {
	Port string // The TCP port the HTTP server will listen on (e.g., "8080")
}

// StreamConfig defines how the collector reaches the upstream SSE feed.
//
// Fields:
//   - URL: the fixed upstream SSE endpoint.
//   - Duration: default collection window.
//   - ConnectTimeout: dial timeout for the initial handshake. There is no
//     per-line read deadline; a stalled-but-open connection can overshoot
//     the window until the next line arrives or the caller cancels.
//   - Headers: static header bundle sent on the handshake. The upstream
//     server rejects connections without a realistic browser identity, so
//     the bundle carries User-Agent/Referer/Origin alongside the SSE
//     headers. Values are opaque strings, never interpreted by the core.
type StreamConfig struct {
	URL            string
	Duration       time.Duration
	ConnectTimeout time.Duration
	Headers        HeaderBundle
}

// HeaderBundle is the static header set for the SSE handshake.
type HeaderBundle struct {
	Accept         string
	CacheControl   string
	Connection     string
	UserAgent      string
	Referer        string
	Origin         string
	AcceptLanguage string
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

// AppConfig is the globally accessible configuration instance.
//
// It is populated once via LoadConfig() and used throughout the application.
// All services should import this package and read from AppConfig instead of
// reloading environment variables directly.
var AppConfig Config

// LoadConfig initializes the global AppConfig by reading from .env file
// or directly from environment variables.
//
// Precedence (from lowest to highest):
//  1. Defaults set in this function.
//  2. Values from .env file (if present).
//  3. Environment variables.
//
// Behavior:
//   - Sets defaults for all required fields.
//   - Reads environment variables automatically with viper.AutomaticEnv().
//   - Constructs the PostgreSQL connection string (DSN).
//   - Calls validateConfig() to ensure required fields are present.
//
// Fatal exit:
//   - If required variables are missing, validateConfig() will terminate the app
//     with a descriptive log message.
func LoadConfig() {
	// Default values
	viper.SetDefault("SERVER_PORT", "8080")

	viper.SetDefault("STREAM_URL", "https://arena.b3.com.br/marketdata/negocios/sse")
	viper.SetDefault("STREAM_DURATION_SECONDS", 60)
	viper.SetDefault("STREAM_CONNECT_TIMEOUT_SECONDS", 30)
	viper.SetDefault("STREAM_USER_AGENT", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0.0.0 Safari/537.36")
	viper.SetDefault("STREAM_REFERER", "https://arena.b3.com.br/")
	viper.SetDefault("STREAM_ORIGIN", "https://arena.b3.com.br")
	viper.SetDefault("STREAM_ACCEPT_LANGUAGE", "pt-BR,pt;q=0.9,en-US;q=0.8,en;q=0.7")

	viper.SetDefault("POSTGRES_HOST", "localhost")
	viper.SetDefault("POSTGRES_PORT", 5432)
	viper.SetDefault("POSTGRES_USER", "postgres")
	viper.SetDefault("POSTGRES_PASSWORD", "postgres")
	viper.SetDefault("POSTGRES_DB", "b3stream")
	viper.SetDefault("POSTGRES_SSLMODE", "disable")

	// Optionally read from .env if present (common in local dev)
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig() // ignore error if no .env

	// Read environment variables automatically
	viper.AutomaticEnv()

	// Populate global config instance
	AppConfig = Config{
		Server: ServerConfig{
			Port: viper.GetString("SERVER_PORT"),
		},
		Stream: StreamConfig{
			URL:            viper.GetString("STREAM_URL"),
			Duration:       time.Duration(viper.GetInt("STREAM_DURATION_SECONDS")) * time.Second,
			ConnectTimeout: time.Duration(viper.GetInt("STREAM_CONNECT_TIMEOUT_SECONDS")) * time.Second,
			Headers: HeaderBundle{
				Accept:         "text/event-stream",
				CacheControl:   "no-cache",
				Connection:     "keep-alive",
				UserAgent:      viper.GetString("STREAM_USER_AGENT"),
				Referer:        viper.GetString("STREAM_REFERER"),
				Origin:         viper.GetString("STREAM_ORIGIN"),
				AcceptLanguage: viper.GetString("STREAM_ACCEPT_LANGUAGE"),
			},
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

	// Construct Postgres DSN (used by database/sql)
	AppConfig.Postgres.URL = fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		AppConfig.Postgres.User,
		AppConfig.Postgres.Password,
		AppConfig.Postgres.Host,
		AppConfig.Postgres.Port,
		AppConfig.Postgres.DBName,
		AppConfig.Postgres.SSLMode,
	)

	// Validate critical fields
	validateConfig()
}

// validateConfig ensures required variables are present and terminates
// the application if they are missing.
//
// This avoids unexpected runtime failures due to incomplete configuration.
//
// Behavior:
//   - Checks each critical field of AppConfig.
//   - Collects missing ones in a slice.
//   - If any are missing, logs them and terminates the app with log.Fatalf().
func validateConfig() {
	var missing []string

	if AppConfig.Server.Port == "" {
		missing = append(missing, "SERVER_PORT")
	}
	if AppConfig.Stream.URL == "" {
		missing = append(missing, "STREAM_URL")
	}
	if AppConfig.Stream.ConnectTimeout <= 0 {
		missing = append(missing, "STREAM_CONNECT_TIMEOUT_SECONDS")
	}
	if AppConfig.Postgres.Host == "" {
		missing = append(missing, "POSTGRES_HOST")
	}
	if AppConfig.Postgres.Port == 0 {
		missing = append(missing, "POSTGRES_PORT")
	}
	if AppConfig.Postgres.User == "" {
		missing = append(missing, "POSTGRES_USER")
	}
	if AppConfig.Postgres.Password == "" {
		missing = append(missing, "POSTGRES_PASSWORD")
	}
	if AppConfig.Postgres.DBName == "" {
		missing = append(missing, "POSTGRES_DB")
	}

	if len(missing) > 0 {
		log.Fatalf("missing required environment variables: %v\n", missing)
	}
}
