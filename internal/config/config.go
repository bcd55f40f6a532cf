package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App      AppConfig
	Pipeline PipelineConfig
	Postgres PostgresConfig
	SQLite   SQLiteConfig
	Redis    RedisConfig
	Logger   LoggerConfig
	Metrics  MetricsConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  int
	Debug                 bool
	Version               string
	RequestTimeoutSeconds int
}

// PipelineConfig locates input, output and rules.
type PipelineConfig struct {
	InputPath       string
	OutputPath      string
	RulesFile       string
	ResponderSeed   int64
	ProcessOnStart  bool
	WatchInput      bool
	WatchDebounceMS int
}

// PostgresConfig holds DB connection values for run history.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	MigrationsDir  string
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// SQLiteConfig enables the embedded run history store.
type SQLiteConfig struct {
	Path string
}

// RedisConfig holds Redis connection values for run notifications.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Channel  string
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level       string
	Development bool
}

// MetricsConfig toggles the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}
	port, err := strconv.Atoi(getEnv("APP_PORT", "5000"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}
	seed, err := strconv.ParseInt(getEnv("RESPONDER_SEED", "0"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid RESPONDER_SEED: %w", err)
	}

	debug := getEnvAsBool("APP_DEBUG", true)
	defaultLevel := "info"
	if debug {
		defaultLevel = "debug"
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "ticket-triage"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "127.0.0.1"),
			Port:                  port,
			Debug:                 debug,
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 0),
		},
		Pipeline: PipelineConfig{
			InputPath:       getEnv("INPUT_PATH", "customer_support_data.csv"),
			OutputPath:      getEnv("OUTPUT_PATH", "processed_customer_data.csv"),
			RulesFile:       os.Getenv("RULES_FILE"),
			ResponderSeed:   seed,
			ProcessOnStart:  getEnvAsBool("PROCESS_ON_START", true),
			WatchInput:      getEnvAsBool("WATCH_INPUT", false),
			WatchDebounceMS: getEnvAsInt("WATCH_DEBOUNCE_MS", 500),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       int32(getEnvAsInt("POSTGRES_MAX_CONNS", 5)),
			MinConns:       int32(getEnvAsInt("POSTGRES_MIN_CONNS", 1)),
			RunMigrations:  getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true),
			MigrationsDir:  getEnv("POSTGRES_MIGRATIONS_DIR", "migrations"),
			ConnMaxIdleSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30)),
			ConnMaxLifeSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300)),
		},
		SQLite: SQLiteConfig{
			Path: os.Getenv("SQLITE_PATH"),
		},
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
			Channel:  getEnv("REDIS_CHANNEL", "ticket-triage.runs"),
		},
		Logger: LoggerConfig{
			Level:       getEnv("LOG_LEVEL", defaultLevel),
			Development: debug,
		},
		Metrics: MetricsConfig{
			Enabled: getEnvAsBool("METRICS_ENABLED", true),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail late.
func (c *Config) Validate() error {
	var errs []error
	if c.App.Port <= 0 || c.App.Port > 65535 {
		errs = append(errs, fmt.Errorf("invalid APP_PORT %d (must be 1..65535)", c.App.Port))
	}
	if c.App.RequestTimeoutSeconds < 0 {
		errs = append(errs, fmt.Errorf("invalid HTTP_REQUEST_TIMEOUT_SECONDS %d", c.App.RequestTimeoutSeconds))
	}
	if c.Pipeline.InputPath == "" {
		errs = append(errs, errors.New("INPUT_PATH must not be empty"))
	}
	if c.Pipeline.OutputPath == "" {
		errs = append(errs, errors.New("OUTPUT_PATH must not be empty"))
	}
	if c.Pipeline.WatchDebounceMS < 0 {
		errs = append(errs, fmt.Errorf("invalid WATCH_DEBOUNCE_MS %d", c.Pipeline.WatchDebounceMS))
	}
	if c.Redis.Addr != "" && c.Redis.Channel == "" {
		errs = append(errs, errors.New("REDIS_CHANNEL is required when REDIS_ADDR is set"))
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%d", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// WatchDebounce returns the debounce window for input file events.
func (p PipelineConfig) WatchDebounce() time.Duration {
	return time.Duration(p.WatchDebounceMS) * time.Millisecond
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
