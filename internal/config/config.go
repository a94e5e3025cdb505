package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration. It is built once at startup and
// passed to constructors; nothing reads the environment after Load returns.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Log      LogConfig      `yaml:"log"`
	Events   EventsConfig   `yaml:"events"`
}

type ServerConfig struct {
	Port            string        `yaml:"port"`
	Env             string        `yaml:"env"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type DatabaseConfig struct {
	URL             string        `yaml:"url"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
}

type RedisConfig struct {
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	CacheTTL time.Duration `yaml:"cache_ttl"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type EventsConfig struct {
	Stream string `yaml:"stream"`
}

func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            "8080",
			Env:             "development",
			ShutdownTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 30 * time.Minute,
		},
		Redis: RedisConfig{
			Addr:     "localhost:6379",
			CacheTTL: 15 * time.Minute,
		},
		Log:    LogConfig{Level: "info"},
		Events: EventsConfig{Stream: "directory.events"},
	}
}

// Load builds the configuration from defaults, an optional YAML file, a .env
// file if present, and finally the process environment.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	_ = godotenv.Load()

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	setString(&c.Database.URL, "DATABASE_URL")
	setString(&c.Redis.Addr, "REDIS_ADDR")
	setString(&c.Redis.Password, "REDIS_PASSWORD")
	setString(&c.Server.Port, "PORT")
	setString(&c.Server.Env, "APP_ENV")
	setString(&c.Log.Level, "LOG_LEVEL")
	setString(&c.Events.Stream, "EVENTS_STREAM")

	if v := os.Getenv("REDIS_DB"); v != "" {
		db, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("REDIS_DB must be an integer: %w", err)
		}
		c.Redis.DB = db
	}
	if v := os.Getenv("ACCOUNT_CACHE_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("ACCOUNT_CACHE_TTL must be a duration: %w", err)
		}
		c.Redis.CacheTTL = ttl
	}
	return nil
}

// Validate checks the settings every command needs.
func (c *Config) Validate() error {
	var errs []error
	if c.Database.URL == "" {
		errs = append(errs, errors.New("database url is required (DATABASE_URL)"))
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("invalid log level %q", c.Log.Level))
	}
	if c.Redis.CacheTTL < 0 {
		errs = append(errs, errors.New("redis cache ttl must not be negative"))
	}
	return errors.Join(errs...)
}

func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// NewLogger builds the process logger: JSON in production, text otherwise.
func (c *Config) NewLogger() *logrus.Logger {
	log := logrus.New()
	if c.IsProduction() {
		log.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339Nano})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	level, err := logrus.ParseLevel(c.Log.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	log.SetOutput(os.Stdout)
	return log
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
