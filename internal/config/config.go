package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
)

type Config struct {
	DatabaseURL string `envconfig:"DATABASE_URL"`
	DBHost      string `envconfig:"DB_HOST" default:"localhost"`
	DBUser      string `envconfig:"DB_USER" default:"postgres"`
	DBPassword  string `envconfig:"DB_PASSWORD"`
	DBName      string `envconfig:"DB_NAME" default:"catalog"`
	DBPort      string `envconfig:"DB_PORT" default:"5432"`

	DBLogLevel        string        `envconfig:"DB_LOG_LEVEL" default:"warn"`
	DBSlowThreshold   time.Duration `envconfig:"DB_SLOW_THRESHOLD" default:"1s"`
	DBMaxIdleConns    int           `envconfig:"DB_MAX_IDLE_CONNS" default:"10"`
	DBMaxOpenConns    int           `envconfig:"DB_MAX_OPEN_CONNS" default:"100"`
	DBConnMaxLifetime time.Duration `envconfig:"DB_CONN_MAX_LIFETIME" default:"1h"`
	AutoMigrate       bool          `envconfig:"AUTO_MIGRATE" default:"true"`

	Port            string `envconfig:"PORT" default:"3000"`
	LogLevel        string `envconfig:"LOG_LEVEL" default:"info"`
	DefaultPageSize int    `envconfig:"DEFAULT_PAGE_SIZE" default:"10"`
	MaxPageSize     int    `envconfig:"MAX_PAGE_SIZE" default:"100"`
}

// Load reads an optional .env file and then the process environment
func Load(logger *logrus.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			logger.Warnf("Error loading .env file (but continuing): %v", err)
		}
	} else {
		logger.Info("Loaded configuration from .env file")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("process environment: %w", err)
	}
	if cfg.DefaultPageSize <= 0 || cfg.MaxPageSize < cfg.DefaultPageSize {
		return nil, fmt.Errorf("invalid page sizes: default=%d max=%d", cfg.DefaultPageSize, cfg.MaxPageSize)
	}
	return &cfg, nil
}

// DSN returns DATABASE_URL when set, otherwise a keyword/value string built
// from the DB_* parts.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort,
	)
}

func (c *Config) Level() logrus.Level {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}
