package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds everything the site reads from the environment.
type Config struct {
	Port         string        `env:"PORT" envDefault:"8080"`
	ReadTimeout  time.Duration `env:"READ_TIMEOUT" envDefault:"30s"`
	WriteTimeout time.Duration `env:"WRITE_TIMEOUT" envDefault:"30s"`
	IdleTimeout  time.Duration `env:"IDLE_TIMEOUT" envDefault:"120s"`

	AcceptedOrigins []string `env:"ACCEPTED_ORIGINS" envSeparator:"," envDefault:"*"`

	DBType     string `env:"DB_TYPE" envDefault:"sqlite"`
	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME" envDefault:"blog"`
	DBSSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`
	SQLitePath string `env:"SQLITE_PATH" envDefault:"blog.db"`
	// DSNs of read replicas, separated by ";". Page reads are spread across them.
	DBReplicaDSNs []string      `env:"DB_REPLICA_DSNS" envSeparator:";"`
	SlowQuery     time.Duration `env:"DB_SLOW_QUERY_THRESHOLD" envDefault:"200ms"`
	AutoMigrate   bool          `env:"AUTO_MIGRATE" envDefault:"true"`
	SeedDemoData  bool          `env:"SEED_DEMO"`

	MediaURL string `env:"MEDIA_URL" envDefault:"/media/"`
	MediaDir string `env:"MEDIA_DIR" envDefault:"media"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogPretty bool   `env:"LOG_PRETTY" envDefault:"true"`
}

// Load parses the process environment into a Config.
func Load() (Config, error) {
	var c Config
	if err := env.Parse(&c); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	c.DBType = strings.ToLower(strings.TrimSpace(c.DBType))
	return c, nil
}

// Address is the listen address for the HTTP server.
func (c Config) Address() string {
	return fmt.Sprintf("0.0.0.0:%s", c.Port)
}

// PostgresDSN builds the key/value connection string used by the postgres driver.
// The "supa" type is a hosted postgres that always needs TLS.
func (c Config) PostgresDSN() string {
	sslMode := c.DBSSLMode
	if c.DBType == "supa" {
		sslMode = "require"
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, sslMode)
}
