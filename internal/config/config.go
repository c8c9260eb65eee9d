package config

import (
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all runtime configuration loaded from environment variables.
// Every field has a default; the service starts with an empty environment.
type Config struct {
	// Server
	HTTPPort        string        `envconfig:"HTTP_PORT" default:"8080"`
	ReadTimeout     time.Duration `envconfig:"READ_TIMEOUT" default:"5s"`
	WriteTimeout    time.Duration `envconfig:"WRITE_TIMEOUT" default:"10s"`
	IdleTimeout     time.Duration `envconfig:"IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
	MaxRequestBytes int64         `envconfig:"MAX_REQUEST_BYTES" default:"1048576"`

	// Routes
	HealthPath  string `envconfig:"HEALTH_PATH" default:"/health/"`
	ReadyPath   string `envconfig:"READY_PATH" default:"/ready/"`
	MetricsPath string `envconfig:"METRICS_PATH" default:"/metrics"`

	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// Database is optional. When set, readiness pings it.
	DatabaseURL string `envconfig:"DATABASE_URL"`
	DBMaxConns  int32  `envconfig:"DB_MAX_CONNS" default:"4"`
	DBMinConns  int32  `envconfig:"DB_MIN_CONNS" default:"0"`

	// Readiness
	ReadinessInterval time.Duration `envconfig:"READINESS_INTERVAL" default:"15s"`
	ReadinessTimeout  time.Duration `envconfig:"READINESS_TIMEOUT" default:"2s"`
	// ReadinessRate caps real check runs per second; zero or less disables the cap.
	ReadinessRate float64 `envconfig:"READINESS_RATE" default:"1"`
}

// Load reads the environment, then validates the result.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, errors.Wrap(err, "process env")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Addr is the listen address for http.Server.
func (c *Config) Addr() string {
	return ":" + c.HTTPPort
}

// Validate checks route paths and durations.
func (c *Config) Validate() error {
	paths := []struct {
		name string
		val  string
	}{
		{"HEALTH_PATH", c.HealthPath},
		{"READY_PATH", c.ReadyPath},
		{"METRICS_PATH", c.MetricsPath},
	}
	seen := make(map[string]string, len(paths))
	for _, p := range paths {
		if !strings.HasPrefix(p.val, "/") {
			return errors.Errorf("%s must start with '/', got %q", p.name, p.val)
		}
		key := TrimSlash(p.val)
		if other, ok := seen[key]; ok {
			return errors.Errorf("%s and %s resolve to the same route %q", other, p.name, p.val)
		}
		seen[key] = p.name
	}

	durations := []struct {
		name string
		val  time.Duration
	}{
		{"READ_TIMEOUT", c.ReadTimeout},
		{"WRITE_TIMEOUT", c.WriteTimeout},
		{"IDLE_TIMEOUT", c.IdleTimeout},
		{"SHUTDOWN_TIMEOUT", c.ShutdownTimeout},
		{"READINESS_INTERVAL", c.ReadinessInterval},
		{"READINESS_TIMEOUT", c.ReadinessTimeout},
	}
	for _, d := range durations {
		if d.val <= 0 {
			return errors.Errorf("%s must be positive, got %s", d.name, d.val)
		}
	}

	if c.MaxRequestBytes <= 0 {
		return errors.Errorf("MAX_REQUEST_BYTES must be positive, got %d", c.MaxRequestBytes)
	}
	if c.DBMinConns > c.DBMaxConns {
		return errors.Errorf("DB_MIN_CONNS (%d) exceeds DB_MAX_CONNS (%d)", c.DBMinConns, c.DBMaxConns)
	}
	return nil
}

// TrimSlash drops a trailing slash, keeping "/" intact.
func TrimSlash(p string) string {
	if len(p) > 1 {
		return strings.TrimSuffix(p, "/")
	}
	return p
}

// SlashVariants returns p and its trailing-slash twin, so "/health/" also
// answers on "/health".
func SlashVariants(p string) []string {
	trimmed := TrimSlash(p)
	if trimmed == "/" {
		return []string{"/"}
	}
	return []string{trimmed, trimmed + "/"}
}
