package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration
type Config struct {
	Env      string `envconfig:"APP_ENV" default:"development"`
	Port     int    `envconfig:"APP_PORT" default:"8080"`
	DB       DBConfig
	CORS     CORSConfig
	JWT      JWTConfig
	Redis    RedisConfig
	Scorer   ScorerConfig
	Artifact ArtifactConfig
	Reminder ReminderConfig
}

// database configuration
type DBConfig struct {
	DSN         string        `envconfig:"DATABASE_URL" required:"true"`
	MaxConns    int32         `envconfig:"DB_MAX_CONNS" default:"20"`
	MaxLifetime time.Duration `envconfig:"DB_MAX_CONN_LIFETIME" default:"1h"`
}

// CORS configuration
type CORSConfig struct {
	TrustedOrigins []string `envconfig:"CORS_TRUSTED_ORIGINS" default:"http://localhost:3000,http://localhost:5173"`
}

// JWT configuration
type JWTConfig struct {
	Secret   string        `envconfig:"JWT_SECRET" required:"true"`
	TokenTTL time.Duration `envconfig:"JWT_TOKEN_TTL" default:"1h"`
}

// redis configuration, used for the reminder-job run lock
type RedisConfig struct {
	Addr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password string `envconfig:"REDIS_PASSWORD" default:""`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

// external video scorer configuration
type ScorerConfig struct {
	Endpoint string        `envconfig:"SCORER_ENDPOINT" required:"true"`
	APIKey   string        `envconfig:"SCORER_API_KEY" required:"true"`
	Timeout  time.Duration `envconfig:"SCORER_TIMEOUT" default:"30s"`
}

// artifact store (uploaded answer files) configuration
type ArtifactConfig struct {
	UploadURL    string `envconfig:"ARTIFACT_UPLOAD_URL" required:"true"`
	UploadPreset string `envconfig:"ARTIFACT_UPLOAD_PRESET" required:"true"`
}

// reminder worker configuration
type ReminderConfig struct {
	Interval  time.Duration `envconfig:"REMINDER_INTERVAL" default:"1h"`
	Lookahead time.Duration `envconfig:"REMINDER_LOOKAHEAD" default:"24h"`
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
	return cfg
}

func (c *Config) Validate() error {
	validEnvs := map[string]bool{
		"development": true,
		"staging":     true,
		"production":  true,
		"test":        true,
	}
	if !validEnvs[c.Env] {
		return fmt.Errorf("invalid environment: %s (must be one of: development, staging, production, test)", c.Env)
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d (must be between 1 and 65535)", c.Port)
	}
	if c.DB.MaxConns < 1 {
		return fmt.Errorf("DB_MAX_CONNS must be at least 1")
	}
	if len(c.JWT.Secret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters")
	}
	if c.Scorer.Timeout <= 0 {
		return fmt.Errorf("SCORER_TIMEOUT must be positive")
	}
	if c.Reminder.Interval <= 0 || c.Reminder.Lookahead <= 0 {
		return fmt.Errorf("reminder interval and lookahead must be positive")
	}
	if len(c.CORS.TrustedOrigins) == 0 {
		return fmt.Errorf("at least one trusted origin must be specified")
	}

	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// GetCORSOrigins returns the list of trusted CORS origins
func (c *Config) GetCORSOrigins() []string {
	origins := make([]string, 0, len(c.CORS.TrustedOrigins))
	for _, origin := range c.CORS.TrustedOrigins {
		trimmed := strings.TrimSpace(origin)
		if trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
