package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config holds the application configuration.
type Config struct {
	ServerPort   int    `env:"PORT" envDefault:"8080"`
	AppEnv       string `env:"APP_ENV" envDefault:"development"`
	DatabasePath string `env:"DATABASE_PATH" envDefault:"./portfolio.db"`
	BackupPath   string `env:"BACKUP_PATH" envDefault:"./backups"`
	JWTSecret    string `env:"JWT_SECRET"`

	// Entries may be single addresses or CIDR ranges.
	AdminIPWhitelist []string `env:"ADMIN_IP_WHITELIST" envSeparator:"," envDefault:"127.0.0.1,::1"`
	// TrustProxy takes the client address from X-Forwarded-For / X-Real-IP.
	// Enable it only behind a proxy that overwrites those headers, otherwise
	// any caller can claim a whitelisted address.
	TrustProxy bool `env:"TRUST_PROXY" envDefault:"false"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile  string `env:"LOG_FILE"`

	BackupAuditSchedule string `env:"BACKUP_AUDIT_SCHEDULE" envDefault:"@hourly"`
}

// PublicConfig is the set of environment values that are safe to hand to the browser.
// The JSON names mirror the environment variable names.
type PublicConfig struct {
	EmailJSServiceID     string `env:"EMAILJS_SERVICE_ID" json:"EMAILJS_SERVICE_ID"`
	EmailJSTemplateID    string `env:"EMAILJS_TEMPLATE_ID" json:"EMAILJS_TEMPLATE_ID"`
	EmailJSPublicKey     string `env:"EMAILJS_PUBLIC_KEY" json:"EMAILJS_PUBLIC_KEY"`
	PayPalClientID       string `env:"PP_CLIENT_ID" json:"PP_CLIENT_ID"`
	PayPalAPIBase        string `env:"PP_API_BASE" json:"PP_API_BASE"`
	StripePublishableKey string `env:"STRIPE_PUBLISHABLE_KEY" json:"STRIPE_PUBLISHABLE_KEY"`
}

// Load loads configuration from an optional .env file and the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using environment variables")
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// IsProduction reports whether the app runs with APP_ENV=production.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func (c *Config) validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.ServerPort <= 0 || c.ServerPort > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535, got %d", c.ServerPort)
	}
	return nil
}

// LoadPublic reads the client-safe configuration. It is called per request so
// that values changed in the environment are picked up without a restart.
func LoadPublic() (PublicConfig, error) {
	var pub PublicConfig
	if err := env.Parse(&pub); err != nil {
		return PublicConfig{}, fmt.Errorf("parse public env: %w", err)
	}
	return pub, nil
}
