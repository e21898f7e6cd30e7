package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all configuration for the service.
type Config struct {
	Port            int           `envconfig:"PORT" default:"8080"`
	Environment     string        `envconfig:"ENVIRONMENT" default:"development"`
	LogLevel        string        `envconfig:"LOG_LEVEL" default:"info"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"5s"`

	DBDriver    string `envconfig:"DB_DRIVER" default:"sqlite"` // sqlite|postgres
	DatabaseURL string `envconfig:"DATABASE_URL" default:"med_reminder.db"`

	JWTSecret string `envconfig:"JWT_SECRET_KEY" required:"true"`

	// TickSeconds must divide a minute so that every wall-clock minute is polled
	// at the same second offsets.
	TickSeconds          int           `envconfig:"TICK_SECONDS" default:"20"`
	Timezone             string        `envconfig:"REMINDER_TIMEZONE" default:"Local"`
	NotifyTimeout        time.Duration `envconfig:"NOTIFY_TIMEOUT" default:"10s"`
	DefaultSnoozeMinutes int           `envconfig:"DEFAULT_SNOOZE_MINUTES" default:"30"`

	VAPIDPublicKey  string `envconfig:"VAPID_PUBLIC_KEY"`
	VAPIDPrivateKey string `envconfig:"VAPID_PRIVATE_KEY"`
	VAPIDSubscriber string `envconfig:"VAPID_SUBSCRIBER" default:"mailto:admin@medassist.ai"`

	LineChannelSecret string `envconfig:"CHANNEL_SECRET"`
	LineChannelToken  string `envconfig:"CHANNEL_ACCESS_TOKEN"`

	TelegramToken string `envconfig:"TELEGRAM_TOKEN"`
}

// Load reads configuration from environment variables and a .env file (if present).
func Load() (*Config, error) {
	// godotenv.Load does not override variables that are already set.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("process env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks cross-field constraints envconfig cannot express.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET_KEY must not be empty")
	}
	if c.TickSeconds < 1 || c.TickSeconds > 59 || 60%c.TickSeconds != 0 {
		return fmt.Errorf("TICK_SECONDS must divide 60 and be below 60, got %d", c.TickSeconds)
	}
	switch strings.ToLower(c.DBDriver) {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	if c.DefaultSnoozeMinutes <= 0 {
		return fmt.Errorf("DEFAULT_SNOOZE_MINUTES must be positive, got %d", c.DefaultSnoozeMinutes)
	}
	if (c.VAPIDPublicKey == "") != (c.VAPIDPrivateKey == "") {
		return fmt.Errorf("VAPID_PUBLIC_KEY and VAPID_PRIVATE_KEY must be set together")
	}
	if (c.LineChannelSecret == "") != (c.LineChannelToken == "") {
		return fmt.Errorf("CHANNEL_SECRET and CHANNEL_ACCESS_TOKEN must be set together")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves the time zone the scheduler reads the wall clock in.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || strings.EqualFold(c.Timezone, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid REMINDER_TIMEZONE %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// TickSpec is the seconds-precision cron spec for the reminder tick.
func (c *Config) TickSpec() string {
	return fmt.Sprintf("*/%d * * * * *", c.TickSeconds)
}
