package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all configuration for the application.
type Config struct {
	Server ServerConfig
	DB     DBConfig
	Mail   MailConfig
	Admin  AdminConfig
	Log    LogConfig
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Port            string `envconfig:"SERVER_PORT" default:"3000"`
	ShutdownTimeout int    `envconfig:"SHUTDOWN_TIMEOUT" default:"30"` // seconds
}

// DBConfig holds database-related configuration.
// WARNING: Default password is for local development only.
// In production, always set DB_PASSWORD via environment variable.
// In production, set DB_SSLMODE to "require" or "verify-full".
type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     int    `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" default:"postgres"`
	Password string `envconfig:"DB_PASSWORD" default:"postgres"` // CHANGE IN PRODUCTION
	Name     string `envconfig:"DB_NAME" default:"vericoupon_db"`
	SSLMode  string `envconfig:"DB_SSLMODE" default:"disable"` // Use "require" in production
	MaxConns int    `envconfig:"DB_MAX_CONNS" default:"25"`
	MinConns int    `envconfig:"DB_MIN_CONNS" default:"5"`
}

// DSN returns the PostgreSQL connection string.
func (c DBConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s&pool_max_conns=%d&pool_min_conns=%d",
		c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode, c.MaxConns, c.MinConns)
}

// MailConfig holds outbound-mail configuration for operator notifications.
// With an empty host the dispatcher logs rendered messages instead of
// sending them, which keeps local development mail-server free.
type MailConfig struct {
	Host       string `envconfig:"MAIL_HOST" default:""`
	Port       int    `envconfig:"MAIL_PORT" default:"587"`
	Username   string `envconfig:"MAIL_USERNAME" default:""`
	Password   string `envconfig:"MAIL_PASSWORD" default:""`
	From       string `envconfig:"MAIL_FROM" default:"noreply@vericoupon.example"`
	Operator   string `envconfig:"MAIL_OPERATOR" default:""` // target mailbox for notifications
	QueueSize  int    `envconfig:"MAIL_QUEUE_SIZE" default:"64"`
	MaxRetries int    `envconfig:"MAIL_MAX_RETRIES" default:"5"`
}

// Enabled reports whether SMTP delivery is configured.
func (c MailConfig) Enabled() bool {
	return c.Host != "" && c.Operator != ""
}

// AdminConfig holds operator authentication configuration.
// PasswordHash is a bcrypt hash; the plaintext never appears in config.
type AdminConfig struct {
	Username     string        `envconfig:"ADMIN_USERNAME" default:"admin"`
	PasswordHash string        `envconfig:"ADMIN_PASSWORD_HASH" default:""`
	SessionTTL   time.Duration `envconfig:"ADMIN_SESSION_TTL" default:"30m"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `envconfig:"LOG_LEVEL" default:"info"`
	Pretty bool   `envconfig:"LOG_PRETTY" default:"false"`
}

// Load parses environment variables into the Config struct.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
