package config

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

// Config holds all runtime settings of the portal server.
type Config struct {
	DatabaseURL  string `env:"DATABASE_URL,required"`
	JWTSecretKey string `env:"JWT_SECRET_KEY,required"`

	DBMaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS,default=25"`
	DBMaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS,default=25"`
	DBConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME,default=5m"`
	DBConnectTimeout  time.Duration `env:"DB_CONNECT_TIMEOUT,default=15s"`

	ServerPort   int    `env:"SERVER_PORT,default=8080"`
	// PublicURL is the externally reachable base URL, used in emailed links.
	PublicURL string `env:"PUBLIC_URL,default=http://localhost:8080"`
	LogLevel  string `env:"LOG_LEVEL,default=info"`

	AccessTokenTTL     time.Duration `env:"ACCESS_TOKEN_TTL,default=24h"`
	AllowedEmailDomain string        `env:"ALLOWED_EMAIL_DOMAIN,default=utdallas.edu"`
	AdminEmails        []string      `env:"ADMIN_EMAILS"`

	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS,default=*"`
	RateLimitPerMinute int      `env:"RATE_LIMIT_PER_MINUTE,default=120"`

	R2AccountID       string `env:"R2_ACCOUNT_ID"`
	S3Endpoint        string `env:"S3_ENDPOINT"`
	S3Region          string `env:"S3_REGION,default=auto"`
	R2AccessKeyID     string `env:"R2_ACCESS_KEY_ID"`
	R2SecretAccessKey string `env:"R2_SECRET_ACCESS_KEY"`
	R2BucketName      string `env:"R2_BUCKET_NAME"`
	R2PublicBaseURL   string `env:"R2_PUBLIC_BASE_URL"`

	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     int    `env:"SMTP_PORT,default=587"`
	SMTPUser     string `env:"SMTP_USER"`
	SMTPPassword string `env:"SMTP_PASS"`
	SMTPFrom     string `env:"SMTP_FROM"`

	OTLPEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
}

// Load reads the configuration from the environment. A .env file is picked up when present.
func Load(ctx context.Context) (*Config, error) {
	_ = godotenv.Load()
	return LoadFrom(ctx, envconfig.OsLookuper())
}

// LoadFrom reads the configuration through l, which lets tests pass a fixed map.
func LoadFrom(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.ServerPort <= 0 || c.ServerPort > 65535 {
		return fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", c.ServerPort)
	}
	if c.AccessTokenTTL <= 0 {
		return fmt.Errorf("ACCESS_TOKEN_TTL must be positive, got %s", c.AccessTokenTTL)
	}
	if c.RateLimitPerMinute <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be positive, got %d", c.RateLimitPerMinute)
	}
	c.AllowedEmailDomain = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(c.AllowedEmailDomain), "@"))
	if c.AllowedEmailDomain == "" {
		return fmt.Errorf("ALLOWED_EMAIL_DOMAIN must not be empty")
	}
	for i, email := range c.AdminEmails {
		c.AdminEmails[i] = strings.ToLower(strings.TrimSpace(email))
	}
	c.PublicURL = strings.TrimRight(c.PublicURL, "/")
	return nil
}

// StorageEnabled reports whether object storage credentials are configured.
func (c *Config) StorageEnabled() bool {
	return (c.R2AccountID != "" || c.S3Endpoint != "") && c.R2AccessKeyID != "" && c.R2SecretAccessKey != "" && c.R2BucketName != ""
}

func (c *Config) SMTPEnabled() bool {
	return c.SMTPHost != ""
}

func (c *Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}
