package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultHTTPAddr           = ":8080"
	defaultDatabaseURL        = "obrago.db"
	defaultJWTAccessTTL       = "24h"
	defaultRecoveryTokenTTL   = "1h"
	defaultJWTSecret          = "change-me-jwt-secret"
	defaultRecoveryPepper     = "change-me-recovery-pepper"
	defaultSiteURL            = "https://obra-go-control.lovable.app"
	defaultEmailFromApproval  = "ConstructPRO <onboarding@resend.dev>"
	defaultEmailFromReset     = "ObraGo <noreply@obragocontrol.com>"
	defaultResendBaseURL      = "https://api.resend.com"
	defaultResendTimeout      = "10s"
	defaultResetRateLimit     = "5-M"
	defaultLogLevel           = "info"
	defaultEmailDevConsole    = "false"
	defaultMetricsEnabled     = "true"
	defaultRunMigrations      = "true"
)

// Config is the runtime configuration of every ObraGo binary.
type Config struct {
	AppEnv      string
	HTTPAddr    string
	DatabaseURL string
	LogLevel    string

	JWTSecret        string
	JWTAccessTTL     time.Duration
	RecoveryPepper   string
	RecoveryTokenTTL time.Duration

	SiteURL            string
	CORSAllowedOrigins []string

	ResendAPIKey      string
	ResendBaseURL     string
	ResendTimeout     time.Duration
	EmailFromApproval string
	EmailFromReset    string
	EmailDevConsole   bool

	ResetRateLimit    string
	MetricsEnabled    bool
	MetricsToken      string
	MetricsAllowedIPs []string
	RunMigrations     bool
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds the configuration from the process environment only.
func FromEnv() (*Config, error) {
	cfg := &Config{}
	appEnv := strings.TrimSpace(getEnv("APP_ENV", ""))
	if appEnv == "" {
		appEnv = strings.TrimSpace(getEnv("ENV", "dev"))
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.HTTPAddr = strings.TrimSpace(getEnv("HTTP_ADDR", defaultHTTPAddr))
	cfg.DatabaseURL = strings.TrimSpace(getEnv("DATABASE_URL", defaultDatabaseURL))
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(getEnv("LOG_LEVEL", defaultLogLevel)))

	cfg.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret))
	cfg.RecoveryPepper = strings.TrimSpace(getEnv("RECOVERY_TOKEN_PEPPER", defaultRecoveryPepper))
	cfg.SiteURL = strings.TrimRight(strings.TrimSpace(getEnv("SITE_URL", defaultSiteURL)), "/")
	cfg.CORSAllowedOrigins = splitList(getEnv("CORS_ALLOWED_ORIGINS", ""))

	cfg.ResendAPIKey = strings.TrimSpace(getEnv("RESEND_API_KEY", ""))
	cfg.ResendBaseURL = strings.TrimSpace(getEnv("RESEND_BASE_URL", defaultResendBaseURL))
	cfg.EmailFromApproval = strings.TrimSpace(getEnv("EMAIL_FROM_APPROVAL", defaultEmailFromApproval))
	cfg.EmailFromReset = strings.TrimSpace(getEnv("EMAIL_FROM_RESET", defaultEmailFromReset))
	cfg.EmailDevConsole = parseBoolEnv("EMAIL_DEV_CONSOLE", defaultEmailDevConsole)

	cfg.ResetRateLimit = strings.TrimSpace(getEnv("RESET_RATE_LIMIT", defaultResetRateLimit))
	cfg.MetricsEnabled = parseBoolEnv("METRICS_ENABLED", defaultMetricsEnabled)
	cfg.MetricsToken = strings.TrimSpace(getEnv("METRICS_TOKEN", ""))
	cfg.MetricsAllowedIPs = splitList(getEnv("METRICS_ALLOWED_IPS", ""))
	cfg.RunMigrations = parseBoolEnv("RUN_MIGRATIONS", defaultRunMigrations)

	var err error
	cfg.JWTAccessTTL, err = parseDurationEnv("JWT_ACCESS_TTL", defaultJWTAccessTTL)
	if err != nil {
		return nil, err
	}
	cfg.RecoveryTokenTTL, err = parseDurationEnv("RECOVERY_TOKEN_TTL", defaultRecoveryTokenTTL)
	if err != nil {
		return nil, err
	}
	cfg.ResendTimeout, err = parseDurationEnv("RESEND_TIMEOUT", defaultResendTimeout)
	if err != nil {
		return nil, err
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// IsProduction reports whether the service runs in a prod-like environment.
func (c *Config) IsProduction() bool {
	return isProdLike(c.AppEnv)
}

// MailerConfigured reports whether outbound email can be delivered.
func (c *Config) MailerConfigured() bool {
	return c.EmailDevConsole || c.ResendAPIKey != ""
}

func validateConfig(cfg *Config) error {
	if cfg.JWTAccessTTL <= 0 {
		return fmt.Errorf("JWT_ACCESS_TTL must be > 0")
	}
	if cfg.RecoveryTokenTTL <= 0 {
		return fmt.Errorf("RECOVERY_TOKEN_TTL must be > 0")
	}
	if cfg.ResendTimeout <= 0 {
		return fmt.Errorf("RESEND_TIMEOUT must be > 0")
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL must not be empty")
	}
	if cfg.SiteURL == "" {
		return fmt.Errorf("SITE_URL must not be empty")
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("LOG_LEVEL must be one of: debug, info, warn, error")
	}

	if isProdLike(cfg.AppEnv) {
		if isEmptyOrDefault(cfg.JWTSecret, defaultJWTSecret) {
			return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
		}
		if isEmptyOrDefault(cfg.RecoveryPepper, defaultRecoveryPepper) {
			return fmt.Errorf("in prod/release RECOVERY_TOKEN_PEPPER must be set and not default")
		}
		if cfg.EmailDevConsole {
			return fmt.Errorf("in prod/release EMAIL_DEV_CONSOLE must be false")
		}
	}

	return nil
}

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func isEmptyOrDefault(v, def string) bool {
	trimmed := strings.TrimSpace(v)
	return trimmed == "" || trimmed == def
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func parseBoolEnv(name, fallback string) bool {
	value := strings.ToLower(strings.TrimSpace(getEnv(name, fallback)))
	return value == "1" || value == "true" || value == "yes" || value == "on"
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
