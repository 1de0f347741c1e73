package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"wedding-registry-go/pkg/logger"
)

const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

type Config struct {
	HTTPPort           string   `env:"HTTP_PORT" envDefault:"8080"`
	Env                string   `env:"ENV" envDefault:"development"`
	Store              string   `env:"STORE_DRIVER" envDefault:"postgres"`
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173"`
	DB                 DBConfig
	Redis              RedisConfig
	Auth               AuthConfig
	RateLimit          RateLimitConfig
	RSVP               RSVPConfig
	Notify             NotifyConfig
	Event              EventConfig
}

type DBConfig struct {
	DSN             string        `env:"DB_DSN"`
	Host            string        `env:"DB_HOST" envDefault:"localhost"`
	Port            string        `env:"DB_PORT" envDefault:"5432"`
	User            string        `env:"DB_USER" envDefault:"postgres"`
	Password        string        `env:"DB_PASSWORD" envDefault:"postgres"`
	Name            string        `env:"DB_NAME" envDefault:"wedding_registry"`
	SSLMode         string        `env:"DB_SSLMODE" envDefault:"disable"`
	TimeZone        string        `env:"DB_TIMEZONE" envDefault:"UTC"`
	MaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" envDefault:"10"`
	MaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`
	ConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"30m"`
}

// RedisConfig is optional; an empty URL keeps the directory cache and the
// sign-in rate limit counts in process.
type RedisConfig struct {
	URL            string        `env:"REDIS_URL"`
	PoolSize       int           `env:"REDIS_POOL_SIZE" envDefault:"10"`
	MinIdleConns   int           `env:"REDIS_MIN_IDLE_CONNS" envDefault:"2"`
	DialTimeout    time.Duration `env:"REDIS_DIAL_TIMEOUT" envDefault:"5s"`
	ReadTimeout    time.Duration `env:"REDIS_READ_TIMEOUT" envDefault:"3s"`
	WriteTimeout   time.Duration `env:"REDIS_WRITE_TIMEOUT" envDefault:"3s"`
	DirectoryTTL   time.Duration `env:"DIRECTORY_CACHE_TTL" envDefault:"30s"`
	DirectoryCache bool          `env:"DIRECTORY_CACHE_ENABLED" envDefault:"true"`
}

type AuthConfig struct {
	WeddingPassword string        `env:"WEDDING_PASSWORD"`
	AdminCode       string        `env:"ADMIN_CODE"`
	SessionSecret   string        `env:"SESSION_SECRET"`
	SessionIssuer   string        `env:"SESSION_ISSUER" envDefault:"wedding-registry"`
	GuestSessionTTL time.Duration `env:"GUEST_SESSION_TTL" envDefault:"720h"`
	AdminSessionTTL time.Duration `env:"ADMIN_SESSION_TTL" envDefault:"12h"`
}

// RateLimitConfig caps sign-in attempts per client address. Counts live in
// redis when REDIS_URL is set, otherwise in process.
type RateLimitConfig struct {
	AuthAttempts int           `env:"AUTH_RATE_LIMIT" envDefault:"5"`
	AuthWindow   time.Duration `env:"AUTH_RATE_WINDOW" envDefault:"15m"`
}

type RSVPConfig struct {
	MaxGuestCount int `env:"RSVP_MAX_GUEST_COUNT" envDefault:"1"`
}

type NotifyConfig struct {
	ResendAPIKey      string        `env:"RESEND_API_KEY"`
	ResendBaseURL     string        `env:"RESEND_BASE_URL" envDefault:"https://api.resend.com"`
	From              string        `env:"EMAIL_FROM" envDefault:"Wedding Registry <onboarding@resend.dev>"`
	NotificationEmail string        `env:"NOTIFICATION_EMAIL"`
	Timeout           time.Duration `env:"NOTIFY_TIMEOUT" envDefault:"10s"`
}

type EventConfig struct {
	CoupleNames string `env:"COUPLE_NAMES" envDefault:"the couple"`
	WeddingDate string `env:"WEDDING_DATE"`
	SiteURL     string `env:"SITE_URL" envDefault:"http://localhost:8080"`
}

func Load(log logger.Logger) (Config, error) {
	if err := loadDotEnv(log); err != nil {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if c.Auth.WeddingPassword == "" {
		errs = append(errs, errors.New("WEDDING_PASSWORD is required"))
	}
	if c.Auth.AdminCode == "" {
		errs = append(errs, errors.New("ADMIN_CODE is required"))
	}
	if c.Auth.SessionSecret == "" {
		errs = append(errs, errors.New("SESSION_SECRET is required"))
	}
	if c.Store != StorePostgres && c.Store != StoreMemory {
		errs = append(errs, fmt.Errorf("STORE_DRIVER must be %q or %q", StorePostgres, StoreMemory))
	}
	if c.RateLimit.AuthAttempts < 0 {
		errs = append(errs, errors.New("AUTH_RATE_LIMIT must not be negative"))
	}
	if c.RateLimit.AuthAttempts > 0 && c.RateLimit.AuthWindow <= 0 {
		errs = append(errs, errors.New("AUTH_RATE_WINDOW must be positive"))
	}
	if c.RSVP.MaxGuestCount < 1 {
		errs = append(errs, errors.New("RSVP_MAX_GUEST_COUNT must be at least 1"))
	}
	return errors.Join(errs...)
}

func (c DBConfig) GetDSN() string {
	if c.DSN != "" {
		return c.DSN
	}
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.TimeZone
}
