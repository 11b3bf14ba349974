package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store drivers understood by the repository layer.
const (
	StoreDriverMongo    = "mongo"
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App     AppConfig
	Store   StoreConfig
	Redis   RedisConfig
	Logger  LoggerConfig
	Auth    AuthConfig
	Media   MediaConfig
	Mail    MailConfig
	Contact ContactConfig
	Tracing TracingConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
	TrustedProxyHops      int
	CORSOrigins           []string
	BodyLimitBytes        int
}

// StoreConfig selects and configures the document store.
type StoreConfig struct {
	Driver         string
	MongoURI       string
	MongoDatabase  string
	PostgresDSN    string
	MaxConns       int
	MinConns       int
	RunMigrations  bool
	ConnMaxLifeSec int
}

// RedisConfig holds Redis connection values. An empty Addr disables Redis.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
	Env   string
}

// AuthConfig defines authentication parameters.
type AuthConfig struct {
	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	AdminPassword string
	AdminID       string
	BcryptCost    int
}

// MediaConfig holds the S3-compatible media host settings.
type MediaConfig struct {
	Endpoint       string
	AccessKey      string
	SecretKey      string
	Bucket         string
	Region         string
	UseSSL         bool
	PublicBaseURL  string
	MaxUploadBytes int64
}

// MailConfig configures the pooled SMTP transport.
type MailConfig struct {
	Host           string
	Port           int
	Secure         bool
	User           string
	Password       string
	FromName       string
	OwnerEmail     string
	MaxConnections int
	MaxMessages    int
	Timeout        time.Duration
}

// ContactConfig configures the contact form intake.
type ContactConfig struct {
	RateWindow time.Duration
	RateLimit  int
}

// TracingConfig toggles OpenTelemetry export.
type TracingConfig struct {
	Enabled     bool
	Endpoint    string
	ServiceName string
	Insecure    bool
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	accessTTL, err := getEnvAsDuration("ACCESS_EXPIRES", 15*time.Minute)
	if err != nil {
		return nil, err
	}
	refreshTTL, err := getEnvAsDuration("REFRESH_EXPIRES", 7*24*time.Hour)
	if err != nil {
		return nil, err
	}
	mailTimeout, err := getEnvAsDuration("SMTP_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	rateWindow, err := getEnvAsDuration("CONTACT_RATE_WINDOW", time.Minute)
	if err != nil {
		return nil, err
	}

	env := getEnv("APP_ENV", "development")
	smtpPort := getEnvAsInt("SMTP_PORT", 465)

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "content-service"),
			Env:                   env,
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("PORT", "5000"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
			TrustedProxyHops:      getEnvAsInt("TRUSTED_PROXY_HOPS", 0),
			CORSOrigins:           getEnvAsList("CORS_ORIGINS", []string{"http://localhost:5173"}),
			BodyLimitBytes:        getEnvAsInt("HTTP_BODY_LIMIT_BYTES", 8*1024*1024),
		},
		Store: StoreConfig{
			Driver:         strings.ToLower(getEnv("STORE_DRIVER", StoreDriverMongo)),
			MongoURI:       os.Getenv("MONGO_URL"),
			MongoDatabase:  getEnv("MONGO_DATABASE", "content"),
			PostgresDSN:    os.Getenv("POSTGRES_DSN"),
			MaxConns:       getEnvAsInt("POSTGRES_MAX_CONNS", 10),
			MinConns:       getEnvAsInt("POSTGRES_MIN_CONNS", 2),
			RunMigrations:  getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true),
			ConnMaxLifeSec: getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300),
		},
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
			Env:   env,
		},
		Auth: AuthConfig{
			AccessSecret:  os.Getenv("ACCESS_SECRET"),
			RefreshSecret: os.Getenv("REFRESH_SECRET"),
			AccessTTL:     accessTTL,
			RefreshTTL:    refreshTTL,
			AdminPassword: os.Getenv("ADMIN_PANEL_PASSWORD"),
			AdminID:       getEnv("ADMIN_ID", "admin"),
			BcryptCost:    getEnvAsInt("AUTH_BCRYPT_COST", 12),
		},
		Media: MediaConfig{
			Endpoint:       os.Getenv("MEDIA_ENDPOINT"),
			AccessKey:      os.Getenv("MEDIA_ACCESS_KEY"),
			SecretKey:      os.Getenv("MEDIA_SECRET_KEY"),
			Bucket:         getEnv("MEDIA_BUCKET", "content-media"),
			Region:         getEnv("MEDIA_REGION", "us-east-1"),
			UseSSL:         getEnvAsBool("MEDIA_USE_SSL", false),
			PublicBaseURL:  os.Getenv("MEDIA_PUBLIC_BASE_URL"),
			MaxUploadBytes: int64(getEnvAsInt("MEDIA_MAX_UPLOAD_BYTES", 5*1024*1024)),
		},
		Mail: MailConfig{
			Host:           getEnv("SMTP_HOST", "smtp.seznam.cz"),
			Port:           smtpPort,
			Secure:         getEnvAsBool("SMTP_SECURE", smtpPort == 465),
			User:           os.Getenv("EMAIL_USER"),
			Password:       os.Getenv("EMAIL_PASS"),
			FromName:       getEnv("EMAIL_FROM_NAME", "RRP s.r.o."),
			OwnerEmail:     os.Getenv("OWNER_EMAIL"),
			MaxConnections: getEnvAsInt("SMTP_MAX_CONNECTIONS", 3),
			MaxMessages:    getEnvAsInt("SMTP_MAX_MESSAGES", 50),
			Timeout:        mailTimeout,
		},
		Contact: ContactConfig{
			RateWindow: rateWindow,
			RateLimit:  getEnvAsInt("CONTACT_RATE_LIMIT", 1),
		},
		Tracing: TracingConfig{
			Enabled:     getEnvAsBool("OTEL_ENABLED", false),
			Endpoint:    os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
			ServiceName: getEnv("OTEL_SERVICE_NAME", "content-service"),
			Insecure:    getEnvAsBool("OTEL_EXPORTER_OTLP_INSECURE", true),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks invariants that must hold before the service starts.
func (c *Config) Validate() error {
	var errs []error
	if c.Auth.AccessSecret == "" {
		errs = append(errs, errors.New("ACCESS_SECRET is required"))
	}
	if c.Auth.RefreshSecret == "" {
		errs = append(errs, errors.New("REFRESH_SECRET is required"))
	}
	if c.Auth.AccessSecret != "" && c.Auth.AccessSecret == c.Auth.RefreshSecret {
		errs = append(errs, errors.New("ACCESS_SECRET and REFRESH_SECRET must differ"))
	}
	if c.Auth.AdminPassword == "" {
		errs = append(errs, errors.New("ADMIN_PANEL_PASSWORD is required"))
	}
	if c.Auth.AccessTTL <= 0 || c.Auth.RefreshTTL <= 0 {
		errs = append(errs, errors.New("token expiries must be positive"))
	}
	switch c.Store.Driver {
	case StoreDriverMongo:
		if c.Store.MongoURI == "" {
			errs = append(errs, errors.New("MONGO_URL is required for the mongo store"))
		}
	case StoreDriverPostgres:
		if c.Store.PostgresDSN == "" {
			errs = append(errs, errors.New("POSTGRES_DSN is required for the postgres store"))
		}
	case StoreDriverMemory:
	default:
		errs = append(errs, fmt.Errorf("unsupported STORE_DRIVER %q", c.Store.Driver))
	}
	if c.Contact.RateWindow <= 0 {
		errs = append(errs, errors.New("CONTACT_RATE_WINDOW must be positive"))
	}
	return errors.Join(errs...)
}

// IsProduction reports whether the service runs with production settings.
func (a AppConfig) IsProduction() bool {
	return strings.EqualFold(a.Env, "production")
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// Enabled reports whether the mail transport has credentials to work with.
func (m MailConfig) Enabled() bool {
	return m.User != "" && m.Password != "" && m.OwnerEmail != ""
}

// Enabled reports whether a media host endpoint is configured.
func (m MediaConfig) Enabled() bool {
	return m.Endpoint != ""
}

func getEnv(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsList(key string, fallback []string) []string {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return fallback
	}
	parts := strings.Split(val, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getEnvAsDuration(key string, fallback time.Duration) (time.Duration, error) {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return fallback, nil
	}
	d, err := ParseDuration(val)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

// ParseDuration extends time.ParseDuration with a "d" (day) suffix, so values
// such as "7d" or "1d12h" are accepted.
func ParseDuration(s string) (time.Duration, error) {
	if i := strings.Index(s, "d"); i > 0 {
		days, err := strconv.Atoi(s[:i])
		if err != nil {
			return 0, fmt.Errorf("parse days in %q: %w", s, err)
		}
		total := time.Duration(days) * 24 * time.Hour
		if rest := s[i+1:]; rest != "" {
			d, err := time.ParseDuration(rest)
			if err != nil {
				return 0, err
			}
			total += d
		}
		return total, nil
	}
	return time.ParseDuration(s)
}
