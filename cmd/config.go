package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"deliverytracker/internal/adapters/out/postgres"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds every setting of the service. It is built once at startup by
// LoadConfig and passed by reference from there on.
type Config struct {
	HTTPPort string `yaml:"http_port"`

	DBHost     string `yaml:"db_host"`
	DBPort     string `yaml:"db_port"`
	DBUser     string `yaml:"db_user"`
	DBPassword string `yaml:"db_password"`
	DBName     string `yaml:"db_name"`
	DBSslMode  string `yaml:"db_sslmode"`

	JWTSecret      string        `yaml:"jwt_secret"`
	AccessTokenTTL time.Duration `yaml:"access_token_ttl"`

	ExternalCallTimeout time.Duration `yaml:"external_call_timeout"`
	ViaCEPBaseURL       string        `yaml:"viacep_base_url"`
	NominatimBaseURL    string        `yaml:"nominatim_base_url"`
	NominatimUserAgent  string        `yaml:"nominatim_user_agent"`
	GeocodeCountry      string        `yaml:"geocode_country"`

	RedisAddr     string        `yaml:"redis_addr"`
	RedisPassword string        `yaml:"redis_password"`
	RedisDB       int           `yaml:"redis_db"`
	CacheTTL      time.Duration `yaml:"cache_ttl"`

	CORSAllowedOrigins   []string `yaml:"cors_allowed_origins"`
	StatusReportSchedule string   `yaml:"status_report_schedule"`
	LogLevel             string   `yaml:"log_level"`

	AdminEmail    string `yaml:"admin_email"`
	AdminPassword string `yaml:"admin_password"`
	AdminName     string `yaml:"admin_name"`
}

// ErrJWTSecretIsRequired is returned when no signing secret is configured.
var ErrJWTSecretIsRequired = errors.New("JWT_SECRET is required")

// LoadConfig reads .env (if present), then the YAML file named by CONFIG_FILE
// (if set), then environment variables, and finally fills in defaults.
// Environment variables take precedence over the file.
func LoadConfig() (Config, error) {
	_ = godotenv.Load()
	return loadConfig(os.Getenv)
}

func loadConfig(getenv func(string) string) (Config, error) {
	var cfg Config

	if path := getenv("CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err = yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file: %w", err)
		}
	}

	if err := cfg.applyEnv(getenv); err != nil {
		return Config{}, err
	}
	cfg.applyDefaults()

	return cfg, nil
}

func (c *Config) applyEnv(getenv func(string) string) error {
	strs := map[string]*string{
		"HTTP_PORT":              &c.HTTPPort,
		"DB_HOST":                &c.DBHost,
		"DB_PORT":                &c.DBPort,
		"DB_USER":                &c.DBUser,
		"DB_PASSWORD":            &c.DBPassword,
		"DB_NAME":                &c.DBName,
		"DB_SSLMODE":             &c.DBSslMode,
		"JWT_SECRET":             &c.JWTSecret,
		"VIACEP_BASE_URL":        &c.ViaCEPBaseURL,
		"NOMINATIM_BASE_URL":     &c.NominatimBaseURL,
		"NOMINATIM_USER_AGENT":   &c.NominatimUserAgent,
		"GEOCODE_COUNTRY":        &c.GeocodeCountry,
		"REDIS_ADDR":             &c.RedisAddr,
		"REDIS_PASSWORD":         &c.RedisPassword,
		"STATUS_REPORT_SCHEDULE": &c.StatusReportSchedule,
		"LOG_LEVEL":              &c.LogLevel,
		"ADMIN_EMAIL":            &c.AdminEmail,
		"ADMIN_PASSWORD":         &c.AdminPassword,
		"ADMIN_NAME":             &c.AdminName,
	}
	for key, dst := range strs {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}

	durations := map[string]*time.Duration{
		"ACCESS_TOKEN_TTL":      &c.AccessTokenTTL,
		"EXTERNAL_CALL_TIMEOUT": &c.ExternalCallTimeout,
		"CACHE_TTL":             &c.CacheTTL,
	}
	for key, dst := range durations {
		v := getenv(key)
		if v == "" {
			continue
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*dst = d
	}

	if v := getenv("REDIS_DB"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("REDIS_DB: %w", err)
		}
		c.RedisDB = n
	}

	if v := getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		c.CORSAllowedOrigins = nil
		for _, origin := range strings.Split(v, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				c.CORSAllowedOrigins = append(c.CORSAllowedOrigins, origin)
			}
		}
	}

	return nil
}

func (c *Config) applyDefaults() {
	setDefault(&c.HTTPPort, "8000")
	setDefault(&c.DBHost, "localhost")
	setDefault(&c.DBPort, "5432")
	setDefault(&c.DBUser, "postgres")
	setDefault(&c.DBName, "delivery_tracker")
	setDefault(&c.DBSslMode, "disable")
	setDefault(&c.GeocodeCountry, "Brazil")
	setDefault(&c.LogLevel, "info")
	setDefault(&c.AdminEmail, "admin@delivery.com")
	setDefault(&c.AdminName, "Administrador")

	if c.AccessTokenTTL <= 0 {
		c.AccessTokenTTL = 60 * time.Minute
	}
	if c.ExternalCallTimeout <= 0 {
		c.ExternalCallTimeout = 10 * time.Second
	}
	if c.CacheTTL <= 0 {
		c.CacheTTL = 24 * time.Hour
	}
}

func setDefault(dst *string, value string) {
	if *dst == "" {
		*dst = value
	}
}

// Validate checks the settings the HTTP server cannot run without.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return ErrJWTSecretIsRequired
	}
	return nil
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return postgres.DSN(c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// SlogLevel maps LogLevel to a slog level; unknown values mean info.
func (c *Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// RedisEnabled reports whether lookups should be cached.
func (c *Config) RedisEnabled() bool {
	return c.RedisAddr != ""
}
