package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"

	IdentityLocal  = "local"
	IdentityGoTrue = "gotrue"
)

type Config struct {
	App      AppConfig
	Store    StoreConfig
	Redis    RedisConfig
	Database DatabaseConfig
	Identity IdentityConfig
	Metrics  MetricsConfig
}

type AppConfig struct {
	AppName         string
	Environment     string
	HTTPPort        string
	APIPrefix       string
	ShutdownTimeout time.Duration
}

type StoreConfig struct {
	Backend   string
	Namespace string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ConnectTimeout        time.Duration
	PoolMaxConns          int32
	PoolMinConns          int32
	PoolMaxConnLifetime   time.Duration
	PoolMaxConnIdleTime   time.Duration
	PoolHealthCheckPeriod time.Duration
}

type IdentityConfig struct {
	Mode           string
	AuthURL        string
	ServiceRoleKey string
	AnonKey        string
	JWTSecret      string
	TokenTTL       time.Duration
}

type MetricsConfig struct {
	Enabled bool
}

func (c Config) IsProduction() bool {
	env := strings.ToLower(c.App.Environment)
	return env == "production" || env == "prod"
}

var (
	errMissingRequiredEnv = errors.New("missing required environment variables")
	errInvalidConfig      = errors.New("invalid configuration")
)

// Load reads the process environment, plus a .env file in the working
// directory when one exists. Environment variables win over the file.
func Load() (Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("read .env: %w", err)
		}
	}

	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_NAME", "talentboard")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("API_PREFIX", "/api/v1")
	v.SetDefault("APP_SHUTDOWN_TIMEOUT", "10s")
	v.SetDefault("KV_BACKEND", BackendMemory)
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_CONNECT_TIMEOUT", "5s")
	v.SetDefault("IDENTITY_MODE", IdentityLocal)
	v.SetDefault("AUTH_TOKEN_TTL", "1h")
	v.SetDefault("METRICS_ENABLED", true)
}

func fromViper(v *viper.Viper) (Config, error) {
	cfg := Config{}

	var missing []string
	req := func(key string) string {
		s := strings.TrimSpace(v.GetString(key))
		if s == "" {
			missing = append(missing, key)
		}
		return s
	}
	opt := func(key string) string {
		return strings.TrimSpace(v.GetString(key))
	}

	cfg.App = AppConfig{
		AppName:         opt("APP_NAME"),
		Environment:     opt("APP_ENV"),
		HTTPPort:        req("HTTP_PORT"),
		APIPrefix:       normalizePrefix(opt("API_PREFIX")),
		ShutdownTimeout: v.GetDuration("APP_SHUTDOWN_TIMEOUT"),
	}

	cfg.Store = StoreConfig{
		Backend:   strings.ToLower(opt("KV_BACKEND")),
		Namespace: opt("KV_NAMESPACE"),
	}

	cfg.Redis = RedisConfig{
		Host:     opt("REDIS_HOST"),
		Port:     opt("REDIS_PORT"),
		Password: opt("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.Database = DatabaseConfig{
		DBHost:     opt("DB_HOST"),
		DBPort:     opt("DB_PORT"),
		DBName:     opt("DB_NAME"),
		DBUser:     opt("DB_USER"),
		DBPassword: v.GetString("DB_PASSWORD"),
		DBSSLMode:  opt("DB_SSL_MODE"),

		ConnectTimeout:        v.GetDuration("DB_CONNECT_TIMEOUT"),
		PoolMaxConns:          v.GetInt32("DB_POOL_MAX_CONNS"),
		PoolMinConns:          v.GetInt32("DB_POOL_MIN_CONNS"),
		PoolMaxConnLifetime:   v.GetDuration("DB_POOL_MAX_CONN_LIFETIME"),
		PoolMaxConnIdleTime:   v.GetDuration("DB_POOL_MAX_CONN_IDLE_TIME"),
		PoolHealthCheckPeriod: v.GetDuration("DB_POOL_HEALTH_CHECK_PERIOD"),
	}

	cfg.Identity = IdentityConfig{
		Mode:           strings.ToLower(opt("IDENTITY_MODE")),
		AuthURL:        strings.TrimRight(opt("AUTH_URL"), "/"),
		ServiceRoleKey: opt("AUTH_SERVICE_ROLE_KEY"),
		AnonKey:        opt("AUTH_ANON_KEY"),
		JWTSecret:      opt("AUTH_JWT_SECRET"),
		TokenTTL:       v.GetDuration("AUTH_TOKEN_TTL"),
	}

	cfg.Metrics = MetricsConfig{Enabled: v.GetBool("METRICS_ENABLED")}

	switch cfg.Store.Backend {
	case BackendMemory, BackendRedis:
	case BackendPostgres:
		req("DB_HOST")
		req("DB_PORT")
		req("DB_NAME")
		req("DB_USER")
	default:
		return Config{}, fmt.Errorf("%w: unknown KV_BACKEND %q", errInvalidConfig, cfg.Store.Backend)
	}

	switch cfg.Identity.Mode {
	case IdentityLocal:
		req("AUTH_JWT_SECRET")
	case IdentityGoTrue:
		req("AUTH_URL")
		req("AUTH_SERVICE_ROLE_KEY")
	default:
		return Config{}, fmt.Errorf("%w: unknown IDENTITY_MODE %q", errInvalidConfig, cfg.Identity.Mode)
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) validate() error {
	if c.App.ShutdownTimeout <= 0 {
		return fmt.Errorf("%w: APP_SHUTDOWN_TIMEOUT must be positive", errInvalidConfig)
	}
	if c.Identity.Mode == IdentityLocal {
		if c.Identity.TokenTTL <= 0 {
			return fmt.Errorf("%w: AUTH_TOKEN_TTL must be positive", errInvalidConfig)
		}
		if c.IsProduction() && len(c.Identity.JWTSecret) < 32 {
			return fmt.Errorf("%w: AUTH_JWT_SECRET must be at least 32 characters in production", errInvalidConfig)
		}
	}
	return nil
}

func normalizePrefix(p string) string {
	p = strings.TrimSpace(p)
	p = strings.TrimRight(p, "/")
	if p == "" {
		return ""
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return p
}
