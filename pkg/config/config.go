package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = ""

	AppEnvDev  = "development"
	AppEnvProd = "production"

	EnvAppEnv     = "TECHNEST_APP_ENV"
	EnvPort       = "TECHNEST_APP_PORT"
	EnvDBDSN      = "TECHNEST_DB_DSN"
	EnvRedisURL   = "TECHNEST_REDIS_URL"
	EnvJWTSecret  = "TECHNEST_JWT_SECRET"
	EnvJWTIssuer  = "TECHNEST_JWT_ISSUER"
	EnvJWTExpMins = "TECHNEST_JWT_EXPIRATION_MINUTES"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"TECHNEST_APP_ENV" required:"true"`
	Port         string `envconfig:"TECHNEST_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"TECHNEST_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"TECHNEST_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"TECHNEST_DB_DSN"`
	Driver string `envconfig:"TECHNEST_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"TECHNEST_DB_HOST"`
	Port     int    `envconfig:"TECHNEST_DB_PORT" default:"5432"`
	User     string `envconfig:"TECHNEST_DB_USER"`
	Password string `envconfig:"TECHNEST_DB_PASSWORD"`
	Name     string `envconfig:"TECHNEST_DB_NAME"`
	SSLMode  string `envconfig:"TECHNEST_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"TECHNEST_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"TECHNEST_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"TECHNEST_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"TECHNEST_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

func (d *DBConfig) ensureDSN() error {
	if d.DSN != "" {
		return nil
	}
	if d.Driver == "sqlite" {
		return fmt.Errorf("sqlite driver requires %s", EnvDBDSN)
	}
	if d.Host == "" || d.User == "" || d.Name == "" {
		return fmt.Errorf("database DSN or host/user/name settings are required")
	}
	d.DSN = fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode,
	)
	return nil
}

type RedisConfig struct {
	URL          string        `envconfig:"TECHNEST_REDIS_URL" required:"true"`
	Address      string        `envconfig:"TECHNEST_REDIS_ADDR"`
	Password     string        `envconfig:"TECHNEST_REDIS_PASSWORD"`
	DB           int           `envconfig:"TECHNEST_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"TECHNEST_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"TECHNEST_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"TECHNEST_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"TECHNEST_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"TECHNEST_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"TECHNEST_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"TECHNEST_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"TECHNEST_JWT_EXPIRATION_MINUTES" required:"true"`
}

// TokenTTL returns the access token lifetime configured in minutes.
func (j JWTConfig) TokenTTL() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"TECHNEST_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"TECHNEST_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"TECHNEST_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"TECHNEST_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"TECHNEST_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"TECHNEST_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"TECHNEST_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"TECHNEST_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"TECHNEST_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"TECHNEST_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"TECHNEST_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"TECHNEST_AUTO_MIGRATE" default:"false"`
}
