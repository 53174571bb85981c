package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Loyalty      LoyaltyConfig
	Cron         CronConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	if err := cfg.Loyalty.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"MINICRM_APP_ENV" required:"true"`
	Port         string `envconfig:"MINICRM_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"MINICRM_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"MINICRM_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN string `envconfig:"MINICRM_DB_DSN"`

	LegacyHost     string `envconfig:"MINICRM_DB_HOST"`
	LegacyPort     int    `envconfig:"MINICRM_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"MINICRM_DB_USER"`
	LegacyPassword string `envconfig:"MINICRM_DB_PASSWORD"`
	LegacyName     string `envconfig:"MINICRM_DB_NAME"`
	LegacySSLMode  string `envconfig:"MINICRM_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"MINICRM_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"MINICRM_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"MINICRM_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"MINICRM_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"MINICRM_REDIS_URL" required:"true"`
	Address      string        `envconfig:"MINICRM_REDIS_ADDR"`
	Password     string        `envconfig:"MINICRM_REDIS_PASSWORD"`
	DB           int           `envconfig:"MINICRM_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"MINICRM_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"MINICRM_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"MINICRM_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"MINICRM_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"MINICRM_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// LoyaltyConfig controls point accrual defaults.
type LoyaltyConfig struct {
	// DefaultPointsPerReal applies when a purchase does not carry an
	// explicit rate.
	DefaultPointsPerReal int `envconfig:"MINICRM_LOYALTY_POINTS_PER_REAL" default:"1"`
}

func (l LoyaltyConfig) validate() error {
	if l.DefaultPointsPerReal < 0 {
		return fmt.Errorf("%s must be >= 0", EnvLoyaltyPointsPerReal)
	}
	return nil
}

type CronConfig struct {
	Interval time.Duration `envconfig:"MINICRM_CRON_INTERVAL" default:"24h"`
	LockTTL  time.Duration `envconfig:"MINICRM_CRON_LOCK_TTL" default:"25h"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"MINICRM_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
