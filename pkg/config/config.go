package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

const (
	EnvPrefix = "BIDBOARD"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvAppEnv      = "BIDBOARD_APP_ENV"
	EnvPort        = "BIDBOARD_APP_PORT"
	EnvDBDSN       = "BIDBOARD_DB_DSN"
	EnvDBHost      = "BIDBOARD_DB_HOST"
	EnvDBUser      = "BIDBOARD_DB_USER"
	EnvDBName      = "BIDBOARD_DB_NAME"
	EnvRedisURL    = "BIDBOARD_REDIS_URL"
	EnvMarkupTiers = "BIDBOARD_MARKUP_TIERS"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App          AppConfig
	Service      ServiceConfig
	DB           DBConfig
	Redis        RedisConfig
	FeatureFlags FeatureFlagsConfig
	Quotes       QuotesConfig
	Bids         BidsConfig
	RFQ          RFQConfig
	Cron         CronConfig
	CORS         CORSConfig
	Metrics      MetricsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(cfg.FeatureFlags.UseSQLite); err != nil {
		return nil, err
	}
	if _, err := cfg.Quotes.Tiers(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"BIDBOARD_APP_ENV" required:"true"`
	Port         string `envconfig:"BIDBOARD_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"BIDBOARD_LOG_LEVEL" default:"info"`
	LogFormat    string `envconfig:"BIDBOARD_LOG_FORMAT" default:"json"`
	LogWarnStack bool   `envconfig:"BIDBOARD_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type ServiceConfig struct {
	Kind string `envconfig:"BIDBOARD_SERVICE_KIND" default:"api"`
}

type DBConfig struct {
	DSN    string `envconfig:"BIDBOARD_DB_DSN"`
	Driver string `envconfig:"BIDBOARD_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"BIDBOARD_DB_HOST"`
	LegacyPort     int    `envconfig:"BIDBOARD_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"BIDBOARD_DB_USER"`
	LegacyPassword string `envconfig:"BIDBOARD_DB_PASSWORD"`
	LegacyName     string `envconfig:"BIDBOARD_DB_NAME"`
	LegacySSLMode  string `envconfig:"BIDBOARD_DB_SSLMODE" default:"require"`

	MaxOpenConns    int           `envconfig:"BIDBOARD_DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"BIDBOARD_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"BIDBOARD_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"BIDBOARD_DB_CONN_MAX_IDLE_TIME" default:"10m"`
	QueryTimeout    time.Duration `envconfig:"BIDBOARD_DB_QUERY_TIMEOUT" default:"10s"`
}

// IsSQLite reports whether the configured driver targets a local sqlite file.
func (db DBConfig) IsSQLite() bool {
	return strings.EqualFold(strings.TrimSpace(db.Driver), "sqlite")
}

type RedisConfig struct {
	URL          string        `envconfig:"BIDBOARD_REDIS_URL"`
	Address      string        `envconfig:"BIDBOARD_REDIS_ADDR"`
	Password     string        `envconfig:"BIDBOARD_REDIS_PASSWORD"`
	DB           int           `envconfig:"BIDBOARD_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"BIDBOARD_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"BIDBOARD_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"BIDBOARD_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"BIDBOARD_REDIS_READ_TIMEOUT" default:"3s"`
	WriteTimeout time.Duration `envconfig:"BIDBOARD_REDIS_WRITE_TIMEOUT" default:"3s"`
}

// Enabled reports whether any redis endpoint was configured.
func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != "" || strings.TrimSpace(r.Address) != ""
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"BIDBOARD_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"BIDBOARD_AUTO_MIGRATE" default:"false"`
}

type QuotesConfig struct {
	MarkupTiers string `envconfig:"BIDBOARD_MARKUP_TIERS" default:"0.15,0.20,0.25"`
}

// Tiers parses the comma separated markup list. An empty list yields nil so the
// engine falls back to its own defaults.
func (q QuotesConfig) Tiers() ([]decimal.Decimal, error) {
	raw := strings.TrimSpace(q.MarkupTiers)
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	tiers := make([]decimal.Decimal, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		tier, err := decimal.NewFromString(part)
		if err != nil {
			return nil, fmt.Errorf("%s: invalid markup tier %q: %w", EnvMarkupTiers, part, err)
		}
		if tier.IsNegative() {
			return nil, fmt.Errorf("%s: markup tier %q must not be negative", EnvMarkupTiers, part)
		}
		tiers = append(tiers, tier)
	}
	return tiers, nil
}

type BidsConfig struct {
	ClosingSoonDays   int `envconfig:"BIDBOARD_BIDS_CLOSING_SOON_DAYS" default:"3"`
	ClosedRetainDays  int `envconfig:"BIDBOARD_BIDS_CLOSED_RETAIN_DAYS" default:"2"`
	VendorSearchLimit int `envconfig:"BIDBOARD_VENDOR_SEARCH_LIMIT" default:"10"`
}

type RFQConfig struct {
	OverdueAfterDays int `envconfig:"BIDBOARD_RFQ_OVERDUE_AFTER_DAYS" default:"2"`
}

type CronConfig struct {
	Interval time.Duration `envconfig:"BIDBOARD_CRON_INTERVAL" default:"1h"`
	LockTTL  time.Duration `envconfig:"BIDBOARD_CRON_LOCK_TTL" default:"55m"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"BIDBOARD_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}

type MetricsConfig struct {
	Enabled bool   `envconfig:"BIDBOARD_METRICS_ENABLED" default:"true"`
	Path    string `envconfig:"BIDBOARD_METRICS_PATH" default:"/metrics"`
}

func (db *DBConfig) ensureDSN(useSQLite bool) error {
	if useSQLite && db.DSN == "" {
		db.Driver = "sqlite"
		db.DSN = "file:bidboard.db?cache=shared"
		return nil
	}
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
