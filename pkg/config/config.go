package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	// EnvPrefix scopes every environment variable read by Load.
	EnvPrefix = "CLUBMATE"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App          AppConfig
	Service      ServiceConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	FeatureFlags FeatureFlagsConfig
	GCP          GCPConfig
	PubSub       PubSubConfig
	Outbox       OutboxConfig
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
	Env          string `envconfig:"CLUBMATE_APP_ENV" required:"true"`
	Port         string `envconfig:"CLUBMATE_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"CLUBMATE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"CLUBMATE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type ServiceConfig struct {
	Kind string `envconfig:"CLUBMATE_SERVICE_KIND" default:"api"`
}

type DBConfig struct {
	DSN    string `envconfig:"CLUBMATE_DB_DSN"`
	Driver string `envconfig:"CLUBMATE_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"CLUBMATE_DB_HOST"`
	Port     int    `envconfig:"CLUBMATE_DB_PORT" default:"5432"`
	User     string `envconfig:"CLUBMATE_DB_USER"`
	Password string `envconfig:"CLUBMATE_DB_PASSWORD"`
	Name     string `envconfig:"CLUBMATE_DB_NAME"`
	SSLMode  string `envconfig:"CLUBMATE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"CLUBMATE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"CLUBMATE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"CLUBMATE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"CLUBMATE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"CLUBMATE_REDIS_URL" required:"true"`
	Address      string        `envconfig:"CLUBMATE_REDIS_ADDR"`
	Password     string        `envconfig:"CLUBMATE_REDIS_PASSWORD"`
	DB           int           `envconfig:"CLUBMATE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"CLUBMATE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"CLUBMATE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"CLUBMATE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"CLUBMATE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"CLUBMATE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"CLUBMATE_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"CLUBMATE_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"CLUBMATE_JWT_EXPIRATION_MINUTES" required:"true"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"CLUBMATE_AUTO_MIGRATE" default:"false"`
}

type GCPConfig struct {
	ProjectID              string `envconfig:"CLUBMATE_GCP_PROJECT_ID" required:"true"`
	CredentialsJSON        string `envconfig:"CLUBMATE_GCP_CREDENTIALS_JSON"`
	ApplicationCredentials string `envconfig:"CLUBMATE_GOOGLE_APPLICATION_CREDENTIALS"`
}

type PubSubConfig struct {
	CarpoolTopic        string `envconfig:"CLUBMATE_PUBSUB_CARPOOL_TOPIC" default:"cm-carpool-events"`
	CarpoolSubscription string `envconfig:"CLUBMATE_PUBSUB_CARPOOL_SUBSCRIPTION" required:"true"`
}

type OutboxConfig struct {
	BatchSize      int `envconfig:"CLUBMATE_OUTBOX_PUBLISH_BATCH_SIZE" default:"50"`
	PollIntervalMS int `envconfig:"CLUBMATE_OUTBOX_PUBLISH_POLL_MS" default:"500"`
	MaxAttempts    int `envconfig:"CLUBMATE_OUTBOX_MAX_ATTEMPTS" default:"10"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	parts := map[string]string{
		"CLUBMATE_DB_HOST": db.Host,
		"CLUBMATE_DB_USER": db.User,
		"CLUBMATE_DB_NAME": db.Name,
	}
	for _, key := range []string{"CLUBMATE_DB_HOST", "CLUBMATE_DB_USER", "CLUBMATE_DB_NAME"} {
		if parts[key] == "" {
			missing = append(missing, key)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either CLUBMATE_DB_DSN or %s are required", strings.Join(missing, ", "))
	}

	userInfo := url.User(db.User)
	if db.Password != "" {
		userInfo = url.UserPassword(db.User, db.Password)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   db.Name,
	}

	if db.SSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.SSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
