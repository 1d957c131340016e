package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "CARDKEEPER"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	App       AppConfig
	DB        DBConfig
	Scryfall  ScryfallConfig
	Archidekt ArchidektConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"CARDKEEPER_APP_ENV" default:"dev"`
	Port         string `envconfig:"CARDKEEPER_APP_PORT" default:"5000"`
	LogLevel     string `envconfig:"CARDKEEPER_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"CARDKEEPER_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	Driver string `envconfig:"CARDKEEPER_DB_DRIVER" default:"sqlite"`
	DSN    string `envconfig:"CARDKEEPER_DB_DSN" default:"cardkeeper.db"`

	MaxOpenConns    int           `envconfig:"CARDKEEPER_DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"CARDKEEPER_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"CARDKEEPER_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"CARDKEEPER_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

func (db DBConfig) validate() error {
	switch db.Driver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("unsupported db driver %q", db.Driver)
	}
	if db.DSN == "" {
		return fmt.Errorf("database DSN is required")
	}
	return nil
}

type ScryfallConfig struct {
	BaseURL        string        `envconfig:"CARDKEEPER_SCRYFALL_BASE_URL" default:"https://api.scryfall.com"`
	UserAgent      string        `envconfig:"CARDKEEPER_SCRYFALL_USER_AGENT" default:"cardkeeper/1.0"`
	MinInterval    time.Duration `envconfig:"CARDKEEPER_SCRYFALL_MIN_INTERVAL" default:"100ms"`
	RequestTimeout time.Duration `envconfig:"CARDKEEPER_SCRYFALL_TIMEOUT" default:"30s"`
}

type ArchidektConfig struct {
	BaseURL        string        `envconfig:"CARDKEEPER_ARCHIDEKT_BASE_URL" default:"https://archidekt.com"`
	UserAgent      string        `envconfig:"CARDKEEPER_ARCHIDEKT_USER_AGENT" default:"cardkeeper/1.0"`
	RequestTimeout time.Duration `envconfig:"CARDKEEPER_ARCHIDEKT_TIMEOUT" default:"30s"`
}
