package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = ""

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Storage      StorageConfig
	Media        MediaConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"CATALOG_APP_ENV" default:"dev"`
	Port         string `envconfig:"CATALOG_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"CATALOG_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"CATALOG_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN string `envconfig:"CATALOG_DB_DSN" required:"true"`

	MaxOpenConns    int           `envconfig:"CATALOG_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"CATALOG_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"CATALOG_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"CATALOG_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// StorageConfig configures the S3-compatible blob store holding raw media.
type StorageConfig struct {
	Region          string `envconfig:"CATALOG_STORAGE_REGION" default:"us-east-1"`
	Bucket          string `envconfig:"CATALOG_STORAGE_BUCKET" required:"true"`
	AccessKeyID     string `envconfig:"CATALOG_STORAGE_ACCESS_KEY_ID"`
	SecretAccessKey string `envconfig:"CATALOG_STORAGE_SECRET_ACCESS_KEY"`
	Endpoint        string `envconfig:"CATALOG_STORAGE_ENDPOINT"`
	UsePathStyle    bool   `envconfig:"CATALOG_STORAGE_USE_PATH_STYLE" default:"false"`
}

// MediaConfig holds the key templates that define where a video's assets live.
// All assets of one video share the folder derived from LocationPattern, which
// is what makes prefix-based bulk deletion possible.
type MediaConfig struct {
	LocationPattern string `envconfig:"CATALOG_MEDIA_LOCATION_PATTERN" default:"videoId-{videoId}"`
	FilenamePattern string `envconfig:"CATALOG_MEDIA_FILENAME_PATTERN" default:"type-{type}"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"CATALOG_AUTO_MIGRATE" default:"false"`
}
