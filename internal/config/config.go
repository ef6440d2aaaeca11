package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"go.uber.org/multierr"
)

const (
	StorageBackendDisk = "disk"
	StorageBackendGCS  = "gcs"
)

type Config struct {
	Environment string `toml:"environment"`
	Host        string `toml:"host"`
	Port        int    `toml:"port"`

	// logging
	LogLevel         string `toml:"log_level"`
	LogsPath         string `toml:"logs_path"`
	LogToStdout      bool   `toml:"log_to_stdout"`
	LogFormatJSON    bool   `toml:"log_format_json"`
	LogFileMaxSizeMB int    `toml:"log_file_max_size_mb"`
	SentryEnabled    bool   `toml:"sentry_enabled"`

	// metrics
	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`

	// postgres
	PostgresHost   string `toml:"postgres_host"`
	PostgresPort   string `toml:"postgres_port"`
	PostgresDBName string `toml:"postgres_db_name"`
	PostgresUser   string `toml:"postgres_user"`

	// redis
	RedisHost string `toml:"redis_host"`
	RedisPort string `toml:"redis_port"`

	// blob storage
	StorageBackend  string `toml:"storage_backend"`
	StorageRootPath string `toml:"storage_root_path"`
	GCSBucket       string `toml:"gcs_bucket"`
	MaxUploadSizeMB int64  `toml:"max_upload_size_mb"`

	// identity tokens
	IdentityIssuer   string `toml:"identity_issuer"`
	IdentityAudience string `toml:"identity_audience"`

	// http
	AllowedOrigins        []string `toml:"allowed_origins"`
	UploadRateLimitPerMin int      `toml:"upload_rate_limit_per_min"`
	SharedRateLimitPerMin int      `toml:"shared_rate_limit_per_min"`
	ComparisonConcurrency int      `toml:"comparison_concurrency"`
	UserCacheSizeMB       int      `toml:"user_cache_size_mb"`
	UserCacheTTLSeconds   int      `toml:"user_cache_ttl_seconds"`

	// events
	KafkaBrokers []string `toml:"kafka_brokers"`
	KafkaTopic   string   `toml:"kafka_topic"`
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	var cfg *Config
	switch strings.ToLower(env) {
	case "dev", "development":
		cfg = t.Development
	case "prod", "production":
		cfg = t.Production
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
	if cfg == nil {
		return nil, fmt.Errorf("no config for env: %s", env)
	}
	return cfg, nil
}

// Load reads the TOML file at path and returns the validated config for env.
func Load(env, path string) (*Config, error) {
	var t Toml
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, fmt.Errorf("decode config file: %w", err)
	}

	cfg, err := t.Get(env)
	if err != nil {
		return nil, err
	}

	cfg.setDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid [%s] config: %w", env, err)
	}

	return cfg, nil
}

func (c *Config) setDefaults() {
	if c.StorageBackend == "" {
		c.StorageBackend = StorageBackendDisk
	}
	if c.MaxUploadSizeMB <= 0 {
		c.MaxUploadSizeMB = 64
	}
	if c.PostgresUser == "" {
		c.PostgresUser = "postgres"
	}
	if c.KafkaTopic == "" {
		c.KafkaTopic = "fitcompare.datasets"
	}
	if c.UserCacheSizeMB <= 0 {
		c.UserCacheSizeMB = 8
	}
	if c.UserCacheTTLSeconds <= 0 {
		c.UserCacheTTLSeconds = 600
	}
}

func (c *Config) Validate() error {
	var err error
	if c.Port <= 0 {
		err = multierr.Append(err, errors.New("port must be set"))
	}
	switch c.StorageBackend {
	case StorageBackendDisk:
		if c.StorageRootPath == "" {
			err = multierr.Append(err, errors.New("storage_root_path is required for disk storage"))
		}
	case StorageBackendGCS:
		if c.GCSBucket == "" {
			err = multierr.Append(err, errors.New("gcs_bucket is required for gcs storage"))
		}
	default:
		err = multierr.Append(err, fmt.Errorf("unknown storage_backend: %s", c.StorageBackend))
	}
	if c.PostgresHost == "" || c.PostgresDBName == "" {
		err = multierr.Append(err, errors.New("postgres_host and postgres_db_name are required"))
	}
	return err
}
