package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	StorageBackendPostgres = "postgres"
	StorageBackendSQLite   = "sqlite"
	StorageBackendMemory   = "memory"
)

type Config struct {
	Environment string `toml:"-"`

	Host string
	Port int

	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_format_json"`
	SentryEnabled bool   `toml:"sentry_enabled"`

	// storage: postgres | sqlite | memory
	StorageBackend string `toml:"storage_backend"`
	PostgresHost   string `toml:"postgres_host"`
	PostgresPort   string `toml:"postgres_port"`
	PostgresDBName string `toml:"postgres_db_name"`
	SQLitePath     string `toml:"sqlite_path"`

	// redis backs the analytics cache and the rate limiter; freecache is used when disabled
	RedisEnabled             bool   `toml:"redis_enabled"`
	RedisHost                string `toml:"redis_host"`
	RedisPort                string `toml:"redis_port"`
	FreecacheSizeMB          int    `toml:"freecache_size_mb"`
	AnalyticsCacheTTLMinutes int    `toml:"analytics_cache_ttl_minutes"`

	// kafka event publishing, disabled when no brokers are set
	KafkaBrokers           []string `toml:"kafka_brokers"`
	KafkaWorkoutsTopic     string   `toml:"kafka_workouts_topic"`
	KafkaAchievementsTopic string   `toml:"kafka_achievements_topic"`

	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`

	// Timezone defines calendar day boundaries for streaks and daily charts.
	Timezone string `toml:"timezone"`

	WorkoutsRateLimitAllowedPerMin int `toml:"workouts_rate_limit_allowed_per_min"`
	DefaultChartDays               int `toml:"default_chart_days"`
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	switch strings.ToLower(env) {
	case "dev", "development":
		if t.Development == nil {
			return nil, errors.New("development section missing")
		}
		t.Development.Environment = "development"
		return t.Development, nil
	case "prod", "production":
		if t.Production == nil {
			return nil, errors.New("production section missing")
		}
		t.Production.Environment = "production"
		return t.Production, nil
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
}

// Load reads the TOML file at path and returns the section for env,
// with defaults applied and values validated.
func Load(env, path string) (*Config, error) {
	var t Toml
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, fmt.Errorf("decode config file %s: %w", path, err)
	}

	cfg, err := t.Get(env)
	if err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Host == "" {
		c.Host = "localhost"
	}
	if c.Port == 0 {
		c.Port = 9010
	}
	if c.StorageBackend == "" {
		c.StorageBackend = StorageBackendSQLite
	}
	if c.SQLitePath == "" {
		c.SQLitePath = "./fittracker.db"
	}
	if c.FreecacheSizeMB == 0 {
		c.FreecacheSizeMB = 16
	}
	if c.AnalyticsCacheTTLMinutes == 0 {
		c.AnalyticsCacheTTLMinutes = 60
	}
	if c.KafkaWorkoutsTopic == "" {
		c.KafkaWorkoutsTopic = "fittracker.workouts"
	}
	if c.KafkaAchievementsTopic == "" {
		c.KafkaAchievementsTopic = "fittracker.achievements"
	}
	if c.Timezone == "" {
		c.Timezone = "Local"
	}
	if c.WorkoutsRateLimitAllowedPerMin == 0 {
		c.WorkoutsRateLimitAllowedPerMin = 30
	}
	if c.DefaultChartDays == 0 {
		c.DefaultChartDays = 7
	}
}

func (c *Config) Validate() error {
	switch c.StorageBackend {
	case StorageBackendPostgres:
		if c.PostgresHost == "" || c.PostgresPort == "" || c.PostgresDBName == "" {
			return errors.New("postgres storage requires postgres_host, postgres_port and postgres_db_name")
		}
	case StorageBackendSQLite, StorageBackendMemory:
	default:
		return fmt.Errorf("unknown storage backend: %s", c.StorageBackend)
	}

	if c.RedisEnabled && (c.RedisHost == "" || c.RedisPort == "") {
		return errors.New("redis enabled but redis_host or redis_port not set")
	}

	if _, err := c.Location(); err != nil {
		return err
	}

	return nil
}

// Location resolves the configured timezone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

func (c *Config) AnalyticsCacheTTL() time.Duration {
	return time.Duration(c.AnalyticsCacheTTLMinutes) * time.Minute
}
