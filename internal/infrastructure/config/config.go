package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/viper"

	sharedConfig "github.com/soripaulos/medical-quiz-app-sub001/internal/shared/config"
)

type Config struct {
	Server    sharedConfig.ServerConfig    `mapstructure:"server"`
	Database  sharedConfig.DatabaseConfig  `mapstructure:"database"`
	Logger    sharedConfig.LoggerConfig    `mapstructure:"logger"`
	Auth      sharedConfig.AuthConfig      `mapstructure:"auth"`
	Redis     sharedConfig.RedisConfig     `mapstructure:"redis"`
	Session   sharedConfig.SessionConfig   `mapstructure:"session"`
	Quiz      sharedConfig.QuizConfig      `mapstructure:"quiz"`
	Cache     sharedConfig.CacheConfig     `mapstructure:"cache"`
	RateLimit sharedConfig.RateLimitConfig `mapstructure:"ratelimit"`
}

var (
	appConfig   *Config
	appConfigMu sync.RWMutex
)

// Load loads configuration from file and environment variables.
// A missing config file is not an error; defaults and MEDQUIZ_* env vars apply.
func Load(env string) (*Config, error) {
	v := viper.GetViper()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../configs")
	v.AddConfigPath("../../configs")

	v.SetEnvPrefix("MEDQUIZ")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if env != "" && env != "default" {
		v.Set("server.mode", env)
	}

	cfg, err := unmarshal(v)
	if err != nil {
		return nil, err
	}

	appConfigMu.Lock()
	appConfig = cfg
	appConfigMu.Unlock()

	return cfg, nil
}

func unmarshal(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Database.Driver {
	case sharedConfig.DriverMySQL, sharedConfig.DriverPostgres, sharedConfig.DriverSQLite:
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if c.Session.MaxConcurrent < 1 {
		return fmt.Errorf("session.max_concurrent must be at least 1, got %d", c.Session.MaxConcurrent)
	}
	return nil
}

// Get returns the loaded configuration
func Get() *Config {
	appConfigMu.RLock()
	defer appConfigMu.RUnlock()
	return appConfig
}

func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("server.timezone", "UTC")

	// Database defaults
	v.SetDefault("database.driver", sharedConfig.DriverMySQL)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.username", "root")
	v.SetDefault("database.password", "password")
	v.SetDefault("database.database", "medquiz_dev")
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.max_open_conns", 100)
	v.SetDefault("database.conn_max_lifetime", 60)

	// Logger defaults
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.output_path", "stdout")

	// Auth defaults
	v.SetDefault("auth.jwt.secret", "change-me-in-production")
	v.SetDefault("auth.jwt.issuer", "")

	// Redis defaults
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	// Session limiter defaults
	v.SetDefault("session.max_concurrent", 2)
	v.SetDefault("session.retention_days", 30)

	// Quiz defaults
	v.SetDefault("quiz.activity_gap", "5m")
	v.SetDefault("quiz.abandon_after", "72h")
	v.SetDefault("quiz.sweep_interval", "5m")
	v.SetDefault("quiz.sweep_batch", 200)

	// Cache defaults
	v.SetDefault("cache.ttl", "24h")
	v.SetDefault("cache.key_prefix", "medquiz:session_cache:")

	// Rate limit defaults
	v.SetDefault("ratelimit.enabled", true)
	v.SetDefault("ratelimit.limit", 120)
	v.SetDefault("ratelimit.window", "1m")
}
