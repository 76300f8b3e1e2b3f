package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	envPrefix = "WEBTALK"
)

type HTTPConfig struct {
	Addr               string        `mapstructure:"addr"`
	RequestTimeout     time.Duration `mapstructure:"request_timeout"`
	RateLimitRPS       int           `mapstructure:"rate_limit_rps"`
	CORSAllowedOrigins []string      `mapstructure:"cors_allowed_origins"`
}

type StoreConfig struct {
	Driver string `mapstructure:"driver"`
}

type DatabaseConfig struct {
	URL             string        `mapstructure:"url"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

type SQLiteConfig struct {
	Path     string `mapstructure:"path"`
	PoolSize int    `mapstructure:"pool_size"`
}

type LogConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

type Config struct {
	HTTP     HTTPConfig     `mapstructure:"http"`
	Store    StoreConfig    `mapstructure:"store"`
	Database DatabaseConfig `mapstructure:"database"`
	SQLite   SQLiteConfig   `mapstructure:"sqlite"`
	Log      LogConfig      `mapstructure:"log"`
}

// New returns a viper instance preloaded with defaults and environment bindings.
// Callers may bind command line flags to it before calling Load.
func New() *viper.Viper {
	v := viper.New()

	v.SetDefault("http.addr", ":8000")
	v.SetDefault("http.request_timeout", 10*time.Second)
	v.SetDefault("http.rate_limit_rps", 50)
	v.SetDefault("http.cors_allowed_origins", []string{"*"})
	v.SetDefault("store.driver", DriverPostgres)
	v.SetDefault("database.url", "")
	v.SetDefault("database.max_open_conns", 100)
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.conn_max_lifetime", time.Hour)
	v.SetDefault("sqlite.path", "webtalk.db")
	v.SetDefault("sqlite.pool_size", 4)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", false)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// Load reads the optional config file at path into v and decodes the result.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadConfig loads .env (if any) into the process environment, then
// resolves v against defaults, the config file and the environment.
func LoadConfig(v *viper.Viper, path string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
	return Load(v, path)
}

func (c *Config) Validate() error {
	var errs []error

	switch c.Store.Driver {
	case DriverPostgres:
		if c.Database.URL == "" {
			errs = append(errs, errors.New("database.url is required for the postgres driver"))
		}
	case DriverSQLite:
		if c.SQLite.Path == "" {
			errs = append(errs, errors.New("sqlite.path is required for the sqlite driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown store.driver %q", c.Store.Driver))
	}

	if c.HTTP.RequestTimeout <= 0 {
		errs = append(errs, errors.New("http.request_timeout must be positive"))
	}
	if c.HTTP.RateLimitRPS <= 0 {
		errs = append(errs, errors.New("http.rate_limit_rps must be positive"))
	}

	return errors.Join(errs...)
}
