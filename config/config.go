// Package config loads storefront settings from a config file, a .env file
// and STOREFRONT_ environment variables, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"goflare.io/storefront/persist"
)

const envPrefix = "STOREFRONT"

const (
	NotifyKeyspace = "keyspace"
	NotifyPubSub   = "pubsub"
)

var (
	ErrMissingProfile = errors.New("config: profile is required unless detached")
	ErrInvalidNotify  = errors.New("config: redis.notify must be keyspace or pubsub")
)

type Config struct {
	// Profile scopes every stored value, like a browser profile.
	Profile   string `mapstructure:"profile"`
	Namespace string `mapstructure:"namespace"`
	// Detached sessions read defaults and never persist anything.
	Detached bool           `mapstructure:"detached"`
	Redis    RedisConfig    `mapstructure:"redis"`
	NATS     NATSConfig     `mapstructure:"nats"`
	Postgres PostgresConfig `mapstructure:"postgres"`
	Log      LogConfig      `mapstructure:"log"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Notify   string `mapstructure:"notify"`
}

type NATSConfig struct {
	URL string `mapstructure:"url"`
}

type PostgresConfig struct {
	DSN string `mapstructure:"dsn"`
}

type LogConfig struct {
	Development bool `mapstructure:"development"`
}

// Scope is the storage scope the profile's values live under.
func (c *Config) Scope() persist.Scope {
	return persist.Scope{Namespace: c.Namespace, Profile: c.Profile}
}

func (c *Config) Validate() error {
	if c.Detached {
		return nil
	}
	if c.Profile == "" {
		return ErrMissingProfile
	}
	if err := c.Scope().Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.Redis.Notify != NotifyKeyspace && c.Redis.Notify != NotifyPubSub {
		return fmt.Errorf("%w: %q", ErrInvalidNotify, c.Redis.Notify)
	}
	return nil
}

// Option adjusts the viper instance before the config is decoded, e.g. to
// bind command line flags.
type Option func(v *viper.Viper) error

// Load reads path (optional), .env and the environment, and returns a
// validated Config.
func Load(path string, opts ...Option) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	for _, opt := range opts {
		if err := opt(v); err != nil {
			return nil, err
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

func setDefaults(v *viper.Viper) {
	v.SetDefault("profile", "")
	v.SetDefault("namespace", "storefront")
	v.SetDefault("detached", false)
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.notify", NotifyKeyspace)
	v.SetDefault("nats.url", "")
	v.SetDefault("postgres.dsn", "")
	v.SetDefault("log.development", false)
}

// NewLogger builds the process logger described by c.
func NewLogger(c *Config) (*zap.Logger, error) {
	if c.Log.Development {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
