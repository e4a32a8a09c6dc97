package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvPrefix         = "PAYGATE"
	DefaultConfigDir  = ".paygate"
	DefaultConfigFile = "config.toml"
	DefaultEnvFile    = ".env"
)

const (
	StoreDriverTOML   = "toml"
	StoreDriverMemory = "memory"
	StoreDriverRedis  = "redis"
)

type Config struct {
	Gateway GatewayConfig `mapstructure:"gateway"`
	Store   StoreConfig   `mapstructure:"store"`
	Server  ServerConfig  `mapstructure:"server"`
	Log     LogConfig     `mapstructure:"log"`

	source *viper.Viper
}

type GatewayConfig struct {
	BaseURL                 string        `mapstructure:"base_url"`
	ValidateUserPath        string        `mapstructure:"validate_user_path"`
	CompleteTransactionPath string        `mapstructure:"complete_transaction_path"`
	Timeout                 time.Duration `mapstructure:"timeout"`
}

type StoreConfig struct {
	Driver      string        `mapstructure:"driver"`
	Path        string        `mapstructure:"path"`
	RedisURL    string        `mapstructure:"redis_url"`
	RedisPrefix string        `mapstructure:"redis_prefix"`
	TTL         time.Duration `mapstructure:"ttl"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Options locate the optional config and .env files. An empty ConfigFile
// means ~/.paygate/config.toml, which may be absent; an explicit one must exist.
type Options struct {
	ConfigFile string
	EnvFile    string
}

// Viper exposes the resolved settings to adapters that read their own keys.
func (c *Config) Viper() *viper.Viper {
	return c.source
}

func Load(opts Options) (*Config, error) {
	if err := loadEnvFile(opts.EnvFile); err != nil {
		return nil, err
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	configFile, required, err := resolveConfigFile(opts.ConfigFile)
	if err != nil {
		return nil, err
	}
	if err := readConfigFile(v, configFile, required); err != nil {
		return nil, err
	}

	cfg := &Config{source: v}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("gateway.base_url", "http://localhost:3000")
	v.SetDefault("gateway.validate_user_path", "/api/validate-user")
	v.SetDefault("gateway.complete_transaction_path", "/api/complete-transaction")
	v.SetDefault("gateway.timeout", time.Duration(0))
	v.SetDefault("store.driver", StoreDriverTOML)
	v.SetDefault("store.path", "")
	v.SetDefault("store.redis_url", "")
	v.SetDefault("store.redis_prefix", "paygate:session")
	v.SetDefault("store.ttl", time.Duration(0))
	v.SetDefault("server.addr", "127.0.0.1:8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

func (c *Config) normalize() {
	c.Gateway.BaseURL = strings.TrimSpace(c.Gateway.BaseURL)
	c.Store.Driver = strings.ToLower(strings.TrimSpace(c.Store.Driver))
	c.Store.RedisURL = strings.TrimSpace(c.Store.RedisURL)
	c.Store.RedisPrefix = strings.TrimSpace(c.Store.RedisPrefix)
}

func (c *Config) Validate() error {
	var errs []error

	switch c.Store.Driver {
	case StoreDriverTOML, StoreDriverMemory:
	case StoreDriverRedis:
		if c.Store.RedisURL == "" {
			errs = append(errs, errors.New("store.redis_url is required for the redis driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("unsupported store.driver %q", c.Store.Driver))
	}

	if c.Gateway.Timeout < 0 {
		errs = append(errs, errors.New("gateway.timeout must not be negative"))
	}
	if c.Store.TTL < 0 {
		errs = append(errs, errors.New("store.ttl must not be negative"))
	}

	return errors.Join(errs...)
}

func loadEnvFile(path string) error {
	if path == "" {
		path = DefaultEnvFile
	}

	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load env file %s: %w", path, err)
	}

	return nil
}

func resolveConfigFile(path string) (string, bool, error) {
	if path != "" {
		return path, true, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", false, fmt.Errorf("resolve home directory: %w", err)
	}

	return filepath.Join(homeDir, DefaultConfigDir, DefaultConfigFile), false, nil
}

func readConfigFile(v *viper.Viper, path string, required bool) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return nil
		}
		return fmt.Errorf("stat config file: %w", err)
	}

	v.SetConfigFile(path)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}

	return nil
}
