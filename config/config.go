package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const DefaultPath = "config.yml"

type Config struct {
	Debug    bool           `mapstructure:"debug"`
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Log      LogConfig      `mapstructure:"log"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`

	v *viper.Viper
}

type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type DatabaseConfig struct {
	// Driver is "sqlite" or "postgres".
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// Path returns the config file location, CAFE_CONFIG if set.
func Path() string {
	if p := os.Getenv("CAFE_CONFIG"); p != "" {
		return p
	}
	return DefaultPath
}

// Load reads defaults, the optional YAML file at path, CAFE_* env vars and
// the --debug flag, in increasing order of precedence.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("CAFE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("database.dsn", "CAFE_DATABASE_DSN", "DATABASE_DSN"); err != nil {
		return nil, fmt.Errorf("v.BindEnv -> %w", err)
	}
	if err := v.BindEnv("server.port", "CAFE_SERVER_PORT", "PORT"); err != nil {
		return nil, fmt.Errorf("v.BindEnv -> %w", err)
	}

	if flags != nil {
		if f := flags.Lookup("debug"); f != nil {
			if err := v.BindPFlag("debug", f); err != nil {
				return nil, fmt.Errorf("v.BindPFlag -> %w", err)
			}
		}
	}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("v.ReadInConfig -> %w", err)
			}
		}
	}

	conf := &Config{v: v}
	if err := v.Unmarshal(conf); err != nil {
		return nil, fmt.Errorf("v.Unmarshal -> %w", err)
	}

	return conf, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("debug", false)
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("server.shutdown_timeout", 5*time.Second)
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "cafes.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")
}

// FileUsed returns the config file that was read, or "".
func (c *Config) FileUsed() string {
	if c.v == nil {
		return ""
	}
	return c.v.ConfigFileUsed()
}

// Watch calls fn with the reloaded config each time the config file changes.
// It reports false when no config file was read.
func (c *Config) Watch(fn func(Config)) bool {
	if c.FileUsed() == "" {
		return false
	}

	c.v.OnConfigChange(func(fsnotify.Event) {
		var next Config
		if err := c.v.Unmarshal(&next); err != nil {
			return
		}
		fn(next)
	})
	c.v.WatchConfig()

	return true
}
