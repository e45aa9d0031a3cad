package config

import (
	"errors"
	"fmt"

	"github.com/macoscontainers/clearbusy/internal/xattr"
	"github.com/spf13/viper"
)

// The prefix for environment variables that override configuration values
const EnvPrefix = "CLEARBUSY"

// Configuration keys
const (
	KeyXattrPath    = "xattr_path"
	KeyDebug        = "debug"
	KeyLogNoColor   = "log_no_color"
	KeyLogTimestamp = "log_timestamp"
)

// Holds the settings for a clearbusy run
type Config struct {
	XattrPath    string `mapstructure:"xattr_path"`
	Debug        bool   `mapstructure:"debug"`
	LogNoColor   bool   `mapstructure:"log_no_color"`
	LogTimestamp bool   `mapstructure:"log_timestamp"`
}

// Creates a Viper instance with our defaults, config file locations and environment bindings
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetConfigName("clearbusy")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.clearbusy")
	v.AddConfigPath("/etc/clearbusy")

	v.SetDefault(KeyXattrPath, xattr.DefaultProgram)
	v.SetDefault(KeyDebug, false)
	v.SetDefault(KeyLogNoColor, false)
	v.SetDefault(KeyLogTimestamp, false)

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	return v
}

// Reads the config file (if any) and resolves the final configuration
func Load(v *viper.Viper) (*Config, error) {

	// A missing config file just means we use the defaults
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if cfg.XattrPath == "" {
		return nil, fmt.Errorf("%s must not be empty", KeyXattrPath)
	}
	return &cfg, nil
}
