package toypad

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"

	"github.com/padbridge/toypad/internal/logging"
)

// FileConfig is the on-disk/env-driven configuration surface for engines
// built by cmd/toypadctl or any other host process that wants defaults, a
// config file and environment variables layered the way the CLI does.
// Command-line flags are not read into it.
type FileConfig struct {
	LogLevel       string        `mapstructure:"log_level"`
	LogPretty      bool          `mapstructure:"log_pretty"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

// LoadConfig builds a FileConfig from, in increasing priority: defaults,
// a config file (if present), and TOYPAD_-prefixed environment variables.
// configFile may be empty to skip file loading entirely.
func LoadConfig(configFile string) (*FileConfig, error) {
	v := viper.New()
	v.SetDefault("log_level", "info")
	v.SetDefault("log_pretty", true)
	v.SetDefault("request_timeout", 800*time.Millisecond)

	v.SetEnvPrefix("toypad")
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("toypad: load config: %w", err)
		}
	}

	var cfg FileConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("toypad: parse config: %w", err)
	}
	return &cfg, nil
}

// Logger builds an internal/logging.Logger from the configured level and
// format, suitable for passing as Options.Logger.
func (c *FileConfig) Logger() *logging.Logger {
	level, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		level = zapcore.InfoLevel
	}
	return logging.NewLogger(&logging.Config{Level: level, Pretty: c.LogPretty})
}
