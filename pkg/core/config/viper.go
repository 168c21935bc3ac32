package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type viperOptions struct {
	configPath   *string
	noConfigFile bool
}

// ViperOption is a functional option for the viper module.
type ViperOption func(*viperOptions)

// WithConfigPath sets a direct path to the configuration file, overriding
// the path carried by AppConfig.
func WithConfigPath(path string) ViperOption {
	return func(o *viperOptions) {
		o.configPath = &path
	}
}

// WithoutConfigFile disables config file loading entirely. Viper is still
// provided for environment variable lookups.
func WithoutConfigFile() ViperOption {
	return func(o *viperOptions) {
		o.noConfigFile = true
	}
}

// NewViperModule creates an fx module providing *viper.Viper. The config
// file location comes from AppConfig so the service has a single source for
// it; options override the path for tests and tools.
func NewViperModule(opts ...ViperOption) fx.Option {
	o := &viperOptions{}
	for _, opt := range opts {
		opt(o)
	}

	return fx.Module("viper",
		fx.Provide(func(conf AppConfig, logger *zap.Logger) (*viper.Viper, error) {
			return newViper(o.configFile(conf), logger)
		}),
	)
}

// configFile resolves the effective config file path. Empty means no file
// is loaded and configuration comes from environment variables only.
func (o *viperOptions) configFile(conf AppConfig) string {
	if o.noConfigFile {
		return ""
	}
	if o.configPath != nil {
		return *o.configPath
	}
	return conf.ConfigFile
}

func newViper(configFile string, logger *zap.Logger) (*viper.Viper, error) {
	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	if configFile == "" {
		logger.Info("No config file specified, using environment variables only")
		return v, nil
	}

	v.SetConfigFile(configFile)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file [%s]: %w", configFile, err)
	}

	logger.Info("Configuration loaded",
		zap.String("configFile", v.ConfigFileUsed()),
		zap.Int("settingsCount", len(v.AllSettings())),
	)
	return v, nil
}
