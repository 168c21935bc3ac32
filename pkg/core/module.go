// Package core wires configuration and logging into an fx application.
// Services built on this library include NewCoreModule alongside the kafka
// module to get config, a structured logger, and lifecycle management.
package core

import (
	"time"

	"github.com/lokalmarket/marketplace-commons/pkg/core/config"
	"github.com/lokalmarket/marketplace-commons/pkg/core/logger"
	"go.uber.org/fx"
)

// coreOptions holds internal configuration for the core module.
type coreOptions struct {
	appConfig     *config.AppConfig
	loggerConfig  *logger.Config
	disableDotEnv bool
	disableConfig bool
}

// Option is a functional option for the core module.
type Option func(*coreOptions)

// WithAppConfig provides a static AppConfig, bypassing environment
// variables. Useful for tests.
func WithAppConfig(cfg config.AppConfig) Option {
	return func(opts *coreOptions) {
		opts.appConfig = &cfg
	}
}

// WithLoggerConfig provides a static logger Config, bypassing viper.
// Useful for tests.
func WithLoggerConfig(cfg logger.Config) Option {
	return func(opts *coreOptions) {
		opts.loggerConfig = &cfg
	}
}

// WithoutEnvFile disables .env file loading.
func WithoutEnvFile() Option {
	return func(opts *coreOptions) {
		opts.disableDotEnv = true
	}
}

// WithoutConfigFile disables yaml config file loading.
func WithoutConfigFile() Option {
	return func(opts *coreOptions) {
		opts.disableConfig = true
	}
}

// NewCoreModule provides configuration and logging for a service.
func NewCoreModule(opts ...Option) fx.Option {
	cfg := &coreOptions{}
	for _, opt := range opts {
		opt(cfg)
	}

	return fx.Options(
		fx.StartTimeout(5*time.Minute),
		fx.StopTimeout(5*time.Minute),

		dotEnvModule(cfg),
		viperModule(cfg),
		appConfigModule(cfg),
		loggerModule(cfg),
	)
}

func dotEnvModule(cfg *coreOptions) fx.Option {
	if cfg.disableDotEnv {
		return fx.Options()
	}
	return config.NewDotEnvModule()
}

func viperModule(cfg *coreOptions) fx.Option {
	if cfg.disableConfig {
		return config.NewViperModule(config.WithoutConfigFile())
	}
	return config.NewViperModule()
}

func appConfigModule(cfg *coreOptions) fx.Option {
	if cfg.appConfig != nil {
		return config.NewAppConfigModule(config.WithAppConfig(*cfg.appConfig))
	}
	return config.NewAppConfigModule()
}

func loggerModule(cfg *coreOptions) fx.Option {
	if cfg.loggerConfig != nil {
		return logger.NewZapLoggingModule(logger.WithLoggerConfig(*cfg.loggerConfig))
	}
	return logger.NewZapLoggingModule()
}
