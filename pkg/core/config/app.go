package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Environment variable names
const (
	envAppEnv            = "APP_ENV"
	envAppServiceName    = "APP_SERVICE_NAME"
	envAppServiceVersion = "APP_SERVICE_VERSION"
	envConfigFile        = "CONFIG_FILE"
)

// Environment is the deployment environment a service runs in. It is also
// used as the topic name prefix for non-production environments.
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvStaging     Environment = "staging"
	EnvProduction  Environment = "production"
)

// IsValid reports whether the environment is one of the known values.
func (e Environment) IsValid() bool {
	switch e {
	case EnvDevelopment, EnvStaging, EnvProduction:
		return true
	}
	return false
}

func (e Environment) String() string {
	return string(e)
}

// AppConfig holds service identity and configuration file location. It is
// loaded once from environment variables at startup.
type AppConfig struct {
	// ConfigFile is the full path to the yaml config file, may be empty
	ConfigFile string
	// ServiceName identifies the service, e.g. "search-service". It is
	// used to resolve topic subscriptions and consumer group ids.
	ServiceName string
	// ServiceVersion is the deployed service version
	ServiceVersion string
	// Environment is the deployment environment
	Environment Environment
}

// appConfigOptions holds internal configuration for the appconfig module.
type appConfigOptions struct {
	static *AppConfig
}

// AppConfigOption is a functional option for the appconfig module.
type AppConfigOption func(*appConfigOptions)

// WithAppConfig provides a static AppConfig instead of reading environment
// variables. Useful for tests.
func WithAppConfig(cfg AppConfig) AppConfigOption {
	return func(opts *appConfigOptions) {
		opts.static = &cfg
	}
}

// NewAppConfigModule creates an fx module providing AppConfig.
//
// Required environment variables:
//   - APP_ENV: deployment environment (development, staging, production)
//   - APP_SERVICE_NAME: service name
//   - APP_SERVICE_VERSION: service version
//
// Optional:
//   - CONFIG_FILE: full path to the yaml config file
func NewAppConfigModule(opts ...AppConfigOption) fx.Option {
	cfg := &appConfigOptions{}
	for _, opt := range opts {
		opt(cfg)
	}

	provider := newAppConfig
	if cfg.static != nil {
		static := *cfg.static
		provider = func() (AppConfig, error) { return static, nil }
	}

	return fx.Module("appconfig",
		fx.Provide(provider),
		fx.Invoke(func(logger *zap.Logger, conf AppConfig) {
			logger.Info("Loaded application configuration",
				zap.String("service", conf.ServiceName),
				zap.String("version", conf.ServiceVersion),
				zap.String("environment", conf.Environment.String()),
				zap.String("configFile", conf.ConfigFile),
			)
		}),
	)
}

// newAppConfig reads AppConfig from environment variables. A .env file is
// loaded first when present.
func newAppConfig() (AppConfig, error) {
	_ = godotenv.Load()

	env := Environment(os.Getenv(envAppEnv))
	if !env.IsValid() {
		return AppConfig{}, fmt.Errorf("%s must be one of development, staging, production, got %q", envAppEnv, env)
	}

	serviceName := os.Getenv(envAppServiceName)
	if serviceName == "" {
		return AppConfig{}, fmt.Errorf("%s is required", envAppServiceName)
	}

	serviceVersion := os.Getenv(envAppServiceVersion)
	if serviceVersion == "" {
		return AppConfig{}, fmt.Errorf("%s is required", envAppServiceVersion)
	}

	return AppConfig{
		ConfigFile:     os.Getenv(envConfigFile),
		ServiceName:    serviceName,
		ServiceVersion: serviceVersion,
		Environment:    env,
	}, nil
}
