package logger

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// loggerOptions holds internal configuration for the logging module.
type loggerOptions struct {
	static *Config
}

// Option is a functional option for the logging module.
type Option func(*loggerOptions)

// WithLoggerConfig provides a static Config instead of loading it from
// viper. Useful for tests.
func WithLoggerConfig(cfg Config) Option {
	return func(opts *loggerOptions) {
		opts.static = &cfg
	}
}

// NewZapLoggingModule creates an fx module providing a configured
// *zap.Logger and routing fx's own events through it.
func NewZapLoggingModule(opts ...Option) fx.Option {
	cfg := &loggerOptions{}
	for _, opt := range opts {
		opt(cfg)
	}

	options := []fx.Option{
		fx.Provide(provideLogger),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
	}
	if cfg.static != nil {
		static := *cfg.static
		options = append(options, fx.Provide(func() (Config, error) { return static, nil }))
	} else {
		options = append(options, fx.Provide(newConfig))
	}

	return fx.Options(options...)
}

func provideLogger(lc fx.Lifecycle, conf Config) (*zap.Logger, error) {
	log, err := newLogger(conf)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			err := log.Sync()
			if err != nil {
				// Sync on stderr fails with EINVAL, not a real error
				if pathErr, ok := err.(*os.PathError); ok && pathErr.Err.Error() == "invalid argument" {
					return nil
				}
				return err
			}
			return nil
		},
	})

	return log, nil
}
