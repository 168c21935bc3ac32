package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type dotenvOptions struct {
	path string
}

// DotEnvOption is a functional option for the dotenv module.
type DotEnvOption func(*dotenvOptions)

// WithDotEnvPath sets a custom path to the .env file.
func WithDotEnvPath(path string) DotEnvOption {
	return func(o *dotenvOptions) {
		o.path = path
	}
}

// NewDotEnvModule loads a .env file into the process environment. Loading
// happens when the module is constructed, before any provider reads the
// environment. A missing file is skipped; a malformed one fails startup.
func NewDotEnvModule(opts ...DotEnvOption) fx.Option {
	o := dotenvOptions{path: ".env"}
	for _, opt := range opts {
		opt(&o)
	}

	loadErr := godotenv.Load(o.path)

	return fx.Module("dotenv",
		fx.Invoke(func(logger *zap.Logger) error {
			switch {
			case loadErr == nil:
				logger.Info("Loaded .env file", zap.String("path", o.path))
			case errors.Is(loadErr, fs.ErrNotExist):
				logger.Debug("No .env file found", zap.String("path", o.path))
			default:
				return fmt.Errorf("failed to load env file %s: %w", o.path, loadErr)
			}
			return nil
		}),
	)
}
