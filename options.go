package genctl

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/genctl/pkg/capabilities"
	"github.com/agentstation/genctl/pkg/errors"
)

// Option is a function that configures an Engine
type Option func(*config) error

// config holds the options of an Engine.
type config struct {
	logger   *zerolog.Logger
	registry *capabilities.Registry
}

// WithLogger configures the logger the engine writes its debug trace to.
// Without it the engine logs through logging.Default().
func WithLogger(logger *zerolog.Logger) Option {
	return func(c *config) error {
		if logger == nil {
			return errors.NewValidationError("logger", nil, "logger cannot be nil")
		}
		c.logger = logger
		return nil
	}
}

// WithRegistry configures the capability registry used to resolve models.
// Without it the engine uses the embedded tables.
func WithRegistry(registry *capabilities.Registry) Option {
	return func(c *config) error {
		if registry == nil {
			return errors.NewValidationError("registry", nil, "registry cannot be nil")
		}
		c.registry = registry
		return nil
	}
}

// options applies opts to the engine configuration in order.
func (e *Engine) options(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(&e.cfg); err != nil {
			return err
		}
	}
	return nil
}
