// Package app provides the application context and dependency management
// for the genctl CLI. It centralizes configuration, logging and the
// conversion engine.
package app

import (
	"os"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/genctl"
	"github.com/agentstation/genctl/internal/appcontext"
	"github.com/agentstation/genctl/pkg/capabilities"
	"github.com/agentstation/genctl/pkg/errors"
)

// App represents the genctl application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger

	// Engine instance (lazy-initialized, singleton)
	mu     sync.RWMutex
	engine *genctl.Engine
}

// Ensure App implements appcontext.Interface at compile time.
var _ appcontext.Interface = (*App)(nil)

// New creates a new App instance with the given version information.
// The app is initialized with configuration loaded from the environment
// that can be customized using functional options.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the configured output format.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// DefaultProvider returns the provider family used when none is given.
func (a *App) DefaultProvider() string {
	return a.config.Provider
}

// Engine returns the engine, creating it on first use from the
// configured capability tables.
func (a *App) Engine() (*genctl.Engine, error) {
	a.mu.RLock()
	if a.engine != nil {
		e := a.engine
		a.mu.RUnlock()
		return e, nil
	}
	a.mu.RUnlock()

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.engine != nil {
		return a.engine, nil
	}

	opts := []genctl.Option{genctl.WithLogger(a.logger)}
	if dir := a.config.CapabilitiesDir; dir != "" {
		registry, err := capabilities.LoadRegistry(os.DirFS(dir))
		if err != nil {
			return nil, errors.NewConfigError("capabilities", "loading "+dir, err)
		}
		if len(registry.Families()) == 0 {
			return nil, errors.NewNotFoundError("capability tables", dir)
		}
		opts = append(opts, genctl.WithRegistry(registry))
	}

	e, err := genctl.New(opts...)
	if err != nil {
		return nil, err
	}
	a.engine = e
	return e, nil
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithEngine sets a custom engine (useful for testing).
func WithEngine(e *genctl.Engine) Option {
	return func(a *App) error {
		a.engine = e
		return nil
	}
}
