// Package appcontext provides the shared application context interface
// used by all commands. This eliminates interface duplication across
// command packages and provides a single source of truth for app dependencies.
package appcontext

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/genctl"
)

// Interface defines the application context interface that commands need.
// The App struct from cmd/genctl/app implements this interface; tests use Mock.
type Interface interface {
	// Engine returns the conversion engine, creating it lazily if needed.
	Engine() (*genctl.Engine, error)

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (json, yaml, table).
	OutputFormat() string

	// DefaultProvider returns the provider family used when --provider is not set.
	DefaultProvider() string

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
