package appcontext

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/genctl"
	"github.com/agentstation/genctl/pkg/constants"
	"github.com/agentstation/genctl/pkg/logging"
)

// Mock provides a mock implementation of Interface for testing.
// Each method can be customized by setting the corresponding function field.
// If a function field is nil, the method returns a default value.
type Mock struct {
	EngineFunc          func() (*genctl.Engine, error)
	LoggerFunc          func() *zerolog.Logger
	OutputFormatFunc    func() string
	DefaultProviderFunc func() string
	VersionFunc         func() string
}

// Engine returns the engine from the mock function or the default engine.
func (m *Mock) Engine() (*genctl.Engine, error) {
	if m.EngineFunc != nil {
		return m.EngineFunc()
	}
	return genctl.Default(), nil
}

// Logger returns a logger using the mock function or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	return logging.NewNopLogger()
}

// OutputFormat returns the format using the mock function or "json".
func (m *Mock) OutputFormat() string {
	if m.OutputFormatFunc != nil {
		return m.OutputFormatFunc()
	}
	return "json"
}

// DefaultProvider returns the provider using the mock function or the built-in default.
func (m *Mock) DefaultProvider() string {
	if m.DefaultProviderFunc != nil {
		return m.DefaultProviderFunc()
	}
	return constants.DefaultProvider
}

// Version returns version using the mock function or "dev".
func (m *Mock) Version() string {
	if m.VersionFunc != nil {
		return m.VersionFunc()
	}
	return "dev"
}

// Commit returns "test".
func (m *Mock) Commit() string { return "test" }

// Date returns "test".
func (m *Mock) Date() string { return "test" }

// BuiltBy returns "test".
func (m *Mock) BuiltBy() string { return "test" }

// Ensure Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
