// Package constants provides shared constants used throughout the genctl codebase.
// This includes wire literals shared by several provider dialects, CLI limits,
// file permissions and default paths.
package constants

import "time"

// Default values
const (
	// DefaultProvider is the provider family used by the CLI when none is specified
	DefaultProvider = "openai"

	// DefaultThinkingBudget is the budget emitted for budget-based thinking models
	// when reasoning is enabled but no explicit budget is set.
	DefaultThinkingBudget = 1024

	// DynamicThinkingBudget asks Gemini budget models to size thinking themselves.
	DynamicThinkingBudget = -1

	// DisabledThinkingBudget turns thinking off on Gemini models that allow it.
	DisabledThinkingBudget = 0
)

// Context cache literals
const (
	// CacheTTLShort is the five minute prompt cache retention.
	CacheTTLShort = "5m"

	// CacheTTLLong is the one hour prompt cache retention.
	CacheTTLLong = "1h"

	// CacheTTLCustomPrefix prefixes custom retentions, as in "custom:600s".
	CacheTTLCustomPrefix = "custom:"

	// CachedContentPrefix is the resource collection of Gemini cached contents.
	CachedContentPrefix = "cachedContents/"
)

// Limit constants define various limits and capacities
const (
	// MaxDraftBytes bounds the size of a draft or controls document read by the CLI.
	MaxDraftBytes = 8 * 1024 * 1024

	// MaxModelNameLength is the maximum allowed length for model names
	MaxModelNameLength = 256

	// DiffContextLines is the number of context lines in CLI round-trip diffs
	DiffContextLines = 3
)

// CommandTimeout is the default timeout for CLI commands
const CommandTimeout = 1 * time.Minute

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Path constants
const (
	// DefaultConfigFile is the default CLI configuration file name in $HOME
	DefaultConfigFile = ".genctl.yaml"

	// EnvPrefix prefixes every environment variable read by the CLI
	EnvPrefix = "GENCTL"

	// StdinPath is the argument that makes the CLI read from standard input
	StdinPath = "-"
)
