// Package matcher matches model identifiers against the patterns used in the
// capability tables. Patterns are shell-style globs by default; a "re:" prefix
// selects a regular expression. Matching is case-insensitive and, unlike
// filepath.Match, a '*' also spans '/' so routed ids such as
// "accounts/x/models/y" can be matched with a single wildcard.
package matcher

import (
	"fmt"
	"regexp"
	"strings"
)

// RegexPrefix marks a pattern as a regular expression.
const RegexPrefix = "re:"

// PatternType represents the type of pattern matching to use.
type PatternType int

const (
	// Glob uses shell-style glob patterns (*, ?, []).
	Glob PatternType = iota
	// Regex uses regular expressions.
	Regex
	// Auto selects Regex for "re:"-prefixed patterns and Glob otherwise.
	Auto
)

// String returns a string representation of the PatternType.
func (pt PatternType) String() string {
	switch pt {
	case Glob:
		return "glob"
	case Regex:
		return "regex"
	case Auto:
		return "auto"
	default:
		return "unknown"
	}
}

// Matcher reports whether a model identifier matches a pattern.
type Matcher interface {
	// Match checks if the input matches the pattern
	Match(input string) bool
	// MatchFirst returns the first matching input or empty string.
	MatchFirst(inputs ...string) string
	// Pattern returns the original pattern string.
	Pattern() string
	// Type returns the resolved pattern type.
	Type() PatternType
}

// matcher is the concrete implementation of the Matcher interface.
// It is immutable after construction and safe for concurrent use.
type matcher struct {
	pattern     string
	patternType PatternType
	compiled    *regexp.Regexp
}

// New compiles pattern as the given type.
func New(patternType PatternType, pattern string) (Matcher, error) {
	m := &matcher{
		pattern:     pattern,
		patternType: patternType,
	}

	expr := pattern
	if patternType == Auto {
		m.patternType = detectPatternType(pattern)
	}

	switch m.patternType {
	case Glob:
		if err := validateGlob(pattern); err != nil {
			return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
		}
		expr = GlobToRegex(strings.ToLower(pattern))
	case Regex:
		expr = strings.TrimPrefix(pattern, RegexPrefix)
		if !strings.HasPrefix(expr, "(?i)") {
			expr = "(?i)" + expr
		}
	default:
		return nil, fmt.Errorf("unsupported pattern type: %v", patternType)
	}

	compiled, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("failed to compile pattern %q: %w", pattern, err)
	}
	m.compiled = compiled
	return m, nil
}

// MustNew creates a new Matcher and panics if there's an error.
func MustNew(patternType PatternType, pattern string) Matcher {
	m, err := New(patternType, pattern)
	if err != nil {
		panic(err)
	}
	return m
}

// Match checks if the input matches the pattern.
func (m *matcher) Match(input string) bool {
	return m.compiled.MatchString(strings.ToLower(input))
}

// MatchFirst returns the first matching input or empty string.
func (m *matcher) MatchFirst(inputs ...string) string {
	for _, input := range inputs {
		if m.Match(input) {
			return input
		}
	}
	return ""
}

// Pattern returns the original pattern string.
func (m *matcher) Pattern() string {
	return m.pattern
}

// Type returns the pattern type being used.
func (m *matcher) Type() PatternType {
	return m.patternType
}

func detectPatternType(pattern string) PatternType {
	if strings.HasPrefix(pattern, RegexPrefix) {
		return Regex
	}
	return Glob
}

func validateGlob(pattern string) error {
	depth := 0
	for i := 0; i < len(pattern); i++ {
		switch pattern[i] {
		case '\\':
			i++
		case '[':
			depth++
		case ']':
			if depth == 0 {
				return fmt.Errorf("unexpected ']' at offset %d", i)
			}
			depth--
		}
	}
	if depth != 0 {
		return fmt.Errorf("unterminated character class")
	}
	return nil
}

// Any returns true if any matcher matches input.
func Any(matchers []Matcher, input string) bool {
	for _, m := range matchers {
		if m.Match(input) {
			return true
		}
	}
	return false
}

// IsGlobPattern checks if a string contains glob metacharacters.
func IsGlobPattern(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[]")
}

// GlobToRegex converts a glob pattern to an anchored regex pattern.
func GlobToRegex(glob string) string {
	var regex strings.Builder
	regex.WriteString("^")

	for i := 0; i < len(glob); i++ {
		switch glob[i] {
		case '*':
			regex.WriteString(".*")
		case '?':
			regex.WriteString(".")
		case '[':
			j := i + 1
			if j < len(glob) && (glob[j] == '!' || glob[j] == '^') {
				regex.WriteString("[^")
				j++
			} else {
				regex.WriteString("[")
			}

			for ; j < len(glob) && glob[j] != ']'; j++ {
				if glob[j] == '\\' {
					regex.WriteByte(glob[j])
					j++
					if j < len(glob) {
						regex.WriteByte(glob[j])
					}
				} else {
					regex.WriteByte(glob[j])
				}
			}

			if j < len(glob) {
				regex.WriteString("]")
				i = j
			}
		case '\\':
			if i+1 < len(glob) {
				i++
				regex.WriteString(regexp.QuoteMeta(string(glob[i])))
			}
		default:
			regex.WriteString(regexp.QuoteMeta(string(glob[i])))
		}
	}

	regex.WriteString("$")
	return regex.String()
}
