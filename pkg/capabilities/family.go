package capabilities

import (
	"strings"

	"github.com/agentstation/genctl/pkg/errors"
)

// Family identifies a provider family. The set is closed: every family either
// has a specialized dialect or is handled as passthrough.
type Family string

// Specialized families.
const (
	FamilyOpenAI     Family = "openai"
	FamilyAnthropic  Family = "anthropic"
	FamilyGemini     Family = "gemini"
	FamilyVertex     Family = "vertex"
	FamilyXAI        Family = "xai"
	FamilyCerebras   Family = "cerebras"
	FamilyFireworks  Family = "fireworks"
	FamilyPerplexity Family = "perplexity"
)

// Passthrough families.
const (
	FamilyDeepSeek         Family = "deepseek"
	FamilyGroq             Family = "groq"
	FamilyMistral          Family = "mistral"
	FamilyOpenRouter       Family = "openrouter"
	FamilyTogether         Family = "together"
	FamilyOllama           Family = "ollama"
	FamilyOpenAICompatible Family = "openai-compatible"
	FamilyUnknown          Family = "unknown"
)

var families = []Family{
	FamilyOpenAI,
	FamilyAnthropic,
	FamilyGemini,
	FamilyVertex,
	FamilyXAI,
	FamilyCerebras,
	FamilyFireworks,
	FamilyPerplexity,
	FamilyDeepSeek,
	FamilyGroq,
	FamilyMistral,
	FamilyOpenRouter,
	FamilyTogether,
	FamilyOllama,
	FamilyOpenAICompatible,
	FamilyUnknown,
}

var familyAliases = map[string]Family{
	"google":            FamilyGemini,
	"google-ai-studio":  FamilyGemini,
	"googleai":          FamilyGemini,
	"google-vertex":     FamilyVertex,
	"vertexai":          FamilyVertex,
	"vertex-ai":         FamilyVertex,
	"x-ai":              FamilyXAI,
	"grok":              FamilyXAI,
	"claude":            FamilyAnthropic,
	"together-ai":       FamilyTogether,
	"togetherai":        FamilyTogether,
	"openai_compatible": FamilyOpenAICompatible,
	"custom":            FamilyOpenAICompatible,
}

// Families returns every known family, specialized ones first.
func Families() []Family {
	return append([]Family(nil), families...)
}

// String returns the string representation of a family.
func (f Family) String() string {
	return string(f)
}

// Specialized reports whether f has its own draft builder and applier.
func (f Family) Specialized() bool {
	switch f {
	case FamilyOpenAI, FamilyAnthropic, FamilyGemini, FamilyVertex,
		FamilyXAI, FamilyCerebras, FamilyFireworks, FamilyPerplexity:
		return true
	default:
		return false
	}
}

// DefaultWireShape is the request dialect spoken by f when no capability
// table says otherwise.
func (f Family) DefaultWireShape() WireShape {
	switch f {
	case FamilyOpenAI, FamilyXAI:
		return WireOpenAIResponses
	case FamilyAnthropic:
		return WireAnthropic
	case FamilyGemini, FamilyVertex:
		return WireGemini
	default:
		return WireOpenAICompatible
	}
}

// ParseFamily resolves a family name or alias, case-insensitively.
func ParseFamily(name string) (Family, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if f, ok := familyAliases[key]; ok {
		return f, nil
	}
	for _, f := range families {
		if string(f) == key {
			return f, nil
		}
	}
	supported := make([]string, len(families))
	for i, f := range families {
		supported[i] = string(f)
	}
	return "", errors.NewUnknownProviderError(name, supported)
}

// FamilyOf resolves name like ParseFamily but maps unknown names to
// FamilyUnknown, which is handled as passthrough.
func FamilyOf(name string) Family {
	f, err := ParseFamily(name)
	if err != nil {
		return FamilyUnknown
	}
	return f
}
