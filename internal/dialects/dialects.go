// Package dialects binds every specialized provider family to its draft
// builder and applier. The set of families is closed, so dispatch is a
// lookup table rather than an interface.
package dialects

import (
	"github.com/agentstation/genctl/internal/dialects/anthropic"
	"github.com/agentstation/genctl/internal/dialects/cerebras"
	"github.com/agentstation/genctl/internal/dialects/fireworks"
	"github.com/agentstation/genctl/internal/dialects/google"
	"github.com/agentstation/genctl/internal/dialects/openai"
	"github.com/agentstation/genctl/internal/dialects/perplexity"
	"github.com/agentstation/genctl/internal/dialects/xai"
	"github.com/agentstation/genctl/pkg/capabilities"
	"github.com/agentstation/genctl/pkg/controls"
	"github.com/agentstation/genctl/pkg/draft"
)

// BuildFunc projects controls onto a draft. It never includes
// ProviderSpecific; the caller merges that.
type BuildFunc func(c *controls.GenerationControls, caps capabilities.Set) draft.Draft

// ApplyFunc infers controls from a pruned draft and returns them together
// with the remainder the inferred controls do not reproduce.
type ApplyFunc func(d draft.Draft, caps capabilities.Set, prior *controls.GenerationControls) (*controls.GenerationControls, draft.Draft)

// Dialect is the builder/applier pair of one family.
type Dialect struct {
	Family capabilities.Family
	Build  BuildFunc
	Apply  ApplyFunc
}

var table = map[capabilities.Family]Dialect{
	capabilities.FamilyOpenAI:     {capabilities.FamilyOpenAI, openai.Build, openai.Apply},
	capabilities.FamilyXAI:        {capabilities.FamilyXAI, xai.Build, xai.Apply},
	capabilities.FamilyAnthropic:  {capabilities.FamilyAnthropic, anthropic.Build, anthropic.Apply},
	capabilities.FamilyGemini:     {capabilities.FamilyGemini, google.BuildGemini, google.ApplyGemini},
	capabilities.FamilyVertex:     {capabilities.FamilyVertex, google.BuildVertex, google.ApplyVertex},
	capabilities.FamilyCerebras:   {capabilities.FamilyCerebras, cerebras.Build, cerebras.Apply},
	capabilities.FamilyFireworks:  {capabilities.FamilyFireworks, fireworks.Build, fireworks.Apply},
	capabilities.FamilyPerplexity: {capabilities.FamilyPerplexity, perplexity.Build, perplexity.Apply},
}

// Lookup returns the dialect of family. Passthrough families have none.
func Lookup(family capabilities.Family) (Dialect, bool) {
	d, ok := table[family]
	return d, ok
}
