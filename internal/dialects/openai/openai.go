// Package openai speaks the OpenAI Responses request dialect. xAI reuses it
// through BuildFor and ApplyFor.
package openai

import (
	"github.com/agentstation/genctl/internal/dialects/base"
	"github.com/agentstation/genctl/pkg/cache"
	"github.com/agentstation/genctl/pkg/capabilities"
	"github.com/agentstation/genctl/pkg/controls"
	"github.com/agentstation/genctl/pkg/draft"
)

// Tool type markers.
const (
	ToolWebSearch        = "web_search"
	ToolWebSearchPreview = "web_search_preview"
)

var sampling = base.Sampling{
	Temperature: "temperature",
	TopP:        "top_p",
	MaxTokens:   "max_output_tokens",
}

// Build projects c onto an OpenAI Responses draft.
func Build(c *controls.GenerationControls, caps capabilities.Set) draft.Draft {
	return BuildFor(capabilities.FamilyOpenAI, c, caps)
}

// Apply infers controls from an OpenAI Responses draft.
func Apply(d draft.Draft, caps capabilities.Set, prior *controls.GenerationControls) (*controls.GenerationControls, draft.Draft) {
	return ApplyFor(capabilities.FamilyOpenAI, d, caps, prior)
}

// BuildFor builds a Responses draft for family. Only the effort vocabulary
// and the cache fragment depend on it.
func BuildFor(family capabilities.Family, c *controls.GenerationControls, caps capabilities.Set) draft.Draft {
	d := draft.Draft{}
	if c == nil {
		return d
	}
	sampling.Build(d, c)

	if r := c.Reasoning; r != nil && caps.SupportsReasoning {
		if obj := reasoning(family, r, caps); len(obj) > 0 {
			d["reasoning"] = obj
		}
	}

	if w := c.WebSearch; w != nil && w.Enabled && caps.SupportsWebSearch {
		d["tools"] = []any{webSearchTool(w)}
	}

	for k, v := range cache.Fragment(family, caps, c.ContextCache) {
		d[k] = v
	}
	return d
}

func reasoning(family capabilities.Family, r *controls.ReasoningControls, caps capabilities.Set) map[string]any {
	obj := map[string]any{}
	if !r.Enabled || r.Effort == controls.EffortNone {
		if caps.SupportsEffort(controls.EffortNone) {
			obj["effort"] = string(controls.EffortNone)
		}
		return obj
	}
	if e, ok := base.Effort(caps, r.Effort); ok {
		obj["effort"] = base.OpenAIEffort(e, family != capabilities.FamilyOpenAI)
	}
	if r.Summary != "" {
		obj["summary"] = string(r.Summary)
	}
	return obj
}

func webSearchTool(w *controls.WebSearchControls) map[string]any {
	tool := map[string]any{"type": ToolWebSearch}
	if w.ContextSize != "" {
		tool["search_context_size"] = string(w.ContextSize)
	}
	if len(w.AllowedDomains) > 0 {
		tool["filters"] = map[string]any{"allowed_domains": base.StringList(w.AllowedDomains)}
	}
	if loc := base.Location(w.UserLocation, base.LocationOptions{Approximate: true, Timezone: true}); loc != nil {
		tool["user_location"] = loc
	}
	return tool
}

// ApplyFor reads a Responses draft for family.
func ApplyFor(family capabilities.Family, d draft.Draft, caps capabilities.Set, prior *controls.GenerationControls) (*controls.GenerationControls, draft.Draft) {
	out := &controls.GenerationControls{}
	sampling.Apply(d, out)

	if obj, ok := draft.Object(d["reasoning"]); ok && caps.SupportsReasoning {
		out.Reasoning = parseReasoning(obj)
	}

	if tool, ok := base.FindTool(d, base.ToolOfType(ToolWebSearch, ToolWebSearchPreview)); ok {
		out.WebSearch = parseWebSearch(tool)
	}

	var priorCache *controls.ContextCacheControls
	if prior != nil {
		priorCache = prior.ContextCache
	}
	out.ContextCache = cache.Parse(family, caps, d, priorCache)

	return out, draft.Remainder(d, BuildFor(family, out, caps), false)
}

func parseReasoning(obj map[string]any) *controls.ReasoningControls {
	r := &controls.ReasoningControls{Enabled: true}
	if e, ok := base.ParseEffort(obj["effort"]); ok {
		if e == controls.EffortNone {
			return base.Disabled()
		}
		r.Effort = e
	}
	if s, ok := base.ParseSummary(obj["summary"]); ok {
		r.Summary = s
	}
	return r
}

func parseWebSearch(tool map[string]any) *controls.WebSearchControls {
	w := &controls.WebSearchControls{Enabled: true}
	if size, ok := base.ParseContextSize(tool["search_context_size"]); ok {
		w.ContextSize = size
	}
	if v, ok := draft.Lookup(tool, "filters", "allowed_domains"); ok {
		if domains, ok := draft.Strings(v); ok && len(domains) > 0 {
			w.AllowedDomains = domains
		}
	}
	w.UserLocation = base.ParseLocation(tool["user_location"])
	return w
}
