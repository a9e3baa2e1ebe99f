// Package anthropic speaks the Anthropic Messages request dialect.
package anthropic

import (
	"strings"

	"github.com/agentstation/genctl/internal/dialects/base"
	"github.com/agentstation/genctl/internal/utils/ptr"
	"github.com/agentstation/genctl/pkg/capabilities"
	"github.com/agentstation/genctl/pkg/constants"
	"github.com/agentstation/genctl/pkg/controls"
	"github.com/agentstation/genctl/pkg/draft"
)

// Thinking types.
const (
	ThinkingEnabled  = "enabled"
	ThinkingAdaptive = "adaptive"
	ThinkingDisabled = "disabled"
)

// Web search tool versions. The 2026 version adds dynamic filtering.
const (
	ToolWebSearch        = "web_search_20250305"
	ToolWebSearchDynamic = "web_search_20260209"
	toolName             = "web_search"
)

// effortMax is the wire spelling of xhigh.
const effortMax = "max"

var sampling = base.Sampling{
	Temperature: "temperature",
	TopP:        "top_p",
	MaxTokens:   "max_tokens",
}

// Build projects c onto an Anthropic Messages draft.
func Build(c *controls.GenerationControls, caps capabilities.Set) draft.Draft {
	d := draft.Draft{}
	if c == nil {
		return d
	}
	sampling.Build(d, c)

	if r := c.Reasoning; r != nil && caps.SupportsReasoning {
		if thinking := thinkingConfig(r, caps); thinking != nil {
			d["thinking"] = thinking
		}
		if r.Enabled && len(caps.ReasoningEfforts) > 0 {
			// The wire has no "none"; enabled thinking at none runs at high.
			if r.Effort == controls.EffortNone {
				d["output_config"] = map[string]any{"effort": effortWord(controls.EffortHigh, caps)}
			} else if e, ok := base.Effort(caps, r.Effort); ok {
				d["output_config"] = map[string]any{"effort": effortWord(e, caps)}
			}
		}
	}

	if w := c.WebSearch; w != nil && w.Enabled && caps.SupportsWebSearch {
		d["tools"] = []any{webSearchTool(w, caps)}
	}
	return d
}

func thinkingConfig(r *controls.ReasoningControls, caps capabilities.Set) map[string]any {
	switch {
	case !r.Enabled:
		return map[string]any{"type": ThinkingDisabled}
	case r.BudgetTokens != nil && caps.SupportsThinkingBudget:
		return map[string]any{"type": ThinkingEnabled, "budget_tokens": *r.BudgetTokens}
	case caps.AdaptiveThinking:
		return map[string]any{"type": ThinkingAdaptive}
	case caps.SupportsThinkingBudget:
		return map[string]any{"type": ThinkingEnabled, "budget_tokens": constants.DefaultThinkingBudget}
	default:
		return nil
	}
}

func effortWord(e controls.Effort, caps capabilities.Set) string {
	switch e {
	case controls.EffortMinimal, controls.EffortLow:
		return "low"
	case controls.EffortMedium:
		return "medium"
	case controls.EffortXHigh:
		if caps.SupportsEffort(controls.EffortXHigh) {
			return effortMax
		}
		return "high"
	default:
		return "high"
	}
}

func parseEffortWord(v any) (controls.Effort, bool) {
	s, ok := draft.String(v)
	if !ok {
		return "", false
	}
	switch strings.ToLower(s) {
	case "low":
		return controls.EffortLow, true
	case "medium":
		return controls.EffortMedium, true
	case "high":
		return controls.EffortHigh, true
	case effortMax:
		return controls.EffortXHigh, true
	default:
		return "", false
	}
}

func webSearchTool(w *controls.WebSearchControls, caps capabilities.Set) map[string]any {
	typ := ToolWebSearch
	if w.DynamicFiltering && caps.SupportsDynamicWebSearchFiltering {
		typ = ToolWebSearchDynamic
	}
	tool := map[string]any{"type": typ, "name": toolName}
	if w.MaxUses != nil {
		tool["max_uses"] = *w.MaxUses
	}
	// The API rejects both lists at once; allowed wins.
	switch {
	case len(w.AllowedDomains) > 0:
		tool["allowed_domains"] = base.StringList(w.AllowedDomains)
	case len(w.BlockedDomains) > 0:
		tool["blocked_domains"] = base.StringList(w.BlockedDomains)
	}
	if loc := base.Location(w.UserLocation, base.LocationOptions{Approximate: true, Timezone: true}); loc != nil {
		tool["user_location"] = loc
	}
	return tool
}

// Apply infers controls from an Anthropic Messages draft.
func Apply(d draft.Draft, caps capabilities.Set, _ *controls.GenerationControls) (*controls.GenerationControls, draft.Draft) {
	out := &controls.GenerationControls{}
	sampling.Apply(d, out)

	if caps.SupportsReasoning {
		out.Reasoning = parseReasoning(d)
	}
	if tool, ok := base.FindTool(d, base.ToolOfType(ToolWebSearch, ToolWebSearchDynamic)); ok {
		out.WebSearch = parseWebSearch(tool)
	}

	return out, draft.Remainder(d, Build(out, caps), false)
}

func parseReasoning(d draft.Draft) *controls.ReasoningControls {
	var r *controls.ReasoningControls
	if thinking, ok := draft.Object(d["thinking"]); ok {
		typ, _ := draft.String(thinking["type"])
		switch typ {
		case ThinkingDisabled:
			return base.Disabled()
		case ThinkingAdaptive:
			r = &controls.ReasoningControls{Enabled: true}
		case ThinkingEnabled:
			r = &controls.ReasoningControls{Enabled: true}
			if n, ok := draft.Int(thinking["budget_tokens"]); ok && n > 0 {
				r.BudgetTokens = ptr.Int(n)
			}
		}
	}

	if v, ok := draft.Lookup(d, "output_config", "effort"); ok {
		if e, ok := parseEffortWord(v); ok {
			if r == nil {
				r = &controls.ReasoningControls{Enabled: true}
			}
			r.Effort = e
		}
	}
	return r
}

func parseWebSearch(tool map[string]any) *controls.WebSearchControls {
	w := &controls.WebSearchControls{
		Enabled:          true,
		DynamicFiltering: base.ToolType(tool) == ToolWebSearchDynamic,
	}
	if n, ok := draft.Int(tool["max_uses"]); ok && n > 0 {
		w.MaxUses = ptr.Int(n)
	}
	if domains, ok := draft.Strings(tool["allowed_domains"]); ok && len(domains) > 0 {
		w.AllowedDomains = domains
	}
	if domains, ok := draft.Strings(tool["blocked_domains"]); ok && len(domains) > 0 {
		w.BlockedDomains = domains
	}
	w.UserLocation = base.ParseLocation(tool["user_location"])
	return w
}
