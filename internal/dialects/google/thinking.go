package google

import (
	"strings"

	"google.golang.org/genai"

	"github.com/agentstation/genctl/internal/dialects/base"
	"github.com/agentstation/genctl/internal/utils/ptr"
	"github.com/agentstation/genctl/pkg/capabilities"
	"github.com/agentstation/genctl/pkg/constants"
	"github.com/agentstation/genctl/pkg/controls"
	"github.com/agentstation/genctl/pkg/draft"
)

// thinkingConfig renders r for a reasoning model.
//
// Gemini 2.5 models take a numeric budget: -1 lets the model decide and 0
// turns thinking off where the model allows it. Gemini 3 models take a
// level and cannot turn thinking off; the lowest level stands in.
func thinkingConfig(r *controls.ReasoningControls, caps capabilities.Set) map[string]any {
	tc := map[string]any{}
	levels := len(caps.ReasoningEfforts) > 0

	if !r.Enabled || r.Effort == controls.EffortNone {
		switch {
		case caps.SupportsThinkingBudget && caps.CanDisableReasoning:
			tc["thinkingBudget"] = constants.DisabledThinkingBudget
		case !caps.SupportsThinkingBudget && levels:
			tc["thinkingLevel"] = string(offLevel(caps))
		}
		return tc
	}

	switch {
	case r.BudgetTokens != nil && (caps.SupportsThinkingBudget || levels):
		tc["thinkingBudget"] = *r.BudgetTokens
	case caps.SupportsThinkingBudget:
		tc["thinkingBudget"] = constants.DynamicThinkingBudget
	default:
		if e, ok := base.Effort(caps, r.Effort); ok {
			tc["thinkingLevel"] = string(thinkingLevel(e))
		}
	}
	if r.Summary != "" {
		tc["includeThoughts"] = true
	}
	return tc
}

func offLevel(caps capabilities.Set) genai.ThinkingLevel {
	if caps.SupportsEffort(controls.EffortMinimal) {
		return genai.ThinkingLevelMinimal
	}
	return genai.ThinkingLevelLow
}

func thinkingLevel(e controls.Effort) genai.ThinkingLevel {
	switch e {
	case controls.EffortMinimal:
		return genai.ThinkingLevelMinimal
	case controls.EffortLow:
		return genai.ThinkingLevelLow
	case controls.EffortMedium:
		return genai.ThinkingLevelMedium
	default:
		return genai.ThinkingLevelHigh
	}
}

func parseThinkingLevel(v any) (controls.Effort, bool) {
	s, ok := v.(string)
	if !ok {
		return "", false
	}
	switch genai.ThinkingLevel(strings.ToUpper(s)) {
	case genai.ThinkingLevelMinimal:
		return controls.EffortMinimal, true
	case genai.ThinkingLevelLow:
		return controls.EffortLow, true
	case genai.ThinkingLevelMedium:
		return controls.EffortMedium, true
	case genai.ThinkingLevelHigh:
		return controls.EffortHigh, true
	default:
		return "", false
	}
}

func parseThinking(tc map[string]any) *controls.ReasoningControls {
	var r *controls.ReasoningControls
	if n, ok := draft.Int(tc["thinkingBudget"]); ok {
		switch {
		case n == constants.DisabledThinkingBudget:
			return base.Disabled()
		case n == constants.DynamicThinkingBudget:
			r = &controls.ReasoningControls{Enabled: true}
		case n > 0:
			r = &controls.ReasoningControls{Enabled: true, BudgetTokens: ptr.Int(n)}
		}
	} else if e, ok := parseThinkingLevel(tc["thinkingLevel"]); ok {
		r = &controls.ReasoningControls{Enabled: true, Effort: e}
	}

	if include, ok := draft.Bool(tc["includeThoughts"]); ok && include {
		if r == nil {
			r = &controls.ReasoningControls{Enabled: true}
		}
		r.Summary = controls.SummaryAuto
	}
	return r
}
