// Package fireworks speaks the Fireworks chat completions dialect.
package fireworks

import (
	"github.com/agentstation/genctl/internal/dialects/base"
	"github.com/agentstation/genctl/pkg/capabilities"
	"github.com/agentstation/genctl/pkg/controls"
	"github.com/agentstation/genctl/pkg/draft"
)

// Wire keys.
const (
	KeyReasoningEffort  = "reasoning_effort"
	KeyReasoningHistory = "reasoning_history"
)

var sampling = base.Sampling{
	Temperature: "temperature",
	TopP:        "top_p",
	MaxTokens:   "max_tokens",
}

// Build projects c onto a Fireworks draft.
func Build(c *controls.GenerationControls, caps capabilities.Set) draft.Draft {
	d := draft.Draft{}
	if c == nil {
		return d
	}
	sampling.Build(d, c)

	r := c.Reasoning
	if r == nil || !caps.SupportsReasoning {
		return d
	}
	if !r.Enabled || r.Effort == controls.EffortNone {
		if caps.SupportsEffort(controls.EffortNone) {
			d[KeyReasoningEffort] = string(controls.EffortNone)
		}
		return d
	}
	if e, ok := base.Effort(caps, r.Effort); ok {
		d[KeyReasoningEffort] = base.OpenAIEffort(e, true)
	}
	if r.History != "" && caps.SupportsReasoningHistory {
		d[KeyReasoningHistory] = string(r.History)
	}
	return d
}

// Apply infers controls from a Fireworks draft.
func Apply(d draft.Draft, caps capabilities.Set, _ *controls.GenerationControls) (*controls.GenerationControls, draft.Draft) {
	out := &controls.GenerationControls{}
	sampling.Apply(d, out)

	if caps.SupportsReasoning {
		out.Reasoning = parseReasoning(d, caps)
	}
	return out, draft.Remainder(d, Build(out, caps), false)
}

func parseReasoning(d draft.Draft, caps capabilities.Set) *controls.ReasoningControls {
	var r *controls.ReasoningControls
	if e, ok := base.ParseEffort(d[KeyReasoningEffort]); ok {
		if e == controls.EffortNone {
			return base.Disabled()
		}
		r = &controls.ReasoningControls{Enabled: true, Effort: e}
	}
	if h, ok := base.ParseHistory(d[KeyReasoningHistory]); ok && caps.SupportsReasoningHistory {
		if r == nil {
			r = &controls.ReasoningControls{Enabled: true}
		}
		r.History = h
	}
	return r
}
