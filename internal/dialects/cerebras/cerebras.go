// Package cerebras speaks the Cerebras chat completions dialect.
//
// Cerebras models control reasoning one of two ways: GLM-style models take
// an on/off toggle, gpt-oss models take an effort level.
package cerebras

import (
	"github.com/agentstation/genctl/internal/dialects/base"
	"github.com/agentstation/genctl/pkg/capabilities"
	"github.com/agentstation/genctl/pkg/controls"
	"github.com/agentstation/genctl/pkg/draft"
)

// Wire keys.
const (
	KeyDisableReasoning = "disable_reasoning"
	KeyReasoningFormat  = "reasoning_format"
	KeyReasoningEffort  = "reasoning_effort"
)

// Reasoning formats.
const (
	FormatParsed = "parsed"
	FormatNone   = "none"
)

var sampling = base.Sampling{
	Temperature: "temperature",
	TopP:        "top_p",
	MaxTokens:   "max_completion_tokens",
	Seed:        "seed",
}

func toggles(caps capabilities.Set) bool {
	return caps.CanDisableReasoning && len(caps.ReasoningEfforts) == 0
}

// Build projects c onto a Cerebras draft.
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
	off := !r.Enabled || r.Effort == controls.EffortNone

	switch {
	case toggles(caps):
		d[KeyDisableReasoning] = off
		if off {
			d[KeyReasoningFormat] = FormatNone
		} else {
			d[KeyReasoningFormat] = FormatParsed
		}
	case off:
		if caps.SupportsEffort(controls.EffortNone) {
			d[KeyReasoningEffort] = string(controls.EffortNone)
		}
	default:
		if e, ok := base.Effort(caps, r.Effort); ok {
			d[KeyReasoningEffort] = base.OpenAIEffort(e, true)
		}
	}
	return d
}

// Apply infers controls from a Cerebras draft.
func Apply(d draft.Draft, caps capabilities.Set, _ *controls.GenerationControls) (*controls.GenerationControls, draft.Draft) {
	out := &controls.GenerationControls{}
	sampling.Apply(d, out)

	if caps.SupportsReasoning {
		out.Reasoning = parseReasoning(d)
	}
	return out, draft.Remainder(d, Build(out, caps), false)
}

func parseReasoning(d draft.Draft) *controls.ReasoningControls {
	if disabled, ok := draft.Bool(d[KeyDisableReasoning]); ok {
		if disabled {
			return base.Disabled()
		}
		return &controls.ReasoningControls{Enabled: true}
	}
	if e, ok := base.ParseEffort(d[KeyReasoningEffort]); ok {
		if e == controls.EffortNone {
			return base.Disabled()
		}
		return &controls.ReasoningControls{Enabled: true, Effort: e}
	}
	return nil
}
