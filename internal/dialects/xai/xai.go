// Package xai speaks the xAI dialect: the OpenAI Responses body with the
// xAI effort vocabulary and the x-grok-conv-id cache routing key.
package xai

import (
	"github.com/agentstation/genctl/internal/dialects/openai"
	"github.com/agentstation/genctl/pkg/capabilities"
	"github.com/agentstation/genctl/pkg/controls"
	"github.com/agentstation/genctl/pkg/draft"
)

// Build projects c onto an xAI draft.
func Build(c *controls.GenerationControls, caps capabilities.Set) draft.Draft {
	return openai.BuildFor(capabilities.FamilyXAI, c, caps)
}

// Apply infers controls from an xAI draft.
func Apply(d draft.Draft, caps capabilities.Set, prior *controls.GenerationControls) (*controls.GenerationControls, draft.Draft) {
	return openai.ApplyFor(capabilities.FamilyXAI, d, caps, prior)
}
