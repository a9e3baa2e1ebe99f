package fireworks_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agentstation/genctl/internal/dialects/fireworks"
	"github.com/agentstation/genctl/internal/utils/ptr"
	"github.com/agentstation/genctl/pkg/capabilities"
	"github.com/agentstation/genctl/pkg/controls"
	"github.com/agentstation/genctl/pkg/draft"
)

const (
	glm    = "accounts/fireworks/models/glm-4p6"
	gptOSS = "accounts/fireworks/models/gpt-oss-20b"
)

func caps(model string) capabilities.Set {
	return capabilities.Lookup(capabilities.FamilyFireworks, model)
}

func TestBuild(t *testing.T) {
	tests := []struct {
		name     string
		model    string
		controls *controls.GenerationControls
		want     string
	}{
		{
			name:     "effort and history",
			model:    glm,
			controls: &controls.GenerationControls{Reasoning: &controls.ReasoningControls{Enabled: true, Effort: controls.EffortHigh, History: controls.HistoryPreserved}},
			want:     `{"reasoning_effort":"high","reasoning_history":"preserved"}`,
		},
		{
			name:     "none",
			model:    glm,
			controls: &controls.GenerationControls{Reasoning: &controls.ReasoningControls{Effort: controls.EffortNone, History: controls.HistoryPreserved}},
			want:     `{"reasoning_effort":"none"}`,
		},
		{
			name:     "history unsupported",
			model:    gptOSS,
			controls: &controls.GenerationControls{Reasoning: &controls.ReasoningControls{Enabled: true, Effort: controls.EffortXHigh, History: controls.HistoryInterleaved}},
			want:     `{"reasoning_effort":"high"}`,
		},
		{
			name:     "off without none",
			model:    gptOSS,
			controls: &controls.GenerationControls{Reasoning: &controls.ReasoningControls{Effort: controls.EffortNone}},
			want:     `{}`,
		},
		{
			name:     "no seed parameter",
			model:    gptOSS,
			controls: &controls.GenerationControls{Seed: ptr.Int(4), MaxTokens: ptr.Int(64)},
			want:     `{"max_tokens":64}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := fireworks.Build(tt.controls, caps(tt.model))
			assert.True(t, draft.Equal(draft.MustParse(tt.want), got), "got %s", got)
		})
	}
}

func TestApply(t *testing.T) {
	tests := []struct {
		name      string
		model     string
		draft     string
		want      *controls.ReasoningControls
		remainder []string
	}{
		{"effort and history", glm, `{"reasoning_effort":"low","reasoning_history":"interleaved"}`, &controls.ReasoningControls{Enabled: true, Effort: controls.EffortLow, History: controls.HistoryInterleaved}, nil},
		{"history alone", glm, `{"reasoning_history":"disabled"}`, &controls.ReasoningControls{Enabled: true, History: controls.HistoryDisabled}, nil},
		{"none", glm, `{"reasoning_effort":"none"}`, &controls.ReasoningControls{Effort: controls.EffortNone}, nil},
		{"history unsupported", gptOSS, `{"reasoning_history":"preserved"}`, nil, []string{"reasoning_history"}},
		{"unknown history", glm, `{"reasoning_history":"sometimes"}`, nil, []string{"reasoning_history"}},
		{"seed stays", gptOSS, `{"seed":1,"reasoning_effort":"medium"}`, &controls.ReasoningControls{Enabled: true, Effort: controls.EffortMedium}, []string{"seed"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, remainder := fireworks.Apply(draft.MustParse(tt.draft), caps(tt.model), nil)
			assert.Equal(t, tt.want, got.Reasoning)
			assert.ElementsMatch(t, tt.remainder, remainder.Keys())
		})
	}
}
