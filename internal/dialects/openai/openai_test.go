package openai_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/genctl/internal/dialects/openai"
	"github.com/agentstation/genctl/internal/dialects/xai"
	"github.com/agentstation/genctl/internal/utils/ptr"
	"github.com/agentstation/genctl/pkg/capabilities"
	"github.com/agentstation/genctl/pkg/controls"
	"github.com/agentstation/genctl/pkg/draft"
)

func caps(model string) capabilities.Set {
	return capabilities.Lookup(capabilities.FamilyOpenAI, model)
}

func TestBuild(t *testing.T) {
	tests := []struct {
		name     string
		model    string
		controls *controls.GenerationControls
		want     string
	}{
		{
			name:     "extreme effort on allowlisted model",
			model:    "gpt-5.2",
			controls: &controls.GenerationControls{Reasoning: &controls.ReasoningControls{Enabled: true, Effort: controls.EffortXHigh}},
			want:     `{"reasoning":{"effort":"xhigh"}}`,
		},
		{
			name:     "extreme effort clamps to nearest",
			model:    "gpt-5",
			controls: &controls.GenerationControls{Reasoning: &controls.ReasoningControls{Enabled: true, Effort: controls.EffortXHigh}},
			want:     `{"reasoning":{"effort":"high"}}`,
		},
		{
			name:     "minimal maps to low",
			model:    "gpt-5.2",
			controls: &controls.GenerationControls{Reasoning: &controls.ReasoningControls{Enabled: true, Effort: controls.EffortMinimal}},
			want:     `{"reasoning":{"effort":"low"}}`,
		},
		{
			name:     "disabled without none support",
			model:    "gpt-5",
			controls: &controls.GenerationControls{Reasoning: &controls.ReasoningControls{Effort: controls.EffortNone}},
			want:     `{}`,
		},
		{
			name:     "reasoning omitted on non-reasoning model",
			model:    "gpt-4o",
			controls: &controls.GenerationControls{Temperature: ptr.Float64(0.3), Reasoning: &controls.ReasoningControls{Enabled: true, Effort: controls.EffortHigh}},
			want:     `{"temperature":0.3}`,
		},
		{
			name:  "web search tool",
			model: "gpt-4.1",
			controls: &controls.GenerationControls{WebSearch: &controls.WebSearchControls{
				Enabled:        true,
				ContextSize:    controls.SearchContextLow,
				AllowedDomains: []string{"go.dev"},
				BlockedDomains: []string{"ignored.example"},
				UserLocation:   &controls.UserLocation{Country: "GB"},
			}},
			want: `{"tools":[{"type":"web_search","search_context_size":"low","filters":{"allowed_domains":["go.dev"]},"user_location":{"type":"approximate","country":"GB"}}]}`,
		},
		{
			name:     "web search needs support",
			model:    "gpt-4.1-nano",
			controls: &controls.GenerationControls{WebSearch: &controls.WebSearchControls{Enabled: true}},
			want:     `{}`,
		},
		{
			name:     "web search disabled",
			model:    "gpt-5",
			controls: &controls.GenerationControls{WebSearch: &controls.WebSearchControls{Enabled: false, ContextSize: controls.SearchContextHigh}},
			want:     `{}`,
		},
		{
			name:  "sampling and cache",
			model: "gpt-5-mini",
			controls: &controls.GenerationControls{
				TopP:         ptr.Float64(0.5),
				MaxTokens:    ptr.Int(1000),
				Seed:         ptr.Int(9),
				ContextCache: &controls.ContextCacheControls{Mode: controls.CacheImplicit, CacheKey: "k", TTL: "5m"},
			},
			want: `{"top_p":0.5,"max_output_tokens":1000,"prompt_cache_key":"k","prompt_cache_retention":"5m"}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := openai.Build(tt.controls, caps(tt.model))
			assert.True(t, draft.Equal(draft.MustParse(tt.want), got), "got %s", got)
		})
	}

	assert.Empty(t, openai.Build(nil, caps("gpt-5")))
}

func TestApplyMixedTools(t *testing.T) {
	d := draft.MustParse(`{"tools":[{"type":"web_search","search_context_size":"medium"},{"type":"code_interpreter"}]}`)

	for _, model := range []string{"gpt-5.2", "gpt-4o", "o1", "some-future-model"} {
		t.Run(model, func(t *testing.T) {
			got, remainder := openai.Apply(d, caps(model), nil)
			require.NotNil(t, got.WebSearch)
			assert.True(t, got.WebSearch.Enabled)
			assert.Equal(t, controls.SearchContextMedium, got.WebSearch.ContextSize)
			assert.Equal(t, d["tools"], remainder["tools"])
		})
	}
}

func TestApplyPromotesExactTool(t *testing.T) {
	d := draft.MustParse(`{"tools":[{"type":"web_search","search_context_size":"high"}]}`)
	got, remainder := openai.Apply(d, caps("gpt-5"), nil)
	assert.Equal(t, &controls.WebSearchControls{Enabled: true, ContextSize: controls.SearchContextHigh}, got.WebSearch)
	assert.Empty(t, remainder)

	// Extra keys on the tool keep the array.
	d = draft.MustParse(`{"tools":[{"type":"web_search","search_context_size":"high","external_web_access":false}]}`)
	got, remainder = openai.Apply(d, caps("gpt-5"), nil)
	assert.True(t, got.WebSearch.Enabled)
	assert.Contains(t, remainder, "tools")

	// The preview tool is recognised but never rebuilt.
	d = draft.MustParse(`{"tools":[{"type":"web_search_preview"}]}`)
	got, remainder = openai.Apply(d, caps("gpt-5"), nil)
	assert.True(t, got.WebSearch.Enabled)
	assert.Contains(t, remainder, "tools")
}

func TestApplyReasoning(t *testing.T) {
	tests := []struct {
		name      string
		model     string
		draft     string
		want      *controls.ReasoningControls
		remainder []string
	}{
		{"absent", "gpt-5", `{}`, nil, nil},
		{"none disables", "gpt-5.1", `{"reasoning":{"effort":"none"}}`, &controls.ReasoningControls{Effort: controls.EffortNone}, nil},
		{"none kept where unsupported", "gpt-5", `{"reasoning":{"effort":"none"}}`, &controls.ReasoningControls{Effort: controls.EffortNone}, []string{"reasoning"}},
		{"summary", "o3", `{"reasoning":{"effort":"medium","summary":"concise"}}`, &controls.ReasoningControls{Enabled: true, Effort: controls.EffortMedium, Summary: controls.SummaryConcise}, nil},
		{"unknown effort", "gpt-5", `{"reasoning":{"effort":"turbo"}}`, &controls.ReasoningControls{Enabled: true}, []string{"reasoning"}},
		{"non-reasoning model", "gpt-4o", `{"reasoning":{"effort":"low"}}`, nil, []string{"reasoning"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, remainder := openai.Apply(draft.MustParse(tt.draft), caps(tt.model), nil)
			assert.Equal(t, tt.want, got.Reasoning)
			assert.ElementsMatch(t, tt.remainder, remainder.Keys())
		})
	}
}

func TestApplyCoercion(t *testing.T) {
	got, remainder := openai.Apply(draft.MustParse(`{"temperature":"0.25","max_output_tokens":"512","top_p":true}`), caps("gpt-5"), nil)
	assert.Equal(t, 0.25, *got.Temperature)
	assert.Equal(t, 512, *got.MaxTokens)
	assert.Nil(t, got.TopP)
	assert.ElementsMatch(t, []string{"temperature", "max_output_tokens", "top_p"}, remainder.Keys())
}

func TestXAI(t *testing.T) {
	grok := capabilities.Lookup(capabilities.FamilyXAI, "grok-3-mini")
	c := &controls.GenerationControls{
		Reasoning:    &controls.ReasoningControls{Enabled: true, Effort: controls.EffortXHigh},
		ContextCache: &controls.ContextCacheControls{Mode: controls.CacheImplicit, ConversationID: "conv-1"},
	}
	got := xai.Build(c, grok)
	assert.True(t, draft.Equal(draft.MustParse(`{"reasoning":{"effort":"high"},"x-grok-conv-id":"conv-1"}`), got), "got %s", got)

	applied, remainder := xai.Apply(got, grok, nil)
	assert.Equal(t, controls.EffortHigh, applied.Reasoning.Effort)
	assert.Equal(t, "conv-1", applied.ContextCache.ConversationID)
	assert.Empty(t, remainder)

	// The openai dialect has no conversation id.
	applied, remainder = openai.Apply(draft.MustParse(`{"x-grok-conv-id":"conv-1"}`), caps("gpt-5"), nil)
	assert.Nil(t, applied.ContextCache)
	assert.Contains(t, remainder, "x-grok-conv-id")
}
