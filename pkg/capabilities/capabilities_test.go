package capabilities_test

import (
	"sync"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/genctl/pkg/capabilities"
	"github.com/agentstation/genctl/pkg/controls"
	"github.com/agentstation/genctl/pkg/errors"
)

var (
	none    = controls.EffortNone
	minimal = controls.EffortMinimal
	low     = controls.EffortLow
	medium  = controls.EffortMedium
	high    = controls.EffortHigh
	xhigh   = controls.EffortXHigh
)

func TestParseFamily(t *testing.T) {
	tests := []struct {
		in   string
		want capabilities.Family
	}{
		{"openai", capabilities.FamilyOpenAI},
		{" Anthropic ", capabilities.FamilyAnthropic},
		{"claude", capabilities.FamilyAnthropic},
		{"google", capabilities.FamilyGemini},
		{"google-vertex", capabilities.FamilyVertex},
		{"grok", capabilities.FamilyXAI},
		{"openai-compatible", capabilities.FamilyOpenAICompatible},
		{"ollama", capabilities.FamilyOllama},
		{"unknown", capabilities.FamilyUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := capabilities.ParseFamily(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := capabilities.ParseFamily("acme")
	require.Error(t, err)
	assert.True(t, errors.IsUnknownProvider(err))
	assert.Equal(t, capabilities.FamilyUnknown, capabilities.FamilyOf("acme"))
}

func TestFamilies(t *testing.T) {
	specialized := 0
	for _, f := range capabilities.Families() {
		if f.Specialized() {
			specialized++
		}
	}
	assert.Equal(t, 8, specialized)
	assert.ElementsMatch(t, []capabilities.Family{
		capabilities.FamilyOpenAI, capabilities.FamilyAnthropic, capabilities.FamilyGemini, capabilities.FamilyVertex,
		capabilities.FamilyXAI, capabilities.FamilyCerebras, capabilities.FamilyFireworks, capabilities.FamilyPerplexity,
	}, capabilities.Default().Families())
}

func TestWireShapeOf(t *testing.T) {
	tests := []struct {
		family capabilities.Family
		model  string
		want   capabilities.WireShape
	}{
		{capabilities.FamilyOpenAI, "gpt-5.2", capabilities.WireOpenAIResponses},
		{capabilities.FamilyXAI, "grok-4", capabilities.WireOpenAIResponses},
		{capabilities.FamilyAnthropic, "claude-opus-4-6", capabilities.WireAnthropic},
		{capabilities.FamilyGemini, "gemini-3-pro-preview", capabilities.WireGemini},
		{capabilities.FamilyVertex, "gemini-2.5-flash", capabilities.WireGemini},
		{capabilities.FamilyCerebras, "zai-glm-4.6", capabilities.WireOpenAICompatible},
		{capabilities.FamilyGroq, "llama-3.3-70b", capabilities.WireOpenAICompatible},
		{capabilities.FamilyUnknown, "whatever", capabilities.WireOpenAICompatible},
		{capabilities.FamilyAnthropic, "not-a-claude", capabilities.WireAnthropic},
	}
	for _, tt := range tests {
		t.Run(string(tt.family)+"/"+tt.model, func(t *testing.T) {
			assert.Equal(t, tt.want, capabilities.WireShapeOf(tt.family, tt.model))
		})
	}
}

func TestSupportedReasoningEfforts(t *testing.T) {
	tests := []struct {
		family capabilities.Family
		model  string
		want   []controls.Effort
	}{
		{capabilities.FamilyOpenAI, "gpt-5.2", []controls.Effort{none, low, medium, high, xhigh}},
		{capabilities.FamilyOpenAI, "gpt-5.2-2025-12-11", []controls.Effort{none, low, medium, high, xhigh}},
		{capabilities.FamilyOpenAI, "gpt-5.1-codex-max", []controls.Effort{none, low, medium, high, xhigh}},
		{capabilities.FamilyOpenAI, "gpt-5.1", []controls.Effort{none, low, medium, high}},
		{capabilities.FamilyOpenAI, "gpt-5", []controls.Effort{low, medium, high}},
		{capabilities.FamilyOpenAI, "gpt-5-pro", []controls.Effort{high}},
		{capabilities.FamilyOpenAI, "o4-mini", []controls.Effort{low, medium, high}},
		{capabilities.FamilyOpenAI, "gpt-4o", nil},
		{capabilities.FamilyOpenAI, "gpt-5-chat-latest", nil},
		{capabilities.FamilyAnthropic, "claude-opus-4-6", []controls.Effort{low, medium, high, xhigh}},
		{capabilities.FamilyAnthropic, "claude-sonnet-4-6", []controls.Effort{low, medium, high}},
		{capabilities.FamilyAnthropic, "claude-sonnet-4-5", nil},
		{capabilities.FamilyGemini, "gemini-3-pro-preview", []controls.Effort{low, high}},
		{capabilities.FamilyGemini, "gemini-3-flash-preview", []controls.Effort{minimal, low, medium, high}},
		{capabilities.FamilyGemini, "gemini-2.5-pro", nil},
		{capabilities.FamilyXAI, "grok-3-mini", []controls.Effort{low, high}},
		{capabilities.FamilyCerebras, "gpt-oss-120b", []controls.Effort{low, medium, high}},
		{capabilities.FamilyFireworks, "accounts/fireworks/models/kimi-k2-thinking", []controls.Effort{none, low, medium, high}},
		{capabilities.FamilyPerplexity, "sonar-reasoning-pro", []controls.Effort{low, medium, high}},
		{capabilities.FamilyPerplexity, "sonar", nil},
		{capabilities.FamilyDeepSeek, "deepseek-reasoner", nil},
	}
	for _, tt := range tests {
		t.Run(string(tt.family)+"/"+tt.model, func(t *testing.T) {
			assert.Equal(t, tt.want, capabilities.SupportedReasoningEfforts(tt.family, tt.model))
		})
	}
}

func TestLookupFlags(t *testing.T) {
	t.Run("anthropic adaptive and dynamic filtering", func(t *testing.T) {
		s := capabilities.Lookup(capabilities.FamilyAnthropic, "claude-opus-4-6")
		assert.True(t, s.SupportsReasoning)
		assert.True(t, s.AdaptiveThinking)
		assert.True(t, s.SupportsThinkingBudget)
		assert.True(t, s.SupportsWebSearch)
		assert.True(t, s.SupportsDynamicWebSearchFiltering)
		assert.False(t, s.SupportsContextCache)
		assert.True(t, s.SupportsEffort(xhigh))

		older := capabilities.Lookup(capabilities.FamilyAnthropic, "claude-sonnet-4-5-20250929")
		assert.False(t, older.AdaptiveThinking)
		assert.True(t, older.SupportsThinkingBudget)
		assert.False(t, older.SupportsDynamicWebSearchFiltering)
	})

	t.Run("gemini budget models", func(t *testing.T) {
		pro := capabilities.Lookup(capabilities.FamilyGemini, "gemini-2.5-pro")
		assert.True(t, pro.SupportsThinkingBudget)
		assert.False(t, pro.CanDisableReasoning)

		flash := capabilities.Lookup(capabilities.FamilyGemini, "models/gemini-2.5-flash")
		assert.Equal(t, "gemini-2.5-flash", flash.ModelID)
		assert.True(t, flash.CanDisableReasoning)
		assert.True(t, flash.SupportsWebSearch)
		assert.True(t, flash.SupportsContextCache)
	})

	t.Run("image size tiers", func(t *testing.T) {
		pro := capabilities.Lookup(capabilities.FamilyGemini, "gemini-3-pro-image-preview")
		assert.Equal(t, capabilities.MediaImage, pro.Media)
		assert.False(t, pro.SupportsImageSize("512px"))
		assert.True(t, pro.SupportsImageSize("2K"))
		assert.False(t, pro.SupportsImageOutputOptions)

		flash := capabilities.Lookup(capabilities.FamilyGemini, "gemini-3.1-flash-image-preview")
		assert.True(t, flash.SupportsImageSize("512px"))

		vertex := capabilities.Lookup(capabilities.FamilyVertex, "publishers/google/models/gemini-3-pro-image-preview")
		assert.Equal(t, "gemini-3-pro-image-preview", vertex.ModelID)
		assert.True(t, vertex.SupportsImageOutputOptions)
		assert.False(t, capabilities.Lookup(capabilities.FamilyVertex, "gemini-2.5-pro").SupportsImageOutputOptions)
	})

	t.Run("predict endpoint models", func(t *testing.T) {
		veo := capabilities.Lookup(capabilities.FamilyGemini, "veo-3.0-generate-001")
		assert.Equal(t, capabilities.MediaVideo, veo.Media)
		assert.Equal(t, capabilities.EndpointPredict, veo.Endpoint)

		imagen := capabilities.Lookup(capabilities.FamilyVertex, "imagen-4.0-generate-001")
		assert.Equal(t, capabilities.MediaImage, imagen.Media)
		assert.Equal(t, capabilities.EndpointPredict, imagen.Endpoint)
		assert.True(t, imagen.SupportsImageSize("2K"))
	})

	t.Run("media heuristics fail closed", func(t *testing.T) {
		for _, tc := range []struct {
			family capabilities.Family
			model  string
			media  capabilities.MediaKind
		}{
			{capabilities.FamilyOpenAI, "gpt-image-1", capabilities.MediaImage},
			{capabilities.FamilyGemini, "gemini-2.5-flash-image", capabilities.MediaImage},
			{capabilities.FamilyVertex, "veo-99-experimental", capabilities.MediaVideo},
			{capabilities.FamilyXAI, "grok-2-image-1212", capabilities.MediaImage},
		} {
			s := capabilities.Lookup(tc.family, tc.model)
			assert.Equal(t, tc.media, s.Media, tc.model)
			assert.False(t, s.SupportsWebSearch, tc.model)
			assert.False(t, s.SupportsContextCache, tc.model)
			assert.False(t, s.SupportsReasoning, tc.model)
		}
	})

	t.Run("unknown pairs fail closed", func(t *testing.T) {
		for _, s := range []capabilities.Set{
			capabilities.Lookup(capabilities.FamilyAnthropic, "claude-2"),
			capabilities.Lookup(capabilities.FamilyPerplexity, "r1-1776"),
			capabilities.Lookup(capabilities.FamilyMistral, "mistral-large"),
			capabilities.Lookup(capabilities.FamilyUnknown, "gpt-5.2"),
			capabilities.Lookup(capabilities.FamilyOpenAI, "totally-unknown-model"),
			capabilities.Lookup(capabilities.FamilyXAI, "totally-unknown-model"),
		} {
			assert.False(t, s.SupportsReasoning, s.ModelID)
			assert.Empty(t, s.ReasoningEfforts, s.ModelID)
			assert.False(t, s.SupportsWebSearch, s.ModelID)
			assert.False(t, s.SupportsContextCache, s.ModelID)
		}
	})

	t.Run("package helpers agree with lookup", func(t *testing.T) {
		assert.True(t, capabilities.SupportsWebSearch(capabilities.FamilyOpenAI, "gpt-4.1"))
		assert.False(t, capabilities.SupportsWebSearch(capabilities.FamilyOpenAI, "gpt-4.1-nano"))
		assert.False(t, capabilities.SupportsWebSearch(capabilities.FamilyOpenAI, "gpt-5-nano"))
		assert.True(t, capabilities.SupportsDynamicFiltering(capabilities.FamilyAnthropic, "claude-sonnet-4-6"))
		assert.True(t, capabilities.SupportsContextCache(capabilities.FamilyXAI, "grok-4"))
		assert.False(t, capabilities.SupportsContextCache(capabilities.FamilyCerebras, "gpt-oss-120b"))
	})
}

func TestNormalizeModelID(t *testing.T) {
	assert.Equal(t, "gpt-5.2", capabilities.NormalizeModelID(capabilities.FamilyOpenAI, " OpenAI/GPT-5.2 "))
	assert.Equal(t, "gemini-2.5-pro", capabilities.NormalizeModelID(capabilities.FamilyVertex, "projects/p/locations/us/publishers/google/models/gemini-2.5-pro"))
	assert.Equal(t, "glm-4p6", capabilities.NormalizeModelID(capabilities.FamilyFireworks, "accounts/fireworks/models/glm-4p6"))
}

func TestLookupReturnsCopies(t *testing.T) {
	s := capabilities.Lookup(capabilities.FamilyOpenAI, "gpt-5.2")
	s.ReasoningEfforts[0] = xhigh
	assert.Equal(t, none, capabilities.Lookup(capabilities.FamilyOpenAI, "gpt-5.2").ReasoningEfforts[0])
}

func TestConcurrentLookup(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				_ = capabilities.Lookup(capabilities.FamilyGemini, "gemini-3-flash-preview")
				_ = capabilities.NormalizeEffort(xhigh, capabilities.FamilyOpenAI, "gpt-5")
			}
		}()
	}
	wg.Wait()
}

func TestParseRegistry(t *testing.T) {
	t.Run("extends and defaults", func(t *testing.T) {
		r, err := capabilities.ParseRegistry(
			[]byte("family: gemini\ndefaults:\n  web_search: true\nmodels:\n  - match: [\"g-*\"]\n    efforts: [high, low]\n"),
			[]byte("family: vertex\nextends: gemini\ndefaults:\n  context_cache: true\nmodels:\n  - match: [\"g-special\"]\n    web_search: false\n"),
		)
		require.NoError(t, err)

		s := r.Lookup(capabilities.FamilyVertex, "g-1")
		assert.Equal(t, []controls.Effort{low, high}, s.ReasoningEfforts)
		assert.True(t, s.SupportsWebSearch)
		assert.True(t, s.SupportsContextCache)
		assert.Equal(t, capabilities.WireGemini, s.WireShape)

		assert.False(t, r.Lookup(capabilities.FamilyVertex, "g-special").SupportsWebSearch)
		assert.False(t, r.Lookup(capabilities.FamilyGemini, "g-1").SupportsContextCache)
	})

	t.Run("errors", func(t *testing.T) {
		tests := map[string]string{
			"unknown field":  "family: openai\nmodels:\n  - match: [\"*\"]\n    turbo: true\n",
			"unknown family": "family: acme\n",
			"bad effort":     "family: openai\nmodels:\n  - match: [\"*\"]\n    efforts: [max]\n",
			"bad pattern":    "family: openai\nmodels:\n  - match: [\"re:(\"]\n",
			"no pattern":     "family: openai\nmodels:\n  - efforts: [low]\n",
			"bad wire shape": "family: openai\nwire_shape: grpc\n",
			"bad extends":    "family: vertex\nextends: gemini\n",
			"bad media":      "family: gemini\nmodels:\n  - match: [\"*\"]\n    media: audio\n",
		}
		for name, doc := range tests {
			t.Run(name, func(t *testing.T) {
				_, err := capabilities.ParseRegistry([]byte(doc))
				assert.Error(t, err)
			})
		}

		_, err := capabilities.ParseRegistry([]byte("family: openai\n"), []byte("family: openai\n"))
		assert.Error(t, err)
	})

	t.Run("load from fs", func(t *testing.T) {
		fsys := fstest.MapFS{
			"xai.yaml":   {Data: []byte("family: xai\nmodels:\n  - match: [\"*\"]\n    reasoning: true\n")},
			"notes.txt":  {Data: []byte("ignored")},
			"other.yaml": {Data: []byte("family: cerebras\n")},
		}
		r, err := capabilities.LoadRegistry(fsys)
		require.NoError(t, err)
		assert.True(t, r.Lookup(capabilities.FamilyXAI, "grok-5").SupportsReasoning)
		assert.Equal(t, []capabilities.Family{capabilities.FamilyXAI, capabilities.FamilyCerebras}, r.Families())
	})
}
