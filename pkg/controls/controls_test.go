package controls_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/genctl/internal/utils/ptr"
	"github.com/agentstation/genctl/pkg/controls"
	"github.com/agentstation/genctl/pkg/errors"
)

func TestEffortRank(t *testing.T) {
	for i, e := range controls.Efforts() {
		assert.Equal(t, i, e.Rank(), e.String())
		assert.True(t, e.Valid())
	}
	assert.Equal(t, -1, controls.Effort("").Rank())
	assert.Equal(t, -1, controls.Effort("max").Rank())
}

func TestParseEffort(t *testing.T) {
	tests := []struct {
		in   string
		want controls.Effort
		ok   bool
	}{
		{"high", controls.EffortHigh, true},
		{" Medium ", controls.EffortMedium, true},
		{"XHIGH", controls.EffortXHigh, true},
		{"x-high", controls.EffortXHigh, true},
		{"none", controls.EffortNone, true},
		{"max", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := controls.ParseEffort(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
	assert.True(t, controls.ContainsEffort([]controls.Effort{controls.EffortLow}, controls.EffortLow))
	assert.False(t, controls.ContainsEffort(nil, controls.EffortLow))
}

func TestParseTTL(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
		ok   bool
	}{
		{"5m", 5 * time.Minute, true},
		{"1h", time.Hour, true},
		{"custom:600s", 10 * time.Minute, true},
		{"custom:0s", 0, false},
		{"custom:-5s", 0, false},
		{"custom:05s", 0, false},
		{"custom:600", 0, false},
		{"10m", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := controls.ParseTTL(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
	assert.Equal(t, "custom:90s", controls.CustomTTL(90*time.Second+300*time.Millisecond))
}

func fullControls() *controls.GenerationControls {
	return &controls.GenerationControls{
		Temperature: ptr.Float64(0.7),
		TopP:        ptr.Float64(0.9),
		MaxTokens:   ptr.Int(2048),
		Seed:        ptr.Int(42),
		Reasoning: &controls.ReasoningControls{
			Enabled:      true,
			Effort:       controls.EffortHigh,
			BudgetTokens: ptr.Int(4096),
			Summary:      controls.SummaryAuto,
		},
		WebSearch: &controls.WebSearchControls{
			Enabled:        true,
			ContextSize:    controls.SearchContextMedium,
			MaxUses:        ptr.Int(3),
			AllowedDomains: []string{"go.dev"},
			UserLocation:   &controls.UserLocation{City: "Austin", Country: "US"},
		},
		ContextCache: &controls.ContextCacheControls{
			Mode:               controls.CacheImplicit,
			TTL:                "1h",
			CacheKey:           "conv-1",
			MinTokensThreshold: ptr.Int(1024),
		},
		Image: &controls.ImageControls{
			AspectRatio:        "16:9",
			CompressionQuality: ptr.Int(80),
			ResponseModalities: []string{"TEXT", "IMAGE"},
		},
		Video: &controls.VideoControls{
			DurationSeconds: ptr.Int(8),
			GenerateAudio:   ptr.Bool(true),
		},
		ProviderSpecific: map[string]any{"metadata": map[string]any{"user": "u1"}},
	}
}

func TestClone(t *testing.T) {
	orig := fullControls()
	c := orig.Clone()
	require.Equal(t, orig, c)

	*c.Temperature = 0.1
	*c.Reasoning.BudgetTokens = 1
	c.WebSearch.AllowedDomains[0] = "example.com"
	c.WebSearch.UserLocation.City = "Paris"
	*c.ContextCache.MinTokensThreshold = 1
	c.Image.ResponseModalities[0] = "AUDIO"
	*c.Video.GenerateAudio = false
	c.ProviderSpecific["metadata"].(map[string]any)["user"] = "u2"

	assert.Equal(t, fullControls(), orig)
	assert.Nil(t, (*controls.GenerationControls)(nil).Clone())
}

func TestSerializationTags(t *testing.T) {
	c := &controls.GenerationControls{
		MaxTokens:    ptr.Int(100),
		ContextCache: &controls.ContextCacheControls{Mode: controls.CacheExplicit, CachedContentName: "cachedContents/abc"},
	}

	b, err := json.Marshal(c)
	require.NoError(t, err)
	assert.JSONEq(t, `{"max_tokens":100,"context_cache":{"mode":"explicit","cached_content_name":"cachedContents/abc"}}`, string(b))

	var back controls.GenerationControls
	require.NoError(t, yaml.Unmarshal([]byte("max_tokens: 100\ncontext_cache:\n  mode: explicit\n  cached_content_name: cachedContents/abc\n"), &back))
	assert.Equal(t, c, &back)
}

func TestCacheEnabled(t *testing.T) {
	var nilCache *controls.ContextCacheControls
	assert.False(t, nilCache.Enabled())
	assert.False(t, (&controls.ContextCacheControls{}).Enabled())
	assert.False(t, (&controls.ContextCacheControls{Mode: controls.CacheOff}).Enabled())
	assert.True(t, (&controls.ContextCacheControls{Mode: controls.CacheImplicit}).Enabled())
}

func TestValidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, fullControls().Validate())
		assert.NoError(t, (*controls.GenerationControls)(nil).Validate())
	})

	tests := []struct {
		name  string
		c     *controls.GenerationControls
		field string
	}{
		{"temperature", &controls.GenerationControls{Temperature: ptr.Float64(2.5)}, "temperature"},
		{"top_p", &controls.GenerationControls{TopP: ptr.Float64(-0.1)}, "top_p"},
		{"max_tokens", &controls.GenerationControls{MaxTokens: ptr.Int(-1)}, "max_tokens"},
		{"effort", &controls.GenerationControls{Reasoning: &controls.ReasoningControls{Effort: "max"}}, "reasoning.effort"},
		{"summary", &controls.GenerationControls{Reasoning: &controls.ReasoningControls{Summary: "brief"}}, "reasoning.summary"},
		{"domains", &controls.GenerationControls{WebSearch: &controls.WebSearchControls{AllowedDomains: []string{"a"}, BlockedDomains: []string{"b"}}}, "web_search.blocked_domains"},
		{"ttl", &controls.GenerationControls{ContextCache: &controls.ContextCacheControls{Mode: controls.CacheImplicit, TTL: "2h"}}, "context_cache.ttl"},
		{"cached content", &controls.GenerationControls{ContextCache: &controls.ContextCacheControls{Mode: controls.CacheExplicit, CachedContentName: "abc"}}, "context_cache.cached_content_name"},
		{"compression", &controls.GenerationControls{Image: &controls.ImageControls{CompressionQuality: ptr.Int(101)}}, "image.compression_quality"},
		{"duration", &controls.GenerationControls{Video: &controls.VideoControls{DurationSeconds: ptr.Int(0)}}, "video.duration_seconds"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.c.Validate()
			require.Error(t, err)
			assert.True(t, errors.IsValidationError(err))
			var verr *errors.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestIsCachedContentName(t *testing.T) {
	assert.True(t, controls.IsCachedContentName("cachedContents/abc123"))
	assert.True(t, controls.IsCachedContentName("projects/p/locations/us-central1/cachedContents/abc123"))
	assert.False(t, controls.IsCachedContentName("cachedContents/"))
	assert.False(t, controls.IsCachedContentName("abc123"))
	assert.False(t, controls.IsCachedContentName("mycachedContents/abc"))
	assert.False(t, controls.IsCachedContentName("cachedContents/a/b"))
}
