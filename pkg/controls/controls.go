// Package controls defines GenerationControls, the provider-agnostic
// configuration model that genctl projects onto provider drafts and
// reconstructs from them.
//
// Every optional scalar is a pointer so that "unset" (use the provider
// default) is distinct from an explicit zero. ProviderSpecific carries the
// remainder: draft fragments no typed field can represent, persisted
// verbatim and merged back into the next draft.
package controls

import (
	"strconv"
	"strings"
	"time"

	"github.com/agentstation/genctl/internal/utils/ptr"
	"github.com/agentstation/genctl/pkg/constants"
	"github.com/agentstation/genctl/pkg/draft"
)

// GenerationControls is the canonical, provider-agnostic request configuration.
type GenerationControls struct {
	Temperature      *float64              `json:"temperature,omitempty" yaml:"temperature,omitempty"`
	TopP             *float64              `json:"top_p,omitempty" yaml:"top_p,omitempty"`
	MaxTokens        *int                  `json:"max_tokens,omitempty" yaml:"max_tokens,omitempty"`
	Seed             *int                  `json:"seed,omitempty" yaml:"seed,omitempty"`
	Reasoning        *ReasoningControls    `json:"reasoning,omitempty" yaml:"reasoning,omitempty"`
	WebSearch        *WebSearchControls    `json:"web_search,omitempty" yaml:"web_search,omitempty"`
	ContextCache     *ContextCacheControls `json:"context_cache,omitempty" yaml:"context_cache,omitempty"`
	Image            *ImageControls        `json:"image,omitempty" yaml:"image,omitempty"`
	Video            *VideoControls        `json:"video,omitempty" yaml:"video,omitempty"`
	ProviderSpecific map[string]any        `json:"provider_specific,omitempty" yaml:"provider_specific,omitempty"`
}

// Summary selects how much of the model's reasoning is summarized back.
type Summary string

// Summary values.
const (
	SummaryAuto     Summary = "auto"
	SummaryConcise  Summary = "concise"
	SummaryDetailed Summary = "detailed"
)

// History controls how prior reasoning is replayed to the model.
type History string

// History values.
const (
	HistoryDisabled    History = "disabled"
	HistoryInterleaved History = "interleaved"
	HistoryPreserved   History = "preserved"
)

// ReasoningControls configures extended thinking.
type ReasoningControls struct {
	Enabled      bool    `json:"enabled" yaml:"enabled"`
	Effort       Effort  `json:"effort,omitempty" yaml:"effort,omitempty"`
	BudgetTokens *int    `json:"budget_tokens,omitempty" yaml:"budget_tokens,omitempty"`
	Summary      Summary `json:"summary,omitempty" yaml:"summary,omitempty"`
	History      History `json:"history,omitempty" yaml:"history,omitempty"`
}

// SearchContextSize is how much retrieved web content is fed to the model.
type SearchContextSize string

// SearchContextSize values.
const (
	SearchContextLow    SearchContextSize = "low"
	SearchContextMedium SearchContextSize = "medium"
	SearchContextHigh   SearchContextSize = "high"
)

// UserLocation is an approximate location used to localize search results.
type UserLocation struct {
	City     string `json:"city,omitempty" yaml:"city,omitempty"`
	Region   string `json:"region,omitempty" yaml:"region,omitempty"`
	Country  string `json:"country,omitempty" yaml:"country,omitempty"`
	Timezone string `json:"timezone,omitempty" yaml:"timezone,omitempty"`
}

// WebSearchControls configures the provider's built-in web search tool.
type WebSearchControls struct {
	Enabled          bool              `json:"enabled" yaml:"enabled"`
	ContextSize      SearchContextSize `json:"context_size,omitempty" yaml:"context_size,omitempty"`
	MaxUses          *int              `json:"max_uses,omitempty" yaml:"max_uses,omitempty"`
	AllowedDomains   []string          `json:"allowed_domains,omitempty" yaml:"allowed_domains,omitempty"`
	BlockedDomains   []string          `json:"blocked_domains,omitempty" yaml:"blocked_domains,omitempty"`
	UserLocation     *UserLocation     `json:"user_location,omitempty" yaml:"user_location,omitempty"`
	DynamicFiltering bool              `json:"dynamic_filtering,omitempty" yaml:"dynamic_filtering,omitempty"`
}

// CacheMode selects the prompt caching mechanism.
type CacheMode string

// CacheMode values.
const (
	CacheOff      CacheMode = "off"
	CacheImplicit CacheMode = "implicit"
	CacheExplicit CacheMode = "explicit"
)

// CacheStrategy is a hint for where cache breakpoints are placed. It never
// appears on the wire.
type CacheStrategy string

// CacheStrategy values.
const (
	CacheStrategyAuto         CacheStrategy = "auto"
	CacheStrategyConversation CacheStrategy = "conversation"
	CacheStrategyPrefix       CacheStrategy = "prefix"
)

// ContextCacheControls is the canonical prompt/context cache envelope.
type ContextCacheControls struct {
	Mode               CacheMode     `json:"mode,omitempty" yaml:"mode,omitempty"`
	Strategy           CacheStrategy `json:"strategy,omitempty" yaml:"strategy,omitempty"`
	TTL                string        `json:"ttl,omitempty" yaml:"ttl,omitempty"`
	CacheKey           string        `json:"cache_key,omitempty" yaml:"cache_key,omitempty"`
	ConversationID     string        `json:"conversation_id,omitempty" yaml:"conversation_id,omitempty"`
	CachedContentName  string        `json:"cached_content_name,omitempty" yaml:"cached_content_name,omitempty"`
	MinTokensThreshold *int          `json:"min_tokens_threshold,omitempty" yaml:"min_tokens_threshold,omitempty"`
}

// Enabled reports whether the envelope asks for any caching.
func (c *ContextCacheControls) Enabled() bool {
	return c != nil && c.Mode != "" && c.Mode != CacheOff
}

// ImageControls configures image-generation models.
type ImageControls struct {
	AspectRatio        string   `json:"aspect_ratio,omitempty" yaml:"aspect_ratio,omitempty"`
	ImageSize          string   `json:"image_size,omitempty" yaml:"image_size,omitempty"`
	PersonGeneration   string   `json:"person_generation,omitempty" yaml:"person_generation,omitempty"`
	OutputMIMEType     string   `json:"output_mime_type,omitempty" yaml:"output_mime_type,omitempty"`
	CompressionQuality *int     `json:"compression_quality,omitempty" yaml:"compression_quality,omitempty"`
	ResponseModalities []string `json:"response_modalities,omitempty" yaml:"response_modalities,omitempty"`
	NumberOfImages     *int     `json:"number_of_images,omitempty" yaml:"number_of_images,omitempty"`
}

// VideoControls configures video-generation models.
type VideoControls struct {
	AspectRatio      string `json:"aspect_ratio,omitempty" yaml:"aspect_ratio,omitempty"`
	Resolution       string `json:"resolution,omitempty" yaml:"resolution,omitempty"`
	NegativePrompt   string `json:"negative_prompt,omitempty" yaml:"negative_prompt,omitempty"`
	PersonGeneration string `json:"person_generation,omitempty" yaml:"person_generation,omitempty"`
	DurationSeconds  *int   `json:"duration_seconds,omitempty" yaml:"duration_seconds,omitempty"`
	GenerateAudio    *bool  `json:"generate_audio,omitempty" yaml:"generate_audio,omitempty"`
	NumberOfVideos   *int   `json:"number_of_videos,omitempty" yaml:"number_of_videos,omitempty"`
}

// Clone returns a deep copy of c. Cloning nil returns nil.
func (c *GenerationControls) Clone() *GenerationControls {
	if c == nil {
		return nil
	}
	out := &GenerationControls{
		Temperature: ptr.Clone(c.Temperature),
		TopP:        ptr.Clone(c.TopP),
		MaxTokens:   ptr.Clone(c.MaxTokens),
		Seed:        ptr.Clone(c.Seed),
	}
	if c.Reasoning != nil {
		r := *c.Reasoning
		r.BudgetTokens = ptr.Clone(c.Reasoning.BudgetTokens)
		out.Reasoning = &r
	}
	if c.WebSearch != nil {
		w := *c.WebSearch
		w.MaxUses = ptr.Clone(c.WebSearch.MaxUses)
		w.AllowedDomains = cloneStrings(c.WebSearch.AllowedDomains)
		w.BlockedDomains = cloneStrings(c.WebSearch.BlockedDomains)
		w.UserLocation = ptr.Clone(c.WebSearch.UserLocation)
		out.WebSearch = &w
	}
	if c.ContextCache != nil {
		cc := *c.ContextCache
		cc.MinTokensThreshold = ptr.Clone(c.ContextCache.MinTokensThreshold)
		out.ContextCache = &cc
	}
	if c.Image != nil {
		img := *c.Image
		img.CompressionQuality = ptr.Clone(c.Image.CompressionQuality)
		img.NumberOfImages = ptr.Clone(c.Image.NumberOfImages)
		img.ResponseModalities = cloneStrings(c.Image.ResponseModalities)
		out.Image = &img
	}
	if c.Video != nil {
		v := *c.Video
		v.DurationSeconds = ptr.Clone(c.Video.DurationSeconds)
		v.GenerateAudio = ptr.Clone(c.Video.GenerateAudio)
		v.NumberOfVideos = ptr.Clone(c.Video.NumberOfVideos)
		out.Video = &v
	}
	if c.ProviderSpecific != nil {
		out.ProviderSpecific = map[string]any(draft.Draft(c.ProviderSpecific).Clone())
	}
	return out
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append([]string{}, s...)
}

// ParseTTL parses a cache retention literal: "5m", "1h" or "custom:<n>s"
// with n a positive number of seconds.
func ParseTTL(ttl string) (time.Duration, bool) {
	switch ttl {
	case constants.CacheTTLShort:
		return 5 * time.Minute, true
	case constants.CacheTTLLong:
		return time.Hour, true
	}
	rest, ok := strings.CutPrefix(ttl, constants.CacheTTLCustomPrefix)
	if !ok {
		return 0, false
	}
	secs, ok := strings.CutSuffix(rest, "s")
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(secs)
	if err != nil || n <= 0 || strconv.Itoa(n) != secs {
		return 0, false
	}
	return time.Duration(n) * time.Second, true
}

// CustomTTL formats d as a "custom:<n>s" retention literal, rounding down to
// whole seconds.
func CustomTTL(d time.Duration) string {
	return constants.CacheTTLCustomPrefix + strconv.Itoa(int(d/time.Second)) + "s"
}
