package controls

import (
	"fmt"
	"strings"

	"github.com/agentstation/genctl/pkg/constants"
	"github.com/agentstation/genctl/pkg/errors"
)

// Validate reports out-of-range values and unknown enum literals as joined
// ValidationErrors. It is advisory: the engine accepts any controls and
// never calls it itself.
func (c *GenerationControls) Validate() error {
	if c == nil {
		return nil
	}
	var errs []error
	add := func(field string, value any, format string, args ...any) {
		errs = append(errs, errors.NewValidationError(field, value, fmt.Sprintf(format, args...)))
	}

	if c.Temperature != nil && (*c.Temperature < 0 || *c.Temperature > 2) {
		add("temperature", *c.Temperature, "must be between 0 and 2")
	}
	if c.TopP != nil && (*c.TopP < 0 || *c.TopP > 1) {
		add("top_p", *c.TopP, "must be between 0 and 1")
	}
	if c.MaxTokens != nil && *c.MaxTokens < 0 {
		add("max_tokens", *c.MaxTokens, "must not be negative")
	}

	if r := c.Reasoning; r != nil {
		if r.Effort != "" && !r.Effort.Valid() {
			add("reasoning.effort", r.Effort, "unknown effort %q", r.Effort)
		}
		if r.BudgetTokens != nil && *r.BudgetTokens < 0 {
			add("reasoning.budget_tokens", *r.BudgetTokens, "must not be negative")
		}
		switch r.Summary {
		case "", SummaryAuto, SummaryConcise, SummaryDetailed:
		default:
			add("reasoning.summary", r.Summary, "unknown summary %q", r.Summary)
		}
		switch r.History {
		case "", HistoryDisabled, HistoryInterleaved, HistoryPreserved:
		default:
			add("reasoning.history", r.History, "unknown history %q", r.History)
		}
	}

	if w := c.WebSearch; w != nil {
		switch w.ContextSize {
		case "", SearchContextLow, SearchContextMedium, SearchContextHigh:
		default:
			add("web_search.context_size", w.ContextSize, "unknown context size %q", w.ContextSize)
		}
		if w.MaxUses != nil && *w.MaxUses < 1 {
			add("web_search.max_uses", *w.MaxUses, "must be at least 1")
		}
		if len(w.AllowedDomains) > 0 && len(w.BlockedDomains) > 0 {
			add("web_search.blocked_domains", w.BlockedDomains, "cannot be combined with allowed_domains")
		}
	}

	if cc := c.ContextCache; cc != nil {
		switch cc.Mode {
		case "", CacheOff, CacheImplicit, CacheExplicit:
		default:
			add("context_cache.mode", cc.Mode, "unknown mode %q", cc.Mode)
		}
		switch cc.Strategy {
		case "", CacheStrategyAuto, CacheStrategyConversation, CacheStrategyPrefix:
		default:
			add("context_cache.strategy", cc.Strategy, "unknown strategy %q", cc.Strategy)
		}
		if cc.TTL != "" {
			if _, ok := ParseTTL(cc.TTL); !ok {
				add("context_cache.ttl", cc.TTL, `must be "5m", "1h" or "custom:<n>s"`)
			}
		}
		if cc.CachedContentName != "" && !IsCachedContentName(cc.CachedContentName) {
			add("context_cache.cached_content_name", cc.CachedContentName, "must be cachedContents/{id} or a resource path ending in it")
		}
		if cc.MinTokensThreshold != nil && *cc.MinTokensThreshold < 0 {
			add("context_cache.min_tokens_threshold", *cc.MinTokensThreshold, "must not be negative")
		}
	}

	if img := c.Image; img != nil {
		if img.CompressionQuality != nil && (*img.CompressionQuality < 0 || *img.CompressionQuality > 100) {
			add("image.compression_quality", *img.CompressionQuality, "must be between 0 and 100")
		}
		if img.NumberOfImages != nil && *img.NumberOfImages < 1 {
			add("image.number_of_images", *img.NumberOfImages, "must be at least 1")
		}
	}

	if v := c.Video; v != nil {
		if v.DurationSeconds != nil && *v.DurationSeconds < 1 {
			add("video.duration_seconds", *v.DurationSeconds, "must be at least 1")
		}
		if v.NumberOfVideos != nil && *v.NumberOfVideos < 1 {
			add("video.number_of_videos", *v.NumberOfVideos, "must be at least 1")
		}
	}

	return errors.Join(errs...)
}

// IsCachedContentName reports whether name is "cachedContents/{id}" or a
// longer resource path ending in that segment.
func IsCachedContentName(name string) bool {
	i := strings.LastIndex(name, constants.CachedContentPrefix)
	if i < 0 {
		return false
	}
	if i > 0 && name[i-1] != '/' {
		return false
	}
	id := name[i+len(constants.CachedContentPrefix):]
	return id != "" && !strings.Contains(id, "/")
}
