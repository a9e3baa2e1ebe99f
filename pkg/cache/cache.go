// Package cache projects the canonical context-cache envelope onto the
// prompt caching fields of each provider family and reads it back.
//
// Four mechanisms are covered:
//
//   - openai: prompt_cache_key and prompt_cache_retention.
//   - xai: the x-grok-conv-id conversation id plus the openai pair.
//   - anthropic: nothing; cache_control blocks live on message content.
//   - gemini and vertex: an explicit cachedContent resource name.
//
// Models whose capability set does not advertise context caching never get a
// fragment, and their cache keys are never promoted.
package cache

import (
	"github.com/agentstation/genctl/internal/utils/ptr"
	"github.com/agentstation/genctl/pkg/capabilities"
	"github.com/agentstation/genctl/pkg/controls"
	"github.com/agentstation/genctl/pkg/draft"
)

// Wire keys owned by the adapter.
const (
	KeyPromptCacheKey       = "prompt_cache_key"
	KeyPromptCacheRetention = "prompt_cache_retention"
	KeyConversationID       = "x-grok-conv-id"
	KeyCachedContent        = "cachedContent"
)

// Keys lists the wire keys the adapter reads and writes for family.
func Keys(family capabilities.Family) []string {
	switch family {
	case capabilities.FamilyOpenAI:
		return []string{KeyPromptCacheKey, KeyPromptCacheRetention}
	case capabilities.FamilyXAI:
		return []string{KeyConversationID, KeyPromptCacheKey, KeyPromptCacheRetention}
	case capabilities.FamilyGemini, capabilities.FamilyVertex:
		return []string{KeyCachedContent}
	default:
		return nil
	}
}

// Fragment returns the top-level draft keys that express cc. The result is
// empty when caching is off, unsupported by the model, or has no wire form
// for the family.
func Fragment(family capabilities.Family, caps capabilities.Set, cc *controls.ContextCacheControls) draft.Draft {
	out := draft.Draft{}
	if !caps.SupportsContextCache || !cc.Enabled() {
		return out
	}

	switch family {
	case capabilities.FamilyXAI:
		if cc.ConversationID != "" {
			out[KeyConversationID] = cc.ConversationID
		}
		fallthrough
	case capabilities.FamilyOpenAI:
		if cc.CacheKey != "" {
			out[KeyPromptCacheKey] = cc.CacheKey
		}
		if _, ok := controls.ParseTTL(cc.TTL); ok {
			out[KeyPromptCacheRetention] = cc.TTL
		}
	case capabilities.FamilyGemini, capabilities.FamilyVertex:
		if cc.Mode == controls.CacheExplicit && controls.IsCachedContentName(cc.CachedContentName) {
			out[KeyCachedContent] = cc.CachedContentName
		}
	}
	return out
}

// Parse reads the cache envelope back from d.
//
// Recognised values switch caching on: openai-style keys imply implicit
// mode, a cachedContent name implies explicit mode. Values the builder would
// not emit verbatim (an unknown retention literal, a malformed resource name,
// a non-string) are ignored and stay in the caller's remainder.
//
// Strategy and MinTokensThreshold have no wire form and are carried over
// from prior while caching stays on. A prior envelope that has no wire form
// at all, such as implicit mode on gemini, is carried over unchanged when d
// holds no cache keys.
func Parse(family capabilities.Family, caps capabilities.Set, d draft.Draft, prior *controls.ContextCacheControls) *controls.ContextCacheControls {
	if !caps.SupportsContextCache {
		return nil
	}

	var cc controls.ContextCacheControls
	found := false
	str := func(key string) (string, bool) {
		s, ok := draft.String(d[key])
		return s, ok && s != ""
	}

	switch family {
	case capabilities.FamilyXAI:
		if s, ok := str(KeyConversationID); ok {
			cc.ConversationID = s
			found = true
		}
		fallthrough
	case capabilities.FamilyOpenAI:
		if s, ok := str(KeyPromptCacheKey); ok {
			cc.CacheKey = s
			found = true
		}
		if s, ok := str(KeyPromptCacheRetention); ok {
			if _, valid := controls.ParseTTL(s); valid {
				cc.TTL = s
				found = true
			}
		}
		cc.Mode = controls.CacheImplicit
		if prior.Enabled() {
			cc.Mode = prior.Mode
		}
	case capabilities.FamilyGemini, capabilities.FamilyVertex:
		if s, ok := str(KeyCachedContent); ok && controls.IsCachedContentName(s) {
			cc.CachedContentName = s
			cc.Mode = controls.CacheExplicit
			found = true
		}
	default:
		return nil
	}

	if !found {
		if prior.Enabled() && len(Fragment(family, caps, prior)) == 0 {
			out := *prior
			out.MinTokensThreshold = ptr.Clone(prior.MinTokensThreshold)
			return &out
		}
		return nil
	}

	if prior.Enabled() {
		cc.Strategy = prior.Strategy
		cc.MinTokensThreshold = ptr.Clone(prior.MinTokensThreshold)
	}
	return &cc
}
