// Package perplexity speaks the Perplexity Sonar dialect. Sonar models
// search by default; the draft can only turn search off or tune it.
package perplexity

import (
	"strings"

	"github.com/agentstation/genctl/internal/dialects/base"
	"github.com/agentstation/genctl/pkg/capabilities"
	"github.com/agentstation/genctl/pkg/controls"
	"github.com/agentstation/genctl/pkg/draft"
)

// Wire keys.
const (
	KeyReasoningEffort    = "reasoning_effort"
	KeyDisableSearch      = "disable_search"
	KeyWebSearchOptions   = "web_search_options"
	KeySearchDomainFilter = "search_domain_filter"
)

// blockPrefix marks a denied domain in search_domain_filter.
const blockPrefix = "-"

var sampling = base.Sampling{
	Temperature: "temperature",
	TopP:        "top_p",
	MaxTokens:   "max_tokens",
}

// Build projects c onto a Perplexity draft.
func Build(c *controls.GenerationControls, caps capabilities.Set) draft.Draft {
	d := draft.Draft{}
	if c == nil {
		return d
	}
	sampling.Build(d, c)

	if r := c.Reasoning; r != nil && caps.SupportsReasoning && r.Enabled {
		if e, ok := base.Effort(caps, r.Effort); ok && e != controls.EffortNone {
			d[KeyReasoningEffort] = base.OpenAIEffort(e, true)
		}
	}

	if w := c.WebSearch; w != nil && caps.SupportsWebSearch {
		d[KeyDisableSearch] = !w.Enabled
		if w.Enabled {
			buildSearch(d, w)
		}
	}
	return d
}

func buildSearch(d draft.Draft, w *controls.WebSearchControls) {
	opts := map[string]any{}
	if w.ContextSize != "" {
		opts["search_context_size"] = string(w.ContextSize)
	}
	if loc := base.Location(w.UserLocation, base.LocationOptions{}); loc != nil {
		opts["user_location"] = loc
	}
	if len(opts) > 0 {
		d[KeyWebSearchOptions] = opts
	}

	filter := make([]any, 0, len(w.AllowedDomains)+len(w.BlockedDomains))
	for _, domain := range w.AllowedDomains {
		filter = append(filter, domain)
	}
	for _, domain := range w.BlockedDomains {
		filter = append(filter, blockPrefix+domain)
	}
	if len(filter) > 0 {
		d[KeySearchDomainFilter] = filter
	}
}

// Apply infers controls from a Perplexity draft.
func Apply(d draft.Draft, caps capabilities.Set, _ *controls.GenerationControls) (*controls.GenerationControls, draft.Draft) {
	out := &controls.GenerationControls{}
	sampling.Apply(d, out)

	if e, ok := base.ParseEffort(d[KeyReasoningEffort]); ok && caps.SupportsReasoning && e != controls.EffortNone {
		out.Reasoning = &controls.ReasoningControls{Enabled: true, Effort: e}
	}
	if caps.SupportsWebSearch {
		out.WebSearch = parseSearch(d)
	}

	return out, draft.Remainder(d, Build(out, caps), true)
}

func parseSearch(d draft.Draft) *controls.WebSearchControls {
	var w *controls.WebSearchControls
	if disabled, ok := draft.Bool(d[KeyDisableSearch]); ok {
		if disabled {
			return &controls.WebSearchControls{Enabled: false}
		}
		w = &controls.WebSearchControls{Enabled: true}
	}

	if opts, ok := draft.Object(d[KeyWebSearchOptions]); ok {
		if w == nil {
			w = &controls.WebSearchControls{Enabled: true}
		}
		if size, ok := base.ParseContextSize(opts["search_context_size"]); ok {
			w.ContextSize = size
		}
		if loc := base.ParseLocation(opts["user_location"]); loc != nil {
			loc.Timezone = ""
			if *loc != (controls.UserLocation{}) {
				w.UserLocation = loc
			}
		}
	}

	if filter, ok := draft.Strings(d[KeySearchDomainFilter]); ok && len(filter) > 0 {
		if w == nil {
			w = &controls.WebSearchControls{Enabled: true}
		}
		for _, domain := range filter {
			if blocked, ok := strings.CutPrefix(domain, blockPrefix); ok {
				w.BlockedDomains = append(w.BlockedDomains, blocked)
			} else {
				w.AllowedDomains = append(w.AllowedDomains, domain)
			}
		}
	}
	return w
}
