// Package google speaks the generateContent and predict request dialects
// shared by the Gemini API and Vertex AI.
//
// The two families differ in the spelling of the search tool and in the
// image options only Vertex accepts. Imagen and Veo models are served by
// the predict endpoint and take a flat parameters object instead of a
// generationConfig.
package google

import (
	"github.com/agentstation/genctl/internal/dialects/base"
	"github.com/agentstation/genctl/pkg/cache"
	"github.com/agentstation/genctl/pkg/capabilities"
	"github.com/agentstation/genctl/pkg/controls"
	"github.com/agentstation/genctl/pkg/draft"
)

// Top-level keys.
const (
	KeyGenerationConfig = "generationConfig"
	KeyParameters       = "parameters"
	KeyTools            = "tools"
)

// Search tool keys.
const (
	ToolGoogleSearch       = "google_search"
	ToolGoogleSearchVertex = "googleSearch"
)

var sampling = base.Sampling{
	Temperature: "temperature",
	TopP:        "topP",
	MaxTokens:   "maxOutputTokens",
	Seed:        "seed",
}

type variant struct {
	family    capabilities.Family
	searchKey string
	vertex    bool
}

var (
	gemini = variant{family: capabilities.FamilyGemini, searchKey: ToolGoogleSearch}
	vertex = variant{family: capabilities.FamilyVertex, searchKey: ToolGoogleSearchVertex, vertex: true}
)

// BuildGemini projects c onto a Gemini API draft.
func BuildGemini(c *controls.GenerationControls, caps capabilities.Set) draft.Draft {
	return gemini.build(c, caps)
}

// ApplyGemini infers controls from a Gemini API draft.
func ApplyGemini(d draft.Draft, caps capabilities.Set, prior *controls.GenerationControls) (*controls.GenerationControls, draft.Draft) {
	return gemini.apply(d, caps, prior)
}

// BuildVertex projects c onto a Vertex AI draft.
func BuildVertex(c *controls.GenerationControls, caps capabilities.Set) draft.Draft {
	return vertex.build(c, caps)
}

// ApplyVertex infers controls from a Vertex AI draft.
func ApplyVertex(d draft.Draft, caps capabilities.Set, prior *controls.GenerationControls) (*controls.GenerationControls, draft.Draft) {
	return vertex.apply(d, caps, prior)
}

func (v variant) build(c *controls.GenerationControls, caps capabilities.Set) draft.Draft {
	d := draft.Draft{}
	if c == nil {
		return d
	}

	if caps.Endpoint == capabilities.EndpointPredict {
		if params := predictParameters(c, caps); len(params) > 0 {
			d[KeyParameters] = params
		}
		return d
	}

	gc := map[string]any{}
	sampling.Build(gc, c)
	if r := c.Reasoning; r != nil && caps.SupportsReasoning {
		if tc := thinkingConfig(r, caps); len(tc) > 0 {
			gc["thinkingConfig"] = tc
		}
	}
	if img := c.Image; img != nil && caps.Media == capabilities.MediaImage {
		v.buildImage(gc, img, caps)
	}
	if len(gc) > 0 {
		d[KeyGenerationConfig] = gc
	}

	if w := c.WebSearch; w != nil && w.Enabled && caps.SupportsWebSearch {
		d[KeyTools] = []any{map[string]any{v.searchKey: map[string]any{}}}
	}

	for k, val := range cache.Fragment(v.family, caps, c.ContextCache) {
		d[k] = val
	}
	return d
}

func (v variant) apply(d draft.Draft, caps capabilities.Set, prior *controls.GenerationControls) (*controls.GenerationControls, draft.Draft) {
	out := &controls.GenerationControls{}

	if caps.Endpoint == capabilities.EndpointPredict {
		if params, ok := draft.Object(d[KeyParameters]); ok {
			applyPredict(params, caps, out)
		}
	} else if gc, ok := draft.Object(d[KeyGenerationConfig]); ok {
		sampling.Apply(gc, out)
		if tc, ok := draft.Object(gc["thinkingConfig"]); ok && caps.SupportsReasoning {
			out.Reasoning = parseThinking(tc)
		}
		if caps.Media == capabilities.MediaImage {
			out.Image = v.parseImage(gc, caps)
		}
	}

	if _, ok := base.FindTool(d, isSearchTool); ok {
		out.WebSearch = &controls.WebSearchControls{Enabled: true}
	}

	var priorCache *controls.ContextCacheControls
	if prior != nil {
		priorCache = prior.ContextCache
	}
	out.ContextCache = cache.Parse(v.family, caps, d, priorCache)

	return out, draft.Remainder(d, v.build(out, caps), true)
}

func isSearchTool(tool map[string]any) bool {
	_, snake := tool[ToolGoogleSearch]
	_, camel := tool[ToolGoogleSearchVertex]
	return snake || camel
}
