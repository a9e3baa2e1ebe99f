// Package capabilities answers, for a provider family and model identifier,
// which request dialect applies and which canonical features the model
// supports. Answers come from the embedded capability tables plus a few
// naming heuristics; anything not covered fails closed.
//
// The default registry is loaded once and never mutated, so every function
// here is safe for concurrent use.
package capabilities

import "github.com/agentstation/genctl/pkg/controls"

// WireShape is a provider request-body dialect.
type WireShape string

// Wire shapes.
const (
	WireOpenAIResponses  WireShape = "openai-responses"
	WireOpenAICompatible WireShape = "openai-compatible"
	WireAnthropic        WireShape = "anthropic"
	WireGemini           WireShape = "gemini"
)

// String returns the string representation of a wire shape.
func (w WireShape) String() string {
	return string(w)
}

func (w WireShape) valid() bool {
	switch w {
	case WireOpenAIResponses, WireOpenAICompatible, WireAnthropic, WireGemini:
		return true
	default:
		return false
	}
}

// MediaKind marks media-generation models.
type MediaKind string

// Media kinds. The zero value is a text model.
const (
	MediaNone  MediaKind = ""
	MediaImage MediaKind = "image"
	MediaVideo MediaKind = "video"
)

// Endpoint distinguishes Gemini models served by generateContent from those
// served by predict (Imagen, Veo), which take a flat parameters object.
type Endpoint string

// Endpoints.
const (
	EndpointGenerate Endpoint = ""
	EndpointPredict  Endpoint = "predict"
)

// Set is the capability set of one (family, model) pair.
type Set struct {
	Family    Family    `json:"family" yaml:"family"`
	ModelID   string    `json:"model_id" yaml:"model_id"`
	WireShape WireShape `json:"wire_shape" yaml:"wire_shape"`

	// ReasoningEfforts lists the effort levels the model accepts, in rank order.
	// Empty means effort cannot be controlled, even if reasoning is supported.
	ReasoningEfforts []controls.Effort `json:"reasoning_efforts,omitempty" yaml:"reasoning_efforts,omitempty"`

	SupportsReasoning        bool `json:"supports_reasoning" yaml:"supports_reasoning"`
	AdaptiveThinking         bool `json:"adaptive_thinking,omitempty" yaml:"adaptive_thinking,omitempty"`
	SupportsThinkingBudget   bool `json:"supports_thinking_budget,omitempty" yaml:"supports_thinking_budget,omitempty"`
	CanDisableReasoning      bool `json:"can_disable_reasoning,omitempty" yaml:"can_disable_reasoning,omitempty"`
	SupportsReasoningHistory bool `json:"supports_reasoning_history,omitempty" yaml:"supports_reasoning_history,omitempty"`

	SupportsWebSearch                 bool `json:"supports_web_search" yaml:"supports_web_search"`
	SupportsDynamicWebSearchFiltering bool `json:"supports_dynamic_web_search_filtering,omitempty" yaml:"supports_dynamic_web_search_filtering,omitempty"`
	SupportsContextCache              bool `json:"supports_context_cache" yaml:"supports_context_cache"`

	Media                      MediaKind `json:"media,omitempty" yaml:"media,omitempty"`
	Endpoint                   Endpoint  `json:"endpoint,omitempty" yaml:"endpoint,omitempty"`
	ImageSizes                 []string  `json:"image_sizes,omitempty" yaml:"image_sizes,omitempty"`
	SupportsImageOutputOptions bool      `json:"supports_image_output_options,omitempty" yaml:"supports_image_output_options,omitempty"`
}

// SupportsEffort reports whether e is one of the model's effort levels.
func (s Set) SupportsEffort(e controls.Effort) bool {
	return controls.ContainsEffort(s.ReasoningEfforts, e)
}

// SupportsImageSize reports whether the model accepts the given size tier.
func (s Set) SupportsImageSize(size string) bool {
	for _, v := range s.ImageSizes {
		if v == size {
			return true
		}
	}
	return false
}

// NormalizeEffort projects e onto the model's effort levels.
func (s Set) NormalizeEffort(e controls.Effort) controls.Effort {
	return NormalizeAgainst(e, s.ReasoningEfforts)
}

func (s Set) clone() Set {
	out := s
	out.ReasoningEfforts = append([]controls.Effort(nil), s.ReasoningEfforts...)
	out.ImageSizes = append([]string(nil), s.ImageSizes...)
	if len(out.ReasoningEfforts) == 0 {
		out.ReasoningEfforts = nil
	}
	if len(out.ImageSizes) == 0 {
		out.ImageSizes = nil
	}
	return out
}
