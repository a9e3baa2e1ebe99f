// Package base holds the pieces shared by the per-family dialects: sampling
// parameters, effort vocabularies, tool lookup and location objects.
package base

import (
	"github.com/agentstation/genctl/internal/utils/ptr"
	"github.com/agentstation/genctl/pkg/capabilities"
	"github.com/agentstation/genctl/pkg/controls"
	"github.com/agentstation/genctl/pkg/draft"
)

// Sampling names the wire keys of the scalar sampling parameters. An empty
// name means the family has no such parameter.
type Sampling struct {
	Temperature string
	TopP        string
	MaxTokens   string
	Seed        string
}

// Build writes the set sampling parameters of c into m.
func (s Sampling) Build(m map[string]any, c *controls.GenerationControls) {
	if s.Temperature != "" && c.Temperature != nil {
		m[s.Temperature] = *c.Temperature
	}
	if s.TopP != "" && c.TopP != nil {
		m[s.TopP] = *c.TopP
	}
	if s.MaxTokens != "" && c.MaxTokens != nil {
		m[s.MaxTokens] = *c.MaxTokens
	}
	if s.Seed != "" && c.Seed != nil {
		m[s.Seed] = *c.Seed
	}
}

// Apply reads the sampling parameters from m into out. Values that cannot be
// coerced leave the field unset.
func (s Sampling) Apply(m map[string]any, out *controls.GenerationControls) {
	if f, ok := floatAt(m, s.Temperature); ok {
		out.Temperature = ptr.Float64(f)
	}
	if f, ok := floatAt(m, s.TopP); ok {
		out.TopP = ptr.Float64(f)
	}
	if n, ok := intAt(m, s.MaxTokens); ok && n >= 0 {
		out.MaxTokens = ptr.Int(n)
	}
	if n, ok := intAt(m, s.Seed); ok {
		out.Seed = ptr.Int(n)
	}
}

func floatAt(m map[string]any, key string) (float64, bool) {
	if key == "" {
		return 0, false
	}
	v, ok := m[key]
	if !ok {
		return 0, false
	}
	return draft.Float(v)
}

func intAt(m map[string]any, key string) (int, bool) {
	if key == "" {
		return 0, false
	}
	v, ok := m[key]
	if !ok {
		return 0, false
	}
	return draft.Int(v)
}

// Effort projects e onto the model's levels and reports whether the result
// is one the model accepts.
func Effort(caps capabilities.Set, e controls.Effort) (controls.Effort, bool) {
	if e == "" {
		return "", false
	}
	n := caps.NormalizeEffort(e)
	return n, caps.SupportsEffort(n)
}

// OpenAIEffort maps a normalized effort to the OpenAI-style vocabulary.
// Families whose wire lacks "xhigh" pass clampXHigh.
func OpenAIEffort(e controls.Effort, clampXHigh bool) string {
	switch e {
	case controls.EffortMinimal, controls.EffortLow:
		return "low"
	case controls.EffortXHigh:
		if clampXHigh {
			return "high"
		}
		return "xhigh"
	default:
		return string(e)
	}
}

// ParseEffort reads an effort literal. The empty string and unknown
// literals fail.
func ParseEffort(v any) (controls.Effort, bool) {
	s, ok := draft.String(v)
	if !ok {
		return "", false
	}
	return controls.ParseEffort(s)
}

// Disabled is the canonical form of an explicit "reasoning off" value.
func Disabled() *controls.ReasoningControls {
	return &controls.ReasoningControls{Enabled: false, Effort: controls.EffortNone}
}

// ParseSummary reads a reasoning summary literal.
func ParseSummary(v any) (controls.Summary, bool) {
	s, ok := draft.String(v)
	if !ok {
		return "", false
	}
	switch sum := controls.Summary(s); sum {
	case controls.SummaryAuto, controls.SummaryConcise, controls.SummaryDetailed:
		return sum, true
	default:
		return "", false
	}
}

// ParseHistory reads a reasoning history literal.
func ParseHistory(v any) (controls.History, bool) {
	s, ok := draft.String(v)
	if !ok {
		return "", false
	}
	switch h := controls.History(s); h {
	case controls.HistoryDisabled, controls.HistoryInterleaved, controls.HistoryPreserved:
		return h, true
	default:
		return "", false
	}
}

// ParseContextSize reads a search context size literal.
func ParseContextSize(v any) (controls.SearchContextSize, bool) {
	s, ok := draft.String(v)
	if !ok {
		return "", false
	}
	switch size := controls.SearchContextSize(s); size {
	case controls.SearchContextLow, controls.SearchContextMedium, controls.SearchContextHigh:
		return size, true
	default:
		return "", false
	}
}

// StringList converts s to a JSON array.
func StringList(s []string) []any {
	out := make([]any, len(s))
	for i, v := range s {
		out[i] = v
	}
	return out
}

// ToolType returns the "type" marker of a tool entry.
func ToolType(tool map[string]any) string {
	s, _ := draft.String(tool["type"])
	return s
}

// FindTool returns the first object in the "tools" array of m for which
// match is true.
func FindTool(m map[string]any, match func(tool map[string]any) bool) (map[string]any, bool) {
	tools, ok := draft.Array(m["tools"])
	if !ok {
		return nil, false
	}
	for _, t := range tools {
		obj, ok := draft.Object(t)
		if ok && match(obj) {
			return obj, true
		}
	}
	return nil, false
}

// ToolOfType matches tool entries by their type marker.
func ToolOfType(types ...string) func(map[string]any) bool {
	return func(tool map[string]any) bool {
		t := ToolType(tool)
		for _, want := range types {
			if t == want {
				return true
			}
		}
		return false
	}
}

// LocationOptions selects the shape of a user location object.
type LocationOptions struct {
	Approximate bool // add type: "approximate"
	Timezone    bool // include the timezone
}

// Location renders loc, or returns nil when it has no set field.
func Location(loc *controls.UserLocation, opts LocationOptions) map[string]any {
	if loc == nil {
		return nil
	}
	out := map[string]any{}
	put := func(k, v string) {
		if v != "" {
			out[k] = v
		}
	}
	put("city", loc.City)
	put("region", loc.Region)
	put("country", loc.Country)
	if opts.Timezone {
		put("timezone", loc.Timezone)
	}
	if len(out) == 0 {
		return nil
	}
	if opts.Approximate {
		out["type"] = "approximate"
	}
	return out
}

// ParseLocation reads a user location object. Unknown members are ignored.
func ParseLocation(v any) *controls.UserLocation {
	obj, ok := draft.Object(v)
	if !ok {
		return nil
	}
	get := func(k string) string {
		s, _ := draft.String(obj[k])
		return s
	}
	loc := &controls.UserLocation{
		City:     get("city"),
		Region:   get("region"),
		Country:  get("country"),
		Timezone: get("timezone"),
	}
	if *loc == (controls.UserLocation{}) {
		return nil
	}
	return loc
}
