package capabilities

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/genctl/internal/embedded"
	"github.com/agentstation/genctl/internal/matcher"
	"github.com/agentstation/genctl/pkg/controls"
	"github.com/agentstation/genctl/pkg/errors"
)

// Registry resolves capability sets from parsed capability tables.
// It is immutable once built.
type Registry struct {
	tables map[Family]*table
}

type table struct {
	family    Family
	wireShape WireShape
	rules     []rule
}

type rule struct {
	matchers []matcher.Matcher
	set      Set
}

// tableDoc is one YAML capability table.
type tableDoc struct {
	Family    string    `yaml:"family"`
	WireShape string    `yaml:"wire_shape"`
	Extends   string    `yaml:"extends"`
	Defaults  ruleDoc   `yaml:"defaults"`
	Models    []ruleDoc `yaml:"models"`
}

// ruleDoc is one model rule. Unset flags fall back to the table defaults.
// Efforts and image sizes are never inherited.
type ruleDoc struct {
	Match              []string `yaml:"match"`
	Reasoning          *bool    `yaml:"reasoning"`
	Efforts            []string `yaml:"efforts"`
	Adaptive           *bool    `yaml:"adaptive"`
	Budget             *bool    `yaml:"budget"`
	Disable            *bool    `yaml:"disable"`
	History            *bool    `yaml:"history"`
	WebSearch          *bool    `yaml:"web_search"`
	DynamicFiltering   *bool    `yaml:"dynamic_filtering"`
	ContextCache       *bool    `yaml:"context_cache"`
	Media              string   `yaml:"media"`
	Endpoint           string   `yaml:"endpoint"`
	ImageSizes         []string `yaml:"image_sizes"`
	ImageOutputOptions *bool    `yaml:"image_output_options"`
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the registry built from the embedded capability tables.
// The tables ship with the binary, so a load failure is a programming error
// and panics.
func Default() *Registry {
	defaultOnce.Do(func() {
		r, err := LoadRegistry(embedded.Capabilities())
		if err != nil {
			panic(fmt.Sprintf("capabilities: embedded tables: %v", err))
		}
		defaultRegistry = r
	})
	return defaultRegistry
}

// LoadRegistry parses every *.yaml file at the root of fsys.
func LoadRegistry(fsys fs.FS) (*Registry, error) {
	names, err := fs.Glob(fsys, "*.yaml")
	if err != nil {
		return nil, errors.WrapIO("glob", "*.yaml", err)
	}
	sort.Strings(names)

	docs := make([]tableDoc, 0, len(names))
	for _, name := range names {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, errors.WrapIO("read", name, err)
		}
		doc, err := decodeTable(path.Base(name), data)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return build(docs)
}

// ParseRegistry builds a registry from raw YAML tables.
func ParseRegistry(tables ...[]byte) (*Registry, error) {
	docs := make([]tableDoc, 0, len(tables))
	for i, data := range tables {
		doc, err := decodeTable(fmt.Sprintf("table[%d]", i), data)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return build(docs)
}

func decodeTable(name string, data []byte) (tableDoc, error) {
	var doc tableDoc
	if err := yaml.UnmarshalWithOptions(data, &doc, yaml.Strict(), yaml.DisallowUnknownField()); err != nil {
		return doc, errors.NewParseError("yaml", name, yaml.FormatError(err, false, false), err)
	}
	return doc, nil
}

func build(docs []tableDoc) (*Registry, error) {
	byFamily := make(map[Family]tableDoc, len(docs))
	for _, doc := range docs {
		f, err := ParseFamily(doc.Family)
		if err != nil {
			return nil, errors.NewConfigError("capabilities", "unknown family in table", err)
		}
		if _, dup := byFamily[f]; dup {
			return nil, errors.NewConfigError("capabilities", fmt.Sprintf("duplicate table for %s", f), nil)
		}
		byFamily[f] = doc
	}

	r := &Registry{tables: make(map[Family]*table, len(byFamily))}
	for f, doc := range byFamily {
		defaults := doc.Defaults
		models := doc.Models
		if doc.Extends != "" {
			base, ok := byFamily[FamilyOf(doc.Extends)]
			if !ok || base.Extends != "" {
				return nil, errors.NewConfigError("capabilities", fmt.Sprintf("%s extends unknown or derived table %q", f, doc.Extends), nil)
			}
			defaults = overlay(base.Defaults, doc.Defaults)
			models = append(append([]ruleDoc{}, doc.Models...), base.Models...)
		}

		t := &table{family: f, wireShape: f.DefaultWireShape()}
		if doc.WireShape != "" {
			t.wireShape = WireShape(doc.WireShape)
			if !t.wireShape.valid() {
				return nil, errors.NewConfigError("capabilities", fmt.Sprintf("%s: unknown wire shape %q", f, doc.WireShape), nil)
			}
		}

		for i, rd := range models {
			ru, err := compileRule(rd, defaults)
			if err != nil {
				return nil, errors.NewConfigError("capabilities", fmt.Sprintf("%s rule %d", f, i), err)
			}
			t.rules = append(t.rules, ru)
		}
		r.tables[f] = t
	}
	return r, nil
}

func overlay(base, top ruleDoc) ruleDoc {
	out := base
	pick := func(dst **bool, v *bool) {
		if v != nil {
			*dst = v
		}
	}
	pick(&out.Reasoning, top.Reasoning)
	pick(&out.Adaptive, top.Adaptive)
	pick(&out.Budget, top.Budget)
	pick(&out.Disable, top.Disable)
	pick(&out.History, top.History)
	pick(&out.WebSearch, top.WebSearch)
	pick(&out.DynamicFiltering, top.DynamicFiltering)
	pick(&out.ContextCache, top.ContextCache)
	pick(&out.ImageOutputOptions, top.ImageOutputOptions)
	if top.Media != "" {
		out.Media = top.Media
	}
	if top.Endpoint != "" {
		out.Endpoint = top.Endpoint
	}
	return out
}

func compileRule(rd ruleDoc, defaults ruleDoc) (rule, error) {
	if len(rd.Match) == 0 {
		return rule{}, errors.New("rule has no match patterns")
	}
	var ru rule
	for _, p := range rd.Match {
		m, err := matcher.New(matcher.Auto, p)
		if err != nil {
			return rule{}, err
		}
		ru.matchers = append(ru.matchers, m)
	}

	merged := overlay(defaults, rd)
	flag := func(v *bool) bool { return v != nil && *v }

	s := Set{
		AdaptiveThinking:                  flag(merged.Adaptive),
		SupportsThinkingBudget:            flag(merged.Budget),
		CanDisableReasoning:               flag(merged.Disable),
		SupportsReasoningHistory:          flag(merged.History),
		SupportsWebSearch:                 flag(merged.WebSearch),
		SupportsDynamicWebSearchFiltering: flag(merged.DynamicFiltering),
		SupportsContextCache:              flag(merged.ContextCache),
		Media:                             MediaKind(merged.Media),
		Endpoint:                          Endpoint(merged.Endpoint),
		ImageSizes:                        append([]string(nil), rd.ImageSizes...),
	}
	for _, name := range rd.Efforts {
		e, ok := controls.ParseEffort(name)
		if !ok {
			return rule{}, fmt.Errorf("unknown effort %q", name)
		}
		s.ReasoningEfforts = append(s.ReasoningEfforts, e)
	}
	sort.SliceStable(s.ReasoningEfforts, func(i, j int) bool {
		return s.ReasoningEfforts[i].Rank() < s.ReasoningEfforts[j].Rank()
	})

	s.SupportsReasoning = len(s.ReasoningEfforts) > 0 || s.AdaptiveThinking || s.SupportsThinkingBudget || s.CanDisableReasoning
	if merged.Reasoning != nil {
		s.SupportsReasoning = *merged.Reasoning
	}

	switch s.Media {
	case MediaNone, MediaImage, MediaVideo:
	default:
		return rule{}, fmt.Errorf("unknown media kind %q", s.Media)
	}
	switch s.Endpoint {
	case EndpointGenerate, EndpointPredict:
	default:
		return rule{}, fmt.Errorf("unknown endpoint %q", s.Endpoint)
	}
	if s.Media != MediaImage || s.Endpoint == EndpointPredict {
		s.SupportsImageOutputOptions = false
	} else {
		s.SupportsImageOutputOptions = flag(merged.ImageOutputOptions)
	}

	ru.set = s
	return ru, nil
}

// modelPrefixes are routing prefixes stripped before matching.
var modelPrefixes = []string{
	"publishers/google/models/",
	"accounts/fireworks/models/",
	"models/",
}

// NormalizeModelID lowercases id and strips routing prefixes, including a
// leading "<family>/".
func NormalizeModelID(family Family, id string) string {
	id = strings.ToLower(strings.TrimSpace(id))
	if family != "" {
		id = strings.TrimPrefix(id, string(family)+"/")
	}
	for _, p := range modelPrefixes {
		if i := strings.Index(id, p); i >= 0 {
			id = id[i+len(p):]
		}
	}
	return id
}

// isMediaModel recognizes image and video generation models by name.
func isMediaModel(id string) (MediaKind, bool) {
	switch {
	case strings.Contains(id, "veo"):
		return MediaVideo, true
	case strings.Contains(id, "-image"), strings.Contains(id, "imagen"):
		return MediaImage, true
	default:
		return MediaNone, false
	}
}

// Lookup returns the capability set for a family and model. Unknown families
// and models fail closed: only the wire shape is filled in.
func (r *Registry) Lookup(family Family, modelID string) Set {
	id := NormalizeModelID(family, modelID)
	s := Set{WireShape: family.DefaultWireShape()}

	if t, ok := r.tables[family]; ok {
		s.WireShape = t.wireShape
		for _, ru := range t.rules {
			if matcher.Any(ru.matchers, id) {
				s = ru.set.clone()
				s.WireShape = t.wireShape
				break
			}
		}
	}

	if kind, ok := isMediaModel(id); ok {
		s.SupportsWebSearch = false
		s.SupportsDynamicWebSearchFiltering = false
		s.SupportsContextCache = false
		s.SupportsReasoning = false
		s.ReasoningEfforts = nil
		s.AdaptiveThinking = false
		s.SupportsThinkingBudget = false
		s.CanDisableReasoning = false
		s.SupportsReasoningHistory = false
		if s.Media == MediaNone {
			s.Media = kind
		}
	}

	s.Family = family
	s.ModelID = id
	return s
}

// Families returns the families that have a capability table.
func (r *Registry) Families() []Family {
	out := make([]Family, 0, len(r.tables))
	for _, f := range families {
		if _, ok := r.tables[f]; ok {
			out = append(out, f)
		}
	}
	return out
}

// WireShape returns the request dialect for a family and model.
func (r *Registry) WireShape(family Family, modelID string) WireShape {
	return r.Lookup(family, modelID).WireShape
}

// SupportedReasoningEfforts returns the model's effort levels in rank order.
func (r *Registry) SupportedReasoningEfforts(family Family, modelID string) []controls.Effort {
	return r.Lookup(family, modelID).ReasoningEfforts
}

// SupportsWebSearch reports whether the model has a built-in web search tool.
func (r *Registry) SupportsWebSearch(family Family, modelID string) bool {
	return r.Lookup(family, modelID).SupportsWebSearch
}

// SupportsDynamicFiltering reports whether web search results can be filtered dynamically.
func (r *Registry) SupportsDynamicFiltering(family Family, modelID string) bool {
	return r.Lookup(family, modelID).SupportsDynamicWebSearchFiltering
}

// SupportsContextCache reports whether the model takes envelope-level cache fields.
func (r *Registry) SupportsContextCache(family Family, modelID string) bool {
	return r.Lookup(family, modelID).SupportsContextCache
}

// Lookup returns the capability set from the default registry.
func Lookup(family Family, modelID string) Set {
	return Default().Lookup(family, modelID)
}

// WireShapeOf returns the request dialect from the default registry.
func WireShapeOf(family Family, modelID string) WireShape {
	return Default().WireShape(family, modelID)
}

// SupportedReasoningEfforts returns the model's effort levels from the default registry.
func SupportedReasoningEfforts(family Family, modelID string) []controls.Effort {
	return Default().SupportedReasoningEfforts(family, modelID)
}

// SupportsWebSearch consults the default registry.
func SupportsWebSearch(family Family, modelID string) bool {
	return Default().SupportsWebSearch(family, modelID)
}

// SupportsDynamicFiltering consults the default registry.
func SupportsDynamicFiltering(family Family, modelID string) bool {
	return Default().SupportsDynamicFiltering(family, modelID)
}

// SupportsContextCache consults the default registry.
func SupportsContextCache(family Family, modelID string) bool {
	return Default().SupportsContextCache(family, modelID)
}
