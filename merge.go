package genctl

import (
	"github.com/agentstation/genctl/pkg/capabilities"
	"github.com/agentstation/genctl/pkg/draft"
)

// mergePolicy selects how ProviderSpecific is layered over a built draft.
type mergePolicy int

const (
	// mergeFlat replaces top-level keys.
	mergeFlat mergePolicy = iota
	// mergeDeep merges nested objects key by key.
	mergeDeep
	// mergeAnthropic is flat except for output_config, whose keys are merged
	// so that a passthrough format sits beside the built effort.
	mergeAnthropic
)

var mergePolicies = map[capabilities.Family]mergePolicy{
	capabilities.FamilyGemini:     mergeDeep,
	capabilities.FamilyVertex:     mergeDeep,
	capabilities.FamilyPerplexity: mergeDeep,
	capabilities.FamilyAnthropic:  mergeAnthropic,
}

func policyFor(family capabilities.Family) mergePolicy {
	return mergePolicies[family]
}

// Anthropic structured output keys.
const (
	keyOutputConfig = "output_config"
	keyOutputFormat = "output_format"
	keyFormat       = "format"
)

// mergeExtras layers extras over built. Both inputs are left untouched.
func mergeExtras(family capabilities.Family, built, extras draft.Draft) draft.Draft {
	if len(extras) == 0 {
		return built
	}
	switch policyFor(family) {
	case mergeDeep:
		return draft.MergeDeep(built, extras)
	case mergeAnthropic:
		return mergeAnthropicExtras(built, extras)
	default:
		return draft.MergeFlat(built, extras)
	}
}

// mergeAnthropicExtras folds the legacy top-level output_format into
// output_config.format and merges output_config by key. An explicit
// output_config.format wins over output_format.
func mergeAnthropicExtras(built, extras draft.Draft) draft.Draft {
	extras = extras.Clone()

	if format, ok := extras[keyOutputFormat]; ok {
		delete(extras, keyOutputFormat)
		if format != nil {
			oc, _ := draft.Object(extras[keyOutputConfig])
			if oc == nil {
				oc = map[string]any{}
			}
			if _, set := oc[keyFormat]; !set {
				oc[keyFormat] = format
			}
			extras[keyOutputConfig] = oc
		}
	}

	extraConfig, hasConfig := extras[keyOutputConfig]
	delete(extras, keyOutputConfig)
	out := draft.MergeFlat(built, extras)
	if !hasConfig {
		return out
	}

	overlay, ok := draft.Object(extraConfig)
	if !ok {
		// null deletes; any other value replaces
		if extraConfig == nil {
			delete(out, keyOutputConfig)
		} else {
			out[keyOutputConfig] = draft.CloneValue(extraConfig)
		}
		return out
	}

	merged, _ := draft.Object(draft.CloneValue(out[keyOutputConfig]))
	if merged == nil {
		merged = map[string]any{}
	}
	for k, v := range overlay {
		if v == nil {
			delete(merged, k)
			continue
		}
		merged[k] = draft.CloneValue(v)
	}
	if len(merged) == 0 {
		delete(out, keyOutputConfig)
	} else {
		out[keyOutputConfig] = merged
	}
	return out
}
