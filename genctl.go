// Package genctl keeps a provider-agnostic model configuration and the
// provider-native request draft in sync.
//
// MakeDraft projects GenerationControls onto the JSON parameters a provider
// expects for a given model. ApplyDraft goes the other way: it infers the
// controls from a possibly hand-edited draft and keeps everything it cannot
// interpret unambiguously in ProviderSpecific, so that
//
//	MakeDraft(f, m, c) after ApplyDraft(f, m, d, c)
//
// reproduces d. Both operations are total: unknown providers and models,
// malformed values and unrecognised keys never produce errors.
package genctl

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/genctl/internal/dialects"
	"github.com/agentstation/genctl/pkg/capabilities"
	"github.com/agentstation/genctl/pkg/controls"
	"github.com/agentstation/genctl/pkg/draft"
	"github.com/agentstation/genctl/pkg/logging"
)

// Engine converts between GenerationControls and provider drafts. An Engine
// is immutable after New and safe for concurrent use.
type Engine struct {
	cfg config
}

// New creates an Engine with the given options.
func New(opts ...Option) (*Engine, error) {
	e := &Engine{}
	if err := e.options(opts...); err != nil {
		return nil, err
	}
	return e, nil
}

var defaultEngine = sync.OnceValue(func() *Engine {
	return &Engine{}
})

// Default returns the engine used by the package-level functions.
func Default() *Engine {
	return defaultEngine()
}

func (e *Engine) registry() *capabilities.Registry {
	if e.cfg.registry != nil {
		return e.cfg.registry
	}
	return capabilities.Default()
}

func (e *Engine) logger() *zerolog.Logger {
	if e.cfg.logger != nil {
		return e.cfg.logger
	}
	return logging.Default()
}

// Capabilities resolves the capability set of a model.
func (e *Engine) Capabilities(family capabilities.Family, modelID string) capabilities.Set {
	return e.registry().Lookup(family, modelID)
}

// NormalizeEffort maps e onto the effort levels the model accepts.
func (e *Engine) NormalizeEffort(effort controls.Effort, family capabilities.Family, modelID string) controls.Effort {
	return e.registry().NormalizeEffort(effort, family, modelID)
}

// MakeDraft builds the provider-native draft for c. ProviderSpecific is
// merged over the built parameters using the family's merge policy and wins
// on conflict. For families without a dialect the draft is a copy of
// ProviderSpecific.
func (e *Engine) MakeDraft(family capabilities.Family, modelID string, c *controls.GenerationControls) draft.Draft {
	caps := e.Capabilities(family, modelID)
	log := e.logger().With().
		Str("provider", string(family)).
		Str("model_id", caps.ModelID).
		Str("wire_shape", caps.WireShape.String()).
		Logger()

	var extras draft.Draft
	if c != nil {
		extras = draft.Draft(c.ProviderSpecific)
	}

	dialect, ok := dialects.Lookup(family)
	if !ok {
		log.Debug().Msg("passthrough family, draft is provider_specific")
		return draft.PruneNulls(extras)
	}

	log.Debug().Msg("building draft")
	built := dialect.Build(c, caps)
	return mergeExtras(family, built, extras)
}

// ApplyDraft infers controls from d and writes them into c, replacing every
// typed field and setting ProviderSpecific to the keys the controls do not
// reproduce. The prior value of c is consulted only for settings the draft
// cannot express, such as a cache strategy. The remainder is returned; c
// may be nil when only the remainder is wanted.
//
// For families without a dialect the typed fields of c are left untouched
// and the whole pruned draft becomes ProviderSpecific.
func (e *Engine) ApplyDraft(family capabilities.Family, modelID string, d draft.Draft, c *controls.GenerationControls) draft.Draft {
	caps := e.Capabilities(family, modelID)
	log := e.logger().With().
		Str("provider", string(family)).
		Str("model_id", caps.ModelID).
		Str("wire_shape", caps.WireShape.String()).
		Logger()

	pruned := draft.PruneNulls(d)

	dialect, ok := dialects.Lookup(family)
	if !ok {
		log.Debug().Msg("passthrough family, draft kept as provider_specific")
		if c != nil {
			c.ProviderSpecific = remainderBag(pruned.Clone())
		}
		return pruned
	}

	applied, remainder := dialect.Apply(pruned, caps, c)
	for _, key := range remainder.Keys() {
		if remainder[key] == nil {
			log.Debug().Str("key", key).Str("reason", "absent_from_draft").Msg("suppressing rebuilt key")
			continue
		}
		log.Debug().Str("key", key).Str("reason", "ambiguous_promotion").Msg("retained in provider_specific")
	}

	applied.ProviderSpecific = remainderBag(remainder)
	if c != nil {
		*c = *applied
	}
	return remainder
}

// ApplyDraftJSON parses data and applies it like ApplyDraft. Only parse
// errors are returned.
func (e *Engine) ApplyDraftJSON(family capabilities.Family, modelID string, data []byte, c *controls.GenerationControls) (draft.Draft, error) {
	d, err := draft.Parse(data)
	if err != nil {
		return nil, err
	}
	return e.ApplyDraft(family, modelID, d, c), nil
}

func remainderBag(d draft.Draft) map[string]any {
	if len(d) == 0 {
		return nil
	}
	return d
}

// Capabilities resolves a model with the default engine.
func Capabilities(family capabilities.Family, modelID string) capabilities.Set {
	return Default().Capabilities(family, modelID)
}

// MakeDraft builds a draft with the default engine.
func MakeDraft(family capabilities.Family, modelID string, c *controls.GenerationControls) draft.Draft {
	return Default().MakeDraft(family, modelID, c)
}

// ApplyDraft applies a draft with the default engine.
func ApplyDraft(family capabilities.Family, modelID string, d draft.Draft, c *controls.GenerationControls) draft.Draft {
	return Default().ApplyDraft(family, modelID, d, c)
}

// ApplyDraftJSON parses and applies a draft with the default engine.
func ApplyDraftJSON(family capabilities.Family, modelID string, data []byte, c *controls.GenerationControls) (draft.Draft, error) {
	return Default().ApplyDraftJSON(family, modelID, data, c)
}
