package capabilities

import "github.com/agentstation/genctl/pkg/controls"

// NormalizeAgainst maps a requested effort onto the supported levels.
//
//   - none always stays none; it means "reasoning off", not a level to approximate.
//   - a supported level is returned unchanged.
//   - otherwise the supported level closest in rank wins, ties going to the
//     higher level, and none is never chosen as an approximation.
//   - an empty supported set, or an empty or unknown request, returns e unchanged.
func NormalizeAgainst(e controls.Effort, supported []controls.Effort) controls.Effort {
	if e == controls.EffortNone || !e.Valid() || len(supported) == 0 {
		return e
	}
	if controls.ContainsEffort(supported, e) {
		return e
	}

	best := controls.Effort("")
	bestDist := -1
	for _, s := range supported {
		if !s.Valid() || s == controls.EffortNone {
			continue
		}
		dist := s.Rank() - e.Rank()
		if dist < 0 {
			dist = -dist
		}
		if bestDist < 0 || dist < bestDist || (dist == bestDist && s.Rank() > best.Rank()) {
			best, bestDist = s, dist
		}
	}
	if best == "" {
		return e
	}
	return best
}

// NormalizeEffort maps e onto the levels supported by the model.
func (r *Registry) NormalizeEffort(e controls.Effort, family Family, modelID string) controls.Effort {
	return NormalizeAgainst(e, r.SupportedReasoningEfforts(family, modelID))
}

// NormalizeEffort maps e onto the levels supported by the model, using the
// default registry.
func NormalizeEffort(e controls.Effort, family Family, modelID string) controls.Effort {
	return Default().NormalizeEffort(e, family, modelID)
}
