package controls

import "strings"

// Effort is the provider-agnostic reasoning effort level.
type Effort string

// Effort levels in ascending order.
const (
	EffortNone    Effort = "none"
	EffortMinimal Effort = "minimal"
	EffortLow     Effort = "low"
	EffortMedium  Effort = "medium"
	EffortHigh    Effort = "high"
	EffortXHigh   Effort = "xhigh"
)

var effortRanks = map[Effort]int{
	EffortNone:    0,
	EffortMinimal: 1,
	EffortLow:     2,
	EffortMedium:  3,
	EffortHigh:    4,
	EffortXHigh:   5,
}

// Efforts returns every effort level ordered by rank.
func Efforts() []Effort {
	return []Effort{EffortNone, EffortMinimal, EffortLow, EffortMedium, EffortHigh, EffortXHigh}
}

// String returns the string representation of an effort level.
func (e Effort) String() string {
	return string(e)
}

// Rank returns the ordinal of e (none=0 through xhigh=5), or -1 when e is
// empty or not a known level.
func (e Effort) Rank() int {
	if r, ok := effortRanks[e]; ok {
		return r
	}
	return -1
}

// Valid reports whether e is one of the six known levels.
func (e Effort) Valid() bool {
	return e.Rank() >= 0
}

// ParseEffort parses a case-insensitive effort name. "x-high" and
// "extra-high" are accepted for xhigh.
func ParseEffort(s string) (Effort, bool) {
	e := Effort(strings.ToLower(strings.TrimSpace(s)))
	switch e {
	case "x-high", "extra-high", "extra_high":
		e = EffortXHigh
	}
	if !e.Valid() {
		return "", false
	}
	return e, true
}

// ContainsEffort reports whether e is in set.
func ContainsEffort(set []Effort, e Effort) bool {
	for _, s := range set {
		if s == e {
			return true
		}
	}
	return false
}
