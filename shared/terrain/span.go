// Package terrain holds the per-cell column span data for a level, a derived
// acceleration cache over it, and the collision queries the simulation runs
// against both. It is pure data + geometry and safe to share between the
// dedicated server and any future client-side prediction.
package terrain

import (
	"math"
	"sort"
)

// Kind classifies the material of a column span.
type Kind int

const (
	KindSolid Kind = iota
	KindBad        // hazardous solid; landing or bonking on it is lethal
	KindFence
	KindBadFence
	KindPortal
	KindLock
	KindOther
)

// String returns the level-file name of the kind.
func (k Kind) String() string {
	switch k {
	case KindSolid:
		return "solid"
	case KindBad:
		return "bad"
	case KindFence:
		return "fence"
	case KindBadFence:
		return "badfence"
	case KindPortal:
		return "portal"
	case KindLock:
		return "lock"
	default:
		return "other"
	}
}

// KindFromString parses a level-file kind name. Unknown names map to KindOther.
func KindFromString(s string) Kind {
	switch s {
	case "solid", "":
		return KindSolid
	case "bad":
		return KindBad
	case "fence":
		return KindFence
	case "badfence":
		return KindBadFence
	case "portal":
		return KindPortal
	case "lock":
		return KindLock
	default:
		return KindOther
	}
}

// Decorative reports whether spans of this kind never block or support the
// player directly. Fence kinds still contribute their narrow rail surfaces.
func (k Kind) Decorative() bool {
	switch k {
	case KindFence, KindBadFence, KindPortal, KindLock:
		return true
	}
	return false
}

// Span is a vertical interval [Base, Base+Height) within one grid cell.
// Multiple spans may coexist and stack within a cell.
type Span struct {
	Base   float64
	Height float64
	Kind   Kind
}

// Top returns the upper boundary of the span.
func (s Span) Top() float64 {
	return s.Base + s.Height
}

// Valid reports whether the span has positive height and finite bounds.
func (s Span) Valid() bool {
	if s.Height <= 0 {
		return false
	}
	if math.IsNaN(s.Base) || math.IsInf(s.Base, 0) {
		return false
	}
	if math.IsNaN(s.Height) || math.IsInf(s.Height, 0) {
		return false
	}
	return true
}

// Normalize returns a cleaned copy of spans: invalid entries dropped, the rest
// sorted by base (kind breaks ties), and same-kind spans that touch or overlap
// merged into one. Normalize(Normalize(s)) == Normalize(s).
func Normalize(spans []Span) []Span {
	out := make([]Span, 0, len(spans))
	for _, s := range spans {
		if s.Valid() {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Base != out[j].Base {
			return out[i].Base < out[j].Base
		}
		return out[i].Kind < out[j].Kind
	})

	merged := out[:0]
	for _, s := range out {
		if n := len(merged); n > 0 {
			last := &merged[n-1]
			if last.Kind == s.Kind && s.Base <= last.Top() {
				if s.Top() > last.Top() {
					last.Height = s.Top() - last.Base
				}
				continue
			}
		}
		merged = append(merged, s)
	}
	return merged
}
