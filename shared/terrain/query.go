package terrain

import "math"

const (
	// surfaceEps is the contact tolerance for ground/ceiling/hazard tests.
	surfaceEps = 1e-3
	// wallEps shrinks span tops in lateral tests so a player standing on a
	// span is not blocked by the span it stands on.
	wallEps = 0.02
	// railHalfWidth is half the rail band width (0.22 of a tile) within which
	// fence-kind spans present a walkable/collidable strip along either axis.
	railHalfWidth = 0.11
)

// solidSpans returns the cell's non-decorative spans, served from the cache
// when it is current and from a direct store scan otherwise.
func (s *Store) solidSpans(gx, gz int) []Span {
	if cached, ok := s.cache.solidSpansAt(gx, gz); ok {
		return cached
	}
	if !s.InBounds(gx, gz) {
		return nil
	}
	var out []Span
	for _, sp := range s.spans[s.cellIndex(gx, gz)] {
		if sp.Valid() && !sp.Kind.Decorative() {
			out = append(out, sp)
		}
	}
	return out
}

// fenceSpans returns the cell's fence and badfence spans (direct scan; fence
// cells are rare enough that they are not cached).
func (s *Store) fenceSpans(gx, gz int) []Span {
	if !s.InBounds(gx, gz) {
		return nil
	}
	var out []Span
	for _, sp := range s.spans[s.cellIndex(gx, gz)] {
		if sp.Valid() && (sp.Kind == KindFence || sp.Kind == KindBadFence) {
			out = append(out, sp)
		}
	}
	return out
}

// inRailBand reports whether the world point falls within the thin centre
// strip of its cell along either grid axis. Rails run down the middle of a
// fence cell in both directions.
func (s *Store) inRailBand(x, z float64, gx, gz int) bool {
	fx := x + float64(s.w)/2 - float64(gx)
	fz := z + float64(s.h)/2 - float64(gz)
	return math.Abs(fx-0.5) <= railHalfWidth || math.Abs(fz-0.5) <= railHalfWidth
}

// GroundHeightAt returns the highest standable surface top at or just below y
// for the world point (x, z). Candidates are the legacy tile surface, solid
// span tops, and fence rail tops when the point lies in the rail band. When
// nothing qualifies at or below y the raw tile surface height is returned, so
// the query never fails.
func (s *Store) GroundHeightAt(x, z, y float64) float64 {
	gx := int(math.Floor(x + float64(s.w)/2))
	gz := int(math.Floor(z + float64(s.h)/2))

	tile := s.TileAt(gx, gz)
	best := math.Inf(-1)
	found := false

	consider := func(top float64) {
		if top <= y+surfaceEps && top > best {
			best = top
			found = true
		}
	}

	consider(tile.SurfaceHeight())
	for _, sp := range s.solidSpans(gx, gz) {
		consider(sp.Top())
	}
	if s.inRailBand(x, z, gx, gz) {
		for _, sp := range s.fenceSpans(gx, gz) {
			consider(sp.Top())
		}
		if tile == TileFence || tile == TileBadFence {
			consider(1.0)
		}
	}

	if !found {
		return tile.SurfaceHeight()
	}
	return best
}

// CeilingHeightAt returns the lowest overhead surface base strictly above y at
// (x, z): solid span undersides, plus rail undersides inside the rail band.
// Returns +Inf when nothing hangs overhead.
func (s *Store) CeilingHeightAt(x, z, y float64) float64 {
	gx := int(math.Floor(x + float64(s.w)/2))
	gz := int(math.Floor(z + float64(s.h)/2))

	best := math.Inf(1)
	consider := func(base float64) {
		if base > y+surfaceEps && base < best {
			best = base
		}
	}

	for _, sp := range s.solidSpans(gx, gz) {
		consider(sp.Base)
	}
	if s.inRailBand(x, z, gx, gz) {
		for _, sp := range s.fenceSpans(gx, gz) {
			consider(sp.Base)
		}
	}
	return best
}

// LandingHeightAt returns the nearest surface top strictly above y but within
// maxRise, the ledge a rising player could mantle onto. The boolean is false
// when no such surface exists.
func (s *Store) LandingHeightAt(x, z, y, maxRise float64) (float64, bool) {
	gx := int(math.Floor(x + float64(s.w)/2))
	gz := int(math.Floor(z + float64(s.h)/2))

	best := math.Inf(1)
	found := false
	consider := func(top float64) {
		if top > y+surfaceEps && top <= y+maxRise && top < best {
			best = top
			found = true
		}
	}

	consider(s.TileAt(gx, gz).SurfaceHeight())
	for _, sp := range s.solidSpans(gx, gz) {
		consider(sp.Top())
	}
	if s.inRailBand(x, z, gx, gz) {
		for _, sp := range s.fenceSpans(gx, gz) {
			consider(sp.Top())
		}
	}

	if !found {
		return 0, false
	}
	return best, true
}

// IsWallAt reports whether the world point is laterally blocked at height y.
// Out-of-bounds cells are always solid. A non-decorative span blocks while y
// lies inside it; the span top is shrunk by wallEps so standing on a span does
// not read as being inside it. Cells without spans fall back to the legacy
// tile: a full-height blocker stops the player unless the player is above its
// top.
func (s *Store) IsWallAt(x, z, y float64) bool {
	gx := int(math.Floor(x + float64(s.w)/2))
	gz := int(math.Floor(z + float64(s.h)/2))
	if !s.InBounds(gx, gz) {
		return true
	}

	spans := s.solidSpans(gx, gz)
	for _, sp := range spans {
		if y >= sp.Base-wallEps && y <= sp.Top()-wallEps {
			return true
		}
	}
	if len(spans) > 0 {
		return false
	}

	tile := s.TileAt(gx, gz)
	if tile.blocking() {
		return y < tile.SurfaceHeight()-wallEps
	}
	if tile == TileHalf {
		return y < tile.SurfaceHeight()-wallEps
	}
	return false
}

// HazardAt reports whether the surface contacted at the given height is
// hazardous at (x, z). This is the single hazard policy shared by the landing
// and ceiling paths: a Bad span whose top or base coincides with the contact
// height, a BadFence rail doing the same while the point is inside the rail
// band, or the legacy Bad/BadFence tiles at their synthesized heights.
func (s *Store) HazardAt(x, z, height float64) bool {
	gx := int(math.Floor(x + float64(s.w)/2))
	gz := int(math.Floor(z + float64(s.h)/2))
	if !s.InBounds(gx, gz) {
		return false
	}

	coincides := func(surface float64) bool {
		return math.Abs(surface-height) <= surfaceEps
	}

	for _, sp := range s.spans[s.cellIndex(gx, gz)] {
		if !sp.Valid() {
			continue
		}
		switch sp.Kind {
		case KindBad:
			if coincides(sp.Top()) || coincides(sp.Base) {
				return true
			}
		case KindBadFence:
			if s.inRailBand(x, z, gx, gz) && (coincides(sp.Top()) || coincides(sp.Base)) {
				return true
			}
		}
	}

	switch s.TileAt(gx, gz) {
	case TileBad:
		return coincides(0)
	case TileBadFence:
		return s.inRailBand(x, z, gx, gz) && coincides(1.0)
	}
	return false
}
