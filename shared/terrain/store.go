package terrain

import "math"

// Store is the authoritative terrain data for one level: a dense legacy tile
// grid, sparse per-cell span lists, and the portal destination map. Cells are
// addressed by integer ids (gz*W+gx) to keep the hot lookup paths off string
// keys. The store has a single writer context: edits happen between simulation
// steps, never mid-step.
type Store struct {
	w, h    int
	tiles   []Tile
	spans   map[int][]Span
	portals map[int]string

	rev   uint64 // bumped on every mutation; the cache compares against it
	cache *SpanCache
}

// NewStore creates an empty store of the given cell dimensions.
func NewStore(w, h int) *Store {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	s := &Store{
		w:       w,
		h:       h,
		tiles:   make([]Tile, w*h),
		spans:   make(map[int][]Span),
		portals: make(map[int]string),
	}
	s.cache = newSpanCache(s)
	return s
}

// Size returns the map dimensions in cells.
func (s *Store) Size() (w, h int) {
	return s.w, s.h
}

// InBounds reports whether the cell coordinate lies on the map.
func (s *Store) InBounds(gx, gz int) bool {
	return gx >= 0 && gx < s.w && gz >= 0 && gz < s.h
}

// CellAt derives the cell coordinate for a world position. The grid is
// centered on the world origin, so world (0,0) falls in the middle of the map.
func (s *Store) CellAt(x, z float64) (gx, gz int, ok bool) {
	gx = int(math.Floor(x + float64(s.w)/2))
	gz = int(math.Floor(z + float64(s.h)/2))
	return gx, gz, s.InBounds(gx, gz)
}

// CellCenter returns the world position of a cell's centre.
func (s *Store) CellCenter(gx, gz int) (x, z float64) {
	return float64(gx) - float64(s.w)/2 + 0.5, float64(gz) - float64(s.h)/2 + 0.5
}

func (s *Store) cellIndex(gx, gz int) int {
	return gz*s.w + gx
}

// TileAt returns the legacy tile for a cell; out of bounds reads as TileWall
// so the map edge is always solid.
func (s *Store) TileAt(gx, gz int) Tile {
	if !s.InBounds(gx, gz) {
		return TileWall
	}
	return s.tiles[s.cellIndex(gx, gz)]
}

// SetTile writes a legacy tile and invalidates the derived cache.
func (s *Store) SetTile(gx, gz int, t Tile) {
	if !s.InBounds(gx, gz) {
		return
	}
	s.tiles[s.cellIndex(gx, gz)] = t
	s.rev++
}

// Spans returns a defensive copy of the cell's span list, nil when the cell is
// out of bounds or has no spans.
func (s *Store) Spans(gx, gz int) []Span {
	if !s.InBounds(gx, gz) {
		return nil
	}
	stored := s.spans[s.cellIndex(gx, gz)]
	if len(stored) == 0 {
		return nil
	}
	out := make([]Span, len(stored))
	copy(out, stored)
	return out
}

// SetSpans normalizes and stores a cell's span list, replacing any previous
// list. An empty normalized list deletes the entry. Invalidates the cache.
func (s *Store) SetSpans(gx, gz int, spans []Span) {
	if !s.InBounds(gx, gz) {
		return
	}
	idx := s.cellIndex(gx, gz)
	normalized := Normalize(spans)
	if len(normalized) == 0 {
		delete(s.spans, idx)
	} else {
		s.spans[idx] = normalized
	}
	s.rev++
}

// PortalDest returns the destination level registered for a cell, if any.
func (s *Store) PortalDest(gx, gz int) (string, bool) {
	if !s.InBounds(gx, gz) {
		return "", false
	}
	dest, ok := s.portals[s.cellIndex(gx, gz)]
	return dest, ok
}

// SetPortalDest registers (or, with an empty name, removes) the destination
// level for a cell.
func (s *Store) SetPortalDest(gx, gz int, dest string) {
	if !s.InBounds(gx, gz) {
		return
	}
	idx := s.cellIndex(gx, gz)
	if dest == "" {
		delete(s.portals, idx)
	} else {
		s.portals[idx] = dest
	}
	s.rev++
}

// Cache returns the derived span cache. The cache may be stale; queries check
// its version and fall back to direct span scans when it is.
func (s *Store) Cache() *SpanCache {
	return s.cache
}

// RebuildCache re-derives the span cache in one pass over all stored spans.
// Must be called after any batch of edits and on level switch.
func (s *Store) RebuildCache() {
	s.cache.rebuild()
}
