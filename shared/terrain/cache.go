package terrain

// LockRange is the derived vertical extent of a cell's lock spans. The camera
// and control layers consume it; lock spans never block or support the player.
type LockRange struct {
	Min, Max float64
	Count    int
}

// SpanCache is a rebuildable index derived from a Store: per-cell lock ranges
// and per-cell span lists filtered down to the kinds that can block or support.
// It is rebuilt wholesale, never patched; a version counter lets consumers
// detect staleness and fall back to direct store scans.
type SpanCache struct {
	store    *Store
	version  uint64
	builtRev uint64

	locks map[int]LockRange
	solid map[int][]Span
}

func newSpanCache(s *Store) *SpanCache {
	return &SpanCache{
		store: s,
		locks: make(map[int]LockRange),
		solid: make(map[int][]Span),
	}
}

// Version returns the rebuild counter. It increments on every rebuild.
func (c *SpanCache) Version() uint64 {
	return c.version
}

// Valid reports whether the cache reflects the store's current contents.
func (c *SpanCache) Valid() bool {
	return c.builtRev == c.store.rev
}

// LockRangeAt returns the cached lock range for a cell. The zero value means
// the cell holds no lock spans.
func (c *SpanCache) LockRangeAt(gx, gz int) LockRange {
	if !c.store.InBounds(gx, gz) {
		return LockRange{}
	}
	return c.locks[c.store.cellIndex(gx, gz)]
}

// solidSpansAt returns the cached non-decorative span list for a cell, and
// whether the cache could serve the request at all. Callers fall back to a
// direct store scan on a miss.
func (c *SpanCache) solidSpansAt(gx, gz int) ([]Span, bool) {
	if !c.Valid() {
		return nil, false
	}
	if !c.store.InBounds(gx, gz) {
		return nil, true
	}
	return c.solid[c.store.cellIndex(gx, gz)], true
}

// rebuild re-derives the whole cache in one O(total spans) pass.
func (c *SpanCache) rebuild() {
	c.locks = make(map[int]LockRange)
	c.solid = make(map[int][]Span)

	for idx, spans := range c.store.spans {
		var lr LockRange
		var solid []Span
		for _, s := range spans {
			if !s.Valid() {
				continue // malformed spans are dropped, never surfaced
			}
			switch s.Kind {
			case KindLock:
				if lr.Count == 0 || s.Base < lr.Min {
					lr.Min = s.Base
				}
				if lr.Count == 0 || s.Top() > lr.Max {
					lr.Max = s.Top()
				}
				lr.Count++
			case KindFence, KindBadFence, KindPortal:
				// decorative; rails are derived at query time
			default:
				solid = append(solid, s)
			}
		}
		if lr.Count > 0 {
			c.locks[idx] = lr
		}
		if len(solid) > 0 {
			c.solid[idx] = solid
		}
	}

	c.builtRev = c.store.rev
	c.version++
}
