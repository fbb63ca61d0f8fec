package terrain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheVersionAndStaleness(t *testing.T) {
	s := NewStore(8, 8)
	cache := s.Cache()
	v0 := cache.Version()

	s.SetSpans(3, 3, []Span{{Base: 0, Height: 2}})
	assert.False(t, cache.Valid(), "edit must invalidate the cache")

	s.RebuildCache()
	assert.True(t, cache.Valid())
	assert.Equal(t, v0+1, cache.Version())

	s.SetTile(0, 0, TileWall)
	assert.False(t, cache.Valid(), "tile edits invalidate too")
	s.RebuildCache()
	assert.Equal(t, v0+2, cache.Version())
}

func TestCacheLockRanges(t *testing.T) {
	s := NewStore(8, 8)
	s.SetSpans(2, 5, []Span{
		{Base: 1, Height: 2, Kind: KindLock},
		{Base: 5, Height: 1, Kind: KindLock},
		{Base: 0, Height: 1, Kind: KindSolid},
	})
	s.RebuildCache()

	lr := s.Cache().LockRangeAt(2, 5)
	require.Equal(t, 2, lr.Count)
	assert.InDelta(t, 1, lr.Min, 1e-9)
	assert.InDelta(t, 6, lr.Max, 1e-9)

	assert.Equal(t, LockRange{}, s.Cache().LockRangeAt(0, 0))
	assert.Equal(t, LockRange{}, s.Cache().LockRangeAt(-1, 0))
}

// A stale cache must never change query results: queries fall back to a
// direct store scan until the next rebuild.
func TestStaleCacheFallsBackToStoreScan(t *testing.T) {
	s := NewStore(8, 8)
	x, z := s.CellCenter(4, 4)

	s.SetSpans(4, 4, []Span{{Base: 0, Height: 1}})
	s.RebuildCache()
	assert.InDelta(t, 1, s.GroundHeightAt(x, z, 5), 1e-9)

	// Grow the span without rebuilding.
	s.SetSpans(4, 4, []Span{{Base: 0, Height: 3}})
	assert.False(t, s.Cache().Valid())
	assert.InDelta(t, 3, s.GroundHeightAt(x, z, 5), 1e-9)
	assert.True(t, s.IsWallAt(x, z, 2))

	s.RebuildCache()
	assert.InDelta(t, 3, s.GroundHeightAt(x, z, 5), 1e-9)
}
