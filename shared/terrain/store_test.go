package terrain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCellAddressing(t *testing.T) {
	s := NewStore(10, 10)

	// The grid is centered on the world origin.
	gx, gz, ok := s.CellAt(0, 0)
	require.True(t, ok)
	assert.Equal(t, 5, gx)
	assert.Equal(t, 5, gz)

	gx, gz, ok = s.CellAt(-5, -5)
	require.True(t, ok)
	assert.Equal(t, 0, gx)
	assert.Equal(t, 0, gz)

	_, _, ok = s.CellAt(-5.01, 0)
	assert.False(t, ok)
	_, _, ok = s.CellAt(5, 0)
	assert.False(t, ok)

	x, z := s.CellCenter(5, 5)
	assert.InDelta(t, 0.5, x, 1e-9)
	assert.InDelta(t, 0.5, z, 1e-9)
}

func TestTileAtOutOfBoundsIsWall(t *testing.T) {
	s := NewStore(4, 4)
	assert.Equal(t, TileWall, s.TileAt(-1, 0))
	assert.Equal(t, TileWall, s.TileAt(0, 4))
	assert.Equal(t, TileOpen, s.TileAt(0, 0))
}

func TestSpansDefensiveCopy(t *testing.T) {
	s := NewStore(4, 4)
	s.SetSpans(1, 1, []Span{{Base: 0, Height: 2}})

	got := s.Spans(1, 1)
	require.Len(t, got, 1)
	got[0].Height = 99

	again := s.Spans(1, 1)
	require.Len(t, again, 1)
	assert.InDelta(t, 2, again[0].Height, 1e-9)
}

func TestSetSpansNormalizesAndDeletes(t *testing.T) {
	s := NewStore(4, 4)
	s.SetSpans(2, 2, []Span{
		{Base: 1, Height: 1},
		{Base: 0, Height: 1.5},
		{Base: 0, Height: -3},
	})
	got := s.Spans(2, 2)
	require.Len(t, got, 1)
	assert.InDelta(t, 0, got[0].Base, 1e-9)
	assert.InDelta(t, 2, got[0].Top(), 1e-9)

	s.SetSpans(2, 2, nil)
	assert.Nil(t, s.Spans(2, 2))
}

func TestPortalDest(t *testing.T) {
	s := NewStore(4, 4)

	_, ok := s.PortalDest(1, 1)
	assert.False(t, ok)

	s.SetPortalDest(1, 1, "hub")
	dest, ok := s.PortalDest(1, 1)
	require.True(t, ok)
	assert.Equal(t, "hub", dest)

	s.SetPortalDest(1, 1, "")
	_, ok = s.PortalDest(1, 1)
	assert.False(t, ok)
}
