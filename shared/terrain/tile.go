package terrain

// Tile is the legacy flat per-cell ground classification. It provides fallback
// geometry for cells that carry no explicit spans; older levels are authored
// entirely in tiles.
type Tile uint8

const (
	TileOpen Tile = iota
	TileWall
	TileBad
	TileHalf
	TileFence
	TileBadFence
	TileLevelChange
	TileNoClimb
	TileFill
)

// TileFromString parses a level-file tile name. Unknown names map to TileOpen.
func TileFromString(s string) Tile {
	switch s {
	case "wall":
		return TileWall
	case "bad":
		return TileBad
	case "half":
		return TileHalf
	case "fence":
		return TileFence
	case "badfence":
		return TileBadFence
	case "levelchange":
		return TileLevelChange
	case "noclimb":
		return TileNoClimb
	case "fill":
		return TileFill
	default:
		return TileOpen
	}
}

// SurfaceHeight returns the synthesized walk surface height of the tile.
func (t Tile) SurfaceHeight() float64 {
	switch t {
	case TileWall, TileNoClimb, TileFill:
		return 1.0
	case TileHalf:
		return 0.5
	}
	return 0
}

// blocking reports whether the tile is a full-height lateral blocker.
func (t Tile) blocking() bool {
	switch t {
	case TileWall, TileNoClimb, TileFill:
		return true
	}
	return false
}
