// Package leveldata provides TMX level parsing for the terrain payload. It is
// pure data with no dependency on the simulation packages, so the editor
// tooling and the server can share it.
package leveldata

// LevelData is everything collision-relevant parsed from one TMX level file.
type LevelData struct {
	Width, Height int      // map size in cells
	Tiles         []string // row-major legacy tile names; "" means open
	Spans         []CellSpans
	Portals       []Portal
	Spawns        []SpawnPoint
}

// CellSpans is the explicit span list authored for one cell.
type CellSpans struct {
	GX, GZ int
	Spans  []Span
}

// Span is one authored vertical interval within a cell.
type Span struct {
	Base   float64
	Height float64
	Kind   string // "solid", "bad", "fence", "badfence", "portal", "lock"
}

// Portal registers a destination level for a cell. Height > 0 also authors a
// portal span of that extent; zero means the whole tile triggers.
type Portal struct {
	GX, GZ int
	Dest   string
	Base   float64
	Height float64
}

// SpawnPoint is a player spawn location in world units.
type SpawnPoint struct {
	X, Y, Z float64
	Yaw     float64
	Index   int
}
