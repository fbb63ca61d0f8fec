package core

import (
	"fmt"
	"log"
	"os"

	"github.com/rabbitwine/rabbitwine-mp/shared/leveldata"
	"github.com/rabbitwine/rabbitwine-mp/shared/terrain"
)

// ServerLevel holds one level's terrain store and spawn data.
type ServerLevel struct {
	Name   string
	Store  *terrain.Store
	Spawns []leveldata.SpawnPoint
}

// NewServerLevel builds a terrain store from parsed level data and rebuilds
// its span cache, ready for queries.
func NewServerLevel(name string, data *leveldata.LevelData) *ServerLevel {
	store := terrain.NewStore(data.Width, data.Height)

	for gz := 0; gz < data.Height; gz++ {
		for gx := 0; gx < data.Width; gx++ {
			if tileName := data.Tiles[gz*data.Width+gx]; tileName != "" {
				store.SetTile(gx, gz, terrain.TileFromString(tileName))
			}
		}
	}

	spanCells := 0
	for _, cs := range data.Spans {
		spans := make([]terrain.Span, 0, len(cs.Spans))
		for _, sp := range cs.Spans {
			spans = append(spans, terrain.Span{
				Base:   sp.Base,
				Height: sp.Height,
				Kind:   terrain.KindFromString(sp.Kind),
			})
		}
		store.SetSpans(cs.GX, cs.GZ, spans)
		spanCells++
	}

	for _, po := range data.Portals {
		store.SetPortalDest(po.GX, po.GZ, po.Dest)
		if po.Height > 0 {
			spans := store.Spans(po.GX, po.GZ)
			spans = append(spans, terrain.Span{
				Base:   po.Base,
				Height: po.Height,
				Kind:   terrain.KindPortal,
			})
			store.SetSpans(po.GX, po.GZ, spans)
		} else {
			store.SetTile(po.GX, po.GZ, terrain.TileLevelChange)
		}
	}

	store.RebuildCache()

	log.Printf("[level] %s: %dx%d cells, %d span cells, %d portals, %d spawn points",
		name, data.Width, data.Height, spanCells, len(data.Portals), len(data.Spawns))

	return &ServerLevel{
		Name:   name,
		Store:  store,
		Spawns: data.Spawns,
	}
}

// SpawnFor picks a spawn point for the nth player to join, cycling through
// the authored points. Levels without spawns place players at the map centre.
func (l *ServerLevel) SpawnFor(n int) leveldata.SpawnPoint {
	if len(l.Spawns) == 0 {
		return leveldata.SpawnPoint{}
	}
	return l.Spawns[n%len(l.Spawns)]
}

// LevelRegistry is the set of levels loaded at boot. It implements
// sim.TerrainSource so portal transitions can switch the active store.
type LevelRegistry struct {
	levels map[string]*ServerLevel
	names  []string
}

// LoadAllServerLevels loads all .tmx levels from the given assets directory.
func LoadAllServerLevels(assetsDir string) (*LevelRegistry, error) {
	dataMap, names, err := leveldata.LoadAllLevels(os.DirFS(assetsDir), "levels")
	if err != nil {
		return nil, fmt.Errorf("load all levels: %w", err)
	}

	levels := make(map[string]*ServerLevel, len(names))
	for _, name := range names {
		levels[name] = NewServerLevel(name, dataMap[name])
	}
	return &LevelRegistry{levels: levels, names: names}, nil
}

// NewLevelRegistry wraps pre-built levels; tests use it to skip TMX loading.
func NewLevelRegistry(levels ...*ServerLevel) *LevelRegistry {
	r := &LevelRegistry{levels: make(map[string]*ServerLevel, len(levels))}
	for _, l := range levels {
		r.levels[l.Name] = l
		r.names = append(r.names, l.Name)
	}
	return r
}

// Level resolves a level name to its terrain store (sim.TerrainSource).
func (r *LevelRegistry) Level(name string) (*terrain.Store, bool) {
	l, ok := r.levels[name]
	if !ok {
		return nil, false
	}
	return l.Store, true
}

// Get returns the full server level record.
func (r *LevelRegistry) Get(name string) (*ServerLevel, bool) {
	l, ok := r.levels[name]
	return l, ok
}

// Names returns the loaded level names in sorted order.
func (r *LevelRegistry) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// DefaultName returns the first level in name order.
func (r *LevelRegistry) DefaultName() string {
	if len(r.names) == 0 {
		return ""
	}
	return r.names[0]
}
