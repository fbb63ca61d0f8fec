package leveldata

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/lafriks/go-tiled"
)

// LoadLevelData parses a TMX file into the terrain payload: the legacy ground
// tile layer, authored column spans, portal destinations, and spawn points.
// It takes an fs.FS so callers can pass embed.FS or os.DirFS.
func LoadLevelData(fsys fs.FS, tmxPath string) (*LevelData, error) {
	levelMap, err := tiled.LoadFile(tmxPath, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("load TMX %s: %w", tmxPath, err)
	}

	data := &LevelData{
		Width:  levelMap.Width,
		Height: levelMap.Height,
		Tiles:  make([]string, levelMap.Width*levelMap.Height),
	}

	// Legacy tiles come from the "ground" layer; the tileset tags each tile
	// with a "tile" property naming its classification.
	for _, layer := range levelMap.Layers {
		if layer.Name != "ground" {
			continue
		}
		for gz := 0; gz < levelMap.Height; gz++ {
			for gx := 0; gx < levelMap.Width; gx++ {
				tile := layer.Tiles[gz*levelMap.Width+gx]
				if tile.IsNil() {
					continue
				}
				if tilesetTile, err := tile.Tileset.GetTilesetTile(tile.ID); err == nil {
					data.Tiles[gz*levelMap.Width+gx] = tilesetTile.Properties.GetString("tile")
				}
			}
		}
		break
	}

	tileW := float64(levelMap.TileWidth)
	tileH := float64(levelMap.TileHeight)
	cellOf := func(o *tiled.Object) (int, int) {
		return int(o.X / tileW), int(o.Y / tileH)
	}

	spansByCell := make(map[[2]int][]Span)
	for _, og := range levelMap.ObjectGroups {
		switch og.Name {
		case "Spans":
			for _, o := range og.Objects {
				gx, gz := cellOf(o)
				spansByCell[[2]int{gx, gz}] = append(spansByCell[[2]int{gx, gz}], Span{
					Base:   o.Properties.GetFloat("base"),
					Height: o.Properties.GetFloat("height"),
					Kind:   o.Properties.GetString("kind"),
				})
			}
		case "Portals":
			for _, o := range og.Objects {
				gx, gz := cellOf(o)
				data.Portals = append(data.Portals, Portal{
					GX: gx, GZ: gz,
					Dest:   o.Properties.GetString("dest"),
					Base:   o.Properties.GetFloat("base"),
					Height: o.Properties.GetFloat("height"),
				})
			}
		case "PlayerSpawn":
			for _, o := range og.Objects {
				data.Spawns = append(data.Spawns, SpawnPoint{
					X:     o.X/tileW - float64(levelMap.Width)/2,
					Y:     o.Properties.GetFloat("y"),
					Z:     o.Y/tileH - float64(levelMap.Height)/2,
					Yaw:   o.Properties.GetFloat("yaw"),
					Index: o.Properties.GetInt("spawnIndex"),
				})
			}
		}
	}

	cells := make([][2]int, 0, len(spansByCell))
	for cell := range spansByCell {
		cells = append(cells, cell)
	}
	sort.Slice(cells, func(i, j int) bool {
		if cells[i][1] != cells[j][1] {
			return cells[i][1] < cells[j][1]
		}
		return cells[i][0] < cells[j][0]
	})
	for _, cell := range cells {
		data.Spans = append(data.Spans, CellSpans{
			GX: cell[0], GZ: cell[1],
			Spans: spansByCell[cell],
		})
	}

	// Sort spawns by index for stable assignment.
	sort.Slice(data.Spawns, func(i, j int) bool {
		return data.Spawns[i].Index < data.Spawns[j].Index
	})

	return data, nil
}

// LoadAllLevels discovers all .tmx files in levelsDir within fsys, parses
// each, and returns a map keyed by stem name plus a sorted list of names.
func LoadAllLevels(fsys fs.FS, levelsDir string) (map[string]*LevelData, []string, error) {
	pattern := levelsDir + "/*.tmx"
	matches, err := fs.Glob(fsys, pattern)
	if err != nil {
		return nil, nil, fmt.Errorf("glob %s: %w", pattern, err)
	}
	if len(matches) == 0 {
		return nil, nil, fmt.Errorf("no .tmx files found in %s", levelsDir)
	}

	levels := make(map[string]*LevelData, len(matches))
	names := make([]string, 0, len(matches))

	for _, path := range matches {
		data, err := LoadLevelData(fsys, path)
		if err != nil {
			return nil, nil, fmt.Errorf("load %s: %w", path, err)
		}
		stem := strings.TrimSuffix(filepath.Base(path), ".tmx")
		levels[stem] = data
		names = append(names, stem)
	}

	sort.Strings(names)
	return levels, names, nil
}
