package world

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"raycaster/internal/config"
)

// MapLoader reads text map files into grids.
//
// Format: one row per line, one character per cell. '0' or '.' is empty,
// '1'..'9' is a material id, '+' is the empty starting cell. Blank lines and
// lines starting with '#' are skipped.
type MapLoader struct {
	tileSize  float64
	materials int
	width     int // 0 accepts any width
	height    int // 0 accepts any height
}

// NewMapLoader creates a loader bound to the configured tile size, material
// count and expected map dimensions.
func NewMapLoader(cfg *config.Config) *MapLoader {
	return &MapLoader{
		tileSize:  cfg.GetTileSize(),
		materials: cfg.GetMaterialCount(),
		width:     cfg.World.MapWidth,
		height:    cfg.World.MapHeight,
	}
}

// LoadMap loads a map from the specified file path
func (ml *MapLoader) LoadMap(mapPath string) (*Grid, error) {
	file, err := os.Open(mapPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open map file %s: %w", mapPath, err)
	}
	defer file.Close()

	grid, err := ml.ParseMap(file)
	if err != nil {
		return nil, fmt.Errorf("map %s: %w", mapPath, err)
	}
	fmt.Printf("[MapLoader] Loaded %s: %dx%d cells, start (%d,%d)\n", mapPath, grid.Width, grid.Height, grid.StartX, grid.StartY)
	return grid, nil
}

// ParseMap reads a map from r.
func (ml *MapLoader) ParseMap(r io.Reader) (*Grid, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), " \t\r")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading map file: %w", err)
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("map file contains no valid map data")
	}

	height := len(lines)
	width := len(lines[0])
	for i, line := range lines {
		if len(line) != width {
			return nil, fmt.Errorf("line %d has inconsistent width: expected %d, got %d", i+1, width, len(line))
		}
	}
	if ml.width > 0 && width != ml.width {
		return nil, fmt.Errorf("map width %d does not match configured width %d", width, ml.width)
	}
	if ml.height > 0 && height != ml.height {
		return nil, fmt.Errorf("map height %d does not match configured height %d", height, ml.height)
	}

	grid := NewGrid(width, height, ml.tileSize)
	for y, line := range lines {
		for x := 0; x < len(line); x++ {
			m, isStart, err := ml.parseMapCharacter(line[x])
			if err != nil {
				return nil, fmt.Errorf("line %d column %d: %w", y+1, x+1, err)
			}
			if isStart {
				if grid.StartX >= 0 {
					return nil, fmt.Errorf("line %d column %d: second start position, first at (%d,%d)", y+1, x+1, grid.StartX, grid.StartY)
				}
				grid.StartX, grid.StartY = x, y
			}
			grid.Set(x, y, m)
		}
	}
	return grid, nil
}

func (ml *MapLoader) parseMapCharacter(c byte) (Material, bool, error) {
	switch {
	case c == '.' || c == '0':
		return Empty, false, nil
	case c == '+':
		return Empty, true, nil
	case c >= '1' && c <= '9':
		m := Material(c - '0')
		if ml.materials > 0 && int(m) > ml.materials {
			return Empty, false, fmt.Errorf("material %d exceeds the %d configured materials", m, ml.materials)
		}
		return m, false, nil
	default:
		return Empty, false, fmt.Errorf("unknown map character %q", c)
	}
}
