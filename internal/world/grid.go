package world

import (
	"fmt"
	"math"
)

// Material is a wall material id. Zero is empty space, 1..N index the
// configured materials and the bands of the texture atlas.
type Material uint8

// Empty marks a walkable cell.
const Empty Material = 0

// Grid is the static tile map the camera moves through and rays are cast
// against. Cells are stored row-major; the grid is not modified while a
// frame is being produced.
type Grid struct {
	Width    int
	Height   int
	TileSize float64
	cells    []Material
	// Starting cell from the map file, -1 when the map did not declare one
	StartX int
	StartY int
}

// NewGrid creates an empty grid of the given size.
func NewGrid(width, height int, tileSize float64) *Grid {
	return &Grid{
		Width:    width,
		Height:   height,
		TileSize: tileSize,
		cells:    make([]Material, width*height),
		StartX:   -1,
		StartY:   -1,
	}
}

// NewGridFromRows builds a grid from rows of material ids. All rows must be
// the same length.
func NewGridFromRows(rows [][]Material, tileSize float64) (*Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("grid has no cells")
	}
	if tileSize <= 0 {
		return nil, fmt.Errorf("tile size must be positive, got %v", tileSize)
	}
	g := NewGrid(len(rows[0]), len(rows), tileSize)
	for y, row := range rows {
		if len(row) != g.Width {
			return nil, fmt.Errorf("row %d has inconsistent width: expected %d, got %d", y+1, g.Width, len(row))
		}
		copy(g.cells[y*g.Width:], row)
	}
	return g, nil
}

// demoRows is the 8x8 demo layout.
var demoRows = [][]Material{
	{1, 0, 0, 0, 0, 0, 0, 1},
	{1, 0, 0, 0, 0, 0, 0, 2},
	{2, 0, 0, 0, 0, 0, 0, 3},
	{2, 0, 0, 1, 3, 0, 0, 3},
	{3, 0, 0, 0, 0, 0, 0, 2},
	{3, 0, 0, 3, 0, 2, 0, 1},
	{1, 0, 0, 0, 0, 0, 0, 1},
	{1, 3, 3, 3, 2, 1, 2, 1},
}

// DefaultGrid returns the built-in 8x8 demo map with the camera starting in
// cell (4, 4).
func DefaultGrid(tileSize float64) *Grid {
	g, err := NewGridFromRows(demoRows, tileSize)
	if err != nil {
		panic(err)
	}
	g.StartX, g.StartY = 4, 4
	return g
}

// Set stores a material. Out-of-range cells are ignored.
func (g *Grid) Set(cellX, cellY int, m Material) {
	if !g.InBounds(cellX, cellY) {
		return
	}
	g.cells[cellY*g.Width+cellX] = m
}

// InBounds reports whether the cell lies inside the grid.
func (g *Grid) InBounds(cellX, cellY int) bool {
	return cellX >= 0 && cellX < g.Width && cellY >= 0 && cellY < g.Height
}

// MaterialAt returns the material of a cell, Empty when out of range.
func (g *Grid) MaterialAt(cellX, cellY int) Material {
	if !g.InBounds(cellX, cellY) {
		return Empty
	}
	return g.cells[cellY*g.Width+cellX]
}

// IsWall returns the material of an occupied cell. Empty and out-of-range
// cells report false.
func (g *Grid) IsWall(cellX, cellY int) (Material, bool) {
	m := g.MaterialAt(cellX, cellY)
	return m, m != Empty
}

// CellOf converts a world position to the cell containing it.
func (g *Grid) CellOf(x, y float64) (int, int) {
	return int(math.Floor(x / g.TileSize)), int(math.Floor(y / g.TileSize))
}

// WorldSize returns the grid extent in world units.
func (g *Grid) WorldSize() (float64, float64) {
	return float64(g.Width) * g.TileSize, float64(g.Height) * g.TileSize
}

// MaxMaterial returns the highest material id used by any cell.
func (g *Grid) MaxMaterial() Material {
	var max Material
	for _, m := range g.cells {
		if m > max {
			max = m
		}
	}
	return max
}

// StartPosition returns the world position at the center of the starting
// cell. Without a declared start the first empty cell in row-major order is
// used.
func (g *Grid) StartPosition() (float64, float64, error) {
	cx, cy := g.StartX, g.StartY
	if !g.InBounds(cx, cy) {
		found := false
		for i, m := range g.cells {
			if m == Empty {
				cx, cy = i%g.Width, i/g.Width
				found = true
				break
			}
		}
		if !found {
			return 0, 0, fmt.Errorf("map has no empty cell to start in")
		}
	}
	if _, wall := g.IsWall(cx, cy); wall {
		return 0, 0, fmt.Errorf("start cell (%d,%d) is a wall", cx, cy)
	}
	return (float64(cx) + 0.5) * g.TileSize, (float64(cy) + 0.5) * g.TileSize, nil
}

// IsTileBlocking implements collision.TileChecker. Cells outside the grid
// block movement.
func (g *Grid) IsTileBlocking(cellX, cellY int) bool {
	if !g.InBounds(cellX, cellY) {
		return true
	}
	return g.cells[cellY*g.Width+cellX] != Empty
}

// GetWorldBounds implements collision.TileChecker.
func (g *Grid) GetWorldBounds() (width, height int) {
	return g.Width, g.Height
}
