package raycast

import (
	"math"

	"raycaster/internal/threading/rendering"
	"raycaster/internal/world"
)

// DefaultMaxDistance bounds traversal in grid units.
const DefaultMaxDistance = 100.0

// Axis records which kind of grid line a ray crossed last.
type Axis uint8

const (
	// AxisVertical means the ray stepped in X and crossed a vertical grid line.
	AxisVertical Axis = iota
	// AxisHorizontal means the ray stepped in Y and crossed a horizontal grid line.
	AxisHorizontal
)

func (a Axis) String() string {
	if a == AxisVertical {
		return "vertical"
	}
	return "horizontal"
}

// Camera is the part of the camera pose that casting reads.
type Camera struct {
	X, Y  float64 // world units
	Angle float64 // radians
}

// Hit describes where a ray struck a wall.
type Hit struct {
	X, Y     float64 // world hit point
	Distance float64 // world units along the ray, before fisheye correction
	Axis     Axis
	Material world.Material
	U        float64 // horizontal texture coordinate in [0, 1)
	CellX    int
	CellY    int
}

// Column is the cast result for one screen column.
type Column struct {
	Index  int
	Offset float64 // angle relative to the camera facing
	DirX   float64
	DirY   float64
	Hit    Hit
	Ok     bool // false when nothing was hit within the max distance
}

// Caster casts one ray per screen column against a grid.
type Caster struct {
	grid        *world.Grid
	fov         float64
	columns     int
	maxDistance float64
	offsets     []float64
}

// NewCaster creates a caster for the given grid, field of view in radians
// and column count. maxDistance is in grid units; zero or less uses
// DefaultMaxDistance.
func NewCaster(grid *world.Grid, fov float64, columns int, maxDistance float64) *Caster {
	if maxDistance <= 0 {
		maxDistance = DefaultMaxDistance
	}
	c := &Caster{
		grid:        grid,
		fov:         fov,
		columns:     columns,
		maxDistance: maxDistance,
	}
	c.precomputeOffsets()
	return c
}

// precomputeOffsets stores the per-column angle offsets; they depend only on
// the field of view and the column count.
func (c *Caster) precomputeOffsets() {
	c.offsets = make([]float64, c.columns)
	for col := range c.offsets {
		c.offsets[col] = (float64(col)/float64(c.columns) - 0.5) * c.fov
	}
}

// Columns returns the number of columns cast per frame.
func (c *Caster) Columns() int {
	return c.columns
}

// Grid returns the grid rays are cast against.
func (c *Caster) Grid() *world.Grid {
	return c.grid
}

// Offset returns the angle of column col relative to the camera facing.
func (c *Caster) Offset(col int) float64 {
	return c.offsets[col]
}

// CastColumn casts the ray for a single column. It only reads its inputs.
func (c *Caster) CastColumn(cam Camera, col int) Column {
	theta := c.offsets[col]
	angle := cam.Angle + theta
	dirX, dirY := math.Cos(angle), math.Sin(angle)

	hit, ok := CastRay(c.grid, cam.X, cam.Y, dirX, dirY, c.maxDistance)
	return Column{
		Index:  col,
		Offset: theta,
		DirX:   dirX,
		DirY:   dirY,
		Hit:    hit,
		Ok:     ok,
	}
}

// CastAll fills out with one Column per screen column. With a nil renderer
// the columns are cast in order on the calling goroutine; otherwise they are
// spread over the renderer's workers. Both give identical results.
func (c *Caster) CastAll(cam Camera, out []Column, pr *rendering.ParallelRenderer) error {
	n := min(len(out), c.columns)
	if pr == nil {
		for col := 0; col < n; col++ {
			out[col] = c.CastColumn(cam, col)
		}
		return nil
	}
	return pr.RenderRaycast(n, func(col int) {
		out[col] = c.CastColumn(cam, col)
	})
}

// CastRay walks the grid from the world position (x, y) along the unit
// direction (dirX, dirY) with DDA and returns the first occupied cell.
// Traversal gives up once the accumulated distance reaches maxDistance grid
// units.
func CastRay(grid *world.Grid, x, y, dirX, dirY, maxDistance float64) (Hit, bool) {
	tile := grid.TileSize
	originX, originY := x/tile, y/tile
	cellX, cellY := int(math.Floor(originX)), int(math.Floor(originY))

	// Distance along the ray to cross one full cell in each axis. A zero
	// component never reaches the next line in that axis.
	stepSizeX, stepSizeY := math.Inf(1), math.Inf(1)
	if dirX != 0 {
		stepSizeX = math.Sqrt(1 + (dirY/dirX)*(dirY/dirX))
	}
	if dirY != 0 {
		stepSizeY = math.Sqrt(1 + (dirX/dirY)*(dirX/dirY))
	}
	if math.IsInf(stepSizeX, 1) && math.IsInf(stepSizeY, 1) {
		return Hit{}, false
	}

	stepX, stepY := 1, 1
	sideX, sideY := math.Inf(1), math.Inf(1)
	if dirX < 0 {
		stepX = -1
		sideX = (originX - float64(cellX)) * stepSizeX
	} else if dirX > 0 {
		sideX = (float64(cellX+1) - originX) * stepSizeX
	}
	if dirY < 0 {
		stepY = -1
		sideY = (originY - float64(cellY)) * stepSizeY
	} else if dirY > 0 {
		sideY = (float64(cellY+1) - originY) * stepSizeY
	}

	distance := 0.0
	axis := AxisVertical
	for {
		if sideX < sideY {
			cellX += stepX
			distance = sideX
			sideX += stepSizeX
			axis = AxisVertical
		} else {
			cellY += stepY
			distance = sideY
			sideY += stepSizeY
			axis = AxisHorizontal
		}
		if distance >= maxDistance {
			return Hit{}, false
		}
		if m, wall := grid.IsWall(cellX, cellY); wall {
			return newHit(grid, x, y, dirX, dirY, distance, axis, m, cellX, cellY), true
		}
	}
}

func newHit(grid *world.Grid, x, y, dirX, dirY, distance float64, axis Axis, m world.Material, cellX, cellY int) Hit {
	tile := grid.TileSize
	worldDist := distance * tile
	hx := x + dirX*worldDist
	hy := y + dirY*worldDist

	var u float64
	if axis == AxisVertical {
		u = fraction(hy / tile)
	} else {
		u = fraction(hx / tile)
	}

	return Hit{
		X:        hx,
		Y:        hy,
		Distance: worldDist,
		Axis:     axis,
		Material: m,
		U:        u,
		CellX:    cellX,
		CellY:    cellY,
	}
}

// fraction returns v - floor(v) kept strictly below 1.
func fraction(v float64) float64 {
	f := v - math.Floor(v)
	if f >= 1 || f < 0 {
		return 0
	}
	return f
}
