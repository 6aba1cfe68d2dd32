package collision

import (
	"math"

	"raycaster/internal/mathutil"
)

// TileChecker interface for checking if tiles block movement
type TileChecker interface {
	IsTileBlocking(tileX, tileY int) bool
	GetWorldBounds() (width, height int)
}

// Point is a position or displacement in world units.
type Point struct {
	X, Y float64
}

// CollisionSystem resolves camera movement against the tile grid
type CollisionSystem struct {
	tileChecker TileChecker
	tileSize    float64
}

// NewCollisionSystem creates a new collision system
func NewCollisionSystem(tileChecker TileChecker, tileSize float64) *CollisionSystem {
	return &CollisionSystem{
		tileChecker: tileChecker,
		tileSize:    tileSize,
	}
}

// CanMoveTo reports whether a point lies in a walkable cell. Points outside
// the grid are blocked.
func (cs *CollisionSystem) CanMoveTo(x, y float64) bool {
	tileX := int(math.Floor(x / cs.tileSize))
	tileY := int(math.Floor(y / cs.tileSize))

	width, height := cs.tileChecker.GetWorldBounds()
	if tileX < 0 || tileX >= width || tileY < 0 || tileY >= height {
		return false
	}
	return !cs.tileChecker.IsTileBlocking(tileX, tileY)
}

// ResolveMove applies delta one axis at a time so the camera slides along
// walls. The X step is applied first and reverted if it lands in a blocked
// cell, then the Y step likewise. The result is clamped to the world bounds.
func (cs *CollisionSystem) ResolveMove(pos, delta Point) Point {
	next := pos

	next.X += delta.X
	if !cs.CanMoveTo(next.X, next.Y) {
		next.X = pos.X
	}

	next.Y += delta.Y
	if !cs.CanMoveTo(next.X, next.Y) {
		next.Y = pos.Y
	}

	return cs.ClampToWorld(next)
}

// ClampToWorld keeps a point within [0, width*tileSize] x [0, height*tileSize].
func (cs *CollisionSystem) ClampToWorld(p Point) Point {
	width, height := cs.tileChecker.GetWorldBounds()
	return Point{
		X: mathutil.Clamp(p.X, 0, float64(width)*cs.tileSize),
		Y: mathutil.Clamp(p.Y, 0, float64(height)*cs.tileSize),
	}
}
