package projection

import (
	"math"

	"raycaster/internal/mathutil"
)

// minDistance is the smallest corrected distance projected normally; anything
// closer gets MaxHeight.
const minDistance = 1e-6

// maxHeightFactor times the screen height bounds a projected wall.
const maxHeightFactor = 16

// Span is the vertical extent of a wall slice on screen.
type Span struct {
	Top       float64 // first row, may be negative
	Bottom    float64 // one past the last row, may exceed the screen
	Height    float64
	Corrected float64 // perpendicular distance used for height and fog
	Fog       float64 // 0 is the wall color, 1 is the background color
}

// Projector turns hit distances into on-screen wall spans. All of its
// fields are fixed for a frame.
type Projector struct {
	screenHeight       float64
	tanHalfFOV         float64
	projectionConstant float64
	viewDistance       float64
	MaxHeight          float64
}

// NewProjector creates a projector for a screen height in pixels, a field of
// view in radians, the tile size and the view distance in world units.
func NewProjector(screenHeight int, fov, tileSize, viewDistance float64) *Projector {
	tanHalf := math.Tan(fov / 2)
	return &Projector{
		screenHeight:       float64(screenHeight),
		tanHalfFOV:         tanHalf,
		projectionConstant: (tileSize / 2) / tanHalf,
		viewDistance:       viewDistance,
		MaxHeight:          maxHeightFactor * float64(screenHeight),
	}
}

// ProjectionConstant returns (tileSize/2) / tan(fov/2).
func (p *Projector) ProjectionConstant() float64 {
	return p.projectionConstant
}

// Horizon returns the screen row of the horizon for a pitch in radians.
// Positive pitch moves it down the screen.
func (p *Projector) Horizon(pitch float64) float64 {
	return p.screenHeight / 2 * (1 + math.Tan(pitch)/p.tanHalfFOV)
}

// Project converts a Euclidean hit distance and the column's angular
// offset into a wall span centered on horizon.
func (p *Projector) Project(distance, theta, horizon float64) Span {
	corrected := distance * math.Cos(theta)

	height := p.MaxHeight
	if corrected > minDistance {
		height = math.Min(p.screenHeight*p.projectionConstant/corrected, p.MaxHeight)
	}
	if !mathutil.IsFinite(height) {
		height = p.MaxHeight
	}

	return Span{
		Top:       horizon - height/2,
		Bottom:    horizon + height/2,
		Height:    height,
		Corrected: corrected,
		Fog:       p.Fog(corrected),
	}
}

// Fog is zero up to half the view distance and rises linearly to one at the
// view distance.
func (p *Projector) Fog(corrected float64) float64 {
	if !mathutil.IsFinite(corrected) {
		return 1
	}
	return mathutil.Clamp(2*corrected/p.viewDistance-1, 0, 1)
}
