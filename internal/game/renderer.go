package game

import (
	"image/color"
	"math"

	"raycaster/internal/raycast"
	"raycaster/internal/world"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	rayColorVertical   = color.RGBA{153, 153, 153, 255}
	rayColorHorizontal = color.RGBA{140, 140, 140, 255}
	playerColor        = color.RGBA{253, 249, 0, 255}
	emptyCellColor     = color.RGBA{0, 0, 0, 255}
)

// Renderer presents the engine framebuffer and the top-down overlay
type Renderer struct {
	game      *RaycastGame
	viewImage *ebiten.Image
}

// NewRenderer creates a new renderer
func NewRenderer(game *RaycastGame) *Renderer {
	return &Renderer{game: game}
}

// viewRect returns the screen area of the 3-D view: the right half.
func viewRect(screenWidth, screenHeight int) (x, y, w, h float64) {
	half := float64(screenWidth) / 2
	return half, 0, half, float64(screenHeight)
}

// DrawView uploads the framebuffer and scales it into the right half
func (r *Renderer) DrawView(screen *ebiten.Image) {
	fb := r.game.engine.Framebuffer()
	if r.viewImage == nil {
		r.viewImage = ebiten.NewImage(fb.Width(), fb.Height())
	}
	r.viewImage.WritePixels(fb.Pix())

	x, y, w, h := viewRect(r.game.config.GetScreenWidth(), r.game.config.GetScreenHeight())
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w/float64(fb.Width()), h/float64(fb.Height()))
	op.GeoM.Translate(x, y)
	screen.DrawImage(r.viewImage, op)
}

// overlayLayout fits the grid into the left half of the screen and returns
// the world-to-screen scale.
func overlayLayout(screenWidth, screenHeight int, grid *world.Grid) float64 {
	worldW, worldH := grid.WorldSize()
	return math.Min(float64(screenWidth)/2/worldW, float64(screenHeight)/worldH)
}

// rayColor picks the trace color by boundary axis.
func rayColor(axis raycast.Axis) color.RGBA {
	if axis == raycast.AxisVertical {
		return rayColorVertical
	}
	return rayColorHorizontal
}

// DrawOverlay draws the map cells, one trace per cast column and the camera
func (r *Renderer) DrawOverlay(screen *ebiten.Image) {
	grid := r.game.engine.Grid()
	cfg := r.game.config
	scale := overlayLayout(cfg.GetScreenWidth(), cfg.GetScreenHeight(), grid)
	tile := grid.TileSize * scale

	for cy := 0; cy < grid.Height; cy++ {
		for cx := 0; cx < grid.Width; cx++ {
			clr := emptyCellColor
			if m, wall := grid.IsWall(cx, cy); wall {
				clr = cfg.GetMaterialMapColor(int(m))
			}
			vector.DrawFilledRect(screen,
				float32(float64(cx)*tile+1), float32(float64(cy)*tile+1),
				float32(tile-2), float32(tile-2), clr, false)
		}
	}

	pose := r.game.engine.Pose()
	px, py := float32(pose.X*scale), float32(pose.Y*scale)
	for _, col := range r.game.engine.Columns() {
		if !col.Ok {
			continue
		}
		vector.StrokeLine(screen, px, py,
			float32(col.Hit.X*scale), float32(col.Hit.Y*scale),
			3*float32(scale), rayColor(col.Hit.Axis), false)
	}

	dirX, dirY := pose.Forward()
	vector.DrawFilledCircle(screen, px, py, 8*float32(scale), playerColor, true)
	vector.StrokeLine(screen, px, py,
		px+float32(dirX*20*scale), py+float32(dirY*20*scale),
		3*float32(scale), playerColor, true)
}
