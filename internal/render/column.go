package render

import (
	"image/color"
	"math"

	"raycaster/internal/config"
	"raycaster/internal/graphics"
	"raycaster/internal/mathutil"
	"raycaster/internal/projection"
	"raycaster/internal/raycast"
)

// ColumnPainter writes single framebuffer columns: sky, textured wall and
// floor. It holds no per-frame state and may be shared across goroutines.
type ColumnPainter struct {
	atlas     *graphics.TextureAtlas
	sky       color.RGBA
	ground    color.RGBA
	sideShade float64
}

// NewColumnPainter creates a painter that samples walls from atlas and takes
// its colors from cfg.
func NewColumnPainter(atlas *graphics.TextureAtlas, cfg *config.Config) *ColumnPainter {
	return &ColumnPainter{
		atlas:     atlas,
		sky:       cfg.GetSkyColor(),
		ground:    cfg.GetGroundColor(),
		sideShade: cfg.Graphics.SideShade,
	}
}

// Sky returns the background color walls fade into.
func (cp *ColumnPainter) Sky() color.RGBA { return cp.sky }

// Ground returns the floor color.
func (cp *ColumnPainter) Ground() color.RGBA { return cp.ground }

// PaintHit paints column x for a ray that struck a wall.
func (cp *ColumnPainter) PaintHit(fb *Framebuffer, x int, span projection.Span, hit raycast.Hit) {
	h := fb.Height()
	y0 := int(math.Round(span.Top))
	y1 := int(math.Round(span.Bottom))

	fb.FillColumn(x, 0, y0, cp.sky)
	cp.paintWall(fb, x, y0, y1, span.Fog, hit)
	fb.FillColumn(x, y1, h, cp.ground)
}

// paintWall samples rows [y0, y1) of the wall from the material's atlas
// band. y0 and y1 are the unclamped span so texture rows stay anchored to
// the wall when it extends past the screen.
func (cp *ColumnPainter) paintWall(fb *Framebuffer, x, y0, y1 int, fog float64, hit raycast.Hit) {
	wallHeight := y1 - y0
	if wallHeight <= 0 {
		return
	}

	atlasWidth := cp.atlas.Width()
	texX := mathutil.IntClamp(int(math.Round(hit.U*float64(atlasWidth))), 0, atlasWidth-1)
	ratio := float64(cp.atlas.BandHeight()) / float64(wallHeight)

	shade := hit.Axis == raycast.AxisHorizontal && cp.sideShade != 1
	start := mathutil.IntMax(y0, 0)
	end := mathutil.IntMin(y1, fb.Height())
	for y := start; y < end; y++ {
		texY := int(float64(y-y0) * ratio)
		c := cp.atlas.Sample(hit.Material, texX, texY)
		if shade {
			c = Scale(c, cp.sideShade)
		}
		fb.Set(x, y, Blend(c, cp.sky, fog))
	}
}

// PaintMiss paints column x for a ray that hit nothing: sky above the
// horizon, floor below.
func (cp *ColumnPainter) PaintMiss(fb *Framebuffer, x int, horizon float64) {
	floorY := int(math.Round(mathutil.Clamp(horizon, 0, float64(fb.Height()))))
	fb.FillColumn(x, 0, floorY, cp.sky)
	fb.FillColumn(x, floorY, fb.Height(), cp.ground)
}

// PaintBlank paints column x entirely with the background color.
func (cp *ColumnPainter) PaintBlank(fb *Framebuffer, x int) {
	fb.FillColumn(x, 0, fb.Height(), cp.sky)
}
