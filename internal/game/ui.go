package game

import (
	"fmt"
	"image/color"

	"raycaster/internal/threading/monitoring"

	"github.com/hajimehoshi/ebiten/v2"
	ebitext "github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

var (
	crosshairColor = color.RGBA{255, 255, 255, 220}
	hudTextColor   = color.RGBA{255, 255, 255, 255}
	hudShadowColor = color.RGBA{0, 0, 0, 200}
)

// UISystem draws the crosshair and the text HUD
type UISystem struct {
	game *RaycastGame
}

// NewUISystem creates a new UI system
func NewUISystem(game *RaycastGame) *UISystem {
	return &UISystem{game: game}
}

// Draw renders all UI elements
func (ui *UISystem) Draw(screen *ebiten.Image) {
	if ui.game.config.Graphics.Crosshair {
		ui.drawCrosshair(screen)
	}
	if ui.game.showHUD {
		ui.drawHUD(screen)
	}
}

func (ui *UISystem) drawCrosshair(screen *ebiten.Image) {
	x, y, w, h := viewRect(ui.game.config.GetScreenWidth(), ui.game.config.GetScreenHeight())
	cx, cy := float32(x+w/2), float32(y+h/2)
	const arm = 8
	vector.StrokeLine(screen, cx-arm, cy, cx+arm, cy, 2, crosshairColor, false)
	vector.StrokeLine(screen, cx, cy-arm, cx, cy+arm, 2, crosshairColor, false)
}

// hudLines formats the HUD readouts followed by any performance alerts.
func hudLines(fps, dt float64, grabbed bool, m monitoring.FrameMetrics, alerts []monitoring.PerformanceAlert) []string {
	lines := []string{
		fmt.Sprintf("FPS: %.0f", fps),
		fmt.Sprintf("DELTA: %.2f ms", dt*1000),
		fmt.Sprintf("CAST: %.2fms PAINT: %.2fms", float64(m.RaycastTime.Microseconds())/1000, float64(m.PaintTime.Microseconds())/1000),
		fmt.Sprintf("MEM: %dMB", m.MemoryUsageMB),
	}
	for _, a := range alerts {
		lines = append(lines, fmt.Sprintf("! %s (%.1f)", a.Message, a.Value))
	}
	if grabbed {
		lines = append(lines, "Esc or click to release the mouse")
	} else {
		lines = append(lines, "Click or Esc to grab the mouse, Q to quit")
	}
	return lines
}

func (ui *UISystem) drawHUD(screen *ebiten.Image) {
	face := basicfont.Face7x13
	lines := hudLines(ebiten.ActualFPS(), ui.game.dt, ui.game.grabbed, ui.game.engine.Metrics(), ui.game.engine.Alerts())

	x, _, w, _ := viewRect(ui.game.config.GetScreenWidth(), ui.game.config.GetScreenHeight())
	y := 8
	for _, line := range lines {
		// Right-align inside the 3-D view
		tx := int(x+w) - 8 - font.MeasureString(face, line).Round()
		baseline := y + face.Ascent
		ebitext.Draw(screen, line, face, tx+1, baseline+1, hudShadowColor)
		ebitext.Draw(screen, line, face, tx, baseline, hudTextColor)
		y += face.Height + 2
	}
}
