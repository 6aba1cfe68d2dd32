package game

import (
	"raycaster/internal/config"
	"raycaster/internal/engine"

	"github.com/hajimehoshi/ebiten/v2"
)

// RaycastGame adapts the engine to ebiten's game loop.
type RaycastGame struct {
	config   *config.Config
	engine   *engine.Engine
	gameLoop *GameLoop
	grabbed  bool
	showHUD  bool
	dt       float64 // seconds covered by the last update
}

// NewRaycastGame creates the ebiten front end for an engine.
func NewRaycastGame(cfg *config.Config, eng *engine.Engine) *RaycastGame {
	g := &RaycastGame{
		config:  cfg,
		engine:  eng,
		showHUD: cfg.Graphics.ShowHUD,
	}
	g.gameLoop = NewGameLoop(g)
	return g
}

// ConfigureWindow applies the display settings to the ebiten window.
func ConfigureWindow(cfg *config.Config) {
	ebiten.SetWindowSize(cfg.GetScreenWidth(), cfg.GetScreenHeight())
	ebiten.SetWindowTitle(cfg.Display.WindowTitle)
	if cfg.Display.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
}

func (g *RaycastGame) Update() error {
	return g.gameLoop.Update()
}

func (g *RaycastGame) Draw(screen *ebiten.Image) {
	g.gameLoop.Draw(screen)
}

func (g *RaycastGame) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	return g.gameLoop.Layout(outsideWidth, outsideHeight)
}

// setGrabbed captures or releases the cursor.
func (g *RaycastGame) setGrabbed(grabbed bool) {
	g.grabbed = grabbed
	if grabbed {
		ebiten.SetCursorMode(ebiten.CursorModeCaptured)
	} else {
		ebiten.SetCursorMode(ebiten.CursorModeVisible)
	}
}
