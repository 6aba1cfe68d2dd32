package game

import (
	"context"

	"github.com/hajimehoshi/ebiten/v2"
)

// GameLoop manages the update and render cycle
type GameLoop struct {
	game         *RaycastGame
	inputHandler *InputHandler
	renderer     *Renderer
	ui           *UISystem
}

// NewGameLoop creates a new game loop manager
func NewGameLoop(game *RaycastGame) *GameLoop {
	return &GameLoop{
		game:         game,
		inputHandler: NewInputHandler(game),
		renderer:     NewRenderer(game),
		ui:           NewUISystem(game),
	}
}

// Update samples input, advances the pose and renders the 3-D view into the
// engine's framebuffer. Draw only presents it.
func (gl *GameLoop) Update() error {
	in, err := gl.inputHandler.HandleInput()
	if err != nil {
		return err
	}

	gl.game.dt = 1 / float64(ebiten.TPS())
	gl.game.engine.Update(in, gl.game.dt)

	if _, err := gl.game.engine.Frame(context.Background()); err != nil {
		return err
	}
	return nil
}

// Draw presents the overlay on the left half and the 3-D view on the right
func (gl *GameLoop) Draw(screen *ebiten.Image) {
	gl.renderer.DrawView(screen)
	if gl.game.config.Graphics.Overlay {
		gl.renderer.DrawOverlay(screen)
	}
	gl.ui.Draw(screen)
}

// Layout returns the screen dimensions
func (gl *GameLoop) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	return gl.game.config.GetScreenWidth(), gl.game.config.GetScreenHeight()
}
