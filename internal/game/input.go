package game

import (
	"raycaster/internal/engine"
	"raycaster/internal/game/keytracker"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// InputHandler turns ebiten key and mouse state into engine input
type InputHandler struct {
	game          *RaycastGame
	mouse         mouseTracker
	hudKeyTracker keytracker.KeyStateTracker
	revealTracker keytracker.KeyStateTracker
}

// NewInputHandler creates a new input handler
func NewInputHandler(game *RaycastGame) *InputHandler {
	return &InputHandler{game: game}
}

// HandleInput polls the devices once for this frame. Q while the cursor is
// free ends the game.
func (ih *InputHandler) HandleInput() (engine.Input, error) {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		ih.game.setGrabbed(!ih.game.grabbed)
		ih.mouse.reset()
	}
	if !ih.game.grabbed && ebiten.IsKeyPressed(ebiten.KeyQ) {
		return engine.Input{}, ebiten.Termination
	}
	if ih.hudKeyTracker.IsKeyJustPressed(ebiten.KeyTab) {
		ih.game.showHUD = !ih.game.showHUD
	}
	if ih.revealTracker.IsKeyJustPressed(ebiten.KeyR) {
		ih.game.engine.Reveal().Reset()
	}

	dx, dy := ih.mouse.delta(ebiten.CursorPosition())

	return engine.Input{
		Forward:     ebiten.IsKeyPressed(ebiten.KeyW),
		Backward:    ebiten.IsKeyPressed(ebiten.KeyS),
		StrafeLeft:  ebiten.IsKeyPressed(ebiten.KeyA),
		StrafeRight: ebiten.IsKeyPressed(ebiten.KeyD),
		TurnLeft:    ebiten.IsKeyPressed(ebiten.KeyArrowLeft),
		TurnRight:   ebiten.IsKeyPressed(ebiten.KeyArrowRight),
		LookUp:      ebiten.IsKeyPressed(ebiten.KeyArrowUp),
		LookDown:    ebiten.IsKeyPressed(ebiten.KeyArrowDown),
		MouseDX:     dx,
		MouseDY:     dy,
		Grabbed:     ih.game.grabbed,
	}, nil
}

// mouseTracker turns absolute cursor positions into per-frame deltas.
type mouseTracker struct {
	lastX, lastY int
	valid        bool
}

// delta returns the movement since the previous call. The first call after
// a reset reports no movement so a cursor jump on capture is ignored.
func (m *mouseTracker) delta(x, y int) (float64, float64) {
	if !m.valid {
		m.lastX, m.lastY, m.valid = x, y, true
		return 0, 0
	}
	dx, dy := x-m.lastX, y-m.lastY
	m.lastX, m.lastY = x, y
	return float64(dx), float64(dy)
}

func (m *mouseTracker) reset() {
	m.valid = false
}
