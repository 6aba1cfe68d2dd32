package terminal

import (
	"context"
	"fmt"
	"image/color"
	"time"

	"github.com/gdamore/tcell/v2"

	"raycaster/internal/engine"
	"raycaster/internal/render"
)

// halfBlock draws the upper half of a cell in the foreground color and the
// lower half in the background color, doubling vertical resolution.
const halfBlock = '▀'

// Cell is one terminal cell of the downsampled view.
type Cell struct {
	Top    color.RGBA
	Bottom color.RGBA
}

// Downsample maps the framebuffer onto cols x rows half-block cells by
// nearest-neighbour sampling.
func Downsample(fb *render.Framebuffer, cols, rows int) []Cell {
	if cols <= 0 || rows <= 0 {
		return nil
	}
	cells := make([]Cell, cols*rows)
	fw, fh := fb.Width(), fb.Height()
	subRows := rows * 2
	for row := 0; row < rows; row++ {
		topY := (2 * row) * fh / subRows
		bottomY := (2*row + 1) * fh / subRows
		for col := 0; col < cols; col++ {
			x := col * fw / cols
			cells[row*cols+col] = Cell{Top: fb.At(x, topY), Bottom: fb.At(x, bottomY)}
		}
	}
	return cells
}

// keyInput maps a terminal key press to one frame of engine input. Terminals
// report presses only, so every event moves the camera for a single tick.
func keyInput(key tcell.Key, ch rune) (in engine.Input, quit bool) {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return in, true
	case tcell.KeyLeft:
		in.TurnLeft = true
	case tcell.KeyRight:
		in.TurnRight = true
	case tcell.KeyUp:
		in.LookUp = true
	case tcell.KeyDown:
		in.LookDown = true
	case tcell.KeyRune:
		switch ch {
		case 'q', 'Q':
			return in, true
		case 'w', 'W':
			in.Forward = true
		case 's', 'S':
			in.Backward = true
		case 'a', 'A':
			in.StrafeLeft = true
		case 'd', 'D':
			in.StrafeRight = true
		}
	}
	return in, false
}

// merge ORs the direction flags of two inputs.
func merge(a, b engine.Input) engine.Input {
	a.Forward = a.Forward || b.Forward
	a.Backward = a.Backward || b.Backward
	a.StrafeLeft = a.StrafeLeft || b.StrafeLeft
	a.StrafeRight = a.StrafeRight || b.StrafeRight
	a.TurnLeft = a.TurnLeft || b.TurnLeft
	a.TurnRight = a.TurnRight || b.TurnRight
	a.LookUp = a.LookUp || b.LookUp
	a.LookDown = a.LookDown || b.LookDown
	return a
}

// Presenter shows the engine's framebuffer in a terminal
type Presenter struct {
	screen tcell.Screen
	engine *engine.Engine
	tick   time.Duration
}

// NewPresenter creates a presenter for an initialised screen. fps sets the
// update rate; zero or less uses 30.
func NewPresenter(screen tcell.Screen, eng *engine.Engine, fps int) *Presenter {
	if fps <= 0 {
		fps = 30
	}
	return &Presenter{
		screen: screen,
		engine: eng,
		tick:   time.Second / time.Duration(fps),
	}
}

// Run drives update, render and present until the user quits or ctx ends.
func (p *Presenter) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 16)
	done := make(chan struct{})
	defer close(done)
	go pumpEvents(p.screen, events, done)

	ticker := time.NewTicker(p.tick)
	defer ticker.Stop()

	var pending engine.Input
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				in, quit := keyInput(ev.Key(), ev.Rune())
				if quit {
					return nil
				}
				if ev.Key() == tcell.KeyRune && (ev.Rune() == 'r' || ev.Rune() == 'R') {
					p.engine.Reveal().Reset()
				}
				pending = merge(pending, in)
			case *tcell.EventResize:
				p.screen.Sync()
			}
		case <-ticker.C:
			if err := p.Step(ctx, pending, p.tick.Seconds()); err != nil {
				return err
			}
			pending = engine.Input{}
		}
	}
}

// pumpEvents forwards screen events until the screen is finalised or done
// is closed.
func pumpEvents(screen tcell.Screen, events chan<- tcell.Event, done <-chan struct{}) {
	defer close(events)
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

// Step advances the engine by dt, renders and presents one frame.
func (p *Presenter) Step(ctx context.Context, in engine.Input, dt float64) error {
	pose := p.engine.Update(in, dt)
	fb, err := p.engine.Frame(ctx)
	if err != nil {
		return fmt.Errorf("rendering frame: %w", err)
	}
	p.Draw(fb, fmt.Sprintf(" x=%.0f y=%.0f angle=%.2f pitch=%.2f  wasd move, arrows look, q quit ", pose.X, pose.Y, pose.Angle, pose.Pitch))
	p.screen.Show()
	return nil
}

// Draw writes the framebuffer to the screen with a status line on the top
// row.
func (p *Presenter) Draw(fb *render.Framebuffer, status string) {
	cols, rows := p.screen.Size()
	for i, c := range Downsample(fb, cols, rows) {
		style := tcell.StyleDefault.
			Foreground(rgb(c.Top)).
			Background(rgb(c.Bottom))
		p.screen.SetContent(i%cols, i/cols, halfBlock, nil, style)
	}

	statusStyle := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	x := 0
	for _, r := range status {
		if x >= cols {
			break
		}
		p.screen.SetContent(x, 0, r, nil, statusStyle)
		x++
	}
}

func rgb(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
