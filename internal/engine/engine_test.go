package engine

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"math"
	"testing"

	"raycaster/internal/config"
	"raycaster/internal/graphics"
	"raycaster/internal/threading/core"
	"raycaster/internal/world"
)

var bandColors = []color.RGBA{
	{0, 0, 200, 255},
	{200, 0, 0, 255},
	{0, 200, 0, 255},
}

func testAtlas(t *testing.T) *graphics.TextureAtlas {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 6))
	for y := 0; y < 6; y++ {
		for x := 0; x < 4; x++ {
			img.SetRGBA(x, y, bandColors[y/2])
		}
	}
	atlas, err := graphics.NewTextureAtlas(img, 3)
	if err != nil {
		t.Fatalf("NewTextureAtlas: %v", err)
	}
	return atlas
}

func newTestEngine(t *testing.T, cfg *config.Config) *Engine {
	t.Helper()
	e, err := NewEngine(cfg, world.DefaultGrid(cfg.GetTileSize()), testAtlas(t))
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	t.Cleanup(e.Close)
	return e
}

func TestNewEngine_StartPose(t *testing.T) {
	e := newTestEngine(t, config.Default())

	if got := e.Pose(); got != (Pose{X: 288, Y: 288}) {
		t.Errorf("start pose = %+v, want {288 288 0 0}", got)
	}
	if e.Framebuffer().Width() != 512 || e.Framebuffer().Height() != 512 {
		t.Errorf("framebuffer %dx%d, want 512x512", e.Framebuffer().Width(), e.Framebuffer().Height())
	}

	full, _ := world.NewGridFromRows([][]world.Material{{1, 1}, {1, 1}}, 64)
	if _, err := NewEngine(config.Default(), full, testAtlas(t)); err == nil {
		t.Error("expected error for a map without a free cell")
	}
}

func TestEngine_UpdateMovesThroughCollision(t *testing.T) {
	e := newTestEngine(t, config.Default())

	p := e.Update(Input{Forward: true}, 1)
	if math.Abs(p.X-388) > 1e-9 || math.Abs(p.Y-288) > 1e-9 {
		t.Errorf("after 1s forward pose = %+v, want (388,288)", p)
	}

	// The east wall starts at x=448
	p = e.Update(Input{Forward: true}, 1)
	if math.Abs(p.X-388) > 1e-9 {
		t.Errorf("moved into the east wall: %+v", p)
	}
	if e.Pose() != p {
		t.Errorf("Pose() = %+v, want %+v", e.Pose(), p)
	}
}

func TestEngine_FrameContents(t *testing.T) {
	e := newTestEngine(t, config.Default())

	fb, err := e.Frame(context.Background())
	if err != nil {
		t.Fatalf("Frame: %v", err)
	}

	center := fb.Width() / 2
	col := e.Columns()[center]
	if !col.Ok || math.Abs(col.Hit.Distance-160) > 1e-9 || col.Hit.Material != 2 {
		t.Fatalf("center column = %+v, want a hit on material 2 at 160", col)
	}

	cfg := config.Default()
	if got := fb.At(center, 0); got != cfg.GetSkyColor() {
		t.Errorf("top of center column = %v, want sky", got)
	}
	if got := fb.At(center, 256); got != bandColors[1] {
		t.Errorf("middle of center column = %v, want material 2 texel %v", got, bandColors[1])
	}
	if got := fb.At(center, fb.Height()-1); got != cfg.GetGroundColor() {
		t.Errorf("bottom of center column = %v, want ground", got)
	}

	m := e.Metrics()
	if m.FrameTime <= 0 || m.RaycastTime <= 0 {
		t.Errorf("expected frame timings to be recorded, got %+v", m)
	}
}

func TestEngine_FrameIsDeterministicAcrossWorkers(t *testing.T) {
	poses := []Pose{
		{X: 288, Y: 288, Angle: 0.3, Pitch: 0.2},
		{X: 100, Y: 420, Angle: 5.5, Pitch: -0.4},
		{X: 300, Y: 100, Angle: 2, Pitch: 0},
	}

	var frames [][]byte
	for _, workers := range []int{1, 3, 8} {
		cfg := config.Default()
		cfg.Graphics.Workers = workers
		e := newTestEngine(t, cfg)

		var all []byte
		for _, p := range poses {
			e.SetPose(p)
			fb, err := e.Frame(context.Background())
			if err != nil {
				t.Fatalf("Frame: %v", err)
			}
			all = append(all, fb.Pix()...)
		}
		frames = append(frames, all)
	}

	for i := 1; i < len(frames); i++ {
		if !bytes.Equal(frames[0], frames[i]) {
			t.Errorf("frames with worker configuration %d differ from the sequential run", i)
		}
	}
}

func TestEngine_RevealSweep(t *testing.T) {
	cfg := config.Default()
	cfg.Reveal.Enabled = true
	cfg.Reveal.ColumnsPerSecond = 100
	e := newTestEngine(t, cfg)

	e.Update(Input{}, 1)
	if e.Reveal().Ready() != 100 {
		t.Fatalf("ready = %d, want 100", e.Reveal().Ready())
	}

	fb, err := e.Frame(context.Background())
	if err != nil {
		t.Fatalf("Frame: %v", err)
	}
	for y := 0; y < fb.Height(); y++ {
		if got := fb.At(300, y); got != cfg.GetSkyColor() {
			t.Fatalf("unrevealed column 300 row %d = %v, want sky", y, got)
		}
	}
	if got := fb.At(50, fb.Height()-1); got != cfg.GetGroundColor() {
		t.Errorf("revealed column 50 bottom = %v, want ground", got)
	}
}

func TestEngine_FrameAfterCloseFails(t *testing.T) {
	for _, workers := range []int{1, 4} {
		cfg := config.Default()
		cfg.Graphics.Workers = workers
		e := newTestEngine(t, cfg)

		if _, err := e.Frame(context.Background()); err != nil {
			t.Fatalf("workers=%d: Frame before Close: %v", workers, err)
		}
		e.Close()
		e.Close()

		_, err := e.Frame(context.Background())
		if !errors.Is(err, core.ErrPoolStopped) {
			t.Errorf("workers=%d: Frame after Close = %v, want ErrPoolStopped", workers, err)
		}
	}
}

func TestEngine_AlertsFollowFrameTimings(t *testing.T) {
	e := newTestEngine(t, config.Default())
	if alerts := e.Alerts(); len(alerts) != 0 {
		t.Errorf("fresh engine alerts = %+v, want none", alerts)
	}
	if _, err := e.Frame(context.Background()); err != nil {
		t.Fatalf("Frame: %v", err)
	}
	for _, a := range e.Alerts() {
		if a.Type != "low_fps" && a.Type != "slow_raycast" {
			t.Errorf("unexpected alert type %q", a.Type)
		}
	}
}

func TestReveal(t *testing.T) {
	r := NewReveal(false, 10, 512)
	if r.Ready() != 512 || !r.Done() {
		t.Errorf("disabled reveal ready = %d, want 512", r.Ready())
	}

	r = NewReveal(true, 300, 512)
	r.Advance(0.5)
	if r.Ready() != 150 {
		t.Errorf("ready = %d, want 150", r.Ready())
	}
	r.Advance(-1)
	if r.Ready() != 150 {
		t.Errorf("negative dt changed the sweep: %d", r.Ready())
	}
	r.Advance(10)
	if r.Ready() != 512 || !r.Done() {
		t.Errorf("ready = %d, want clamped to 512", r.Ready())
	}
	r.Reset()
	if r.Ready() != 0 {
		t.Errorf("ready after reset = %d, want 0", r.Ready())
	}
}
