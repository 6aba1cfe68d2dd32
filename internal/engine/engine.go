package engine

import (
	"context"
	"fmt"

	"raycaster/internal/collision"
	"raycaster/internal/config"
	"raycaster/internal/graphics"
	"raycaster/internal/projection"
	"raycaster/internal/raycast"
	"raycaster/internal/render"
	"raycaster/internal/threading"
	"raycaster/internal/threading/monitoring"
	"raycaster/internal/world"
)

// Engine owns the camera pose and produces one framebuffer per frame:
// cast every column, then paint every column.
type Engine struct {
	config      *config.Config
	grid        *world.Grid
	collision   *collision.CollisionSystem
	caster      *raycast.Caster
	projector   *projection.Projector
	painter     *render.ColumnPainter
	threading   *threading.ThreadingComponents
	framebuffer *render.Framebuffer
	columns     []raycast.Column
	controls    Controls
	reveal      *Reveal
	pose        Pose
}

// NewEngine wires the renderer for grid and atlas and places the camera at
// the grid's start position facing +X.
func NewEngine(cfg *config.Config, grid *world.Grid, atlas *graphics.TextureAtlas) (*Engine, error) {
	if int(grid.MaxMaterial()) > atlas.Bands() {
		fmt.Printf("[Engine] Map uses material %d but the atlas has %d bands; ids wrap around\n", grid.MaxMaterial(), atlas.Bands())
	}

	startX, startY, err := grid.StartPosition()
	if err != nil {
		return nil, fmt.Errorf("placing camera: %w", err)
	}

	rays := cfg.GetRayCount()
	e := &Engine{
		config:      cfg,
		grid:        grid,
		collision:   collision.NewCollisionSystem(grid, grid.TileSize),
		caster:      raycast.NewCaster(grid, cfg.GetCameraFOV(), rays, cfg.GetMaxRayDistance()),
		projector:   projection.NewProjector(cfg.GetScreenHeight(), cfg.GetCameraFOV(), grid.TileSize, cfg.GetViewDistance()),
		painter:     render.NewColumnPainter(atlas, cfg),
		threading:   threading.NewThreadingComponents(cfg),
		framebuffer: render.NewFramebuffer(rays, cfg.GetScreenHeight()),
		columns:     make([]raycast.Column, rays),
		controls:    ControlsFromConfig(cfg),
		reveal:      NewReveal(cfg.Reveal.Enabled, cfg.Reveal.ColumnsPerSecond, rays),
		pose:        Pose{X: startX, Y: startY},
	}

	fmt.Printf("[Engine] %d rays x %d rows, %d workers, start (%.0f, %.0f)\n",
		rays, cfg.GetScreenHeight(), e.threading.ParallelRenderer.GetNumWorkers(), startX, startY)
	return e, nil
}

// Update applies one frame of input and advances the reveal sweep. It is
// the only place the pose changes.
func (e *Engine) Update(in Input, dt float64) Pose {
	e.pose = e.pose.Step(in, dt, e.controls, e.collision)
	e.reveal.Advance(dt)
	return e.pose
}

// Frame renders the current pose into the framebuffer and returns it. The
// returned buffer is reused by the next call.
func (e *Engine) Frame(ctx context.Context) (*render.Framebuffer, error) {
	monitor := e.threading.PerformanceMonitor
	frameTimer := monitor.StartFrame()
	defer frameTimer.Stop()

	raycastTimer := monitor.StartRaycast()
	err := e.caster.CastAll(e.pose.Camera(), e.columns, e.threading.ParallelRenderer)
	raycastTimer.Stop()
	if err != nil {
		return nil, fmt.Errorf("casting columns: %w", err)
	}

	paintTimer := monitor.StartPaint()
	defer paintTimer.Stop()

	horizon := e.projector.Horizon(e.pose.Pitch)
	ready := e.reveal.Ready()
	err = e.threading.ParallelRenderer.PaintColumns(ctx, len(e.columns), func(start, end int) error {
		for x := start; x < end; x++ {
			e.paintColumn(x, horizon, ready)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("painting columns: %w", err)
	}
	return e.framebuffer, nil
}

func (e *Engine) paintColumn(x int, horizon float64, ready int) {
	if x >= ready {
		e.painter.PaintBlank(e.framebuffer, x)
		return
	}
	col := &e.columns[x]
	if !col.Ok {
		e.painter.PaintMiss(e.framebuffer, x, horizon)
		return
	}
	span := e.projector.Project(col.Hit.Distance, col.Offset, horizon)
	e.painter.PaintHit(e.framebuffer, x, span, col.Hit)
}

// Pose returns the current camera pose.
func (e *Engine) Pose() Pose { return e.pose }

// SetPose replaces the camera pose, wrapping the angle and clamping pitch.
func (e *Engine) SetPose(p Pose) {
	e.pose = p.Step(Input{}, 0, e.controls, e.collision)
}

// Columns returns the cast results of the last frame, indexed by column.
func (e *Engine) Columns() []raycast.Column { return e.columns }

// Grid returns the map being rendered.
func (e *Engine) Grid() *world.Grid { return e.grid }

// Framebuffer returns the buffer Frame renders into.
func (e *Engine) Framebuffer() *render.Framebuffer { return e.framebuffer }

// Reveal returns the sweep state.
func (e *Engine) Reveal() *Reveal { return e.reveal }

// Metrics returns the latest frame timings.
func (e *Engine) Metrics() monitoring.FrameMetrics {
	return e.threading.GetPerformanceMetrics()
}

// Alerts returns the performance warnings for the latest frame.
func (e *Engine) Alerts() []monitoring.PerformanceAlert {
	return e.threading.CheckPerformanceAlerts()
}

// Close stops the worker goroutines. Frame fails once the engine is closed.
func (e *Engine) Close() {
	if e.threading.ParallelRenderer.Stopped() {
		return
	}
	stats := e.threading.PerformanceMonitor.GetDetailedStats()
	fmt.Printf("[Engine] Shutdown after %v frames: avg frame %.2fms, cast %.2fms, paint %.2fms\n",
		stats["frame_count"], stats["avg_frame_time_ms"], stats["avg_raycast_time_ms"], stats["avg_paint_time_ms"])
	e.threading.Shutdown()
}
