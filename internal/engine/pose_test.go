package engine

import (
	"math"
	"testing"

	"raycaster/internal/collision"
	"raycaster/internal/config"
	"raycaster/internal/world"
)

func testControls() (Controls, *collision.CollisionSystem) {
	g := world.DefaultGrid(64)
	return ControlsFromConfig(config.Default()), collision.NewCollisionSystem(g, g.TileSize)
}

func TestPose_StepRotation(t *testing.T) {
	c, cs := testControls()

	tests := []struct {
		name  string
		start Pose
		in    Input
		dt    float64
		angle float64
		pitch float64
	}{
		{"turn right", Pose{X: 288, Y: 288}, Input{TurnRight: true}, 0.5, 1.5, 0},
		{"turn left wraps", Pose{X: 288, Y: 288}, Input{TurnLeft: true}, 0.5, 2*math.Pi - 1.5, 0},
		{"look up", Pose{X: 288, Y: 288}, Input{LookUp: true}, 0.1, 0, 0.3},
		{"look down clamps", Pose{X: 288, Y: 288}, Input{LookDown: true}, 2, 0, -MaxPitch},
		{"mouse ignored when free", Pose{X: 288, Y: 288}, Input{MouseDX: 500, MouseDY: 100}, 0.1, 0, 0},
		{"mouse when grabbed", Pose{X: 288, Y: 288}, Input{MouseDX: 500, MouseDY: 100, Grabbed: true}, 0.1, 0.5, -0.1},
		{"full turn wraps", Pose{X: 288, Y: 288, Angle: 6}, Input{TurnRight: true}, 1, 9 - 2*math.Pi, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.start.Step(tt.in, tt.dt, c, cs)
			if math.Abs(got.Angle-tt.angle) > 1e-9 || math.Abs(got.Pitch-tt.pitch) > 1e-9 {
				t.Errorf("angle,pitch = %v,%v want %v,%v", got.Angle, got.Pitch, tt.angle, tt.pitch)
			}
			if got.Angle < 0 || got.Angle >= 2*math.Pi {
				t.Errorf("angle %v outside [0, 2pi)", got.Angle)
			}
		})
	}
}

func TestPose_StepMovement(t *testing.T) {
	c, cs := testControls()
	start := Pose{X: 288, Y: 288}

	tests := []struct {
		name   string
		in     Input
		dx, dy float64
	}{
		{"forward", Input{Forward: true}, 10, 0},
		{"backward", Input{Backward: true}, -10, 0},
		{"strafe left", Input{StrafeLeft: true}, 0, -10},
		{"strafe right", Input{StrafeRight: true}, 0, 10},
		{"diagonal is normalised", Input{Forward: true, StrafeRight: true}, 10 / math.Sqrt2, 10 / math.Sqrt2},
		{"opposites cancel", Input{Forward: true, Backward: true}, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := start.Step(tt.in, 0.1, c, cs)
			if math.Abs(got.X-(start.X+tt.dx)) > 1e-9 || math.Abs(got.Y-(start.Y+tt.dy)) > 1e-9 {
				t.Errorf("position = (%v,%v), want (%v,%v)", got.X, got.Y, start.X+tt.dx, start.Y+tt.dy)
			}
		})
	}
}

func TestPose_StepSlidesAlongWalls(t *testing.T) {
	c, cs := testControls()

	// Cell (6,1) is empty and (7,1) is the east wall; heading north-east
	// only the northward part survives.
	start := Pose{X: 440, Y: 100, Angle: 7 * math.Pi / 4}
	got := start.Step(Input{Forward: true}, 0.2, c, cs)
	if got.X != 440 {
		t.Errorf("x = %v, want 440", got.X)
	}
	if want := 100 - 20/math.Sqrt2; math.Abs(got.Y-want) > 1e-9 {
		t.Errorf("y = %v, want %v", got.Y, want)
	}
}

func TestPose_StepIgnoresBadDelta(t *testing.T) {
	c, cs := testControls()
	start := Pose{X: 288, Y: 288}

	for _, dt := range []float64{-1, math.NaN(), math.Inf(1)} {
		if got := start.Step(Input{Forward: true, TurnLeft: true}, dt, c, cs); got != start {
			t.Errorf("dt %v changed pose to %+v", dt, got)
		}
	}
}
