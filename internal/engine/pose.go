package engine

import (
	"math"

	"raycaster/internal/collision"
	"raycaster/internal/config"
	"raycaster/internal/mathutil"
	"raycaster/internal/raycast"
)

// MaxPitch keeps the vertical look angle short of straight up or down.
const MaxPitch = math.Pi / 2.1

// Pose is the camera state carried from frame to frame.
type Pose struct {
	X, Y  float64 // world units
	Angle float64 // radians in [0, 2π), 0 faces +X
	Pitch float64 // radians in [-MaxPitch, MaxPitch], positive looks up
}

// Camera returns the part of the pose used for casting.
func (p Pose) Camera() raycast.Camera {
	return raycast.Camera{X: p.X, Y: p.Y, Angle: p.Angle}
}

// Forward returns the unit facing vector.
func (p Pose) Forward() (float64, float64) {
	return math.Cos(p.Angle), math.Sin(p.Angle)
}

// Input is the input state sampled once per frame by a presenter.
type Input struct {
	Forward     bool
	Backward    bool
	StrafeLeft  bool
	StrafeRight bool
	TurnLeft    bool
	TurnRight   bool
	LookUp      bool
	LookDown    bool

	// Mouse movement since the previous frame in device pixels; only used
	// while the cursor is grabbed.
	MouseDX float64
	MouseDY float64
	Grabbed bool
}

// Controls holds the movement tuning.
type Controls struct {
	MoveSpeed        float64 // world units per second
	RotationSpeed    float64 // radians per second
	LookSpeed        float64 // radians per second
	MouseSensitivity float64 // radians per device pixel
}

// ControlsFromConfig reads the movement section of cfg.
func ControlsFromConfig(cfg *config.Config) Controls {
	return Controls{
		MoveSpeed:        cfg.GetMoveSpeed(),
		RotationSpeed:    cfg.GetRotSpeed(),
		LookSpeed:        cfg.Movement.LookSpeed,
		MouseSensitivity: cfg.Movement.MouseSensitivity,
	}
}

// Step returns the pose after applying one frame of input over dt seconds.
// Movement is resolved against cs so the camera slides along walls.
func (p Pose) Step(in Input, dt float64, c Controls, cs *collision.CollisionSystem) Pose {
	if dt < 0 || !mathutil.IsFinite(dt) {
		dt = 0
	}
	next := p

	if in.TurnLeft {
		next.Angle -= c.RotationSpeed * dt
	}
	if in.TurnRight {
		next.Angle += c.RotationSpeed * dt
	}
	if in.LookUp {
		next.Pitch += c.LookSpeed * dt
	}
	if in.LookDown {
		next.Pitch -= c.LookSpeed * dt
	}
	if in.Grabbed {
		next.Angle += in.MouseDX * c.MouseSensitivity
		next.Pitch -= in.MouseDY * c.MouseSensitivity
	}
	next.Angle = mathutil.WrapAngle(next.Angle)
	next.Pitch = mathutil.Clamp(next.Pitch, -MaxPitch, MaxPitch)

	dirX, dirY := next.Forward()
	var moveX, moveY float64
	if in.Forward {
		moveX += dirX
		moveY += dirY
	}
	if in.Backward {
		moveX -= dirX
		moveY -= dirY
	}
	// (dirY, -dirX) points to the camera's left with +Y pointing down
	if in.StrafeLeft {
		moveX += dirY
		moveY -= dirX
	}
	if in.StrafeRight {
		moveX -= dirY
		moveY += dirX
	}

	if length := math.Hypot(moveX, moveY); length > 1e-9 {
		scale := c.MoveSpeed * dt / length
		delta := collision.Point{X: moveX * scale, Y: moveY * scale}
		pos := cs.ResolveMove(collision.Point{X: next.X, Y: next.Y}, delta)
		next.X, next.Y = pos.X, pos.Y
	}

	return next
}
