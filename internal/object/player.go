package object

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// SpawnPoint is where the camera starts and returns to on restart.
var SpawnPoint = mgl64.Vec3{0, EyeHeight, 0}

// minMoveLength guards against normalizing a vector that vanished after the
// vertical component was dropped (looking straight up or down).
const minMoveLength = 1e-9

// Player is the camera pose of the person playing.
type Player struct {
	Position mgl64.Vec3
	Yaw      float64 // Rotation about +Y in radians, positive turns left
	Pitch    float64 // Rotation about +X in radians, clamped to [-pi/2, pi/2]
}

// NewPlayer returns a player at the spawn point looking down -Z.
func NewPlayer() Player {
	return Player{Position: SpawnPoint}
}

// Reset moves the player back to the spawn point with a level, forward gaze.
func (p *Player) Reset() {
	*p = NewPlayer()
}

// Orientation returns the camera rotation: yaw about world up, then pitch
// about the camera's own right axis.
func (p Player) Orientation() mgl64.Quat {
	yaw := mgl64.QuatRotate(p.Yaw, Up)
	pitch := mgl64.QuatRotate(p.Pitch, Right)
	return yaw.Mul(pitch)
}

// Forward returns the unit vector the camera is looking along.
func (p Player) Forward() mgl64.Vec3 {
	return p.Orientation().Rotate(Forward)
}

// Look applies a pointer delta. Moving right (dx > 0) turns right, moving
// down (dy > 0) looks down. Yaw stays in [-pi, pi]; a delta that would make
// the pose non-finite is ignored.
func (p *Player) Look(dx, dy, sensitivity float64) {
	yaw := p.Yaw - dx*sensitivity
	pitch := p.Pitch - dy*sensitivity
	if !finite(yaw) || !finite(pitch) {
		return
	}
	p.Pitch = mgl64.Clamp(pitch, -math.Pi/2, math.Pi/2)
	p.Yaw = math.Remainder(yaw, 2*math.Pi)
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Heading is the set of held movement keys.
type Heading struct {
	Forward bool
	Back    bool
	Left    bool
	Right   bool
}

// MoveDelta returns the horizontal displacement for one frame of movement at
// the given speed. ok is false when no key is held or the keys cancel out.
func (p Player) MoveDelta(h Heading, speed float64) (delta mgl64.Vec3, ok bool) {
	var local mgl64.Vec3
	if h.Forward {
		local[2] -= 1
	}
	if h.Back {
		local[2] += 1
	}
	if h.Left {
		local[0] -= 1
	}
	if h.Right {
		local[0] += 1
	}
	if local.Len() < minMoveLength {
		return mgl64.Vec3{}, false
	}

	world := p.Orientation().Rotate(local.Normalize())
	world[1] = 0
	if world.Len() < minMoveLength {
		return mgl64.Vec3{}, false
	}
	return world.Normalize().Mul(speed), true
}
