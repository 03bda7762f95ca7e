package object

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Enemy walks straight at the player and hurts on contact.
type Enemy struct {
	ID       uint64
	Position mgl64.Vec3
	Health   int
	Speed    float64 // Distance covered per frame
}

// NewEnemyOnRing places an enemy on the ground on a circle of the given
// radius around center, at angle radians measured from +X toward +Z.
func NewEnemyOnRing(id uint64, center mgl64.Vec3, radius, angle float64, health int, speed float64) Enemy {
	return Enemy{
		ID: id,
		Position: mgl64.Vec3{
			center.X() + math.Cos(angle)*radius,
			GroundHeight,
			center.Z() + math.Sin(angle)*radius,
		},
		Health: health,
		Speed:  speed,
	}
}

// Alive reports whether the enemy still has health left.
func (e Enemy) Alive() bool {
	return e.Health > 0
}

// Advance moves the enemy one frame toward target.
func (e *Enemy) Advance(target mgl64.Vec3) {
	toward := target.Sub(e.Position)
	if toward.Len() == 0 {
		return
	}
	e.Position = e.Position.Add(toward.Normalize().Mul(e.Speed))
}

// Hit removes one point of health and reports whether that killed the enemy.
func (e *Enemy) Hit() (killed bool) {
	e.Health--
	return e.Health <= 0
}
