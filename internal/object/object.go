// Package object defines the entities that live in the arena: the player's
// camera, enemies, bullets and static obstacles.
package object

import "github.com/go-gl/mathgl/mgl64"

// Collision thresholds. These are plain sphere-proximity tests with no swept
// detection, so a fast mover can pass through a target between two frames.
const (
	ObstacleRadius = 2.5 // Player may not move closer than this to an obstacle center
	ContactRadius  = 2.0 // Enemy touches the player below this distance
	HitRadius      = 1.0 // Bullet hits an enemy below this distance
)

// Heights above the ground plane (y = 0).
const (
	EyeHeight      = 2.0 // Camera height
	GroundHeight   = 1.0 // Enemy center on spawn
	ObstacleHeight = 1.5 // Obstacle center
)

// Visual extents, used by renderers only.
var (
	EnemySize    = mgl64.Vec3{1, 2, 1}
	ObstacleSize = mgl64.Vec3{2, 3, 2}
)

// BulletRadius is the drawn radius of a bullet.
const BulletRadius = 0.1

// Axis directions in world space. The camera looks down -Z when yaw and pitch are zero.
var (
	Up      = mgl64.Vec3{0, 1, 0}
	Right   = mgl64.Vec3{1, 0, 0}
	Forward = mgl64.Vec3{0, 0, -1}
)

// IDSource hands out entity ids that are unique within one world.
type IDSource struct {
	next uint64
}

// Next returns a fresh id. Ids start at 1 so zero can mean "none".
func (s *IDSource) Next() uint64 {
	s.next++
	return s.next
}
