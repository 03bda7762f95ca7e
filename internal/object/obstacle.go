package object

import "github.com/go-gl/mathgl/mgl64"

// Obstacle is a static crate the player cannot walk into.
type Obstacle struct {
	Position mgl64.Vec3
	Radius   float64
}

// DefaultLayout is the crate placement of the standard arena, given as ground
// (x, z) coordinates.
var DefaultLayout = [][2]float64{
	{10, 10}, {-10, -10}, {15, -15}, {-15, 15},
	{20, 0}, {-20, 0}, {0, 20}, {0, -20},
}

// NewObstacles builds obstacles at the given ground positions.
func NewObstacles(layout [][2]float64, radius float64) []Obstacle {
	obstacles := make([]Obstacle, 0, len(layout))
	for _, xz := range layout {
		obstacles = append(obstacles, Obstacle{
			Position: mgl64.Vec3{xz[0], ObstacleHeight, xz[1]},
			Radius:   radius,
		})
	}
	return obstacles
}

// Blocks reports whether p is inside the exclusion radius of any obstacle.
func Blocks(obstacles []Obstacle, p mgl64.Vec3) bool {
	for _, o := range obstacles {
		d := p.Sub(o.Position)
		if d.Dot(d) < o.Radius*o.Radius {
			return true
		}
	}
	return false
}
