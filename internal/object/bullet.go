package object

import "github.com/go-gl/mathgl/mgl64"

// Bullet is a straight-flying projectile with a lifetime counted in frames.
type Bullet struct {
	ID        uint64
	Position  mgl64.Vec3
	Direction mgl64.Vec3 // Unit vector
	Speed     float64    // Distance covered per frame
	Life      int        // Frames remaining
}

// NewBullet creates a bullet at origin flying along direction.
func NewBullet(id uint64, origin, direction mgl64.Vec3, speed float64, life int) Bullet {
	return Bullet{
		ID:        id,
		Position:  origin,
		Direction: direction.Normalize(),
		Speed:     speed,
		Life:      life,
	}
}

// Advance moves the bullet one frame and burns one frame of lifetime.
// It reports whether the bullet has expired.
func (b *Bullet) Advance() (expired bool) {
	b.Position = b.Position.Add(b.Direction.Mul(b.Speed))
	b.Life--
	return b.Life <= 0
}
