package game

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/tomz197/fps/internal/object"
	"github.com/tomz197/fps/internal/physics"
)

// Fire spends one round and launches a bullet from the camera along the view
// direction. It does nothing when the magazine is empty or the game is not
// being played.
func (s *Simulation) Fire() {
	if s.phase != Playing || s.stats.Ammo <= 0 {
		return
	}

	s.stats.Ammo--
	s.stats.ShotsFired++
	b := object.NewBullet(s.ids.Next(), s.player.Position, s.player.Forward(), s.cfg.BulletSpeed, s.cfg.BulletLife)
	s.bullets = append(s.bullets, b)
	s.pushStats()
}

// updateBullets moves every bullet, expires the spent ones and resolves hits.
//
// A bullet hits at most one enemy: the first live enemy (in spawn order)
// within the hit radius. On a hit the bullet is consumed and the scan for that
// bullet stops. Killed enemies are marked by their health and compacted out
// after all bullets have been processed.
func (s *Simulation) updateBullets() {
	if len(s.bullets) == 0 {
		return
	}

	useGrid := len(s.enemies)*len(s.bullets) > gridThreshold
	if useGrid {
		s.fillGrid()
	}

	killed := false
	kept := s.bullets[:0] // reuse backing array
	for _, b := range s.bullets {
		if b.Advance() {
			continue
		}

		target := s.firstHit(b.Position, useGrid)
		if target < 0 {
			kept = append(kept, b)
			continue
		}

		e := &s.enemies[target]
		if e.Hit() {
			killed = true
			s.stats.Kills++
			s.stats.Score += s.cfg.KillScore
			s.logger.Debug("enemy destroyed", "id", e.ID, "score", s.stats.Score)
		}
	}
	clearTail(s.bullets, len(kept))
	s.bullets = kept

	if killed {
		s.removeDeadEnemies()
		s.pushStats()
	}
}

// firstHit returns the index of the lowest-indexed live enemy within the hit
// radius of p, or -1. The grid path returns the same enemy as the linear scan.
func (s *Simulation) firstHit(p mgl64.Vec3, useGrid bool) int {
	if !useGrid {
		for i := range s.enemies {
			if s.enemies[i].Alive() && physics.Within(p, s.enemies[i].Position, s.cfg.HitRadius) {
				return i
			}
		}
		return -1
	}

	best := -1
	s.grid.QueryAround(p.X(), p.Z(), func(i int) bool {
		if best >= 0 && i > best {
			return false
		}
		if s.enemies[i].Alive() && physics.Within(p, s.enemies[i].Position, s.cfg.HitRadius) {
			best = i
		}
		return false
	})
	return best
}

// fillGrid indexes the current enemies by ground position.
func (s *Simulation) fillGrid() {
	minX, minZ := s.enemies[0].Position.X(), s.enemies[0].Position.Z()
	maxX, maxZ := minX, minZ
	for _, e := range s.enemies[1:] {
		minX = min(minX, e.Position.X())
		maxX = max(maxX, e.Position.X())
		minZ = min(minZ, e.Position.Z())
		maxZ = max(maxZ, e.Position.Z())
	}

	s.grid.Reset(minX, minZ, maxX, maxZ)
	for i, e := range s.enemies {
		s.grid.Insert(e.Position.X(), e.Position.Z(), i)
	}
}

// removeDeadEnemies compacts enemies whose health dropped to zero.
func (s *Simulation) removeDeadEnemies() {
	kept := s.enemies[:0]
	for _, e := range s.enemies {
		if e.Alive() {
			kept = append(kept, e)
		}
	}
	clearTail(s.enemies, len(kept))
	s.enemies = kept
}
