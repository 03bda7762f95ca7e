package game

import (
	"math"

	"github.com/tomz197/fps/internal/object"
	"github.com/tomz197/fps/internal/physics"
)

// updateEnemies rolls for a spawn, then walks every enemy toward the player
// and resolves contact. Enemies that touch the player are removed in the same
// pass by compaction, so none is skipped or processed twice.
func (s *Simulation) updateEnemies() {
	if s.rng.Float64() < s.cfg.SpawnRate {
		s.spawnEnemy()
	}

	target := s.player.Position
	kept := s.enemies[:0] // reuse backing array
	for _, e := range s.enemies {
		e.Advance(target)

		if s.phase == Playing && physics.Within(e.Position, target, s.cfg.ContactRadius) {
			s.takeDamage(s.cfg.ContactDamage)
			continue
		}
		kept = append(kept, e)
	}
	clearTail(s.enemies, len(kept))
	s.enemies = kept
}

// spawnEnemy places a new enemy at a random angle on the spawn ring around
// the player.
func (s *Simulation) spawnEnemy() {
	angle := s.rng.Float64() * 2 * math.Pi
	e := object.NewEnemyOnRing(s.ids.Next(), s.player.Position, s.cfg.SpawnRadius, angle, s.cfg.EnemyHealth, s.cfg.EnemySpeed)
	s.enemies = append(s.enemies, e)
	s.logger.Debug("enemy spawned", "id", e.ID, "count", len(s.enemies))
}

// SpawnEnemyAt adds an enemy at an explicit position. Used by scripted
// scenarios and tests; normal play spawns through the per-frame roll.
func (s *Simulation) SpawnEnemyAt(e object.Enemy) object.Enemy {
	e.ID = s.ids.Next()
	if e.Health <= 0 {
		e.Health = s.cfg.EnemyHealth
	}
	s.enemies = append(s.enemies, e)
	return e
}

// clearTail zeroes the elements past n so compacted slices drop stale values.
func clearTail[T any](items []T, n int) {
	clear(items[n:])
}
