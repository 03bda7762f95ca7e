package game

// Start leaves the title screen and begins play with full health and ammo.
// Enemies only appear once frames are ticked. Starting while already playing
// does nothing; starting from the end screen is a restart.
func (s *Simulation) Start() {
	switch s.phase {
	case Playing:
		return
	case Over:
		s.Restart()
		return
	}

	s.resetStats()
	s.phase = Playing
	s.ui.SetInstructions(false)
	s.pushStats()
	s.logger.Info("game started")
}

// Restart throws away the current round: all enemies and bullets are removed,
// the camera returns to the spawn point and every counter is reset.
func (s *Simulation) Restart() {
	clear(s.enemies)
	clear(s.bullets)
	s.enemies = s.enemies[:0]
	s.bullets = s.bullets[:0]
	s.player.Reset()
	s.resetStats()

	s.phase = Playing
	s.ui.SetInstructions(false)
	s.ui.SetEndScreen(false, 0, s.best)
	s.pushStats()
	s.logger.Info("game restarted")
}

// Reload refills the magazine. It does nothing when the magazine is already
// full or the game is not being played.
func (s *Simulation) Reload() {
	if s.phase != Playing || s.stats.Ammo >= s.cfg.MaxAmmo {
		return
	}
	s.stats.Ammo = s.cfg.MaxAmmo
	s.pushStats()
	s.logger.Debug("reloaded")
}

// takeDamage lowers health, never below zero, and ends the game when it
// reaches zero.
func (s *Simulation) takeDamage(amount int) {
	if s.phase != Playing {
		return
	}
	s.stats.Health -= amount
	if s.stats.Health <= 0 {
		s.stats.Health = 0
		s.pushStats()
		s.endGame()
		return
	}
	s.pushStats()
}

// endGame switches to the end screen and records the final score.
func (s *Simulation) endGame() {
	s.phase = Over

	if s.scores != nil {
		best, err := s.scores.Submit(s.stats.Score)
		if err != nil {
			s.logger.Warn("recording score failed", "err", err)
		} else {
			s.best = best
		}
	}
	if s.stats.Score > s.best {
		s.best = s.stats.Score
	}

	s.ui.SetEndScreen(true, s.stats.Score, s.best)
	s.ui.ReleasePointer()
	s.logger.Info("game over", "score", s.stats.Score, "kills", s.stats.Kills, "best", s.best)
}

// resetStats restores health, ammo and score. Frame count survives.
func (s *Simulation) resetStats() {
	frames := s.stats.Frames
	s.stats = Stats{
		Health:  s.cfg.MaxHealth,
		Ammo:    s.cfg.MaxAmmo,
		MaxAmmo: s.cfg.MaxAmmo,
		Frames:  frames,
	}
}

// pushStats sends the visible counters to the UI.
func (s *Simulation) pushStats() {
	s.ui.SetStats(s.stats.Health, s.stats.Score, s.stats.Ammo)
}
