// Package game implements the first-person shooter simulation: player
// movement, enemy spawning and homing, bullets, and score/health bookkeeping.
//
// A Simulation is advanced one frame at a time by Tick. It is not safe for
// concurrent use; the driver that owns it must call it from one goroutine.
package game

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/fps/internal/config"
	"github.com/tomz197/fps/internal/object"
	"github.com/tomz197/fps/internal/physics"
)

// gridThreshold is the number of bullet-enemy pairs above which the bullet
// pass switches from a linear scan to the spatial grid.
var gridThreshold = 512

// Input is everything sampled from the player between two ticks.
type Input struct {
	Forward bool
	Back    bool
	Left    bool
	Right   bool

	LookDX float64 // Pointer movement since the previous tick
	LookDY float64

	Fire    int  // Trigger pulls since the previous tick
	Reload  bool // Reload requested
	Start   bool // Start from the title screen (or restart after game over)
	Restart bool // Unconditional restart
}

// ScoreBook records final scores. Implementations may persist them.
type ScoreBook interface {
	// Best returns the best recorded score, 0 if none.
	Best() int
	// Submit records a finished game and returns the best score so far.
	Submit(score int) (best int, err error)
}

// Options configures a Simulation. Zero values select sensible defaults.
type Options struct {
	Settings config.Settings
	Rand     *rand.Rand
	UI       UI
	Scores   ScoreBook
	Logger   *log.Logger
}

// Simulation owns the whole world state of one game.
type Simulation struct {
	cfg    config.Settings
	rng    *rand.Rand
	ui     UI
	scores ScoreBook
	logger *log.Logger

	phase     Phase
	player    object.Player
	enemies   []object.Enemy
	bullets   []object.Bullet
	obstacles []object.Obstacle
	ids       object.IDSource

	stats Stats
	best  int

	grid *physics.Grid
}

// New creates a simulation on the title screen. The obstacles are placed
// once here and never change. Zero settings select config.Default; settings
// that fail validation are replaced by the defaults with a warning.
func New(opts Options) *Simulation {
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	cfg := opts.Settings
	if cfg.IsZero() {
		cfg = config.Default()
	} else if err := cfg.Validate(); err != nil {
		logger.Warn("invalid settings, using defaults", "err", err)
		cfg = config.Default()
	}
	ui := opts.UI
	if ui == nil {
		logger.Warn("no display attached, running headless")
		ui = NopUI{}
	}

	s := &Simulation{
		cfg:       cfg,
		rng:       rng,
		ui:        ui,
		scores:    opts.Scores,
		logger:    logger,
		phase:     NotStarted,
		player:    object.NewPlayer(),
		obstacles: object.NewObstacles(cfg.Obstacles, cfg.ObstacleRadius),
		grid:      physics.NewGrid(cfg.HitRadius),
	}
	if s.scores != nil {
		s.best = s.scores.Best()
	}
	s.resetStats()
	s.ui.SetInstructions(true)
	s.pushStats()
	return s
}

// Settings returns the tuning this simulation runs with.
func (s *Simulation) Settings() config.Settings {
	return s.cfg
}

// Phase returns the current lifecycle phase.
func (s *Simulation) Phase() Phase {
	return s.phase
}

// Stats returns a copy of the counters.
func (s *Simulation) Stats() Stats {
	return s.stats
}

// Player returns the camera pose.
func (s *Simulation) Player() object.Player {
	return s.player
}

// Tick advances the world by one frame. Queued actions are applied first,
// then the player, the enemies and the bullets are updated in that order.
// Nothing moves unless the game is being played.
func (s *Simulation) Tick(in Input) {
	s.stats.Frames++

	switch {
	case in.Restart:
		s.Restart()
	case in.Start:
		s.Start()
	}

	if s.phase != Playing {
		return
	}

	s.player.Look(in.LookDX, in.LookDY, s.cfg.LookSpeed)
	if in.Reload {
		s.Reload()
	}
	for range in.Fire {
		s.Fire()
	}

	s.updatePlayer(in)
	s.updateEnemies()

	// Contact damage may have ended the game; freeze the rest of the frame
	// so the final score shown is the one recorded.
	if s.phase != Playing {
		return
	}
	s.updateBullets()
}

// RecordFrameTime stores how long the driver's last frame took. It is kept
// for display only; the simulation itself advances per tick.
func (s *Simulation) RecordFrameTime(d time.Duration) {
	s.stats.FrameTime = d
}

// View exposes the world for rendering. The slices alias internal state and
// are only valid until the next call that mutates the simulation.
func (s *Simulation) View() View {
	return View{
		Phase:     s.phase,
		Player:    s.player,
		Enemies:   s.enemies,
		Bullets:   s.bullets,
		Obstacles: s.obstacles,
		Stats:     s.stats,
		Best:      s.best,
	}
}
