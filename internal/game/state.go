package game

import (
	"time"

	"github.com/tomz197/fps/internal/object"
)

// Phase is the lifecycle phase of a game.
type Phase int

const (
	NotStarted Phase = iota // Title screen with instructions
	Playing                 // Active gameplay
	Over                    // Health ran out, end screen shown
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case NotStarted:
		return "not_started"
	case Playing:
		return "playing"
	case Over:
		return "over"
	default:
		return "unknown"
	}
}

// Stats holds the player's counters.
type Stats struct {
	Health  int
	Ammo    int
	MaxAmmo int
	Score   int

	Kills      int
	ShotsFired int
	Frames     uint64        // Ticks since the simulation was created
	FrameTime  time.Duration // Wall time of the last completed frame
}

// View is a read-only picture of the world handed to renderers.
type View struct {
	Phase     Phase
	Player    object.Player
	Enemies   []object.Enemy
	Bullets   []object.Bullet
	Obstacles []object.Obstacle
	Stats     Stats
	Best      int // Best score known to the score book, 0 if none
}
