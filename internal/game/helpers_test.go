package game

import (
	"math"
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/tomz197/fps/internal/config"
	"github.com/tomz197/fps/internal/object"
)

// quietSettings returns the default tuning without random spawns or
// obstacles, so a test controls every entity in the world.
func quietSettings() config.Settings {
	cfg := config.Default()
	cfg.SpawnRate = 0
	cfg.Obstacles = nil
	return cfg
}

// newPlaying builds a started simulation with the given settings.
func newPlaying(t *testing.T, cfg config.Settings) *Simulation {
	t.Helper()
	sim := New(Options{Settings: cfg, Rand: rand.New(rand.NewSource(1))})
	sim.Start()
	if sim.Phase() != Playing {
		t.Fatalf("Phase after Start = %v, want playing", sim.Phase())
	}
	return sim
}

// ahead returns a point dist units in front of the spawn point, at eye level.
func ahead(dist float64) mgl64.Vec3 {
	return object.SpawnPoint.Add(mgl64.Vec3{0, 0, -dist})
}

// fakeScores is an in-memory ScoreBook.
type fakeScores struct {
	best      int
	submitted []int
}

func (f *fakeScores) Best() int { return f.best }

func (f *fakeScores) Submit(score int) (int, error) {
	f.submitted = append(f.submitted, score)
	f.best = max(f.best, score)
	return f.best, nil
}

// dirXZ returns the horizontal unit vector at angle radians from +X toward +Z.
func dirXZ(angle float64) mgl64.Vec3 {
	return mgl64.Vec3{math.Cos(angle), 0, math.Sin(angle)}
}
