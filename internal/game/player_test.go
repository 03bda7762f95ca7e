package game

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/tomz197/fps/internal/object"
)

func TestMoveForward(t *testing.T) {
	sim := newPlaying(t, quietSettings())

	sim.Tick(Input{Forward: true})

	want := ahead(0.1)
	if got := sim.Player().Position; !got.ApproxEqualThreshold(want, epsilon) {
		t.Errorf("Position = %v, want %v", got, want)
	}
}

func TestMoveIgnoresPitch(t *testing.T) {
	sim := newPlaying(t, quietSettings())
	sim.Tick(Input{LookDY: -300}) // look well up

	sim.Tick(Input{Forward: true})

	got := sim.Player().Position
	if got.Y() != object.EyeHeight {
		t.Errorf("height changed to %v while walking", got.Y())
	}
	if d := got.Sub(object.SpawnPoint).Len(); math.Abs(d-0.1) > epsilon {
		t.Errorf("moved %v, want full step 0.1", d)
	}
}

func TestDiagonalMoveIsNormalized(t *testing.T) {
	sim := newPlaying(t, quietSettings())

	sim.Tick(Input{Forward: true, Right: true})

	got := sim.Player().Position.Sub(object.SpawnPoint)
	if math.Abs(got.Len()-0.1) > epsilon {
		t.Errorf("diagonal step length = %v, want 0.1", got.Len())
	}
	if got.X() <= 0 || got.Z() >= 0 {
		t.Errorf("step %v should go forward and right", got)
	}
}

func TestOpposingKeysCancel(t *testing.T) {
	sim := newPlaying(t, quietSettings())

	sim.Tick(Input{Forward: true, Back: true, Left: true, Right: true})

	if sim.Player().Position != object.SpawnPoint {
		t.Errorf("moved to %v with cancelling keys", sim.Player().Position)
	}
}

func TestObstacleBlocksMove(t *testing.T) {
	cfg := quietSettings()
	cfg.Obstacles = [][2]float64{{0, -3}}
	sim := newPlaying(t, cfg)

	for range 20 {
		sim.Tick(Input{Forward: true})
	}

	// Steps of 0.1 stop at z = -0.5: the next one would be inside 2.5 units.
	want := ahead(0.5)
	if got := sim.Player().Position; !got.ApproxEqualThreshold(want, 1e-6) {
		t.Errorf("Position = %v, want %v", got, want)
	}

	// Walking away still works.
	sim.Tick(Input{Back: true})
	if got := sim.Player().Position; !got.ApproxEqualThreshold(ahead(0.4), 1e-6) {
		t.Errorf("Position after backing off = %v, want %v", got, ahead(0.4))
	}
}

func TestPitchClamped(t *testing.T) {
	sim := newPlaying(t, quietSettings())

	sim.Tick(Input{LookDY: -1e6})
	if p := sim.Player().Pitch; p != math.Pi/2 {
		t.Errorf("Pitch = %v, want pi/2", p)
	}
	sim.Tick(Input{LookDY: 1e6})
	if p := sim.Player().Pitch; p != -math.Pi/2 {
		t.Errorf("Pitch = %v, want -pi/2", p)
	}
}

func TestWalkingWhileLookingStraightDown(t *testing.T) {
	sim := newPlaying(t, quietSettings())
	sim.Tick(Input{LookDY: 1e6})

	sim.Tick(Input{Forward: true})

	p := sim.Player().Position
	for i := range 3 {
		if math.IsNaN(p[i]) || math.IsInf(p[i], 0) {
			t.Fatalf("Position = %v", p)
		}
	}
}

func TestLookTurnsRight(t *testing.T) {
	var p object.Player
	p.Reset()

	p.Look(100, 0, 0.002)

	f := p.Forward()
	if f.X() <= 0 {
		t.Errorf("Forward = %v, want +X component after turning right", f)
	}
	if !mgl64.FloatEqualThreshold(f.Len(), 1, epsilon) {
		t.Errorf("Forward length = %v, want 1", f.Len())
	}
}
