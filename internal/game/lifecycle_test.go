package game

import (
	"math/rand"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/tomz197/fps/internal/game/mocks"
	"github.com/tomz197/fps/internal/object"
)

func TestUIReceivesLifecycle(t *testing.T) {
	ctrl := gomock.NewController(t)
	ui := mocks.NewMockUI(ctrl)
	cfg := quietSettings()
	cfg.MaxHealth = 10

	gomock.InOrder(
		ui.EXPECT().SetInstructions(true),
		ui.EXPECT().SetStats(10, 0, 30),
		ui.EXPECT().SetInstructions(false),
		ui.EXPECT().SetStats(10, 0, 30),
		ui.EXPECT().SetStats(10, 0, 29),
		ui.EXPECT().SetStats(0, 0, 29),
		ui.EXPECT().SetEndScreen(true, 0, 0),
		ui.EXPECT().ReleasePointer(),
	)

	sim := New(Options{Settings: cfg, UI: ui, Rand: rand.New(rand.NewSource(1))})
	sim.Start()
	sim.Fire()
	sim.SpawnEnemyAt(object.Enemy{Position: object.SpawnPoint.Add(dirXZ(1).Mul(2.01)), Speed: 0.02})
	sim.Tick(Input{})
}

func TestReloadAtFullIsNoop(t *testing.T) {
	ctrl := gomock.NewController(t)
	ui := mocks.NewMockUI(ctrl)
	ui.EXPECT().SetInstructions(gomock.Any()).AnyTimes()
	ui.EXPECT().SetStats(100, 0, 30).Times(2)

	sim := New(Options{Settings: quietSettings(), UI: ui})
	sim.Start()

	// Any further UI call would fail the mock.
	sim.Reload()

	if sim.Stats().Ammo != 30 {
		t.Errorf("Ammo = %d, want 30", sim.Stats().Ammo)
	}
}

func TestReloadRefills(t *testing.T) {
	sim := newPlaying(t, quietSettings())
	for range 7 {
		sim.Fire()
	}
	if sim.Stats().Ammo != 23 {
		t.Fatalf("Ammo = %d, want 23", sim.Stats().Ammo)
	}

	sim.Tick(Input{Reload: true})

	if sim.Stats().Ammo != 30 {
		t.Errorf("Ammo = %d after reload, want 30", sim.Stats().Ammo)
	}
}

func TestStartWhilePlayingIsNoop(t *testing.T) {
	sim := newPlaying(t, quietSettings())
	sim.Fire()
	sim.Tick(Input{Forward: true})

	sim.Start()

	if sim.Stats().Ammo != 29 {
		t.Errorf("Start reset ammo to %d while playing", sim.Stats().Ammo)
	}
	if len(sim.View().Bullets) != 1 {
		t.Error("Start cleared bullets while playing")
	}
}

func TestRestartResetsWorld(t *testing.T) {
	cfg := quietSettings()
	cfg.MaxHealth = 10
	cfg.SpawnRate = 0.5
	sim := newPlaying(t, cfg)

	sim.Tick(Input{LookDX: 80, LookDY: 40, Fire: 3})
	sim.SpawnEnemyAt(object.Enemy{Position: ahead(2.01), Speed: 0.02})
	sim.SpawnEnemyAt(object.Enemy{Position: ahead(15), Speed: 0.02})
	sim.Tick(Input{})
	if sim.Phase() != Over {
		t.Fatalf("Phase = %v, want over before restart", sim.Phase())
	}
	old := map[uint64]bool{}
	for _, e := range sim.View().Enemies {
		old[e.ID] = true
	}

	sim.Tick(Input{Restart: true})

	v := sim.View()
	if v.Phase != Playing {
		t.Errorf("Phase = %v, want playing", v.Phase)
	}
	if v.Stats.Health != 10 || v.Stats.Ammo != 30 || v.Stats.Score != 0 || v.Stats.Kills != 0 {
		t.Errorf("Stats = %+v, want fresh counters", v.Stats)
	}
	if v.Player != object.NewPlayer() {
		t.Errorf("Player = %+v, want spawn pose", v.Player)
	}
	if len(v.Bullets) != 0 {
		t.Errorf("%d bullets survived restart", len(v.Bullets))
	}
	// The restart frame itself may roll a fresh spawn, but nothing from the
	// old round survives.
	for _, e := range v.Enemies {
		if old[e.ID] {
			t.Errorf("enemy %d from the previous round survived", e.ID)
		}
	}
}

func TestStartFromEndScreenRestarts(t *testing.T) {
	cfg := quietSettings()
	cfg.MaxHealth = 10
	sim := newPlaying(t, cfg)
	sim.SpawnEnemyAt(object.Enemy{Position: ahead(2.01), Speed: 0.02})
	sim.Tick(Input{})

	sim.Tick(Input{Start: true})

	if sim.Phase() != Playing || sim.Stats().Health != 10 {
		t.Errorf("Phase = %v, Health = %d after start on end screen", sim.Phase(), sim.Stats().Health)
	}
}

func TestStartDoesNotSpawn(t *testing.T) {
	cfg := quietSettings()
	cfg.SpawnRate = 1
	sim := New(Options{Settings: cfg})

	sim.Start()

	if n := len(sim.View().Enemies); n != 0 {
		t.Errorf("Start created %d enemies", n)
	}
}
