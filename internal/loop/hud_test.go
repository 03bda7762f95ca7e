package loop

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/tomz197/fps/internal/draw"
	"github.com/tomz197/fps/internal/game"
	"github.com/tomz197/fps/internal/input"
)

func drawHUD(t *testing.T, h *HUD, v game.View) string {
	t.Helper()
	var out bytes.Buffer
	cw := draw.NewChunkWriter(&out)
	h.Draw(cw, v)
	if err := cw.Flush(); err != nil {
		t.Fatal(err)
	}
	return out.String()
}

func TestHUDFollowsSimulation(t *testing.T) {
	hud := NewHUD(draw.NewCanvas(120, 40))
	sim := game.New(game.Options{UI: hud})

	if out := drawHUD(t, hud, sim.View()); !strings.Contains(out, "Controls") {
		t.Errorf("title screen missing controls: %q", out)
	}

	sim.Tick(game.Input{Start: true})
	out := drawHUD(t, hud, sim.View())
	for _, want := range []string{input.CapturePointer, "Health: 100", "Score: 0", "Ammo:  30/30"} {
		if !strings.Contains(out, want) {
			t.Errorf("playing HUD missing %q", want)
		}
	}

	// Pointer capture is written once.
	if out := drawHUD(t, hud, sim.View()); strings.Contains(out, input.CapturePointer) {
		t.Error("pointer capture repeated")
	}

	sim.Tick(game.Input{Fire: 1})
	if out := drawHUD(t, hud, sim.View()); !strings.Contains(out, "Ammo:  29/30") {
		t.Errorf("ammo not updated after firing: %q", out)
	}
}

func TestHUDEndScreen(t *testing.T) {
	hud := NewHUD(draw.NewCanvas(120, 40))

	hud.SetEndScreen(true, 40, 40)
	hud.ReleasePointer()
	out := drawHUD(t, hud, game.View{Phase: game.Over})

	for _, want := range []string{input.ReleasePointer, "Final Score: 40", "New best score!"} {
		if !strings.Contains(out, want) {
			t.Errorf("end screen missing %q", want)
		}
	}

	hud.SetEndScreen(true, 10, 40)
	if out := drawHUD(t, hud, game.View{Phase: game.Over}); !strings.Contains(out, "Best: 40") {
		t.Errorf("end screen missing best score: %q", out)
	}
}

func TestHUDNoticesTakePriority(t *testing.T) {
	hud := NewHUD(draw.NewCanvas(120, 40))
	hud.SetEndScreen(true, 10, 10)

	hud.inactiveFor = (InactivityWarnUser + 5) * time.Second
	if out := drawHUD(t, hud, game.View{}); !strings.Contains(out, "INACTIVITY WARNING") {
		t.Error("inactivity warning not shown")
	}

	hud.shutdownIn = 3 * time.Second
	if out := drawHUD(t, hud, game.View{}); !strings.Contains(out, "SERVER SHUTTING DOWN") {
		t.Error("shutdown notice not shown")
	}
}
