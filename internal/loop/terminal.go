package loop

import (
	"bufio"
	"context"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/fps/internal/config"
	"github.com/tomz197/fps/internal/draw"
	"github.com/tomz197/fps/internal/game"
	"github.com/tomz197/fps/internal/input"
	"github.com/tomz197/fps/internal/loop/server"
)

// TerminalOptions configures a terminal session.
type TerminalOptions struct {
	Settings     config.Settings
	Scores       game.ScoreBook
	Logger       *log.Logger
	Rand         *rand.Rand
	TermSizeFunc draw.TermSizeFunc

	// Server and Username register the session for counting and shutdown
	// notices. Server may be nil for a standalone game.
	Server   *server.Server
	Username string

	// DisconnectIdle ends the session after InactivityDisconnectUser seconds
	// without input.
	DisconnectIdle bool
}

// Terminal runs one game on a terminal: it reads keys and mouse reports,
// drives the simulation and draws the first-person view with the HUD.
type Terminal struct {
	sim          *game.Simulation
	hud          *HUD
	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter
	renderer     *draw.SceneRenderer
	writer       io.Writer
	inputStream  *input.Stream
	termSizeFunc draw.TermSizeFunc
	logger       *log.Logger

	server         *server.Server
	handle         *server.Handle
	username       string
	disconnectIdle bool
	lastInput      time.Time
	shutdownAt     time.Time // Zero until the server announces a shutdown

	prevPhase   game.Phase
	wasInactive bool
}

// NewTerminal creates a terminal session reading from r and drawing to w.
func NewTerminal(r *bufio.Reader, w io.Writer, opts TerminalOptions) *Terminal {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	// An unreadable size leaves an empty canvas until the next frame measures again.
	vp, _ := draw.MeasureViewport(termSizeFunc, MaxTermWidth, MaxTermHeight)
	canvas := draw.NewCanvas(vp.Width, vp.Height)
	canvas.ApplyViewport(vp)
	chunkWriter := draw.NewChunkWriter(w)
	chunkWriter.SetViewport(vp)

	hud := NewHUD(canvas)
	sim := game.New(game.Options{
		Settings: opts.Settings,
		Rand:     opts.Rand,
		UI:       hud,
		Scores:   opts.Scores,
		Logger:   logger,
	})

	return &Terminal{
		sim:            sim,
		hud:            hud,
		canvas:         canvas,
		chunkWriter:    chunkWriter,
		renderer:       draw.NewSceneRenderer(canvas, chunkWriter, hud.Draw),
		writer:         w,
		inputStream:    input.StartStream(r),
		termSizeFunc:   termSizeFunc,
		logger:         logger,
		server:         opts.Server,
		username:       opts.Username,
		disconnectIdle: opts.DisconnectIdle,
		lastInput:      time.Now(),
		prevPhase:      sim.Phase(),
	}
}

// Simulation returns the game driven by this terminal.
func (t *Terminal) Simulation() *game.Simulation {
	return t.sim
}

// Run starts the session. Blocks until the user quits, the input ends, ctx
// is done or the terminal can no longer be written to.
func (t *Terminal) Run(ctx context.Context) error {
	if t.server != nil {
		t.handle = t.server.Register(t.username)
		defer t.server.Unregister(t.handle.ID)
	}

	draw.HideCursor(t.writer)
	defer draw.ShowCursor(t.writer)
	defer io.WriteString(t.writer, input.ReleasePointer)
	draw.ClearScreen(t.writer)

	err := Run(ctx, t.sim, t, t, t.logger)

	draw.ClearScreen(t.writer)
	stats := t.sim.Stats()
	t.logger.Info("session ended", "user", t.username, "frames", stats.Frames, "score", stats.Score, "kills", stats.Kills)
	return err
}

// Sample implements InputSource.
func (t *Terminal) Sample() (game.Input, bool) {
	inp := input.ReadInput(t.inputStream)
	now := time.Now()

	if t.inputStream.Closed() || inp.Quit {
		return game.Input{}, true
	}

	if len(inp.Pressed) > 0 {
		t.lastInput = now
		t.hud.inactiveFor = 0
	} else if t.disconnectIdle {
		idle := now.Sub(t.lastInput)
		switch {
		case idle > InactivityDisconnectUser*time.Second:
			t.logger.Info("disconnecting idle session", "user", t.username)
			return game.Input{}, true
		case idle > InactivityWarnUser*time.Second:
			t.hud.inactiveFor = idle
		}
	}

	if t.processServerEvents(now) {
		return game.Input{}, true
	}

	in := game.Input{
		Forward: inp.Forward,
		Back:    inp.Back,
		Left:    inp.Left,
		Right:   inp.Right,
		LookDX:  inp.LookDX,
		LookDY:  inp.LookDY,
		Fire:    inp.Fire,
		Reload:  inp.Reload,
	}

	// Outside of play, ENTER and SPACE (or a click) leave the current screen.
	switch t.sim.Phase() {
	case game.NotStarted:
		if inp.Confirm || inp.Fire > 0 {
			in.Start = true
			in.Fire = 0
			input.ResetKeyInput(t.inputStream)
		}
	case game.Over:
		if inp.Confirm || inp.Fire > 0 {
			in.Restart = true
			in.Fire = 0
			input.ResetKeyInput(t.inputStream)
		}
	}

	return in, false
}

// processServerEvents handles events from the session server. It reports
// whether the session should end.
func (t *Terminal) processServerEvents(now time.Time) bool {
	if t.handle == nil {
		return false
	}
	for {
		select {
		case ev := <-t.handle.Events:
			if ev.Type == server.EventServerShutdown && t.shutdownAt.IsZero() {
				t.shutdownAt = now.Add(time.Duration(ShutdownDisplaySeconds * float64(time.Second)))
			}
		default:
			if !t.shutdownAt.IsZero() {
				t.hud.shutdownIn = t.shutdownAt.Sub(now)
				return t.hud.shutdownIn <= 0
			}
			t.hud.players = t.server.Count()
			return false
		}
	}
}

// Render implements Renderer.
func (t *Terminal) Render(v game.View) error {
	t.updateScreen()

	// On phase or inactivity transitions, do a full terminal clear
	// so UI elements from the previous screen don't persist.
	inactive := t.hud.inactiveFor > 0 || t.hud.shutdownIn > 0
	if v.Phase != t.prevPhase || inactive != t.wasInactive {
		t.chunkWriter.ClearScreen()
		t.canvas.ForceRedraw()
		t.prevPhase = v.Phase
		t.wasInactive = inactive
	}

	return t.renderer.Render(v)
}

// updateScreen follows terminal resizes. When the viewport moves or changes
// size the terminal is cleared so no pixels from the old layout remain.
func (t *Terminal) updateScreen() {
	vp, err := draw.MeasureViewport(t.termSizeFunc, MaxTermWidth, MaxTermHeight)
	if err != nil {
		return
	}
	if t.canvas.ApplyViewport(vp) {
		t.chunkWriter.ClearScreen()
	}
	t.chunkWriter.SetViewport(vp)
}
