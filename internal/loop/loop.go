// Package loop drives a game.Simulation at a fixed rate and connects it to a
// terminal: input sampling, the HUD and the first-person view.
package loop

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/fps/internal/game"
)

// Renderer consumes a read-only view of the world once per frame.
type Renderer interface {
	Render(v game.View) error
}

// InputSource yields the input for the next frame. quit ends the loop.
type InputSource interface {
	Sample() (in game.Input, quit bool)
}

// Run drives sim with the standard Input → Update → Draw cycle until ctx is
// done, src asks to quit or rendering fails. A frame that panics is dropped
// and the loop continues.
func Run(ctx context.Context, sim *game.Simulation, src InputSource, r Renderer, logger *log.Logger) error {
	frameTime := time.Second / time.Duration(sim.Settings().TickRate)
	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-timer.C:
		}
		frameStart := time.Now()

		// ===== INPUT PHASE =====
		in, quit := src.Sample()
		if quit {
			return nil
		}

		// ===== UPDATE PHASE =====
		safeTick(logger, func() { sim.Tick(in) })

		// ===== DRAW PHASE =====
		if err := r.Render(sim.View()); err != nil {
			return fmt.Errorf("render frame %d: %w", sim.Stats().Frames, err)
		}

		// ===== FRAME TIMING =====
		elapsed := time.Since(frameStart)
		sim.RecordFrameTime(elapsed)
		timer.Reset(max(frameTime-elapsed, 0))
	}
}

// safeTick runs one update and recovers a panic inside it. It reports whether
// the update completed.
func safeTick(logger *log.Logger, update func()) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			if logger != nil {
				logger.Error("frame dropped", "panic", r)
			}
			ok = false
		}
	}()
	update()
	return true
}
