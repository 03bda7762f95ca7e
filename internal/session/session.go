// Package session serves the game over a websocket. The browser sends input
// messages; the server runs one simulation per connection and streams a
// frame snapshot every tick.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"github.com/tomz197/fps/internal/config"
	"github.com/tomz197/fps/internal/game"
	"github.com/tomz197/fps/internal/loop"
	"github.com/tomz197/fps/internal/loop/server"
)

// writeTimeout bounds a single frame write to a slow client.
const writeTimeout = 5 * time.Second

// maxLookDelta bounds the pointer movement a client can queue for one frame.
const maxLookDelta = 4096.0

// Handler accepts websocket connections and runs a game on each.
type Handler struct {
	Settings config.Settings
	Scores   game.ScoreBook
	Logger   *log.Logger
	Server   *server.Server // Optional, for session counting and shutdown

	// AcceptOptions are passed to websocket.Accept.
	AcceptOptions *websocket.AcceptOptions
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := h.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	conn, err := websocket.Accept(w, r, h.AcceptOptions)
	if err != nil {
		logger.Error("failed to accept", "remote", r.RemoteAddr, "err", err)
		return
	}

	id := uuid.NewString()
	logger = logger.With("session", id)
	s := newSession(conn, id, h.Settings, h.Scores, logger)
	logger.Info("session started", "remote", r.RemoteAddr)

	if h.Server != nil {
		s.handle = h.Server.Register(id)
		defer h.Server.Unregister(s.handle.ID)
	}

	if err := s.run(r.Context()); err != nil {
		logger.Warn("session ended with error", "err", err)
		return
	}
	stats := s.sim.Stats()
	logger.Info("session ended", "frames", stats.Frames, "score", stats.Score, "kills", stats.Kills)
}

// Session is one browser game. It is the simulation's UI, its input source
// and its renderer.
type Session struct {
	id     string
	conn   *websocket.Conn
	sim    *game.Simulation
	logger *log.Logger
	handle *server.Handle

	ctx context.Context // Set by run, used by Render

	mu      sync.Mutex
	held    game.Input // Movement keys persist between frames
	pending game.Input // Look, fire and actions, cleared by Sample
	quit    bool

	ui    UIState
	frame Frame
}

var _ game.UI = (*Session)(nil)
var _ loop.InputSource = (*Session)(nil)
var _ loop.Renderer = (*Session)(nil)

func newSession(conn *websocket.Conn, id string, cfg config.Settings, scores game.ScoreBook, logger *log.Logger) *Session {
	s := &Session{id: id, conn: conn, logger: logger}
	s.sim = game.New(game.Options{
		Settings: cfg,
		Rand:     rand.New(rand.NewSource(time.Now().UnixNano())),
		UI:       s,
		Scores:   scores,
		Logger:   logger,
	})
	return s
}

// run sends the hello message, then drives the game until the client quits
// or disconnects, or the server shuts down. It closes the connection.
func (s *Session) run(ctx context.Context) error {
	loopCtx, stop := context.WithCancel(ctx)
	defer stop()
	s.ctx = ctx

	if err := s.write(newHello(s.id, s.sim)); err != nil {
		s.conn.CloseNow()
		return fmt.Errorf("send hello: %w", err)
	}

	readErr := make(chan error, 1)
	go func() {
		readErr <- s.readLoop(ctx)
		stop()
	}()

	err := loop.Run(loopCtx, s.sim, s, s, s.logger)

	select {
	case rerr := <-readErr:
		// The client went away first.
		s.conn.CloseNow()
		return rerr
	default:
	}

	if err != nil {
		s.conn.Close(websocket.StatusInternalError, "session error")
		return err
	}
	s.conn.Close(websocket.StatusNormalClosure, "")
	<-readErr
	return nil
}

// readLoop applies client messages until the connection ends. A normal
// close or a cancelled context is not an error.
func (s *Session) readLoop(ctx context.Context) error {
	for {
		var msg ClientMessage
		if err := wsjson.Read(ctx, s.conn, &msg); err != nil {
			switch websocket.CloseStatus(err) {
			case websocket.StatusNormalClosure, websocket.StatusGoingAway:
				return nil
			}
			if ctx.Err() != nil || errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("read message: %w", err)
		}
		s.apply(msg)
	}
}

// apply folds one client message into the input for the next frame.
func (s *Session) apply(msg ClientMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch msg.Type {
	case MsgKeys:
		s.held.Forward = msg.Forward
		s.held.Back = msg.Back
		s.held.Left = msg.Left
		s.held.Right = msg.Right
	case MsgLook:
		s.pending.LookDX = addLook(s.pending.LookDX, msg.DX)
		s.pending.LookDY = addLook(s.pending.LookDY, msg.DY)
	case MsgFire:
		s.pending.Fire++
	case MsgReload:
		s.pending.Reload = true
	case MsgStart:
		s.pending.Start = true
	case MsgRestart:
		s.pending.Restart = true
	case MsgQuit:
		s.quit = true
	default:
		s.logger.Debug("ignoring unknown message", "type", msg.Type)
	}
}

// addLook accumulates a pointer delta. Non-finite deltas are dropped and the
// total is clamped to maxLookDelta.
func addLook(sum, d float64) float64 {
	if math.IsNaN(d) || math.IsInf(d, 0) {
		return sum
	}
	return mgl64.Clamp(sum+d, -maxLookDelta, maxLookDelta)
}

// Sample implements loop.InputSource.
func (s *Session) Sample() (game.Input, bool) {
	if s.shutdownRequested() {
		return game.Input{}, true
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.quit {
		return game.Input{}, true
	}
	in := s.pending
	in.Forward = s.held.Forward
	in.Back = s.held.Back
	in.Left = s.held.Left
	in.Right = s.held.Right
	s.pending = game.Input{}
	return in, false
}

func (s *Session) shutdownRequested() bool {
	if s.handle == nil {
		return false
	}
	select {
	case ev := <-s.handle.Events:
		return ev.Type == server.EventServerShutdown
	default:
		return false
	}
}

// Render implements loop.Renderer.
func (s *Session) Render(v game.View) error {
	s.frame.fill(v, s.ui)
	return s.write(&s.frame)
}

func (s *Session) write(msg any) error {
	ctx, cancel := context.WithTimeout(s.ctx, writeTimeout)
	defer cancel()
	return wsjson.Write(ctx, s.conn, msg)
}

// SetStats implements game.UI.
func (s *Session) SetStats(health, score, ammo int) {
	s.ui.Health = health
	s.ui.Score = score
	s.ui.Ammo = ammo
}

// SetEndScreen implements game.UI.
func (s *Session) SetEndScreen(visible bool, finalScore, bestScore int) {
	s.ui.EndScreen = visible
	s.ui.FinalScore = finalScore
	s.ui.BestScore = bestScore
}

// SetInstructions implements game.UI. Leaving the instructions asks the
// browser to lock the pointer.
func (s *Session) SetInstructions(visible bool) {
	s.ui.Instructions = visible
	if !visible {
		s.ui.PointerLock = true
	}
}

// ReleasePointer implements game.UI.
func (s *Session) ReleasePointer() {
	s.ui.PointerLock = false
}
