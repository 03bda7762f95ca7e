// Package server keeps track of the game sessions running in one process so
// they can be counted and told about a shutdown. Every session runs its own
// simulation; nothing about the game world is shared.
package server

import (
	"sync"
	"time"
)

// EventType identifies the type of session event.
type EventType int

const (
	EventServerShutdown EventType = iota
)

// Event is sent from the server to a session.
type Event struct {
	Type EventType
}

// Handle represents a session's registration with the server.
type Handle struct {
	ID       int
	Username string // Display name for this session
	Joined   time.Time
	Events   chan Event // Events sent to the session
}

// Server manages the set of live sessions.
type Server struct {
	mu      sync.RWMutex
	clients map[int]*Handle
	nextID  int
	closing bool
}

// NewServer creates an empty session server.
func NewServer() *Server {
	return &Server{
		clients: make(map[int]*Handle),
		nextID:  1,
	}
}

// Register adds a session and returns its handle. A session joining while
// the server shuts down is told so right away.
func (s *Server) Register(username string) *Handle {
	s.mu.Lock()
	defer s.mu.Unlock()

	h := &Handle{
		ID:       s.nextID,
		Username: username,
		Joined:   time.Now(),
		Events:   make(chan Event, 4),
	}
	s.nextID++
	s.clients[h.ID] = h

	if s.closing {
		h.Events <- Event{Type: EventServerShutdown}
	}
	return h
}

// Unregister removes a session.
func (s *Server) Unregister(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.clients, id)
}

// Count returns the number of live sessions.
func (s *Server) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

// Shutdown notifies all sessions about the shutdown and waits for them to
// disconnect, up to the given timeout. It returns the number of sessions
// still connected.
func (s *Server) Shutdown(timeout time.Duration) int {
	s.mu.Lock()
	s.closing = true
	for _, h := range s.clients {
		select {
		case h.Events <- Event{Type: EventServerShutdown}:
		default:
		}
	}
	s.mu.Unlock()

	deadline := time.After(timeout)
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for {
		if remaining := s.Count(); remaining == 0 {
			return 0
		}
		select {
		case <-deadline:
			return s.Count()
		case <-ticker.C:
		}
	}
}
