// Package server tracks connected players and the shared leaderboard. Each
// player runs an independent game; the server only sees finished scores.
package server

import (
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/hexfall/internal/loop/config"
)

// GameServer is the interface clients use to communicate with the game server.
// Decouples the Client from the concrete Server implementation, enabling
// testing.
type GameServer interface {
	RegisterClient(username string) *ClientHandle
	UnregisterClient(clientID int)
	ReportScore(clientID int, score int) int
	GetSnapshot() *ServerSnapshot
}

// Server manages the client registry and the leaderboard.
type Server struct {
	snapshot     atomic.Pointer[ServerSnapshot]
	clients      map[int]*ClientHandle
	nextClientID int
	scores       *leaderboard
	mu           sync.RWMutex
	logger       *log.Logger
}

// Compile-time check that Server implements GameServer.
var _ GameServer = (*Server)(nil)

// ClientHandle represents a client's connection to the server.
type ClientHandle struct {
	ID       int
	Username string           // Display name for this client
	EventsCh chan ClientEvent // Events sent to client (shutdown, etc.)
	Games    int              // Finished games
	Best     int              // Best score this connection
}

// ClientEvent represents an event sent from server to client.
type ClientEvent struct {
	Type ClientEventType
}

// ClientEventType identifies the type of client event.
type ClientEventType int

const (
	EventServerShutdown ClientEventType = iota
)

// Options configures the server.
type Options struct {
	Logger          *log.Logger
	LeaderboardSize int
}

// NewServer creates a new game server.
func NewServer(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	size := opts.LeaderboardSize
	if size <= 0 {
		size = config.LeaderboardSize
	}

	s := &Server{
		clients:      make(map[int]*ClientHandle),
		nextClientID: 1,
		scores:       newLeaderboard(size),
		logger:       logger,
	}
	s.snapshot.Store(&ServerSnapshot{})
	return s
}

// Shutdown gracefully shuts down the server by notifying all connected clients
// and waiting for them to disconnect (up to the given timeout).
func (s *Server) Shutdown(timeout time.Duration) {
	s.mu.RLock()
	s.logger.Info("notifying clients of shutdown", "clients", len(s.clients))
	for _, handle := range s.clients {
		select {
		case handle.EventsCh <- ClientEvent{Type: EventServerShutdown}:
		default:
		}
	}
	s.mu.RUnlock()

	deadline := time.After(timeout)
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-deadline:
			s.mu.RLock()
			s.logger.Warn("shutdown timed out", "remaining", len(s.clients))
			s.mu.RUnlock()
			return
		case <-ticker.C:
			s.mu.RLock()
			remaining := len(s.clients)
			s.mu.RUnlock()
			if remaining == 0 {
				return
			}
		}
	}
}

// RegisterClient registers a new client with the given username and returns its handle.
func (s *Server) RegisterClient(username string) *ClientHandle {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextClientID
	s.nextClientID++

	handle := &ClientHandle{
		ID:       id,
		Username: truncateUsername(username),
		EventsCh: make(chan ClientEvent, 16),
	}
	s.clients[id] = handle
	s.logger.Debug("client registered", "client", id, "user", handle.Username)
	s.publishLocked()
	return handle
}

// UnregisterClient removes a client from the server and closes its event channel.
// Leaderboard entries outlive the connection.
func (s *Server) UnregisterClient(clientID int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	handle, ok := s.clients[clientID]
	if !ok {
		return
	}
	close(handle.EventsCh)
	delete(s.clients, clientID)
	s.logger.Debug("client unregistered", "client", clientID, "games", handle.Games, "best", handle.Best)
	s.publishLocked()
}

// ReportScore records the final score of a finished game and returns its
// leaderboard rank, or 0 if it did not place.
func (s *Server) ReportScore(clientID int, score int) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	handle, ok := s.clients[clientID]
	if !ok {
		return 0
	}
	handle.Games++
	handle.Best = max(handle.Best, score)

	rank := s.scores.submit(clientID, handle.Username, score)
	if rank > 0 {
		s.logger.Info("leaderboard entry", "user", handle.Username, "score", score, "rank", rank)
	}
	s.publishLocked()
	return rank
}

// GetSnapshot returns the current server snapshot.
func (s *Server) GetSnapshot() *ServerSnapshot {
	return s.snapshot.Load()
}

// publishLocked stores a fresh snapshot. Must be called with lock held.
func (s *Server) publishLocked() {
	s.snapshot.Store(&ServerSnapshot{
		Players:   len(s.clients),
		TopScores: s.scores.top(),
	})
}

// truncateUsername limits names to the display width used by the leaderboard.
func truncateUsername(name string) string {
	r := []rune(name)
	if len(r) > config.MaxUsernameLength {
		return string(r[:config.MaxUsernameLength])
	}
	return name
}
