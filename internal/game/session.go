// Package game runs a board as a playable session: the Running -> Lost state
// machine, loss notification, restart, and the fixed-rate tick scheduler.
package game

import (
	"io"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/hexfall/internal/board"
)

// LossNotifier is told when a game ends. It is called once per game,
// synchronously from the Tick or Rotate call that caused the loss, after the
// session has released its lock.
type LossNotifier interface {
	ReportLoss(final *Snapshot)
}

// LossFunc adapts a function to LossNotifier.
type LossFunc func(final *Snapshot)

// ReportLoss calls f.
func (f LossFunc) ReportLoss(final *Snapshot) {
	f(final)
}

// Renderer draws a snapshot. It must not retain or mutate it.
type Renderer interface {
	Render(snap *Snapshot)
}

// Session owns one board. Tick, Rotate and Restart each run to completion
// before another may start, so every observer sees a consistent board.
type Session struct {
	mu       sync.Mutex
	board    *board.Board
	rng      board.Rand
	state    State
	game     int
	logger   *log.Logger
	notifier LossNotifier
	snapshot atomic.Pointer[Snapshot]
}

// Option configures a Session.
type Option func(*Session)

// WithRand sets the spawner's randomness source.
func WithRand(r board.Rand) Option {
	return func(s *Session) {
		s.rng = r
	}
}

// WithSeed seeds a PCG source for reproducible games.
func WithSeed(seed uint64) Option {
	return func(s *Session) {
		s.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
}

// WithLogger sets the session logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) {
		s.logger = l
	}
}

// WithLossNotifier sets who is told about the end of each game.
func WithLossNotifier(n LossNotifier) Option {
	return func(s *Session) {
		s.notifier = n
	}
}

// WithBoard starts the first game from a copy of b instead of an empty board.
func WithBoard(b *board.Board) Option {
	return func(s *Session) {
		s.board = b.Clone()
	}
}

// NewSession creates a running session.
func NewSession(opts ...Option) *Session {
	s := &Session{
		board:  board.New(),
		game:   1,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), rand.Uint64()))
	}
	s.publish()
	return s
}

// Tick advances the board by one tick. It does nothing once the game is lost.
func (s *Session) Tick() board.Result {
	s.mu.Lock()
	if s.state != Running {
		s.mu.Unlock()
		return board.Result{}
	}

	res := s.board.Step(s.rng)
	for _, g := range res.Cleared {
		s.logger.Debug("group cleared", "tick", res.Tick, "color", g.Color, "size", len(g.Cells))
	}
	if points := res.Points(); points > 0 {
		s.logger.Debug("tick scored", "tick", res.Tick, "points", points, "floated", res.Floated, "score", s.board.Score)
	}
	lost := res.Lost && s.loseLocked("descent")
	s.publish()
	final := s.snapshot.Load()
	s.mu.Unlock()

	if lost {
		s.reportLoss(final)
	}
	return res
}

// Rotate applies a rotate action. It reports whether the action was applied;
// input is ignored once the game is lost.
func (s *Session) Rotate(dir board.Direction) bool {
	s.mu.Lock()
	if s.state != Running {
		s.mu.Unlock()
		return false
	}

	forced, overflow := s.board.Rotate(dir)
	if forced > 0 {
		s.logger.Debug("rotation forced attach", "direction", dir, "blocks", forced, "rotation", s.board.Rotation)
	}
	lost := overflow && s.loseLocked("rotation")
	s.publish()
	final := s.snapshot.Load()
	s.mu.Unlock()

	if lost {
		s.reportLoss(final)
	}
	return true
}

// Restart resets the board to its start state and resumes play.
func (s *Session) Restart() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == Lost || s.board.Tick > 0 {
		s.game++
	}
	s.board.Reset()
	s.state = Running
	s.logger.Debug("game started", "game", s.game)
	s.publish()
}

// Snapshot returns the latest published snapshot.
func (s *Session) Snapshot() *Snapshot {
	return s.snapshot.Load()
}

// State returns the current game phase.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// loseLocked moves a running game to Lost. It returns false if the game had
// already ended. Must be called with s.mu held.
func (s *Session) loseLocked(cause string) bool {
	if s.state == Lost {
		return false
	}
	s.state = Lost
	s.logger.Info("game lost", "game", s.game, "cause", cause, "score", s.board.Score, "tick", s.board.Tick)
	return true
}

// reportLoss runs outside the lock so notifiers may call back into the session.
func (s *Session) reportLoss(final *Snapshot) {
	if s.logger.GetLevel() <= log.DebugLevel {
		if dump, err := final.YAML(); err == nil {
			s.logger.Debug("final board", "board", string(dump))
		}
	}
	if s.notifier != nil {
		s.notifier.ReportLoss(final)
	}
}

// publish stores a snapshot of the current board. Must be called with s.mu held.
func (s *Session) publish() {
	s.snapshot.Store(newSnapshot(s.board, s.state, s.game))
}
