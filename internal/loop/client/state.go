package client

import (
	"time"

	"github.com/tomz197/hexfall/internal/game"
	"github.com/tomz197/hexfall/internal/input"
)

// GameState represents the current screen for a client.
type GameState int

const (
	GameStateStart    GameState = iota // Title screen
	GameStatePlaying                   // Active gameplay
	GameStateLost                      // Board overflowed, show restart prompt
	GameStateShutdown                  // Server is shutting down
)

func (s GameState) String() string {
	switch s {
	case GameStateStart:
		return "start"
	case GameStatePlaying:
		return "playing"
	case GameStateLost:
		return "lost"
	case GameStateShutdown:
		return "shutdown"
	default:
		return "unknown"
	}
}

// ClientState holds per-player screen state. The board itself lives in the
// game session.
type ClientState struct {
	Input         input.Input
	GameState     GameState
	prevGameState GameState
	Final         *game.Snapshot // Board at the moment of the last loss
	Rank          int            // Leaderboard rank of the last game, 0 if unplaced
	Running       bool           // Client loop running
	delta         time.Duration  // Frame delta time
	restartTimer  float64        // Seconds before the lost screen accepts a restart
	shutdownTimer float64        // Countdown before auto-disconnect on shutdown
	isInactive    bool           // Whether the client is in inactive warning state
	wasInactive   bool
}

// NewClientState creates a new initialized client state.
func NewClientState() *ClientState {
	return &ClientState{
		GameState: GameStateStart,
		Running:   true,
	}
}
