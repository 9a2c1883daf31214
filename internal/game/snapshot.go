package game

import (
	"gopkg.in/yaml.v3"

	"github.com/tomz197/hexfall/internal/board"
)

// State is the top-level game phase.
type State int

const (
	Running State = iota // Ticks and rotations are applied
	Lost                 // A lane overflowed; only Restart leaves this state
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Lost:
		return "lost"
	default:
		return "unknown"
	}
}

// Snapshot is an immutable copy of the board for renderers and loss
// reporting. Sessions publish a fresh one after every mutation.
type Snapshot struct {
	Falling  [board.LaneCount][board.FallingSize]board.Color
	Attached [board.LaneCount][board.LaneSize]board.Color
	Rotation int
	Score    int
	Tick     int
	State    State
	Game     int // Games started in this session, starting at 1
}

func newSnapshot(b *board.Board, state State, game int) *Snapshot {
	return &Snapshot{
		Falling:  b.Falling,
		Attached: b.Attached,
		Rotation: b.Rotation,
		Score:    b.Score,
		Tick:     b.Tick,
		State:    state,
		Game:     game,
	}
}

// snapshotDump is the YAML layout of a snapshot: one string per lane,
// innermost slot first.
type snapshotDump struct {
	Game     int      `yaml:"game"`
	State    string   `yaml:"state"`
	Tick     int      `yaml:"tick"`
	Score    int      `yaml:"score"`
	Rotation int      `yaml:"rotation"`
	Attached []string `yaml:"attached"`
	Falling  []string `yaml:"falling"`
}

// YAML renders the snapshot as a compact YAML document.
func (s *Snapshot) YAML() ([]byte, error) {
	dump := snapshotDump{
		Game:     s.Game,
		State:    s.State.String(),
		Tick:     s.Tick,
		Score:    s.Score,
		Rotation: s.Rotation,
	}
	for lane := range board.LaneCount {
		dump.Attached = append(dump.Attached, laneString(s.Attached[lane][:]))
		dump.Falling = append(dump.Falling, laneString(s.Falling[lane][:]))
	}
	return yaml.Marshal(dump)
}

func laneString(slots []board.Color) string {
	buf := make([]byte, len(slots))
	for i, c := range slots {
		buf[i] = c.Code()
	}
	return string(buf)
}
