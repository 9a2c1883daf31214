// Package board holds the hexagonal lane grids and the per-tick rules that
// move blocks between the falling lanes and the attached stack.
//
// Falling lanes sit at fixed angles around the ring. The attached stack is
// rotated beneath them, so falling lane i feeds attached lane
// (i + Rotation) mod LaneCount.
package board

// Board geometry and pacing. All values are fixed at build time.
const (
	LaneCount   = 6                    // Sectors around the ring
	LaneSize    = 8                    // Attached slots per lane
	ExtraRoom   = 3                    // Falling slots beyond the attached capacity
	FallingSize = LaneSize + ExtraRoom // Falling slots per lane; spawns land at FallingSize-1
	MatchSize   = 3                    // Minimum group size that clears
	SpawnEvery  = 10                   // Spawner runs when Tick%SpawnEvery == 0
	TickRate    = 5                    // Ticks per second
)

// Color is the content of a single slot. The zero value is an empty slot.
type Color uint8

const (
	Empty Color = iota
	Red
	Lime
	Sky
	Yellow
)

// Palette lists the colors the spawner draws from.
var Palette = [...]Color{Red, Lime, Sky, Yellow}

var colorInfo = [...]struct {
	name string
	hex  string
	code byte
}{
	Empty:  {"empty", "", '.'},
	Red:    {"red", "#ef4444", 'R'},
	Lime:   {"lime", "#84cc16", 'L'},
	Sky:    {"sky", "#0ea5e9", 'S'},
	Yellow: {"yellow", "#eab308", 'Y'},
}

// String returns the color name.
func (c Color) String() string {
	if int(c) >= len(colorInfo) {
		return "unknown"
	}
	return colorInfo[c].name
}

// Hex returns the display color as a #rrggbb string, or "" for Empty.
func (c Color) Hex() string {
	if int(c) >= len(colorInfo) {
		return ""
	}
	return colorInfo[c].hex
}

// Code returns a single-character tag used in compact board dumps.
func (c Color) Code() byte {
	if int(c) >= len(colorInfo) {
		return '?'
	}
	return colorInfo[c].code
}

// Cell addresses a slot by lane and index.
type Cell struct {
	Lane  int
	Index int
}

// Board is the complete simulation state. It carries no behavior of its own
// beyond the rule methods defined in this package; callers own it and
// serialize access to it.
type Board struct {
	Falling  [LaneCount][FallingSize]Color // Index 0 is innermost
	Attached [LaneCount][LaneSize]Color    // Index 0 is the center
	Rotation int                           // In [0, LaneCount)
	Score    int
	Tick     int
}

// New returns an empty board at rotation 0.
func New() *Board {
	return &Board{}
}

// Reset returns the board to its start state.
func (b *Board) Reset() {
	*b = Board{}
}

// Clone returns an independent copy of the board.
func (b *Board) Clone() *Board {
	c := *b
	return &c
}

// FallingTarget returns the attached lane fed by falling lane lane.
func FallingTarget(lane, rotation int) int {
	return (lane + rotation) % LaneCount
}

// AttachedSource returns the falling lane that feeds attached lane lane.
func AttachedSource(lane, rotation int) int {
	return (lane - rotation + LaneCount) % LaneCount
}

// occupied reports whether an attached slot holds a block. Indices past the
// attached capacity are never occupied.
func (b *Board) occupied(lane, index int) bool {
	return index < LaneSize && b.Attached[lane][index] != Empty
}

// lowestEmpty returns the first empty attached index in lane, or LaneSize
// when the lane is full.
func (b *Board) lowestEmpty(lane int) int {
	for index, c := range b.Attached[lane] {
		if c == Empty {
			return index
		}
	}
	return LaneSize
}

// Outcome is the result of writing a block into the attached stack.
type Outcome int

const (
	Placed   Outcome = iota
	Overflow         // Write targeted the slot past the lane's capacity
)

// attach writes c into attached lane at index. Index LaneSize is the
// overflow position and is reported instead of stored.
func (b *Board) attach(lane, index int, c Color) Outcome {
	if index >= LaneSize {
		return Overflow
	}
	b.Attached[lane][index] = c
	return Placed
}

// Contiguous reports whether every attached lane is a gapless run from
// index 0. It holds between ticks and rotations for every reachable board.
func (b *Board) Contiguous() bool {
	for lane := range b.Attached {
		gap := false
		for _, c := range b.Attached[lane] {
			if c == Empty {
				gap = true
			} else if gap {
				return false
			}
		}
	}
	return true
}

// Height returns the number of occupied attached slots in lane.
func (b *Board) Height(lane int) int {
	n := 0
	for _, c := range b.Attached[lane] {
		if c != Empty {
			n++
		}
	}
	return n
}
