package board_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tomz197/hexfall/internal/board"
)

// fillLane stacks alternating colors so the lane holds no match on its own.
func fillLane(b *board.Board, lane, height int) {
	for i := range height {
		if i%2 == 0 {
			b.Attached[lane][i] = board.Red
		} else {
			b.Attached[lane][i] = board.Sky
		}
	}
}

func TestDescendAdvancesOneSlot(t *testing.T) {
	b := board.New()
	b.Falling[0][board.FallingSize-1] = board.Lime

	attached, lost := b.Descend()

	assert.Zero(t, attached)
	assert.False(t, lost)
	assert.Equal(t, board.Empty, b.Falling[0][board.FallingSize-1])
	assert.Equal(t, board.Lime, b.Falling[0][board.FallingSize-2])
}

func TestDescendAttachesAtBottomOfTargetLane(t *testing.T) {
	b := board.New()
	b.Rotation = 1
	b.Falling[0][board.FallingSize-1] = board.Lime

	for range board.FallingSize - 1 {
		_, lost := b.Descend()
		assert.False(t, lost)
	}
	assert.Equal(t, board.Lime, b.Falling[0][0])

	attached, lost := b.Descend()

	assert.Equal(t, 1, attached)
	assert.False(t, lost)
	assert.Equal(t, board.Empty, b.Falling[0][0])
	assert.Equal(t, board.Lime, b.Attached[1][0], "falling lane 0 feeds attached lane 1 at rotation 1")
	assert.Equal(t, board.Empty, b.Attached[0][0])
}

func TestDescendLocksOnOccupiedSlotBelow(t *testing.T) {
	b := board.New()
	b.Attached[0][0] = board.Sky
	b.Falling[0][2] = board.Red

	_, _ = b.Descend()
	assert.Equal(t, board.Red, b.Falling[0][1])

	attached, lost := b.Descend()

	assert.Equal(t, 1, attached)
	assert.False(t, lost)
	assert.Equal(t, board.Red, b.Attached[0][1])
	assert.Equal(t, [board.FallingSize]board.Color{}, b.Falling[0])
}

func TestDescendStacksColumnInOnePass(t *testing.T) {
	b := board.New()
	b.Falling[2][0] = board.Red
	b.Falling[2][1] = board.Sky

	attached, _ := b.Descend()

	assert.Equal(t, 2, attached)
	assert.Equal(t, board.Red, b.Attached[2][0])
	assert.Equal(t, board.Sky, b.Attached[2][1])
}

func TestDescendOverflowReportsLoss(t *testing.T) {
	b := board.New()
	b.Rotation = 2
	fillLane(b, 0, board.LaneSize)
	source := board.AttachedSource(0, b.Rotation)
	b.Falling[source][board.LaneSize] = board.Yellow
	before := b.Attached[0]

	attached, lost := b.Descend()

	assert.True(t, lost)
	assert.Zero(t, attached)
	assert.Equal(t, before, b.Attached[0])
	assert.Equal(t, board.Empty, b.Falling[source][board.LaneSize])
}

func TestDescendKeepsRunningAfterOverflow(t *testing.T) {
	b := board.New()
	fillLane(b, 0, board.LaneSize)
	b.Falling[0][board.LaneSize] = board.Yellow
	b.Falling[3][4] = board.Lime

	_, lost := b.Descend()

	assert.True(t, lost)
	assert.Equal(t, board.Lime, b.Falling[3][3])
}
