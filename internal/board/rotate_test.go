package board_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tomz197/hexfall/internal/board"
)

func TestRotateStepsModuloLaneCount(t *testing.T) {
	tests := []struct {
		name  string
		start int
		dir   board.Direction
		want  int
	}{
		{"left from zero", 0, board.Left, 1},
		{"left wraps", board.LaneCount - 1, board.Left, 0},
		{"right wraps", 0, board.Right, board.LaneCount - 1},
		{"right", 3, board.Right, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := board.New()
			b.Rotation = tt.start
			_, _ = b.Rotate(tt.dir)
			assert.Equal(t, tt.want, b.Rotation)
		})
	}
}

func TestRotateLeftThenRightRestoresRotation(t *testing.T) {
	for start := range board.LaneCount {
		b := board.New()
		b.Rotation = start
		fillLane(b, 2, 4)
		b.Falling[1][3] = board.Lime

		_, _ = b.Rotate(board.Left)
		_, _ = b.Rotate(board.Right)

		assert.Equal(t, start, b.Rotation)
	}
}

func TestRotateForcesCollidingBlockIntoLowestEmpty(t *testing.T) {
	b := board.New()
	fillLane(b, 1, 3)
	b.Falling[0][1] = board.Lime

	forced, lost := b.Rotate(board.Left)

	assert.Equal(t, 1, forced)
	assert.False(t, lost)
	assert.Equal(t, board.Empty, b.Falling[0][1])
	assert.Equal(t, board.Lime, b.Attached[1][3])
	assert.True(t, b.Contiguous())
}

func TestRotateLeavesClearBlocksFalling(t *testing.T) {
	b := board.New()
	fillLane(b, 1, 3)
	b.Falling[0][5] = board.Lime

	forced, lost := b.Rotate(board.Left)

	assert.Zero(t, forced)
	assert.False(t, lost)
	assert.Equal(t, board.Lime, b.Falling[0][5])

	// It now tracks attached lane 1 and locks on top of its stack.
	for range 2 {
		_, _ = b.Descend()
	}
	assert.Equal(t, board.Lime, b.Falling[0][3])
	attached, _ := b.Descend()
	assert.Equal(t, 1, attached)
	assert.Equal(t, board.Lime, b.Attached[1][3])
}

func TestRotateIntoFullLaneReportsLoss(t *testing.T) {
	b := board.New()
	fillLane(b, board.LaneCount-1, board.LaneSize)
	b.Falling[0][2] = board.Yellow

	forced, lost := b.Rotate(board.Right)

	assert.True(t, lost)
	assert.Zero(t, forced)
	assert.Equal(t, board.Empty, b.Falling[0][2])
}

func TestRotateForcesWholeColumnInOrder(t *testing.T) {
	b := board.New()
	fillLane(b, 1, 2)
	b.Falling[0][0] = board.Lime
	b.Falling[0][1] = board.Yellow
	b.Falling[0][2] = board.Lime
	b.Falling[0][6] = board.Sky

	forced, lost := b.Rotate(board.Left)

	assert.False(t, lost)
	assert.Equal(t, 3, forced, "slot 2 is filled by the first forced block before it is checked")
	assert.Equal(t, board.Lime, b.Attached[1][2])
	assert.Equal(t, board.Yellow, b.Attached[1][3])
	assert.Equal(t, board.Lime, b.Attached[1][4])
	assert.Equal(t, board.Sky, b.Falling[0][6])
	assert.True(t, b.Contiguous())
}
