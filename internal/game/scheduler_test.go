package game_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/hexfall/internal/board"
	"github.com/tomz197/hexfall/internal/game"
)

func TestSchedulerAdvance(t *testing.T) {
	s := game.NewScheduler(board.TickRate, 3)
	require.Equal(t, 200*time.Millisecond, s.Interval())

	assert.Equal(t, 0, s.Advance(100*time.Millisecond))
	assert.Equal(t, 1, s.Advance(100*time.Millisecond))
	assert.Equal(t, 0, s.Advance(150*time.Millisecond))
	assert.Equal(t, 1, s.Advance(50*time.Millisecond))
	assert.Equal(t, 2, s.Advance(450*time.Millisecond))
	assert.Equal(t, 0, s.Advance(100*time.Millisecond), "remainder of 50ms carried over")
	assert.Equal(t, 1, s.Advance(50*time.Millisecond))
}

func TestSchedulerCapsCatchUp(t *testing.T) {
	s := game.NewScheduler(board.TickRate, 3)

	assert.Equal(t, 3, s.Advance(5*time.Second))
	assert.Equal(t, 0, s.Advance(100*time.Millisecond), "backlog is dropped")
}

func TestSchedulerReset(t *testing.T) {
	s := game.NewScheduler(board.TickRate, 3)
	s.Advance(150 * time.Millisecond)
	s.Reset()

	assert.Equal(t, 0, s.Advance(150*time.Millisecond))
}

func TestSchedulerDriveStopsOnLoss(t *testing.T) {
	s := game.NewScheduler(board.TickRate, 3)
	session := game.NewSession(game.WithBoard(overflowingBoard(false)), game.WithSeed(1))

	ran := s.Drive(session, time.Second)

	assert.Equal(t, 1, ran)
	assert.Equal(t, game.Lost, session.State())
	assert.Equal(t, 2, session.Snapshot().Tick)
}

func TestSchedulerDriveTicksRunningSession(t *testing.T) {
	s := game.NewScheduler(board.TickRate, 5)
	session := game.NewSession(game.WithSeed(4))

	ran := s.Drive(session, 600*time.Millisecond)

	assert.Equal(t, 3, ran)
	assert.Equal(t, 3, session.Snapshot().Tick)
}

func TestSchedulerRunReturnsOnLoss(t *testing.T) {
	rec := &lossRecorder{}
	s := game.NewScheduler(1000, 1)
	session := game.NewSession(
		game.WithBoard(overflowingBoard(false)),
		game.WithSeed(1),
		game.WithLossNotifier(rec),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, s.Run(ctx, session))
	assert.Len(t, rec.finals, 1)
	assert.Equal(t, game.Lost, session.State())
}

func TestSchedulerRunStopsOnCancel(t *testing.T) {
	s := game.NewScheduler(1000, 1)
	session := game.NewSession(game.WithSeed(2))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := s.Run(ctx, session)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, game.Running, session.State())
}
