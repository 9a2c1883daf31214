// Package client runs the frame loop of one connected player: read input,
// advance that player's game session and draw it.
package client

import (
	"bufio"
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"

	"github.com/tomz197/hexfall/internal/board"
	"github.com/tomz197/hexfall/internal/draw"
	"github.com/tomz197/hexfall/internal/game"
	"github.com/tomz197/hexfall/internal/input"
	"github.com/tomz197/hexfall/internal/loop/config"
	"github.com/tomz197/hexfall/internal/loop/server"
)

// Client handles rendering and input for a single connection.
type Client struct {
	server       server.GameServer
	handle       *server.ClientHandle
	state        *ClientState
	session      *game.Session
	scheduler    *game.Scheduler
	canvas       *draw.Canvas
	palette      *draw.Palette
	view         *draw.BoardView
	chunkWriter  *draw.ChunkWriter
	writer       io.Writer
	inputStream  *input.Stream
	lastInput    time.Time
	idleWarn     time.Duration
	idleTimeout  time.Duration
	termSizeFunc draw.TermSizeFunc
	logger       *log.Logger
}

// Compile-time check that Client receives loss reports.
var _ game.LossNotifier = (*Client)(nil)

// ClientOptions configures the client.
type ClientOptions struct {
	TermSizeFunc draw.TermSizeFunc
	Username     string
	Logger       *log.Logger
	ColorProfile termenv.Profile
	// IdleTimeout disconnects a player without key presses for this long.
	// The warning shows at three quarters of it. Zero uses the defaults.
	IdleTimeout time.Duration
	// Session options, applied before the client's own.
	SessionOptions []game.Option
}

// NewClient creates a new client connected to the given server.
func NewClient(gs server.GameServer, r *bufio.Reader, w io.Writer, opts ClientOptions) *Client {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	idleWarn, idleTimeout := config.InactivityWarnUser, config.InactivityDisconnectUser
	if opts.IdleTimeout > 0 {
		idleTimeout = opts.IdleTimeout
		idleWarn = opts.IdleTimeout * 3 / 4
	}

	handle := gs.RegisterClient(opts.Username)
	logger = logger.With("client", handle.ID)

	// Create canvas with clamped dimensions for max render resolution
	termWidth, termHeight, _ := draw.TerminalSizeRawWith(termSizeFunc)
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)
	canvas := draw.NewCanvas(renderWidth, renderHeight, draw.LogicalSize, draw.LogicalSize)
	canvas.SetOffset(offsetCol, offsetRow)
	chunkWriter := draw.NewChunkWriter(w, offsetCol, offsetRow)
	palette := draw.NewPalette(w, opts.ColorProfile)

	c := &Client{
		server:       gs,
		handle:       handle,
		state:        NewClientState(),
		scheduler:    game.NewScheduler(board.TickRate, config.MaxCatchUpTicks),
		canvas:       canvas,
		palette:      palette,
		view:         draw.NewBoardView(canvas, palette, chunkWriter),
		chunkWriter:  chunkWriter,
		writer:       w,
		lastInput:    time.Now(),
		inputStream:  input.StartStream(r),
		idleWarn:     idleWarn,
		idleTimeout:  idleTimeout,
		termSizeFunc: termSizeFunc,
		logger:       logger,
	}

	sessionOpts := append([]game.Option{}, opts.SessionOptions...)
	sessionOpts = append(sessionOpts, game.WithLogger(logger), game.WithLossNotifier(c))
	c.session = game.NewSession(sessionOpts...)
	return c
}

// Run starts the client loop. Blocks until the client quits, goes idle, the
// server shuts it down or ctx is cancelled.
func (c *Client) Run(ctx context.Context) error {
	draw.HideCursor(c.writer)
	defer draw.ShowCursor(c.writer)
	draw.ClearScreen(c.writer)

	defer c.server.UnregisterClient(c.handle.ID)

	lastTime := time.Now()

	for c.state.Running {
		if ctx.Err() != nil {
			break
		}

		frameStart := time.Now()
		delta := frameStart.Sub(lastTime)
		lastTime = frameStart

		if err := c.frame(input.ReadInput(c.inputStream), delta); err != nil {
			return err
		}

		// Frame timing
		elapsed := time.Since(frameStart)
		if elapsed < config.ClientTargetFrameTime {
			time.Sleep(config.ClientTargetFrameTime - elapsed)
		}
	}

	draw.ClearScreen(c.writer)
	return nil
}

// frame runs one iteration of the loop with the given input.
func (c *Client) frame(in input.Input, delta time.Duration) error {
	c.state.delta = delta
	c.state.Input = in

	c.processInput()
	c.processServerEvents()
	c.updateScreen()

	switch c.state.GameState {
	case GameStateStart:
		c.updateStartState()
	case GameStatePlaying:
		c.updatePlayingState()
	case GameStateLost:
		c.updateLostState()
	case GameStateShutdown:
		c.updateShutdownState()
	}

	return c.drawFrame()
}

// processInput tracks activity and quitting.
func (c *Client) processInput() {
	if len(c.state.Input.Pressed) > 0 {
		c.lastInput = time.Now()
		c.state.isInactive = false
	} else if idle := time.Since(c.lastInput); idle > c.idleTimeout {
		c.logger.Info("disconnecting idle client", "idle", idle.Round(time.Second))
		c.state.Running = false
	} else if idle > c.idleWarn {
		c.state.isInactive = true
	}

	if c.state.Input.Has(input.Quit) {
		c.state.Running = false
	}
}

// processServerEvents handles events from the server.
func (c *Client) processServerEvents() {
	for {
		select {
		case event, ok := <-c.handle.EventsCh:
			if !ok {
				c.state.Running = false
				return
			}
			switch event.Type {
			case server.EventServerShutdown:
				c.state.GameState = GameStateShutdown
				c.state.shutdownTimer = config.ShutdownDisplaySeconds
			}
		default:
			return
		}
	}
}

// updateScreen handles terminal resize, clamping to max render resolution.
// On actual size changes, clears the terminal to remove residual pixels
// outside the new canvas area.
func (c *Client) updateScreen() {
	termWidth, termHeight, err := draw.TerminalSizeRawWith(c.termSizeFunc)
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)

	if renderWidth != c.canvas.TerminalWidth() || renderHeight != c.canvas.TerminalHeight() ||
		offsetCol != c.canvas.OffsetCol() || offsetRow != c.canvas.OffsetRow() {
		c.chunkWriter.WriteString("\033[H\033[2J")
		c.canvas.ForceRedraw()
	}

	c.canvas.Resize(renderWidth, renderHeight)
	c.canvas.SetOffset(offsetCol, offsetRow)
	c.chunkWriter.SetOffset(offsetCol, offsetRow)
}

// clampTermSize clamps terminal dimensions to the max render resolution and computes
// the centering offset for the render area.
func clampTermSize(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = min(termWidth, config.MaxTermWidth)
	renderHeight = min(termHeight, config.MaxTermHeight)
	offsetCol = (termWidth - renderWidth) / 2
	offsetRow = (termHeight - renderHeight) / 2
	return
}

// updateStartState handles the start screen.
func (c *Client) updateStartState() {
	if c.state.Input.Has(input.Confirm) {
		c.startGame()
	}
}

// updatePlayingState applies rotations as they arrive, then lets the
// scheduler run the ticks due this frame. Rotations land between ticks.
func (c *Client) updatePlayingState() {
	if c.state.isInactive {
		return
	}
	for _, a := range c.state.Input.Actions {
		if c.state.GameState != GameStatePlaying {
			return
		}
		switch a {
		case input.RotateLeft:
			c.session.Rotate(board.Left)
		case input.RotateRight:
			c.session.Rotate(board.Right)
		}
	}
	if c.state.GameState != GameStatePlaying {
		return
	}
	c.scheduler.Drive(c.session, c.state.delta)
}

// updateLostState waits for a restart.
func (c *Client) updateLostState() {
	if c.state.restartTimer > 0 {
		c.state.restartTimer -= c.state.delta.Seconds()
		return
	}
	if c.state.Input.Has(input.Confirm) {
		c.startGame()
	}
}

// startGame starts the first game or restarts after a loss.
func (c *Client) startGame() {
	input.Reset(c.inputStream)

	if c.state.GameState == GameStateLost {
		c.session.Restart()
	}
	c.scheduler.Reset()
	c.state.Final = nil
	c.state.Rank = 0
	c.state.GameState = GameStatePlaying
}

// ReportLoss is called by the session when the board overflows. It runs on
// the client goroutine, inside Rotate or Drive.
func (c *Client) ReportLoss(final *game.Snapshot) {
	c.state.Final = final
	c.state.Rank = c.server.ReportScore(c.handle.ID, final.Score)
	c.state.restartTimer = config.RestartDelaySeconds
	if c.state.GameState == GameStatePlaying {
		c.state.GameState = GameStateLost
	}
}

// updateShutdownState handles the shutdown screen countdown.
func (c *Client) updateShutdownState() {
	c.state.shutdownTimer -= c.state.delta.Seconds()
	if c.state.shutdownTimer <= 0 {
		c.state.Running = false
	}
}
