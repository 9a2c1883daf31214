package client

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/tomz197/hexfall/internal/loop/config"
	"github.com/tomz197/hexfall/internal/loop/server"
)

// drawFrame draws the current frame.
func (c *Client) drawFrame() error {
	// On game state or inactivity transitions, do a full terminal clear
	// so UI elements from the previous state don't persist on screen.
	stateChanged := c.state.GameState != c.state.prevGameState
	inactiveChanged := c.state.isInactive != c.state.wasInactive
	if stateChanged || inactiveChanged {
		c.chunkWriter.WriteString("\033[H\033[2J")
		c.canvas.ForceRedraw()
		c.state.prevGameState = c.state.GameState
		c.state.wasInactive = c.state.isInactive
	}

	snapshot := c.server.GetSnapshot()
	termWidth := c.canvas.TerminalWidth()
	termHeight := c.canvas.TerminalHeight()
	centerX := termWidth / 2
	centerY := termHeight / 2

	switch {
	case c.state.GameState == GameStateShutdown:
		c.renderBlank()
		c.drawShutdownScreen(centerX, centerY)
	case c.state.isInactive:
		c.renderBlank()
		c.drawInactivityScreen(centerX, centerY)
	case c.state.GameState == GameStatePlaying:
		c.view.Render(c.session.Snapshot())
		c.drawPlayingHUD(termWidth, termHeight, snapshot)
	case c.state.GameState == GameStateStart:
		c.renderBlank()
		c.drawStartScreen(centerX, centerY)
	case c.state.GameState == GameStateLost:
		c.renderBlank()
		c.drawLostScreen(centerX, centerY, snapshot)
	}

	c.canvas.RenderBorder(c.chunkWriter)

	return c.chunkWriter.Flush()
}

// renderBlank clears whatever the canvas showed last frame.
func (c *Client) renderBlank() {
	c.canvas.Clear()
	c.canvas.Render(c.chunkWriter, c.palette)
}

// writeCentered writes a text line and marks it for repaint next frame, so
// changing text never leaves residue.
func (c *Client) writeCentered(centerX, row int, s string) {
	col, width := c.chunkWriter.WriteCentered(centerX, row, s)
	c.canvas.MarkTextDirty(col, row, width)
}

// writeAt writes text at a fixed position and marks it for repaint.
func (c *Client) writeAt(col, row int, s string) {
	c.chunkWriter.WriteAt(col, row, s)
	c.canvas.MarkTextDirty(col, row, lipgloss.Width(s))
}

// drawInactivityScreen draws the inactivity warning screen.
func (c *Client) drawInactivityScreen(centerX, centerY int) {
	c.writeCentered(centerX, centerY-2, c.palette.Title.Render("INACTIVITY WARNING"))

	left := max(c.idleTimeout-time.Since(c.lastInput), 0)
	msg := fmt.Sprintf("You will be disconnected in %d seconds.", int(left.Seconds()))
	c.writeCentered(centerX, centerY, msg)

	c.writeCentered(centerX, centerY+2, c.palette.Dim.Render("Press any key to continue"))
}

// drawStartScreen draws the title screen.
func (c *Client) drawStartScreen(centerX, centerY int) {
	// ASCII art title (figlet "small" font)
	titleArt := []string{
		` _  _  ___ __  __ ___    _    _     _    `,
		`| || || __|\ \/ /| __|  /_\  | |   | |   `,
		`| __ || _|  >  < | _|  / _ \ | |__ | |__ `,
		`|_||_||___|/_/\_\|_|  /_/ \_\|____||____|`,
	}

	titleStartY := centerY - 8
	for i, line := range titleArt {
		c.writeCentered(centerX, titleStartY+i, c.palette.Title.Render(line))
	}

	subtitle := "~ Match three on a spinning hexagon ~"
	c.writeCentered(centerX, titleStartY+len(titleArt)+1, subtitle)

	controlsY := titleStartY + len(titleArt) + 3
	c.writeCentered(centerX, controlsY, "Controls")

	controlLines := []string{
		"A / <  . . . Rotate left",
		"D / >  . . Rotate right",
		"Q  . . . . . . . . Quit",
	}
	for i, line := range controlLines {
		c.writeCentered(centerX, controlsY+1+i, c.palette.Dim.Render(line))
	}

	// Blinking start prompt
	prompt := ">>  Press SPACE to Start  <<"
	if time.Now().UnixMilli()/600%2 != 0 {
		prompt = ""
	}
	c.writeCentered(centerX, controlsY+len(controlLines)+2, c.palette.Text.Render(prompt))
}

// drawPlayingHUD draws the in-game HUD.
// Text fields use fixed-width formatting so shrinking values don't leave
// residual characters on screen.
func (c *Client) drawPlayingHUD(termWidth, termHeight int, snapshot *server.ServerSnapshot) {
	snap := c.session.Snapshot()

	c.writeAt(2, 1, fmt.Sprintf("Score: %-8d", snap.Score))
	c.writeAt(2, 2, fmt.Sprintf("Game:  %-8d", snap.Game))

	playersText := fmt.Sprintf("Players: %-4d", snapshot.Players)
	c.writeAt(termWidth-len(playersText)-1, 1, playersText)

	c.drawLeaderboard(termWidth-config.MaxUsernameLength-9, 3, snapshot)

	c.writeAt(2, termHeight, c.palette.Dim.Render("A/D rotate  Q quit"))
}

// drawLeaderboard lists the top scores starting at (col, row).
func (c *Client) drawLeaderboard(col, row int, snapshot *server.ServerSnapshot) {
	if col < 1 || len(snapshot.TopScores) == 0 {
		return
	}
	c.writeAt(col, row, c.palette.Title.Render("Top scores"))
	for i, entry := range snapshot.TopScores {
		line := fmt.Sprintf("%d. %-*s %5d", i+1, config.MaxUsernameLength, entry.Username, entry.Score)
		c.writeAt(col, row+1+i, line)
	}
}

// drawLostScreen draws the game over screen.
func (c *Client) drawLostScreen(centerX, centerY int, snapshot *server.ServerSnapshot) {
	titleArt := []string{
		`   ___   _   __  __ ___    _____   _____ ___  `,
		`  / __| /_\ |  \/  | __|  / _ \ \ / / __| _ \ `,
		` | (_ |/ _ \| |\/| | _|  | (_) \ V /| _||   / `,
		`  \___/_/ \_\_|  |_|___|  \___/ \_/ |___|_|_\ `,
	}

	titleStartY := centerY - 7
	for i, line := range titleArt {
		c.writeCentered(centerX, titleStartY+i, c.palette.Title.Render(line))
	}

	score := 0
	if c.state.Final != nil {
		score = c.state.Final.Score
	}
	c.writeCentered(centerX, titleStartY+len(titleArt)+1, c.palette.Text.Render(fmt.Sprintf("Score: %d", score)))

	if c.state.Rank > 0 {
		c.writeCentered(centerX, titleStartY+len(titleArt)+2, fmt.Sprintf("New high score! #%d", c.state.Rank))
	}

	if c.state.restartTimer <= 0 && time.Now().UnixMilli()/600%2 == 0 {
		c.writeCentered(centerX, titleStartY+len(titleArt)+4, ">>  Press SPACE to Restart  <<")
	}

	listY := titleStartY + len(titleArt) + 6
	for i, entry := range snapshot.TopScores {
		line := fmt.Sprintf("%d. %-*s %5d", i+1, config.MaxUsernameLength, entry.Username, entry.Score)
		c.writeCentered(centerX, listY+i, c.palette.Dim.Render(line))
	}
}

// drawShutdownScreen draws the server shutdown notification screen.
func (c *Client) drawShutdownScreen(centerX, centerY int) {
	c.writeCentered(centerX, centerY-3, c.palette.Title.Render("SERVER SHUTTING DOWN"))
	c.writeCentered(centerX, centerY-1, "The server is restarting for maintenance.")
	c.writeCentered(centerX, centerY, "Please reconnect in a moment.")

	remaining := int(c.state.shutdownTimer) + 1
	c.writeCentered(centerX, centerY+2, fmt.Sprintf("Disconnecting in %d seconds...", remaining))

	c.writeCentered(centerX, centerY+4, c.palette.Dim.Render("Press Q to disconnect now"))
}
