// Package config centralizes the tunable host parameters. Board rules live in
// package board and are not configurable.
package config

import "time"

// Render resolution. Terminals larger than this are centered with a border.
const (
	MaxTermWidth  = 160
	MaxTermHeight = 60
)

// Player
const (
	MaxUsernameLength = 16 // Maximum display length for player usernames
)

// Leaderboard
const (
	LeaderboardSize = 5 // Best scores kept in memory
)

// Shutdown
const (
	ShutdownDisplaySeconds = 10.0 // Seconds to show shutdown message before auto-disconnect
)

// Inactivity
const (
	InactivityWarnUser       = 90 * time.Second
	InactivityDisconnectUser = 120 * time.Second
)

// Client rendering
const (
	ClientTargetFPS       = 60
	ClientTargetFrameTime = time.Second / ClientTargetFPS
)

// Ticks released by one frame after a stall. Anything beyond is dropped.
const MaxCatchUpTicks = 3

// Lost screen
const (
	RestartDelaySeconds = 1.0 // Keeps a held key from restarting instantly
)
