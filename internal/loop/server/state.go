package server

import (
	"slices"
)

// TopScoreEntry represents a single entry on the leaderboard.
type TopScoreEntry struct {
	Username string
	Score    int
	clientID int // Used for deterministic tie-break when scores are equal
}

// ServerSnapshot is an immutable view of the server for rendering.
type ServerSnapshot struct {
	Players   int             // Connected clients
	TopScores []TopScoreEntry // Best scores, highest first
}

// leaderboard keeps the best score of each client, limited to size entries.
// Not safe for concurrent use; the server guards it.
type leaderboard struct {
	size    int
	entries []TopScoreEntry
}

func newLeaderboard(size int) *leaderboard {
	return &leaderboard{
		size:    size,
		entries: make([]TopScoreEntry, 0, size+1),
	}
}

// submit records score for a client and returns its 1-based rank, or 0 when
// the score did not make the board. A client keeps only its best entry.
func (l *leaderboard) submit(clientID int, username string, score int) int {
	if score <= 0 || l.size <= 0 {
		return 0
	}

	if i := slices.IndexFunc(l.entries, func(e TopScoreEntry) bool { return e.clientID == clientID }); i >= 0 {
		if l.entries[i].Score >= score {
			return 0
		}
		l.entries = slices.Delete(l.entries, i, i+1)
	}

	entry := TopScoreEntry{Username: username, Score: score, clientID: clientID}
	pos, _ := slices.BinarySearchFunc(l.entries, entry, compareEntries)
	if pos >= l.size {
		return 0
	}
	l.entries = slices.Insert(l.entries, pos, entry)
	if len(l.entries) > l.size {
		l.entries = l.entries[:l.size]
	}
	return pos + 1
}

// compareEntries orders by score, highest first, then by client ID.
func compareEntries(a, b TopScoreEntry) int {
	if a.Score != b.Score {
		return b.Score - a.Score
	}
	return a.clientID - b.clientID
}

// top returns a copy of the current entries.
func (l *leaderboard) top() []TopScoreEntry {
	return slices.Clone(l.entries)
}
