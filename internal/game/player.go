package game

import "time"

// Player represents a registered participant. Names are unique per
// session under case- and diacritic-insensitive comparison.
type Player struct {
	Name        string
	HasSeenRole bool
	JoinedAt    time.Time
}

// NewPlayer creates a new player with the given canonical name
func NewPlayer(name string) *Player {
	return &Player{
		Name:     name,
		JoinedAt: time.Now(),
	}
}
