package game

import "time"

// Clue is one (player, text) entry recorded during a clue round
type Clue struct {
	Player string `json:"player"`
	Text   string `json:"text"`
}

// HistoryEntry is one line of the append-only session transcript
type HistoryEntry struct {
	Speaker   string    `json:"speaker"`
	Utterance string    `json:"utterance"`
	At        time.Time `json:"at"`
}

// Session is the full mutable state of one game, exclusively owned by
// a Controller for the lifetime of that game. Registration order is
// preserved in Players; Turns holds the active speaking order, which is
// registration order during RoleReveal and reshuffled each clue round.
type Session struct {
	Phase   Phase
	Players []*Player

	// Set once when the game initializes, at Registration -> RoleReveal
	SecretTopic   string
	ImpostorIndex int

	// Turn state
	Turns TurnSequencer

	// RoleReveal bookkeeping
	ReadyPlayers map[string]bool

	// Clue rounds
	RoundNumber    int
	CluesThisRound []Clue

	// Voting
	Votes map[string]string
	Tally *TallyResult

	// Closing dynamic
	Pairings      []Pairing
	PairingCursor int

	History []HistoryEntry

	CreatedAt time.Time
}

// NewSession creates a session in the Idle phase
func NewSession() *Session {
	return &Session{
		Phase:         PhaseIdle,
		ImpostorIndex: -1,
		ReadyPlayers:  make(map[string]bool),
		Votes:         make(map[string]string),
		CreatedAt:     time.Now(),
	}
}

// Reset reinitializes all game state, returning the session to Idle.
// External configuration (topic pool, player limits) lives on the
// Controller and survives the reset.
func (s *Session) Reset() {
	s.Phase = PhaseIdle
	s.Players = nil
	s.SecretTopic = ""
	s.ImpostorIndex = -1
	s.Turns = TurnSequencer{}
	s.ReadyPlayers = make(map[string]bool)
	s.RoundNumber = 0
	s.CluesThisRound = nil
	s.Votes = make(map[string]string)
	s.Tally = nil
	s.Pairings = nil
	s.PairingCursor = 0
	s.History = nil
}

// PlayerNames returns the registered names in registration order
func (s *Session) PlayerNames() []string {
	names := make([]string, len(s.Players))
	for i, p := range s.Players {
		names[i] = p.Name
	}
	return names
}

// HasPlayer reports whether a name is already registered, comparing
// case- and diacritic-insensitively
func (s *Session) HasPlayer(name string) bool {
	folded := foldString(name)
	for _, p := range s.Players {
		if foldString(p.Name) == folded {
			return true
		}
	}
	return false
}

// AddPlayer registers a new name in registration order
func (s *Session) AddPlayer(name string) error {
	if s.HasPlayer(name) {
		return ErrDuplicateName
	}
	s.Players = append(s.Players, NewPlayer(name))
	return nil
}

// ImpostorName returns the impostor's name, or "" before game start
func (s *Session) ImpostorName() string {
	if s.ImpostorIndex < 0 || s.ImpostorIndex >= len(s.Players) {
		return ""
	}
	return s.Players[s.ImpostorIndex].Name
}

// Record appends one utterance to the audit transcript
func (s *Session) Record(speaker, utterance string) {
	s.History = append(s.History, HistoryEntry{
		Speaker:   speaker,
		Utterance: utterance,
		At:        time.Now(),
	})
}
