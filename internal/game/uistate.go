package game

// RevealedRole is what the player currently at the reveal cursor may
// see: the impostor flag, and the topic only for non-impostors. The
// secret topic is never exposed to the impostor.
type RevealedRole struct {
	IsImpostor bool   `json:"isImpostor"`
	Topic      string `json:"topic,omitempty"`
}

// PairingProgress reports how far the closing dynamic has advanced
type PairingProgress struct {
	Current int `json:"current"`
	Total   int `json:"total"`
}

// UIState is a read-only snapshot for rendering layers. Building it has
// no side effects.
type UIState struct {
	Phase             Phase            `json:"phase"`
	Players           []string         `json:"players"`
	CurrentTurnPlayer string           `json:"currentTurnPlayer,omitempty"`
	RevealedRole      *RevealedRole    `json:"revealedRole,omitempty"`
	ReadyCount        int              `json:"readyCount"`
	TotalPlayers      int              `json:"totalPlayers"`
	RoundNumber       int              `json:"roundNumber,omitempty"`
	Clues             []Clue           `json:"clues,omitempty"`
	VotesCast         int              `json:"votesCast"`
	CurrentAsker      string           `json:"currentAsker,omitempty"`
	CurrentAnswerer   string           `json:"currentAnswerer,omitempty"`
	PairingProgress   *PairingProgress `json:"pairingProgress,omitempty"`
	Winner            Winner           `json:"winner,omitempty"`
	Impostor          string           `json:"impostor,omitempty"`
}

// UIState builds the snapshot for the current session state
func (c *Controller) UIState() UIState {
	s := c.session
	state := UIState{
		Phase:        s.Phase,
		Players:      s.PlayerNames(),
		ReadyCount:   len(s.ReadyPlayers),
		TotalPlayers: len(s.Players),
		RoundNumber:  s.RoundNumber,
		VotesCast:    len(s.Votes),
	}

	switch s.Phase {
	case PhaseRoleReveal:
		if idx, ok := s.Turns.Current(); ok {
			state.CurrentTurnPlayer = s.Players[idx].Name
			role := &RevealedRole{IsImpostor: idx == s.ImpostorIndex}
			if !role.IsImpostor {
				role.Topic = s.SecretTopic
			}
			state.RevealedRole = role
		}
	case PhaseClueRound:
		if idx, ok := s.Turns.Current(); ok {
			state.CurrentTurnPlayer = s.Players[idx].Name
		}
		state.Clues = s.CluesThisRound
	case PhaseRoundDecision:
		state.Clues = s.CluesThisRound
	case PhaseVoting:
		if len(s.Votes) < len(s.Players) {
			state.CurrentTurnPlayer = s.Players[len(s.Votes)].Name
		}
	case PhaseFinalPairing:
		if s.PairingCursor < len(s.Pairings) {
			pair := s.Pairings[s.PairingCursor]
			state.CurrentAsker = pair.Asker
			state.CurrentAnswerer = pair.Answerer
		}
		state.PairingProgress = &PairingProgress{
			Current: s.PairingCursor,
			Total:   len(s.Pairings),
		}
	case PhaseResult:
		if s.Tally != nil {
			state.Winner = ResolveWinner(s.Tally.MostVoted, s.ImpostorName())
			state.Impostor = s.ImpostorName()
		}
	}

	return state
}
