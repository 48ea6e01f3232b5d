package game

// Phase represents the current phase of a game session
type Phase string

const (
	PhaseIdle          Phase = "idle"           // Session created, waiting for a start intent
	PhaseRegistration  Phase = "registration"   // Collecting player names
	PhaseRoleReveal    Phase = "role_reveal"    // Each player privately confirms their role
	PhaseClueRound     Phase = "clue_round"     // Players give clues in shuffled turn order
	PhaseRoundDecision Phase = "round_decision" // Another round or move to voting
	PhaseVoting        Phase = "voting"         // Players vote for the suspected impostor
	PhaseFinalPairing  Phase = "final_pairing"  // Asker/answerer closing dynamic
	PhaseResult        Phase = "result"         // Winner computed, terminal until reset
)

// String returns the string representation of the phase
func (p Phase) String() string {
	return string(p)
}

// CanTransitionTo checks if a transition from the current phase to the
// target phase is valid. Reset back to Idle is allowed from anywhere.
func (p Phase) CanTransitionTo(target Phase) bool {
	if target == PhaseIdle {
		return true
	}

	validTransitions := map[Phase][]Phase{
		PhaseIdle:          {PhaseRegistration},
		PhaseRegistration:  {PhaseRoleReveal},
		PhaseRoleReveal:    {PhaseClueRound},
		PhaseClueRound:     {PhaseRoundDecision},
		PhaseRoundDecision: {PhaseClueRound, PhaseVoting},
		PhaseVoting:        {PhaseFinalPairing},
		PhaseFinalPairing:  {PhaseResult},
		PhaseResult:        {},
	}

	allowed, ok := validTransitions[p]
	if !ok {
		return false
	}

	for _, phase := range allowed {
		if phase == target {
			return true
		}
	}
	return false
}
