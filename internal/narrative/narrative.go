// Package narrative wraps the optional free-text narration
// collaborator. The game engine stays fully playable without it; this
// package only dresses up clarification prompts when a generator is
// configured and reachable.
package narrative

import (
	"impostor/internal/game"
)

// systemPrompt sets the moderator persona for generated narration
const systemPrompt = "You are the friendly, slightly formal moderator of a party game " +
	"called The Impostor: one player does not know the secret topic and must bluff. " +
	"The player just said something you could not act on. Reply with at most two short " +
	"sentences that keep the game moving. No emojis, no bracketed tags."

// phaseTask returns the per-phase instruction appended to the system
// prompt, so the model nudges the table toward the expected action
func phaseTask(phase game.Phase) string {
	switch phase {
	case game.PhaseIdle:
		return "Explain the game briefly and ask them to say \"start\" when ready."
	case game.PhaseRegistration:
		return "Ask for the next player's name, one name at a time."
	case game.PhaseRoleReveal:
		return "Ask the current player to confirm they have seen their role."
	case game.PhaseClueRound:
		return "Ask the current player for a short clue about the secret topic."
	case game.PhaseRoundDecision:
		return "Ask whether they want another clue round or to vote now."
	case game.PhaseVoting:
		return "Ask the current voter which player they vote for, by name."
	case game.PhaseFinalPairing:
		return "Ask the current pair to finish their question and answer."
	default:
		return "Wrap up warmly and invite them to play again."
	}
}
