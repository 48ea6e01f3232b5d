package game

import (
	"strconv"
	"strings"
)

// moderatorName is the speaker recorded for engine responses in the
// transcript
const moderatorName = "moderator"

// roleRevealOpening announces the start of the private role checks
func (c *Controller) roleRevealOpening() string {
	first := c.session.Players[0].Name
	return "The game begins. Everyone will privately see the secret topic, except one of you. " + first + ", please check your role first."
}

// clueTurnMessage names whose clue is up next
func (c *Controller) clueTurnMessage() string {
	s := c.session
	idx, ok := s.Turns.Current()
	if !ok {
		return "The round is complete."
	}
	return s.Players[idx].Name + ", your clue, please."
}

// votingTurnMessage names the next voter; voters go in registration order
func (c *Controller) votingTurnMessage() string {
	s := c.session
	if len(s.Votes) >= len(s.Players) {
		return "All votes are in."
	}
	return s.Players[len(s.Votes)].Name + ", who do you think the impostor is?"
}

// pairingTurnMessage announces the current asker/answerer pair
func (c *Controller) pairingTurnMessage() string {
	s := c.session
	if s.PairingCursor >= len(s.Pairings) {
		return "The pairing dynamic is over."
	}
	pair := s.Pairings[s.PairingCursor]
	return pair.Asker + ", ask " + pair.Answerer + " one question about the game."
}

// resultMessage reveals the impostor and the winner
func (c *Controller) resultMessage() string {
	s := c.session
	impostor := s.ImpostorName()
	if s.Tally == nil || impostor == "" {
		return "The game is over."
	}
	msg := "The group voted for " + s.Tally.MostVoted + " with " + strconv.Itoa(s.Tally.Count) + " votes"
	if s.Tally.Tied {
		msg += " (after a tie)"
	}
	msg += ". The impostor was " + impostor + ". "
	if ResolveWinner(s.Tally.MostVoted, impostor) == CitizensWin {
		msg += "The citizens win!"
	} else {
		msg += "The impostor wins!"
	}
	return msg
}

func needMorePlayersMessage(min, have int) string {
	return "I need at least " + strconv.Itoa(min) + " players and we only have " + strconv.Itoa(have) + ". Who else is playing?"
}

func joinNames(names []string) string {
	return strings.Join(names, ", ")
}
