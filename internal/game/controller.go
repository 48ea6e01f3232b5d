package game

import (
	"context"
	"math/rand"
	"strconv"
	"strings"
	"time"
)

// Narrator produces free-text narration for utterances the extractor
// could not classify. It is optional and may be rate-limited or down;
// the controller must stay fully playable without it, so every call is
// bounded and every failure falls back to a deterministic prompt.
type Narrator interface {
	Narrate(ctx context.Context, phase Phase, utterance string) (string, error)
}

const narrateTimeout = 10 * time.Second

// Controller drives one game session: it interprets each utterance for
// the current phase, applies the resulting mutation, and composes the
// outgoing response. It is the sole mutator of its Session; callers
// serving multiple clients must serialize access per session.
type Controller struct {
	cfg       Settings
	topics    *TopicService
	extractor *Extractor
	rng       *rand.Rand
	narrator  Narrator
	session   *Session
}

// Option customizes controller construction
type Option func(*Controller)

// WithRand injects a seedable random source for role assignment,
// shuffling and pairing, so tests are reproducible
func WithRand(rng *rand.Rand) Option {
	return func(c *Controller) { c.rng = rng }
}

// WithNarrator injects the optional narrative generator
func WithNarrator(n Narrator) Option {
	return func(c *Controller) { c.narrator = n }
}

// NewController creates a controller with a fresh Idle session
func NewController(cfg Settings, topics *TopicService, opts ...Option) *Controller {
	cfg = cfg.normalized()
	c := &Controller{
		cfg:       cfg,
		topics:    topics,
		extractor: NewExtractor(cfg),
		session:   NewSession(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.rng == nil {
		c.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return c
}

// Session exposes the underlying state for snapshots and tests.
// Callers must not mutate it.
func (c *Controller) Session() *Session {
	return c.session
}

// Reset returns the session to Idle, keeping configuration
func (c *Controller) Reset() {
	c.session.Reset()
}

// Handle processes one utterance and returns the response plus any
// directive tags. Unrecognized input never mutates state, with one
// documented exception: in RoundDecision anything that is not a
// "continue" moves the game to Voting.
func (c *Controller) Handle(utterance string) Outcome {
	s := c.session
	s.Record(c.currentSpeaker(), utterance)

	intents := c.extractor.Extract(s.Phase, utterance, s.PlayerNames())

	var out Outcome
	switch s.Phase {
	case PhaseIdle:
		out = c.handleIdle(intents)
	case PhaseRegistration:
		out = c.handleRegistration(intents)
	case PhaseRoleReveal:
		out = c.handleRoleReveal(intents)
	case PhaseClueRound:
		out = c.handleClueRound(intents, utterance)
	case PhaseRoundDecision:
		out = c.handleRoundDecision(intents)
	case PhaseVoting:
		out = c.handleVoting(intents)
	case PhaseFinalPairing:
		out = c.handleFinalPairing(intents)
	case PhaseResult:
		out = Outcome{Response: c.resultMessage() + " Say the word and we will play again."}
	}

	s.Record(moderatorName, out.Text())
	return out
}

func (c *Controller) handleIdle(intents []Intent) Outcome {
	if hasIntent(intents, IntentConfirmation) {
		c.session.Phase = PhaseRegistration
		return Outcome{
			Response:   "Perfect. Tell me the name of the first player.",
			Directives: []Directive{{Kind: DirStart}},
		}
	}
	return c.fallback("Welcome! One of you will be the impostor; the rest share a secret topic. Say \"start\" when everyone is ready.")
}

func (c *Controller) handleRegistration(intents []Intent) Outcome {
	s := c.session
	var directives []Directive
	var parts []string

	for _, intent := range intents {
		switch intent.Kind {
		case IntentName:
			if err := s.AddPlayer(intent.Name); err != nil {
				// Dedicated rejection, no mutation, and no further
				// processing of this utterance.
				return Outcome{Response: intent.Name + " is already on the list. Next name?"}
			}
			directives = append(directives, Directive{Kind: DirRegister, Arg: intent.Name})

			if len(s.Players) >= c.cfg.AutoStartCap {
				c.startGame()
				directives = append(directives, Directive{Kind: DirBeginGame})
				return Outcome{
					Response:   "Registration complete. " + c.roleRevealOpening(),
					Directives: directives,
				}
			}
			parts = append(parts, "Noted, "+intent.Name+".")

		case IntentEndOfList:
			if len(s.Players) < c.cfg.MinPlayers {
				parts = append(parts, needMorePlayersMessage(c.cfg.MinPlayers, len(s.Players)))
				continue
			}
			c.startGame()
			directives = append(directives, Directive{Kind: DirBeginGame})
			return Outcome{
				Response:   strings.Join(append(parts, c.roleRevealOpening()), " "),
				Directives: directives,
			}
		}
	}

	if len(directives) == 0 && len(parts) == 0 {
		return c.fallback("I did not catch a name. Who is next?")
	}
	if len(directives) > 0 {
		parts = append(parts, "Who is next?")
	}
	return Outcome{Response: strings.Join(parts, " "), Directives: directives}
}

func (c *Controller) handleRoleReveal(intents []Intent) Outcome {
	s := c.session
	if !hasIntent(intents, IntentConfirmation) {
		current := c.currentSpeaker()
		return c.fallback(current + ", have you seen your role? Say \"ready\" once you have.")
	}

	idx, ok := s.Turns.Current()
	if !ok {
		// Cursor already exhausted; nothing left to confirm.
		return Outcome{Response: "Everyone is ready. Let us begin."}
	}
	player := s.Players[idx]
	player.HasSeenRole = true
	s.ReadyPlayers[player.Name] = true
	s.Turns.Advance()

	directives := []Directive{{Kind: DirPlayerReady}}
	if len(s.ReadyPlayers) >= len(s.Players) {
		c.beginClueRound(1)
		return Outcome{
			Response:   "All roles seen. " + c.clueTurnMessage(),
			Directives: directives,
		}
	}

	nextIdx, _ := s.Turns.Current()
	return Outcome{
		Response:   "Thank you, " + player.Name + ". " + s.Players[nextIdx].Name + ", please check your role.",
		Directives: directives,
	}
}

func (c *Controller) handleClueRound(intents []Intent, utterance string) Outcome {
	s := c.session
	if !hasIntent(intents, IntentConfirmation) {
		return c.fallback("I need a slightly longer clue. Try again.")
	}

	idx, ok := s.Turns.Current()
	if !ok {
		return Outcome{Response: "This round is already complete."}
	}
	player := s.Players[idx]
	s.CluesThisRound = append(s.CluesThisRound, Clue{
		Player: player.Name,
		Text:   strings.TrimSpace(utterance),
	})

	directives := []Directive{{Kind: DirClueSaved}}
	if s.Turns.Advance() {
		s.Phase = PhaseRoundDecision
		return Outcome{
			Response:   "Good clue. That closes round " + strconv.Itoa(s.RoundNumber) + ". Another round of clues, or shall we vote?",
			Directives: directives,
		}
	}
	return Outcome{
		Response:   "Good clue, " + player.Name + ". " + c.clueTurnMessage(),
		Directives: directives,
	}
}

func (c *Controller) handleRoundDecision(intents []Intent) Outcome {
	s := c.session
	if hasIntent(intents, IntentContinue) {
		c.beginClueRound(s.RoundNumber + 1)
		return Outcome{
			Response:   "Round " + strconv.Itoa(s.RoundNumber) + " it is. " + c.clueTurnMessage(),
			Directives: []Directive{{Kind: DirNewRound}},
		}
	}

	// A stop intent, or anything the extractor could not classify,
	// moves to voting. That asymmetric fallback is deliberate: a vote
	// eventually happens even if nobody says the magic word.
	s.Phase = PhaseVoting
	s.Turns.UseRegistrationOrder(len(s.Players))
	s.Votes = make(map[string]string)
	return Outcome{
		Response:   "Time to vote. " + c.votingTurnMessage(),
		Directives: []Directive{{Kind: DirStartVote}},
	}
}

func (c *Controller) handleVoting(intents []Intent) Outcome {
	s := c.session
	voter := s.Players[len(s.Votes)]

	vote, ok := findIntent(intents, IntentVote)
	if !ok {
		return c.fallback(voter.Name + ", I did not recognize that name. Who do you vote for? The players are " + joinNames(s.PlayerNames()) + ".")
	}

	s.Votes[voter.Name] = vote.Name
	directives := []Directive{{Kind: DirVote, Arg: vote.Name}}

	if len(s.Votes) >= len(s.Players) {
		tally := TallyVotes(s.Votes)
		s.Tally = &tally
		s.Pairings = GeneratePairings(s.PlayerNames(), c.rng)
		s.PairingCursor = 0
		s.Phase = PhaseFinalPairing
		directives = append(directives, Directive{Kind: DirBeginPairing})
		return Outcome{
			Response:   "Votes are in. Before the reveal, one last dynamic: " + c.pairingTurnMessage(),
			Directives: directives,
		}
	}
	return Outcome{
		Response:   "Vote registered. " + c.votingTurnMessage(),
		Directives: directives,
	}
}

func (c *Controller) handleFinalPairing(intents []Intent) Outcome {
	s := c.session
	if !hasIntent(intents, IntentConfirmation) {
		return c.fallback("Answer the question, then we move on. " + c.pairingTurnMessage())
	}

	s.PairingCursor++
	directives := []Directive{{Kind: DirPairingAnswered}}
	if s.PairingCursor >= len(s.Pairings) {
		s.Phase = PhaseResult
		return Outcome{
			Response:   "That was the last pair. " + c.resultMessage(),
			Directives: directives,
		}
	}
	return Outcome{
		Response:   "Nice. " + c.pairingTurnMessage(),
		Directives: directives,
	}
}

// startGame draws the secret topic, picks the impostor uniformly at
// random, and enters RoleReveal in registration order
func (c *Controller) startGame() {
	s := c.session
	s.SecretTopic = c.topics.Draw(c.rng)
	s.ImpostorIndex = c.rng.Intn(len(s.Players))
	s.ReadyPlayers = make(map[string]bool)
	s.Turns.UseRegistrationOrder(len(s.Players))
	s.Phase = PhaseRoleReveal
}

// beginClueRound reshuffles the turn order and clears the round's clues
func (c *Controller) beginClueRound(round int) {
	s := c.session
	s.RoundNumber = round
	s.CluesThisRound = nil
	s.Turns.Reshuffle(len(s.Players), c.rng)
	s.Phase = PhaseClueRound
}

// currentSpeaker derives who is talking from phase state, for the
// transcript
func (c *Controller) currentSpeaker() string {
	s := c.session
	switch s.Phase {
	case PhaseRoleReveal, PhaseClueRound:
		if idx, ok := s.Turns.Current(); ok {
			return s.Players[idx].Name
		}
	case PhaseVoting:
		if len(s.Votes) < len(s.Players) {
			return s.Players[len(s.Votes)].Name
		}
	case PhaseFinalPairing:
		if s.PairingCursor < len(s.Pairings) {
			return s.Pairings[s.PairingCursor].Answerer
		}
	}
	return "user"
}

// fallback asks the narrator for a friendlier clarification and falls
// back to the deterministic prompt when it is unavailable. State is
// never mutated on this path.
func (c *Controller) fallback(prompt string) Outcome {
	if c.narrator != nil {
		ctx, cancel := context.WithTimeout(context.Background(), narrateTimeout)
		defer cancel()
		last := ""
		if n := len(c.session.History); n > 0 {
			last = c.session.History[n-1].Utterance
		}
		if text, err := c.narrator.Narrate(ctx, c.session.Phase, last); err == nil && strings.TrimSpace(text) != "" {
			return Outcome{Response: StripDirectives(text)}
		}
	}
	return Outcome{Response: prompt}
}

func hasIntent(intents []Intent, kind IntentKind) bool {
	for _, i := range intents {
		if i.Kind == kind {
			return true
		}
	}
	return false
}

func findIntent(intents []Intent, kind IntentKind) (Intent, bool) {
	for _, i := range intents {
		if i.Kind == kind {
			return i, true
		}
	}
	return Intent{}, false
}
