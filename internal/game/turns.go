package game

import "math/rand"

// TurnSequencer owns the cursor over the active ordered sequence of
// player indices. During RoleReveal and Voting the sequence is the
// registration order; during ClueRound it is a fresh random permutation
// per round.
type TurnSequencer struct {
	Order  []int
	Cursor int
}

// UseRegistrationOrder resets the sequence to 0..n-1 in order
func (t *TurnSequencer) UseRegistrationOrder(n int) {
	t.Order = make([]int, n)
	for i := range t.Order {
		t.Order[i] = i
	}
	t.Cursor = 0
}

// Reshuffle replaces the sequence with a uniformly random permutation
// of 0..n-1 and resets the cursor. The rng is injected so tests can fix
// the seed.
func (t *TurnSequencer) Reshuffle(n int, rng *rand.Rand) {
	t.Order = rng.Perm(n)
	t.Cursor = 0
}

// Current returns the player index at the cursor, or false if the
// sequence is exhausted
func (t *TurnSequencer) Current() (int, bool) {
	if t.Cursor >= len(t.Order) {
		return 0, false
	}
	return t.Order[t.Cursor], true
}

// Advance moves the cursor forward and reports whether the sequence is
// now exhausted
func (t *TurnSequencer) Advance() bool {
	t.Cursor++
	return t.Cursor >= len(t.Order)
}

// Exhausted reports whether the cursor has passed the end
func (t *TurnSequencer) Exhausted() bool {
	return t.Cursor >= len(t.Order)
}
