package game

import "math/rand"

// Pairing is one asker/answerer pair for the closing dynamic
type Pairing struct {
	Asker    string `json:"asker"`
	Answerer string `json:"answerer"`
}

// GeneratePairings builds the asker/answerer pairs for the closing
// dynamic: shuffle the roster, then pair consecutive players. With an
// odd count the leftover player asks the first player in the shuffled
// order, so that player appears twice. That asymmetry is deliberate:
// full coverage matters more than fairness of repeats. The result
// always holds ceil(n/2) pairs and every player appears at least once.
func GeneratePairings(players []string, rng *rand.Rand) []Pairing {
	if len(players) == 0 {
		return nil
	}

	shuffled := make([]string, len(players))
	copy(shuffled, players)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	pairings := make([]Pairing, 0, (len(shuffled)+1)/2)
	for i := 0; i+1 < len(shuffled); i += 2 {
		pairings = append(pairings, Pairing{Asker: shuffled[i], Answerer: shuffled[i+1]})
	}
	if len(shuffled)%2 == 1 {
		pairings = append(pairings, Pairing{
			Asker:    shuffled[len(shuffled)-1],
			Answerer: shuffled[0],
		})
	}
	return pairings
}
