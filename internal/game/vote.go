package game

import "sort"

// Winner identifies which side won the game
type Winner string

const (
	CitizensWin Winner = "citizens"
	ImpostorWin Winner = "impostor"
)

// TallyResult summarizes a completed vote
type TallyResult struct {
	MostVoted string         `json:"mostVoted"`
	Count     int            `json:"count"`
	Tied      bool           `json:"tied"`
	ByTarget  map[string]int `json:"byTarget"`
}

// TallyVotes counts votes per target and picks the most voted player.
// When several players tie for the maximum, the alphabetically first
// name wins, and the tie is reported alongside. The tie-break must be
// deterministic because the result message names a single player.
func TallyVotes(votes map[string]string) TallyResult {
	byTarget := make(map[string]int)
	for _, target := range votes {
		byTarget[target]++
	}

	maxCount := 0
	var tied []string
	for target, count := range byTarget {
		if count > maxCount {
			maxCount = count
			tied = []string{target}
		} else if count == maxCount {
			tied = append(tied, target)
		}
	}
	sort.Strings(tied)

	result := TallyResult{
		Count:    maxCount,
		Tied:     len(tied) > 1,
		ByTarget: byTarget,
	}
	if len(tied) > 0 {
		result.MostVoted = tied[0]
	}
	return result
}

// ResolveWinner decides the outcome: citizens win exactly when the
// most voted player is the impostor
func ResolveWinner(mostVoted, impostor string) Winner {
	if mostVoted == impostor {
		return CitizensWin
	}
	return ImpostorWin
}
