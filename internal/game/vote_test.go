package game

import "testing"

func TestTallyVotes(t *testing.T) {
	tests := []struct {
		name      string
		votes     map[string]string
		wantName  string
		wantCount int
		wantTied  bool
	}{
		{
			name:      "clear majority",
			votes:     map[string]string{"A": "X", "B": "X", "C": "Y"},
			wantName:  "X",
			wantCount: 2,
			wantTied:  false,
		},
		{
			name:      "tie resolved lexically",
			votes:     map[string]string{"A": "Zoe", "B": "Ana", "C": "Zoe", "D": "Ana"},
			wantName:  "Ana",
			wantCount: 2,
			wantTied:  true,
		},
		{
			name:      "everyone votes the same",
			votes:     map[string]string{"A": "B", "B": "B", "C": "B"},
			wantName:  "B",
			wantCount: 3,
			wantTied:  false,
		},
		{
			name:      "single voter",
			votes:     map[string]string{"A": "B"},
			wantName:  "B",
			wantCount: 1,
			wantTied:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := TallyVotes(tt.votes)
			if result.MostVoted != tt.wantName {
				t.Errorf("MostVoted = %q, want %q", result.MostVoted, tt.wantName)
			}
			if result.Count != tt.wantCount {
				t.Errorf("Count = %d, want %d", result.Count, tt.wantCount)
			}
			if result.Tied != tt.wantTied {
				t.Errorf("Tied = %v, want %v", result.Tied, tt.wantTied)
			}
		})
	}
}

func TestResolveWinner(t *testing.T) {
	if got := ResolveWinner("Luis", "Luis"); got != CitizensWin {
		t.Errorf("voting out the impostor should be a citizens win, got %s", got)
	}
	if got := ResolveWinner("Ana", "Luis"); got != ImpostorWin {
		t.Errorf("voting out a citizen should be an impostor win, got %s", got)
	}
}
