package game

import "testing"

func TestDirectiveToken(t *testing.T) {
	tests := []struct {
		directive Directive
		want      string
	}{
		{Directive{Kind: DirStart}, "[START]"},
		{Directive{Kind: DirRegister, Arg: "Maria"}, "[REGISTER:Maria]"},
		{Directive{Kind: DirBeginGame}, "[BEGIN_GAME]"},
		{Directive{Kind: DirVote, Arg: "Luis"}, "[VOTE:Luis]"},
		{Directive{Kind: DirPairingAnswered}, "[PAIRING_ANSWERED]"},
	}
	for _, tt := range tests {
		if got := tt.directive.Token(); got != tt.want {
			t.Errorf("Token() = %q, want %q", got, tt.want)
		}
	}
}

func TestOutcomeText(t *testing.T) {
	out := Outcome{
		Response: "Noted, Maria. Who is next?",
		Directives: []Directive{
			{Kind: DirRegister, Arg: "Maria"},
		},
	}
	want := "[REGISTER:Maria] Noted, Maria. Who is next?"
	if got := out.Text(); got != want {
		t.Errorf("Text() = %q, want %q", got, want)
	}

	plain := Outcome{Response: "Please repeat that."}
	if got := plain.Text(); got != "Please repeat that." {
		t.Errorf("Text() without directives = %q", got)
	}
}

func TestStripDirectives(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"[REGISTER:Maria] Noted, Maria.", "Noted, Maria."},
		{"[BEGIN_GAME] [START_VOTE] Go.", "Go."},
		{"no tags here", "no tags here"},
		{"[PLAYER_READY]", ""},
	}
	for _, tt := range tests {
		if got := StripDirectives(tt.in); got != tt.want {
			t.Errorf("StripDirectives(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
