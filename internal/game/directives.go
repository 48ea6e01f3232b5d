package game

import (
	"fmt"
	"regexp"
	"strings"
)

// DirectiveKind is the closed vocabulary of machine-readable tags the
// engine emits for external collaborators (voice layer, GUI). The
// bracket grammar is a wire format: collaborators pattern-match on it,
// so the rendered tokens must stay byte-for-byte stable.
type DirectiveKind string

const (
	DirStart           DirectiveKind = "START"
	DirRegister        DirectiveKind = "REGISTER"
	DirBeginGame       DirectiveKind = "BEGIN_GAME"
	DirPlayerReady     DirectiveKind = "PLAYER_READY"
	DirClueSaved       DirectiveKind = "CLUE_SAVED"
	DirNewRound        DirectiveKind = "NEW_ROUND"
	DirStartVote       DirectiveKind = "START_VOTE"
	DirVote            DirectiveKind = "VOTE"
	DirBeginPairing    DirectiveKind = "BEGIN_PAIRING"
	DirPairingAnswered DirectiveKind = "PAIRING_ANSWERED"
)

// Directive is one emitted tag; Arg is set for REGISTER and VOTE
type Directive struct {
	Kind DirectiveKind `json:"kind"`
	Arg  string        `json:"arg,omitempty"`
}

// Token renders the bracketed wire form, e.g. "[REGISTER:Maria]"
func (d Directive) Token() string {
	if d.Arg != "" {
		return fmt.Sprintf("[%s:%s]", d.Kind, d.Arg)
	}
	return fmt.Sprintf("[%s]", d.Kind)
}

// Outcome is the result of handling one utterance
type Outcome struct {
	Response   string      `json:"response"`
	Directives []Directive `json:"directives,omitempty"`
}

// Text renders the outgoing message with directive tokens prefixed,
// matching what voice/GUI collaborators parse
func (o Outcome) Text() string {
	if len(o.Directives) == 0 {
		return o.Response
	}
	var b strings.Builder
	for _, d := range o.Directives {
		b.WriteString(d.Token())
		b.WriteByte(' ')
	}
	b.WriteString(o.Response)
	return b.String()
}

var directivePattern = regexp.MustCompile(`\[[A-Z_]+(?::[^\]]*)?\]\s*`)

// StripDirectives removes bracketed tags, leaving only the
// human-readable text for speech synthesis or display
func StripDirectives(text string) string {
	return strings.TrimSpace(directivePattern.ReplaceAllString(text, ""))
}
