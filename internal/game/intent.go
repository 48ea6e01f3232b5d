package game

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// IntentKind identifies what an utterance meant for the current phase
type IntentKind int

const (
	IntentNone IntentKind = iota
	IntentName
	IntentEndOfList
	IntentConfirmation
	IntentVote
	IntentContinue
	IntentStop
)

// Intent is the structured result of extraction. Name is set for
// IntentName and IntentVote.
type Intent struct {
	Kind IntentKind
	Name string
}

// Extractor performs phase-scoped keyword extraction over raw
// utterances. Matching is case-insensitive and diacritic-tolerant, so
// "ÚLTIMO" matches the "ultimo" keyword. All keyword sets come from
// Settings; nothing is hard-coded here.
type Extractor struct {
	cfg Settings
}

// NewExtractor creates an extractor with the given keyword settings
func NewExtractor(cfg Settings) *Extractor {
	return &Extractor{cfg: cfg}
}

// Extract interprets an utterance for the given phase against the
// current roster. It returns the intents in the order they fired; in
// Registration a single utterance can yield both a Name and an
// EndOfList intent ("Carlos, and he's the last one").
func (e *Extractor) Extract(phase Phase, utterance string, roster []string) []Intent {
	trimmed := strings.TrimSpace(utterance)
	if trimmed == "" {
		return nil
	}

	switch phase {
	case PhaseIdle:
		if e.matchesAny(trimmed, e.cfg.StartKeywords) {
			return []Intent{{Kind: IntentConfirmation}}
		}
	case PhaseRegistration:
		return e.extractRegistration(trimmed)
	case PhaseRoleReveal:
		if e.matchesAny(trimmed, e.cfg.ConfirmKeywords) {
			return []Intent{{Kind: IntentConfirmation}}
		}
	case PhaseClueRound:
		// Any non-trivial utterance is the clue itself; the controller
		// keeps the raw text.
		if len([]rune(trimmed)) > e.cfg.ClueMinLength {
			return []Intent{{Kind: IntentConfirmation}}
		}
	case PhaseRoundDecision:
		if e.matchesAny(trimmed, e.cfg.ContinueKeywords) {
			return []Intent{{Kind: IntentContinue}}
		}
		if e.matchesAny(trimmed, e.cfg.StopKeywords) {
			return []Intent{{Kind: IntentStop}}
		}
	case PhaseVoting:
		if name, ok := e.matchRoster(trimmed, roster); ok {
			return []Intent{{Kind: IntentVote, Name: name}}
		}
	case PhaseFinalPairing:
		if e.matchesAny(trimmed, e.cfg.ConfirmKeywords) || len([]rune(trimmed)) > e.cfg.ClueMinLength {
			return []Intent{{Kind: IntentConfirmation}}
		}
	}

	return nil
}

// extractRegistration pulls a candidate name out of the utterance and
// independently checks for an end-of-registration keyword. The name is
// the first token that survives the stopword filter, is alphabetic and
// longer than two runes, canonically capitalized.
func (e *Extractor) extractRegistration(utterance string) []Intent {
	var intents []Intent

	stop := make(map[string]bool, len(e.cfg.Stopwords))
	for _, w := range e.cfg.Stopwords {
		stop[foldString(w)] = true
	}
	end := make(map[string]bool, len(e.cfg.EndOfListKeywords))
	for _, w := range e.cfg.EndOfListKeywords {
		end[foldString(w)] = true
	}

	endOfList := false
	var name string
	for _, tok := range tokenize(utterance) {
		folded := foldString(tok)
		if end[folded] {
			endOfList = true
			continue
		}
		if name != "" || stop[folded] || len([]rune(tok)) <= 2 || !alphabetic(tok) {
			continue
		}
		name = cases.Title(language.Und).String(strings.ToLower(tok))
	}

	if name != "" {
		intents = append(intents, Intent{Kind: IntentName, Name: name})
	}
	if endOfList {
		intents = append(intents, Intent{Kind: IntentEndOfList})
	}
	return intents
}

// matchesAny reports whether any keyword occurs as a token of the
// folded utterance
func (e *Extractor) matchesAny(utterance string, keywords []string) bool {
	tokens := make(map[string]bool)
	for _, tok := range tokenize(utterance) {
		tokens[foldString(tok)] = true
	}
	for _, kw := range keywords {
		if tokens[foldString(kw)] {
			return true
		}
	}
	return false
}

// matchRoster finds the first registered name occurring as a substring
// of the utterance. First match in registration order wins.
func (e *Extractor) matchRoster(utterance string, roster []string) (string, bool) {
	folded := foldString(utterance)
	for _, name := range roster {
		if strings.Contains(folded, foldString(name)) {
			return name, true
		}
	}
	return "", false
}

// tokenize splits an utterance into word tokens, trimming punctuation
func tokenize(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}

func alphabetic(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// foldString lowercases and strips combining marks, so "María" and
// "maria" compare equal
func foldString(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}
