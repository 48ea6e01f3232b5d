package game

// Settings holds the externally supplied tuning for one session: player
// limits and the keyword sets the extractor matches against. The
// defaults carry both Spanish and English variants since the game is
// played aloud in either language.
type Settings struct {
	MinPlayers    int `json:"minPlayers"`
	AutoStartCap  int `json:"autoStartCap"`
	ClueMinLength int `json:"clueMinLength"`

	StartKeywords     []string `json:"startKeywords"`
	EndOfListKeywords []string `json:"endOfListKeywords"`
	ConfirmKeywords   []string `json:"confirmKeywords"`
	ContinueKeywords  []string `json:"continueKeywords"`
	StopKeywords      []string `json:"stopKeywords"`
	Stopwords         []string `json:"stopwords"`
}

// DefaultSettings returns the stock configuration: minimum 3 players,
// auto-start at 5, bilingual keyword sets.
func DefaultSettings() Settings {
	return Settings{
		MinPlayers:    3,
		AutoStartCap:  5,
		ClueMinLength: 2,

		StartKeywords: []string{
			"comenzar", "empezar", "dale", "start", "begin", "play",
		},
		EndOfListKeywords: []string{
			"ultimo", "ultima", "listos", "last", "done", "everyone", "todos",
		},
		ConfirmKeywords: []string{
			"listo", "lista", "ok", "okay", "visto", "entendido", "siguiente",
			"ready", "seen", "done", "yes", "next",
		},
		ContinueKeywords: []string{
			"otra", "ronda", "continuar", "seguir", "mas",
			"continue", "again", "more", "round", "another",
		},
		StopKeywords: []string{
			"votar", "votacion", "voto", "vote", "voting", "stop", "decide",
		},
		Stopwords: []string{
			"soy", "me", "llamo", "es", "el", "ella", "la", "mi", "nombre",
			"hola", "estamos", "somos", "una", "uno",
			"am", "my", "name", "is", "the", "this", "that", "hello",
			"we", "are", "and",
		},
	}
}

// normalized fills zero-valued limits with defaults so a partially
// populated Settings from config is still safe to run with
func (s Settings) normalized() Settings {
	def := DefaultSettings()
	if s.MinPlayers <= 0 {
		s.MinPlayers = def.MinPlayers
	}
	if s.AutoStartCap < s.MinPlayers {
		s.AutoStartCap = def.AutoStartCap
	}
	if s.ClueMinLength <= 0 {
		s.ClueMinLength = def.ClueMinLength
	}
	if len(s.StartKeywords) == 0 {
		s.StartKeywords = def.StartKeywords
	}
	if len(s.EndOfListKeywords) == 0 {
		s.EndOfListKeywords = def.EndOfListKeywords
	}
	if len(s.ConfirmKeywords) == 0 {
		s.ConfirmKeywords = def.ConfirmKeywords
	}
	if len(s.ContinueKeywords) == 0 {
		s.ContinueKeywords = def.ContinueKeywords
	}
	if len(s.StopKeywords) == 0 {
		s.StopKeywords = def.StopKeywords
	}
	if len(s.Stopwords) == 0 {
		s.Stopwords = def.Stopwords
	}
	return s
}
