package config

import (
	"fmt"
	"time"

	"impostor/internal/game"
)

// This file defines the configuration structures; loading is handled by
// viper in viper_config.go.

// ServerConfig is the full application configuration
type ServerConfig struct {
	Server    ServerSettings    `yaml:"server"`
	Game      GameSettings      `yaml:"game"`
	Narration NarrationSettings `yaml:"narration"`
}

// ServerSettings contains server-wide settings
type ServerSettings struct {
	Port            string        `yaml:"port"`
	Host            string        `yaml:"host"`
	ReadTimeout     time.Duration `yaml:"readTimeout"`
	WriteTimeout    time.Duration `yaml:"writeTimeout"`
	IdleTimeout     time.Duration `yaml:"idleTimeout"` // 0 for SSE support
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout"`
	RequestTimeout  time.Duration `yaml:"requestTimeout"`

	// Rate limiting (golang.org/x/time/rate)
	RateLimit      float64 `yaml:"rateLimit"`
	RateLimitBurst int     `yaml:"rateLimitBurst"`

	MaxRequestSize int64 `yaml:"maxRequestSize"`

	SessionTimeout time.Duration `yaml:"sessionTimeout"`

	// External base URL used when rendering join links and QR codes
	PublicURL string `yaml:"publicUrl"`
}

// GameSettings is the engine tuning surface: player limits, keyword
// sets and the topic pool override. Empty lists fall back to the
// engine's bilingual defaults.
type GameSettings struct {
	MinPlayers    int `yaml:"minPlayers"`
	AutoStartCap  int `yaml:"autoStartCap"`
	ClueMinLength int `yaml:"clueMinLength"`

	Topics []string `yaml:"topics"`

	StartKeywords     []string `yaml:"startKeywords"`
	EndOfListKeywords []string `yaml:"endOfListKeywords"`
	ConfirmKeywords   []string `yaml:"confirmKeywords"`
	ContinueKeywords  []string `yaml:"continueKeywords"`
	StopKeywords      []string `yaml:"stopKeywords"`
	Stopwords         []string `yaml:"stopwords"`
}

// NarrationSettings configures the optional narrative generator. The
// engine runs fine with Enabled = false.
type NarrationSettings struct {
	Enabled bool   `yaml:"enabled"`
	APIKey  string `yaml:"apiKey"`
	Model   string `yaml:"model"`
	URL     string `yaml:"url"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *ServerConfig {
	def := game.DefaultSettings()
	return &ServerConfig{
		Server: ServerSettings{
			Port:            "",
			Host:            "",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    0, // 0 so SSE streams are not cut off
			IdleTimeout:     0,
			ShutdownTimeout: 30 * time.Second,
			RequestTimeout:  60 * time.Second,
			RateLimit:       10,
			RateLimitBurst:  20,
			MaxRequestSize:  1 << 20,
			SessionTimeout:  24 * time.Hour,
		},
		Game: GameSettings{
			MinPlayers:    def.MinPlayers,
			AutoStartCap:  def.AutoStartCap,
			ClueMinLength: def.ClueMinLength,
		},
	}
}

// GameSettings converts the config section into the engine's Settings
// value, leaving empty keyword sets to the engine defaults
func (c *ServerConfig) GameSettings() game.Settings {
	return game.Settings{
		MinPlayers:        c.Game.MinPlayers,
		AutoStartCap:      c.Game.AutoStartCap,
		ClueMinLength:     c.Game.ClueMinLength,
		StartKeywords:     c.Game.StartKeywords,
		EndOfListKeywords: c.Game.EndOfListKeywords,
		ConfirmKeywords:   c.Game.ConfirmKeywords,
		ContinueKeywords:  c.Game.ContinueKeywords,
		StopKeywords:      c.Game.StopKeywords,
		Stopwords:         c.Game.Stopwords,
	}
}

// Validate checks if the configuration is valid
func (c *ServerConfig) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT environment variable must be set")
	}
	if c.Server.Host == "" {
		return fmt.Errorf("HOST environment variable must be set")
	}

	if c.Game.MinPlayers < 1 {
		return fmt.Errorf("minPlayers must be at least 1")
	}
	if c.Game.AutoStartCap < c.Game.MinPlayers {
		return fmt.Errorf("autoStartCap (%d) cannot be below minPlayers (%d)", c.Game.AutoStartCap, c.Game.MinPlayers)
	}
	if c.Game.ClueMinLength < 1 {
		return fmt.Errorf("clueMinLength must be at least 1")
	}

	if c.Narration.Enabled && c.Narration.APIKey == "" {
		return fmt.Errorf("NARRATION_API_KEY must be set when narration is enabled")
	}

	return nil
}
