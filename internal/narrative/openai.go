package narrative

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"impostor/internal/game"
)

// OpenAIConfig configures the chat-completions endpoint and HTTP
// behavior. Any OpenAI-compatible server works; only the URL, key and
// model change.
type OpenAIConfig struct {
	APIKey         string
	Model          string
	CompletionsURL string
	HTTPClient     *http.Client
}

// OpenAIGenerator calls an OpenAI-compatible chat-completions API to
// produce narration. It implements game.Narrator.
type OpenAIGenerator struct {
	cfg OpenAIConfig
}

// NewOpenAIGenerator builds a generator, filling in endpoint and client
// defaults
func NewOpenAIGenerator(cfg OpenAIConfig) *OpenAIGenerator {
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = http.DefaultClient
	}
	if strings.TrimSpace(cfg.CompletionsURL) == "" {
		cfg.CompletionsURL = "https://api.openai.com/v1/chat/completions"
	}
	if strings.TrimSpace(cfg.Model) == "" {
		cfg.Model = "gpt-4o-mini"
	}
	return &OpenAIGenerator{cfg: cfg}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Narrate asks the model for a short clarification for the given phase.
// Errors are returned as-is; the caller decides the fallback.
func (g *OpenAIGenerator) Narrate(ctx context.Context, phase game.Phase, utterance string) (string, error) {
	payload := chatRequest{
		Model: g.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt + " " + phaseTask(phase)},
			{Role: "user", Content: utterance},
		},
		MaxTokens:   120,
		Temperature: 0.7,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encode narration request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.cfg.CompletionsURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build narration request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if g.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+g.cfg.APIKey)
	}

	resp, err := g.cfg.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("narration request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("narration request failed with status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode narration response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("narration response had no choices")
	}
	return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
}
