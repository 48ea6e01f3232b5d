package game

import (
	"fmt"
	"math/rand"
	"strings"

	"gopkg.in/yaml.v3"
)

// TopicPool is the on-disk shape of the topic list
type TopicPool struct {
	Topics []string `yaml:"topics"`
}

// TopicService holds the word/topic pool the secret topic is drawn
// from. The pool is loaded once at startup from the embedded YAML
// asset, optionally replaced by configuration.
type TopicService struct {
	topics []string
}

// NewTopicService parses a YAML topic pool and fails fast on an empty
// or malformed document
func NewTopicService(data []byte) (*TopicService, error) {
	var pool TopicPool
	if err := yaml.Unmarshal(data, &pool); err != nil {
		return nil, fmt.Errorf("failed to parse topic pool: %w", err)
	}
	return NewTopicServiceFromList(pool.Topics)
}

// NewTopicServiceFromList builds a service from an in-memory list,
// discarding blank entries
func NewTopicServiceFromList(topics []string) (*TopicService, error) {
	cleaned := make([]string, 0, len(topics))
	for _, t := range topics {
		t = strings.TrimSpace(t)
		if t != "" {
			cleaned = append(cleaned, t)
		}
	}
	if len(cleaned) == 0 {
		return nil, ErrNoTopics
	}
	return &TopicService{topics: cleaned}, nil
}

// Draw picks one topic uniformly at random
func (ts *TopicService) Draw(rng *rand.Rand) string {
	return ts.topics[rng.Intn(len(ts.topics))]
}

// Len returns the pool size
func (ts *TopicService) Len() int {
	return len(ts.topics)
}
