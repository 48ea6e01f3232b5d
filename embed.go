package impostor

import _ "embed"

// Embed the default topic pool
//
//go:embed static/topics.yaml
var TopicsYAML []byte
