package game

import "errors"

var (
	// ErrDuplicateName is returned when registering a name that folds
	// equal to an existing player ("José" vs "jose").
	ErrDuplicateName = errors.New("a player with that name is already registered")

	// ErrNoTopics is returned when the topic pool is empty after load
	ErrNoTopics = errors.New("topic pool is empty")
)
