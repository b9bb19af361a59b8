package openrouter

import "errors"

// Error definitions for the openrouter package.
var (
	// ErrEmptySourceText is returned when the source text for generation is empty.
	ErrEmptySourceText = errors.New("source text cannot be empty")

	// ErrEmptyMessage is returned when Chat is called with no message argument
	// and no preset user message.
	ErrEmptyMessage = errors.New("chat message cannot be empty")
)
