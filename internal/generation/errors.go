package generation

import "errors"

// Common errors returned by the generation package. Every failure surfaced by
// the gateway wraps exactly one of these sentinels, so callers can branch
// with errors.Is without knowing transport details.
var (
	// ErrGenerationFailed is returned when card generation fails for any general reason
	ErrGenerationFailed = errors.New("failed to generate cards from text")

	// ErrInvalidResponse is returned when the LLM response cannot be parsed or is malformed
	ErrInvalidResponse = errors.New("invalid response from language model")

	// ErrAuthentication is returned when the completion endpoint rejects the credentials
	ErrAuthentication = errors.New("authentication rejected by completion endpoint")

	// ErrTransientFailure is returned for temporary errors that might resolve on retry
	ErrTransientFailure = errors.New("transient error during card generation")

	// ErrInvalidConfig is returned when the generator configuration is invalid
	ErrInvalidConfig = errors.New("invalid generator configuration")
)
