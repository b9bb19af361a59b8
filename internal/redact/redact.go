// Package redact provides utilities for redacting sensitive information from
// strings before they are logged. The gateway logs upstream error bodies and
// transport failures; this package keeps API keys and bearer tokens out of
// those records.
package redact

import "regexp"

// Constants for redaction placeholders
const (
	RedactedCredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	RedactedKeyPlaceholder        = "[REDACTED_KEY]"
)

// Precompiled regex patterns
var (
	// Bearer tokens as they appear in Authorization headers or echoed request dumps
	bearerRegex = regexp.MustCompile(`(?i)bearer\s+[A-Za-z0-9_\-.~+/=]{8,}`)

	// OpenRouter-style API keys (sk-or-..., sk-...)
	skKeyRegex = regexp.MustCompile(`\bsk-[A-Za-z0-9_-]{8,}\b`)

	// Generic credential assignments
	apiKeyRegex = regexp.MustCompile(
		`(?i)(api[_-]?key|token|secret|auth)(['"\s:=]+)[A-Za-z0-9_\-.~+/]{8,}`,
	)
	passwordRegex = regexp.MustCompile(`(?i)(password|passwd|pwd)([=:\s]?['"]?)[^'"&\s]{3,}`)

	patterns = []*regexp.Regexp{bearerRegex, skKeyRegex, apiKeyRegex, passwordRegex}

	patternPlaceholders = map[*regexp.Regexp]string{
		bearerRegex:   RedactedKeyPlaceholder,
		skKeyRegex:    RedactedKeyPlaceholder,
		apiKeyRegex:   RedactedKeyPlaceholder,
		passwordRegex: RedactedCredentialPlaceholder,
	}
)

// String redacts sensitive information from the input string
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, pattern := range patterns {
		result = pattern.ReplaceAllString(result, patternPlaceholders[pattern])
	}

	return result
}

// Error redacts sensitive information from an error's Error() output
func Error(err error) string {
	if err == nil {
		return ""
	}

	return String(err.Error())
}
