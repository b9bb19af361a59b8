// Package generation provides interfaces and implementations for interacting
// with external AI/LLM services for content generation. It abstracts the
// details of LLM API integration (OpenRouter), allowing the application to
// generate flashcard proposals from source text without coupling to specific
// external services.
package generation
