// Package source prepares caller-supplied source text for prompting.
// Callers may hand the generator raw web content; feeding HTML markup to the
// model wastes context budget and skews generation, so HTML input is
// converted to Markdown first.
package source

import (
	"fmt"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
)

// Normalize returns source text ready for inclusion in a prompt. Input that
// looks like an HTML document is converted to Markdown; everything else is
// passed through with surrounding whitespace trimmed.
func Normalize(text string) (string, error) {
	trimmed := strings.TrimSpace(text)
	if !looksLikeHTML(trimmed) {
		return trimmed, nil
	}

	markdown, err := htmltomarkdown.ConvertString(trimmed)
	if err != nil {
		return "", fmt.Errorf("failed to convert HTML to Markdown: %w", err)
	}

	return strings.TrimSpace(markdown), nil
}

// looksLikeHTML is a cheap structural sniff, not a parser. Prose that merely
// mentions angle brackets should not be treated as markup.
func looksLikeHTML(text string) bool {
	lower := strings.ToLower(text)
	for _, marker := range []string{"<!doctype html", "<html", "<body", "<div", "<p>", "<article"} {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
