package openrouter

import (
	"encoding/json"
	"fmt"

	"github.com/kaptinlin/jsonrepair"

	"github.com/abialobrodzki/10x-cards-sub001/internal/domain"
	"github.com/abialobrodzki/10x-cards-sub001/internal/generation"
)

// decodeStructured decodes structured message content into out. Models
// occasionally emit almost-JSON (single quotes, trailing commas, unquoted
// keys); one repair pass is attempted before the content is rejected as a
// response-format failure.
func decodeStructured(content string, out any) error {
	if err := json.Unmarshal([]byte(content), out); err == nil {
		return nil
	}

	repaired, err := jsonrepair.JSONRepair(content)
	if err != nil {
		return fmt.Errorf("%w: content is not valid JSON: %v", generation.ErrInvalidResponse, err)
	}

	if err := json.Unmarshal([]byte(repaired), out); err != nil {
		return fmt.Errorf("%w: failed to decode structured content: %v", generation.ErrInvalidResponse, err)
	}

	return nil
}

// parseFlashcard decodes and validates message content as a flashcard
// proposal. A value missing required fields or carrying an out-of-enum
// difficulty is a response-format failure: the server reliably produced
// something the client cannot accept, so retrying would not help.
func parseFlashcard(content string) (*domain.FlashcardProposal, error) {
	var proposal domain.FlashcardProposal
	if err := decodeStructured(content, &proposal); err != nil {
		return nil, err
	}

	if err := proposal.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", generation.ErrInvalidResponse, err)
	}

	return &proposal, nil
}
