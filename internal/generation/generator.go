package generation

import (
	"context"

	"github.com/abialobrodzki/10x-cards-sub001/internal/domain"
)

// Generator defines the interface for generating flashcard proposals from text.
// This interface serves as a boundary between the application core and
// external AI/LLM services, following the hexagonal architecture pattern.
type Generator interface {
	// GenerateCard creates a flashcard proposal based on the provided source text.
	// It returns a validated proposal or an error if generation fails.
	//
	// Parameters:
	//   - ctx: Context for the operation, which can be used for cancellation
	//   - sourceText: The text to generate a flashcard from
	//
	// Returns:
	//   - A domain.FlashcardProposal pointer with validated content
	//   - An error if the generation fails for any reason (see errors.go for specific types)
	GenerateCard(ctx context.Context, sourceText string) (*domain.FlashcardProposal, error)
}
