package domain

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Card-specific validation errors
var (
	// ErrCardFrontEmpty is returned when a proposal's front side is empty.
	ErrCardFrontEmpty = errors.New("card front cannot be empty")

	// ErrCardBackEmpty is returned when a proposal's back side is empty.
	ErrCardBackEmpty = errors.New("card back cannot be empty")

	// ErrCardDifficultyInvalid is returned when a proposal's difficulty is not
	// one of the known levels.
	ErrCardDifficultyInvalid = errors.New("card difficulty must be easy, medium or hard")
)

// Difficulty is the estimated recall difficulty of a flashcard.
type Difficulty string

// Known difficulty levels. The set is closed; the generation schema constrains
// the model to exactly these values.
const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// FlashcardProposal represents a flashcard suggested by the language model
// from a piece of source text. It is a proposal only: the caller decides
// whether to persist or discard it.
type FlashcardProposal struct {
	Front      string     `json:"front"      validate:"required"`
	Back       string     `json:"back"       validate:"required"`
	Hint       string     `json:"hint,omitempty"`
	Difficulty Difficulty `json:"difficulty" validate:"required,oneof=easy medium hard"`
	Tags       []string   `json:"tags,omitempty"`
}

// validate is shared across all proposal validations; the validator instance
// caches struct metadata and is safe for concurrent use.
var validate = validator.New()

// Validate checks if the FlashcardProposal has valid data.
// Returns a card-specific error for the first field that fails validation.
func (p *FlashcardProposal) Validate() error {
	err := validate.Struct(p)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			switch fe.Field() {
			case "Front":
				return ErrCardFrontEmpty
			case "Back":
				return ErrCardBackEmpty
			case "Difficulty":
				return ErrCardDifficultyInvalid
			}
		}
	}

	return fmt.Errorf("%w: %v", ErrValidation, err)
}
