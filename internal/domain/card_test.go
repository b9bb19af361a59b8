package domain

import (
	"encoding/json"
	"testing"
)

func TestFlashcardProposalValidate(t *testing.T) {
	t.Parallel() // Enable parallel execution

	valid := FlashcardProposal{
		Front:      "What is Go?",
		Back:       "A programming language",
		Hint:       "Think gophers",
		Difficulty: DifficultyEasy,
		Tags:       []string{"programming"},
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// Hint and tags are optional.
	minimal := FlashcardProposal{
		Front:      "Front",
		Back:       "Back",
		Difficulty: DifficultyHard,
	}
	if err := minimal.Validate(); err != nil {
		t.Errorf("Expected no error for minimal proposal, got %v", err)
	}

	missingFront := valid
	missingFront.Front = ""
	if err := missingFront.Validate(); err != ErrCardFrontEmpty {
		t.Errorf("Expected error %v, got %v", ErrCardFrontEmpty, err)
	}

	missingBack := valid
	missingBack.Back = ""
	if err := missingBack.Validate(); err != ErrCardBackEmpty {
		t.Errorf("Expected error %v, got %v", ErrCardBackEmpty, err)
	}

	missingDifficulty := valid
	missingDifficulty.Difficulty = ""
	if err := missingDifficulty.Validate(); err != ErrCardDifficultyInvalid {
		t.Errorf("Expected error %v, got %v", ErrCardDifficultyInvalid, err)
	}

	outOfEnum := valid
	outOfEnum.Difficulty = Difficulty("impossible")
	if err := outOfEnum.Validate(); err != ErrCardDifficultyInvalid {
		t.Errorf("Expected error %v, got %v", ErrCardDifficultyInvalid, err)
	}
}

func TestFlashcardProposalJSONRoundTrip(t *testing.T) {
	t.Parallel() // Enable parallel execution

	raw := `{"front":"Q","back":"A","difficulty":"medium","tags":["bio","energy"]}`

	var p FlashcardProposal
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if p.Difficulty != DifficultyMedium {
		t.Errorf("Expected difficulty %q, got %q", DifficultyMedium, p.Difficulty)
	}

	if err := p.Validate(); err != nil {
		t.Errorf("Expected decoded proposal to validate, got %v", err)
	}

	// Hint must not appear in serialized output when empty.
	out, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if string(out) != raw {
		t.Errorf("Expected %s, got %s", raw, string(out))
	}
}
