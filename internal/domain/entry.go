package domain

import "strings"

// VocabularyEntry is one record of the vocabulary dataset.
// Only Meaning is ever mutated after the entry is created.
type VocabularyEntry struct {
	Number  Ordinal `json:"number"`
	Word    string  `json:"word"`
	Meaning string  `json:"meaning"`
}

// State classifies the entry's meaning.
func (e *VocabularyEntry) State() MeaningState {
	return ClassifyMeaning(e.Meaning)
}

// IsUnresolved returns true if the meaning is blank.
func (e *VocabularyEntry) IsUnresolved() bool {
	return e.State() == MeaningEmpty
}

// IsFlagged returns true if the meaning carries the review marker.
func (e *VocabularyEntry) IsFlagged() bool {
	return e.State() == MeaningFlagged
}

// Validate checks the invariants every stored entry must satisfy.
func (e *VocabularyEntry) Validate() error {
	var errs []FieldError
	if strings.TrimSpace(e.Word) == "" {
		errs = append(errs, FieldError{Field: "word", Message: "required"})
	}
	if len(errs) > 0 {
		return NewValidationErrors(errs)
	}
	return nil
}

// ClassifyMeaning returns the state a meaning string represents.
// A meaning is flagged if it contains the review marker anywhere.
func ClassifyMeaning(meaning string) MeaningState {
	switch {
	case strings.TrimSpace(meaning) == "":
		return MeaningEmpty
	case strings.Contains(meaning, ReviewMarkerToken):
		return MeaningFlagged
	default:
		return MeaningResolved
	}
}
