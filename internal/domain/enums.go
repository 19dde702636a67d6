package domain

// MeaningState describes where an entry is in the resolution lifecycle.
type MeaningState string

const (
	MeaningEmpty    MeaningState = "EMPTY"
	MeaningFlagged  MeaningState = "FLAGGED"
	MeaningResolved MeaningState = "RESOLVED"
)

func (s MeaningState) String() string { return string(s) }

func (s MeaningState) IsValid() bool {
	switch s {
	case MeaningEmpty, MeaningFlagged, MeaningResolved:
		return true
	}
	return false
}

// Source names the tier that produced a resolution.
type Source string

const (
	SourceLocal  Source = "local"
	SourceRemote Source = "remote"
	SourceReview Source = "review"
)

func (s Source) String() string { return string(s) }

func (s Source) IsValid() bool {
	switch s {
	case SourceLocal, SourceRemote, SourceReview:
		return true
	}
	return false
}
