package domain

import "strings"

// ReviewMarkerToken prefixes meanings that still need a human to write them.
const ReviewMarkerToken = "[NEEDS REVIEW]"

// Resolution is the outcome of resolving one entry. The concrete types are
// ResolvedLocal, ResolvedRemote and NeedsReview.
type Resolution interface {
	// Meaning renders the resolution in its persisted form.
	Meaning() string
	Source() Source
	isResolution()
}

// ResolvedLocal is a definition taken from the local curated table.
type ResolvedLocal struct {
	Definition string
}

func (r ResolvedLocal) Meaning() string { return r.Definition }
func (r ResolvedLocal) Source() Source  { return SourceLocal }
func (ResolvedLocal) isResolution()     {}

// ResolvedRemote is a definition returned by the remote dictionary.
type ResolvedRemote struct {
	Definition string
}

func (r ResolvedRemote) Meaning() string { return r.Definition }
func (r ResolvedRemote) Source() Source  { return SourceRemote }
func (ResolvedRemote) isResolution()     {}

// NeedsReview marks a word no tier could define.
type NeedsReview struct {
	// Word is the normalized word.
	Word string
}

func (r NeedsReview) Meaning() string { return ReviewMarker(r.Word) }
func (r NeedsReview) Source() Source  { return SourceReview }
func (NeedsReview) isResolution()     {}

// ReviewMarker renders the on-disk marker for word.
func ReviewMarker(word string) string {
	return ReviewMarkerToken + " " + word
}

// ParseReviewMarker returns the word embedded in a marker meaning.
// ok is false if meaning does not carry the marker.
func ParseReviewMarker(meaning string) (word string, ok bool) {
	i := strings.Index(meaning, ReviewMarkerToken)
	if i < 0 {
		return "", false
	}
	return strings.TrimSpace(meaning[i+len(ReviewMarkerToken):]), true
}
