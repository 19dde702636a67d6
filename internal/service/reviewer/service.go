// Package reviewer replaces review markers with hand-written meanings and
// verifies that none remain.
package reviewer

import (
	"log/slog"

	"github.com/heartmarshall/vocabmeanings/internal/domain"
)

type meaningTable interface {
	Lookup(key string) (string, bool)
}

// Result summarizes one Apply run.
type Result struct {
	Fixed int
	// Unresolved lists flagged words the review table has no entry for,
	// in list order.
	Unresolved []string
}

// Verification reports entries that still violate the dataset invariant.
type Verification struct {
	// Remaining lists words whose meaning still carries the review marker.
	Remaining []string
	// Empty lists words whose meaning is blank.
	Empty []string
}

// Count returns the number of markers left.
func (v Verification) Count() int { return len(v.Remaining) }

// OK returns true if every entry has a real meaning.
func (v Verification) OK() bool { return len(v.Remaining) == 0 && len(v.Empty) == 0 }

// Service applies the review table.
type Service struct {
	log    *slog.Logger
	review meaningTable
}

// NewService creates a reviewer backed by the review table.
func NewService(logger *slog.Logger, review meaningTable) *Service {
	return &Service{
		log:    logger.With("service", "reviewer"),
		review: review,
	}
}

// Apply replaces the meaning of every flagged entry whose word is in the
// review table. The lookup uses the word exactly as stored, without case
// folding. Entries are updated in place.
func (s *Service) Apply(entries []domain.VocabularyEntry) Result {
	var res Result

	for i := range entries {
		if !entries[i].IsFlagged() {
			continue
		}

		word := entries[i].Word
		def, ok := s.review.Lookup(word)
		if !ok {
			res.Unresolved = append(res.Unresolved, word)
			s.log.Debug("no review meaning", slog.String("word", word))
			continue
		}

		entries[i].Meaning = def
		res.Fixed++
		s.log.Debug("review meaning applied", slog.String("word", word))
	}

	s.log.Info("review applied",
		slog.Int("fixed", res.Fixed),
		slog.Int("unresolved", len(res.Unresolved)),
	)
	return res
}

// Verify scans entries for markers and blank meanings.
func (s *Service) Verify(entries []domain.VocabularyEntry) Verification {
	var v Verification
	for i := range entries {
		switch entries[i].State() {
		case domain.MeaningFlagged:
			v.Remaining = append(v.Remaining, entries[i].Word)
		case domain.MeaningEmpty:
			v.Empty = append(v.Empty, entries[i].Word)
		}
	}

	if v.OK() {
		s.log.Info("verification passed", slog.Int("entries", len(entries)))
	} else {
		s.log.Warn("verification failed",
			slog.Int("markers", v.Count()),
			slog.Int("empty", len(v.Empty)),
		)
	}
	return v
}
