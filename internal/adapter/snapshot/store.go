// Package snapshot persists the vocabulary list as a JSON document on disk.
// The file is the single source of truth between pipeline stages and is
// always rewritten whole.
package snapshot

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/heartmarshall/vocabmeanings/internal/domain"
	"github.com/heartmarshall/vocabmeanings/internal/fsutil"
)

const filePerm = 0o644

// Store reads and writes one snapshot file.
type Store struct {
	path   string
	logger *slog.Logger
}

// New creates a store for the snapshot at path.
func New(path string, logger *slog.Logger) *Store {
	return &Store{
		path:   path,
		logger: logger.With("adapter", "snapshot"),
	}
}

// Path returns the snapshot file path.
func (s *Store) Path() string { return s.path }

// Load reads and validates the snapshot. Every entry must have a non-empty
// word; otherwise the error wraps domain.ErrMalformedSnapshot.
func (s *Store) Load(ctx context.Context) ([]domain.VocabularyEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, mapError(err, "load", s.path)
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, mapError(err, "load", s.path)
	}

	entries, err := Decode(data)
	if err != nil {
		return nil, mapError(err, "load", s.path)
	}

	s.logger.DebugContext(ctx, "snapshot loaded",
		slog.String("path", s.path),
		slog.Int("entries", len(entries)),
	)
	return entries, nil
}

// Save rewrites the snapshot atomically.
func (s *Store) Save(ctx context.Context, entries []domain.VocabularyEntry) error {
	if err := ctx.Err(); err != nil {
		return mapError(err, "save", s.path)
	}

	data, err := Encode(entries)
	if err != nil {
		return mapError(err, "save", s.path)
	}
	if err := fsutil.WriteFileAtomic(s.path, data, filePerm); err != nil {
		return mapError(err, "save", s.path)
	}

	s.logger.DebugContext(ctx, "snapshot saved",
		slog.String("path", s.path),
		slog.Int("entries", len(entries)),
	)
	return nil
}

// Encode renders entries in the snapshot format: a JSON array indented by
// two spaces with non-ASCII text written verbatim.
func Encode(entries []domain.VocabularyEntry) ([]byte, error) {
	if entries == nil {
		entries = []domain.VocabularyEntry{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(entries); err != nil {
		return nil, fmt.Errorf("encode entries: %w", err)
	}
	return buf.Bytes(), nil
}

// Decode parses a snapshot document and validates every entry.
func Decode(data []byte) ([]domain.VocabularyEntry, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	var entries []domain.VocabularyEntry
	if err := dec.Decode(&entries); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, domain.NewValidationError("snapshot", "document is empty")
		}
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, domain.NewValidationError("snapshot", "trailing data after array")
	}
	if entries == nil {
		return nil, domain.NewValidationError("snapshot", "document must be a JSON array")
	}

	var errs []domain.FieldError
	for i := range entries {
		if strings.TrimSpace(entries[i].Word) == "" {
			errs = append(errs, domain.FieldError{
				Field:   fmt.Sprintf("[%d].word", i),
				Message: "required",
			})
		}
	}
	if len(errs) > 0 {
		return nil, domain.NewValidationErrors(errs)
	}
	return entries, nil
}
