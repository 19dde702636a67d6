package snapshot

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/heartmarshall/vocabmeanings/internal/domain"
	"github.com/heartmarshall/vocabmeanings/pkg/ctxutil"
)

// Session is exclusive ownership of the snapshot for the length of one
// pipeline stage. It must be closed to release the lock.
type Session struct {
	store    *Store
	lockPath string
	entries  []domain.VocabularyEntry
	closed   bool
}

// LockPath returns the lock file guarding the snapshot.
func (s *Store) LockPath() string { return s.path + ".lock" }

// Acquire takes the snapshot lock and loads the entries. The lock file
// holds the run ID from ctx. A lock held by another run returns
// domain.ErrSnapshotLocked.
func (s *Store) Acquire(ctx context.Context) (*Session, error) {
	lockPath := s.LockPath()

	f, err := os.OpenFile(lockPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, filePerm)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			owner, _ := os.ReadFile(lockPath)
			return nil, fmt.Errorf("snapshot acquire %s: %w (held by %q)",
				s.path, domain.ErrSnapshotLocked, strings.TrimSpace(string(owner)))
		}
		return nil, mapError(err, "acquire", s.path)
	}

	runID := "unknown"
	if id, ok := ctxutil.RunIDFromCtx(ctx); ok {
		runID = id.String()
	}
	_, werr := f.WriteString(runID + "\n")
	cerr := f.Close()
	if err := errors.Join(werr, cerr); err != nil {
		os.Remove(lockPath)
		return nil, mapError(err, "acquire", s.path)
	}

	entries, err := s.Load(ctx)
	if err != nil {
		os.Remove(lockPath)
		return nil, err
	}

	s.logger.InfoContext(ctx, "snapshot acquired",
		slog.String("path", s.path),
		slog.String("run_id", runID),
		slog.Int("entries", len(entries)),
	)

	return &Session{store: s, lockPath: lockPath, entries: entries}, nil
}

// Entries returns the entries loaded at acquisition.
func (s *Session) Entries() []domain.VocabularyEntry { return s.entries }

// Save persists entries. It doubles as the resolver checkpoint.
func (s *Session) Save(ctx context.Context, entries []domain.VocabularyEntry) error {
	if s.closed {
		return fmt.Errorf("snapshot save %s: session closed", s.store.path)
	}
	if err := s.store.Save(ctx, entries); err != nil {
		return err
	}
	s.entries = entries
	return nil
}

// Close releases the lock. Closing twice is a no-op.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if err := os.Remove(s.lockPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("snapshot release %s: %w", s.store.path, err)
	}
	return nil
}
