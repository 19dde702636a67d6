// Package publisher produces the derived artifacts of the vocabulary list:
// per-letter shard files with an index, and the array embedded in the
// HTML templates.
package publisher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"

	"github.com/heartmarshall/vocabmeanings/internal/adapter/snapshot"
	"github.com/heartmarshall/vocabmeanings/internal/domain"
	"github.com/heartmarshall/vocabmeanings/internal/fsutil"
)

// previewLimit is how many incomplete words the gate shows.
const previewLimit = 10

type confirmer interface {
	Confirm(ctx context.Context, question string) (bool, error)
}

// TemplateStatus is the outcome of updating one template document.
type TemplateStatus string

const (
	TemplateUpdated     TemplateStatus = "updated"
	TemplateUnchanged   TemplateStatus = "unchanged"
	TemplateSlotMissing TemplateStatus = "slot-missing"
	TemplateFailed      TemplateStatus = "failed"
)

func (s TemplateStatus) String() string { return string(s) }

// TemplateOutcome reports what happened to one template.
type TemplateOutcome struct {
	Path   string
	Status TemplateStatus
	Slots  int
	Err    error
}

// Service publishes shards and templates.
type Service struct {
	log     *slog.Logger
	confirm confirmer
	slot    *regexp.Regexp
}

// NewService creates a publisher embedding into the constant slotName.
// confirm is asked before embedding a list with empty meanings; a nil
// confirmer refuses.
func NewService(logger *slog.Logger, confirm confirmer, slotName string) *Service {
	if slotName == "" {
		slotName = DefaultSlotName
	}
	return &Service{
		log:     logger.With("service", "publisher"),
		confirm: confirm,
		slot:    slotPattern(slotName),
	}
}

// WriteShards writes one JSON file per group plus INDEX.md into dir.
// The directory is created if needed.
func (s *Service) WriteShards(ctx context.Context, dir string, groups []Group) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("publisher: create %s: %w", dir, err)
	}

	for _, g := range groups {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("publisher: %w", err)
		}

		data, err := snapshot.Encode(g.Entries)
		if err != nil {
			return fmt.Errorf("publisher: encode group %s: %w", g.Label, err)
		}
		path := filepath.Join(dir, g.File+".json")
		if err := fsutil.WriteFileAtomic(path, data, 0o644); err != nil {
			return fmt.Errorf("publisher: write %s: %w", path, err)
		}
		s.log.DebugContext(ctx, "shard written",
			slog.String("label", g.Label),
			slog.String("path", path),
			slog.Int("entries", len(g.Entries)),
		)
	}

	index, err := RenderIndex(groups)
	if err != nil {
		return fmt.Errorf("publisher: render index: %w", err)
	}
	indexPath := filepath.Join(dir, "INDEX.md")
	if err := fsutil.WriteFileAtomic(indexPath, index, 0o644); err != nil {
		return fmt.Errorf("publisher: write %s: %w", indexPath, err)
	}

	s.log.InfoContext(ctx, "shards written",
		slog.String("dir", dir),
		slog.Int("groups", len(groups)),
	)
	return nil
}

// UpdateTemplates embeds entries into every document in paths. A missing
// slot or a failure on one document does not stop the others.
func (s *Service) UpdateTemplates(ctx context.Context, paths []string, entries []domain.VocabularyEntry) []TemplateOutcome {
	array := EmbedArray(entries)
	outcomes := make([]TemplateOutcome, 0, len(paths))

	for _, path := range paths {
		out := s.updateTemplate(ctx, path, array)
		outcomes = append(outcomes, out)

		switch out.Status {
		case TemplateUpdated, TemplateUnchanged:
			s.log.InfoContext(ctx, "template processed",
				slog.String("path", path),
				slog.String("status", out.Status.String()),
				slog.Int("slots", out.Slots),
			)
		case TemplateSlotMissing:
			s.log.WarnContext(ctx, "template has no data slot", slog.String("path", path))
		default:
			s.log.WarnContext(ctx, "template update failed",
				slog.String("path", path),
				slog.String("error", out.Err.Error()),
			)
		}
	}
	return outcomes
}

func (s *Service) updateTemplate(ctx context.Context, path, array string) TemplateOutcome {
	out := TemplateOutcome{Path: path}

	if err := ctx.Err(); err != nil {
		out.Status, out.Err = TemplateFailed, err
		return out
	}

	info, err := os.Stat(path)
	if err != nil {
		out.Status, out.Err = TemplateFailed, err
		return out
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		out.Status, out.Err = TemplateFailed, err
		return out
	}

	content := string(raw)
	updated, n := ReplaceSlot(s.slot, content, array)
	out.Slots = n

	switch {
	case n == 0:
		out.Status = TemplateSlotMissing
	case updated == content:
		out.Status = TemplateUnchanged
	default:
		if err := fsutil.WriteFileAtomic(path, []byte(updated), info.Mode().Perm()); err != nil {
			out.Status, out.Err = TemplateFailed, err
			return out
		}
		out.Status = TemplateUpdated
	}
	return out
}

// Incomplete returns the words whose meaning is blank, in list order.
func Incomplete(entries []domain.VocabularyEntry) []string {
	var words []string
	for i := range entries {
		if entries[i].IsUnresolved() {
			words = append(words, entries[i].Word)
		}
	}
	return words
}

// Embed runs the safety gate and then updates the templates. When some
// meanings are empty the confirmer is asked; a refusal returns
// domain.ErrPublishAborted and no document is touched.
func (s *Service) Embed(ctx context.Context, entries []domain.VocabularyEntry, paths []string) ([]TemplateOutcome, error) {
	if missing := Incomplete(entries); len(missing) > 0 {
		preview := missing
		if len(preview) > previewLimit {
			preview = preview[:previewLimit]
		}
		s.log.WarnContext(ctx, "entries without meaning",
			slog.Int("count", len(missing)),
			slog.Any("first", preview),
		)

		question := fmt.Sprintf("%d words still have empty meanings (first %d: %v). Continue anyway?",
			len(missing), len(preview), preview)

		ok, err := s.ask(ctx, question)
		if err != nil {
			return nil, fmt.Errorf("publisher: confirm: %w", err)
		}
		if !ok {
			return nil, fmt.Errorf("publisher: %d empty meanings: %w", len(missing), domain.ErrPublishAborted)
		}
	}

	flagged := 0
	for i := range entries {
		if entries[i].IsFlagged() {
			flagged++
		}
	}
	if flagged > 0 {
		s.log.WarnContext(ctx, "publishing entries still flagged for review", slog.Int("count", flagged))
	}

	return s.UpdateTemplates(ctx, paths, entries), nil
}

func (s *Service) ask(ctx context.Context, question string) (bool, error) {
	if s.confirm == nil {
		return false, nil
	}
	ok, err := s.confirm.Confirm(ctx, question)
	if errors.Is(err, ErrNoTerminal) {
		s.log.WarnContext(ctx, "no terminal to confirm on; refusing")
		return false, nil
	}
	return ok, err
}
