// Package resolver fills empty meanings in the vocabulary list from the
// local curated table, then the remote dictionary, and flags whatever is
// left for manual review.
package resolver

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/heartmarshall/vocabmeanings/internal/domain"
	"github.com/heartmarshall/vocabmeanings/internal/provider"
)

type meaningTable interface {
	Lookup(key string) (string, bool)
}

type dictionaryProvider interface {
	FetchEntry(ctx context.Context, word string) (*provider.DictionaryResult, error)
}

type checkpointer interface {
	Save(ctx context.Context, entries []domain.VocabularyEntry) error
}

// Config holds the resolver's pacing and checkpoint parameters.
type Config struct {
	CheckpointEvery     int
	PaceEvery           int
	PaceDelay           time.Duration
	MaxDefinitionLength int
}

// DefaultConfig returns the parameters used when none are configured.
func DefaultConfig() Config {
	return Config{
		CheckpointEvery:     50,
		PaceEvery:           5,
		PaceDelay:           500 * time.Millisecond,
		MaxDefinitionLength: 100,
	}
}

// Result summarizes one Resolve run.
type Result struct {
	Updated     int
	LocalHits   int
	RemoteHits  int
	Flagged     int
	RemoteCalls int
	// Unresolved lists the original words flagged for review, in list order.
	Unresolved []string
}

// Service resolves empty meanings.
type Service struct {
	log        *slog.Logger
	local      meaningTable
	dict       dictionaryProvider
	checkpoint checkpointer
	cfg        Config
	sleep      func(ctx context.Context, d time.Duration) error
}

// NewService creates a resolver. dict may be nil, in which case remote
// lookup is never attempted. checkpoint may be nil to disable checkpoints.
func NewService(
	logger *slog.Logger,
	local meaningTable,
	dict dictionaryProvider,
	checkpoint checkpointer,
	cfg Config,
) *Service {
	def := DefaultConfig()
	if cfg.CheckpointEvery <= 0 {
		cfg.CheckpointEvery = def.CheckpointEvery
	}
	if cfg.MaxDefinitionLength <= 3 {
		cfg.MaxDefinitionLength = def.MaxDefinitionLength
	}
	return &Service{
		log:        logger.With("service", "resolver"),
		local:      local,
		dict:       dict,
		checkpoint: checkpoint,
		cfg:        cfg,
		sleep:      sleepCtx,
	}
}

// Resolve assigns a meaning to every entry whose meaning is blank, in list
// order. Entries are updated in place; entries that already carry a meaning
// (resolved or flagged) are left untouched. A checkpoint failure aborts the
// run and is returned together with the partial result.
func (s *Service) Resolve(ctx context.Context, entries []domain.VocabularyEntry, useRemote bool) (Result, error) {
	var res Result

	useRemote = useRemote && s.dict != nil

	pending := 0
	for i := range entries {
		if entries[i].IsUnresolved() {
			pending++
		}
	}

	s.log.InfoContext(ctx, "resolve started",
		slog.Int("entries", len(entries)),
		slog.Int("pending", pending),
		slog.Bool("remote", useRemote),
	)
	if useRemote && pending > 0 {
		s.log.InfoContext(ctx, "remote lookup enabled",
			slog.Duration("estimated", s.estimate(pending)),
		)
	}

	done := 0
	for i := range entries {
		if !entries[i].IsUnresolved() {
			continue
		}
		if err := ctx.Err(); err != nil {
			return res, fmt.Errorf("resolve: %w", err)
		}
		done++

		word := entries[i].Word
		resolution, called := s.resolveWord(ctx, word, useRemote)

		entries[i].Meaning = resolution.Meaning()
		res.Updated++

		switch resolution.Source() {
		case domain.SourceLocal:
			res.LocalHits++
		case domain.SourceRemote:
			res.RemoteHits++
		case domain.SourceReview:
			res.Flagged++
			res.Unresolved = append(res.Unresolved, word)
		}

		s.log.InfoContext(ctx, "resolved",
			slog.String("progress", fmt.Sprintf("%d/%d", done, pending)),
			slog.String("word", word),
			slog.String("source", resolution.Source().String()),
		)

		if s.checkpoint != nil && res.Updated%s.cfg.CheckpointEvery == 0 {
			if err := s.checkpoint.Save(ctx, entries); err != nil {
				return res, fmt.Errorf("resolve: checkpoint after %d updates: %w", res.Updated, err)
			}
			s.log.InfoContext(ctx, "checkpoint saved",
				slog.Int("updated", res.Updated),
				slog.Int("pending", pending),
			)
		}

		if called {
			res.RemoteCalls++
			if s.cfg.PaceEvery > 0 && s.cfg.PaceDelay > 0 && res.RemoteCalls%s.cfg.PaceEvery == 0 {
				if err := s.sleep(ctx, s.cfg.PaceDelay); err != nil {
					return res, fmt.Errorf("resolve: %w", err)
				}
			}
		}
	}

	s.log.InfoContext(ctx, "resolve finished",
		slog.Int("updated", res.Updated),
		slog.Int("local", res.LocalHits),
		slog.Int("remote", res.RemoteHits),
		slog.Int("flagged", res.Flagged),
	)

	return res, nil
}

// resolveWord walks the tiers for one word. called reports whether the
// remote dictionary was consulted.
func (s *Service) resolveWord(ctx context.Context, word string, useRemote bool) (r domain.Resolution, called bool) {
	key := domain.NormalizeWord(word)

	if def, ok := s.local.Lookup(key); ok {
		return domain.ResolvedLocal{Definition: def}, false
	}

	if useRemote {
		result, err := s.dict.FetchEntry(ctx, key)
		switch {
		case err != nil:
			s.log.WarnContext(ctx, "remote lookup failed",
				slog.String("word", word),
				slog.String("error", err.Error()),
			)
		case result == nil:
			s.log.DebugContext(ctx, "remote lookup: not found", slog.String("word", word))
		case !result.HasDefinition():
			s.log.DebugContext(ctx, "remote lookup: no definition", slog.String("word", word))
		default:
			return domain.ResolvedRemote{Definition: Truncate(result.Primary, s.cfg.MaxDefinitionLength)}, true
		}
		return domain.NeedsReview{Word: key}, true
	}

	return domain.NeedsReview{Word: key}, false
}

func (s *Service) estimate(pending int) time.Duration {
	if s.cfg.PaceEvery <= 0 {
		return 0
	}
	return time.Duration(pending) * s.cfg.PaceDelay / time.Duration(s.cfg.PaceEvery)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
