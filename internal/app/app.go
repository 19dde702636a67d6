package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/vocabmeanings/internal/adapter/provider/freedict"
	"github.com/heartmarshall/vocabmeanings/internal/adapter/reviewlist"
	"github.com/heartmarshall/vocabmeanings/internal/adapter/snapshot"
	"github.com/heartmarshall/vocabmeanings/internal/config"
	"github.com/heartmarshall/vocabmeanings/internal/curated"
	"github.com/heartmarshall/vocabmeanings/internal/domain"
	"github.com/heartmarshall/vocabmeanings/internal/provider"
	"github.com/heartmarshall/vocabmeanings/internal/service/publisher"
	"github.com/heartmarshall/vocabmeanings/internal/service/resolver"
	"github.com/heartmarshall/vocabmeanings/internal/service/reviewer"
	"github.com/heartmarshall/vocabmeanings/pkg/ctxutil"
)

// Options are the command-line overrides applied on top of the loaded
// configuration.
type Options struct {
	ConfigPath   string
	SnapshotPath string
	// AssumeYes answers the publish confirmation without prompting.
	AssumeYes bool
}

// dictionary is the remote lookup used by the resolver.
type dictionary interface {
	FetchEntry(ctx context.Context, word string) (*provider.DictionaryResult, error)
}

type confirmer interface {
	Confirm(ctx context.Context, question string) (bool, error)
}

// App wires configuration, adapters and services for one pipeline run.
type App struct {
	cfg   *config.Config
	log   *slog.Logger
	runID uuid.UUID

	store  *snapshot.Store
	local  *curated.Table
	review *curated.Table
	dict   dictionary

	reviewer  *reviewer.Service
	publisher *publisher.Service
}

// New loads configuration, initializes the logger and builds every
// component. Nothing is read from or written to the snapshot yet.
func New(opts Options) (*App, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	if opts.SnapshotPath != "" {
		cfg.Snapshot.Path = opts.SnapshotPath
	}

	var confirm confirmer = publisher.NewPromptConfirmer()
	if opts.AssumeYes {
		confirm = publisher.AutoConfirmer{Answer: true}
	}

	return build(cfg, NewLogger(cfg.Log), confirm)
}

func build(cfg *config.Config, logger *slog.Logger, confirm confirmer) (*App, error) {
	runID := uuid.New()
	logger = logger.With(slog.String("run_id", runID.String()))

	local, err := curated.LocalMeanings(cfg.Curated.LocalMeaningsPath)
	if err != nil {
		return nil, fmt.Errorf("app: local meanings: %w", err)
	}
	review, err := curated.ReviewMeanings(cfg.Curated.ReviewMeaningsPath)
	if err != nil {
		return nil, fmt.Errorf("app: review meanings: %w", err)
	}

	a := &App{
		cfg:       cfg,
		log:       logger,
		runID:     runID,
		store:     snapshot.New(cfg.Snapshot.Path, logger),
		local:     local,
		review:    review,
		reviewer:  reviewer.NewService(logger, review),
		publisher: publisher.NewService(logger, confirm, cfg.Publish.SlotName),
	}

	// Left as a nil interface when disabled so the resolver skips the tier.
	if !cfg.Lookup.Disabled {
		a.dict = freedict.NewProvider(logger,
			freedict.WithBaseURL(cfg.Lookup.BaseURL),
			freedict.WithTimeout(cfg.Lookup.Timeout),
			freedict.WithMaxAttempts(cfg.Lookup.MaxAttempts),
			freedict.WithBackoff(cfg.Lookup.Backoff),
		)
	}

	logger.Info("vocab pipeline ready",
		slog.String("version", BuildVersion()),
		slog.String("snapshot", cfg.Snapshot.Path),
		slog.Int("local_meanings", local.Len()),
		slog.Int("review_meanings", review.Len()),
		slog.Bool("lookup_enabled", !cfg.Lookup.Disabled),
	)

	return a, nil
}

// Config returns the effective configuration.
func (a *App) Config() *config.Config { return a.cfg }

// Logger returns the run-scoped logger.
func (a *App) Logger() *slog.Logger { return a.log }

// stageCtx tags ctx with the run ID and the stage name.
func (a *App) stageCtx(ctx context.Context, stage string) context.Context {
	return ctxutil.WithStage(ctxutil.WithRunID(ctx, a.runID), stage)
}

// Resolve fills empty meanings from the local table and, when useRemote is
// set and lookup is enabled, the remote dictionary. The snapshot is held
// locked for the whole run and saved at checkpoints and at the end. Words
// left for review are exported to the review list.
func (a *App) Resolve(ctx context.Context, useRemote bool) (resolver.Result, error) {
	ctx = a.stageCtx(ctx, "resolve")

	sess, err := a.store.Acquire(ctx)
	if err != nil {
		return resolver.Result{}, err
	}
	defer sess.Close()

	var dict dictionary
	if useRemote {
		dict = a.dict
	}

	paceEvery := a.cfg.Resolver.PaceEvery
	if a.cfg.Resolver.PacingDisabled {
		paceEvery = 0
	}

	svc := resolver.NewService(a.log, a.local, dict, sess, resolver.Config{
		CheckpointEvery:     a.cfg.Resolver.CheckpointEvery,
		PaceEvery:           paceEvery,
		PaceDelay:           a.cfg.Resolver.PaceDelay,
		MaxDefinitionLength: a.cfg.Resolver.MaxDefinitionLength,
	})

	entries := sess.Entries()
	res, err := svc.Resolve(ctx, entries, dict != nil)
	if err != nil {
		return res, err
	}

	if err := sess.Save(ctx, entries); err != nil {
		return res, err
	}
	if err := a.exportReviewList(ctx, res.Unresolved); err != nil {
		return res, err
	}
	return res, nil
}

// Review replaces flagged meanings from the review table, saves the
// snapshot, exports the words still unresolved and verifies the result.
// Remaining markers or empty meanings return domain.ErrReviewIncomplete
// together with the results.
func (a *App) Review(ctx context.Context) (reviewer.Result, reviewer.Verification, error) {
	ctx = a.stageCtx(ctx, "review")

	sess, err := a.store.Acquire(ctx)
	if err != nil {
		return reviewer.Result{}, reviewer.Verification{}, err
	}
	defer sess.Close()

	entries := sess.Entries()
	res := a.reviewer.Apply(entries)

	if res.Fixed > 0 {
		if err := sess.Save(ctx, entries); err != nil {
			return res, reviewer.Verification{}, err
		}
	}
	if err := a.exportReviewList(ctx, res.Unresolved); err != nil {
		return res, reviewer.Verification{}, err
	}

	v := a.reviewer.Verify(entries)
	if !v.OK() {
		return res, v, incomplete(v)
	}
	return res, v, nil
}

// Verify reports the entries that still carry a review marker or have no
// meaning. It does not modify the snapshot.
func (a *App) Verify(ctx context.Context) (reviewer.Verification, error) {
	ctx = a.stageCtx(ctx, "verify")

	entries, err := a.store.Load(ctx)
	if err != nil {
		return reviewer.Verification{}, err
	}

	v := a.reviewer.Verify(entries)
	if !v.OK() {
		return v, incomplete(v)
	}
	return v, nil
}

// Shard writes the per-letter files and the index into the shard directory.
func (a *App) Shard(ctx context.Context) ([]publisher.GroupSummary, error) {
	ctx = a.stageCtx(ctx, "shard")

	entries, err := a.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	groups := publisher.Shard(entries)
	if err := a.publisher.WriteShards(ctx, a.cfg.Publish.ShardDir, groups); err != nil {
		return nil, err
	}
	return publisher.Summary(groups), nil
}

// Embed updates every configured template with the current list, behind
// the empty-meaning confirmation.
func (a *App) Embed(ctx context.Context) ([]publisher.TemplateOutcome, error) {
	ctx = a.stageCtx(ctx, "embed")

	entries, err := a.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	return a.publisher.Embed(ctx, entries, a.cfg.Publish.Templates)
}

func (a *App) exportReviewList(ctx context.Context, words []string) error {
	path := a.cfg.Review.ExportPath
	if err := reviewlist.Write(path, words); err != nil {
		return fmt.Errorf("app: export review list: %w", err)
	}
	a.log.InfoContext(ctx, "review list exported",
		slog.String("path", path),
		slog.Int("words", len(words)),
	)
	return nil
}

func incomplete(v reviewer.Verification) error {
	return fmt.Errorf("%d flagged, %d empty: %w", v.Count(), len(v.Empty), domain.ErrReviewIncomplete)
}
