package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/urfave/cli/v2"

	"github.com/heartmarshall/vocabmeanings/internal/app"
	"github.com/heartmarshall/vocabmeanings/internal/domain"
)

func yesFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:    "yes",
		Aliases: []string{"y"},
		Usage:   "publish even when some meanings are empty",
	}
}

// reported returns true for errors that still come with a result worth
// printing.
func reported(err error) bool {
	return err == nil || errors.Is(err, domain.ErrReviewIncomplete)
}

func resolveCommand(out io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "resolve",
		Usage: "fill empty meanings from the built-in table and the dictionary API",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "no-api",
				Usage: "use the built-in table only",
			},
		},
		Action: func(c *cli.Context) error {
			a, err := openApp(c, false)
			if err != nil {
				return err
			}
			res, err := a.Resolve(c.Context, !c.Bool("no-api"))
			if res.Updated > 0 || err == nil {
				printResolveSummary(out, res)
			}
			if err != nil {
				return err
			}
			printWordList(out, "Words needing review", res.Unresolved)
			return nil
		},
	}
}

func reviewCommand(out io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "review",
		Usage: "replace flagged meanings from the review table and verify",
		Action: func(c *cli.Context) error {
			a, err := openApp(c, false)
			if err != nil {
				return err
			}
			res, v, err := a.Review(c.Context)
			if reported(err) {
				printReviewSummary(out, res, v)
				printWordList(out, "Words still needing review", v.Remaining)
			}
			return err
		},
	}
}

func verifyCommand(out io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "verify",
		Usage: "check that every entry has a real meaning",
		Action: func(c *cli.Context) error {
			a, err := openApp(c, false)
			if err != nil {
				return err
			}
			v, err := a.Verify(c.Context)
			if reported(err) {
				printVerification(out, v)
				printWordList(out, "Words still needing review", v.Remaining)
				printWordList(out, "Words without meaning", v.Empty)
			}
			return err
		},
	}
}

func shardCommand(out io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "shard",
		Usage: "write one JSON file per first letter plus INDEX.md",
		Action: func(c *cli.Context) error {
			a, err := openApp(c, false)
			if err != nil {
				return err
			}
			return runShard(c, a, out)
		},
	}
}

func embedCommand(out io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "embed",
		Usage: "embed the vocabulary array into the HTML templates",
		Flags: []cli.Flag{yesFlag()},
		Action: func(c *cli.Context) error {
			a, err := openApp(c, c.Bool("yes"))
			if err != nil {
				return err
			}
			return runEmbed(c, a, out)
		},
	}
}

func publishCommand(out io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "publish",
		Usage: "shard and embed in one step",
		Flags: []cli.Flag{yesFlag()},
		Action: func(c *cli.Context) error {
			a, err := openApp(c, c.Bool("yes"))
			if err != nil {
				return err
			}
			if err := runShard(c, a, out); err != nil {
				return err
			}
			return runEmbed(c, a, out)
		},
	}
}

func versionCommand(out io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "print version information",
		Action: func(_ *cli.Context) error {
			fmt.Fprintf(out, "vocab %s\n", app.BuildVersion())
			return nil
		},
	}
}

func runShard(c *cli.Context, a *app.App, out io.Writer) error {
	summary, err := a.Shard(c.Context)
	if err != nil {
		return err
	}
	printShardSummary(out, a.Config().Publish.ShardDir, summary)
	return nil
}

func runEmbed(c *cli.Context, a *app.App, out io.Writer) error {
	outcomes, err := a.Embed(c.Context)
	if err != nil {
		return err
	}
	printTemplateOutcomes(out, outcomes)
	return nil
}
