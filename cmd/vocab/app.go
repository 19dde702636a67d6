package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/heartmarshall/vocabmeanings/internal/app"
)

func newVocabApp(out io.Writer) *cli.App {
	onUsageError := func(_ *cli.Context, err error, _ bool) error {
		return usageError("%v", err)
	}

	commands := []*cli.Command{
		resolveCommand(out),
		reviewCommand(out),
		verifyCommand(out),
		shardCommand(out),
		embedCommand(out),
		publishCommand(out),
		versionCommand(out),
	}
	for _, c := range commands {
		c.OnUsageError = onUsageError
	}

	return &cli.App{
		Name:  "vocab",
		Usage: "Fill in, review and publish vocabulary meanings.",
		Description: strings.Join([]string{
			"Meanings are taken from the built-in table first, then from the",
			"Free Dictionary API. Words neither source knows are flagged for review.",
		}, "\n"),
		Writer:    out,
		ErrWriter: out,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "read configuration from `FILE`",
				EnvVars: []string{"VOCAB_CONFIG_PATH"},
			},
			&cli.StringFlag{
				Name:    "snapshot",
				Aliases: []string{"s"},
				Usage:   "use the vocabulary snapshot at `FILE`",
			},
		},
		HideHelpCommand: true,
		OnUsageError:    onUsageError,
		// Errors are mapped to exit codes in main.
		ExitErrHandler: func(*cli.Context, error) {},
		Action: func(c *cli.Context) error {
			if c.NArg() > 0 {
				return usageError("unknown command %q", c.Args().First())
			}
			return cli.ShowAppHelp(c)
		},
		Commands: commands,
	}
}

// openApp builds the pipeline from the global flags.
func openApp(c *cli.Context, assumeYes bool) (*app.App, error) {
	if c.NArg() > 0 {
		return nil, usageError("%s takes no arguments, got %q", c.Command.Name, c.Args().Slice())
	}
	a, err := app.New(app.Options{
		ConfigPath:   c.String("config"),
		SnapshotPath: c.String("snapshot"),
		AssumeYes:    assumeYes,
	})
	if err != nil {
		return nil, fmt.Errorf("start: %w", err)
	}
	return a, nil
}
