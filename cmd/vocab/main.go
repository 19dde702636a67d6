// Command vocab fills in, reviews and publishes the meanings of a
// vocabulary list kept as a JSON snapshot.
//
// Exit codes: 0 = success, 1 = usage error, 2 = runtime failure,
// 3 = entries still need review, 4 = publish aborted.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newVocabApp(os.Stdout).RunContext(ctx, os.Args)
	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "vocab: %v\n", err)
	}
	os.Exit(exitCode(err))
}
