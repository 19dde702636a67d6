package publisher

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// ErrNoTerminal is returned by a PromptConfirmer when stdin is not
// interactive.
var ErrNoTerminal = errors.New("no interactive terminal")

// AutoConfirmer answers every question with Answer.
type AutoConfirmer struct {
	Answer bool
}

func (a AutoConfirmer) Confirm(_ context.Context, _ string) (bool, error) {
	return a.Answer, nil
}

// PromptConfirmer asks on a terminal and accepts "y" or "yes".
type PromptConfirmer struct {
	In          io.Reader
	Out         io.Writer
	Interactive func() bool
}

// NewPromptConfirmer prompts on stderr and reads stdin.
func NewPromptConfirmer() *PromptConfirmer {
	return &PromptConfirmer{
		In:  os.Stdin,
		Out: os.Stderr,
		Interactive: func() bool {
			return term.IsTerminal(int(os.Stdin.Fd()))
		},
	}
}

// Confirm prints question and waits for one line of input. When ctx is
// canceled first it returns ctx.Err(); the goroutine reading In stays
// blocked until In yields a line or EOF, which is acceptable for a process
// that exits right after.
func (p *PromptConfirmer) Confirm(ctx context.Context, question string) (bool, error) {
	if p.Interactive != nil && !p.Interactive() {
		return false, ErrNoTerminal
	}

	fmt.Fprintf(p.Out, "%s (y/n): ", question)

	answer := make(chan string, 1)
	go func() {
		line, _ := bufio.NewReader(p.In).ReadString('\n')
		answer <- line
	}()

	select {
	case <-ctx.Done():
		fmt.Fprintln(p.Out)
		return false, ctx.Err()
	case line := <-answer:
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true, nil
		}
		return false, nil
	}
}
