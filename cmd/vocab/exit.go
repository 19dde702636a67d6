package main

import (
	"errors"
	"fmt"

	"github.com/heartmarshall/vocabmeanings/internal/domain"
)

const (
	// ExitCodeSuccess is the exit code for a successful run.
	ExitCodeSuccess int = iota

	// ExitCodeUsageError is the exit code for bad flags or arguments.
	ExitCodeUsageError

	// ExitCodeRuntimeError is the exit code for any other failure.
	ExitCodeRuntimeError

	// ExitCodeReviewIncomplete is the exit code when review markers or
	// empty meanings remain.
	ExitCodeReviewIncomplete

	// ExitCodePublishAborted is the exit code when the publish
	// confirmation was refused.
	ExitCodePublishAborted
)

// ErrUsage is the parent error for command-line misuse.
var ErrUsage = errors.New("usage")

func usageError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrUsage, fmt.Sprintf(format, args...))
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return ExitCodeSuccess
	case errors.Is(err, ErrUsage):
		return ExitCodeUsageError
	case errors.Is(err, domain.ErrReviewIncomplete):
		return ExitCodeReviewIncomplete
	case errors.Is(err, domain.ErrPublishAborted):
		return ExitCodePublishAborted
	default:
		return ExitCodeRuntimeError
	}
}
