package main

import (
	"errors"
	"fmt"
	"testing"

	"github.com/heartmarshall/vocabmeanings/internal/domain"
)

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "success", err: nil, want: ExitCodeSuccess},
		{name: "usage", err: usageError("bad flag"), want: ExitCodeUsageError},
		{name: "runtime", err: errors.New("disk full"), want: ExitCodeRuntimeError},
		{name: "locked", err: fmt.Errorf("acquire: %w", domain.ErrSnapshotLocked), want: ExitCodeRuntimeError},
		{name: "review incomplete", err: fmt.Errorf("verify: %w", domain.ErrReviewIncomplete), want: ExitCodeReviewIncomplete},
		{name: "publish aborted", err: fmt.Errorf("embed: %w", domain.ErrPublishAborted), want: ExitCodePublishAborted},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := exitCode(tt.err); got != tt.want {
				t.Errorf("exitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
