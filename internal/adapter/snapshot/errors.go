package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"

	"github.com/heartmarshall/vocabmeanings/internal/domain"
)

// mapError converts filesystem and decoding errors to domain errors.
// context.DeadlineExceeded and context.Canceled are NOT mapped; they pass through.
func mapError(err error, op, path string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("snapshot %s %s: %w", op, path, err)
	}

	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("snapshot %s %s: %w: %w", op, path, domain.ErrNotFound, err)
	}

	var (
		syntaxErr *json.SyntaxError
		typeErr   *json.UnmarshalTypeError
	)
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) || errors.Is(err, domain.ErrValidation) {
		return fmt.Errorf("snapshot %s %s: %w: %w", op, path, domain.ErrMalformedSnapshot, err)
	}

	return fmt.Errorf("snapshot %s %s: %w", op, path, err)
}
