package domain

import (
	"errors"
	"fmt"
)

var (
	ErrChunkNotFound    = errors.New("chunk not found")
	ErrInvalidInput     = errors.New("invalid input")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrTemporary        = errors.New("temporary failure")
	ErrEmbedding        = errors.New("embedding failure")
	ErrIndexUnavailable = errors.New("index unavailable")
	ErrGeneration       = errors.New("generation failure")
	ErrCorpusMisaligned = errors.New("corpus misaligned")
)

// WrapError preserves typed semantic errors with operation context.
func WrapError(kind error, operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", operation, kind, err)
}

func IsKind(err error, kind error) bool {
	return errors.Is(err, kind)
}
