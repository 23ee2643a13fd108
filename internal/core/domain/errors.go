package domain

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedInput   = errors.New("no usable text extracted")
	ErrOversizedInput     = errors.New("file exceeds size limit")
	ErrBackendUnavailable = errors.New("generation backend unavailable")
	ErrEmptyAnswer        = errors.New("backend produced no answer")
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
