package types

import (
	"errors"
	"fmt"
)

// SkipError marks an entry file that could not be turned into a row.
// It is never fatal: the importer counts it and moves on.
type SkipError struct {
	File   string
	Reason string
}

func (e *SkipError) Error() string {
	return fmt.Sprintf("skipped %s: %s", e.File, e.Reason)
}

func NewSkipError(file, reason string) *SkipError {
	return &SkipError{
		File:   file,
		Reason: reason,
	}
}

func IsSkip(err error) bool {
	var se *SkipError
	return errors.As(err, &se)
}
