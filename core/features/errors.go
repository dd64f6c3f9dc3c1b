package features

import (
	"errors"
	"fmt"
)

// ErrUnknownCategory is returned when a direction or intersection value is
// not part of the active encoding table.
var ErrUnknownCategory = errors.New("unknown category")

// UnknownCategoryError carries the offending field and value.
type UnknownCategoryError struct {
	Field string
	Value string
	Table string
}

func (e *UnknownCategoryError) Error() string {
	return fmt.Sprintf("%s %q not in %s table", e.Field, e.Value, e.Table)
}

// Unwrap allows errors.Is(err, ErrUnknownCategory).
func (e *UnknownCategoryError) Unwrap() error { return ErrUnknownCategory }
