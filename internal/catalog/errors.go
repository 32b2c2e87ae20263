package catalog

import (
	"errors"
	"fmt"
)

var (
	// ErrUnavailable is returned when a catalog file is missing or unreadable.
	ErrUnavailable = errors.New("catalog unavailable")
	// ErrParse is returned when a catalog line does not have the expected shape.
	ErrParse = errors.New("catalog parse error")
)

// ParseError describes a malformed catalog line.
type ParseError struct {
	Path   string
	Line   int
	Text   string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: %s: %q", e.Path, e.Line, e.Reason, e.Text)
}

// Is makes errors.Is(err, ErrParse) true for every ParseError.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}
