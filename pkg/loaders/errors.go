package loaders

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a ValidationError
type ErrorKind int

const (
	// Structural errors: malformed document, wrong node type, missing or
	// unrecognized key, unknown shape
	Structural ErrorKind = iota + 1
	// Range errors: a well-formed number outside its allowed domain
	Range
)

func (k ErrorKind) String() string {
	switch k {
	case Structural:
		return "structural"
	case Range:
		return "range"
	default:
		return "unknown"
	}
}

// Sentinels for errors.Is
var (
	ErrStructural = errors.New("structural error")
	ErrRange      = errors.New("range error")
)

// ValidationError reports the first problem found in a scene document
type ValidationError struct {
	Kind    ErrorKind
	Field   string // Path of the offending key, e.g. "objects[2].material.color"
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Is matches ErrStructural or ErrRange according to Kind
func (e *ValidationError) Is(target error) bool {
	switch target {
	case ErrStructural:
		return e.Kind == Structural
	case ErrRange:
		return e.Kind == Range
	}
	return false
}

// structural builds a structural error. Messages for nested fields are
// prefixed with the location of their parent so the key can be found.
func structural(parent, field, format string, args ...any) *ValidationError {
	message := fmt.Sprintf(format, args...)
	if parent != "" {
		message = parent + ": " + message
	}
	return &ValidationError{Kind: Structural, Field: field, Message: message}
}

func rangeError(field, format string, args ...any) *ValidationError {
	return &ValidationError{Kind: Range, Field: field, Message: fmt.Sprintf(format, args...)}
}
