package extractor

import (
	"errors"
	"fmt"
)

type ErrorKind string

const (
	// KindUnreachableSource: the source itself could not be read
	// (bad URL, missing caption track, provider failure).
	KindUnreachableSource ErrorKind = "unreachable_source"
	// KindUnsupportedFormat: the source kind or media format is not
	// one the extractor set can normalize.
	KindUnsupportedFormat ErrorKind = "unsupported_format"
	// KindEmptyResult: extraction ran but produced no text at all.
	KindEmptyResult ErrorKind = "empty_result"
)

type Error struct {
	Kind ErrorKind
	Err  error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("extraction failed (%s): %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("extraction failed (%s)", e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

func newError(kind ErrorKind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}

func errorf(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Err: fmt.Errorf(format, args...)}
}

// KindOf returns the extraction error kind, or "" when err is not an
// extraction error.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
