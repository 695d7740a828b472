package generation

import (
	"errors"
	"fmt"
)

type ErrorKind string

const (
	// KindBackendFailure: the generative backend errored after its
	// bounded retries.
	KindBackendFailure ErrorKind = "backend_failure"
	// KindUnparseableOutput: the backend answered but the output does
	// not honor the structural contract the prompt mandated. Never
	// retried; it signals a prompt/output mismatch, not transience.
	KindUnparseableOutput ErrorKind = "unparseable_output"
	// KindTimeout: the backend call exceeded its deadline.
	KindTimeout ErrorKind = "timeout"
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
		return fmt.Sprintf("generation failed (%s): %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("generation failed (%s)", e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

func newError(kind ErrorKind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}

func errorf(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Err: fmt.Errorf(format, args...)}
}

// KindOf returns the generation error kind, or "" when err is not a
// generation error.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
