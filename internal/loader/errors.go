package loader

import (
	"errors"
	"fmt"
)

// ErrUnauthenticated is returned by Subscribe when the session has no user.
var ErrUnauthenticated = errors.New("no authenticated user")

// ErrWatchUnsupported is returned by Subscribe when the store cannot stream.
var ErrWatchUnsupported = errors.New("store does not support watching collections")

// FetchError reports a failed collection read.
type FetchError struct {
	Collection string
	Err        error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("read %s: %v", e.Collection, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// DecodeError reports one document that could not be turned into an entity.
type DecodeError struct {
	Collection string
	DocumentID string
	// Field is empty when the problem is not tied to a single field.
	Field  string
	Reason string
}

func (e *DecodeError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("decode %s/%s: %s", e.Collection, e.DocumentID, e.Reason)
	}
	return fmt.Sprintf("decode %s/%s: field %q: %s", e.Collection, e.DocumentID, e.Field, e.Reason)
}
