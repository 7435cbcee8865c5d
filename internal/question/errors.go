package question

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyPayload is returned when a submission carries no JSON at all.
	ErrEmptyPayload = errors.New("empty payload")
	// ErrNotFound indicates a requested question id has no match.
	ErrNotFound = errors.New("question not found")
	// ErrNoValidEntries is returned when every entry of a batch was dropped.
	ErrNoValidEntries = errors.New("no valid question objects in batch")
)

// ParseError wraps a JSON syntax failure in a submitted payload.
type ParseError struct{ Err error }

func (e *ParseError) Error() string { return fmt.Sprintf("invalid JSON: %v", e.Err) }
func (e *ParseError) Unwrap() error { return e.Err }

// ShapeError reports a structurally valid payload of the wrong JSON
// kind, e.g. an array where a single object was expected.
type ShapeError struct {
	Want string
	Got  string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("payload must be a JSON %s, got %s", e.Want, e.Got)
}

// FormatError means the backing store held parseable text that is not
// a question collection.
type FormatError struct {
	Path string
	Err  error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s must contain a JSON array of questions: %v", e.Path, e.Err)
}
func (e *FormatError) Unwrap() error { return e.Err }

// StoreError wraps an I/O failure against the backing store. Op is
// "read" or "write"; handlers surface only a generic message to users.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string { return fmt.Sprintf("store %s: %v", e.Op, e.Err) }
func (e *StoreError) Unwrap() error { return e.Err }
