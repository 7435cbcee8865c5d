package question

import (
	"bytes"
	"context"
	"encoding/json"
	"log"

	"github.com/google/uuid"
)

// Service is the validate-normalize-append-persist pipeline behind the
// submission endpoints. It performs an unguarded read-modify-write of
// the whole collection: two overlapping ingests race and the last
// write wins. Accepted limitation of the single-writer design.
type Service struct {
	store Store
	newID func() string
}

func NewService(store Store) *Service {
	return &Service{store: store, newID: uuid.NewString}
}

// jsonKind classifies a payload by its first non-space byte.
func jsonKind(data []byte) string {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return "empty"
	}
	switch data[0] {
	case '{':
		return "object"
	case '[':
		return "array"
	default:
		return "value"
	}
}

// AddOne validates a single-question payload, assigns a fresh id
// (discarding any caller-supplied one), appends the record and
// persists the collection. The write happens only after the full next
// state is computed, so a failure leaves the store untouched.
func (s *Service) AddOne(ctx context.Context, payload []byte) (Question, error) {
	switch jsonKind(payload) {
	case "empty":
		return Question{}, ErrEmptyPayload
	case "array":
		return Question{}, &ShapeError{Want: "object", Got: "array"}
	case "value":
		return Question{}, &ShapeError{Want: "object", Got: "value"}
	}

	var q Question
	if err := json.Unmarshal(payload, &q); err != nil {
		return Question{}, &ParseError{Err: err}
	}
	q.ID = s.newID()

	existing, err := s.store.Load(ctx)
	if err != nil {
		return Question{}, &StoreError{Op: "read", Err: err}
	}
	if err := s.store.Replace(ctx, append(existing, q)); err != nil {
		return Question{}, &StoreError{Op: "write", Err: err}
	}
	return q, nil
}

// AddBatch validates an array payload, silently dropping entries that
// are not plain objects, assigns each accepted entry a fresh id and
// appends them in their original relative order. Zero accepted entries
// is an error, not a no-op.
func (s *Service) AddBatch(ctx context.Context, payload []byte) ([]Question, error) {
	switch jsonKind(payload) {
	case "empty":
		return nil, ErrEmptyPayload
	case "object", "value":
		return nil, &ShapeError{Want: "array", Got: jsonKind(payload)}
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(payload, &entries); err != nil {
		return nil, &ParseError{Err: err}
	}

	accepted := make([]Question, 0, len(entries))
	for i, entry := range entries {
		if jsonKind(entry) != "object" {
			log.Printf("batch ingest: skipping entry %d: not an object", i)
			continue
		}
		var q Question
		if err := json.Unmarshal(entry, &q); err != nil {
			log.Printf("batch ingest: skipping entry %d: %v", i, err)
			continue
		}
		q.ID = s.newID()
		accepted = append(accepted, q)
	}
	if len(accepted) == 0 {
		return nil, ErrNoValidEntries
	}

	existing, err := s.store.Load(ctx)
	if err != nil {
		return nil, &StoreError{Op: "read", Err: err}
	}
	if err := s.store.Replace(ctx, append(existing, accepted...)); err != nil {
		return nil, &StoreError{Op: "write", Err: err}
	}
	return accepted, nil
}

// Get finds a record by id without touching its contents.
func Get(qs []Question, id string) (Question, error) {
	for i, q := range qs {
		if q.DisplayID(i) == id {
			return q, nil
		}
	}
	return Question{}, ErrNotFound
}
