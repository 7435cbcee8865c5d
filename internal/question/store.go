package question

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

// Store is the persistence contract for the question collection.
// Reads return the latest completed write in insertion order; writes
// replace the whole collection. Any backing medium qualifies.
type Store interface {
	Load(ctx context.Context) ([]Question, error)
	Replace(ctx context.Context, qs []Question) error
}

// FileStore keeps the collection in a single JSON file, pretty-printed
// so the file stays diff-friendly. Writes are whole-file overwrites;
// concurrent writers race on read-modify-write and the last one wins.
type FileStore struct{ path string }

func NewFileStore(path string) *FileStore {
	if path == "" {
		path = filepath.Join("data", "data.json")
	}
	return &FileStore{path: path}
}

func (s *FileStore) Path() string { return s.path }

// Load returns an empty collection when the file is missing or blank,
// and a *FormatError when it holds JSON that is not an array.
func (s *FileStore) Load(_ context.Context) ([]Question, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []Question{}, nil
		}
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return []Question{}, nil
	}
	var qs []Question
	if err := json.Unmarshal(data, &qs); err != nil {
		return nil, &FormatError{Path: s.path, Err: err}
	}
	return qs, nil
}

func (s *FileStore) Replace(_ context.Context, qs []Question) error {
	if qs == nil {
		qs = []Question{}
	}
	buf, err := json.MarshalIndent(qs, "", "  ")
	if err != nil {
		return err
	}
	buf = append(buf, '\n')
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(s.path, buf, 0o644)
}
