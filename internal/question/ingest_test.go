package question_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/pyq-bank/qbank/internal/question"
)

const samplePayload = `{
  "type": "simple-multiple-choice",
  "content": {
    "title": "Militant nationalist school of thought in India",
    "question": "Who among the following did not represent the militant nationalist school of thought in India?"
  },
  "options": [
    "(a) Ashwini Kumar Dutt",
    "(b) Vishnushastri Chiplunkar",
    "(c) Krishna Kumar Mitra",
    "(d) Lala Lajpat Rai"
  ],
  "correctAnswer": "(c) Krishna Kumar Mitra",
  "explanation": "Krishna Kumar Mitra was associated with the moderate nationalist school.",
  "metadata": {"difficulty": "easy", "subject": "modern_history", "exam": "EPFO", "year": "2021"}
}`

func newIngest(t *testing.T) (*question.Service, question.Store) {
	t.Helper()
	store := question.NewFileStore(filepath.Join(t.TempDir(), "data.json"))
	return question.NewService(store), store
}

func TestAddOneAppendsWithFreshID(t *testing.T) {
	ctx := context.Background()
	svc, store := newIngest(t)

	if err := store.Replace(ctx, []question.Question{{ID: "existing"}}); err != nil {
		t.Fatal(err)
	}

	added, err := svc.AddOne(ctx, []byte(samplePayload))
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if added.ID == "" || added.ID == "existing" {
		t.Fatalf("expected fresh id, got %q", added.ID)
	}
	if added.CorrectAnswer != "(c) Krishna Kumar Mitra" {
		t.Fatalf("payload fields not preserved: %+v", added)
	}

	qs, err := store.Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(qs) != 2 || qs[0].ID != "existing" || qs[1].ID != added.ID {
		t.Fatalf("expected prior collection plus one appended record, got %+v", qs)
	}
	if len(qs[1].Options) != 4 {
		t.Fatalf("expected 4 options, got %d", len(qs[1].Options))
	}
}

func TestAddOneDiscardsCallerID(t *testing.T) {
	svc, _ := newIngest(t)
	added, err := svc.AddOne(context.Background(), []byte(`{"id":"mine","type":"simple-multiple-choice"}`))
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if added.ID == "mine" {
		t.Fatal("caller-supplied id must be replaced")
	}
}

func TestAddOneRejectsWrongShapes(t *testing.T) {
	ctx := context.Background()
	svc, _ := newIngest(t)

	if _, err := svc.AddOne(ctx, []byte("   ")); !errors.Is(err, question.ErrEmptyPayload) {
		t.Fatalf("expected empty payload error, got %v", err)
	}

	var shape *question.ShapeError
	if _, err := svc.AddOne(ctx, []byte(`[{"a":1}]`)); !errors.As(err, &shape) {
		t.Fatalf("expected shape error for array, got %v", err)
	}
	if _, err := svc.AddOne(ctx, []byte(`"just a string"`)); !errors.As(err, &shape) {
		t.Fatalf("expected shape error for scalar, got %v", err)
	}

	var parse *question.ParseError
	if _, err := svc.AddOne(ctx, []byte(`{broken`)); !errors.As(err, &parse) {
		t.Fatalf("expected parse error, got %v", err)
	}
}

func TestAddOneAcceptsObjectWithMismatchedFields(t *testing.T) {
	ctx := context.Background()
	svc, store := newIngest(t)

	added, err := svc.AddOne(ctx, []byte(`{"options": 123, "question": "Which one?"}`))
	if err != nil {
		t.Fatalf("object with off-schema field must be accepted, got %v", err)
	}
	if added.ID == "" {
		t.Fatal("expected fresh id")
	}
	if added.QuestionText != "Which one?" {
		t.Fatalf("well-formed fields must still decode, got %+v", added)
	}

	qs, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("stored record must load back: %v", err)
	}
	if len(qs) != 1 {
		t.Fatalf("expected 1 stored record, got %d", len(qs))
	}
	if string(qs[0].Extra["options"]) != "123" {
		t.Fatalf("off-schema field must survive verbatim, got %q", qs[0].Extra["options"])
	}
}

func TestAddBatchKeepsObjectsWithMismatchedFields(t *testing.T) {
	ctx := context.Background()
	svc, _ := newIngest(t)

	payload := `[
		{"options": 123, "question": "first"},
		42,
		{"question": "second"}
	]`
	added, err := svc.AddBatch(ctx, []byte(payload))
	if err != nil {
		t.Fatalf("batch failed: %v", err)
	}
	if len(added) != 2 {
		t.Fatalf("only non-objects may be dropped, got %d accepted", len(added))
	}
	if added[0].QuestionText != "first" || added[1].QuestionText != "second" {
		t.Fatalf("relative order not preserved: %+v", added)
	}
	if string(added[0].Extra["options"]) != "123" {
		t.Fatalf("off-schema field must survive verbatim, got %q", added[0].Extra["options"])
	}
}

func TestAddBatchDropsNonObjectsAndKeepsOrder(t *testing.T) {
	ctx := context.Background()
	svc, store := newIngest(t)

	payload := `[
		{"id":"dropme","question":"first"},
		"not an object",
		[{"question":"nested array"}],
		{"question":"second"},
		null
	]`
	added, err := svc.AddBatch(ctx, []byte(payload))
	if err != nil {
		t.Fatalf("batch failed: %v", err)
	}
	if len(added) != 2 {
		t.Fatalf("expected 2 accepted entries, got %d", len(added))
	}
	if added[0].QuestionText != "first" || added[1].QuestionText != "second" {
		t.Fatalf("relative order not preserved: %+v", added)
	}
	if added[0].ID == "dropme" || added[0].ID == "" {
		t.Fatalf("caller id must be replaced, got %q", added[0].ID)
	}
	if added[0].ID == added[1].ID {
		t.Fatal("ids must be unique")
	}

	qs, _ := store.Load(ctx)
	if len(qs) != 2 {
		t.Fatalf("expected 2 stored records, got %d", len(qs))
	}
}

func TestAddBatchEmptyArrayIsErrorAndLeavesStoreUntouched(t *testing.T) {
	ctx := context.Background()
	svc, store := newIngest(t)

	if err := store.Replace(ctx, []question.Question{{ID: "keep"}}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.AddBatch(ctx, []byte(`[]`)); !errors.Is(err, question.ErrNoValidEntries) {
		t.Fatalf("expected no-valid-entries error, got %v", err)
	}
	if _, err := svc.AddBatch(ctx, []byte(`["a", 1, null]`)); !errors.Is(err, question.ErrNoValidEntries) {
		t.Fatalf("expected no-valid-entries error, got %v", err)
	}

	qs, _ := store.Load(ctx)
	if len(qs) != 1 || qs[0].ID != "keep" {
		t.Fatalf("store must be unchanged after failed batch, got %+v", qs)
	}
}

func TestAddBatchRejectsObjectPayload(t *testing.T) {
	svc, _ := newIngest(t)
	var shape *question.ShapeError
	if _, err := svc.AddBatch(context.Background(), []byte(`{"question":"x"}`)); !errors.As(err, &shape) {
		t.Fatalf("expected shape error, got %v", err)
	}
}

func TestGetByID(t *testing.T) {
	qs := []question.Question{{ID: "a"}, {ID: "b"}}
	q, err := question.Get(qs, "b")
	if err != nil || q.ID != "b" {
		t.Fatalf("expected b, got %+v err=%v", q, err)
	}
	if _, err := question.Get(qs, "zzz"); !errors.Is(err, question.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
