package question_test

import (
	"reflect"
	"testing"

	"github.com/pyq-bank/qbank/internal/question"
)

func bilingual() question.Question {
	return question.Question{
		ID:   "q1",
		Type: question.TypeSimpleMultipleChoice,
		Content: &question.Content{
			Title:    "Militant nationalists",
			Question: "Who did not represent the militant school?",
		},
		Options: []string{
			"(a) Ashwini Kumar Dutt",
			"(b) Vishnushastri Chiplunkar",
			"(c) Krishna Kumar Mitra",
			"(d) Lala Lajpat Rai",
		},
		CorrectAnswer: "(c) Krishna Kumar Mitra",
		Explanation:   "Mitra belonged to the moderate school.",
	}
}

func TestResolveFallsBackToOtherLanguage(t *testing.T) {
	q := bilingual() // English only
	r := question.Resolve(q, question.LangHindi)

	if !r.HasContent || !r.ContentFallback {
		t.Fatalf("expected borrowed content flagged as fallback: %+v", r)
	}
	if !r.OptionsFallback || len(r.Options) != 4 {
		t.Fatalf("expected borrowed options flagged as fallback: %+v", r)
	}
	if r.CorrectAnswer != "(c) Krishna Kumar Mitra" {
		t.Fatalf("expected borrowed answer, got %q", r.CorrectAnswer)
	}
}

func TestResolveBothLanguagesEmpty(t *testing.T) {
	r := question.Resolve(question.Question{ID: "bare"}, question.LangEnglish)
	if r.HasContent || r.ContentFallback {
		t.Fatalf("expected no content and no fallback flag: %+v", r)
	}
	if r.Prompt != "" {
		t.Fatalf("expected empty prompt, got %q", r.Prompt)
	}
}

func TestExplanationNeverBorrowsCrossLanguage(t *testing.T) {
	q := bilingual() // explanation set, explanation_hi absent
	r := question.Resolve(q, question.LangHindi)
	if r.Explanation != "" {
		t.Fatalf("hindi explanation must not borrow english text, got %q", r.Explanation)
	}
	if r.ExplanationFallback(question.VerdictIncorrect) == "" {
		t.Fatal("expected generic fallback message")
	}

	en := question.Resolve(q, question.LangEnglish)
	if en.Explanation != "Mitra belonged to the moderate school." {
		t.Fatalf("english explanation lost: %q", en.Explanation)
	}
}

func TestPromptPrecedence(t *testing.T) {
	q := question.Question{
		Content: &question.Content{
			Question:    "from question",
			SimpleText:  "from simpleText",
			Description: "from description",
		},
	}
	if got := question.Resolve(q, question.LangEnglish).Prompt; got != "from question" {
		t.Fatalf("expected question field to win, got %q", got)
	}

	q.Content.Question = "  "
	if got := question.Resolve(q, question.LangEnglish).Prompt; got != "from simpleText" {
		t.Fatalf("expected simpleText after blank question, got %q", got)
	}

	q2 := question.Question{QuestionText: "direct top-level"}
	if got := question.Resolve(q2, question.LangEnglish).Prompt; got != "direct top-level" {
		t.Fatalf("expected direct question fallback, got %q", got)
	}

	q3 := question.Question{ContentHi: &question.Content{Title: "hindi title"}}
	if got := question.Resolve(q3, question.LangEnglish).Prompt; got != "hindi title" {
		t.Fatalf("expected other-language content fallback, got %q", got)
	}
}

func TestResolveIsPure(t *testing.T) {
	q := bilingual()
	a := question.Resolve(q, question.LangHindi)
	b := question.Resolve(q, question.LangHindi)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("resolver not idempotent:\n%+v\n%+v", a, b)
	}
}

func TestEvaluateSelection(t *testing.T) {
	r := question.Resolve(bilingual(), question.LangEnglish)

	if v := r.Evaluate(""); v != question.VerdictUnanswered {
		t.Fatalf("blank selection: got %v", v)
	}
	if v := r.Evaluate("  (C) KRISHNA KUMAR MITRA  "); v != question.VerdictCorrect {
		t.Fatalf("case/space-insensitive match: got %v", v)
	}
	if v := r.Evaluate("(a) Ashwini Kumar Dutt"); v != question.VerdictIncorrect {
		t.Fatalf("wrong option: got %v", v)
	}
}

func TestParseLanguage(t *testing.T) {
	if question.ParseLanguage("hi") != question.LangHindi {
		t.Fatal("hi should parse as Hindi")
	}
	for _, tag := range []string{"", "en", "fr", "HI "} {
		got := question.ParseLanguage(tag)
		if tag == "HI " {
			if got != question.LangHindi {
				t.Fatalf("%q: expected Hindi", tag)
			}
			continue
		}
		if got != question.LangEnglish {
			t.Fatalf("%q: expected English default, got %v", tag, got)
		}
	}
}
