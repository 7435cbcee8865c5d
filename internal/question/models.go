package question

import (
	"bytes"
	"encoding/json"
	"errors"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// Flex is a string that also accepts bare JSON numbers on decode.
// Year and question-number fields arrive both quoted and unquoted in
// source payloads.
type Flex string

func (f *Flex) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = Flex(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = Flex(n.String())
	return nil
}

func (f Flex) String() string { return string(f) }

// Question type tags. Rendering dispatches on the tag, not on the
// runtime shape of the payload.
const (
	TypeSimpleMultipleChoice         = "simple-multiple-choice"
	TypeMultipleStatementQuestion    = "multiple-statement-question"
	TypeStatementAnalysis            = "statement-analysis"
	TypeMultipleChoiceWithStatements = "multiple-choice-with-statements"
)

// Statement is one labelled line inside a statement-style question.
type Statement struct {
	Label Flex   `json:"label,omitempty"`
	Text  string `json:"text,omitempty"`
}

// Content holds the language-specific body of a question.
type Content struct {
	Title       string      `json:"title,omitempty"`
	Question    string      `json:"question,omitempty"`
	SimpleText  string      `json:"simpleText,omitempty"`
	Description string      `json:"description,omitempty"`
	Prompt      string      `json:"prompt,omitempty"`
	Statements  []Statement `json:"statements,omitempty"`
}

// Empty reports whether no field carries a usable value. An all-blank
// content object is treated the same as an absent one.
func (c *Content) Empty() bool {
	if c == nil {
		return true
	}
	return trim(c.Title) == "" && trim(c.Question) == "" && trim(c.SimpleText) == "" &&
		trim(c.Description) == "" && trim(c.Prompt) == "" && len(c.Statements) == 0
}

// Metadata carries the browsing/analytics facets. All fields optional.
type Metadata struct {
	Difficulty       string   `json:"difficulty,omitempty"`
	Subject          string   `json:"subject,omitempty"`
	Exam             Flex     `json:"exam,omitempty"`
	Year             Flex     `json:"year,omitempty"`
	Tags             []string `json:"tags,omitempty"`
	SimilarQuestions []string `json:"similarQuestions,omitempty"`
}

// Question is one record in the collection. Records are append-only:
// born at ingest, never updated or deleted by this service.
//
// Unknown top-level keys survive a load/ingest/persist cycle through
// Extra, so a stored payload is never silently stripped of fields this
// schema does not model.
type Question struct {
	ID             string    `json:"id,omitempty"`
	Type           string    `json:"type,omitempty"`
	QuestionNumber Flex      `json:"questionNumber,omitempty"`
	Content        *Content  `json:"content,omitempty"`
	ContentHi      *Content  `json:"content_hi,omitempty"`
	QuestionText   string    `json:"question,omitempty"`
	QuestionTextHi string    `json:"question_hi,omitempty"`
	Options        []string  `json:"options,omitempty"`
	OptionsHi      []string  `json:"options_hi,omitempty"`
	CorrectAnswer  string    `json:"correctAnswer,omitempty"`
	CorrectAnsHi   string    `json:"correctAnswer_hi,omitempty"`
	Explanation    string    `json:"explanation,omitempty"`
	ExplanationHi  string    `json:"explanation_hi,omitempty"`
	Metadata       *Metadata `json:"metadata,omitempty"`

	Extra map[string]json.RawMessage `json:"-"`
}

var knownQuestionKeys = []string{
	"id", "type", "questionNumber",
	"content", "content_hi",
	"question", "question_hi",
	"options", "options_hi",
	"correctAnswer", "correctAnswer_hi",
	"explanation", "explanation_hi",
	"metadata",
}

func (q *Question) UnmarshalJSON(data []byte) error {
	type plain Question
	var p plain
	err := json.Unmarshal(data, &p)
	var typeErr *json.UnmarshalTypeError
	if err != nil && !errors.As(err, &typeErr) {
		return err
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if typeErr == nil {
		for _, k := range knownQuestionKeys {
			delete(raw, k)
		}
	} else {
		// Any plain object is a valid record, even when a field does
		// not fit this schema. Re-decode key by key: fields that fit
		// populate the struct, the rest stays in raw and rides along
		// verbatim through Extra.
		p = plain{}
		keep := func(k string, dst interface{}) {
			v, ok := raw[k]
			if !ok {
				return
			}
			if json.Unmarshal(v, dst) != nil {
				// A failed decode can leave dst half filled. Zero it so
				// the key lives only in Extra.
				rv := reflect.ValueOf(dst).Elem()
				rv.Set(reflect.Zero(rv.Type()))
				return
			}
			delete(raw, k)
		}
		keep("id", &p.ID)
		keep("type", &p.Type)
		keep("questionNumber", &p.QuestionNumber)
		keep("content", &p.Content)
		keep("content_hi", &p.ContentHi)
		keep("question", &p.QuestionText)
		keep("question_hi", &p.QuestionTextHi)
		keep("options", &p.Options)
		keep("options_hi", &p.OptionsHi)
		keep("correctAnswer", &p.CorrectAnswer)
		keep("correctAnswer_hi", &p.CorrectAnsHi)
		keep("explanation", &p.Explanation)
		keep("explanation_hi", &p.ExplanationHi)
		keep("metadata", &p.Metadata)
		// A non-string id cannot serve as one. Drop it so a later
		// assigned id does not produce a duplicate key on marshal.
		delete(raw, "id")
	}
	if len(raw) == 0 {
		raw = nil
	}
	p.Extra = raw
	*q = Question(p)
	return nil
}

// MarshalJSON appends the Extra keys after the typed fields so records
// keep a stable field order in the persisted file.
func (q Question) MarshalJSON() ([]byte, error) {
	type plain Question
	b, err := json.Marshal(plain(q))
	if err != nil {
		return nil, err
	}
	if len(q.Extra) == 0 {
		return b, nil
	}
	keys := make([]string, 0, len(q.Extra))
	for k := range q.Extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var buf bytes.Buffer
	buf.Write(b[:len(b)-1])
	for _, k := range keys {
		if buf.Len() > 1 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(q.Extra[k])
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// DisplayID mirrors the list view's id coercion: id, then
// questionNumber, then the record's 1-based position.
func (q Question) DisplayID(index int) string {
	if q.ID != "" {
		return q.ID
	}
	if q.QuestionNumber != "" {
		return q.QuestionNumber.String()
	}
	return strconv.Itoa(index + 1)
}

func trim(s string) string { return strings.TrimSpace(s) }
