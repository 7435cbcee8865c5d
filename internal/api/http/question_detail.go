package http

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pyq-bank/qbank/internal/question"
)

// detailView is the resolved rendering of one question for one
// language, including the fallback disclosures the UI shows.
type detailView struct {
	ID       string            `json:"id"`
	Type     string            `json:"type,omitempty"`
	Language question.Language `json:"language"`

	Prompt             string               `json:"prompt"`
	QuestionText       string               `json:"question_text,omitempty"`
	SupplementalPrompt string               `json:"supplemental_prompt,omitempty"`
	Statements         []question.Statement `json:"statements,omitempty"`
	Options            []string             `json:"options"`

	ContentFallback string `json:"content_fallback,omitempty"`
	OptionsFallback string `json:"options_fallback,omitempty"`

	Metadata *question.Metadata `json:"metadata,omitempty"`
}

// GetQuestionHandler renders the detail view of a single record.
// Unknown ids are an inline not-found, not a hard failure.
func GetQuestionHandler(store question.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "questionID")
		lang := question.ParseLanguage(r.URL.Query().Get("lang"))

		qs, err := store.Load(r.Context())
		if err != nil {
			log.Printf("question detail: %v", err)
			writeError(w, http.StatusInternalServerError, "Unable to read data file. Check server logs.")
			return
		}
		q, err := question.Get(qs, id)
		if err != nil {
			writeError(w, http.StatusNotFound, "Question not found.")
			return
		}

		res := question.Resolve(q, lang)
		options := res.Options
		if options == nil {
			options = []string{}
		}
		writeJSON(w, http.StatusOK, detailView{
			ID:                 q.ID,
			Type:               q.Type,
			Language:           lang,
			Prompt:             res.Prompt,
			QuestionText:       res.QuestionText,
			SupplementalPrompt: res.SupplementalPrompt,
			Statements:         res.Statements,
			Options:            options,
			ContentFallback:    res.ContentFallbackNotice(),
			OptionsFallback:    res.OptionsFallbackNotice(),
			Metadata:           q.Metadata,
		})
	}
}

// AnswerQuestionHandler grades a selected option. Selection state
// never persists: each call evaluates exactly one (record, language,
// selection) triple, so switching language or record starts fresh.
func AnswerQuestionHandler(store question.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "questionID")

		var req struct {
			Selected string `json:"selected"`
			Lang     string `json:"lang"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad json")
			return
		}
		lang := question.ParseLanguage(req.Lang)

		qs, err := store.Load(r.Context())
		if err != nil {
			log.Printf("answer question: %v", err)
			writeError(w, http.StatusInternalServerError, "Unable to read data file. Check server logs.")
			return
		}
		q, err := question.Get(qs, id)
		if err != nil {
			writeError(w, http.StatusNotFound, "Question not found.")
			return
		}

		res := question.Resolve(q, lang)
		verdict := res.Evaluate(req.Selected)
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"result":               verdict,
			"correct_answer":       res.CorrectAnswer,
			"explanation":          res.Explanation,
			"explanation_fallback": res.ExplanationFallback(verdict),
		})
	}
}
