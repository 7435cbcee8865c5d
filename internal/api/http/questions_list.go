package http

import (
	"log"
	"net/http"
	"strings"

	"github.com/pyq-bank/qbank/internal/question"
)

// ListQuestionsHandler serves the browsing page: free-text search plus
// fixed-size pagination over the summary projection.
func ListQuestionsHandler(store question.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := strings.TrimSpace(r.URL.Query().Get("q"))
		page := parseIntDefault(r.URL.Query().Get("page"), 1)

		qs, err := store.Load(r.Context())
		if err != nil {
			log.Printf("list questions: %v", err)
			writeError(w, http.StatusInternalServerError, "Unable to read data file. Check server logs.")
			return
		}

		matched := question.Search(question.Summaries(qs), q)
		result := question.Paginate(matched, page)
		writeJSON(w, http.StatusOK, struct {
			question.Page
			Stored int    `json:"stored"`
			Query  string `json:"query,omitempty"`
		}{Page: result, Stored: len(qs), Query: q})
	}
}
