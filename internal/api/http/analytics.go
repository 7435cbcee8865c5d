package http

import (
	"log"
	"net/http"

	"github.com/pyq-bank/qbank/internal/question"
)

// AnalyticsHandler computes the facet breakdowns and difficulty split
// over the optionally (year, exam)-filtered collection.
func AnalyticsHandler(store question.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := question.FacetFilter{
			Year: r.URL.Query().Get("year"),
			Exam: r.URL.Query().Get("exam"),
		}

		qs, err := store.Load(r.Context())
		if err != nil {
			log.Printf("analytics: %v", err)
			writeError(w, http.StatusInternalServerError, "Unable to read data file. Check server logs.")
			return
		}
		writeJSON(w, http.StatusOK, question.Aggregate(qs, filter))
	}
}
