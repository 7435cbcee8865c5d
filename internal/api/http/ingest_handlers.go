package http

import (
	"errors"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	auth "github.com/pyq-bank/qbank/internal/auth/middleware"
	"github.com/pyq-bank/qbank/internal/question"
)

// Submission endpoints accept either a browser form (payload field,
// answered with a 303 redirect carrying query-style status signals)
// or a raw JSON body (answered with the same outcome as JSON).

func isFormSubmission(r *http.Request) bool {
	ct := r.Header.Get("Content-Type")
	return strings.HasPrefix(ct, "application/x-www-form-urlencoded") ||
		strings.HasPrefix(ct, "multipart/form-data")
}

func readPayload(r *http.Request) ([]byte, error) {
	if isFormSubmission(r) {
		return []byte(strings.TrimSpace(r.FormValue("payload"))), nil
	}
	return io.ReadAll(io.LimitReader(r.Body, 4<<20))
}

func redirectOutcome(w http.ResponseWriter, r *http.Request, target string, params url.Values) {
	http.Redirect(w, r, target+"?"+params.Encode(), http.StatusSeeOther)
}

// AddQuestionHandler is the single-add ingest: one JSON object, fresh
// uuid, append, persist.
func AddQuestionHandler(svc *question.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, err := readPayload(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, "unable to read request body")
			return
		}

		added, err := svc.AddOne(r.Context(), payload)
		if err != nil {
			finishError(w, r, "/add", err, singleAddMessage(err))
			return
		}
		if sub := auth.SubjectFromContext(r.Context()); sub != "" {
			log.Printf("question %s added by %s", added.ID, sub)
		}
		finishSuccess(w, r, "/add", url.Values{"status": {"success"}, "id": {added.ID}})
	}
}

// BatchAddHandler is the batch ingest: a JSON array, non-object
// entries dropped, accepted entries appended in order.
func BatchAddHandler(svc *question.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, err := readPayload(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, "unable to read request body")
			return
		}

		added, err := svc.AddBatch(r.Context(), payload)
		if err != nil {
			finishError(w, r, "/batch-add", err, batchAddMessage(err))
			return
		}
		if sub := auth.SubjectFromContext(r.Context()); sub != "" {
			log.Printf("%d questions added by %s", len(added), sub)
		}
		finishSuccess(w, r, "/batch-add", url.Values{
			"status": {"success"},
			"added":  {strconv.Itoa(len(added))},
		})
	}
}

func finishSuccess(w http.ResponseWriter, r *http.Request, target string, params url.Values) {
	if isFormSubmission(r) {
		redirectOutcome(w, r, target, params)
		return
	}
	out := map[string]string{}
	for k := range params {
		out[k] = params.Get(k)
	}
	writeJSON(w, http.StatusCreated, out)
}

func finishError(w http.ResponseWriter, r *http.Request, target string, err error, msg string) {
	if isFormSubmission(r) {
		redirectOutcome(w, r, target, url.Values{"error": {msg}})
		return
	}
	status := http.StatusBadRequest
	var storeErr *question.StoreError
	if errors.As(err, &storeErr) {
		status = http.StatusInternalServerError
	}
	writeError(w, status, msg)
}

func singleAddMessage(err error) string {
	var shape *question.ShapeError
	var parse *question.ParseError
	var store *question.StoreError
	switch {
	case errors.Is(err, question.ErrEmptyPayload):
		return "Paste a JSON question payload before submitting"
	case errors.As(err, &parse):
		log.Printf("single add: %v", err)
		return "Invalid JSON. Please double-check the payload."
	case errors.As(err, &shape):
		return "Payload must be a JSON object (not an array)."
	case errors.As(err, &store):
		log.Printf("single add: %v", err)
		if store.Op == "read" {
			return "Unable to read data file. Check server logs."
		}
		return "Failed to update data file. Check server logs."
	default:
		log.Printf("single add: %v", err)
		return "Unable to save question. Check server logs."
	}
}

func batchAddMessage(err error) string {
	var shape *question.ShapeError
	var parse *question.ParseError
	var store *question.StoreError
	switch {
	case errors.Is(err, question.ErrEmptyPayload):
		return "Paste a JSON array of questions before submitting."
	case errors.As(err, &parse):
		log.Printf("batch add: %v", err)
		return "Invalid JSON. Ensure the payload is a valid array."
	case errors.As(err, &shape):
		return "Payload must be a JSON array of question objects."
	case errors.Is(err, question.ErrNoValidEntries):
		return "No valid question objects found in the array."
	case errors.As(err, &store):
		log.Printf("batch add: %v", err)
		if store.Op == "read" {
			return "Unable to read existing data. Check server logs."
		}
		return "Failed to update data file. Check server logs."
	default:
		log.Printf("batch add: %v", err)
		return "Unable to save batch. Check server logs."
	}
}
