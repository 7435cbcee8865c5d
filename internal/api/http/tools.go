package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
)

// ArrayLengthHandler counts the elements of a posted JSON array. A
// blank payload counts as zero; anything that is not an array is a
// descriptive error. Nothing is persisted.
func ArrayLengthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload []byte
		if isFormSubmission(r) {
			payload = []byte(r.FormValue("payload"))
		} else {
			var err error
			payload, err = io.ReadAll(io.LimitReader(r.Body, 4<<20))
			if err != nil {
				writeError(w, http.StatusBadRequest, "unable to read request body")
				return
			}
		}

		if len(bytes.TrimSpace(payload)) == 0 {
			writeJSON(w, http.StatusOK, map[string]int{"length": 0})
			return
		}

		var entries []json.RawMessage
		if err := json.Unmarshal(payload, &entries); err != nil {
			var probe interface{}
			if json.Unmarshal(payload, &probe) == nil {
				writeError(w, http.StatusBadRequest, "The provided JSON must be an array.")
				return
			}
			writeError(w, http.StatusBadRequest, "Invalid JSON. Please fix the syntax.")
			return
		}
		writeJSON(w, http.StatusOK, map[string]int{"length": len(entries)})
	}
}
