package helpers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
)

// MaxBodyBytes caps JSON request bodies.
const MaxBodyBytes = 10 << 20

// DecodeJSON decodes a single JSON document from the request body into dest. Anything after
// the document other than whitespace is rejected. On failure it writes a 400 and returns false;
// callers should return immediately.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dest any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err := dec.Decode(dest); err != nil {
		msg := "Invalid JSON body"
		var maxErr *http.MaxBytesError
		switch {
		case errors.Is(err, io.EOF):
			msg = "Request body is required"
		case errors.As(err, &maxErr):
			msg = fmt.Sprintf("Request body exceeds %d bytes", maxErr.Limit)
		}
		WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, msg)
		return false
	}
	if err := dec.Decode(&json.RawMessage{}); !errors.Is(err, io.EOF) {
		WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, "Invalid JSON body")
		return false
	}
	return true
}

// DecodeObject decodes a JSON object body into a generic map for schema validation.
func DecodeObject(w http.ResponseWriter, r *http.Request) (map[string]any, bool) {
	var body map[string]any
	if !DecodeJSON(w, r, &body) {
		return nil, false
	}
	if body == nil {
		WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, "Request body must be a JSON object")
		return nil, false
	}
	return body, true
}

// PathID parses a positive integer id from the named path parameter. It writes a 400 with
// invalidMsg and returns false when the value is not a positive integer.
func PathID(w http.ResponseWriter, raw, invalidMsg string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, invalidMsg)
		return 0, false
	}
	return id, true
}
