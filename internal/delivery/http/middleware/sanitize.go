package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"regexp"
	"strings"

	"codedcode/internal/delivery/http/helpers"
)

var (
	scriptTag     = regexp.MustCompile(`(?is)<script\b.*?</script>`)
	iframeTag     = regexp.MustCompile(`(?is)<iframe\b.*?</iframe>`)
	jsScheme      = regexp.MustCompile(`(?i)javascript:`)
	inlineHandler = regexp.MustCompile(`(?i)\bon\w+\s*=`)
)

// SanitizeString strips script and iframe elements, javascript: schemes and inline event
// handlers, then trims surrounding whitespace.
func SanitizeString(s string) string {
	s = scriptTag.ReplaceAllString(s, "")
	s = iframeTag.ReplaceAllString(s, "")
	s = jsScheme.ReplaceAllString(s, "")
	s = inlineHandler.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// sanitizeValue walks decoded JSON and cleans every string in place.
func sanitizeValue(v any) any {
	switch t := v.(type) {
	case string:
		return SanitizeString(t)
	case []any:
		for i := range t {
			t[i] = sanitizeValue(t[i])
		}
		return t
	case map[string]any:
		for k, e := range t {
			t[k] = sanitizeValue(e)
		}
		return t
	default:
		return v
	}
}

// Sanitize cleans query values and JSON request bodies before they reach handlers.
// Bodies that are not exactly one valid JSON document are passed through untouched so the
// handler reports the error.
func Sanitize(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.RawQuery != "" {
			q := r.URL.Query()
			for k, vals := range q {
				for i := range vals {
					vals[i] = SanitizeString(vals[i])
				}
				q[k] = vals
			}
			r.URL.RawQuery = q.Encode()
		}

		if r.Body != nil && strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
			raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, helpers.MaxBodyBytes))
			_ = r.Body.Close()
			if err != nil {
				helpers.WriteJSONError(w, http.StatusRequestEntityTooLarge, helpers.ErrCodeBadRequest, "Request body too large")
				return
			}
			var body any
			dec := json.NewDecoder(bytes.NewReader(raw))
			dec.UseNumber()
			if dec.Decode(&body) == nil && errors.Is(dec.Decode(&json.RawMessage{}), io.EOF) {
				if cleaned, err := json.Marshal(sanitizeValue(body)); err == nil {
					raw = cleaned
				}
			}
			r.Body = io.NopCloser(bytes.NewReader(raw))
			r.ContentLength = int64(len(raw))
		}
		next.ServeHTTP(w, r)
	})
}
