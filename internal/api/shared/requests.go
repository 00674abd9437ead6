package shared

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
)

// DecodeJSON decodes the request body into v. An empty body leaves v untouched.
func DecodeJSON(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// IsJSON reports whether the request body is declared as JSON.
func IsJSON(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "application/json"
}

// FormOrJSONValue reads field from a JSON object body or, for any other
// content type, from the parsed form. A missing field yields "".
func FormOrJSONValue(r *http.Request, field string) (string, error) {
	if IsJSON(r) {
		var body map[string]json.RawMessage
		if err := DecodeJSON(r, &body); err != nil {
			return "", fmt.Errorf("invalid JSON body: %w", err)
		}
		raw, ok := body[field]
		if !ok {
			return "", nil
		}
		var value string
		if err := json.Unmarshal(raw, &value); err != nil {
			return "", fmt.Errorf("field %q is not a string: %w", field, err)
		}
		return value, nil
	}

	if err := r.ParseForm(); err != nil {
		return "", fmt.Errorf("invalid form body: %w", err)
	}
	return r.PostForm.Get(field), nil
}

// PathParam returns the named chi URL parameter, percent-decoded exactly
// once. chi matches against the escaped path when the request has one, in
// which case the parameter is still encoded. A value that cannot be decoded
// is returned as is.
func PathParam(r *http.Request, name string) string {
	value := chi.URLParam(r, name)
	if r.URL.RawPath == "" {
		return value
	}
	decoded, err := url.PathUnescape(value)
	if err != nil {
		return value
	}
	return decoded
}
