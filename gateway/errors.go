package gateway

import (
	"errors"
	"net/http"
	"strings"
)

// HTTPError is returned for any non-2xx backend response. Body holds the
// decoded JSON value when the response parsed, otherwise the raw text.
type HTTPError struct {
	Status int
	Body   any
}

func (e *HTTPError) Error() string {
	switch body := e.Body.(type) {
	case map[string]any:
		for _, key := range []string{"message", "error"} {
			if s, ok := body[key].(string); ok && s != "" {
				return s
			}
		}
	case string:
		if s := strings.TrimSpace(body); s != "" {
			return s
		}
	}
	if text := http.StatusText(e.Status); text != "" {
		return text
	}
	return "Request failed"
}

// IsHTTPError reports whether err carries a backend status response.
func IsHTTPError(err error) bool {
	var he *HTTPError
	return errors.As(err, &he)
}

// StatusCode returns the backend status carried by err, or 0 when err is a
// transport failure or nil.
func StatusCode(err error) int {
	var he *HTTPError
	if errors.As(err, &he) {
		return he.Status
	}
	return 0
}

// Message is the text to show the user for err: the backend's own message
// for status errors, fallback for transport failures.
func Message(err error, fallback string) string {
	var he *HTTPError
	if errors.As(err, &he) {
		return he.Error()
	}
	return fallback
}
