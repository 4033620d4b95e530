package fetcher

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrFetchFailed wraps every error returned by Fetcher.Fetch. Callers treat
	// it as "no data for this page".
	ErrFetchFailed = errors.New("page fetch failed")
	// ErrAccessDenied is returned by the HTTP path when the site rejects the
	// request, which triggers the browser fallback.
	ErrAccessDenied = errors.New("access denied")
)

// StatusError is a failed HTTP exchange. StatusCode is 0 for transport errors.
type StatusError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *StatusError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("GET %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("GET %s: status %d: %v", e.URL, e.StatusCode, e.Err)
}

func (e *StatusError) Unwrap() error {
	return e.Err
}

// isRetryable reports whether a fast-path failure is worth another attempt:
// transport errors, throttling and server errors.
func isRetryable(err error) bool {
	if errors.Is(err, ErrAccessDenied) {
		return false
	}
	var se *StatusError
	if !errors.As(err, &se) {
		return false
	}
	return se.StatusCode == 0 ||
		se.StatusCode == http.StatusTooManyRequests ||
		se.StatusCode >= http.StatusInternalServerError
}
