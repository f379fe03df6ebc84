package backend

import (
	"context"
	"errors"
	"fmt"
	"net/url"
)

// ErrTimeout marks requests that exceeded the client-side deadline, so the
// surface layer can say "server is slow" instead of "server is down".
var ErrTimeout = errors.New("backend request timed out")

// StatusError is a non-2xx backend response.
type StatusError struct {
	Code   int
	Status string
	Body   string
}

func (e *StatusError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("backend returned %d %s: %s", e.Code, e.Status, e.Body)
	}
	return fmt.Sprintf("backend returned %d %s", e.Code, e.Status)
}

func (e *StatusError) Is(target error) bool {
	_, ok := target.(*StatusError)
	return ok
}

// classify wraps transport failures into the error taxonomy. Timeouts get
// their own identity; everything else stays a transport error.
func classify(err error) error {
	if err == nil {
		return nil
	}

	var uerr *url.Error
	if errors.As(err, &uerr) && uerr.Timeout() {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}

	return err
}

// Retryable reports whether a failed request is worth retrying. Client
// errors (4xx) are permanent; timeouts, transport failures and 5xx are
// transient.
func Retryable(err error) bool {
	if err == nil {
		return false
	}

	var serr *StatusError
	if errors.As(err, &serr) {
		return serr.Code >= 500
	}

	return true
}

// ErrorClass names the error bucket for metrics.
func ErrorClass(err error) string {
	switch {
	case err == nil:
		return "none"
	case errors.Is(err, ErrTimeout):
		return "timeout"
	case errors.Is(err, &StatusError{}):
		return "http"
	default:
		return "transport"
	}
}
