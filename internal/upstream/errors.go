package upstream

import (
	"errors"
	"fmt"
	"strings"
)

// Error is a failed call against the payment backend. The status code is
// kept so callers can branch: 401/403 mean the session must be re-issued,
// 404 and 5xx are retryable during reconciliation, everything else is a
// business rejection whose message is surfaced verbatim.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("upstream: status %d", e.Status)
	}
	return fmt.Sprintf("upstream: status %d: %s", e.Status, e.Message)
}

// IsNotFound reports whether the error means the record does not exist (or
// does not exist yet). Some backend paths answer 200 with an error message
// instead of a 404, so the message token counts too.
func IsNotFound(err error) bool {
	var ue *Error
	if !errors.As(err, &ue) {
		return false
	}
	return ue.Status == 404 || strings.Contains(ue.Message, "not found")
}

// IsUnauthorized reports whether the caller's session was rejected.
func IsUnauthorized(err error) bool {
	var ue *Error
	if !errors.As(err, &ue) {
		return false
	}
	return ue.Status == 401 || ue.Status == 403
}

// IsServerError reports a 5xx response.
func IsServerError(err error) bool {
	var ue *Error
	if !errors.As(err, &ue) {
		return false
	}
	return ue.Status >= 500
}

// MessageOf extracts the backend's message for user-facing surfaces, or the
// fallback when the error carries none.
func MessageOf(err error, fallback string) string {
	var ue *Error
	if errors.As(err, &ue) && ue.Message != "" {
		return ue.Message
	}
	return fallback
}
