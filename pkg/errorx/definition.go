package errorx

import (
	"errors"
	"time"
)

var (
	ErrGeneric         = Error{1000, "generic error"}
	ErrNotFound        = Error{1001, "not found"}
	ErrTooManyRequests = Error{1002, "too many requests"}
	ErrBadResponse     = Error{1003, "bad response"}
	ErrRequestFailed   = Error{1004, "request failed"}
	ErrSessionClosed   = Error{1005, "session closed"}
	ErrBadEvent        = Error{1006, "malformed event payload"}
)

// RateLimitError reports a denied or throttled call together with the moment
// the route bucket resets.
type RateLimitError struct {
	ResetAt time.Time
}

func (e RateLimitError) Error() string {
	return ErrTooManyRequests.Message
}

func (e RateLimitError) Is(target error) bool {
	return target == ErrTooManyRequests
}

func NewRateLimit(resetAt time.Time) error {
	return RateLimitError{ResetAt: resetAt}
}

// IsRateLimit reports whether err is a throttling outcome and, if so, when the
// bucket resets.
func IsRateLimit(err error) (time.Time, bool) {
	var rl RateLimitError
	if errors.As(err, &rl) {
		return rl.ResetAt, true
	}

	return time.Time{}, false
}

// StatusError reports a non-2xx REST response that is not a rate limit. The
// status is carried as-is; interpreting it is the caller's business.
type StatusError struct {
	Status int
}

func (e StatusError) Error() string {
	return ErrRequestFailed.Message
}

func (e StatusError) Is(target error) bool {
	return target == ErrRequestFailed
}

func NewStatus(status int) error {
	return StatusError{Status: status}
}

// StatusOf extracts the HTTP status from a request-failed outcome.
func StatusOf(err error) (int, bool) {
	var se StatusError
	if errors.As(err, &se) {
		return se.Status, true
	}

	return 0, false
}
