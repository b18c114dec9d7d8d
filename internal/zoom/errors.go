package zoom

import (
	"errors"
	"fmt"
	"time"
)

// ErrThrottled marks rate-limit responses from the reporting API.
var ErrThrottled = errors.New("zoom: throttled")

// StatusError reports a non-2xx response, carrying the HTTP status and the
// identifier that was being fetched.
type StatusError struct {
	Status   int
	Resource string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("zoom: status %d fetching %s", e.Status, e.Resource)
}

// ThrottleError reports an HTTP 429 with the server's suggested delay.
// Matches ErrThrottled via errors.Is.
type ThrottleError struct {
	Resource   string
	RetryAfter time.Duration
}

func (e *ThrottleError) Error() string {
	return fmt.Sprintf("zoom: throttled fetching %s (retry after %s)", e.Resource, e.RetryAfter)
}

func (e *ThrottleError) Is(target error) bool {
	return target == ErrThrottled
}
