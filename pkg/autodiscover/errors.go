package autodiscover

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidInput is returned for requests that cannot be attempted at
// all: a malformed email address or missing credentials.
var ErrInvalidInput = errors.New("invalid discovery input")

// AttemptError describes the failure of one endpoint attempt.
type AttemptError struct {
	// Pattern is the transport pattern of the attempt
	// ("direct-post" or "redirect-then-post")
	Pattern string
	// URL is the endpoint URL the attempt targeted
	URL string
	// Err is the underlying failure
	Err error
}

func (e *AttemptError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Pattern, e.URL, e.Err)
}

func (e *AttemptError) Unwrap() error {
	return e.Err
}

// AllEndpointsFailedError is returned when every attempt across every
// candidate domain failed. It aggregates the individual attempt
// failures for diagnostics.
type AllEndpointsFailedError struct {
	Attempts []*AttemptError
}

func (e *AllEndpointsFailedError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "all %d autodiscover attempts failed", len(e.Attempts))
	for _, a := range e.Attempts {
		b.WriteString("\n  ")
		b.WriteString(a.Error())
	}
	return b.String()
}
