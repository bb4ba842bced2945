package autodiscover

import (
	"context"
	"fmt"
)

// Transport patterns for endpoint attempts.
const (
	patternDirectPost       = "direct-post"
	patternRedirectThenPost = "redirect-then-post"
)

// attempt is one endpoint trial: a target URL and the transport pattern
// used against it. Attempts never observe each other; the race context
// is the only shared signal.
type attempt struct {
	pattern string
	url     string
}

// attemptsFor constructs the three attempts for one candidate domain.
func (c *Client) attemptsFor(domain string) []attempt {
	urls := AttemptURLs{
		DirectPost:  fmt.Sprintf("https://%s/autodiscover/autodiscover.svc", domain),
		AltPost:     fmt.Sprintf("https://autodiscover.%s/autodiscover/autodiscover.svc", domain),
		RedirectGet: fmt.Sprintf("http://autodiscover.%s/autodiscover/autodiscover.svc", domain),
	}
	if c.attemptURLs != nil {
		urls = c.attemptURLs(domain)
	}
	return []attempt{
		{pattern: patternDirectPost, url: urls.DirectPost},
		{pattern: patternDirectPost, url: urls.AltPost},
		{pattern: patternRedirectThenPost, url: urls.RedirectGet},
	}
}

// race fires every attempt for every candidate domain concurrently and
// returns the body of the first attempt whose HTTP exchange completes.
// Once a winner is in, the shared context is cancelled so in-flight
// losers abort; cancellation is best-effort and their results are
// discarded. If every attempt fails the race fails with
// *AllEndpointsFailedError.
func (c *Client) race(ctx context.Context, domains []string, body []byte, username, password string) ([]byte, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var attempts []attempt
	for _, domain := range domains {
		attempts = append(attempts, c.attemptsFor(domain)...)
	}

	type outcome struct {
		attempt attempt
		body    []byte
		err     error
	}

	// Buffered so losing attempts can always deliver and exit.
	results := make(chan outcome, len(attempts))
	for _, at := range attempts {
		go func(at attempt) {
			b, err := c.runAttempt(ctx, at, body, username, password)
			results <- outcome{attempt: at, body: b, err: err}
		}(at)
	}

	failures := make([]*AttemptError, 0, len(attempts))
	for range attempts {
		r := <-results
		if r.err == nil {
			c.logger.DebugContext(ctx, "autodiscover attempt won",
				"pattern", r.attempt.pattern, "url", r.attempt.url)
			return r.body, nil
		}
		c.logger.DebugContext(ctx, "autodiscover attempt failed",
			"pattern", r.attempt.pattern, "url", r.attempt.url, "error", r.err)
		failures = append(failures, &AttemptError{
			Pattern: r.attempt.pattern,
			URL:     r.attempt.url,
			Err:     r.err,
		})
	}
	return nil, &AllEndpointsFailedError{Attempts: failures}
}

// runAttempt executes one attempt. direct-post POSTs the request body
// straight at the URL; redirect-then-post first probes with a GET that
// must answer 302 Found, then POSTs at the redirect target.
func (c *Client) runAttempt(ctx context.Context, at attempt, body []byte, username, password string) ([]byte, error) {
	if at.pattern == patternRedirectThenPost {
		location, err := c.httpClient.RedirectLocation(ctx, at.url)
		if err != nil {
			return nil, err
		}
		return c.httpClient.Post(ctx, location, body, username, password)
	}
	return c.httpClient.Post(ctx, at.url, body, username, password)
}
