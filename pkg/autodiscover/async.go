package autodiscover

import "context"

// Outcome is the terminal state of an asynchronous discovery. Exactly
// one of Result and Err is populated.
type Outcome struct {
	Result *Result
	Err    error
}

// DiscoverAsync runs Discover in its own goroutine and delivers exactly
// one Outcome on the returned channel, which is then closed. It is a
// thin adapter over Discover; error semantics are identical.
func (c *Client) DiscoverAsync(ctx context.Context, req Request) <-chan Outcome {
	out := make(chan Outcome, 1)
	go func() {
		result, err := c.Discover(ctx, req)
		out <- Outcome{Result: result, Err: err}
		close(out)
	}()
	return out
}

// DiscoverCallback runs Discover in its own goroutine and invokes
// callback once with an error-first signature: on failure the error is
// non-nil and the result nil, on success the reverse.
func (c *Client) DiscoverCallback(ctx context.Context, req Request, callback func(error, *Result)) {
	go func() {
		result, err := c.Discover(ctx, req)
		if err != nil {
			callback(err, nil)
			return
		}
		callback(nil, result)
	}()
}
