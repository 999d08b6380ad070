package lectio

import (
	"context"
	"time"
)

// Ensure RetryFetcher implements Fetcher at compile time.
var _ Fetcher = (*RetryFetcher)(nil)

// BackoffDelays returns n delays starting at base and doubling each time.
func BackoffDelays(n int, base time.Duration) []time.Duration {
	delays := make([]time.Duration, n)
	for i := range delays {
		delays[i] = base << i
	}
	return delays
}

// RetryFetcher retries fetches that fail with EUNAVAILABLE. Other errors,
// including ENOTFOUND, are returned immediately. Backends never retry on
// their own; a RetryFetcher is opted into when wiring the transport.
type RetryFetcher struct {
	next   Fetcher
	delays []time.Duration

	// OnRetry, if set, is called before each retry.
	OnRetry func(url string, attempt int, err error)
}

// NewRetryFetcher wraps next. It makes one attempt plus one retry per delay.
func NewRetryFetcher(next Fetcher, delays []time.Duration) *RetryFetcher {
	return &RetryFetcher{next: next, delays: delays}
}

// Fetch delegates to the wrapped fetcher, backing off between attempts.
func (f *RetryFetcher) Fetch(ctx context.Context, url string) (string, error) {
	maxAttempts := len(f.delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		html, err := f.next.Fetch(ctx, url)
		if err == nil {
			return html, nil
		}
		if ErrorCode(err) != EUNAVAILABLE {
			return "", err
		}
		lastErr = err

		if attempt >= maxAttempts-1 {
			break
		}

		if f.OnRetry != nil {
			f.OnRetry(url, attempt+2, err)
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(f.delays[attempt]):
		}
	}

	return "", lastErr
}

// Close delegates to the wrapped fetcher.
func (f *RetryFetcher) Close() error {
	return f.next.Close()
}
