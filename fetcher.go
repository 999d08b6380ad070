package lectio

import "context"

// Fetcher retrieves HTML from URLs.
type Fetcher interface {
	// Fetch requests the URL and returns the response body.
	// Returns ENOTFOUND when the page does not exist and EUNAVAILABLE when
	// the upstream cannot be reached or answers with an error.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases resources.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}
