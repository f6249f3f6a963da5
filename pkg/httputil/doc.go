// Package httputil provides retry helpers for registry clients.
//
// [Retry] re-runs an operation while it keeps failing with a
// [RetryableError], waiting between attempts with exponential backoff:
//
//	err := httputil.Retry(ctx, httputil.Policy{Attempts: 5, Delay: 200 * time.Millisecond}, func() error {
//	    return fetch()
//	})
//
// Registry clients wrap network failures and 5xx responses in
// [RetryableError]; 404s and other client errors fail immediately.
package httputil
