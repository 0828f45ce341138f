// Package httputil provides shared retry infrastructure for operations
// against external services that can be transiently unavailable.
//
// [Retry] wraps an operation with automatic retry for transient failures,
// using exponential backoff:
//
//	err := httputil.RetryWithBackoff(ctx, func() error {
//	    if err := client.Ping(ctx).Err(); err != nil {
//	        return &httputil.RetryableError{Err: err}
//	    }
//	    return nil
//	})
//
// Only errors wrapped in [RetryableError] trigger a retry; any other
// error returns immediately.
package httputil
