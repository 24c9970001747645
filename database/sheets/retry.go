package sheets

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const (
	retryInitialInterval = 3 * time.Second
	retryMaxInterval     = 9 * time.Second
)

// withRetry runs op until it succeeds, retrying transient failures with
// exponential backoff (3s initial, capped at 9s) for as long as the context
// allows. There is no attempt limit: reads are naturally retryable and writes
// re-check the target row, so callers needing a hard bound must impose their
// own context deadline. ErrSheetNotFound is never retried.
func withRetry(ctx context.Context, op func() error) error {
	wrapped := func() error {
		err := op()
		if errors.Is(err, ErrSheetNotFound) {
			return backoff.Permanent(err)
		}
		return err
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = retryInitialInterval
	b.MaxInterval = retryMaxInterval
	b.MaxElapsedTime = 0

	return backoff.Retry(wrapped, backoff.WithContext(b, ctx))
}
