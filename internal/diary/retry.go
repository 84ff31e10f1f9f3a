package diary

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v5"
)

// RetryOptions configures RetryFetcher.
type RetryOptions struct {
	MaxAttempts     int
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

// RetryFetcher retries transient failures of the wrapped Fetcher:
// transport errors, 5xx and 429. Other statuses are returned on first sight.
type RetryFetcher struct {
	next Fetcher
	opts RetryOptions
}

// NewRetryFetcher wraps next. MaxAttempts counts the first attempt too.
func NewRetryFetcher(next Fetcher, opts RetryOptions) *RetryFetcher {
	if next == nil {
		panic("diary: retry fetcher needs a fetcher")
	}
	if opts.MaxAttempts < 1 {
		opts.MaxAttempts = 1
	}
	if opts.InitialInterval <= 0 {
		opts.InitialInterval = 500 * time.Millisecond
	}
	if opts.MaxInterval < opts.InitialInterval {
		opts.MaxInterval = opts.InitialInterval
	}
	return &RetryFetcher{next: next, opts: opts}
}

// Fetch implements Fetcher.
func (r *RetryFetcher) Fetch(ctx context.Context, url string) (*Response, error) {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = r.opts.InitialInterval
	b.MaxInterval = r.opts.MaxInterval

	operation := func() (*Response, error) {
		resp, err := r.next.Fetch(ctx, url)
		if err != nil {
			if ctx.Err() != nil {
				return nil, backoff.Permanent(err)
			}
			return nil, err
		}
		if fetchErr := (&FetchError{Status: resp.Status, URL: url}); fetchErr.Transient() {
			return nil, fetchErr
		}
		return resp, nil
	}

	resp, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(b),
		backoff.WithMaxTries(uint(r.opts.MaxAttempts)),
		backoff.WithNotify(func(err error, wait time.Duration) {
			slog.Warn("[Fetcher] Transient failure, retrying",
				"url", url,
				"error", err,
				"wait", wait,
			)
		}),
	)
	if err != nil {
		// Retries exhausted on a status: hand it back as a response so the
		// caller sees the same contract as an unwrapped Fetcher.
		var fetchErr *FetchError
		if errors.As(err, &fetchErr) {
			return &Response{Status: fetchErr.Status}, nil
		}
		return nil, err
	}
	return resp, nil
}
