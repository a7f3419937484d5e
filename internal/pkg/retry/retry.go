package retry

import (
	"context"
	"time"

	"github.com/avast/retry-go/v4"
)

type RetryConfig struct {
	Attempts uint          `env:"ATTEMPTS" envDefault:"3"`
	Delay    time.Duration `env:"DELAY" envDefault:"100ms"`
	MaxDelay time.Duration `env:"MAX_DELAY" envDefault:"2s"`
	// Timeout bounds a single attempt; zero leaves it to the caller's context
	Timeout time.Duration `env:"TIMEOUT" envDefault:"0s"`
}

func (rc *RetryConfig) ToRetryOptions() []retry.Option {
	attempts := rc.Attempts
	if attempts == 0 {
		attempts = 1
	}
	return []retry.Option{
		retry.Attempts(attempts),
		retry.MaxDelay(rc.MaxDelay),
		retry.Delay(rc.Delay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
	}
}

// Do runs fn until it succeeds, retryable reports false, attempts run out or ctx is done.
// onRetry may be nil.
func Do[T any](
	ctx context.Context,
	rc *RetryConfig,
	retryable func(error) bool,
	onRetry func(attempt uint, err error),
	fn func(ctx context.Context) (T, error),
) (T, error) {
	opts := append(rc.ToRetryOptions(),
		retry.Context(ctx),
		retry.RetryIf(retryable),
	)
	if onRetry != nil {
		opts = append(opts, retry.OnRetry(onRetry))
	}

	return retry.DoWithData(func() (T, error) {
		if rc.Timeout <= 0 {
			return fn(ctx)
		}
		attemptCtx, cancel := context.WithTimeout(ctx, rc.Timeout)
		defer cancel()
		return fn(attemptCtx)
	}, opts...)
}
