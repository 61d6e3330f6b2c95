package shell

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/alexraum/PropertyManager/eventstore"
)

const (
	defaultMaxAttempts  = 6
	defaultBaseDelay    = 10 * time.Millisecond
	defaultJitterFactor = 0.3
)

const (
	logMsgRetrying          = "retrying after concurrency conflict"
	logMsgMaxRetriesReached = "giving up after concurrency conflicts"
	logAttrOperation        = "operation"
	logAttrAttempt          = "attempt"
	logAttrDelayMS          = "delay_ms"
	logAttrErrorType        = "error_type"
)

var (
	// ErrNilLogger is returned when a nil logger is provided to WithRetryLogger.
	ErrNilLogger = errors.New("logger must not be nil")

	// ErrEmptyOperation is returned when an empty operation name is provided to WithRetryLogger.
	ErrEmptyOperation = errors.New("operation must not be empty")

	// ErrInvalidMaxAttempts is returned when max attempts are not positive.
	ErrInvalidMaxAttempts = errors.New("max attempts must be positive")

	// ErrNegativeBaseDelay is returned when the base delay is negative.
	ErrNegativeBaseDelay = errors.New("base delay must not be negative")

	// ErrInvalidJitterFactor is returned when the jitter factor is not between 0.0 and 1.0.
	ErrInvalidJitterFactor = errors.New("jitter factor must be between 0.0 and 1.0")
)

// RetryableFunc represents a function that can be retried.
type RetryableFunc func(ctx context.Context) error

// RetryMetadata describes how a retried call went.
type RetryMetadata struct {
	Attempts      int
	TotalDelay    time.Duration
	LastErrorType string
}

type retryConfig struct {
	maxAttempts  int
	baseDelay    time.Duration
	jitterFactor float64
	logger       Logger
	operation    string
}

// RetryWithExponentialBackoff runs fn and retries it while it fails with eventstore.ErrConcurrencyConflict.
//
// Retry schedule (default): 0 ms, 10 ms, 20 ms, 40 ms, 80 ms, 160 ms, each with up to 30% jitter.
// All other errors fail fast, including context errors.
func RetryWithExponentialBackoff(
	ctx context.Context,
	fn RetryableFunc,
	options ...RetryOption,
) (RetryMetadata, error) {

	config := &retryConfig{
		maxAttempts:  defaultMaxAttempts,
		baseDelay:    defaultBaseDelay,
		jitterFactor: defaultJitterFactor,
	}

	for _, option := range options {
		if err := option(config); err != nil {
			return RetryMetadata{}, err
		}
	}

	meta := RetryMetadata{LastErrorType: errorTypeOf(nil)}
	var lastErr error

	for attempt := 0; attempt < config.maxAttempts; attempt++ {
		if attempt > 0 {
			delay := config.baseDelay * time.Duration(1<<(attempt-1))
			jitter := rand.Float64() * float64(delay) * config.jitterFactor //nolint:gosec //math/rand is sufficient for jitter
			backoffDelay := delay + time.Duration(jitter)

			config.log(logMsgRetrying, attempt, backoffDelay, lastErr)

			select {
			case <-time.After(backoffDelay):
				meta.TotalDelay += backoffDelay
			case <-ctx.Done():
				meta.LastErrorType = errorTypeOf(ctx.Err())
				return meta, ctx.Err()
			}
		}

		meta.Attempts = attempt + 1

		lastErr = fn(ctx)
		meta.LastErrorType = errorTypeOf(lastErr)

		if lastErr == nil {
			return meta, nil
		}

		if !isRetryableError(lastErr) {
			return meta, lastErr
		}
	}

	if config.logger != nil {
		config.logger.Warn(
			logMsgMaxRetriesReached,
			logAttrOperation, config.operation,
			logAttrAttempt, meta.Attempts,
			logAttrErrorType, meta.LastErrorType,
		)
	}

	return meta, lastErr
}

func (c *retryConfig) log(msg string, attempt int, delay time.Duration, lastErr error) {
	if c.logger == nil {
		return
	}

	c.logger.Debug(
		msg,
		logAttrOperation, c.operation,
		logAttrAttempt, attempt+1,
		logAttrDelayMS, delay.Milliseconds(),
		logAttrErrorType, errorTypeOf(lastErr),
	)
}

// isRetryableError reports whether err should be retried. Only concurrency conflicts are.
// Timeouts are not: retrying them under overload makes it worse.
func isRetryableError(err error) bool {
	return errors.Is(err, eventstore.ErrConcurrencyConflict)
}

func errorTypeOf(err error) string {
	switch {
	case err == nil:
		return "none"
	case errors.Is(err, eventstore.ErrConcurrencyConflict):
		return "concurrency_conflict"
	case errors.Is(err, context.Canceled):
		return "context_canceled"
	case errors.Is(err, context.DeadlineExceeded):
		return "context_deadline_exceeded"
	default:
		return "other"
	}
}

// RetryOption configures retry behavior using the functional options pattern.
type RetryOption func(*retryConfig) error

// WithMaxAttempts sets the maximum number of attempts, the first one included.
func WithMaxAttempts(attempts int) RetryOption {
	return func(config *retryConfig) error {
		if attempts <= 0 {
			return ErrInvalidMaxAttempts
		}

		config.maxAttempts = attempts

		return nil
	}
}

// WithBaseDelay sets the base delay for exponential backoff.
// Actual delays: baseDelay, baseDelay*2, baseDelay*4, baseDelay*8, etc.
func WithBaseDelay(delay time.Duration) RetryOption {
	return func(config *retryConfig) error {
		if delay < 0 {
			return ErrNegativeBaseDelay
		}

		config.baseDelay = delay

		return nil
	}
}

// WithJitterFactor sets the jitter as a fraction of the backoff delay, from 0.0 to 1.0.
func WithJitterFactor(factor float64) RetryOption {
	return func(config *retryConfig) error {
		if factor < 0.0 || factor > 1.0 {
			return ErrInvalidJitterFactor
		}

		config.jitterFactor = factor

		return nil
	}
}

// WithRetryLogger logs each retry at Debug and retry exhaustion at Warn, labeled with operation.
func WithRetryLogger(logger Logger, operation string) RetryOption {
	return func(config *retryConfig) error {
		if logger == nil {
			return ErrNilLogger
		}

		if operation == "" {
			return ErrEmptyOperation
		}

		config.logger = logger
		config.operation = operation

		return nil
	}
}
