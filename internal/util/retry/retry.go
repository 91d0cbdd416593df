package retry

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrExhausted is returned when the condition did not hold within the
// allowed attempts.
var ErrExhausted = errors.New("condition not met")

// Config holds polling configuration.
type Config struct {
	Interval    time.Duration
	MaxAttempts int
	Timeout     time.Duration
	// OnAttempt is called after every evaluation that did not finish polling.
	OnAttempt func(attempt int, err error)
}

// Option is a functional option for poll configuration.
type Option func(*Config)

// Check reports whether the awaited condition holds. A non-nil error is
// treated as transient unless wrapped with Fatal.
type Check func(ctx context.Context) (bool, error)

// Poll evaluates check until it returns true, a fatal error occurs, the
// attempts are used up or ctx is done. The first evaluation is immediate.
func Poll(ctx context.Context, check Check, opts ...Option) error {
	cfg := &Config{
		Interval:    2 * time.Second,
		MaxAttempts: 300,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	ticker := time.NewTicker(cfg.Interval)
	defer ticker.Stop()

	var lastErr error
	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		done, err := check(ctx)
		if err == nil && done {
			return nil
		}
		if IsFatal(err) {
			return fmt.Errorf("fatal error (not polling): %w", err)
		}
		if err != nil {
			lastErr = err
		}
		if cfg.OnAttempt != nil {
			cfg.OnAttempt(attempt, err)
		}

		if attempt == cfg.MaxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("stopped polling after %d attempts: %w", attempt, ctx.Err())
		case <-ticker.C:
		}
	}

	if lastErr != nil {
		return fmt.Errorf("%w after %d attempts: %w", ErrExhausted, cfg.MaxAttempts, lastErr)
	}
	return fmt.Errorf("%w after %d attempts", ErrExhausted, cfg.MaxAttempts)
}

// WithInterval sets the delay between evaluations.
func WithInterval(d time.Duration) Option {
	return func(c *Config) {
		c.Interval = d
	}
}

// WithMaxAttempts sets the maximum number of evaluations.
func WithMaxAttempts(n int) Option {
	return func(c *Config) {
		if n > 0 {
			c.MaxAttempts = n
		}
	}
}

// WithTimeout bounds the whole poll.
func WithTimeout(d time.Duration) Option {
	return func(c *Config) {
		c.Timeout = d
	}
}

// WithOnAttempt registers a callback invoked after each unfinished attempt.
func WithOnAttempt(fn func(attempt int, err error)) Option {
	return func(c *Config) {
		c.OnAttempt = fn
	}
}

// FatalError wraps an error to mark it as fatal.
type FatalError struct {
	Err error
}

func (e *FatalError) Error() string {
	return e.Err.Error()
}

func (e *FatalError) Unwrap() error {
	return e.Err
}

// Fatal marks an error as fatal. Poll returns immediately on fatal errors.
func Fatal(err error) error {
	if err == nil {
		return nil
	}
	return &FatalError{Err: err}
}

// IsFatal checks if an error is fatal.
func IsFatal(err error) bool {
	var fatalErr *FatalError
	return errors.As(err, &fatalErr)
}
