package client

import (
	"context"
	"fmt"
	"strings"
	"time"
)

const (
	// DefaultMaxRetries is the default number of retry attempts
	DefaultMaxRetries = 3
	// BaseDelay is the base delay for exponential backoff (500ms)
	BaseDelay = 500 * time.Millisecond
	// MaxDelay is the maximum delay between retries (30s)
	MaxDelay = 30 * time.Second
)

// RetryConfig holds retry configuration
type RetryConfig struct {
	MaxRetries int64
	BaseDelay  time.Duration
	MaxDelay   time.Duration
}

// DefaultRetryConfig returns default retry configuration
func DefaultRetryConfig() *RetryConfig {
	return &RetryConfig{
		MaxRetries: DefaultMaxRetries,
		BaseDelay:  BaseDelay,
		MaxDelay:   MaxDelay,
	}
}

// RetryableOperation is a function that can be retried
type RetryableOperation func() error

// IsRetryable determines if an error should trigger a retry.
// Only transient control-plane conditions qualify: throttling, 5xx server
// errors, and network failures. Validation errors, conflicts (name
// collisions), and quota rejections are fatal and surfaced verbatim.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	errorMsg := strings.ToLower(err.Error())

	// Retry on throttling (429 Too Many Requests)
	if strings.Contains(errorMsg, "http 429") ||
		strings.Contains(errorMsg, "too many requests") ||
		strings.Contains(errorMsg, "throttled") {
		return true
	}

	// Retry on server errors (5xx)
	if strings.Contains(errorMsg, "http 500") ||
		strings.Contains(errorMsg, "http 502") ||
		strings.Contains(errorMsg, "http 503") ||
		strings.Contains(errorMsg, "http 504") ||
		strings.Contains(errorMsg, "service unavailable") ||
		strings.Contains(errorMsg, "internal server error") {
		return true
	}

	// Retry on network errors
	if strings.Contains(errorMsg, "connection refused") ||
		strings.Contains(errorMsg, "connection reset") ||
		strings.Contains(errorMsg, "timeout") ||
		strings.Contains(errorMsg, "no such host") {
		return true
	}

	// Default: don't retry unless explicitly retryable
	return false
}

// RetryWithBackoff executes an operation with exponential backoff retry logic
func RetryWithBackoff(ctx context.Context, config *RetryConfig, operation RetryableOperation) error {
	if config == nil {
		config = DefaultRetryConfig()
	}

	var lastErr error

	for attempt := int64(0); attempt <= config.MaxRetries; attempt++ {
		err := operation()
		if err == nil {
			return nil
		}

		lastErr = err

		if !IsRetryable(err) {
			return err
		}

		// Don't sleep on last attempt
		if attempt == config.MaxRetries {
			break
		}

		delay := config.BaseDelay * time.Duration(1<<attempt)
		if delay > config.MaxDelay {
			delay = config.MaxDelay
		}

		select {
		case <-time.After(delay):
			// Continue to next attempt
		case <-ctx.Done():
			return fmt.Errorf("retry cancelled: %w", ctx.Err())
		}
	}

	return fmt.Errorf("max retries (%d) exceeded: %w", config.MaxRetries, lastErr)
}
