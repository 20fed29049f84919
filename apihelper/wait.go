package apihelper

import (
	"time"
)

const (
	DefaultPollTimeout = 5000 * time.Millisecond
	PollInterval       = 100 * time.Millisecond
	DefaultMaxRetries  = 3
	BaseBackoff        = 1000 * time.Millisecond
)

// WaitForCondition calls condition every PollInterval until it returns true, using the
// Helper's clock. See the package-level WaitForCondition.
func (h *Helper) WaitForCondition(condition func() (bool, error), timeout time.Duration) error {
	return WaitForCondition(h.clock, condition, timeout)
}

// RetryRequest calls op until it succeeds or maxRetries attempts have been made, sleeping
// with exponential backoff between attempts. See Retry.
func (h *Helper) RetryRequest(op func() (Response, error), maxRetries int) (Response, error) {
	attempt := 0
	return Retry(h.clock, func() (Response, error) {
		attempt++
		resp, err := op()
		if err != nil {
			h.logger.Printf("Request attempt %d failed: %s", attempt, err)
		}
		return resp, err
	}, maxRetries)
}

// WaitForCondition evaluates condition, and if it is false sleeps for PollInterval and
// tries again, until it returns true or the time since the first evaluation reaches
// timeout. A timeout of zero means DefaultPollTimeout.
//
// Evaluations never overlap. If condition returns an error, polling stops and that error
// is returned as is; otherwise running out of time produces a *TimeoutError.
func WaitForCondition(clock Clock, condition func() (bool, error), timeout time.Duration) error {
	if timeout <= 0 {
		timeout = DefaultPollTimeout
	}
	start := clock.Now()
	for clock.Now().Sub(start) < timeout {
		ok, err := condition()
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
		clock.Sleep(PollInterval)
	}
	return &TimeoutError{Timeout: timeout}
}

// Retry makes exactly maxRetries attempts at op at most, stopping at the first success.
// Between attempt i and attempt i+1 (counting from zero) it sleeps for BackoffDelay(i);
// there is no delay after the last attempt. If every attempt fails, the error from the
// last attempt is returned unchanged. A maxRetries of zero means DefaultMaxRetries.
func Retry[R any](clock Clock, op func() (R, error), maxRetries int) (R, error) {
	if maxRetries <= 0 {
		maxRetries = DefaultMaxRetries
	}
	var lastErr error
	for i := 0; i < maxRetries; i++ {
		result, err := op()
		if err == nil {
			return result, nil
		}
		lastErr = err
		if i < maxRetries-1 {
			clock.Sleep(BackoffDelay(i))
		}
	}
	var zero R
	return zero, lastErr
}

// BackoffDelay returns the delay that follows failed attempt i: 1s, 2s, 4s and so on.
func BackoffDelay(i int) time.Duration {
	return BaseBackoff * time.Duration(1<<uint(i))
}
