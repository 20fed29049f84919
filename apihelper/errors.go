package apihelper

import (
	"errors"
	"fmt"
	"time"
)

// ErrUnknownEntityType is returned by CreateTestData and ParseEntityType for an entity
// type that has no fixture.
var ErrUnknownEntityType = errors.New("unknown entity type")

// AssertionError means a response did not meet an expectation. It is never retried.
type AssertionError struct {
	Check    string
	Expected interface{}
	Actual   interface{}
}

func (e *AssertionError) Error() string {
	return fmt.Sprintf("%s: expected %v but got %v", e.Check, e.Expected, e.Actual)
}

// TimeoutError is returned by WaitForCondition when the condition never became true.
type TimeoutError struct {
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("condition not met within %dms", e.Timeout.Milliseconds())
}

// MalformedBodyError means a response that claimed to be JSON could not be parsed.
type MalformedBodyError struct {
	Body []byte
	Err  error
}

func (e *MalformedBodyError) Error() string {
	return fmt.Sprintf("malformed JSON response body: %s: %s", e.Err, truncate(string(e.Body), 200))
}

func (e *MalformedBodyError) Unwrap() error {
	return e.Err
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
