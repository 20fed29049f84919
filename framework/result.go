package framework

import (
	"fmt"
	"strings"
	"time"
)

// Status is the final outcome of a single test.
type Status string

const (
	StatusPassed  Status = "passed"
	StatusFailed  Status = "failed"
	StatusSkipped Status = "skipped"
)

type Results struct {
	Tests    []TestResult
	Failures []TestResult
}

type TestResult struct {
	TestID      TestID
	Errors      []error
	Status      Status
	SkipReason  string
	Labels      Labels
	Start       time.Time
	Duration    time.Duration
	Attempts    int
	DebugOutput CapturedOutput
}

func (r Results) OK() bool {
	return len(r.Failures) == 0
}

// Append adds the tests and failures of other to r.
func (r *Results) Append(other Results) {
	r.Tests = append(r.Tests, other.Tests...)
	r.Failures = append(r.Failures, other.Failures...)
}

// Count returns the number of results with the given status.
func (r Results) Count(status Status) int {
	n := 0
	for _, t := range r.Tests {
		if t.Status == status {
			n++
		}
	}
	return n
}

type TestID struct {
	Path []string
}

func (t TestID) String() string {
	return strings.Join(t.Path, "/")
}

// Suite returns the top-level component of the test path.
func (t TestID) Suite() string {
	if len(t.Path) == 0 {
		return ""
	}
	return t.Path[0]
}

// Name returns the last component of the test path.
func (t TestID) Name() string {
	if len(t.Path) == 0 {
		return ""
	}
	return t.Path[len(t.Path)-1]
}

// Failure describes a failed result by its test ID and first error.
func (r TestResult) Failure() TestFailure {
	f := TestFailure{ID: r.TestID, Attempts: r.Attempts}
	if len(r.Errors) > 0 {
		f.Err = r.Errors[0]
	}
	return f
}

type TestFailure struct {
	ID       TestID
	Err      error
	Attempts int
}

// Error returns a one-line summary; only the first line of Err is included.
func (f TestFailure) Error() string {
	message := "test failed with no failure message"
	if f.Err != nil {
		message = strings.SplitN(f.Err.Error(), "\n", 2)[0]
	}
	s := fmt.Sprintf("%s: %s", f.ID, message)
	if f.Attempts > 1 {
		s += fmt.Sprintf(" (%d attempts)", f.Attempts)
	}
	return s
}

func (f TestFailure) Unwrap() error {
	return f.Err
}
