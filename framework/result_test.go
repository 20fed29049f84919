package framework

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResultFailure(t *testing.T) {
	cause := errors.New("status code: expected 200 but got 500\nError Trace: somewhere")
	r := TestResult{
		TestID:   TestID{Path: []string{"httpbin", "status codes"}},
		Errors:   []error{cause, errors.New("second")},
		Attempts: 3,
	}

	f := r.Failure()

	assert.Equal(t, "httpbin/status codes: status code: expected 200 but got 500 (3 attempts)", f.Error())
	assert.True(t, errors.Is(f, cause))
}

func TestResultFailureWithoutErrors(t *testing.T) {
	r := TestResult{TestID: TestID{Path: []string{"a", "b"}}, Attempts: 1}

	assert.Equal(t, "a/b: test failed with no failure message", r.Failure().Error())
}

func TestResultsAppend(t *testing.T) {
	failed := TestResult{TestID: TestID{Path: []string{"b", "x"}}, Status: StatusFailed}
	r := Results{Tests: []TestResult{{TestID: TestID{Path: []string{"a", "x"}}, Status: StatusPassed}}}

	r.Append(Results{Tests: []TestResult{failed}, Failures: []TestResult{failed}})

	assert.Len(t, r.Tests, 2)
	assert.Equal(t, "b/x", r.Tests[1].TestID.String())
	assert.Equal(t, []TestResult{failed}, r.Failures)
	assert.Equal(t, 1, r.Count(StatusPassed))
}
