package framework

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingTestLogger struct {
	started  []string
	retried  []string
	finished []string
	skipped  []string
}

func (r *recordingTestLogger) TestStarted(id TestID)   { r.started = append(r.started, id.String()) }
func (r *recordingTestLogger) TestError(TestID, error) {}
func (r *recordingTestLogger) TestRetried(id TestID, attempt int, _ CapturedOutput) {
	r.retried = append(r.retried, id.String())
}
func (r *recordingTestLogger) TestFinished(id TestID, failed bool, _ CapturedOutput) {
	r.finished = append(r.finished, id.String())
}
func (r *recordingTestLogger) TestSkipped(id TestID, reason string) {
	r.skipped = append(r.skipped, id.String())
}

func findResult(t *testing.T, results Results, id string) TestResult {
	for _, r := range results.Tests {
		if r.TestID.String() == id {
			return r
		}
	}
	require.Fail(t, "result not found", "no result for %q", id)
	return TestResult{}
}

func TestRunRecordsLeafResults(t *testing.T) {
	results := Run(nil, nil, RunOptions{}, func(c *Context) {
		c.Run("suite", func(c *Context) {
			c.Run("passes", func(c *Context) {})
			c.Run("fails", func(c *Context) {
				c.Errorf("bad thing %d", 1)
			})
		})
	})

	assert.Len(t, results.Tests, 2)
	assert.Len(t, results.Failures, 1)
	assert.False(t, results.OK())
	assert.Equal(t, StatusPassed, findResult(t, results, "suite/passes").Status)

	failed := findResult(t, results, "suite/fails")
	assert.Equal(t, StatusFailed, failed.Status)
	require.Len(t, failed.Errors, 1)
	assert.Equal(t, "bad thing 1", failed.Errors[0].Error())
}

func TestFailNowStopsTest(t *testing.T) {
	reachedEnd := false
	results := Run(nil, nil, RunOptions{}, func(c *Context) {
		c.Run("stops", func(c *Context) {
			require.NoError(c, errors.New("sorry"))
			reachedEnd = true
		})
	})

	assert.False(t, reachedEnd)
	assert.Equal(t, StatusFailed, findResult(t, results, "stops").Status)
}

func TestPanicIsReportedAsFailure(t *testing.T) {
	results := Run(nil, nil, RunOptions{}, func(c *Context) {
		c.Run("panics", func(c *Context) {
			panic("oops")
		})
	})

	r := findResult(t, results, "panics")
	assert.Equal(t, StatusFailed, r.Status)
	require.Len(t, r.Errors, 1)
	assert.Contains(t, r.Errors[0].Error(), "unexpected panic in test: oops")
}

func TestSkipIsRecordedAsSkipped(t *testing.T) {
	logger := &recordingTestLogger{}
	results := Run(nil, logger, RunOptions{}, func(c *Context) {
		c.Run("skipped", func(c *Context) {
			c.SkipWithReason("not today")
		})
	})

	r := findResult(t, results, "skipped")
	assert.Equal(t, StatusSkipped, r.Status)
	assert.Equal(t, "not today", r.SkipReason)
	assert.True(t, results.OK())
	assert.Equal(t, []string{"skipped"}, logger.skipped)
}

func TestFailedTestIsRetriedFromScratch(t *testing.T) {
	logger := &recordingTestLogger{}
	calls := 0
	results := Run(nil, logger, RunOptions{Retries: 2}, func(c *Context) {
		c.Run("flaky", func(c *Context) {
			calls++
			c.Debug("attempt %d", calls)
			if calls < 2 {
				c.Errorf("failed on attempt %d", calls)
			}
		})
	})

	assert.Equal(t, 2, calls)
	assert.True(t, results.OK())
	r := findResult(t, results, "flaky")
	assert.Equal(t, StatusPassed, r.Status)
	assert.Equal(t, 2, r.Attempts)
	assert.Empty(t, r.Errors)
	require.Len(t, r.DebugOutput, 1)
	assert.Equal(t, "attempt 2", r.DebugOutput[0].Message)
	assert.Equal(t, []string{"flaky"}, logger.retried)
}

func TestRetriesAreBounded(t *testing.T) {
	calls := 0
	results := Run(nil, nil, RunOptions{Retries: 2}, func(c *Context) {
		c.Run("always fails", func(c *Context) {
			calls++
			c.Errorf("no")
		})
	})

	assert.Equal(t, 3, calls)
	r := findResult(t, results, "always fails")
	assert.Equal(t, StatusFailed, r.Status)
	assert.Equal(t, 3, r.Attempts)
}

func TestGroupsAreNotRetried(t *testing.T) {
	groupCalls := 0
	Run(nil, nil, RunOptions{Retries: 3}, func(c *Context) {
		c.Run("group", func(c *Context) {
			groupCalls++
			c.Run("child", func(c *Context) {
				c.Errorf("no")
			})
		})
	})

	assert.Equal(t, 1, groupCalls)
}

func TestLabelsAreInherited(t *testing.T) {
	results := Run(nil, nil, RunOptions{}, func(c *Context) {
		c.Run("suite", func(c *Context) {
			c.Annotate(LabelEpic, "Some API")
			c.Annotate(LabelSeverity, "normal")
			c.Run("test", func(c *Context) {
				c.Annotate(LabelSeverity, "critical")
			})
		})
	})

	r := findResult(t, results, "suite/test")
	assert.Equal(t, "Some API", r.Labels.Get(LabelEpic))
	assert.Equal(t, "critical", r.Labels.Get(LabelSeverity))
	assert.Equal(t, "", r.Labels.Get(LabelStory))
}

func TestFilterExcludesTests(t *testing.T) {
	var filters RegexFilters
	require.NoError(t, filters.MustMatch.Set("suite/^b$"))
	logger := &recordingTestLogger{}
	ran := map[string]bool{}

	Run(filters.AsFilter, logger, RunOptions{}, func(c *Context) {
		c.Run("suite", func(c *Context) {
			c.Run("a", func(c *Context) { ran["a"] = true })
			c.Run("b", func(c *Context) { ran["b"] = true })
		})
	})

	assert.Equal(t, map[string]bool{"b": true}, ran)
	assert.Equal(t, []string{"suite/a"}, logger.skipped)
}
