package framework

import (
	"errors"
	"fmt"
	"runtime/debug"
	"strings"
	"sync"
	"time"
)

type environment struct {
	results    Results
	testLogger TestLogger
	filter     Filter
	retries    int
}

// RunOptions controls how Run executes a test tree.
type RunOptions struct {
	// Retries is the number of times a failed test is re-executed from scratch before it
	// is reported as a failure. Tests that contain subtests are never re-executed.
	Retries int
}

// Context is similar to Go's *testing.T, but usable outside of the Go test runner.
type Context struct {
	env         *environment
	id          TestID
	debugLogger CapturingLogger
	labels      Labels
	start       time.Time
	attempts    int
	children    int
	failed      bool
	skipped     bool
	skipReason  string
	errors      []error
	lock        sync.Mutex
}

// Run executes a tree of tests, starting with the specified action as the root.
func Run(
	filter Filter,
	testLogger TestLogger,
	opts RunOptions,
	action func(*Context),
) Results {
	if testLogger == nil {
		testLogger = nullTestLogger{}
	}
	env := &environment{
		filter:     filter,
		testLogger: testLogger,
		retries:    opts.Retries,
	}
	c := &Context{env: env, start: time.Now(), attempts: 1}
	c.run(action)
	if c.failed {
		env.record(c)
	}
	return env.results
}

func (e *environment) record(c *Context) {
	result := TestResult{
		TestID:      c.id,
		Errors:      c.errors,
		Labels:      c.labels,
		Start:       c.start,
		Duration:    time.Since(c.start),
		Attempts:    c.attempts,
		SkipReason:  c.skipReason,
		DebugOutput: c.debugLogger.Output(),
	}
	switch {
	case c.failed:
		result.Status = StatusFailed
	case c.skipped:
		result.Status = StatusSkipped
	default:
		result.Status = StatusPassed
	}
	e.results.Tests = append(e.results.Tests, result)
	if c.failed {
		e.results.Failures = append(e.results.Failures, result)
	}
}

func (c *Context) run(action func(*Context)) {
	defer func() {
		if r := recover(); r != nil {
			if c.skipped {
				return
			}
			var addError error
			if _, ok := r.(*Context); ok {
				if len(c.errors) == 0 {
					addError = errors.New("test failed with no failure message")
				}
			} else {
				addError = fmt.Errorf("unexpected panic in test: %+v\n%s", r, string(debug.Stack()))
			}
			c.lock.Lock()
			c.failed = true
			if addError != nil {
				c.errors = append(c.errors, addError)
			}
			c.lock.Unlock()
			if addError != nil {
				c.env.testLogger.TestError(c.id, addError)
			}
		}
	}()

	action(c)
}

// Run runs a subtest. A failed subtest that has no subtests of its own is re-executed
// up to the configured number of retries, each time with a fresh Context.
func (c *Context) Run(name string, action func(*Context)) {
	id := TestID{Path: append(append([]string(nil), c.id.Path...), name)}
	c.children++

	c.env.testLogger.TestStarted(id)
	if c.env.filter != nil && !c.env.filter(id) {
		c.env.testLogger.TestSkipped(id, "excluded by filter parameters")
		return
	}

	var c1 *Context
	for attempt := 1; ; attempt++ {
		c1 = &Context{
			id:       id,
			env:      c.env,
			labels:   c.labels,
			start:    time.Now(),
			attempts: attempt,
		}
		c1.run(action)
		if !c1.failed || c1.children > 0 || attempt > c.env.retries {
			break
		}
		c.env.testLogger.TestRetried(id, attempt, c1.debugLogger.Output())
	}

	if c1.children == 0 || c1.failed {
		c.env.record(c1)
	}
	if c1.skipped {
		c.env.testLogger.TestSkipped(id, c1.skipReason)
	} else {
		c.env.testLogger.TestFinished(id, c1.failed, c1.debugLogger.Output())
	}
}

// Errorf records a failure without stopping the test. It is safe to call from other goroutines.
func (c *Context) Errorf(format string, args ...interface{}) {
	err := fmt.Errorf(format, args...)
	c.lock.Lock()
	c.failed = true
	c.errors = append(c.errors, err)
	c.lock.Unlock()
	c.env.testLogger.TestError(c.id, reformatError(err))
}

func (c *Context) FailNow() {
	panic(c)
}

func (c *Context) Skip() {
	c.skipped = true
	panic(c)
}

func (c *Context) SkipWithReason(reason string) {
	c.skipReason = reason
	c.Skip()
}

func (c *Context) Debug(message string, args ...interface{}) {
	c.debugLogger.Printf(message, args...)
}

func (c *Context) DebugLogger() Logger {
	return &c.debugLogger
}

// Annotate attaches descriptive metadata to this test. Subtests started afterward
// inherit it; setting the same name again replaces the value.
func (c *Context) Annotate(name, value string) {
	c.labels = c.labels.with(name, value)
}

// reformatError flattens testify's multi-line failure output so that it reads well
// when indented by a console logger.
func reformatError(err error) error {
	s := err.Error()
	if !strings.Contains(s, "Error Trace:") {
		return err
	}
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "Error Trace:") || strings.HasPrefix(line, "Test:") {
			continue
		}
		lines = append(lines, line)
	}
	return errors.New(strings.Join(lines, "\n"))
}
