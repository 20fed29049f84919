package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/rajkumar-bhange/api-testing-demo/framework"

	"github.com/fatih/color"
)

var (
	failedColor  = color.New(color.FgRed, color.Bold)
	passedColor  = color.New(color.FgGreen)
	skippedColor = color.New(color.FgYellow)
)

type ConsoleTestLogger struct {
	Output               io.Writer
	DebugOutputOnFailure bool
	DebugOutputOnSuccess bool
}

func (c *ConsoleTestLogger) TestStarted(id framework.TestID) {
	fmt.Fprintf(c.Output, "[%s]\n", id)
}

func (c *ConsoleTestLogger) TestError(id framework.TestID, err error) {
	for _, line := range strings.Split(err.Error(), "\n") {
		fmt.Fprintf(c.Output, "  %s\n", line)
	}
}

func (c *ConsoleTestLogger) TestRetried(id framework.TestID, attempt int, debugOutput framework.CapturedOutput) {
	skippedColor.Fprintf(c.Output, "  RETRYING after attempt %d: %s\n", attempt, id)
	if len(debugOutput) > 0 && c.DebugOutputOnFailure {
		debugOutput.Dump(c.Output, "    DEBUG ")
	}
}

func (c *ConsoleTestLogger) TestFinished(id framework.TestID, failed bool, debugOutput framework.CapturedOutput) {
	if failed {
		failedColor.Fprintf(c.Output, "  FAILED: %s\n", id)
	}
	if len(debugOutput) > 0 &&
		((failed && c.DebugOutputOnFailure) || (!failed && c.DebugOutputOnSuccess)) {
		debugOutput.Dump(c.Output, "    DEBUG ")
	}
}

func (c *ConsoleTestLogger) TestSkipped(id framework.TestID, reason string) {
	if reason == "" {
		skippedColor.Fprintf(c.Output, "  SKIPPED: %s\n", id)
	} else {
		skippedColor.Fprintf(c.Output, "  SKIPPED: %s (%s)\n", id, reason)
	}
}

func printResults(output io.Writer, results framework.Results) {
	passed := results.Count(framework.StatusPassed)
	skipped := results.Count(framework.StatusSkipped)
	fmt.Fprintf(output, "Ran %d tests: ", len(results.Tests)-skipped)
	passedColor.Fprintf(output, "%d passed", passed)
	fmt.Fprint(output, ", ")
	if len(results.Failures) > 0 {
		failedColor.Fprintf(output, "%d failed", len(results.Failures))
	} else {
		fmt.Fprint(output, "0 failed")
	}
	if skipped > 0 {
		fmt.Fprint(output, ", ")
		skippedColor.Fprintf(output, "%d skipped", skipped)
	}
	fmt.Fprintln(output)

	if len(results.Failures) > 0 {
		fmt.Fprintln(output, "Failed tests:")
		for _, f := range results.Failures {
			fmt.Fprintf(output, "  %s\n", f.Failure())
		}
	}
}
