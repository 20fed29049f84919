package main

import (
	"flag"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/rajkumar-bhange/api-testing-demo/apitests"
	"github.com/rajkumar-bhange/api-testing-demo/framework"

	"github.com/alessio/shellescape"
)

const (
	commandRun   = ""
	commandDebug = "debug"
	commandUI    = "ui"
	commandSuite = "suite"
	commandHelp  = "help"

	defaultUIPort = 9323
)

type commandParams struct {
	command   string
	suiteName string
	filters   framework.RegexFilters
	transport string
	retries   int
	workers   int
	noOpen    bool
	uiPort    int
	debug     bool
	debugAll  bool
}

// Read parses the command line, not including the program name. It returns false if the
// program should exit without running any tests; output explains why.
func (c *commandParams) Read(args []string, output io.Writer) bool {
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		c.command = args[0]
		args = args[1:]
	}

	switch c.command {
	case commandRun, commandDebug, commandUI:
	case commandSuite:
		if len(args) == 0 || strings.HasPrefix(args[0], "-") {
			fmt.Fprintln(output, "Please specify a test suite name")
			return false
		}
		c.suiteName = args[0]
		args = args[1:]
	case commandHelp:
		printHelp(output)
		return false
	default:
		fmt.Fprintln(output, `Unknown command. Use "help" to see available commands.`)
		return false
	}

	fs := flag.NewFlagSet(c.command, flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Var(&c.filters.MustMatch, "run", "regex pattern(s) to select tests to run")
	fs.Var(&c.filters.MustNotMatch, "skip", "regex pattern(s) to select tests not to run")
	fs.StringVar(&c.transport, "transport", "", "request transport: http or playwright (default from API_TRANSPORT)")
	fs.IntVar(&c.retries, "retries", -1, "times to retry a failed test (default from TEST_RETRIES or CI)")
	fs.IntVar(&c.workers, "workers", -1, "suites to run at once, 0 for all (default from TEST_WORKERS or CI)")
	fs.BoolVar(&c.noOpen, "no-open", false, "do not open the report in a browser")
	fs.IntVar(&c.uiPort, "port", defaultUIPort, "port for the report UI server")
	fs.BoolVar(&c.debug, "debug", false, "enable debug logging for failed tests")
	fs.BoolVar(&c.debugAll, "debug-all", false, "enable debug logging for all tests")

	if err := fs.Parse(args); err != nil {
		return false
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(output, "Unexpected arguments: %s\n", strings.Join(fs.Args(), " "))
		fs.Usage()
		return false
	}
	if c.command == commandDebug {
		c.debugAll = true
		c.retries = 0
		c.workers = 1
		c.noOpen = true
	}
	return true
}

func printHelp(output io.Writer) {
	fmt.Fprint(output, `
Available commands:
  apitests                - Run all tests and generate report
  apitests debug          - Run tests one suite at a time, with debug output and no retries
  apitests ui             - Run tests, then serve the report until interrupted
  apitests suite <name>   - Run specific test suite
  apitests help           - Show this help message

Options (after the command):
  -run <regex>            - Only run tests matching the pattern
  -skip <regex>           - Skip tests matching the pattern
  -transport <name>       - http or playwright
  -retries <n>            - Times to retry a failed test
  -workers <n>            - Suites to run at once, 0 for all
  -no-open                - Do not open the report in a browser
  -port <n>               - Port for the report UI server
  -debug, -debug-all      - Show debug output for failed tests, or all tests

Available test suites:
  `+strings.Join(apitests.SuiteNames(), "\n  ")+"\n\n")
}

// rerunCommand builds a shell command line that runs only the given failed tests.
func rerunCommand(program string, params commandParams, failures []framework.TestResult) string {
	var b commandBuilder
	b.add(program)
	if params.command != commandRun {
		b.add(params.command)
	}
	if params.command == commandSuite {
		b.add(params.suiteName)
	}
	if params.transport != "" {
		b.add("-transport", params.transport)
	}
	for _, f := range failures {
		b.add("-run", exactPattern(f.TestID))
	}
	return b.String()
}

func exactPattern(id framework.TestID) string {
	parts := make([]string, 0, len(id.Path))
	for _, p := range id.Path {
		parts = append(parts, "^"+regexp.QuoteMeta(p)+"$")
	}
	return strings.Join(parts, "/")
}

type commandBuilder []string

func (b *commandBuilder) add(args ...string) {
	for _, a := range args {
		*b = append(*b, shellescape.Quote(a))
	}
}

func (b commandBuilder) String() string {
	return strings.Join(b, " ")
}
