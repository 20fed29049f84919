package apitests

import (
	"fmt"
	"strings"
	"sync"

	"github.com/rajkumar-bhange/api-testing-demo/framework"

	"golang.org/x/sync/errgroup"
)

// Suite is a named group of tests against one service.
type Suite struct {
	// Name selects the suite on the command line, and is also the first element of the
	// ID of every test in it, so "-run jsonplaceholder/..." patterns use the same name.
	Name string

	Run func(*T)
}

// AllSuites lists every suite in the order their results are reported.
var AllSuites = []Suite{
	{Name: "jsonplaceholder", Run: DoJSONPlaceholderTests},
	{Name: "restcountries", Run: DoRestCountriesTests},
	{Name: "httpbin", Run: DoHTTPBinTests},
	{Name: "enhanced", Run: DoEnhancedTests},
}

// RunOptions controls how RunTestSuite executes suites.
type RunOptions struct {
	framework.RunOptions

	// Workers is the maximum number of suites that run at the same time. Zero runs all
	// of them at once.
	Workers int
}

var suiteFileSuffixes = []string{".api.spec.ts", "-api.spec.ts", ".spec.ts", ".go"}

// FindSuite looks up a suite by name. It also accepts the suite's file name, such as
// "jsonplaceholder.api.spec.ts", and ignores case.
func FindSuite(name string) (Suite, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, suffix := range suiteFileSuffixes {
		key = strings.TrimSuffix(key, suffix)
	}
	key = strings.TrimPrefix(key, "tests_")
	for _, s := range AllSuites {
		if s.Name == key {
			return s, nil
		}
	}
	return Suite{}, fmt.Errorf("unknown test suite %q", name)
}

// SuiteNames returns the names of all suites.
func SuiteNames() []string {
	ret := make([]string, 0, len(AllSuites))
	for _, s := range AllSuites {
		ret = append(ret, s.Name)
	}
	return ret
}

// RunTestSuite runs the specified suites, or all of them if suites is empty.
//
// Suites run concurrently, up to opts.Workers at a time. While more than one suite is
// running, each suite's test logger output is held back and written as one block when
// that suite finishes. Results are always returned in the order of suites.
func RunTestSuite(
	env Environment,
	suites []Suite,
	filter framework.Filter,
	testLogger framework.TestLogger,
	opts RunOptions,
) framework.Results {
	if len(suites) == 0 {
		suites = AllSuites
	}
	concurrent := len(suites) > 1 && opts.Workers != 1

	var g errgroup.Group
	if opts.Workers > 0 {
		g.SetLimit(opts.Workers)
	}
	var outputLock sync.Mutex
	suiteResults := make([]framework.Results, len(suites))
	for i, s := range suites {
		i, suite := i, s
		g.Go(func() error {
			var buffered *framework.BufferedTestLogger
			logger := testLogger
			if concurrent && testLogger != nil {
				buffered = &framework.BufferedTestLogger{}
				logger = buffered
			}
			suiteResults[i] = framework.Run(filter, logger, opts.RunOptions, func(c *framework.Context) {
				t := newTestScope(c, &env)
				t.Run(suite.Name, func(t *T) {
					t.context.Annotate(framework.LabelSuite, suite.Name)
					suite.Run(t)
				})
			})
			if buffered != nil {
				outputLock.Lock()
				buffered.Replay(testLogger)
				outputLock.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	var results framework.Results
	for _, r := range suiteResults {
		results.Append(r)
	}
	return results
}
