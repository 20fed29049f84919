// Package framework contains the low-level test runner infrastructure that the API test
// suites are built on, independent of which services are being tested.
//
// The general model is:
//
// 1. There is a notion of a test context which is similar to Go's *testing.T, allowing
// pieces of test logic to be associated with a test identifier and to accumulate
// success/failure results. Contexts can be nested with Run, and a failed leaf test can be
// re-executed from scratch a bounded number of times.
//
// 2. Each test carries a set of labels (epic, feature, story, severity, description and
// so on) that reporters use to organize results. Labels set on a parent are inherited by
// its subtests.
//
// 3. Progress is reported to a TestLogger as tests start and finish, and each test has a
// capturing debug logger whose output is kept with the result.
//
// The domain-specific code that knows what is being tested is responsible for providing a
// domain-specific test API on top of the test context.
package framework
