package apitests

import (
	"strings"
	"time"

	"github.com/rajkumar-bhange/api-testing-demo/apihelper"
	"github.com/rajkumar-bhange/api-testing-demo/framework"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/stretchr/testify/require"
)

// Environment describes the services under test and how to reach them.
type Environment struct {
	// Transport carries every request. It is shared by all tests.
	Transport apihelper.Transport

	// Clock is optional; if nil, the real clock is used.
	Clock apihelper.Clock

	JSONPlaceholderURL string
	RestCountriesURL   string
	HTTPBinURL         string
}

// T represents a test or subtest in our API test suites.
//
// It implements the same basic functionality as Go's testing.T, but in an environment that is
// outside of the Go test runner. Those features are provided by our lower-level framework
// package.
//
// Every T has its own apihelper.Helper, whose request log goes to the test's debug output. To
// make test assertions, you can use the assert and require packages, passing the *T as if it
// were a *testing.T. The Require methods wrap the helper's validators so that a validation
// failure ends the test immediately.
type T struct {
	context *framework.Context
	env     *Environment
	api     *apihelper.Helper
}

func newTestScope(context *framework.Context, env *Environment) *T {
	opts := []apihelper.Option{apihelper.WithLogger(context.DebugLogger())}
	if env.Clock != nil {
		opts = append(opts, apihelper.WithClock(env.Clock))
	}
	return &T{
		context: context,
		env:     env,
		api:     apihelper.New(env.Transport, opts...),
	}
}

// Errorf is called by assertions to log a test failure. It does not cause an immediate exit.
func (t *T) Errorf(format string, args ...interface{}) {
	t.context.Errorf(format, args...)
}

// FailNow is called by assertions when a test should fail and immediately exit. The methods in
// the require package call FailNow.
func (t *T) FailNow() {
	t.context.FailNow()
}

// Run runs a subtest. This is equivalent to the Run method of testing.T.
func (t *T) Run(name string, action func(*T)) {
	t.context.Run(name, func(c *framework.Context) {
		action(newTestScope(c, t.env))
	})
}

// Debug logs some debug output for the test. The output will be passed to the test logger at
// the end of the test.
func (t *T) Debug(format string, args ...interface{}) {
	t.context.Debug(format, args...)
}

// API returns the helper for this test.
func (t *T) API() *apihelper.Helper {
	return t.api
}

func (t *T) Epic(value string)        { t.context.Annotate(framework.LabelEpic, value) }
func (t *T) Feature(value string)     { t.context.Annotate(framework.LabelFeature, value) }
func (t *T) Story(value string)       { t.context.Annotate(framework.LabelStory, value) }
func (t *T) Severity(value string)    { t.context.Annotate(framework.LabelSeverity, value) }
func (t *T) Description(value string) { t.context.Annotate(framework.LabelDescription, value) }

// JSONPlaceholder returns the absolute URL of a path on the placeholder CRUD service.
func (t *T) JSONPlaceholder(path string) string { return joinURL(t.env.JSONPlaceholderURL, path) }

// RestCountries returns the absolute URL of a path on the country lookup service.
func (t *T) RestCountries(path string) string { return joinURL(t.env.RestCountriesURL, path) }

// HTTPBin returns the absolute URL of a path on the request echo service.
func (t *T) HTTPBin(path string) string { return joinURL(t.env.HTTPBinURL, path) }

func joinURL(base, path string) string {
	return strings.TrimSuffix(base, "/") + "/" + strings.TrimPrefix(path, "/")
}

// Get issues a GET request, failing the test if the transport returns an error.
func (t *T) Get(url string, opts apihelper.RequestOptions) apihelper.Response {
	resp, err := t.api.Get(url, opts)
	require.NoError(t, err, "GET %s", url)
	return resp
}

// Post issues a POST request with a JSON body, failing the test if the transport returns
// an error.
func (t *T) Post(url string, data interface{}, opts apihelper.RequestOptions) apihelper.Response {
	resp, err := t.api.Post(url, data, opts)
	require.NoError(t, err, "POST %s", url)
	return resp
}

// Put issues a PUT request with a JSON body, failing the test if the transport returns an
// error.
func (t *T) Put(url string, data interface{}, opts apihelper.RequestOptions) apihelper.Response {
	resp, err := t.api.Put(url, data, opts)
	require.NoError(t, err, "PUT %s", url)
	return resp
}

// Delete issues a DELETE request, failing the test if the transport returns an error.
func (t *T) Delete(url string, opts apihelper.RequestOptions) apihelper.Response {
	resp, err := t.api.Delete(url, opts)
	require.NoError(t, err, "DELETE %s", url)
	return resp
}

// RequireStatus fails and exits the test if the response status is not the expected one.
func (t *T) RequireStatus(resp apihelper.Response, expected int) {
	require.NoError(t, t.api.ValidateStatus(resp, expected))
}

// RequireJSON fails and exits the test unless the response is a well-formed JSON document,
// and returns the parsed body.
func (t *T) RequireJSON(resp apihelper.Response) ldvalue.Value {
	value, err := t.api.ValidateJSON(resp)
	require.NoError(t, err)
	return value
}

// RequireArray is like RequireJSON, but also requires the body to be a JSON array.
func (t *T) RequireArray(resp apihelper.Response) ldvalue.Value {
	value, err := t.api.ValidateArray(resp)
	require.NoError(t, err)
	return value
}

// RequireObject is like RequireJSON, but also requires the body to be a JSON object that has
// all of the specified keys.
func (t *T) RequireObject(resp apihelper.Response, fields ...string) ldvalue.Value {
	value, err := t.api.ValidateObject(resp, fields)
	require.NoError(t, err)
	return value
}

// RequireFields fails and exits the test unless value is an object with all of the specified
// keys. It is for checking elements of an array response.
func (t *T) RequireFields(value ldvalue.Value, fields ...string) {
	require.NoError(t, apihelper.RequireFields(value, fields))
}

// RequireResponseTime fails and exits the test if at least max has passed since start, and
// returns the elapsed time.
func (t *T) RequireResponseTime(start time.Time, max time.Duration) time.Duration {
	elapsed, err := t.api.ValidateResponseTime(start, max)
	require.NoError(t, err)
	return elapsed
}

// RequireEqualValue fails and exits the test unless the two JSON values are deeply equal.
func (t *T) RequireEqualValue(expected, actual ldvalue.Value) {
	if !expected.Equal(actual) {
		require.Fail(t, "JSON values are not equal", "expected: %s\nactual: %s",
			expected.JSONString(), actual.JSONString())
	}
}

// Now returns the current time according to the helper's clock.
func (t *T) Now() time.Time {
	return t.api.Clock().Now()
}
