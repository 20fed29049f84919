package apitests

import (
	"fmt"
	"net/http"
	"time"

	"github.com/rajkumar-bhange/api-testing-demo/apihelper"
	"github.com/rajkumar-bhange/api-testing-demo/fixtures"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/stretchr/testify/assert"
)

func DoHTTPBinTests(t *T) {
	t.Epic("HTTPBin API")
	t.Feature("HTTP Testing Service")

	t.Run("GET request", func(t *T) {
		t.Story("Test GET Request")
		t.Severity("critical")
		t.Description("Verifies that a GET request is echoed back")

		url := t.HTTPBin(fixtures.EchoGetPath)
		resp := t.Get(url, apihelper.RequestOptions{})
		t.RequireStatus(resp, fixtures.StatusSuccess)
		data := t.RequireObject(resp, "url", "headers", "args")
		assert.Equal(t, url, data.GetByKey("url").StringValue())
	})

	t.Run("POST request with JSON data", func(t *T) {
		t.Story("Test POST Request with JSON")
		t.Severity("high")
		t.Description("Verifies that a JSON payload is echoed back")

		payload := ldvalue.ObjectBuild().
			Set("name", ldvalue.String("Test User")).
			Set("email", ldvalue.String("test@example.com")).
			Set("message", ldvalue.String("This is a test message")).
			Build()

		resp := t.Post(t.HTTPBin(fixtures.EchoPostPath), payload, apihelper.RequestOptions{})
		t.RequireStatus(resp, fixtures.StatusSuccess)
		data := t.RequireObject(resp, "json")
		t.RequireEqualValue(payload, data.GetByKey("json"))
	})

	t.Run("PUT request", func(t *T) {
		t.Story("Test PUT Request")
		t.Severity("high")
		t.Description("Verifies that a PUT payload is echoed back")

		payload := ldvalue.ObjectBuild().
			Set("id", ldvalue.Int(1)).
			Set("title", ldvalue.String("Updated Title")).
			Set("content", ldvalue.String("Updated content")).
			Build()

		resp := t.Put(t.HTTPBin(fixtures.EchoPutPath), payload, apihelper.RequestOptions{})
		t.RequireStatus(resp, fixtures.StatusSuccess)
		data := t.RequireObject(resp, "json")
		t.RequireEqualValue(payload, data.GetByKey("json"))
	})

	t.Run("DELETE request", func(t *T) {
		t.Story("Test DELETE Request")
		t.Severity("medium")
		t.Description("Verifies that a DELETE request is echoed back")

		url := t.HTTPBin(fixtures.EchoDeletePath)
		resp := t.Delete(url, apihelper.RequestOptions{})
		t.RequireStatus(resp, fixtures.StatusSuccess)
		data := t.RequireObject(resp, "url")
		assert.Equal(t, url, data.GetByKey("url").StringValue())
	})

	t.Run("request with custom headers", func(t *T) {
		t.Story("Test Custom Headers")
		t.Severity("medium")
		t.Description("Verifies that custom request headers reach the server")

		headers := fixtures.EchoHeaders()
		resp := t.Get(t.HTTPBin(fixtures.EchoHeadersPath), apihelper.RequestOptions{Headers: headers})
		t.RequireStatus(resp, fixtures.StatusSuccess)
		echoed := t.RequireObject(resp, "headers").GetByKey("headers")
		for name, value := range headers {
			// The echo service reports header names in canonical form.
			assert.Equal(t, value, echoed.GetByKey(http.CanonicalHeaderKey(name)).StringValue(), "header %q", name)
		}
	})

	t.Run("request with query parameters", func(t *T) {
		t.Story("Test Query Parameters")
		t.Severity("medium")
		t.Description("Verifies that query parameters reach the server")

		params := fixtures.EchoParams()
		resp := t.Get(t.HTTPBin(fixtures.EchoGetPath), apihelper.RequestOptions{Params: params})
		t.RequireStatus(resp, fixtures.StatusSuccess)
		args := t.RequireObject(resp, "args").GetByKey("args")

		expected := ldvalue.ObjectBuild()
		for k, v := range params {
			expected = expected.Set(k, ldvalue.String(v))
		}
		t.RequireEqualValue(expected.Build(), args)
	})

	t.Run("response time", func(t *T) {
		t.Story("Test Response Time")
		t.Severity("low")
		t.Description("Verifies that a delayed response arrives within the slow limit")

		start := t.Now()
		resp := t.Get(t.HTTPBin(fixtures.EchoDelayPath+"/1"), apihelper.RequestOptions{})
		elapsed := t.RequireResponseTime(start, fixtures.ResponseTimeSlow)
		t.RequireStatus(resp, fixtures.StatusSuccess)
		assert.Greater(t, int64(elapsed), int64(900*time.Millisecond), "response arrived sooner than the requested delay")
	})

	t.Run("status codes", func(t *T) {
		t.Story("Test Status Codes")
		t.Severity("medium")
		t.Description("Verifies that requested status codes are returned as-is")

		for _, status := range []int{fixtures.StatusSuccess, fixtures.StatusNotFound, fixtures.StatusInternalServerError} {
			resp := t.Get(t.HTTPBin(fmt.Sprintf("%s/%d", fixtures.EchoStatusPath, status)), apihelper.RequestOptions{})
			t.RequireStatus(resp, status)
		}
	})

	t.Run("basic authentication", func(t *T) {
		t.Story("Test Authentication")
		t.Severity("medium")
		t.Description("Verifies that basic authentication credentials are accepted")

		resp := t.Get(t.HTTPBin(fixtures.EchoBasicAuthPath+"/user/pass"), apihelper.RequestOptions{
			Headers: map[string]string{"Authorization": "Basic dXNlcjpwYXNz"},
		})
		t.RequireStatus(resp, fixtures.StatusSuccess)
		data := t.RequireObject(resp, "authenticated", "user")
		assert.True(t, data.GetByKey("authenticated").BoolValue())
		assert.Equal(t, "user", data.GetByKey("user").StringValue())
	})

	t.Run("echo random data", func(t *T) {
		t.Story("Echo Random Data")
		t.Severity("low")
		t.Description("Verifies that generated test data survives a round trip")

		random := t.API().GenerateRandomData()
		resp := t.Post(t.HTTPBin(fixtures.EchoPostPath), random, apihelper.RequestOptions{})
		t.RequireStatus(resp, fixtures.StatusSuccess)
		data := t.RequireObject(resp, "json")
		t.RequireEqualValue(random.AsValue(), data.GetByKey("json"))
	})
}
