package transport

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rajkumar-bhange/api-testing-demo/apihelper"
	"github.com/rajkumar-bhange/api-testing-demo/framework"

	"github.com/launchdarkly/go-test-helpers/v2/httphelpers"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPGetResolvesRelativeURLAndQuery(t *testing.T) {
	handler, requests := httphelpers.RecordingHandler(
		httphelpers.HandlerWithResponse(200, http.Header{"Content-Type": {"application/json"}}, []byte(`[]`)))
	httphelpers.WithServer(handler, func(server *httptest.Server) {
		tr := NewHTTP(server.URL+"/", nil, nil)

		resp, err := tr.Get("/posts", apihelper.RequestOptions{
			Params:  map[string]string{"userId": "1"},
			Headers: map[string]string{"X-Test": "yes"},
		})
		require.NoError(t, err)
		assert.Equal(t, 200, resp.Status())
		assert.Equal(t, "application/json", resp.Headers()["content-type"])

		r := <-requests
		assert.Equal(t, "GET", r.Request.Method)
		assert.Equal(t, "/posts", r.Request.URL.Path)
		assert.Equal(t, "1", r.Request.URL.Query().Get("userId"))
		assert.Equal(t, "yes", r.Request.Header.Get("X-Test"))
	})
}

func TestHTTPAbsoluteURLIgnoresBaseURL(t *testing.T) {
	handler, requests := httphelpers.RecordingHandler(httphelpers.HandlerWithStatus(204))
	httphelpers.WithServer(handler, func(server *httptest.Server) {
		tr := NewHTTP("http://unused.example", nil, nil)

		resp, err := tr.Delete(server.URL+"/posts/1", apihelper.RequestOptions{})
		require.NoError(t, err)
		assert.Equal(t, 204, resp.Status())

		r := <-requests
		assert.Equal(t, "DELETE", r.Request.Method)
		assert.Equal(t, "/posts/1", r.Request.URL.Path)
	})
}

func TestHTTPEncodesRequestBodies(t *testing.T) {
	post := ldvalue.ObjectBuild().Set("title", ldvalue.String("x")).Build()
	cases := []struct {
		name     string
		data     interface{}
		expected string
	}{
		{"value", post, `{"title":"x"}`},
		{"struct", struct {
			Name string `json:"name"`
		}{"a"}, `{"name":"a"}`},
		{"string", "raw text", "raw text"},
		{"bytes", []byte("raw bytes"), "raw bytes"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			handler, requests := httphelpers.RecordingHandler(httphelpers.HandlerWithStatus(201))
			httphelpers.WithServer(handler, func(server *httptest.Server) {
				tr := NewHTTP(server.URL, nil, nil)

				_, err := tr.Post("/posts", apihelper.RequestOptions{Data: c.data})
				require.NoError(t, err)

				r := <-requests
				assert.Equal(t, "POST", r.Request.Method)
				assert.Equal(t, c.expected, string(r.Body))
			})
		})
	}
}

func TestHTTPPutSendsHeadersAndBody(t *testing.T) {
	handler, requests := httphelpers.RecordingHandler(httphelpers.HandlerWithStatus(200))
	httphelpers.WithServer(handler, func(server *httptest.Server) {
		tr := NewHTTP(server.URL, nil, nil)

		_, err := tr.Put("/posts/1", apihelper.RequestOptions{
			Data:    `{"id":1}`,
			Headers: map[string]string{"Content-Type": "application/json"},
		})
		require.NoError(t, err)

		r := <-requests
		assert.Equal(t, "PUT", r.Request.Method)
		assert.Equal(t, "application/json", r.Request.Header.Get("Content-Type"))
		assert.Equal(t, `{"id":1}`, string(r.Body))
	})
}

func TestHTTPErrorStatusIsNotAnError(t *testing.T) {
	httphelpers.WithServer(httphelpers.HandlerWithStatus(404), func(server *httptest.Server) {
		tr := NewHTTP(server.URL, nil, nil)

		resp, err := tr.Get("/posts/999999", apihelper.RequestOptions{})
		require.NoError(t, err)
		assert.Equal(t, 404, resp.Status())
	})
}

func TestHTTPConnectionFailureIsAnError(t *testing.T) {
	server := httptest.NewServer(httphelpers.HandlerWithStatus(200))
	url := server.URL
	server.Close()

	_, err := NewHTTP(url, nil, nil).Get("/posts", apihelper.RequestOptions{})
	assert.Error(t, err)
}

func TestHTTPResponseBody(t *testing.T) {
	body := []byte(`{"id":1,"title":"hello"}`)
	httphelpers.WithServer(httphelpers.HandlerWithResponse(200, nil, body), func(server *httptest.Server) {
		tr := NewHTTP(server.URL, nil, nil)

		resp, err := tr.Get("/posts/1", apihelper.RequestOptions{})
		require.NoError(t, err)
		actual, err := resp.Body()
		require.NoError(t, err)
		assert.Equal(t, body, actual)
	})
}

func TestHTTPFlattensRepeatedHeaders(t *testing.T) {
	headers := http.Header{"X-Multi": {"a", "b"}}
	httphelpers.WithServer(httphelpers.HandlerWithResponse(200, headers, nil), func(server *httptest.Server) {
		resp, err := NewHTTP(server.URL, nil, nil).Get("/", apihelper.RequestOptions{})
		require.NoError(t, err)
		assert.Equal(t, "a, b", resp.Headers()["x-multi"])
	})
}

func TestHTTPLogsRequests(t *testing.T) {
	logger := &framework.CapturingLogger{}
	httphelpers.WithServer(httphelpers.HandlerWithStatus(200), func(server *httptest.Server) {
		_, err := NewHTTP(server.URL, nil, logger).Get("/users", apihelper.RequestOptions{})
		require.NoError(t, err)
	})

	output := logger.Output()
	require.Len(t, output, 2)
	assert.Contains(t, output[0].Message, "Sending GET ")
	assert.Contains(t, output[1].Message, "Received HTTP 200")
}

func TestResolveURL(t *testing.T) {
	assert.Equal(t, "http://host/posts", resolveURL("http://host", "/posts"))
	assert.Equal(t, "http://host/posts", resolveURL("http://host", "posts"))
	assert.Equal(t, "https://other/x", resolveURL("http://host", "https://other/x"))
	assert.Equal(t, "/posts", resolveURL("", "/posts"))
}

func TestWithQuery(t *testing.T) {
	u, err := withQuery("/get?a=1", map[string]string{"b": "2"})
	require.NoError(t, err)
	assert.Equal(t, "/get?a=1&b=2", u)

	u, err = withQuery("/get", nil)
	require.NoError(t, err)
	assert.Equal(t, "/get", u)
}
