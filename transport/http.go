package transport

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rajkumar-bhange/api-testing-demo/apihelper"
	"github.com/rajkumar-bhange/api-testing-demo/framework"
)

const defaultRequestTimeout = 30 * time.Second

// HTTP is an apihelper.Transport that uses net/http directly.
//
// HTTP error status codes (4xx, 5xx) are not treated as errors; only failures to send
// the request or read the response are.
type HTTP struct {
	baseURL string
	client  *http.Client
	logger  framework.Logger
}

// NewHTTP creates an HTTP transport. Relative URLs passed to its methods are resolved
// against baseURL, which may be empty if callers always use absolute URLs. If client is
// nil, a client with a 30-second timeout is used.
func NewHTTP(baseURL string, client *http.Client, logger framework.Logger) *HTTP {
	if client == nil {
		client = &http.Client{Timeout: defaultRequestTimeout}
	}
	if logger == nil {
		logger = framework.NullLogger()
	}
	return &HTTP{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  client,
		logger:  logger,
	}
}

func (t *HTTP) Get(url string, opts apihelper.RequestOptions) (apihelper.Response, error) {
	return t.do(http.MethodGet, url, opts)
}

func (t *HTTP) Post(url string, opts apihelper.RequestOptions) (apihelper.Response, error) {
	return t.do(http.MethodPost, url, opts)
}

func (t *HTTP) Put(url string, opts apihelper.RequestOptions) (apihelper.Response, error) {
	return t.do(http.MethodPut, url, opts)
}

func (t *HTTP) Delete(url string, opts apihelper.RequestOptions) (apihelper.Response, error) {
	return t.do(http.MethodDelete, url, opts)
}

func (t *HTTP) do(method, target string, opts apihelper.RequestOptions) (apihelper.Response, error) {
	fullURL, err := withQuery(resolveURL(t.baseURL, target), opts.Params)
	if err != nil {
		return nil, err
	}

	body, err := encodeBody(opts.Data)
	if err != nil {
		return nil, err
	}
	var reqBody io.Reader
	if body != nil {
		reqBody = bytes.NewReader(body)
	}

	req, err := http.NewRequest(method, fullURL, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	for k, v := range opts.Headers {
		req.Header.Set(k, v)
	}

	t.logger.Printf("Sending %s %s", method, fullURL)
	start := time.Now()
	resp, err := t.client.Do(req)
	if err != nil {
		t.logger.Printf("Request failed: %s", err)
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	t.logger.Printf("Received HTTP %d from %s after %s (%d bytes)",
		resp.StatusCode, fullURL, time.Since(start).Round(time.Millisecond), len(respBody))

	return &httpResponse{
		status:  resp.StatusCode,
		headers: flattenHeaders(resp.Header),
		body:    respBody,
	}, nil
}

type httpResponse struct {
	status  int
	headers map[string]string
	body    []byte
}

func (r *httpResponse) Status() int                { return r.status }
func (r *httpResponse) Headers() map[string]string { return r.headers }
func (r *httpResponse) Body() ([]byte, error)      { return r.body, nil }

// flattenHeaders lowercases header names and joins repeated values, which is the same
// shape that browser-based request contexts report.
func flattenHeaders(h http.Header) map[string]string {
	ret := make(map[string]string, len(h))
	for k, vs := range h {
		ret[strings.ToLower(k)] = strings.Join(vs, ", ")
	}
	return ret
}

func resolveURL(baseURL, target string) string {
	if baseURL == "" || strings.HasPrefix(target, "http://") || strings.HasPrefix(target, "https://") {
		return target
	}
	return baseURL + "/" + strings.TrimPrefix(target, "/")
}

func withQuery(rawURL string, params map[string]string) (string, error) {
	if len(params) == 0 {
		return rawURL, nil
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("invalid URL %q: %w", rawURL, err)
	}
	q := u.Query()
	for k, v := range params {
		q.Set(k, v)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func encodeBody(data interface{}) ([]byte, error) {
	switch d := data.(type) {
	case nil:
		return nil, nil
	case []byte:
		return d, nil
	case string:
		return []byte(d), nil
	default:
		jsonBytes, err := json.Marshal(d)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		return jsonBytes, nil
	}
}

var _ apihelper.Transport = (*HTTP)(nil)
