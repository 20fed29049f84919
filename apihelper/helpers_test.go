package apihelper

import (
	"errors"
	"time"
)

// Test doubles shared by the tests in this package.

type fakeClock struct {
	now    time.Time
	sleeps []time.Duration
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Sleep(d time.Duration) {
	c.sleeps = append(c.sleeps, d)
	c.now = c.now.Add(d)
}

func (c *fakeClock) advance(d time.Duration) { c.now = c.now.Add(d) }

type fakeResponse struct {
	status  int
	headers map[string]string
	body    []byte
	reads   int
}

func jsonResponse(status int, body string) *fakeResponse {
	return &fakeResponse{
		status:  status,
		headers: map[string]string{"content-type": "application/json; charset=utf-8"},
		body:    []byte(body),
	}
}

func (r *fakeResponse) Status() int                { return r.status }
func (r *fakeResponse) Headers() map[string]string { return r.headers }

func (r *fakeResponse) Body() ([]byte, error) {
	r.reads++
	if r.reads > 1 {
		return nil, errors.New("body already consumed")
	}
	return r.body, nil
}

type recordedRequest struct {
	method string
	url    string
	opts   RequestOptions
}

// fakeTransport records every request and replies from a scripted sequence; once the
// sequence is used up it keeps returning the last entry.
type fakeTransport struct {
	requests []recordedRequest
	seq      []fakeResult
}

type fakeResult struct {
	resp Response
	err  error
}

func (f *fakeTransport) do(method, url string, opts RequestOptions) (Response, error) {
	f.requests = append(f.requests, recordedRequest{method: method, url: url, opts: opts})
	if len(f.seq) == 0 {
		return jsonResponse(200, "{}"), nil
	}
	i := len(f.requests) - 1
	if i >= len(f.seq) {
		i = len(f.seq) - 1
	}
	return f.seq[i].resp, f.seq[i].err
}

func (f *fakeTransport) Get(url string, opts RequestOptions) (Response, error) {
	return f.do("GET", url, opts)
}

func (f *fakeTransport) Post(url string, opts RequestOptions) (Response, error) {
	return f.do("POST", url, opts)
}

func (f *fakeTransport) Put(url string, opts RequestOptions) (Response, error) {
	return f.do("PUT", url, opts)
}

func (f *fakeTransport) Delete(url string, opts RequestOptions) (Response, error) {
	return f.do("DELETE", url, opts)
}
