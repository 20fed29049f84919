package apihelper

import (
	"strings"
	"time"

	"github.com/rajkumar-bhange/api-testing-demo/framework"
)

const (
	contentTypeHeader = "Content-Type"
	jsonContentType   = "application/json"
)

// Clock is the time source used for response timing, polling and backoff delays.
// Sleep must suspend only the calling goroutine.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

type realClock struct{}

func (realClock) Now() time.Time        { return time.Now() }
func (realClock) Sleep(d time.Duration) { time.Sleep(d) }

// RealClock returns a Clock backed by the time package.
func RealClock() Clock { return realClock{} }

// Helper wraps a Transport with request conveniences, response validation, test data
// generation, condition polling and retry with backoff.
//
// A Helper holds no mutable state, so one instance can be shared by concurrent requests.
type Helper struct {
	transport Transport
	clock     Clock
	logger    framework.Logger
}

// Option customizes a Helper.
type Option func(*Helper)

// WithClock replaces the real clock, mainly so tests can control time.
func WithClock(clock Clock) Option {
	return func(h *Helper) {
		if clock != nil {
			h.clock = clock
		}
	}
}

// WithLogger sets a logger that receives one line per request.
func WithLogger(logger framework.Logger) Option {
	return func(h *Helper) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// New creates a Helper around the given transport.
func New(transport Transport, opts ...Option) *Helper {
	h := &Helper{
		transport: transport,
		clock:     RealClock(),
		logger:    framework.NullLogger(),
	}
	for _, o := range opts {
		o(h)
	}
	return h
}

// Clock returns the time source the Helper uses, so that callers can take start
// timestamps for ValidateResponseTime from the same clock.
func (h *Helper) Clock() Clock {
	return h.clock
}

// Get issues a GET request. Transport errors are returned unchanged.
func (h *Helper) Get(url string, opts RequestOptions) (Response, error) {
	h.logger.Printf("GET %s", url)
	return h.transport.Get(url, opts)
}

// Post issues a POST request with data as the body. A Content-Type of application/json is
// sent unless opts.Headers provides its own.
func (h *Helper) Post(url string, data interface{}, opts RequestOptions) (Response, error) {
	h.logger.Printf("POST %s", url)
	return h.transport.Post(url, withJSONDefaults(data, opts))
}

// Put issues a PUT request with data as the body. A Content-Type of application/json is
// sent unless opts.Headers provides its own.
func (h *Helper) Put(url string, data interface{}, opts RequestOptions) (Response, error) {
	h.logger.Printf("PUT %s", url)
	return h.transport.Put(url, withJSONDefaults(data, opts))
}

// Delete issues a DELETE request. Transport errors are returned unchanged.
func (h *Helper) Delete(url string, opts RequestOptions) (Response, error) {
	h.logger.Printf("DELETE %s", url)
	return h.transport.Delete(url, opts)
}

func withJSONDefaults(data interface{}, opts RequestOptions) RequestOptions {
	headers := map[string]string{contentTypeHeader: jsonContentType}
	for k, v := range opts.Headers {
		if strings.EqualFold(k, contentTypeHeader) {
			delete(headers, contentTypeHeader)
		}
		headers[k] = v
	}
	ret := opts
	ret.Headers = headers
	if data != nil {
		ret.Data = data
	}
	return ret
}

// headerValue looks up a header case-insensitively.
func headerValue(headers map[string]string, name string) string {
	if v, ok := headers[name]; ok {
		return v
	}
	for k, v := range headers {
		if strings.EqualFold(k, name) {
			return v
		}
	}
	return ""
}
