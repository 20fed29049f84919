package apihelper

// RequestOptions is the options bag accepted by every Transport method.
type RequestOptions struct {
	// Headers are sent with the request. Keys are compared case-insensitively.
	Headers map[string]string

	// Params are encoded into the URL query string.
	Params map[string]string

	// Data is the request body. Transports send []byte and string values as they are
	// and JSON-encode anything else.
	Data interface{}
}

// Response is the result of one request. It is owned by the caller for the duration of
// one test and is not cached or reused.
type Response interface {
	// Status returns the HTTP status code.
	Status() int

	// Headers returns the response headers. Header names may be in any case.
	Headers() map[string]string

	// Body returns the response body. Implementations are not required to support
	// reading it more than once.
	Body() ([]byte, error)
}

// Transport issues HTTP requests on behalf of the Helper. It is supplied by whatever is
// hosting the tests; the Helper never constructs one. Transport-level failures are
// returned as errors, while HTTP error statuses are not.
type Transport interface {
	Get(url string, opts RequestOptions) (Response, error)
	Post(url string, opts RequestOptions) (Response, error)
	Put(url string, opts RequestOptions) (Response, error)
	Delete(url string, opts RequestOptions) (Response, error)
}
