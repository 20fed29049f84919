package transport

import (
	"fmt"
	"time"

	"github.com/rajkumar-bhange/api-testing-demo/apihelper"
	"github.com/rajkumar-bhange/api-testing-demo/framework"

	"github.com/playwright-community/playwright-go"
)

// PlaywrightOptions configures the request context created by NewPlaywright.
type PlaywrightOptions struct {
	// BaseURL is used to resolve relative request URLs.
	BaseURL string

	// Timeout applies to each request. Zero uses Playwright's default.
	Timeout time.Duration

	// IgnoreHTTPSErrors disables certificate validation.
	IgnoreHTTPSErrors bool
}

// Playwright is an apihelper.Transport backed by a Playwright APIRequestContext, the
// same request API that Playwright gives to browser-based tests. It requires the
// Playwright driver; see InstallPlaywright.
type Playwright struct {
	pw      *playwright.Playwright
	request playwright.APIRequestContext
	logger  framework.Logger
}

// InstallPlaywright downloads the Playwright driver and, unless skipBrowsers is true, the
// browsers it uses. It does nothing if they are already installed.
func InstallPlaywright(skipBrowsers bool) error {
	if err := playwright.Install(&playwright.RunOptions{SkipInstallBrowsers: skipBrowsers}); err != nil {
		return fmt.Errorf("could not install playwright: %w", err)
	}
	return nil
}

// NewPlaywright starts the Playwright driver and creates a request context. Call Close
// when finished with it.
func NewPlaywright(opts PlaywrightOptions, logger framework.Logger) (*Playwright, error) {
	if logger == nil {
		logger = framework.NullLogger()
	}
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("could not start playwright: %w", err)
	}

	contextOpts := playwright.APIRequestNewContextOptions{}
	if opts.BaseURL != "" {
		contextOpts.BaseURL = playwright.String(opts.BaseURL)
	}
	if opts.Timeout > 0 {
		contextOpts.Timeout = playwright.Float(float64(opts.Timeout.Milliseconds()))
	}
	if opts.IgnoreHTTPSErrors {
		contextOpts.IgnoreHttpsErrors = playwright.Bool(true)
	}
	request, err := pw.Request.NewContext(contextOpts)
	if err != nil {
		_ = pw.Stop()
		return nil, fmt.Errorf("could not create playwright request context: %w", err)
	}

	return &Playwright{pw: pw, request: request, logger: logger}, nil
}

func (t *Playwright) Get(url string, opts apihelper.RequestOptions) (apihelper.Response, error) {
	target, err := withQuery(url, opts.Params)
	if err != nil {
		return nil, err
	}
	t.logger.Printf("Sending GET %s via playwright", target)
	return t.result(t.request.Get(target, playwright.APIRequestContextGetOptions{
		Headers: opts.Headers,
	}))
}

func (t *Playwright) Post(url string, opts apihelper.RequestOptions) (apihelper.Response, error) {
	target, err := withQuery(url, opts.Params)
	if err != nil {
		return nil, err
	}
	t.logger.Printf("Sending POST %s via playwright", target)
	return t.result(t.request.Post(target, playwright.APIRequestContextPostOptions{
		Headers: opts.Headers,
		Data:    opts.Data,
	}))
}

func (t *Playwright) Put(url string, opts apihelper.RequestOptions) (apihelper.Response, error) {
	target, err := withQuery(url, opts.Params)
	if err != nil {
		return nil, err
	}
	t.logger.Printf("Sending PUT %s via playwright", target)
	return t.result(t.request.Put(target, playwright.APIRequestContextPutOptions{
		Headers: opts.Headers,
		Data:    opts.Data,
	}))
}

func (t *Playwright) Delete(url string, opts apihelper.RequestOptions) (apihelper.Response, error) {
	target, err := withQuery(url, opts.Params)
	if err != nil {
		return nil, err
	}
	t.logger.Printf("Sending DELETE %s via playwright", target)
	return t.result(t.request.Delete(target, playwright.APIRequestContextDeleteOptions{
		Headers: opts.Headers,
		Data:    opts.Data,
	}))
}

// result passes a Playwright response through as an apihelper.Response, which it already
// satisfies.
func (t *Playwright) result(resp playwright.APIResponse, err error) (apihelper.Response, error) {
	if err != nil {
		t.logger.Printf("Request failed: %s", err)
		return nil, err
	}
	t.logger.Printf("Received HTTP %d from %s", resp.Status(), resp.URL())
	return resp, nil
}

// Close disposes of the request context and stops the driver.
func (t *Playwright) Close() error {
	if err := t.request.Dispose(); err != nil {
		_ = t.pw.Stop()
		return err
	}
	return t.pw.Stop()
}

var _ apihelper.Transport = (*Playwright)(nil)
