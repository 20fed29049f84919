//go:build e2e

package apitests

import (
	"os"
	"testing"

	"github.com/rajkumar-bhange/api-testing-demo/fixtures"
	"github.com/rajkumar-bhange/api-testing-demo/framework"
	"github.com/rajkumar-bhange/api-testing-demo/transport"

	"github.com/stretchr/testify/assert"
)

// Run with: go test -tags e2e ./apitests
func TestLiveServices(t *testing.T) {
	env := Environment{
		Transport:          transport.NewHTTP("", nil, nil),
		JSONPlaceholderURL: envOrDefault("JSONPLACEHOLDER_URL", fixtures.JSONPlaceholderBaseURL),
		RestCountriesURL:   envOrDefault("RESTCOUNTRIES_URL", fixtures.RestCountriesBaseURL),
		HTTPBinURL:         envOrDefault("HTTPBIN_URL", fixtures.HTTPBinBaseURL),
	}

	results := RunTestSuite(env, nil, nil, nil, RunOptions{RunOptions: framework.RunOptions{Retries: 2}})

	assert.NotEmpty(t, results.Tests)
	for _, f := range results.Failures {
		t.Errorf("%s: %v", f.TestID, f.Errors)
	}
}

func TestLiveSpecificScenarios(t *testing.T) {
	env := Environment{
		Transport:          transport.NewHTTP("", nil, nil),
		JSONPlaceholderURL: envOrDefault("JSONPLACEHOLDER_URL", fixtures.JSONPlaceholderBaseURL),
		RestCountriesURL:   envOrDefault("RESTCOUNTRIES_URL", fixtures.RestCountriesBaseURL),
		HTTPBinURL:         envOrDefault("HTTPBIN_URL", fixtures.HTTPBinBaseURL),
	}
	var filters framework.RegexFilters
	_ = filters.MustMatch.Set("^jsonplaceholder$/^get specific post by ID$")
	_ = filters.MustMatch.Set("^httpbin$/^POST request with JSON data$")
	_ = filters.MustMatch.Set("^restcountries$/^get country by code$")

	results := RunTestSuite(env, nil, filters.AsFilter, nil, RunOptions{RunOptions: framework.RunOptions{Retries: 1}})

	assert.Len(t, results.Tests, 3)
	assert.True(t, results.OK(), "%v", results.Failures)
}

func envOrDefault(name, defaultValue string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return defaultValue
}
