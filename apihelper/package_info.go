// Package apihelper contains the reusable pieces of the API tests: issuing requests
// through an injected Transport, validating responses, building test data, polling for a
// condition, and retrying a fallible operation with exponential backoff.
//
// Validation failures are returned as *AssertionError values rather than failing a test
// directly, so the helper can be used from any test runner. The apitests package turns
// them into test failures.
package apihelper
