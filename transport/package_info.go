// Package transport contains the implementations of apihelper.Transport: one based on
// net/http, and one that delegates to a Playwright request context.
package transport
