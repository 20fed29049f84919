// Package apitests contains the API test suites and the T type that they are written
// against.
//
// Each suite targets one public service: a placeholder CRUD service, a country lookup
// service, and a request echo service. The enhanced suite exercises the apihelper utilities
// against the placeholder service. The lower-level test runner is in the framework package.
package apitests
