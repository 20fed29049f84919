// Package report turns test results into Allure result files and an HTML summary, and can
// serve or open that summary.
package report
