package apihelper

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// DefaultMaxResponseTime is used by ValidateResponseTime when no limit is given.
const DefaultMaxResponseTime = 5000 * time.Millisecond

// ValidateStatus checks that the response has the expected status code.
func (h *Helper) ValidateStatus(resp Response, expected int) error {
	if actual := resp.Status(); actual != expected {
		return &AssertionError{Check: "status code", Expected: expected, Actual: actual}
	}
	return nil
}

// ValidateJSON checks that the response declares a JSON content type and then parses the
// body. The body is read exactly once, and only after the content type has been checked.
// A body that cannot be parsed produces a *MalformedBodyError.
func (h *Helper) ValidateJSON(resp Response) (ldvalue.Value, error) {
	contentType := headerValue(resp.Headers(), contentTypeHeader)
	if !strings.Contains(contentType, jsonContentType) {
		return ldvalue.Null(), &AssertionError{
			Check:    "content-type",
			Expected: fmt.Sprintf("a value containing %q", jsonContentType),
			Actual:   fmt.Sprintf("%q", contentType),
		}
	}
	body, err := resp.Body()
	if err != nil {
		return ldvalue.Null(), fmt.Errorf("reading response body: %w", err)
	}
	var value ldvalue.Value
	if err := json.Unmarshal(body, &value); err != nil {
		return ldvalue.Null(), &MalformedBodyError{Body: body, Err: err}
	}
	return value, nil
}

// ValidateArray is ValidateJSON plus a check that the body is a JSON array. An empty
// array is accepted.
func (h *Helper) ValidateArray(resp Response) (ldvalue.Value, error) {
	value, err := h.ValidateJSON(resp)
	if err != nil {
		return ldvalue.Null(), err
	}
	if value.Type() != ldvalue.ArrayType {
		return ldvalue.Null(), &AssertionError{Check: "response body type", Expected: ldvalue.ArrayType, Actual: value.Type()}
	}
	return value, nil
}

// ValidateObject is ValidateJSON plus a check that the body is a JSON object containing
// every one of the required keys. Only the presence of each key is checked; its value
// may be null, and extra keys are allowed.
func (h *Helper) ValidateObject(resp Response, requiredFields []string) (ldvalue.Value, error) {
	value, err := h.ValidateJSON(resp)
	if err != nil {
		return ldvalue.Null(), err
	}
	if err := RequireFields(value, requiredFields); err != nil {
		return ldvalue.Null(), err
	}
	return value, nil
}

// RequireFields checks that value is an object that has all of the named keys.
func RequireFields(value ldvalue.Value, requiredFields []string) error {
	if value.Type() != ldvalue.ObjectType {
		return &AssertionError{Check: "response body type", Expected: ldvalue.ObjectType, Actual: value.Type()}
	}
	keys := make(map[string]struct{})
	for _, k := range value.Keys() {
		keys[k] = struct{}{}
	}
	for _, field := range requiredFields {
		if _, ok := keys[field]; !ok {
			return &AssertionError{Check: fmt.Sprintf("field %q", field), Expected: "present", Actual: "missing"}
		}
	}
	return nil
}

// ValidateResponseTime measures the time elapsed since start, using the Helper's clock,
// and fails if it is not below max. A max of zero means DefaultMaxResponseTime. The elapsed
// time is returned whether or not the check passed.
func (h *Helper) ValidateResponseTime(start time.Time, max time.Duration) (time.Duration, error) {
	if max <= 0 {
		max = DefaultMaxResponseTime
	}
	elapsed := h.clock.Now().Sub(start)
	if elapsed >= max {
		return elapsed, &AssertionError{Check: "response time", Expected: fmt.Sprintf("less than %s", max), Actual: elapsed}
	}
	return elapsed, nil
}
