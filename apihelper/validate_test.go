package apihelper

import (
	"errors"
	"testing"
	"time"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireAssertionError(t *testing.T, err error) *AssertionError {
	t.Helper()
	var ae *AssertionError
	require.True(t, errors.As(err, &ae), "expected *AssertionError, got %T: %v", err, err)
	return ae
}

func TestValidateStatus(t *testing.T) {
	h := New(&fakeTransport{})

	assert.NoError(t, h.ValidateStatus(jsonResponse(200, "{}"), 200))

	ae := requireAssertionError(t, h.ValidateStatus(jsonResponse(404, "{}"), 200))
	assert.Equal(t, 200, ae.Expected)
	assert.Equal(t, 404, ae.Actual)
	assert.Equal(t, "status code: expected 200 but got 404", ae.Error())
}

func TestValidateJSONParsesBodyOnce(t *testing.T) {
	h := New(&fakeTransport{})
	resp := jsonResponse(200, `{"id":1,"title":"x"}`)

	value, err := h.ValidateJSON(resp)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.reads)
	assert.Equal(t, 1, value.GetByKey("id").IntValue())
	assert.Equal(t, "x", value.GetByKey("title").StringValue())
}

func TestValidateJSONChecksContentTypeBeforeReadingBody(t *testing.T) {
	h := New(&fakeTransport{})
	resp := &fakeResponse{
		status:  200,
		headers: map[string]string{"Content-Type": "text/html"},
		body:    []byte("<html></html>"),
	}

	_, err := h.ValidateJSON(resp)
	ae := requireAssertionError(t, err)
	assert.Equal(t, "content-type", ae.Check)
	assert.Equal(t, 0, resp.reads)
}

func TestValidateJSONRejectsMissingContentType(t *testing.T) {
	h := New(&fakeTransport{})
	resp := &fakeResponse{status: 200, body: []byte("{}")}

	_, err := h.ValidateJSON(resp)
	requireAssertionError(t, err)
}

func TestValidateJSONReportsMalformedBody(t *testing.T) {
	h := New(&fakeTransport{})

	_, err := h.ValidateJSON(jsonResponse(200, `{"id":`))

	var mbe *MalformedBodyError
	require.True(t, errors.As(err, &mbe))
	assert.Equal(t, `{"id":`, string(mbe.Body))
	assert.Contains(t, err.Error(), "malformed JSON response body")
}

func TestValidateArray(t *testing.T) {
	h := New(&fakeTransport{})

	value, err := h.ValidateArray(jsonResponse(200, `[{"id":1},{"id":2}]`))
	require.NoError(t, err)
	assert.Equal(t, 2, value.Count())

	value, err = h.ValidateArray(jsonResponse(200, `[]`))
	require.NoError(t, err)
	assert.Equal(t, 0, value.Count())

	_, err = h.ValidateArray(jsonResponse(200, `{"0":"a"}`))
	ae := requireAssertionError(t, err)
	assert.Equal(t, ldvalue.ArrayType, ae.Expected)
	assert.Equal(t, ldvalue.ObjectType, ae.Actual)
}

func TestValidateObject(t *testing.T) {
	h := New(&fakeTransport{})
	required := []string{"id", "title", "body", "userId"}

	value, err := h.ValidateObject(jsonResponse(200, `{"id":1,"title":"t","body":"b","userId":1,"extra":true}`), required)
	require.NoError(t, err)
	assert.Equal(t, 1, value.GetByKey("id").IntValue())

	_, err = h.ValidateObject(jsonResponse(200, `{"id":1,"title":null,"body":"b","userId":1}`), required)
	assert.NoError(t, err, "a null value still counts as present")

	_, err = h.ValidateObject(jsonResponse(200, `{"id":1,"title":"t","userId":1}`), required)
	ae := requireAssertionError(t, err)
	assert.Equal(t, `field "body"`, ae.Check)

	_, err = h.ValidateObject(jsonResponse(200, `[{"id":1}]`), []string{"id"})
	requireAssertionError(t, err)
}

func TestValidateObjectWithNoRequiredFields(t *testing.T) {
	h := New(&fakeTransport{})

	_, err := h.ValidateObject(jsonResponse(200, `{}`), nil)
	assert.NoError(t, err)
}

func TestValidateResponseTime(t *testing.T) {
	clock := newFakeClock()
	h := New(&fakeTransport{}, WithClock(clock))

	start := clock.Now()
	clock.advance(250 * time.Millisecond)
	elapsed, err := h.ValidateResponseTime(start, time.Second)
	assert.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, elapsed)

	clock.advance(750 * time.Millisecond)
	elapsed, err = h.ValidateResponseTime(start, time.Second)
	requireAssertionError(t, err)
	assert.Equal(t, time.Second, elapsed, "elapsed time is returned even on failure")
}

func TestValidateResponseTimeDefaultLimit(t *testing.T) {
	clock := newFakeClock()
	h := New(&fakeTransport{}, WithClock(clock))

	start := clock.Now()
	clock.advance(4999 * time.Millisecond)
	_, err := h.ValidateResponseTime(start, 0)
	assert.NoError(t, err)

	clock.advance(time.Millisecond)
	_, err = h.ValidateResponseTime(start, 0)
	requireAssertionError(t, err)
}
