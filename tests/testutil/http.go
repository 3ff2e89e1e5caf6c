package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koseha/ryg-web-sub000/internal/interface/middleware"
	"github.com/koseha/ryg-web-sub000/pkg/apperror"
)

const apiPrefix = "/api/v1"

// LeaguePath builds /api/v1/leagues[/{id}[/segments...]]
func LeaguePath(leagueID string, segments ...string) string {
	return resourcePath("leagues", leagueID, segments)
}

// JoinRequestPath builds /api/v1/join-requests/{id}[/segments...]
func JoinRequestPath(requestID string, segments ...string) string {
	return resourcePath("join-requests", requestID, segments)
}

func resourcePath(collection, id string, segments []string) string {
	parts := []string{apiPrefix, collection}
	if id != "" {
		parts = append(parts, id)
	}
	return strings.Join(append(parts, segments...), "/")
}

// APIClient sends JSON requests to the test server on behalf of one caller.
// A client without a token sends anonymous requests.
type APIClient struct {
	t     *testing.T
	e     *echo.Echo
	token string
}

// Client returns an APIClient authenticated with token
func (ts *TestServer) Client(t *testing.T, token string) *APIClient {
	return &APIClient{t: t, e: ts.Echo, token: token}
}

// Do performs the request and records the response
func (c *APIClient) Do(method, path string, body interface{}) *HTTPResponse {
	c.t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(c.t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if c.token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+c.token)
	}

	rec := httptest.NewRecorder()
	c.e.ServeHTTP(rec, req)
	return &HTTPResponse{ResponseRecorder: rec, t: c.t}
}

// HTTPResponse wraps a recorded response with envelope-aware assertions
type HTTPResponse struct {
	*httptest.ResponseRecorder
	t        *testing.T
	envelope map[string]interface{}
}

func (r *HTTPResponse) decoded() map[string]interface{} {
	if r.envelope == nil {
		require.NoError(r.t, json.Unmarshal(r.Body.Bytes(), &r.envelope), "body: %s", r.Body.String())
	}
	return r.envelope
}

// AssertStatus asserts the response status code
func (r *HTTPResponse) AssertStatus(expected int) *HTTPResponse {
	assert.Equal(r.t, expected, r.Code, "unexpected status code, body: %s", r.Body.String())
	return r
}

// AssertJSONPath asserts the value at a dot path such as "data.league.id" or "data.0.role"
func (r *HTTPResponse) AssertJSONPath(path string, expected interface{}) *HTTPResponse {
	assert.Equal(r.t, expected, lookup(r.decoded(), path), "JSON path %s mismatch", path)
	return r
}

// AssertAppError asserts the error envelope carries code and, when given, a detail entry for each field
func (r *HTTPResponse) AssertAppError(code apperror.ErrorCode, fields ...string) *HTTPResponse {
	var body middleware.ErrorResponse
	require.NoError(r.t, json.Unmarshal(r.Body.Bytes(), &body), "body: %s", r.Body.String())
	assert.False(r.t, body.Success)
	assert.Equal(r.t, string(code), body.Error.Code, "error code mismatch, message: %s", body.Error.Message)

	for _, field := range fields {
		found := false
		for _, detail := range body.Error.Details {
			if detail.Field == field {
				found = true
				break
			}
		}
		assert.True(r.t, found, "no error detail for field %q in %+v", field, body.Error.Details)
	}
	return r
}

// Data returns the "data" object, or nil when data is not an object
func (r *HTTPResponse) Data() map[string]interface{} {
	data, _ := r.decoded()["data"].(map[string]interface{})
	return data
}

// DataList returns the "data" array, or nil when data is not an array
func (r *HTTPResponse) DataList() []interface{} {
	data, _ := r.decoded()["data"].([]interface{})
	return data
}

// StringAt returns the string at a dot path, or "" when absent
func (r *HTTPResponse) StringAt(path string) string {
	value, _ := lookup(r.decoded(), path).(string)
	return value
}

// lookup walks objects by key and arrays by index
func lookup(root interface{}, path string) interface{} {
	current := root
	for _, key := range strings.Split(path, ".") {
		if key == "" {
			continue
		}
		switch v := current.(type) {
		case map[string]interface{}:
			current = v[key]
		case []interface{}:
			i, err := strconv.Atoi(key)
			if err != nil || i < 0 || i >= len(v) {
				return nil
			}
			current = v[i]
		default:
			return nil
		}
	}
	return current
}
