package service

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	return New(Load(), zerolog.Nop())
}

func doJSON(t *testing.T, s *Server, method, path string, body any) (*http.Response, map[string]any) {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, path, rd)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := s.App().Test(req)
	require.NoError(t, err)
	var out map[string]any
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out))
	}
	return resp, out
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	resp, body := doJSON(t, s, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "healthy", body["status"])
}

func TestEvaluateEndpoint(t *testing.T) {
	s := newTestServer(t)
	resp, body := doJSON(t, s, http.MethodPost, "/api/v1/evaluate", map[string]any{
		"expression": "base * (1 + bonus)",
		"variables":  map[string]float64{"base": 100, "bonus": 0.25},
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 125.0, body["result"])
}

func TestEvaluateEndpointBindingsAreTemporary(t *testing.T) {
	s := newTestServer(t)
	doJSON(t, s, http.MethodPost, "/api/v1/evaluate", map[string]any{
		"expression": "x",
		"variables":  map[string]float64{"x": 1},
	})
	resp, _ := doJSON(t, s, http.MethodGet, "/api/v1/variables/x", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestEvaluateEndpointError(t *testing.T) {
	s := newTestServer(t)
	resp, body := doJSON(t, s, http.MethodPost, "/api/v1/evaluate", map[string]any{
		"expression": "1 / 0",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, body["error"], "division by zero")
	assert.Equal(t, 2.0, body["position"])
}

func TestValidateEndpoint(t *testing.T) {
	s := newTestServer(t)

	resp, body := doJSON(t, s, http.MethodPost, "/api/v1/validate", map[string]any{
		"expression": "missing + 1",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["valid"])

	resp, body = doJSON(t, s, http.MethodPost, "/api/v1/validate", map[string]any{
		"expression": "1 +",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, false, body["valid"])
	assert.NotEmpty(t, body["error"])
}

func TestVariableCRUD(t *testing.T) {
	s := newTestServer(t)

	resp, body := doJSON(t, s, http.MethodPut, "/api/v1/variables/level", map[string]any{"value": 15})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 15.0, body["value"])

	resp, body = doJSON(t, s, http.MethodGet, "/api/v1/variables/level", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 15.0, body["value"])

	resp, body = doJSON(t, s, http.MethodPost, "/api/v1/evaluate", map[string]any{
		"expression": "100 if level > 10 else 50",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 100.0, body["result"])

	resp, body = doJSON(t, s, http.MethodGet, "/api/v1/variables", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, map[string]any{"level": 15.0}, body["data"])

	resp, _ = doJSON(t, s, http.MethodDelete, "/api/v1/variables/level", nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp, _ = doJSON(t, s, http.MethodDelete, "/api/v1/variables/level", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestFunctionsEndpoint(t *testing.T) {
	s := newTestServer(t)
	resp, body := doJSON(t, s, http.MethodGet, "/api/v1/functions", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	names, ok := body["data"].([]any)
	require.True(t, ok)
	assert.Contains(t, names, "clamp")
	assert.Contains(t, names, "lerp")
}
