package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jingkaihe/a11y/pkg/tools"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	s, err := New(NewConfig(), tools.NewRegistry(tools.NewConfig()))
	require.NoError(t, err)
	return s
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr string
	}{
		{"valid", Config{Host: "localhost", Port: 8080}, ""},
		{"empty host", Config{Host: "", Port: 8080}, "host cannot be empty"},
		{"port too low", Config{Host: "localhost", Port: 0}, "port must be between 1 and 65535"},
		{"port too high", Config{Host: "localhost", Port: 70000}, "port must be between 1 and 65535"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNewInvalidConfig(t *testing.T) {
	_, err := New(&Config{Host: "", Port: 1}, tools.NewRegistry(tools.NewConfig()))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid server configuration")
}

func TestHealth(t *testing.T) {
	rec := do(t, newTestServer(t), http.MethodGet, "/healthz", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(requestIDHeader))
}

func TestRequestIDIsPropagated(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(requestIDHeader, "req-123")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, "req-123", rec.Header().Get(requestIDHeader))
}

func TestListTools(t *testing.T) {
	rec := do(t, newTestServer(t), http.MethodGet, "/api/tools", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var infos []ToolInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &infos))

	names := make([]string, 0, len(infos))
	for _, info := range infos {
		names = append(names, info.Name)
		assert.NotEmpty(t, info.Description)
	}
	assert.Equal(t, []string{"colorblind", "contrast", "focus_order", "font_size", "motion", "touch_target"}, names)
}

func TestToolSchema(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/api/tools/contrast/schema", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var schema map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &schema))
	assert.Equal(t, "object", schema["type"])
	assert.Contains(t, schema["properties"], "foreground")

	rec = do(t, s, http.MethodGet, "/api/tools/nope/schema", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRunTool(t *testing.T) {
	rec := do(t, newTestServer(t), http.MethodPost, "/api/tools/contrast",
		`{"foreground":"#000000","background":"#FFFFFF"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Tool   string         `json:"tool"`
		Passed bool           `json:"passed"`
		Result map[string]any `json:"result"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "contrast", resp.Tool)
	assert.True(t, resp.Passed)
	assert.Equal(t, float64(21), resp.Result["ratio"])
}

func TestRunToolFailingCheckIsNotAnError(t *testing.T) {
	rec := do(t, newTestServer(t), http.MethodPost, "/api/tools/touch_target", `{"width":40,"height":40}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"passed":false`)
}

func TestRunToolErrors(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		body       string
		wantStatus int
		wantError  string
	}{
		{"unknown tool", "/api/tools/nope", `{}`, http.StatusNotFound, "unknown tool"},
		{"malformed json", "/api/tools/contrast", `{`, http.StatusBadRequest, "input must be a JSON object"},
		{"json array", "/api/tools/contrast", `[1,2]`, http.StatusBadRequest, "input must be a JSON object"},
		{"invalid color", "/api/tools/contrast", `{"foreground":"nope","background":"#fff"}`, http.StatusBadRequest, "invalid color"},
		{"hsl rejected", "/api/tools/contrast", `{"foreground":"hsl(0, 0%, 0%)","background":"#fff"}`, http.StatusBadRequest, "unsupported"},
		{"unknown deficiency", "/api/tools/colorblind", `{"color":"#f00","type":"monochromacy"}`, http.StatusBadRequest, "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, newTestServer(t), http.MethodPost, tt.path, tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)

			var body map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, false, body["success"])
			assert.Contains(t, body["error"], tt.wantError)
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	rec := do(t, newTestServer(t), http.MethodGet, "/api/tools/contrast", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
