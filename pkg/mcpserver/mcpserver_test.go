package mcpserver

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/jingkaihe/a11y/pkg/tools"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	s, err := New(tools.NewRegistry(tools.NewConfig()))
	require.NoError(t, err)
	return s
}

func call(t *testing.T, s *Server, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args

	result, err := s.handler(name)(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, result)
	return result
}

func text(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.Len(t, result.Content, 1)
	content, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return content.Text
}

func TestToolsList(t *testing.T) {
	s := newTestServer(t)

	resp := s.MCPServer().HandleMessage(context.Background(),
		json.RawMessage(`{"jsonrpc":"2.0","id":1,"method":"tools/list"}`))
	data, err := json.Marshal(resp)
	require.NoError(t, err)

	for _, name := range []string{"contrast", "colorblind", "touch_target", "motion", "font_size", "focus_order"} {
		assert.Contains(t, string(data), `"name":"`+name+`"`)
	}
	assert.Contains(t, string(data), `"inputSchema"`)
}

func TestCallContrast(t *testing.T) {
	result := call(t, newTestServer(t), "contrast", map[string]any{
		"foreground": "#000000",
		"background": "#ffffff",
	})
	assert.False(t, result.IsError)

	var report map[string]any
	require.NoError(t, json.Unmarshal([]byte(text(t, result)), &report))
	assert.Equal(t, float64(21), report["ratio"])
}

func TestCallTouchTargetWithStringNumbers(t *testing.T) {
	result := call(t, newTestServer(t), "touch_target", map[string]any{
		"width":  "40",
		"height": "40",
	})
	assert.False(t, result.IsError)
	assert.Contains(t, text(t, result), "Increase width")
}

func TestCallInvalidInputIsToolError(t *testing.T) {
	s := newTestServer(t)

	result := call(t, s, "colorblind", map[string]any{"color": "hsl(0, 100%, 50%)", "type": "protanopia"})
	assert.True(t, result.IsError)
	assert.Contains(t, text(t, result), "unsupported color format")

	result = call(t, s, "motion", map[string]any{"type": "fade"})
	assert.True(t, result.IsError)
	assert.Contains(t, text(t, result), "duration is required")
}

func TestArguments(t *testing.T) {
	input, err := arguments(nil)
	require.NoError(t, err)
	assert.Empty(t, input)

	input, err = arguments(map[string]any{"width": 44})
	require.NoError(t, err)
	assert.Equal(t, float64(44), input["width"])

	_, err = arguments([]any{1, 2})
	require.Error(t, err)
}
