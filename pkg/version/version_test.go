package version

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleInfo() Info {
	return Info{
		Version:   "0.3.0",
		GitCommit: "9f1c2ab",
		BuildTime: "2026-10-01T12:00:00Z",
		GoVersion: "go1.25.1",
	}
}

func TestGet(t *testing.T) {
	info := Get()

	assert.Equal(t, Version, info.Version)
	assert.Equal(t, GitCommit, info.GitCommit)
	assert.Equal(t, BuildTime, info.BuildTime)
	assert.Contains(t, info.GoVersion, "go")
}

func TestInfo_String(t *testing.T) {
	assert.Equal(t,
		"Version: 0.3.0, GitCommit: 9f1c2ab, BuildTime: 2026-10-01T12:00:00Z, GoVersion: go1.25.1",
		sampleInfo().String())
}

func TestInfo_JSON(t *testing.T) {
	info := sampleInfo()

	jsonString, err := info.JSON()
	require.NoError(t, err)

	var parsed Info
	require.NoError(t, json.Unmarshal([]byte(jsonString), &parsed))
	assert.Equal(t, info, parsed)

	expectedJSON := `{
  "version": "0.3.0",
  "gitCommit": "9f1c2ab",
  "buildTime": "2026-10-01T12:00:00Z",
  "goVersion": "go1.25.1"
}`
	assert.Equal(t, expectedJSON, jsonString)
}
