package main

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/jingkaihe/a11y/pkg/skills"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

// setViper sets key for the duration of the test
func setViper(t *testing.T, key string, value any) {
	t.Helper()
	previous := viper.Get(key)
	viper.Set(key, value)
	t.Cleanup(func() { viper.Set(key, previous) })
}

func TestNewSkillConfig(t *testing.T) {
	config := NewSkillConfig()

	assert.Equal(t, ".", config.Root)
	assert.Equal(t, "SKILLS.md", config.IndexFile)
	assert.Equal(t, "README.md", config.ReadmeFile)
	assert.Equal(t, "skills.json", config.ConfigFile)
	assert.Equal(t, OutputText, config.Output)
	assert.Equal(t, skills.DefaultDebounce, config.Debounce)
	assert.False(t, config.Check)
	assert.False(t, config.Watch)
}

func TestGetSkillConfigFromFlags(t *testing.T) {
	setViper(t, "skills.root", "skills")
	setViper(t, "skills.index_file", "docs/SKILLS.md")

	assert.NoError(t, skillAggregateCmd.ParseFlags([]string{"--check", "--debounce", "1s"}))
	t.Cleanup(func() {
		skillAggregateCmd.Flags().Set("check", "false")
		skillAggregateCmd.Flags().Set("debounce", skills.DefaultDebounce.String())
	})

	config := getSkillConfigFromFlags(skillAggregateCmd)

	assert.Equal(t, "skills", config.Root)
	assert.Equal(t, "docs/SKILLS.md", config.IndexFile)
	assert.Equal(t, "README.md", config.ReadmeFile)
	assert.True(t, config.Check)
	assert.False(t, config.Watch)
	assert.Equal(t, time.Second, config.Debounce)
}

func TestAggregatorConfig(t *testing.T) {
	t.Run("default categories", func(t *testing.T) {
		config := NewSkillConfig().aggregatorConfig()

		assert.Equal(t, []string{"."}, config.Roots)
		assert.Equal(t, "SKILLS.md", config.IndexFile)
		assert.Nil(t, config.Categories)
	})

	t.Run("categories from config", func(t *testing.T) {
		setViper(t, "skills.categories", map[string][]string{
			"tool":  {"*-checker"},
			"guide": {"*-guide"},
		})

		config := NewSkillConfig().aggregatorConfig()

		assert.Equal(t, map[skills.Category][]string{
			skills.CategoryTool: {"*-checker"},
			"guide":             {"*-guide"},
		}, config.Categories)
	})
}

func TestGetServeConfigFromFlags(t *testing.T) {
	tests := []struct {
		name         string
		host         string
		port         int
		expectedHost string
		expectedPort int
	}{
		{
			name:         "defaults",
			expectedHost: "localhost",
			expectedPort: 8080,
		},
		{
			name:         "overrides",
			host:         "0.0.0.0",
			port:         9090,
			expectedHost: "0.0.0.0",
			expectedPort: 9090,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setViper(t, "serve.host", tt.host)
			setViper(t, "serve.port", tt.port)

			config := getServeConfigFromFlags(serveCmd)

			assert.Equal(t, tt.expectedHost, config.Host)
			assert.Equal(t, tt.expectedPort, config.Port)
			assert.NoError(t, config.Validate())
		})
	}
}

func TestBatchExport(t *testing.T) {
	assert.True(t, batchExport(serveCmd))
	assert.True(t, batchExport(mcpCmd))
	assert.False(t, batchExport(contrastCmd))
	assert.False(t, batchExport(skillAggregateCmd))

	assert.NoError(t, skillAggregateCmd.Flags().Set("watch", "true"))
	t.Cleanup(func() { skillAggregateCmd.Flags().Set("watch", "false") })
	assert.True(t, batchExport(skillAggregateCmd))
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "short", input: "Checks contrast", expected: "Checks contrast"},
		{name: "exact", input: strings.Repeat("a", 60), expected: strings.Repeat("a", 60)},
		{name: "long", input: strings.Repeat("a", 61), expected: strings.Repeat("a", 57) + "..."},
		{name: "multibyte", input: strings.Repeat("é", 70), expected: strings.Repeat("é", 57) + "..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncate(tt.input, 60)
			assert.Equal(t, tt.expected, got)
			assert.True(t, utf8.ValidString(got))
		})
	}
}
