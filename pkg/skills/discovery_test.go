package skills

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSkill(t *testing.T, root, dir, content string) string {
	t.Helper()
	skillDir := filepath.Join(root, filepath.FromSlash(dir))
	require.NoError(t, os.MkdirAll(skillDir, 0o755))
	path := filepath.Join(skillDir, skillFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const contrastSkill = `---
name: contrast-checker
description: Checks WCAG contrast ratios between two colors
---

# Contrast Checker

## When to Use
Use when reviewing text colors.
`

func TestNewDiscovery(t *testing.T) {
	t.Run("defaults to current directory", func(t *testing.T) {
		discovery, err := NewDiscovery()
		require.NoError(t, err)
		assert.Equal(t, []string{"."}, discovery.Roots())
	})

	t.Run("with custom roots", func(t *testing.T) {
		root := t.TempDir()
		discovery, err := NewDiscovery(WithRoots(root))
		require.NoError(t, err)
		assert.Equal(t, []string{root}, discovery.Roots())
	})

	t.Run("missing root", func(t *testing.T) {
		_, err := NewDiscovery(WithRoots(filepath.Join(t.TempDir(), "missing")))
		require.Error(t, err)
	})

	t.Run("root is a file", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "file.txt")
		require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))
		_, err := NewDiscovery(WithRoots(file))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not a directory")
	})
}

func TestFind(t *testing.T) {
	root := t.TempDir()
	want := []string{
		writeSkill(t, root, "skills/contrast-checker", contrastSkill),
		writeSkill(t, root, "skills/nested/motion-tester", contrastSkill),
	}
	writeSkill(t, root, ".git/ignored", contrastSkill)
	writeSkill(t, root, "node_modules/pkg/ignored", contrastSkill)

	discovery, err := NewDiscovery(WithRoots(root))
	require.NoError(t, err)

	paths, err := discovery.Find(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, paths)
}

func TestParse(t *testing.T) {
	root := t.TempDir()

	t.Run("front matter and body", func(t *testing.T) {
		path := writeSkill(t, root, "contrast-checker", contrastSkill)

		doc, err := Parse(path)
		require.NoError(t, err)
		assert.Equal(t, "contrast-checker", doc.Metadata["name"])
		assert.Equal(t, "Checks WCAG contrast ratios between two colors", doc.Metadata["description"])
		assert.True(t, doc.HasWhenToUse)
		assert.Contains(t, doc.Body, "# Contrast Checker")
		assert.NotContains(t, doc.Body, "name: contrast-checker")
	})

	t.Run("when to use heading is case insensitive", func(t *testing.T) {
		path := writeSkill(t, root, "a", "---\nname: a\ndescription: b\n---\n\n### WHEN TO USE this skill\n")
		doc, err := Parse(path)
		require.NoError(t, err)
		assert.True(t, doc.HasWhenToUse)
	})

	t.Run("text mentioning the phrase is not a heading", func(t *testing.T) {
		path := writeSkill(t, root, "b", "---\nname: b\ndescription: b\n---\n\nWhen to use: always.\n")
		doc, err := Parse(path)
		require.NoError(t, err)
		assert.False(t, doc.HasWhenToUse)
	})

	t.Run("missing front matter", func(t *testing.T) {
		path := writeSkill(t, root, "c", "# Just a heading\n")
		_, err := Parse(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "missing front matter")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Parse(filepath.Join(root, "nope", skillFileName))
		require.Error(t, err)
	})
}

func TestExtractBodyContent(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected string
	}{
		{
			name:     "with front matter",
			content:  "---\nname: test\n---\n\n# Body",
			expected: "# Body",
		},
		{
			name:     "without front matter",
			content:  "# Body only",
			expected: "# Body only",
		},
		{
			name:     "unterminated front matter",
			content:  "---\nname: test\n# Body",
			expected: "---\nname: test\n# Body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractBodyContent(tt.content))
		})
	}
}
