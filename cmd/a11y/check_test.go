package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/jingkaihe/a11y/pkg/contrast"
	"github.com/jingkaihe/a11y/pkg/focusorder"
	"github.com/jingkaihe/a11y/pkg/presenter"
	"github.com/jingkaihe/a11y/pkg/rgb"
	"github.com/jingkaihe/a11y/pkg/tools"
	"github.com/jingkaihe/a11y/pkg/touchtarget"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckConfigValidate(t *testing.T) {
	tests := []struct {
		name          string
		config        CheckConfig
		expectedError string
	}{
		{name: "text", config: CheckConfig{Output: OutputText}},
		{name: "json", config: CheckConfig{Output: OutputJSON, JSONInput: `{"width":44}`}},
		{name: "yaml with input", config: CheckConfig{Output: OutputYAML, Input: `{"width":44}`}},
		{
			name:          "unknown output",
			config:        CheckConfig{Output: "xml"},
			expectedError: `unknown output format "xml"`,
		},
		{
			name:          "stray argument",
			config:        CheckConfig{Output: OutputText, Args: []string{"#fff"}},
			expectedError: `unexpected argument "#fff"`,
		},
		{
			name:          "input object twice",
			config:        CheckConfig{Output: OutputJSON, Input: `{}`, JSONInput: `{}`},
			expectedError: "given to both --json and --input",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.expectedError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestGetCheckConfigFromFlags(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected *CheckConfig
	}{
		{
			name:     "defaults",
			args:     nil,
			expected: &CheckConfig{Output: OutputText, Args: []string{}},
		},
		{
			name:     "json flag",
			args:     []string{"--json"},
			expected: &CheckConfig{Output: OutputJSON, Args: []string{}},
		},
		{
			name:     "json flag wins over output",
			args:     []string{"--output", "yaml", "--json"},
			expected: &CheckConfig{Output: OutputJSON, Args: []string{}},
		},
		{
			name:     "json object as next argument",
			args:     []string{"--json", `{"foreground":"#000","background":"#fff"}`},
			expected: &CheckConfig{JSONInput: `{"foreground":"#000","background":"#fff"}`, Output: OutputJSON},
		},
		{
			name:     "inline json object",
			args:     []string{`--json={"width":44}`},
			expected: &CheckConfig{JSONInput: `{"width":44}`, Output: OutputJSON, Args: []string{}},
		},
		{
			name:     "json disabled",
			args:     []string{"--json=false", "-o", "yaml"},
			expected: &CheckConfig{Output: OutputYAML, Args: []string{}},
		},
		{
			name:     "stray argument without json",
			args:     []string{"#fff"},
			expected: &CheckConfig{Output: OutputText, Args: []string{"#fff"}},
		},
		{
			name:     "input blob and yaml",
			args:     []string{"--input", `{"width":44}`, "-o", "yaml"},
			expected: &CheckConfig{Input: `{"width":44}`, Output: OutputYAML, Args: []string{}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &cobra.Command{Use: "test"}
			addCheckFlags(cmd)
			require.NoError(t, cmd.ParseFlags(tt.args))

			assert.Equal(t, tt.expected, getCheckConfigFromFlags(cmd, cmd.Flags().Args()))
		})
	}
}

func TestCheckCommandArgs(t *testing.T) {
	assert.NoError(t, contrastCmd.Args(contrastCmd, nil))
	assert.NoError(t, contrastCmd.Args(contrastCmd, []string{`{"foreground":"#000"}`}))
	assert.Error(t, contrastCmd.Args(contrastCmd, []string{"#000", "#fff"}))
}

func TestJSONObjectArgumentRunsCheck(t *testing.T) {
	cmd := &cobra.Command{Use: "contrast"}
	cmd.Flags().String("foreground", "", "")
	cmd.Flags().String("background", "", "")
	addCheckFlags(cmd)
	require.NoError(t, cmd.ParseFlags([]string{"--background", "#000", "--json", `{"foreground":"#000","background":"#fff"}`}))

	config := getCheckConfigFromFlags(cmd, cmd.Flags().Args())
	require.NoError(t, config.Validate())

	input, err := collectInput(cmd.Flags(), contrastInputKeys, config.RawInput())
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"foreground": "#000", "background": "#fff"}, input)

	result, err := newRegistry().Run(context.Background(), "contrast", input)
	require.NoError(t, err)
	assert.Equal(t, float64(21), result.(*contrast.Report).Ratio)
}

func TestReportUsageError(t *testing.T) {
	var out, errOut bytes.Buffer
	previous := presenter.SetDefault(presenter.NewWithOptions(&out, &errOut, presenter.ColorNever))
	t.Cleanup(func() { presenter.SetDefault(previous) })

	reportUsageError(&cobra.Command{Use: "contrast"}, "invalid input", errors.New("foreground is required"))

	assert.Equal(t, "[ERROR] invalid input: foreground is required\nRun 'contrast --help' for usage.\n", errOut.String())
	assert.Empty(t, out.String())
}

func newFlagSet(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("width", "", "")
	fs.String("height", "", "")
	fs.String("spacing", "", "")
	fs.Bool("reduced-motion", false, "")
	fs.String("unrelated", "", "")
	require.NoError(t, fs.Parse(args))
	return fs
}

func TestCollectInput(t *testing.T) {
	keys := map[string]string{
		"width":          "width",
		"height":         "height",
		"spacing":        "spacing",
		"reduced-motion": "reducedMotion",
	}

	t.Run("only set flags are collected", func(t *testing.T) {
		fs := newFlagSet(t, "--width", "40", "--reduced-motion", "--unrelated", "x")

		input, err := collectInput(fs, keys, "")
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"width": "40", "reducedMotion": "true"}, input)
	})

	t.Run("input blob overrides flags", func(t *testing.T) {
		fs := newFlagSet(t, "--width", "40", "--height", "40")

		input, err := collectInput(fs, keys, `{"width": 48, "spacing": 8}`)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"width": float64(48), "height": "40", "spacing": float64(8)}, input)
	})

	t.Run("malformed blob", func(t *testing.T) {
		_, err := collectInput(newFlagSet(t), keys, `{"width":`)
		require.Error(t, err)
		assert.True(t, tools.IsInputError(err))
	})
}

func TestFlagInputsDecode(t *testing.T) {
	registry := newRegistry()
	ctx := context.Background()

	result, err := registry.Run(ctx, "touch_target", map[string]any{"width": "40", "height": "40"})
	require.NoError(t, err)
	report := result.(*touchtarget.Report)
	assert.False(t, report.SizeCompliant)
	assert.Len(t, report.Recommendations, 2)

	result, err = registry.Run(ctx, "focus_order", map[string]any{
		"elements": "header,main,footer",
		"tabOrder": "1,2,3",
	})
	require.NoError(t, err)
	focus := result.(*focusorder.Report)
	assert.True(t, focus.Logical)
	assert.True(t, focus.Complete)
	assert.Empty(t, focus.Issues)

	_, err = registry.Run(ctx, "touch_target", map[string]any{"width": "wide", "height": "40"})
	require.Error(t, err)
	assert.True(t, tools.IsInputError(err))
}

func TestWriteResultJSON(t *testing.T) {
	report := contrast.Check(rgb.Black, rgb.White, contrast.ElementText)

	var buf bytes.Buffer
	require.NoError(t, writeResult(&buf, OutputJSON, report, nil))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, float64(21), decoded["ratio"])
}

func TestWriteResultYAML(t *testing.T) {
	report := contrast.Check(rgb.Black, rgb.White, contrast.ElementText)

	var buf bytes.Buffer
	require.NoError(t, writeResult(&buf, OutputYAML, report, nil))

	out := buf.String()
	assert.Contains(t, out, "foreground: ")
	assert.Contains(t, out, "#000000")
	assert.Contains(t, out, "ratio: 21\n")
	assert.Contains(t, out, "compliance:\n    aaNormal: true\n")
	assert.NotContains(t, out, "{")
}

func withTestPresenter(t *testing.T) *bytes.Buffer {
	t.Helper()
	var out, errOut bytes.Buffer
	previous := presenter.SetDefault(presenter.NewWithOptions(&out, &errOut, presenter.ColorNever))
	t.Cleanup(func() { presenter.SetDefault(previous) })
	return &out
}

func TestRenderContrast(t *testing.T) {
	out := withTestPresenter(t)

	renderContrast(contrast.Check(rgb.MustParse("#777777"), rgb.White, contrast.ElementText))

	text := out.String()
	assert.Contains(t, text, "Foreground #777777")
	assert.Contains(t, text, "Ratio: 4.48:1 (text)")
	assert.Contains(t, text, "✗ FAIL    WCAG AA normal text: requires 4.5:1")
	assert.Contains(t, text, "✓ PASS    WCAG AA large text: requires 3.0:1")
	assert.Contains(t, text, "Suggested foreground #")
}

func TestRenderContrastNonText(t *testing.T) {
	out := withTestPresenter(t)

	renderContrast(contrast.Check(rgb.MustParse("#949494"), rgb.White, contrast.ElementNonText))

	text := out.String()
	assert.Contains(t, text, "✓ PASS    WCAG AA: requires 3.0:1")
	assert.NotContains(t, text, "large")
}

func TestRenderTouchTarget(t *testing.T) {
	out := withTestPresenter(t)

	report, err := touchtarget.Check(touchtarget.Target{Width: 40, Height: 40})
	require.NoError(t, err)
	renderTouchTarget(report)

	text := out.String()
	assert.Contains(t, text, "✗ FAIL    Size: 40x40px (minimum 44x44px)")
	assert.Contains(t, text, "? UNKNOWN Spacing: not provided")
	assert.Contains(t, text, "Recommendations:\n  - Increase width by 4px")
}
