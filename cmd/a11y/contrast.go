package main

import (
	"fmt"

	"github.com/jingkaihe/a11y/pkg/contrast"
	"github.com/jingkaihe/a11y/pkg/presenter"
	"github.com/jingkaihe/a11y/pkg/tools"
	"github.com/spf13/cobra"
)

var contrastInputKeys = map[string]string{
	"foreground": "foreground",
	"background": "background",
	"type":       "type",
}

var contrastCmd = withTracing(&cobra.Command{
	Use:   "contrast",
	Short: "Check the WCAG contrast ratio between two colors",
	Long: `Compute the contrast ratio between a foreground and a background color and
report WCAG 2.1 AA and AAA compliance. Text is checked against the normal
and large text thresholds; non-text content (icons, borders, focus rings)
against the 3:1 threshold.

When AA normal fails, a nearby foreground color that reaches 4.5:1 is suggested.

Examples:
  a11y contrast --foreground "#777" --background "#fff"
  a11y contrast --foreground "rgb(0, 0, 0)" --background "#ffffff" --json
  a11y contrast --json '{"foreground":"#000","background":"#fff"}'
  a11y contrast --input '{"foreground":"#949494","background":"#fff","type":"non-text"}'`,
	Run: func(cmd *cobra.Command, args []string) {
		runCheck(cmd, args, "contrast", contrastInputKeys, renderContrast)
	},
})

func init() {
	contrastCmd.Flags().StringP("foreground", "f", "", "Foreground color (#RGB, #RRGGBB or rgb(r, g, b))")
	contrastCmd.Flags().StringP("background", "b", "", "Background color (#RGB, #RRGGBB or rgb(r, g, b))")
	contrastCmd.Flags().StringP("type", "t", string(contrast.ElementText), "Content type (text, non-text)")
	addCheckFlags(contrastCmd)
}

func renderContrast(result tools.Result) {
	report := result.(*contrast.Report)

	presenter.Section("Contrast ratio")
	presenter.Swatch("Foreground", report.Foreground)
	presenter.Swatch("Background", report.Background)
	presenter.Info(fmt.Sprintf("Ratio: %.2f:1 (%s)", report.Ratio, report.Type))

	renderComplianceLines(report)

	if report.SuggestedForeground != "" {
		presenter.Swatch("Suggested foreground", report.SuggestedForeground)
	}
}

// renderComplianceLines prints one line per WCAG tier of a contrast report
func renderComplianceLines(report *contrast.Report) {
	line := func(level contrast.Level, size contrast.TextSize, ok bool) {
		threshold, _ := contrast.Threshold(report.Type, level, size)
		label := fmt.Sprintf("WCAG %s", level)
		if report.Type == contrast.ElementText {
			label = fmt.Sprintf("WCAG %s %s text", level, size)
		}
		presenter.Check(label, presenter.StatusOf(ok), fmt.Sprintf("requires %.1f:1", threshold))
	}

	c := report.Compliance
	line(contrast.LevelAA, contrast.SizeNormal, c.AANormal)
	if c.AALarge != nil {
		line(contrast.LevelAA, contrast.SizeLarge, *c.AALarge)
	}
	line(contrast.LevelAAA, contrast.SizeNormal, c.AAANormal)
	if c.AAALarge != nil {
		line(contrast.LevelAAA, contrast.SizeLarge, *c.AAALarge)
	}
}
