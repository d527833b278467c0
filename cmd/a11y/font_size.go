package main

import (
	"fmt"

	"github.com/jingkaihe/a11y/pkg/fontsize"
	"github.com/jingkaihe/a11y/pkg/presenter"
	"github.com/jingkaihe/a11y/pkg/tools"
	"github.com/spf13/cobra"
)

var fontSizeInputKeys = map[string]string{
	"value":   "value",
	"from":    "from",
	"to":      "to",
	"base":    "baseSize",
	"check":   "check",
	"context": "context",
}

var fontSizeCmd = withTracing(&cobra.Command{
	Use:   "font-size",
	Short: "Convert font sizes between px, pt, em and rem",
	Long: `Convert a font size between px, pt, em and rem. em and rem are resolved
against the base font size (--base, config font.base_size, default 16px).

With --check the size is compared with the minimum for its context: 14px for
body text and 18px for headings.

Examples:
  a11y font-size --value 12 --from pt --to px
  a11y font-size --value 0.75 --from rem --to px --check --context body`,
	Run: func(cmd *cobra.Command, args []string) {
		runCheck(cmd, args, "font_size", fontSizeInputKeys, renderFontSize)
	},
})

func init() {
	fontSizeCmd.Flags().StringP("value", "v", "", "Font size value")
	fontSizeCmd.Flags().String("from", "", "Source unit (px, pt, em, rem)")
	fontSizeCmd.Flags().String("to", "", "Target unit (px, pt, em, rem)")
	fontSizeCmd.Flags().String("base", "", "Base font size in px for em and rem")
	fontSizeCmd.Flags().Bool("check", false, "Check the size against the minimum for --context")
	fontSizeCmd.Flags().String("context", string(fontsize.ContextBody), "Text context for --check (body, heading)")
	addCheckFlags(fontSizeCmd)
}

func renderFontSize(result tools.Result) {
	report := result.(*fontsize.Report)

	presenter.Section("Font size")
	presenter.Success(fmt.Sprintf("%g%s = %g%s", report.Value, report.From, report.Result, report.To))
	presenter.Info(fmt.Sprintf("%gpx at a %gpx base", report.Pixels, report.BaseSize))

	if a := report.Accessibility; a != nil {
		detail := fmt.Sprintf("%gpx (minimum %gpx)", a.ActualPx, a.MinimumPx)
		if a.Message != "" {
			detail = a.Message
		}
		presenter.Check(fmt.Sprintf("Minimum size for %s", a.Context), presenter.StatusOf(a.Compliant), detail)
	}
}
