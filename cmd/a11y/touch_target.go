package main

import (
	"fmt"

	"github.com/jingkaihe/a11y/pkg/presenter"
	"github.com/jingkaihe/a11y/pkg/tools"
	"github.com/jingkaihe/a11y/pkg/touchtarget"
	"github.com/spf13/cobra"
)

var touchTargetInputKeys = map[string]string{
	"width":   "width",
	"height":  "height",
	"spacing": "spacing",
}

var touchTargetCmd = withTracing(&cobra.Command{
	Use:   "touch-target",
	Short: "Check a touch target against the 44x44px minimum",
	Long: `Check that an interactive element is at least 44x44 CSS pixels and, when
--spacing is given, at least 8px away from its neighbours. Without spacing the
spacing check is reported as unknown.

Examples:
  a11y touch-target --width 40 --height 40
  a11y touch-target --width 48 --height 48 --spacing 4 --json`,
	Run: func(cmd *cobra.Command, args []string) {
		runCheck(cmd, args, "touch_target", touchTargetInputKeys, renderTouchTarget)
	},
})

func init() {
	touchTargetCmd.Flags().StringP("width", "W", "", "Target width in CSS pixels")
	touchTargetCmd.Flags().StringP("height", "H", "", "Target height in CSS pixels")
	touchTargetCmd.Flags().StringP("spacing", "s", "", "Gap to the nearest target in CSS pixels")
	addCheckFlags(touchTargetCmd)
}

func renderTouchTarget(result tools.Result) {
	report := result.(*touchtarget.Report)

	presenter.Section("Touch target")
	presenter.Check("Size", presenter.StatusOf(report.SizeCompliant),
		fmt.Sprintf("%dx%dpx (minimum %dx%dpx)", report.Width, report.Height, touchtarget.MinSize, touchtarget.MinSize))

	switch report.SpacingCompliance {
	case touchtarget.Unknown:
		presenter.Check("Spacing", presenter.StatusUnknown, "not provided")
	default:
		presenter.Check("Spacing", presenter.StatusOf(report.SpacingCompliance == touchtarget.Compliant),
			fmt.Sprintf("%dpx (minimum %dpx)", *report.Spacing, touchtarget.MinSpacing))
	}

	presenter.Bullets("Recommendations", report.Recommendations)
}
