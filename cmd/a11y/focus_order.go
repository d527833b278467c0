package main

import (
	"fmt"
	"strings"

	"github.com/jingkaihe/a11y/pkg/focusorder"
	"github.com/jingkaihe/a11y/pkg/presenter"
	"github.com/jingkaihe/a11y/pkg/tools"
	"github.com/spf13/cobra"
)

var focusOrderInputKeys = map[string]string{
	"elements":  "elements",
	"tab-order": "tabOrder",
	"expected":  "expectedOrder",
}

var focusOrderCmd = withTracing(&cobra.Command{
	Use:   "focus-order",
	Short: "Validate the keyboard focus order of page regions",
	Long: `Validate a keyboard focus sequence. Elements are classified by keyword
(header, nav, main, button, input, footer, link) and checked for a logical
order: the header before main content, the footer after it, unique tab
indices, skip links for repeated navigation and a contiguous index sequence.

Examples:
  a11y focus-order --elements header,main,footer --tab-order 1,2,3
  a11y focus-order --elements header,nav,main --tab-order 2,1,3 --expected header,nav,main`,
	Run: func(cmd *cobra.Command, args []string) {
		runCheck(cmd, args, "focus_order", focusOrderInputKeys, renderFocusOrder)
	},
})

func init() {
	focusOrderCmd.Flags().StringP("elements", "e", "", "Comma separated element labels in document order")
	focusOrderCmd.Flags().String("tab-order", "", "Comma separated tab index of each element")
	focusOrderCmd.Flags().String("expected", "", "Comma separated expected focus sequence")
	addCheckFlags(focusOrderCmd)
}

func renderFocusOrder(result tools.Result) {
	report := result.(*focusorder.Report)

	stops := make([]string, 0, len(report.FocusOrder))
	for _, stop := range report.FocusOrder {
		stops = append(stops, fmt.Sprintf("%s(%d)", stop.Element, stop.TabIndex))
	}

	presenter.Section("Focus order")
	presenter.Info(strings.Join(stops, " -> "))
	presenter.Check("Logical order", presenter.StatusOf(report.Logical), "")
	presenter.Check("Complete coverage", presenter.StatusOf(report.Complete), "")

	presenter.Bullets("Issues", report.Issues)
	presenter.Bullets("Recommendations", report.Recommendations)
}
