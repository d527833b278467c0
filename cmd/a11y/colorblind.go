package main

import (
	"fmt"

	"github.com/jingkaihe/a11y/pkg/colorblind"
	"github.com/jingkaihe/a11y/pkg/presenter"
	"github.com/jingkaihe/a11y/pkg/tools"
	"github.com/spf13/cobra"
)

var colorblindInputKeys = map[string]string{
	"color":   "color",
	"type":    "type",
	"against": "against",
}

var colorblindCmd = withTracing(&cobra.Command{
	Use:   "colorblind",
	Short: "Simulate how a color appears with color vision deficiencies",
	Long: `Simulate a color as seen with protanopia, deuteranopia or tritanopia using an
LMS color space projection. With --against, the simulated color is checked for
AA contrast against the background simulated with the same deficiency.

Examples:
  a11y colorblind --color "#ff0000" --type protanopia
  a11y colorblind --color "#ff0000" --type all --against "#008000"`,
	Run: func(cmd *cobra.Command, args []string) {
		runCheck(cmd, args, "colorblind", colorblindInputKeys, renderColorblind)
	},
})

func init() {
	colorblindCmd.Flags().StringP("color", "c", "", "Color to simulate (#RGB, #RRGGBB or rgb(r, g, b))")
	colorblindCmd.Flags().StringP("type", "t", "", "Deficiency (protanopia, deuteranopia, tritanopia, all)")
	colorblindCmd.Flags().String("against", "", "Background color to check contrast against after simulation")
	addCheckFlags(colorblindCmd)
}

func renderColorblind(result tools.Result) {
	report := result.(*colorblind.Report)

	presenter.Section("Color blindness simulation")
	presenter.Swatch("Original", report.Color)
	if report.Against != "" {
		presenter.Swatch("Against", report.Against)
	}

	for _, sim := range report.Simulations {
		presenter.Swatch(fmt.Sprintf("%-13s", sim.Type), sim.Simulated)
		if sim.Contrast != nil {
			presenter.Check(
				fmt.Sprintf("%s contrast", sim.Type),
				presenter.StatusOf(sim.Contrast.Passed()),
				fmt.Sprintf("%.2f:1 against %s", sim.Contrast.Ratio, sim.Contrast.Background),
			)
		}
	}
}
