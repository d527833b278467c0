package main

import (
	"fmt"

	"github.com/jingkaihe/a11y/pkg/motion"
	"github.com/jingkaihe/a11y/pkg/presenter"
	"github.com/jingkaihe/a11y/pkg/tools"
	"github.com/spf13/cobra"
)

var motionInputKeys = map[string]string{
	"duration":       "duration",
	"type":           "type",
	"flashes":        "flashes",
	"reduced-motion": "reducedMotion",
}

var motionCmd = withTracing(&cobra.Command{
	Use:   "motion",
	Short: "Check an animation against WCAG motion and flashing limits",
	Long: `Check an animation for three independent rules: users who prefer reduced
motion must be able to turn it off, auto-advancing content (carousels,
tickers, marquees) running longer than 5 seconds needs a pause control, and
content must not flash more than 3 times per second.

Examples:
  a11y motion --duration 6 --type carousel
  a11y motion --duration 0.3 --type fade --reduced-motion --json`,
	Run: func(cmd *cobra.Command, args []string) {
		runCheck(cmd, args, "motion", motionInputKeys, renderMotion)
	},
})

func init() {
	motionCmd.Flags().StringP("duration", "d", "", "Animation duration in seconds")
	motionCmd.Flags().StringP("type", "t", "", "Animation type (fade, slide, carousel, ...)")
	motionCmd.Flags().String("flashes", "", "Flashes per second")
	motionCmd.Flags().Bool("reduced-motion", false, "The user prefers reduced motion")
	addCheckFlags(motionCmd)
}

func renderMotion(result tools.Result) {
	report := result.(*motion.Report)

	presenter.Section(fmt.Sprintf("Motion: %s (%gs)", report.Animation.Type, report.Animation.Duration))
	presenter.Check("Reduced motion", presenter.StatusOf(report.Checks.ReducedMotion), "")
	presenter.Check("Duration", presenter.StatusOf(report.Checks.Duration),
		fmt.Sprintf("auto-advancing content limit %gs", motion.MaxAutoAdvanceSeconds))
	presenter.Check("Flashing", presenter.StatusOf(report.Checks.Flashing),
		fmt.Sprintf("%g per second (maximum %g)", report.Animation.Flashes, motion.MaxFlashesPerSecond))
	presenter.Check("Overall", presenter.StatusOf(report.Compliant), "")

	presenter.Bullets("Issues", report.Issues)
	presenter.Bullets("Recommendations", report.Recommendations)
}
