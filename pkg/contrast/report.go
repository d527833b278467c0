package contrast

import (
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/jingkaihe/a11y/pkg/rgb"
)

// Compliance holds the pass/fail outcome for every applicable tier
type Compliance struct {
	AANormal  bool  `json:"aaNormal"`
	AALarge   *bool `json:"aaLarge,omitempty"`
	AAANormal bool  `json:"aaaNormal"`
	AAALarge  *bool `json:"aaaLarge,omitempty"`
}

// Report is the result of a contrast check
type Report struct {
	Foreground          string      `json:"foreground"`
	Background          string      `json:"background"`
	Type                ElementType `json:"type"`
	Ratio               float64     `json:"ratio"`
	RawRatio            float64     `json:"rawRatio"`
	Compliance          Compliance  `json:"compliance"`
	SuggestedForeground string      `json:"suggestedForeground,omitempty"`
}

// Passed reports whether the pair meets AA for normal-size content.
func (r *Report) Passed() bool {
	return r.Compliance.AANormal
}

// Check computes the ratio between fg and bg and evaluates every tier for the
// element type. When AA fails a foreground suggestion is attached.
func Check(fg, bg rgb.Color, t ElementType) *Report {
	ratio := Ratio(fg, bg)
	report := &Report{
		Foreground: fg.Hex(),
		Background: bg.Hex(),
		Type:       t,
		Ratio:      Round2(ratio),
		RawRatio:   ratio,
	}

	meets := func(level Level, size TextSize) bool {
		required, _ := Threshold(t, level, size)
		return ratio >= required
	}

	report.Compliance.AANormal = meets(LevelAA, SizeNormal)
	report.Compliance.AAANormal = meets(LevelAAA, SizeNormal)
	if t == ElementText {
		aaLarge := meets(LevelAA, SizeLarge)
		aaaLarge := meets(LevelAAA, SizeLarge)
		report.Compliance.AALarge = &aaLarge
		report.Compliance.AAALarge = &aaaLarge
	}

	if !report.Compliance.AANormal {
		required, _ := Threshold(t, LevelAA, SizeNormal)
		if suggestion, ok := Suggest(fg, bg, required); ok {
			report.SuggestedForeground = suggestion.Hex()
		}
	}

	return report
}

// suggestSteps is the resolution of the blend search toward black or white
const suggestSteps = 100

// Suggest returns the foreground closest to fg (in CIE-Lab) that reaches
// minRatio against bg. It walks from fg toward black and toward white and
// keeps whichever candidate needed the smaller blend. ok is false when
// neither direction reaches the target.
func Suggest(fg, bg rgb.Color, minRatio float64) (rgb.Color, bool) {
	if Ratio(fg, bg) >= minRatio {
		return fg, true
	}

	from := fg.Colorful()
	best := -1
	var bestColor rgb.Color

	for _, target := range []colorful.Color{rgb.Black.Colorful(), rgb.White.Colorful()} {
		for step := 1; step <= suggestSteps; step++ {
			if best >= 0 && step >= best {
				break
			}
			candidate := rgb.FromColorful(from.BlendLab(target, float64(step)/suggestSteps))
			if Ratio(candidate, bg) >= minRatio {
				best = step
				bestColor = candidate
				break
			}
		}
	}

	if best < 0 {
		return rgb.Color{}, false
	}
	return bestColor, true
}
