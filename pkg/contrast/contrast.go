// Package contrast implements the WCAG 2.x relative luminance and contrast
// ratio formulas together with the AA/AAA threshold table for text and
// non-text content.
package contrast

import (
	"math"

	"github.com/jingkaihe/a11y/pkg/rgb"
	"github.com/pkg/errors"
)

// ElementType distinguishes text from non-text content such as icons and UI component borders
type ElementType string

const (
	ElementText    ElementType = "text"
	ElementNonText ElementType = "non-text"
)

// Level is a WCAG conformance level
type Level string

const (
	LevelAA  Level = "AA"
	LevelAAA Level = "AAA"
)

// TextSize selects between the normal and large text thresholds
type TextSize string

const (
	SizeNormal TextSize = "normal"
	SizeLarge  TextSize = "large"
)

// Tier identifies one row of the threshold table
type Tier struct {
	Type  ElementType
	Level Level
	Size  TextSize
}

// ErrUnknownElementType is returned for element types other than text and non-text
var ErrUnknownElementType = errors.New("unknown element type")

// sRGB linearisation and luminance coefficients from WCAG 2.x
const (
	linearThreshold = 0.03928
	linearDivisor   = 12.92
	gammaOffset     = 0.055
	gammaDivisor    = 1.055
	gammaExponent   = 2.4
	flare           = 0.05
)

var luminanceCoefficients = [3]float64{0.2126, 0.7152, 0.0722}

var thresholds = map[Tier]float64{
	{ElementText, LevelAA, SizeNormal}:     4.5,
	{ElementText, LevelAA, SizeLarge}:      3.0,
	{ElementText, LevelAAA, SizeNormal}:    7.0,
	{ElementText, LevelAAA, SizeLarge}:     4.5,
	{ElementNonText, LevelAA, SizeNormal}:  3.0,
	{ElementNonText, LevelAAA, SizeNormal}: 3.0,
}

// ParseElementType parses "text" or "non-text"; the empty string means text.
func ParseElementType(s string) (ElementType, error) {
	switch ElementType(s) {
	case "", ElementText:
		return ElementText, nil
	case ElementNonText, "nontext", "non_text":
		return ElementNonText, nil
	}
	return "", errors.Wrapf(ErrUnknownElementType, "%q (expected text or non-text)", s)
}

// Threshold returns the minimum contrast ratio for a tier. Non-text content
// has a single threshold per level, so the size is ignored for it.
func Threshold(t ElementType, level Level, size TextSize) (float64, bool) {
	if t == ElementNonText {
		size = SizeNormal
	}
	v, ok := thresholds[Tier{t, level, size}]
	return v, ok
}

func linearize(v float64) float64 {
	if v <= linearThreshold {
		return v / linearDivisor
	}
	return math.Pow((v+gammaOffset)/gammaDivisor, gammaExponent)
}

// Luminance returns the relative luminance of c in [0,1].
func Luminance(c rgb.Color) float64 {
	channels := c.Normalized()
	var l float64
	for i, v := range channels {
		l += luminanceCoefficients[i] * linearize(v)
	}
	return l
}

// Ratio returns the contrast ratio between two colors, in [1,21]. It is
// symmetric in its arguments.
func Ratio(a, b rgb.Color) float64 {
	return RatioFromLuminance(Luminance(a), Luminance(b))
}

// RatioFromLuminance computes the ratio from two precomputed luminances.
func RatioFromLuminance(l1, l2 float64) float64 {
	lighter, darker := math.Max(l1, l2), math.Min(l1, l2)
	return (lighter + flare) / (darker + flare)
}

// Round2 rounds to two decimals, the precision ratios are displayed with.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
