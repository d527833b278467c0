// Package fontsize converts font sizes between px, pt, em and rem and checks
// them against minimum readable sizes.
package fontsize

import (
	"math"
	"strings"

	"github.com/pkg/errors"
)

// Unit is a CSS font size unit
type Unit string

const (
	UnitPx  Unit = "px"
	UnitPt  Unit = "pt"
	UnitEm  Unit = "em"
	UnitRem Unit = "rem"
)

// Context selects the minimum size a font must meet
type Context string

const (
	ContextBody    Context = "body"
	ContextHeading Context = "heading"
)

const (
	// DefaultBaseSize is the browser default root font size in px
	DefaultBaseSize = 16.0
	// pxPerPt is the px value of one point
	pxPerPt = 1.333
)

var (
	ErrUnknownUnit    = errors.New("unknown unit")
	ErrUnknownContext = errors.New("unknown context")
	ErrInvalidSize    = errors.New("invalid size")
)

var minimumPx = map[Context]float64{
	ContextBody:    14,
	ContextHeading: 18,
}

// ParseUnit validates a unit name, case-insensitively.
func ParseUnit(s string) (Unit, error) {
	u := Unit(strings.ToLower(strings.TrimSpace(s)))
	switch u {
	case UnitPx, UnitPt, UnitEm, UnitRem:
		return u, nil
	}
	return "", errors.Wrapf(ErrUnknownUnit, "%q (expected px, pt, em or rem)", s)
}

// ParseContext validates an accessibility context name.
func ParseContext(s string) (Context, error) {
	c := Context(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := minimumPx[c]; !ok {
		return "", errors.Wrapf(ErrUnknownContext, "%q (expected body or heading)", s)
	}
	return c, nil
}

// Minimum returns the minimum px size for a context.
func Minimum(c Context) (float64, bool) {
	v, ok := minimumPx[c]
	return v, ok
}

// ToPx normalises a value in any unit to pixels.
func ToPx(value float64, unit Unit, base float64) (float64, error) {
	switch unit {
	case UnitPx:
		return value, nil
	case UnitPt:
		return value * pxPerPt, nil
	case UnitEm, UnitRem:
		return value * base, nil
	}
	return 0, errors.Wrapf(ErrUnknownUnit, "%q", unit)
}

// FromPx converts a pixel value to the target unit.
func FromPx(px float64, unit Unit, base float64) (float64, error) {
	switch unit {
	case UnitPx:
		return px, nil
	case UnitPt:
		return px / pxPerPt, nil
	case UnitEm, UnitRem:
		return px / base, nil
	}
	return 0, errors.Wrapf(ErrUnknownUnit, "%q", unit)
}

// Convert converts value from one unit to another, always going through pixels.
func Convert(value float64, from, to Unit, base float64) (float64, error) {
	if base <= 0 {
		return 0, errors.Wrapf(ErrInvalidSize, "base font size must be positive, got %g", base)
	}
	px, err := ToPx(value, from, base)
	if err != nil {
		return 0, err
	}
	return FromPx(px, to, base)
}

// Round rounds to the given number of decimals.
func Round(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}
