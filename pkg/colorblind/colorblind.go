// Package colorblind simulates how a color is perceived with a dichromatic
// color vision deficiency, using an RGB -> LMS -> RGB transform with a
// deficiency-specific projection in LMS space.
package colorblind

import (
	"math"
	"sort"

	"github.com/pkg/errors"

	"github.com/jingkaihe/a11y/pkg/rgb"
)

// Deficiency is a closed enumeration of the supported color vision deficiencies
type Deficiency string

const (
	Protanopia   Deficiency = "protanopia"
	Deuteranopia Deficiency = "deuteranopia"
	Tritanopia   Deficiency = "tritanopia"
)

// ErrUnknownDeficiency is returned for deficiency names outside the enumeration
var ErrUnknownDeficiency = errors.New("unknown color blindness type")

type matrix [3][3]float64

func (m matrix) apply(v [3]float64) [3]float64 {
	var out [3]float64
	for i := range m {
		out[i] = m[i][0]*v[0] + m[i][1]*v[1] + m[i][2]*v[2]
	}
	return out
}

var rgbToLMS = matrix{
	{17.8824, 43.5161, 4.11935},
	{3.45565, 27.1554, 3.86714},
	{0.0299566, 0.184309, 1.46709},
}

var lmsToRGB = matrix{
	{0.0809444479, -0.130504409, 0.116721066},
	{-0.0102485335, 0.0540193266, -0.113614708},
	{-0.000365296938, -0.00412161469, 0.693511405},
}

// projections are simulation constants, not derived values
var projections = map[Deficiency]matrix{
	Protanopia: {
		{0, 2.02344, -2.52581},
		{0, 1, 0},
		{0, 0, 1},
	},
	Deuteranopia: {
		{1, 0, 0},
		{0.494207, 0, 1.24827},
		{0, 0, 1},
	},
	Tritanopia: {
		{1, 0, 0},
		{0, 1, 0},
		{-0.395913, 0.801109, 0},
	},
}

// Deficiencies returns every supported deficiency in a stable order.
func Deficiencies() []Deficiency {
	out := make([]Deficiency, 0, len(projections))
	for d := range projections {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// ParseDeficiency validates a deficiency name.
func ParseDeficiency(s string) (Deficiency, error) {
	d := Deficiency(s)
	if _, ok := projections[d]; !ok {
		return "", errors.Wrapf(ErrUnknownDeficiency, "%q (expected protanopia, deuteranopia or tritanopia)", s)
	}
	return d, nil
}

// Simulate returns c as perceived with deficiency d.
func Simulate(c rgb.Color, d Deficiency) (rgb.Color, error) {
	projection, ok := projections[d]
	if !ok {
		return rgb.Color{}, errors.Wrapf(ErrUnknownDeficiency, "%q", d)
	}

	lms := projection.apply(rgbToLMS.apply(c.Normalized()))
	out := lmsToRGB.apply(lms)

	return rgb.Color{R: toByte(out[0]), G: toByte(out[1]), B: toByte(out[2])}, nil
}

func toByte(v float64) uint8 {
	v = math.Max(0, math.Min(1, v))
	return uint8(math.Round(v * 255))
}

// Simulation is the outcome for a single deficiency
type Simulation struct {
	Type      Deficiency `json:"type"`
	Original  string     `json:"original"`
	Simulated string     `json:"simulated"`
	RGB       rgb.Color  `json:"rgb"`
}
