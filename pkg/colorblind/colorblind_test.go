package colorblind

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jingkaihe/a11y/pkg/rgb"
)

func TestSimulateNeutralColorsAreStable(t *testing.T) {
	for _, d := range Deficiencies() {
		for _, c := range []rgb.Color{rgb.Black, rgb.White} {
			got, err := Simulate(c, d)
			require.NoError(t, err)
			assert.Equal(t, c, got, "%s %s", d, c.Hex())
		}
	}
}

func TestSimulateRed(t *testing.T) {
	red := rgb.MustParse("#ff0000")

	protan, err := Simulate(red, Protanopia)
	require.NoError(t, err)
	// red loses most of its saturation and shifts toward a dark olive
	assert.Less(t, protan.R, uint8(255))
	assert.Greater(t, protan.G, uint8(0))

	deutan, err := Simulate(red, Deuteranopia)
	require.NoError(t, err)
	assert.NotEqual(t, red, deutan)
}

func TestSimulateClampsChannels(t *testing.T) {
	for _, d := range Deficiencies() {
		for _, hex := range []string{"#ff0000", "#00ff00", "#0000ff", "#ffff00", "#00ffff", "#ff00ff"} {
			_, err := Simulate(rgb.MustParse(hex), d)
			require.NoError(t, err)
		}
	}
}

func TestTritanopia(t *testing.T) {
	// blue lies on the tritan confusion line
	blue := rgb.MustParse("#0000ff")
	got, err := Simulate(blue, Tritanopia)
	require.NoError(t, err)
	assert.InDelta(t, 255, int(got.B), 2)

	green, err := Simulate(rgb.MustParse("#00ff00"), Tritanopia)
	require.NoError(t, err)
	assert.Equal(t, uint8(255), green.B)
	assert.Greater(t, green.R, uint8(100))
}

func TestParseDeficiency(t *testing.T) {
	for _, name := range []string{"protanopia", "deuteranopia", "tritanopia"} {
		d, err := ParseDeficiency(name)
		require.NoError(t, err)
		assert.Equal(t, Deficiency(name), d)
	}

	_, err := ParseDeficiency("achromatopsia")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownDeficiency))

	_, err = Simulate(rgb.Black, Deficiency("unknown"))
	assert.True(t, errors.Is(err, ErrUnknownDeficiency))
}

func TestRun(t *testing.T) {
	t.Run("all deficiencies", func(t *testing.T) {
		report, err := Run(rgb.MustParse("#3366cc"), Deficiencies(), nil)
		require.NoError(t, err)
		require.Len(t, report.Simulations, 3)
		assert.Equal(t, Deuteranopia, report.Simulations[0].Type)
		assert.Equal(t, Protanopia, report.Simulations[1].Type)
		assert.Equal(t, Tritanopia, report.Simulations[2].Type)
		for _, s := range report.Simulations {
			assert.Equal(t, "#3366cc", s.Original)
			assert.Equal(t, s.RGB.Hex(), s.Simulated)
			assert.Nil(t, s.Contrast)
		}
		assert.True(t, report.Passed())
	})

	t.Run("against a background", func(t *testing.T) {
		// red on green is a classic red-green confusion pair
		report, err := Run(rgb.MustParse("#ff0000"), []Deficiency{Deuteranopia}, &rgb.Color{G: 128})
		require.NoError(t, err)
		require.Len(t, report.Simulations, 1)
		require.NotNil(t, report.Simulations[0].Contrast)
		assert.Equal(t, "#008000", report.Against)
		assert.False(t, report.Passed())
	})

	t.Run("black on white survives every deficiency", func(t *testing.T) {
		report, err := Run(rgb.Black, Deficiencies(), &rgb.White)
		require.NoError(t, err)
		assert.True(t, report.Passed())
	})

	t.Run("unknown deficiency", func(t *testing.T) {
		_, err := Run(rgb.Black, []Deficiency{"monochromacy"}, nil)
		assert.True(t, errors.Is(err, ErrUnknownDeficiency))
	})
}
