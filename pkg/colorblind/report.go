package colorblind

import (
	"github.com/jingkaihe/a11y/pkg/contrast"
	"github.com/jingkaihe/a11y/pkg/rgb"
)

// SimulatedContrast is one simulation, optionally checked against a background
type SimulatedContrast struct {
	Simulation
	Contrast *contrast.Report `json:"contrast,omitempty"`
}

// Report is the result of simulating one color for one or more deficiencies
type Report struct {
	Color       string              `json:"color"`
	Against     string              `json:"against,omitempty"`
	Simulations []SimulatedContrast `json:"simulations"`
}

// Passed is false when a background was given and any simulated pair fails AA.
func (r *Report) Passed() bool {
	for _, s := range r.Simulations {
		if s.Contrast != nil && !s.Contrast.Passed() {
			return false
		}
	}
	return true
}

// Run simulates c for each deficiency. When against is set, each simulated
// color is also checked for text contrast against the equally simulated background.
func Run(c rgb.Color, deficiencies []Deficiency, against *rgb.Color) (*Report, error) {
	report := &Report{Color: c.Hex()}
	if against != nil {
		report.Against = against.Hex()
	}

	for _, d := range deficiencies {
		simulated, err := Simulate(c, d)
		if err != nil {
			return nil, err
		}
		entry := SimulatedContrast{
			Simulation: Simulation{Type: d, Original: c.Hex(), Simulated: simulated.Hex(), RGB: simulated},
		}
		if against != nil {
			bg, err := Simulate(*against, d)
			if err != nil {
				return nil, err
			}
			entry.Contrast = contrast.Check(simulated, bg, contrast.ElementText)
		}
		report.Simulations = append(report.Simulations, entry)
	}

	return report, nil
}
