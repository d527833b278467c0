// Package motion checks animations against the WCAG limits on flashing,
// auto-advancing content and the user's reduced-motion preference.
package motion

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

const (
	// MaxAutoAdvanceSeconds is the longest auto-advancing content may run without a pause control (WCAG 2.2.2)
	MaxAutoAdvanceSeconds = 5.0
	// MaxFlashesPerSecond is the general flash threshold (WCAG 2.3.1)
	MaxFlashesPerSecond = 3.0
)

// ErrInvalidAnimation is returned for negative durations or flash rates
var ErrInvalidAnimation = errors.New("invalid animation")

// autoAdvancingKeywords identify content that moves on its own schedule
var autoAdvancingKeywords = []string{
	"carousel",
	"slideshow",
	"slider",
	"ticker",
	"marquee",
	"autoplay",
	"auto-scroll",
	"rotator",
}

// Animation describes one animated element
type Animation struct {
	Duration      float64 `json:"duration"`
	Type          string  `json:"type"`
	Flashes       float64 `json:"flashes"`
	ReducedMotion bool    `json:"reducedMotion"`
}

// Validate rejects negative measurements.
func (a Animation) Validate() error {
	if a.Duration < 0 {
		return errors.Wrapf(ErrInvalidAnimation, "duration must not be negative, got %g", a.Duration)
	}
	if a.Flashes < 0 {
		return errors.Wrapf(ErrInvalidAnimation, "flash rate must not be negative, got %g", a.Flashes)
	}
	return nil
}

// IsAutoAdvancing reports whether the category label names auto-advancing content.
func IsAutoAdvancing(category string) bool {
	c := strings.ToLower(category)
	for _, keyword := range autoAdvancingKeywords {
		if strings.Contains(c, keyword) {
			return true
		}
	}
	return false
}

// Checks holds the outcome of each independent rule
type Checks struct {
	ReducedMotion bool `json:"reducedMotion"`
	Duration      bool `json:"duration"`
	Flashing      bool `json:"flashing"`
}

// Report is the result of a motion check
type Report struct {
	Animation       Animation `json:"animation"`
	Compliant       bool      `json:"compliant"`
	Checks          Checks    `json:"checks"`
	Issues          []string  `json:"issues"`
	Recommendations []string  `json:"recommendations"`
}

// Passed reports overall compliance.
func (r *Report) Passed() bool {
	return r.Compliant
}

// Check runs the three rules independently and joins their findings.
// A reduced-motion preference flags any animation, whatever its other properties.
func Check(a Animation) (*Report, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}

	var issues, recommendations orderedSet
	checks := Checks{ReducedMotion: true, Duration: true, Flashing: true}

	if a.ReducedMotion {
		checks.ReducedMotion = false
		issues.add("User prefers reduced motion but the animation still plays")
		recommendations.add("Wrap the animation in a prefers-reduced-motion media query and disable or simplify it")
		recommendations.add("Provide a control to pause, stop or hide the animation")
	}

	if IsAutoAdvancing(a.Type) && a.Duration > MaxAutoAdvanceSeconds {
		checks.Duration = false
		issues.add(fmt.Sprintf("Auto-advancing %s runs for %gs, longer than %gs", a.Type, a.Duration, MaxAutoAdvanceSeconds))
		recommendations.add("Provide a control to pause, stop or hide the animation")
	}

	if a.Flashes > MaxFlashesPerSecond {
		checks.Flashing = false
		issues.add(fmt.Sprintf("Content flashes %g times per second, more than %g", a.Flashes, MaxFlashesPerSecond))
		recommendations.add(fmt.Sprintf("Reduce flashing to at most %g flashes per second or remove it", MaxFlashesPerSecond))
	}

	return &Report{
		Animation:       a,
		Compliant:       checks.ReducedMotion && checks.Duration && checks.Flashing,
		Checks:          checks,
		Issues:          issues.items(),
		Recommendations: recommendations.items(),
	}, nil
}

type orderedSet struct {
	seen   map[string]struct{}
	values []string
}

func (s *orderedSet) add(v string) {
	if s.seen == nil {
		s.seen = make(map[string]struct{})
	}
	if _, ok := s.seen[v]; ok {
		return
	}
	s.seen[v] = struct{}{}
	s.values = append(s.values, v)
}

func (s *orderedSet) items() []string {
	if s.values == nil {
		return []string{}
	}
	return s.values
}
