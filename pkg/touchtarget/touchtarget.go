// Package touchtarget checks interactive element dimensions against the WCAG
// target size minimum and the recommended spacing between adjacent targets.
package touchtarget

import (
	"fmt"

	"github.com/pkg/errors"
)

const (
	// MinSize is the minimum width and height in CSS pixels (WCAG 2.5.5)
	MinSize = 44
	// MinSpacing is the recommended gap between adjacent targets in CSS pixels
	MinSpacing = 8
)

// ErrInvalidDimension is returned for non-positive sizes or negative spacing
var ErrInvalidDimension = errors.New("invalid dimension")

// Compliance is a tri-state outcome; spacing is unknown when it was not measured
type Compliance string

const (
	Compliant    Compliance = "yes"
	NonCompliant Compliance = "no"
	Unknown      Compliance = "unknown"
)

// Target is the rendered size of an element and, optionally, its spacing to neighbours
type Target struct {
	Width   int  `json:"width"`
	Height  int  `json:"height"`
	Spacing *int `json:"spacing,omitempty"`
}

// Validate rejects dimensions that cannot describe a rendered element.
func (t Target) Validate() error {
	if t.Width <= 0 || t.Height <= 0 {
		return errors.Wrapf(ErrInvalidDimension, "width and height must be positive, got %dx%d", t.Width, t.Height)
	}
	if t.Spacing != nil && *t.Spacing < 0 {
		return errors.Wrapf(ErrInvalidDimension, "spacing must not be negative, got %d", *t.Spacing)
	}
	return nil
}

// Report is the result of a touch target check
type Report struct {
	Width             int        `json:"width"`
	Height            int        `json:"height"`
	Spacing           *int       `json:"spacing,omitempty"`
	SizeCompliant     bool       `json:"sizeCompliant"`
	SpacingCompliance Compliance `json:"spacingCompliance"`
	Recommendations   []string   `json:"recommendations"`
}

// Passed reports whether the size is compliant and spacing is not known to fail.
func (r *Report) Passed() bool {
	return r.SizeCompliant && r.SpacingCompliance != NonCompliant
}

// Check evaluates a target. Each failing dimension produces its own
// remediation message.
func Check(t Target) (*Report, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}

	report := &Report{
		Width:             t.Width,
		Height:            t.Height,
		Spacing:           t.Spacing,
		SizeCompliant:     t.Width >= MinSize && t.Height >= MinSize,
		SpacingCompliance: Unknown,
		Recommendations:   []string{},
	}

	if t.Width < MinSize {
		report.Recommendations = append(report.Recommendations,
			fmt.Sprintf("Increase width by %dpx to reach the %dpx minimum (currently %dpx)", MinSize-t.Width, MinSize, t.Width))
	}
	if t.Height < MinSize {
		report.Recommendations = append(report.Recommendations,
			fmt.Sprintf("Increase height by %dpx to reach the %dpx minimum (currently %dpx)", MinSize-t.Height, MinSize, t.Height))
	}

	if t.Spacing != nil {
		if *t.Spacing >= MinSpacing {
			report.SpacingCompliance = Compliant
		} else {
			report.SpacingCompliance = NonCompliant
			report.Recommendations = append(report.Recommendations,
				fmt.Sprintf("Increase spacing to adjacent targets to at least %dpx (currently %dpx)", MinSpacing, *t.Spacing))
		}
	}

	return report, nil
}
