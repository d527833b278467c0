package fontsize

import (
	"fmt"

	"github.com/pkg/errors"
)

// Request is the input of a conversion
type Request struct {
	Value    float64 `json:"value"`
	From     Unit    `json:"from"`
	To       Unit    `json:"to"`
	BaseSize float64 `json:"baseSize,omitempty"`
	Check    bool    `json:"check,omitempty"`
	Context  Context `json:"context,omitempty"`
}

// Accessibility is the outcome of the opt-in minimum size check
type Accessibility struct {
	Context   Context `json:"context"`
	MinimumPx float64 `json:"minimumPx"`
	ActualPx  float64 `json:"actualPx"`
	Compliant bool    `json:"compliant"`
	Message   string  `json:"message,omitempty"`
}

// Report is the result of a conversion
type Report struct {
	Value         float64        `json:"value"`
	From          Unit           `json:"from"`
	To            Unit           `json:"to"`
	BaseSize      float64        `json:"baseSize"`
	Result        float64        `json:"result"`
	Pixels        float64        `json:"pixels"`
	Accessibility *Accessibility `json:"accessibility,omitempty"`
}

// Passed is true unless the opt-in check ran and failed.
func (r *Report) Passed() bool {
	return r.Accessibility == nil || r.Accessibility.Compliant
}

// Run converts the request and, when requested, checks the pixel size
// against the minimum for its context (body when unset).
func Run(req Request) (*Report, error) {
	if req.Value <= 0 {
		return nil, errors.Wrapf(ErrInvalidSize, "value must be positive, got %g", req.Value)
	}
	from, err := ParseUnit(string(req.From))
	if err != nil {
		return nil, err
	}
	to, err := ParseUnit(string(req.To))
	if err != nil {
		return nil, err
	}
	base := req.BaseSize
	if base == 0 {
		base = DefaultBaseSize
	}

	result, err := Convert(req.Value, from, to, base)
	if err != nil {
		return nil, err
	}
	px, err := ToPx(req.Value, from, base)
	if err != nil {
		return nil, err
	}

	report := &Report{
		Value:    req.Value,
		From:     from,
		To:       to,
		BaseSize: base,
		Result:   Round(result, 3),
		Pixels:   Round(px, 3),
	}

	if req.Check {
		ctxName := req.Context
		if ctxName == "" {
			ctxName = ContextBody
		}
		ctx, err := ParseContext(string(ctxName))
		if err != nil {
			return nil, err
		}
		minimum, _ := Minimum(ctx)
		a := &Accessibility{
			Context:   ctx,
			MinimumPx: minimum,
			ActualPx:  report.Pixels,
			Compliant: px >= minimum,
		}
		if !a.Compliant {
			a.Message = fmt.Sprintf("%s text should be at least %gpx (currently %gpx)", ctx, minimum, report.Pixels)
		}
		report.Accessibility = a
	}

	return report, nil
}
