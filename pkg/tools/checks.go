package tools

import (
	"context"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/pkg/errors"

	"github.com/jingkaihe/a11y/pkg/colorblind"
	"github.com/jingkaihe/a11y/pkg/contrast"
	"github.com/jingkaihe/a11y/pkg/focusorder"
	"github.com/jingkaihe/a11y/pkg/fontsize"
	"github.com/jingkaihe/a11y/pkg/motion"
	"github.com/jingkaihe/a11y/pkg/rgb"
	"github.com/jingkaihe/a11y/pkg/touchtarget"
)

// ContrastInput is the input of the contrast tool
type ContrastInput struct {
	Foreground string `json:"foreground" jsonschema:"description=Foreground color in hex (#RGB or #RRGGBB) or rgb() notation"`
	Background string `json:"background" jsonschema:"description=Background color in hex (#RGB or #RRGGBB) or rgb() notation"`
	Type       string `json:"type,omitempty" jsonschema:"description=Content type,enum=text,enum=non-text,default=text"`
}

type ContrastTool struct{}

func (t *ContrastTool) Name() string {
	return "contrast"
}

func (t *ContrastTool) Description() string {
	return `Calculate the WCAG contrast ratio between a foreground and a background color.

Reports AA and AAA compliance for normal and large text, or the single 3:1
threshold for non-text content such as icons and input borders. When AA fails
a compliant foreground close to the original is suggested.`
}

func (t *ContrastTool) GenerateSchema() *jsonschema.Schema {
	return GenerateSchema[ContrastInput]()
}

func (t *ContrastTool) Execute(_ context.Context, input map[string]any) (Result, error) {
	var in ContrastInput
	if err := DecodeInput(input, &in); err != nil {
		return nil, err
	}
	if in.Foreground == "" {
		return nil, missing("foreground")
	}
	if in.Background == "" {
		return nil, missing("background")
	}

	fg, err := rgb.Parse(in.Foreground)
	if err != nil {
		return nil, inputError(err)
	}
	bg, err := rgb.Parse(in.Background)
	if err != nil {
		return nil, inputError(err)
	}
	typ, err := contrast.ParseElementType(in.Type)
	if err != nil {
		return nil, inputError(err)
	}

	return contrast.Check(fg, bg, typ), nil
}

// ColorBlindInput is the input of the color blindness tool
type ColorBlindInput struct {
	Color   string `json:"color" jsonschema:"description=Color to simulate in hex (#RGB or #RRGGBB) or rgb() notation"`
	Type    string `json:"type" jsonschema:"description=Deficiency to simulate,enum=protanopia,enum=deuteranopia,enum=tritanopia,enum=all"`
	Against string `json:"against,omitempty" jsonschema:"description=Optional background color checked for contrast against the simulated color"`
}

type ColorBlindTool struct{}

func (t *ColorBlindTool) Name() string {
	return "colorblind"
}

func (t *ColorBlindTool) Description() string {
	return `Simulate how a color appears with protanopia, deuteranopia or tritanopia.

Use type "all" to simulate every deficiency at once. With a background color,
the contrast of the simulated pair is checked as well.`
}

func (t *ColorBlindTool) GenerateSchema() *jsonschema.Schema {
	return GenerateSchema[ColorBlindInput]()
}

func (t *ColorBlindTool) Execute(_ context.Context, input map[string]any) (Result, error) {
	var in ColorBlindInput
	if err := DecodeInput(input, &in); err != nil {
		return nil, err
	}
	if in.Color == "" {
		return nil, missing("color")
	}
	if in.Type == "" {
		return nil, missing("type")
	}

	c, err := rgb.Parse(in.Color)
	if err != nil {
		return nil, inputError(err)
	}

	var deficiencies []colorblind.Deficiency
	if strings.EqualFold(in.Type, "all") {
		deficiencies = colorblind.Deficiencies()
	} else {
		d, err := colorblind.ParseDeficiency(strings.ToLower(in.Type))
		if err != nil {
			return nil, inputError(err)
		}
		deficiencies = []colorblind.Deficiency{d}
	}

	var against *rgb.Color
	if in.Against != "" {
		bg, err := rgb.Parse(in.Against)
		if err != nil {
			return nil, inputError(err)
		}
		against = &bg
	}

	return colorblind.Run(c, deficiencies, against)
}

// TouchTargetInput is the input of the touch target tool
type TouchTargetInput struct {
	Width   int  `json:"width" jsonschema:"description=Rendered width in CSS pixels,minimum=1"`
	Height  int  `json:"height" jsonschema:"description=Rendered height in CSS pixels,minimum=1"`
	Spacing *int `json:"spacing,omitempty" jsonschema:"description=Gap to the nearest adjacent target in CSS pixels,minimum=0"`
}

type TouchTargetTool struct{}

func (t *TouchTargetTool) Name() string {
	return "touch_target"
}

func (t *TouchTargetTool) Description() string {
	return `Check an interactive element against the 44x44px minimum target size.

Spacing to adjacent targets is checked against 8px when provided and reported
as unknown otherwise.`
}

func (t *TouchTargetTool) GenerateSchema() *jsonschema.Schema {
	return GenerateSchema[TouchTargetInput]()
}

func (t *TouchTargetTool) Execute(_ context.Context, input map[string]any) (Result, error) {
	var in TouchTargetInput
	if err := DecodeInput(input, &in); err != nil {
		return nil, err
	}

	return touchtarget.Check(touchtarget.Target{
		Width:   in.Width,
		Height:  in.Height,
		Spacing: in.Spacing,
	})
}

// MotionInput is the input of the motion tool
type MotionInput struct {
	Duration      *float64 `json:"duration" jsonschema:"description=Animation duration in seconds,minimum=0"`
	Type          string   `json:"type" jsonschema:"description=Animation category such as fade or carousel"`
	Flashes       float64  `json:"flashes,omitempty" jsonschema:"description=Flashes per second,minimum=0"`
	ReducedMotion bool     `json:"reducedMotion,omitempty" jsonschema:"description=Whether the user prefers reduced motion"`
}

type MotionTool struct{}

func (t *MotionTool) Name() string {
	return "motion"
}

func (t *MotionTool) Description() string {
	return `Check an animation against reduced-motion, auto-advance and flashing limits.

Auto-advancing content (carousels, slideshows, tickers, marquees) running longer
than 5 seconds needs a pause control, more than 3 flashes per second always
fails, and any animation is flagged when the user prefers reduced motion.`
}

func (t *MotionTool) GenerateSchema() *jsonschema.Schema {
	return GenerateSchema[MotionInput]()
}

func (t *MotionTool) Execute(_ context.Context, input map[string]any) (Result, error) {
	var in MotionInput
	if err := DecodeInput(input, &in); err != nil {
		return nil, err
	}
	if in.Duration == nil {
		return nil, missing("duration")
	}
	if in.Type == "" {
		return nil, missing("type")
	}

	return motion.Check(motion.Animation{
		Duration:      *in.Duration,
		Type:          in.Type,
		Flashes:       in.Flashes,
		ReducedMotion: in.ReducedMotion,
	})
}

// FontSizeInput is the input of the font size tool
type FontSizeInput struct {
	Value    float64  `json:"value" jsonschema:"description=Font size value,exclusiveMinimum=0"`
	From     string   `json:"from" jsonschema:"description=Unit of value,enum=px,enum=pt,enum=em,enum=rem"`
	To       string   `json:"to" jsonschema:"description=Target unit,enum=px,enum=pt,enum=em,enum=rem"`
	BaseSize *float64 `json:"baseSize,omitempty" jsonschema:"description=Base font size in px used for em and rem,exclusiveMinimum=0"`
	Check    bool     `json:"check,omitempty" jsonschema:"description=Check the size against the minimum for its context"`
	Context  string   `json:"context,omitempty" jsonschema:"description=Text context for the minimum size check,enum=body,enum=heading"`
}

type FontSizeTool struct {
	BaseSize float64
}

func (t *FontSizeTool) Name() string {
	return "font_size"
}

func (t *FontSizeTool) Description() string {
	return `Convert a font size between px, pt, em and rem.

Conversions go through pixels using the base font size (16px unless set).
With check enabled, the size is compared with the 14px body or 18px heading minimum.`
}

func (t *FontSizeTool) GenerateSchema() *jsonschema.Schema {
	return GenerateSchema[FontSizeInput]()
}

func (t *FontSizeTool) Execute(_ context.Context, input map[string]any) (Result, error) {
	var in FontSizeInput
	if err := DecodeInput(input, &in); err != nil {
		return nil, err
	}
	if in.From == "" {
		return nil, missing("from")
	}
	if in.To == "" {
		return nil, missing("to")
	}
	base := t.BaseSize
	if in.BaseSize != nil {
		if *in.BaseSize <= 0 {
			return nil, inputError(errors.Wrapf(fontsize.ErrInvalidSize, "base font size must be positive, got %g", *in.BaseSize))
		}
		base = *in.BaseSize
	}

	report, err := fontsize.Run(fontsize.Request{
		Value:    in.Value,
		From:     fontsize.Unit(in.From),
		To:       fontsize.Unit(in.To),
		BaseSize: base,
		Check:    in.Check,
		Context:  fontsize.Context(in.Context),
	})
	if err != nil {
		return nil, inputError(err)
	}
	return report, nil
}

// FocusOrderInput is the input of the focus order tool
type FocusOrderInput struct {
	Elements      []string `json:"elements" jsonschema:"description=Element labels in document order"`
	TabOrder      []int    `json:"tabOrder" jsonschema:"description=Tab index of each element in the same order as elements"`
	ExpectedOrder []string `json:"expectedOrder,omitempty" jsonschema:"description=Optional expected focus sequence of element labels"`
}

type FocusOrderTool struct{}

func (t *FocusOrderTool) Name() string {
	return "focus_order"
}

func (t *FocusOrderTool) Description() string {
	return `Validate the keyboard focus order of a page.

Elements are classified by label (header, nav, main, button, input, footer,
link) and ordered by tab index. The header must come before main content, the
footer must not, tab indices must be unique, and repeated navigation regions
call for skip links.`
}

func (t *FocusOrderTool) GenerateSchema() *jsonschema.Schema {
	return GenerateSchema[FocusOrderInput]()
}

func (t *FocusOrderTool) Execute(_ context.Context, input map[string]any) (Result, error) {
	var in FocusOrderInput
	if err := DecodeInput(input, &in); err != nil {
		return nil, err
	}

	return focusorder.Validate(focusorder.Sequence{
		Elements:      in.Elements,
		TabOrder:      in.TabOrder,
		ExpectedOrder: in.ExpectedOrder,
	})
}
