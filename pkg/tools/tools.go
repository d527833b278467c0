// Package tools exposes every accessibility check as a named tool with a JSON
// schema for its input. The same registry backs the CLI, the HTTP API and
// the MCP server, so a check behaves identically on every surface.
package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/invopop/jsonschema"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jingkaihe/a11y/pkg/fontsize"
	"github.com/jingkaihe/a11y/pkg/logger"
	"github.com/jingkaihe/a11y/pkg/telemetry"
)

// ErrUnknownTool is returned when no tool is registered under a name
var ErrUnknownTool = errors.New("unknown tool")

// Result is the typed report of a check
type Result interface {
	Passed() bool
}

// Tool is a single accessibility check
type Tool interface {
	Name() string
	Description() string
	GenerateSchema() *jsonschema.Schema
	Execute(ctx context.Context, input map[string]any) (Result, error)
}

// InputError marks malformed, missing or unsupported input. Every failure of
// a check is an input error since the checks themselves are pure.
type InputError struct {
	Err error
}

func (e *InputError) Error() string {
	return e.Err.Error()
}

func (e *InputError) Unwrap() error {
	return e.Err
}

// IsInputError reports whether err was caused by bad tool input.
func IsInputError(err error) bool {
	var ie *InputError
	return errors.As(err, &ie)
}

func inputError(err error) error {
	if err == nil || IsInputError(err) {
		return err
	}
	return &InputError{Err: err}
}

func missing(field string) error {
	return &InputError{Err: errors.Errorf("%s is required", field)}
}

// GenerateSchema reflects a flat JSON schema for an input type.
func GenerateSchema[T any]() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T

	return reflector.Reflect(v)
}

// DecodeInput decodes a loosely typed map, as produced by flags, JSON or MCP
// arguments, into a tool input struct. Strings are converted to numbers and
// booleans, and comma separated strings to slices.
func DecodeInput(input map[string]any, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		TagName:          "json",
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		DecodeHook:       mapstructure.StringToSliceHookFunc(","),
	})
	if err != nil {
		return errors.Wrap(err, "failed to create input decoder")
	}

	if err := decoder.Decode(input); err != nil {
		return inputError(err)
	}
	return nil
}

// ParseInputJSON parses a JSON object into a tool input map.
func ParseInputJSON(raw string) (map[string]any, error) {
	input := map[string]any{}
	if err := json.Unmarshal([]byte(raw), &input); err != nil {
		return nil, inputError(errors.Wrap(err, "input must be a JSON object"))
	}
	return input, nil
}

// Config holds the defaults tools fall back to when the input omits them
type Config struct {
	BaseFontSize float64
}

// NewConfig returns the default tool configuration
func NewConfig() Config {
	return Config{
		BaseFontSize: fontsize.DefaultBaseSize,
	}
}

// Registry holds all available tools mapped by their names
type Registry struct {
	tools map[string]Tool
}

// NewRegistry creates a registry with every accessibility check
func NewRegistry(cfg Config) *Registry {
	if cfg.BaseFontSize <= 0 {
		cfg.BaseFontSize = fontsize.DefaultBaseSize
	}

	r := &Registry{tools: make(map[string]Tool)}
	for _, tool := range []Tool{
		&ContrastTool{},
		&ColorBlindTool{},
		&TouchTargetTool{},
		&MotionTool{},
		&FontSizeTool{BaseSize: cfg.BaseFontSize},
		&FocusOrderTool{},
	} {
		r.tools[tool.Name()] = tool
	}
	return r
}

// Get returns the tool registered under name
func (r *Registry) Get(name string) (Tool, error) {
	tool, ok := r.tools[name]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownTool, "%q", name)
	}
	return tool, nil
}

// List returns every tool sorted by name
func (r *Registry) List() []Tool {
	out := make([]Tool, 0, len(r.tools))
	for _, tool := range r.tools {
		out = append(out, tool)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

var tracer = telemetry.Tracer("a11y.tools")

// Run executes a tool by name inside a span.
func (r *Registry) Run(ctx context.Context, name string, input map[string]any) (Result, error) {
	tool, err := r.Get(name)
	if err != nil {
		return nil, err
	}

	ctx, span := tracer.Start(
		ctx,
		fmt.Sprintf("tools.run_tool.%s", name),
		trace.WithAttributes(
			attribute.String("tool.name", name),
			attribute.Int("tool.input_fields", len(input)),
		),
	)
	defer span.End()

	log := logger.G(ctx).WithField("tool", name)
	log.WithField("input", input).Debug("running check")

	result, err := tool.Execute(ctx, input)
	if err != nil {
		err = inputError(err)
		span.SetStatus(codes.Error, err.Error())
		span.RecordError(err)
		log.WithError(err).Debug("check rejected input")
		return nil, err
	}

	span.SetAttributes(attribute.Bool("tool.passed", result.Passed()))
	span.SetStatus(codes.Ok, "")
	log.WithField("passed", result.Passed()).Debug("check completed")

	return result, nil
}
