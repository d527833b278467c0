package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jingkaihe/a11y/pkg/presenter"
	"github.com/jingkaihe/a11y/pkg/tools"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Output formats for check results
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// CheckConfig holds the options shared by every check command
type CheckConfig struct {
	// Input is the --input object
	Input string
	// JSONInput is the object given to --json, inline or as the next argument
	JSONInput string
	Output    string
	// Args are positional arguments not consumed as the --json object
	Args []string
}

// NewCheckConfig creates a new CheckConfig with default values
func NewCheckConfig() *CheckConfig {
	return &CheckConfig{
		Output: OutputText,
	}
}

// Validate validates the check configuration
func (c *CheckConfig) Validate() error {
	switch c.Output {
	case OutputText, OutputJSON, OutputYAML:
	default:
		return errors.Errorf("unknown output format %q (expected text, json or yaml)", c.Output)
	}
	if len(c.Args) > 0 {
		return errors.Errorf("unexpected argument %q (pass the input object with --json or --input)", c.Args[0])
	}
	if c.Input != "" && c.JSONInput != "" {
		return errors.New("the input object was given to both --json and --input")
	}
	return nil
}

// RawInput returns the input object, from --json or --input
func (c *CheckConfig) RawInput() string {
	if c.JSONInput != "" {
		return c.JSONInput
	}
	return c.Input
}

// addCheckFlags registers the flags shared by every check command. --json
// alone selects JSON output; --json '<object>' also supplies the input.
func addCheckFlags(cmd *cobra.Command) {
	defaults := NewCheckConfig()
	cmd.Args = cobra.MaximumNArgs(1)
	cmd.Flags().String("input", defaults.Input, "JSON object with the check input; its fields override individual flags")
	cmd.Flags().String("json", "", "Print the result as JSON; an optional JSON object argument is used as the input")
	cmd.Flags().Lookup("json").NoOptDefVal = "true"
	cmd.Flags().StringP("output", "o", defaults.Output, "Output format (text, json, yaml)")
}

// getCheckConfigFromFlags extracts the shared check configuration from
// command flags and positional arguments
func getCheckConfigFromFlags(cmd *cobra.Command, args []string) *CheckConfig {
	config := NewCheckConfig()
	config.Args = args

	if input, err := cmd.Flags().GetString("input"); err == nil {
		config.Input = input
	}
	if output, err := cmd.Flags().GetString("output"); err == nil {
		config.Output = output
	}

	raw, err := cmd.Flags().GetString("json")
	if err != nil || !cmd.Flags().Changed("json") {
		return config
	}
	switch raw {
	case "false":
	case "true":
		config.Output = OutputJSON
		// --json '<object>' leaves the object as the next argument
		if len(args) == 1 {
			config.JSONInput = args[0]
			config.Args = nil
		}
	default:
		config.Output = OutputJSON
		config.JSONInput = raw
	}

	return config
}

// collectInput builds the tool input from the flags set on the command
// line, keyed by the tool input field names in keys. Values stay strings;
// the tool decoder converts them. Fields in the --input object win.
func collectInput(flags *pflag.FlagSet, keys map[string]string, rawInput string) (map[string]any, error) {
	input := map[string]any{}
	flags.Visit(func(flag *pflag.Flag) {
		if key, ok := keys[flag.Name]; ok {
			input[key] = flag.Value.String()
		}
	})

	if rawInput == "" {
		return input, nil
	}
	override, err := tools.ParseInputJSON(rawInput)
	if err != nil {
		return nil, err
	}
	for k, v := range override {
		input[k] = v
	}
	return input, nil
}

func newRegistry() *tools.Registry {
	config := tools.NewConfig()
	if base := viper.GetFloat64("font.base_size"); base > 0 {
		config.BaseFontSize = base
	}
	return tools.NewRegistry(config)
}

// renderFunc prints a check result as text
type renderFunc func(result tools.Result)

// runCheck is the shared body of every check command. Input errors are
// reported on stderr and exit 1 with nothing on stdout; a failing check is
// a normal result and exits 0.
func runCheck(cmd *cobra.Command, args []string, toolName string, keys map[string]string, render renderFunc) {
	ctx := cmd.Context()
	config := getCheckConfigFromFlags(cmd, args)

	if err := config.Validate(); err != nil {
		reportUsageError(cmd, "invalid arguments", err)
		exit(1)
	}

	input, err := collectInput(cmd.Flags(), keys, config.RawInput())
	if err != nil {
		reportUsageError(cmd, "invalid input", err)
		exit(1)
	}

	result, err := newRegistry().Run(ctx, toolName, input)
	if err != nil {
		reportUsageError(cmd, "invalid input", err)
		exit(1)
	}

	if err := writeResult(os.Stdout, config.Output, result, render); err != nil {
		presenter.Error(err, "failed to write result")
		exit(1)
	}
}

// reportUsageError prints err on stderr followed by a pointer to the help
func reportUsageError(cmd *cobra.Command, context string, err error) {
	presenter.Error(err, context)
	presenter.Hint(fmt.Sprintf("Run '%s --help' for usage.", cmd.CommandPath()))
}

// writeResult writes the result in the requested format. Text output goes
// through the presenter.
func writeResult(w io.Writer, format string, v any, render renderFunc) error {
	switch format {
	case OutputJSON:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return errors.Wrap(err, "failed to marshal result")
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case OutputYAML:
		data, err := toYAML(v)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	default:
		if result, ok := v.(tools.Result); ok && render != nil {
			render(result)
		}
		return nil
	}
}

// toYAML renders v as block-style YAML using its JSON field names and order
func toYAML(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal result")
	}

	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, errors.Wrap(err, "failed to convert result to YAML")
	}
	blockStyle(&node)

	out, err := yaml.Marshal(&node)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal YAML")
	}
	return out, nil
}

func blockStyle(n *yaml.Node) {
	n.Style = 0
	for _, child := range n.Content {
		blockStyle(child)
	}
}
