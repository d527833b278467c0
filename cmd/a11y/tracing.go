package main

import (
	"fmt"

	"github.com/jingkaihe/a11y/pkg/telemetry"
	"github.com/jingkaihe/a11y/pkg/version"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// tracingAnnotation marks commands that run until interrupted; their spans
// are exported in batches
const tracingAnnotation = "tracing.batch"

// initTracing initializes the OpenTelemetry tracing system from configuration
func initTracing(cmd *cobra.Command) (telemetry.ShutdownFunc, error) {
	config := telemetry.NewConfig()
	config.Enabled = viper.GetBool("tracing.enabled")
	config.ServiceVersion = version.Get().Version
	config.Endpoint = viper.GetString("tracing.endpoint")
	config.Sync = !batchExport(cmd)
	if sampler := viper.GetString("tracing.sampler"); sampler != "" {
		config.Sampler = sampler
	}
	if viper.IsSet("tracing.ratio") {
		config.Ratio = viper.GetFloat64("tracing.ratio")
	}

	return telemetry.InitTracer(cmd.Context(), config)
}

// batchExport reports whether cmd keeps running after its first result
func batchExport(cmd *cobra.Command) bool {
	if _, ok := cmd.Annotations[tracingAnnotation]; ok {
		return true
	}
	watch, err := cmd.Flags().GetBool("watch")
	return err == nil && watch
}

var tracer = telemetry.Tracer("a11y.cli")

// flags never recorded on spans
var sensitiveFlags = map[string]bool{
	"input": true,
}

// commandSpan is the span of the running command. exit ends it before the
// process terminates.
var commandSpan trace.Span

// endCommandSpan records the exit code on the running command span and ends it
func endCommandSpan(code int) {
	if commandSpan == nil {
		return
	}
	commandSpan.SetAttributes(attribute.Int("exit.code", code))
	if code != 0 {
		commandSpan.SetStatus(codes.Error, fmt.Sprintf("exit status %d", code))
	} else {
		commandSpan.SetStatus(codes.Ok, "")
	}
	commandSpan.End()
	commandSpan = nil
}

// withTracing wraps a Cobra command with a cli.command span
func withTracing(cmd *cobra.Command) *cobra.Command {
	originalRun := cmd.Run

	cmd.Run = func(cmd *cobra.Command, args []string) {
		attrs := []attribute.KeyValue{
			attribute.String("command.name", cmd.Name()),
			attribute.String("command.path", cmd.CommandPath()),
			attribute.Int("args.count", len(args)),
		}
		cmd.Flags().Visit(func(flag *pflag.Flag) {
			if !sensitiveFlags[flag.Name] {
				attrs = append(attrs, attribute.String("flag."+flag.Name, flag.Value.String()))
			}
		})

		ctx, span := tracer.Start(cmd.Context(), "cli.command", trace.WithAttributes(attrs...))
		commandSpan = span

		cmd.SetContext(ctx)
		originalRun(cmd, args)

		endCommandSpan(0)
	}

	return cmd
}

func init() {
	rootCmd.PersistentFlags().Bool("tracing-enabled", false, "Enable OpenTelemetry tracing")
	rootCmd.PersistentFlags().String("tracing-sampler", "ratio", "Tracing sampler type (always, never, ratio)")
	rootCmd.PersistentFlags().Float64("tracing-ratio", 1, "Sampling ratio when using ratio sampler")
	rootCmd.PersistentFlags().String("tracing-endpoint", "", "OTLP HTTP endpoint URL (defaults to OTEL_EXPORTER_OTLP_ENDPOINT)")

	viper.BindPFlag("tracing.enabled", rootCmd.PersistentFlags().Lookup("tracing-enabled"))
	viper.BindPFlag("tracing.sampler", rootCmd.PersistentFlags().Lookup("tracing-sampler"))
	viper.BindPFlag("tracing.ratio", rootCmd.PersistentFlags().Lookup("tracing-ratio"))
	viper.BindPFlag("tracing.endpoint", rootCmd.PersistentFlags().Lookup("tracing-endpoint"))
}
