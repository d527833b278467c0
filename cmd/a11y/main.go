package main

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/jingkaihe/a11y/pkg/logger"
	"github.com/jingkaihe/a11y/pkg/presenter"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// .env values become regular environment variables for viper
	_ = godotenv.Load()

	viper.SetEnvPrefix("A11Y")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("$HOME/.a11y")
	viper.AddConfigPath(".")

	// Load config file if it exists (ignore errors if it doesn't)
	_ = viper.ReadInConfig()

	viper.SetDefault("log_level", "warn")
	viper.SetDefault("log_format", "fmt")
	viper.SetDefault("font.base_size", 16)
}

var rootCmd = &cobra.Command{
	Use:   "a11y",
	Short: "WCAG accessibility checks and skill metadata tooling",
	Long: `a11y runs small, deterministic WCAG checks: contrast ratio, color blindness
simulation, touch target size, motion limits, font size conversion and focus
order. It also validates and aggregates the SKILL.md documents that describe
these checks.

Every check can be run from the command line, over HTTP (a11y serve) or as an
MCP tool (a11y mcp).`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		if err := logger.Configure(logger.Options{
			Level:  viper.GetString("log_level"),
			Format: viper.GetString("log_format"),
		}); err != nil {
			presenter.Error(err, "invalid logging configuration")
			os.Exit(1)
		}

		shutdown, err := initTracing(cmd)
		if err != nil {
			logger.G(cmd.Context()).WithError(err).Warn("failed to initialize tracing")
			return
		}
		shutdownTracing = shutdown
	},
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Help()
	},
}

var shutdownTracing = func(context.Context) error { return nil }

// exit ends the command span and flushes pending spans before terminating
// the process
func exit(code int) {
	endCommandSpan(code)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := shutdownTracing(ctx); err != nil {
		logger.G(ctx).WithError(err).Warn("failed to flush traces")
	}
	cancel()
	os.Exit(code)
}

func main() {
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "fmt", "Log format (fmt, json)")

	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log_format", rootCmd.PersistentFlags().Lookup("log-format"))

	rootCmd.AddCommand(contrastCmd)
	rootCmd.AddCommand(colorblindCmd)
	rootCmd.AddCommand(touchTargetCmd)
	rootCmd.AddCommand(motionCmd)
	rootCmd.AddCommand(fontSizeCmd)
	rootCmd.AddCommand(focusOrderCmd)
	rootCmd.AddCommand(skillCmd)
	rootCmd.AddCommand(schemaCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		presenter.Error(err, "")
		exit(1)
	}
	exit(0)
}
