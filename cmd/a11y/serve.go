package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/jingkaihe/a11y/pkg/logger"
	"github.com/jingkaihe/a11y/pkg/presenter"
	"github.com/jingkaihe/a11y/pkg/server"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var serveCmd = &cobra.Command{
	Use:         "serve",
	Annotations: map[string]string{tracingAnnotation: "true"},
	Short:       "Serve the checks over an HTTP JSON API",
	Long: `Start an HTTP server exposing every check:

  GET  /healthz
  GET  /api/version
  GET  /api/tools
  GET  /api/tools/{name}/schema
  POST /api/tools/{name}      (JSON body is the check input)

Invalid input returns 400 and unknown checks 404. The server will be available
at http://localhost:8080 by default.`,
	Run: func(cmd *cobra.Command, _ []string) {
		runServeCommand(cmd.Context(), getServeConfigFromFlags(cmd))
	},
}

func init() {
	defaults := server.NewConfig()
	serveCmd.Flags().String("host", defaults.Host, "Host to bind the server to")
	serveCmd.Flags().Int("port", defaults.Port, "Port to bind the server to")
	viper.BindPFlag("serve.host", serveCmd.Flags().Lookup("host"))
	viper.BindPFlag("serve.port", serveCmd.Flags().Lookup("port"))
}

// getServeConfigFromFlags extracts serve configuration from flags and config
func getServeConfigFromFlags(_ *cobra.Command) *server.Config {
	config := server.NewConfig()

	if host := viper.GetString("serve.host"); host != "" {
		config.Host = host
	}
	if port := viper.GetInt("serve.port"); port != 0 {
		config.Port = port
	}

	return config
}

func runServeCommand(ctx context.Context, config *server.Config) {
	srv, err := server.New(config, newRegistry())
	if err != nil {
		presenter.Error(err, "failed to create server")
		exit(1)
	}

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := srv.Start(ctx); err != nil {
		logger.G(ctx).WithError(err).Error("server error")
		presenter.Error(err, "server failed")
		exit(1)
	}

	presenter.Info("Server stopped")
}
