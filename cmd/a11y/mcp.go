package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/jingkaihe/a11y/pkg/mcpserver"
	"github.com/jingkaihe/a11y/pkg/presenter"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:         "mcp",
	Annotations: map[string]string{tracingAnnotation: "true"},
	Short:       "Serve the checks as MCP tools over stdio",
	Long: `Start a Model Context Protocol server on stdin/stdout exposing every check as
a tool. Invalid input is returned as a tool error result. Logs go to stderr.`,
	Run: func(cmd *cobra.Command, _ []string) {
		runMCPCommand(cmd.Context())
	},
}

func runMCPCommand(ctx context.Context) {
	// stdout carries the protocol
	presenter.SetQuiet(true)

	srv, err := mcpserver.New(newRegistry())
	if err != nil {
		presenter.Error(err, "failed to create MCP server")
		exit(1)
	}

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := srv.Serve(ctx, os.Stdin, os.Stdout); err != nil && ctx.Err() == nil {
		presenter.Error(err, "MCP server failed")
		exit(1)
	}
}
