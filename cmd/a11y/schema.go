package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/jingkaihe/a11y/pkg/presenter"
	"github.com/spf13/cobra"
)

var schemaCmd = &cobra.Command{
	Use:   "schema <tool>",
	Short: "Print the JSON schema of a check's input",
	Long: `Print the JSON schema accepted by --input, the HTTP API and the MCP server
for one check. Run without arguments to list the available checks.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		registry := newRegistry()

		if len(args) == 0 {
			for _, tool := range registry.List() {
				fmt.Printf("%-14s %s\n", tool.Name(), tool.Description())
			}
			return
		}

		tool, err := registry.Get(strings.ReplaceAll(args[0], "-", "_"))
		if err != nil {
			presenter.Error(err, "run 'a11y schema' to list the available checks")
			exit(1)
		}

		data, err := json.MarshalIndent(tool.GenerateSchema(), "", "  ")
		if err != nil {
			presenter.Error(err, "failed to marshal schema")
			exit(1)
		}
		fmt.Fprintln(os.Stdout, string(data))
	},
}
