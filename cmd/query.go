package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"clangdmcp/internal/lsp"
)

// queryCmd is a thin harness standing in for the MCP tool dispatch
// surface named out of scope by the spec: it calls exactly the
// query-surface functions and prints their structured result as JSON. It
// is not itself an MCP server.
var queryCmd = &cobra.Command{
	Use:   "query <operation> <project-root> <file> [line] [col]",
	Short: "Run one code-intelligence query and print the structured result as JSON",
	Args:  cobra.MinimumNArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		operation := args[0]
		projectRoot := args[1]
		file := args[2]

		line, col := 0, 0
		if len(args) >= 5 {
			var err error
			if line, err = strconv.Atoi(args[3]); err != nil {
				return fmt.Errorf("invalid line %q: %w", args[3], err)
			}
			if col, err = strconv.Atoi(args[4]); err != nil {
				return fmt.Errorf("invalid col %q: %w", args[4], err)
			}
		}

		mgr, _, err := loadManager(projectRoot)
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		client, err := mgr.Get(ctx, projectRoot)
		if err != nil {
			return fmt.Errorf("starting clangd: %w", err)
		}

		var result interface{}
		switch operation {
		case "definition":
			result, err = lsp.Definition(ctx, client, file, line, col)
		case "references":
			result, err = lsp.References(ctx, client, file, line, col, true)
		case "hover":
			result, err = lsp.Hover(ctx, client, file, line, col)
		case "document-symbol":
			result, err = lsp.DocumentSymbol(ctx, client, file)
		case "implementation":
			result, err = lsp.Implementation(ctx, client, file, line, col)
		default:
			return fmt.Errorf("unknown operation %q", operation)
		}
		if err != nil {
			return err
		}
		return printJSON(result)
	},
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
