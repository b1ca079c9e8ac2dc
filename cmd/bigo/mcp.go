package main

import (
	"bigo/internal/mcp"
	"bigo/internal/slogutil"
	"bigo/internal/store"
	"bigo/internal/version"

	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for editor integration",
	Long: `Start the Model Context Protocol (MCP) server. It communicates over
stdio using newline-delimited JSON-RPC 2.0, so logs go to a file under
.bigo/logs/ to keep stdout clean for the transport.

The server exposes the following tools:
  - analyzeComplexity: Estimate Big-O labels for a file or inline source
  - listFunctions: List function boundaries in a file
  - getStatus: Report version and store statistics

This command is typically invoked by MCP clients and not directly by
users.`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	repoRoot := mustGetRepoRoot()
	cfg := mustLoadConfig(repoRoot)

	factory := slogutil.NewLoggerFactory(repoRoot, cfg, nil)
	defer factory.Close()
	logger := factory.MCPLogger()

	var st store.Store
	if cfg.Store.Enabled {
		cliLogger := newLogger()
		sqlStore, err := openStore(repoRoot, cliLogger)
		if err != nil {
			logger.Warn("Store unavailable", "error", err.Error())
		} else {
			defer sqlStore.Close()
			st = sqlStore
		}
	}

	server := mcp.NewMCPServer(version.Version, repoRoot, st, logger)

	if err := server.Start(); err != nil {
		logger.Error("MCP server error", "error", err.Error())
		return err
	}

	return nil
}
