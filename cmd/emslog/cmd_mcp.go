package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/niems-digital/emslog/internal/ingest"
	emslogmcp "github.com/niems-digital/emslog/internal/mcp"
	"github.com/niems-digital/emslog/internal/session"
)

func mcpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start the MCP (Model Context Protocol) server over stdio",
		Long: `Starts an MCP JSON-RPC 2.0 server that reads from stdin and writes to stdout.
All diagnostic logs go to stderr so that stdout remains exclusively MCP protocol traffic.

Tools exposed:
  parse_log        — parse a log into normalized activity records
  list_activities  — list the current session's records
  list_projects    — list the projects-master registry
  log_stats        — session summary counts`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := newLogger()

			engine, err := newEngine(cmd.Context(), logger)
			if err != nil {
				return fmt.Errorf("mcp: %w", err)
			}
			reg, err := newRegistry(logger)
			if err != nil {
				return fmt.Errorf("mcp: %w", err)
			}

			store := session.NewStore()
			ing := ingest.New(engine, reg, store, logger)

			srv := emslogmcp.NewServer(ing, store, reg, logger)

			// Use a standard log.Logger pointing at stderr for the mcp-go error logger.
			errLogger := log.New(os.Stderr, "mcp: ", log.LstdFlags)

			logger.Info("mcp: emslog MCP server starting", "transport", "stdio")

			return mcpserver.ServeStdio(
				srv.MCPServer(),
				mcpserver.WithErrorLogger(errLogger),
			)
		},
	}

	return cmd
}
