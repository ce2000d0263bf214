// Package mcp implements the Model Context Protocol server for emslog,
// exposing the parse pipeline and session data as tools for AI agents.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	mcpgo "github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/niems-digital/emslog/internal/ingest"
	"github.com/niems-digital/emslog/internal/registry"
	"github.com/niems-digital/emslog/internal/session"
)

// Server wraps an MCPServer with emslog dependencies.
type Server struct {
	mcp      *mcpserver.MCPServer
	ingestor *ingest.Ingestor
	store    *session.Store
	registry *registry.Registry
	logger   *slog.Logger
}

// NewServer creates a new MCP server over the given pipeline components.
func NewServer(ing *ingest.Ingestor, st *session.Store, reg *registry.Registry, logger *slog.Logger) *Server {
	s := &Server{
		ingestor: ing,
		store:    st,
		registry: reg,
		logger:   logger,
	}

	mcpSrv := mcpserver.NewMCPServer(
		"emslog",
		"1.0.0",
		mcpserver.WithToolCapabilities(true),
	)

	mcpSrv.AddTool(buildParseLogTool(), s.handleParseLog)
	mcpSrv.AddTool(buildListActivitiesTool(), s.handleListActivities)
	mcpSrv.AddTool(buildListProjectsTool(), s.handleListProjects)
	mcpSrv.AddTool(buildStatsTool(), s.handleStats)

	s.mcp = mcpSrv
	return s
}

// MCPServer returns the underlying mcp-go MCPServer for use with ServeStdio.
func (s *Server) MCPServer() *mcpserver.MCPServer {
	return s.mcp
}

// HandleParseLog is the exported handler for the "parse_log" tool.
// It is exposed for direct testing without the mcp-go transport layer.
func (s *Server) HandleParseLog(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	return s.handleParseLog(ctx, req)
}

// HandleListActivities is the exported handler for the "list_activities" tool.
func (s *Server) HandleListActivities(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	return s.handleListActivities(ctx, req)
}

// HandleListProjects is the exported handler for the "list_projects" tool.
func (s *Server) HandleListProjects(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	return s.handleListProjects(ctx, req)
}

// HandleStats is the exported handler for the "log_stats" tool.
func (s *Server) HandleStats(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	return s.handleStats(ctx, req)
}

// --- tool definitions ---

func buildParseLogTool() mcpgo.Tool {
	return mcpgo.NewTool("parse_log",
		mcpgo.WithDescription("Parse a Thai-language operational log into normalized activity records. Replaces the current session's records."),
		mcpgo.WithString("text",
			mcpgo.Required(),
			mcpgo.Description("The raw log text (structured #EMSLOG blocks or free narrative)"),
		),
	)
}

func buildListActivitiesTool() mcpgo.Tool {
	return mcpgo.NewTool("list_activities",
		mcpgo.WithDescription("List the current session's activity records, optionally grouped by date."),
		mcpgo.WithBoolean("by_date",
			mcpgo.Description("Group records by calendar date, newest first (default: false)"),
		),
	)
}

func buildListProjectsTool() mcpgo.Tool {
	return mcpgo.NewTool("list_projects",
		mcpgo.WithDescription("List the projects-master registry entries."),
	)
}

func buildStatsTool() mcpgo.Tool {
	return mcpgo.NewTool("log_stats",
		mcpgo.WithDescription("Session summary: total activities, breakdown by Section-15 mandate and by program, unmatched project count."),
	)
}

// --- tool handlers ---

func (s *Server) handleParseLog(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	if s.ingestor == nil {
		return mcpgo.NewToolResultError("pipeline is unavailable"), nil
	}

	text := req.GetString("text", "")
	if strings.TrimSpace(text) == "" {
		return mcpgo.NewToolResultError("text is required and must not be empty"), nil
	}

	records, err := s.ingestor.Parse(ctx, text)
	if err != nil {
		if errors.Is(err, ingest.ErrParseInFlight) {
			return mcpgo.NewToolResultError("a parse cycle is already in flight"), nil
		}
		s.logger.Error("mcp: parse_log failed", "error", err)
		return mcpgo.NewToolResultErrorf("extraction failed: %v", err), nil
	}

	return toolResultJSON(map[string]any{
		"activities": records,
		"count":      len(records),
	})
}

func (s *Server) handleListActivities(_ context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	if s.store == nil {
		return mcpgo.NewToolResultError("session store is unavailable"), nil
	}
	if req.GetBool("by_date", false) {
		return toolResultJSON(s.store.GroupByDate())
	}
	return toolResultJSON(s.store.List())
}

func (s *Server) handleListProjects(_ context.Context, _ mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	if s.registry == nil {
		return mcpgo.NewToolResultError("project registry is unavailable"), nil
	}
	return toolResultJSON(s.registry.All())
}

func (s *Server) handleStats(_ context.Context, _ mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	if s.store == nil {
		return mcpgo.NewToolResultError("session store is unavailable"), nil
	}
	return toolResultJSON(s.store.Stats())
}

// --- helpers ---

// toolResultJSON marshals v to JSON and returns it as a tool text result.
func toolResultJSON(v any) (*mcpgo.CallToolResult, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("mcp: marshaling result: %w", err)
	}
	return mcpgo.NewToolResultText(string(b)), nil
}
