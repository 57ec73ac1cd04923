package mcp

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"time"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/kiranmohan-hh/mcp-server/internal/config"
)

const (
	serverName    = "glean-mcp"
	serverVersion = "0.1.0"
)

// UpstreamClient is the slice of the Glean client the tools need. Tests
// substitute a fake.
type UpstreamClient interface {
	Search(ctx context.Context, request map[string]any) (map[string]any, error)
	Chat(ctx context.Context, request map[string]any) (map[string]any, error)
}

// Server routes MCP tool invocations to the Glean API. It holds no mutable
// state beyond the injected client handle; invocations are handled one at a
// time by the stdio transport.
type Server struct {
	cfg    *config.Config
	client UpstreamClient
	tools  map[string]toolDefinition
	logger *slog.Logger
}

// NewServer wires the tool registry for the given config and upstream client.
// logger may be nil; logging then goes to stderr at the configured level
// (stdout is reserved for protocol frames).
func NewServer(cfg *config.Config, client UpstreamClient, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	}
	s := &Server{
		cfg:    cfg,
		client: client,
		logger: logger,
	}
	s.tools = s.buildToolRegistry()
	return s
}

// ListTools returns the advertised tool descriptors in stable order.
func (s *Server) ListTools() []toolDefinition {
	tools := make([]toolDefinition, 0, len(s.tools))
	for _, name := range toolOrder {
		if tool, ok := s.tools[name]; ok {
			tools = append(tools, tool)
		}
	}
	return tools
}

// Serve runs the stdio transport until the client disconnects or ctx is
// canceled. A transport failure here is the only process-fatal condition.
func (s *Server) Serve(ctx context.Context) error {
	stdio := mcpserver.NewStdioServer(s.protocolServer())
	stdio.SetErrorLogger(slog.NewLogLogger(s.logger.Handler(), slog.LevelError))
	s.logger.Info("serving MCP over stdio", "tools", len(s.tools))
	return stdio.Listen(ctx, os.Stdin, os.Stdout)
}

// protocolServer registers every registry entry with the MCP protocol layer.
// The schema is marshaled from the same map the validator walks, keeping
// advertisement and validation in lockstep.
func (s *Server) protocolServer() *mcpserver.MCPServer {
	srv := mcpserver.NewMCPServer(
		serverName,
		serverVersion,
		mcpserver.WithToolCapabilities(false),
	)
	for _, def := range s.ListTools() {
		schemaJSON, err := json.Marshal(def.InputSchema)
		if err != nil {
			// Schemas are literals; a marshal failure is a programming error.
			panic(err)
		}
		tool := mcplib.NewToolWithRawSchema(def.Name, def.Description, schemaJSON)
		srv.AddTool(tool, s.protocolHandler(def.Name))
	}
	return srv
}

func (s *Server) protocolHandler(name string) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		started := time.Now()

		var args map[string]any
		if request.Params.Arguments != nil {
			args = request.GetArguments()
		}
		result := s.Invoke(ctx, name, args)

		s.logger.Info("tool call",
			"tool", name,
			"duration_ms", time.Since(started).Milliseconds(),
			"is_error", result.IsError,
		)
		return result, nil
	}
}
