package mcp

import (
	"context"
	"fmt"
	"strings"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/pkg/errors"

	"github.com/kiranmohan-hh/mcp-server/internal/glean"
)

const (
	toolNameSearch = "glean_search"
	toolNameChat   = "glean_chat"
)

var toolOrder = []string{
	toolNameSearch,
	toolNameChat,
}

type toolHandler func(context.Context, map[string]any) (map[string]any, error)

type toolFormatter func(map[string]any) string

// toolDefinition couples a tool's advertised descriptor with its handler and
// formatter. The registry built from these is the single dispatch table: the
// tools/list payload and the tools/call switch both derive from it, so a name
// can never be advertised without being dispatchable or vice versa.
type toolDefinition struct {
	Name        string
	Description string
	InputSchema map[string]any
	handler     toolHandler
	format      toolFormatter
}

func (s *Server) buildToolRegistry() map[string]toolDefinition {
	return map[string]toolDefinition{
		toolNameSearch: {
			Name:        toolNameSearch,
			Description: "Search your company's content across all datasources connected to Glean.",
			InputSchema: searchInputSchema(),
			handler:     s.runSearch,
			format:      formatSearchResults,
		},
		toolNameChat: {
			Name:        toolNameChat,
			Description: "Ask Glean Assistant a question, optionally continuing an existing conversation.",
			InputSchema: chatInputSchema(),
			handler:     s.runChat,
			format:      formatChatResponse,
		},
	}
}

// runSearch validates the arguments against the search schema and forwards
// them to the upstream client. Validation here is defense in depth: the
// router has no other path to the client, but handlers must not rely on that.
func (s *Server) runSearch(ctx context.Context, args map[string]any) (map[string]any, error) {
	if violations := validateArguments(searchInputSchema(), args); len(violations) > 0 {
		return nil, &argumentViolations{violations: violations}
	}
	return s.client.Search(ctx, args)
}

func (s *Server) runChat(ctx context.Context, args map[string]any) (map[string]any, error) {
	if violations := validateArguments(chatInputSchema(), args); len(violations) > 0 {
		return nil, &argumentViolations{violations: violations}
	}
	return s.client.Chat(ctx, args)
}

// Invoke routes one tool invocation to completion. Every failure mode comes
// back as an error-flagged tool result; nothing is allowed to propagate into
// the transport loop.
func (s *Server) Invoke(ctx context.Context, name string, args map[string]any) *mcplib.CallToolResult {
	if args == nil {
		return mcplib.NewToolResultError("Arguments are required")
	}

	tool, ok := s.tools[name]
	if !ok {
		return mcplib.NewToolResultError(fmt.Sprintf("Unknown tool: %s", name))
	}

	raw, err := tool.handler(ctx, args)
	if err != nil {
		return s.errorResult(name, err)
	}
	return mcplib.NewToolResultText(tool.format(raw))
}

func (s *Server) errorResult(name string, err error) *mcplib.CallToolResult {
	var violations *argumentViolations
	if errors.As(err, &violations) {
		s.logger.Debug("rejected tool arguments", "tool", name, "violations", len(violations.violations))
		return mcplib.NewToolResultError(strings.Join(violations.violations, "\n"))
	}

	var apiErr *glean.APIError
	if errors.As(err, &apiErr) {
		s.logger.Warn("glean api error", "tool", name, "status", apiErr.Status, "kind", string(apiErr.Kind))
		return mcplib.NewToolResultError(glean.FormatAPIError(apiErr))
	}

	s.logger.Error("tool invocation failed", "tool", name, "error", err)
	return mcplib.NewToolResultError("Error: " + err.Error())
}
