// Package server provides the MCP server implementation.
package server

import (
	"github.com/jbeshir/badge-desk/cmd/mcp/client"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Server is the MCP server for Badge Desk.
type Server struct {
	client    *client.Client
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP server with the given API client.
func NewServer(apiClient *client.Client) *Server {
	s := &Server{
		client: apiClient,
	}

	s.mcpServer = server.NewMCPServer(
		"badge-desk",
		"1.0.0",
		server.WithResourceCapabilities(true, false),
		server.WithLogging(),
	)

	s.registerTools()
	s.registerResources()

	return s
}

// Run starts the MCP server with stdio transport.
func (s *Server) Run() error {
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("search_badges",
		mcp.WithDescription(
			"Search badge holders by name, external ID or internal number. "+
				"Matching is case-insensitive; a two-word query also matches first and last "+
				"name in either order. When few badges match, similar names are suggested."),
		mcp.WithString("query",
			mcp.Description("Text to search for; empty returns every badge"),
		),
		mcp.WithNumber("page",
			mcp.Description("Page number for pagination (1-indexed, default: 1)"),
		),
		mcp.WithNumber("page_size",
			mcp.Description("Number of badges per page (default: 50, max: 500)"),
		),
	), s.handleSearchBadges)

	s.mcpServer.AddTool(mcp.NewTool("ask_badge_assistant",
		mcp.WithDescription(
			"Ask the badge assistant a question in French, for example "+
				"'Liste des badges expirés', 'Badges expirant ce mois', 'Nombre de VIP' "+
				"or 'Statistiques complètes'."),
		mcp.WithString("message",
			mcp.Required(),
			mcp.Description("The question to ask"),
		),
	), s.handleAskAssistant)

	s.mcpServer.AddTool(mcp.NewTool("get_badge",
		mcp.WithDescription("Get full details and status of one badge by external ID or internal number."),
		mcp.WithString("badge_id",
			mcp.Required(),
			mcp.Description("External system ID or internal number of the badge"),
		),
		mcp.WithString("policy",
			mcp.Description("Status policy: 'detail' (only code 1 is active) or 'aggregate' (codes 1 and 4)"),
			mcp.Enum("detail", "aggregate"),
		),
	), s.handleGetBadge)

	s.mcpServer.AddTool(mcp.NewTool("roster_stats",
		mcp.WithDescription(
			"Get roster-wide statistics: totals, active and inactive counts, VIPs, "+
				"expired and expiring badges, counts per token status, per month issued and per type."),
	), s.handleRosterStats)
}
