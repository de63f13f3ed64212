// Package main provides the entry point for the Badge Desk MCP server.
//
// This MCP server lets AI agents look up badge holders and ask the badge
// assistant questions through the Badge Desk HTTP API.
//
// Configuration:
//
//	BADGE_DESK_API_URL - Base URL of the API (default: http://localhost:8080)
//
// Usage with an MCP client:
//
//	mcp add badge-desk --transport stdio \
//	  --env BADGE_DESK_API_URL=https://badges.example.com \
//	  -- /path/to/badge-desk-mcp
package main

import (
	"log"
	"os"

	"github.com/jbeshir/badge-desk/cmd/mcp/client"
	"github.com/jbeshir/badge-desk/cmd/mcp/server"
)

func main() {
	apiURL := os.Getenv("BADGE_DESK_API_URL")
	if apiURL == "" {
		apiURL = "http://localhost:8080"
	}

	apiClient := client.NewClient(apiURL)
	srv := server.NewServer(apiClient)

	if err := srv.Run(); err != nil {
		log.Fatal(err)
	}
}
