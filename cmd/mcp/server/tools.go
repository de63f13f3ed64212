package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jbeshir/badge-desk/cmd/mcp/client"
	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) handleSearchBadges(
	ctx context.Context,
	request mcp.CallToolRequest,
) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	query, _ := args["query"].(string)
	page, pageSize := parsePagination(args)

	res, err := s.client.SearchBadges(ctx, query, page, pageSize)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to search badges: %v", err)), nil
	}

	return formatSearchResult(res)
}

func parsePagination(args map[string]any) (page, pageSize int) {
	if p, ok := args["page"].(float64); ok && p > 0 {
		page = int(p)
	}
	if ps, ok := args["page_size"].(float64); ok && ps > 0 {
		pageSize = min(int(ps), 500)
	}
	return page, pageSize
}

func (s *Server) handleAskAssistant(
	ctx context.Context,
	request mcp.CallToolRequest,
) (*mcp.CallToolResult, error) {
	message, ok := request.GetArguments()["message"].(string)
	if !ok || strings.TrimSpace(message) == "" {
		return mcp.NewToolResultError("message is required"), nil
	}

	reply, err := s.client.Ask(ctx, message)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to ask assistant: %v", err)), nil
	}

	return mcp.NewToolResultText(reply.Reply), nil
}

func (s *Server) handleGetBadge(
	ctx context.Context,
	request mcp.CallToolRequest,
) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	badgeID, ok := args["badge_id"].(string)
	if !ok || badgeID == "" {
		return mcp.NewToolResultError("badge_id is required"), nil
	}
	policy, _ := args["policy"].(string)

	detail, err := s.client.GetBadge(ctx, badgeID, policy)
	if errors.Is(err, client.ErrNotFound) {
		return mcp.NewToolResultError(fmt.Sprintf("no badge with ID %s", badgeID)), nil
	}
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to get badge: %v", err)), nil
	}

	return mcp.NewToolResultText(detail.Formatted), nil
}

func (s *Server) handleRosterStats(
	ctx context.Context,
	_ mcp.CallToolRequest,
) (*mcp.CallToolResult, error) {
	stats, err := s.client.Stats(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to get roster statistics: %v", err)), nil
	}

	var indented strings.Builder
	encoder := json.NewEncoder(&indented)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(stats); err != nil {
		return nil, fmt.Errorf("failed to format statistics: %w", err)
	}

	return mcp.NewToolResultText(indented.String()), nil
}

func formatSearchResult(res *client.SearchResponse) (*mcp.CallToolResult, error) {
	if len(res.Data) == 0 {
		text := "No badges found."
		if len(res.Metadata.Suggestions) > 0 {
			text += " Did you mean: " + strings.Join(res.Metadata.Suggestions, ", ") + "?"
		}
		return mcp.NewToolResultText(text), nil
	}

	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal search results: %w", err)
	}

	return mcp.NewToolResultText(string(data)), nil
}
