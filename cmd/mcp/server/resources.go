package server

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

const badgeURIPrefix = "badge://"

func (s *Server) registerResources() {
	s.mcpServer.AddResourceTemplate(
		mcp.NewResourceTemplate(
			badgeURIPrefix+"{badge_id}",
			"Individual badge from the roster",
			mcp.WithTemplateDescription(
				"Fetch a badge by external ID or internal number, with its status "+
					"under the server's default policy and the days left before it expires."),
			mcp.WithTemplateMIMEType("application/json"),
		),
		s.handleBadgeResource,
	)
}

func (s *Server) handleBadgeResource(
	ctx context.Context,
	request mcp.ReadResourceRequest,
) ([]mcp.ResourceContents, error) {
	uri := request.Params.URI
	badgeID, err := badgeIDFromURI(uri)
	if err != nil {
		return nil, err
	}

	detail, err := s.client.GetBadge(ctx, badgeID, "")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch badge %s: %w", badgeID, err)
	}

	data, err := json.MarshalIndent(detail.Data, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal badge: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

func badgeIDFromURI(uri string) (string, error) {
	if !strings.HasPrefix(uri, badgeURIPrefix) {
		return "", fmt.Errorf("invalid badge URI format: %s", uri)
	}

	badgeID := strings.TrimPrefix(uri, badgeURIPrefix)
	if badgeID == "" {
		return "", fmt.Errorf("missing badge_id in URI: %s", uri)
	}
	return badgeID, nil
}
