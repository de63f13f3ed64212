package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jbeshir/badge-desk/cmd/mcp/client"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testServer(t *testing.T, handler http.HandlerFunc) *Server {
	t.Helper()
	api := httptest.NewServer(handler)
	t.Cleanup(api.Close)
	return NewServer(client.NewClient(api.URL))
}

func callTool(
	t *testing.T,
	handle func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error),
	args map[string]any,
) (string, bool) {
	t.Helper()

	var req mcp.CallToolRequest
	req.Params.Arguments = args

	res, err := handle(t.Context(), req)
	require.NoError(t, err)
	require.Len(t, res.Content, 1)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return text.Text, res.IsError
}

func TestHandleSearchBadges(t *testing.T) {
	cases := []struct {
		name     string
		args     map[string]any
		body     string
		wantText string
	}{
		{
			name:     "matches",
			args:     map[string]any{"query": "curie"},
			body:     `{"data":[{"last_name":"Curie"}],"metadata":{"total":1,"suggestions":[]}}`,
			wantText: `"last_name": "Curie"`,
		},
		{
			name:     "suggestions_only",
			args:     map[string]any{"query": "dupnt"},
			body:     `{"data":[],"metadata":{"total":0,"suggestions":["dupont","jean dupont"]}}`,
			wantText: "No badges found. Did you mean: dupont, jean dupont?",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := testServer(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, tc.args["query"], r.URL.Query().Get("q"))
				_, _ = w.Write([]byte(tc.body))
			})

			text, isError := callTool(t, s.handleSearchBadges, tc.args)
			assert.False(t, isError)
			assert.Contains(t, text, tc.wantText)
		})
	}
}

func TestHandleAskAssistant(t *testing.T) {
	s := testServer(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"reply":"Aucun badge n'est expiré pour le moment.","intent":"expired_list"}`))
	})

	text, isError := callTool(t, s.handleAskAssistant, map[string]any{"message": "Liste des badges expirés"})
	assert.False(t, isError)
	assert.Equal(t, "Aucun badge n'est expiré pour le moment.", text)

	text, isError = callTool(t, s.handleAskAssistant, map[string]any{"message": "  "})
	assert.True(t, isError)
	assert.Equal(t, "message is required", text)
}

func TestHandleGetBadge(t *testing.T) {
	s := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v1/badges/missing" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		assert.Equal(t, "aggregate", r.URL.Query().Get("policy"))
		_, _ = w.Write([]byte(`{"data":{"badge":{"last_name":"Dupont"}},"formatted":"Nom complet:         Jean Dupont\n"}`))
	})

	text, isError := callTool(t, s.handleGetBadge, map[string]any{"badge_id": "EXT-001", "policy": "aggregate"})
	assert.False(t, isError)
	assert.Equal(t, "Nom complet:         Jean Dupont\n", text)

	text, isError = callTool(t, s.handleGetBadge, map[string]any{"badge_id": "missing"})
	assert.True(t, isError)
	assert.Equal(t, "no badge with ID missing", text)

	_, isError = callTool(t, s.handleGetBadge, map[string]any{})
	assert.True(t, isError)
}

func TestHandleRosterStats(t *testing.T) {
	s := testServer(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"total":4,"active":2}`))
	})

	text, isError := callTool(t, s.handleRosterStats, nil)
	assert.False(t, isError)
	assert.JSONEq(t, `{"total":4,"active":2}`, text)
	assert.Contains(t, text, "\n  \"total\": 4")
}

func TestBadgeIDFromURI(t *testing.T) {
	id, err := badgeIDFromURI("badge://EXT-001")
	require.NoError(t, err)
	assert.Equal(t, "EXT-001", id)

	_, err = badgeIDFromURI("article://EXT-001")
	assert.Error(t, err)

	_, err = badgeIDFromURI("badge://")
	assert.Error(t, err)
}
