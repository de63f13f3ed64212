// Package client provides an HTTP client for the Badge Desk API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// ErrNotFound is returned when the API has no badge with the requested identifier.
var ErrNotFound = errors.New("badge not found")

// Badge is a badge holder's record as returned by the API.
type Badge struct {
	FirstName        string     `json:"first_name"`
	LastName         string     `json:"last_name"`
	ExternalID       string     `json:"external_id"`
	InternalNumber   string     `json:"internal_number"`
	TokenStatus      int        `json:"token_status"`
	IssueDate        *time.Time `json:"issue_date"`
	ActivationDate   *time.Time `json:"activation_date"`
	DeactivationDate *time.Time `json:"deactivation_date"`
	VIP              bool       `json:"vip"`
	Address          string     `json:"address"`
	Roles            string     `json:"roles"`
	IssueLevel       string     `json:"issue_level"`
	Type             string     `json:"type"`
}

// SearchResponse is one page of search results.
type SearchResponse struct {
	Data     []Badge `json:"data"`
	Metadata struct {
		Total       int      `json:"total"`
		Page        int      `json:"page"`
		PageSize    int      `json:"page_size"`
		Stage       string   `json:"stage"`
		Suggestions []string `json:"suggestions"`
	} `json:"metadata"`
}

// BadgeDetail is a badge with its derived status.
type BadgeDetail struct {
	Data struct {
		Badge  Badge `json:"badge"`
		Status struct {
			Policy   string `json:"policy"`
			Active   bool   `json:"active"`
			Inactive bool   `json:"inactive"`
			Expired  bool   `json:"expired"`
			VIP      bool   `json:"vip"`
			DaysLeft *int   `json:"days_left,omitempty"`
		} `json:"status"`
		Validity string `json:"validity,omitempty"`
	} `json:"data"`
	Formatted string `json:"formatted"`
}

// ChatReply is the assistant's answer to a message.
type ChatReply struct {
	Reply  string `json:"reply"`
	Intent string `json:"intent"`
}

// Client is an HTTP client for the Badge Desk API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new API client.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *Client) doRequest(ctx context.Context, method, path string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}

	return resp, nil
}

func (c *Client) handleResponse(resp *http.Response, result any) error {
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}

	return nil
}

// SearchBadges runs a roster search. Zero page and pageSize use the server defaults.
func (c *Client) SearchBadges(ctx context.Context, query string, page, pageSize int) (*SearchResponse, error) {
	params := url.Values{}
	if query != "" {
		params.Set("q", query)
	}
	if page > 0 {
		params.Set("page", strconv.Itoa(page))
	}
	if pageSize > 0 {
		params.Set("page_size", strconv.Itoa(pageSize))
	}

	path := "/v1/badges"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	resp, err := c.doRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var result SearchResponse
	if err := c.handleResponse(resp, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// GetBadge fetches a badge by external ID or internal number. An empty policy uses
// the server default.
func (c *Client) GetBadge(ctx context.Context, badgeID, policy string) (*BadgeDetail, error) {
	path := "/v1/badges/" + url.PathEscape(badgeID)
	if policy != "" {
		path += "?" + url.Values{"policy": []string{policy}}.Encode()
	}

	resp, err := c.doRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var detail BadgeDetail
	if err := c.handleResponse(resp, &detail); err != nil {
		return nil, err
	}

	return &detail, nil
}

// Ask sends a chat message to the badge assistant.
func (c *Client) Ask(ctx context.Context, message string) (*ChatReply, error) {
	jsonBody, err := json.Marshal(struct {
		Message string `json:"message"`
	}{Message: message})
	if err != nil {
		return nil, fmt.Errorf("marshalling request: %w", err)
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/v1/chat", bytes.NewReader(jsonBody))
	if err != nil {
		return nil, err
	}

	var reply ChatReply
	if err := c.handleResponse(resp, &reply); err != nil {
		return nil, err
	}

	return &reply, nil
}

// Stats fetches roster statistics as raw JSON.
func (c *Client) Stats(ctx context.Context) (json.RawMessage, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/v1/stats", nil)
	if err != nil {
		return nil, err
	}

	var stats json.RawMessage
	if err := c.handleResponse(resp, &stats); err != nil {
		return nil, err
	}

	return stats, nil
}
