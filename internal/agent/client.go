package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// maxResponseBytes caps how much of a response body is read, so a
// misbehaving endpoint cannot exhaust memory.
const maxResponseBytes = 10 << 20

// wireRequest is the JSON body posted to the generation endpoint.
type wireRequest struct {
	Message string      `json:"message"`
	AgentID string      `json:"agentId"`
	Context wireContext `json:"context"`
}

type wireContext struct {
	UserID    string `json:"userId"`
	SessionID string `json:"sessionId"`
}

// Client is the HTTP implementation of Caller.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a generation client for the agent endpoint at
// baseURL. A non-positive timeout disables the client-side deadline.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("agent base URL is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}, nil
}

// Generate posts the prompt to the agent endpoint and decodes the
// result. Transport-level problems (connectivity, non-2xx status,
// malformed body) are returned as errors; a decoded Response with
// Success false is a collaborator-reported failure and is returned
// without error.
func (c *Client) Generate(ctx context.Context, req Request) (*Response, error) {
	body, err := json.Marshal(wireRequest{
		Message: req.Prompt,
		AgentID: req.AgentID,
		Context: wireContext{
			UserID:    req.UserID,
			SessionID: req.SessionID,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	start := time.Now()
	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("call generation agent: %w", err)
	}
	defer httpResp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(httpResp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		return nil, fmt.Errorf("generation agent returned status %d", httpResp.StatusCode)
	}

	var resp Response
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	c.logger.Debug("generation call finished",
		"agent_id", req.AgentID,
		"success", resp.Success,
		"files", len(resp.Files),
		"elapsed", time.Since(start))
	return &resp, nil
}
