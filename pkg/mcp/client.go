// Package mcp implements a client for MCP servers over the Streamable
// HTTP transport: JSON-RPC 2.0 requests POSTed to a single endpoint,
// with responses returned as plain JSON or as a text/event-stream body.
package mcp

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

const protocolVersion = "2024-11-05"

// maxResponseBytes caps how much of a server response is read.
const maxResponseBytes = 8 * 1024 * 1024

// ToolInfo describes a tool advertised by the server.
type ToolInfo struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"inputSchema"`
}

// Client talks to a single MCP server. It is not safe for concurrent use;
// the conversation loop issues one call at a time.
type Client struct {
	serverURL string
	http      *http.Client
	sessionID string
	tools     []ToolInfo

	clientName    string
	clientVersion string
}

// NewClient creates a client for the given server URL. The timeout applies
// to each HTTP round trip; callers may impose tighter per-call deadlines
// through the context.
func NewClient(serverURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		serverURL:     strings.TrimSuffix(serverURL, "/"),
		http:          &http.Client{Timeout: timeout},
		clientName:    "learn-mcp-agent",
		clientVersion: "1.0.0",
	}
}

// rpcRequest is a JSON-RPC 2.0 request envelope.
type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      string `json:"id"`
	Method  string `json:"method"`
	Params  any    `json:"params,omitempty"`
}

// rpcError is a JSON-RPC 2.0 error object.
type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// rpcResponse is a JSON-RPC 2.0 response envelope.
type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      string          `json:"id"`
	Result  json.RawMessage `json:"result"`
	Error   *rpcError       `json:"error"`
}

// call sends one JSON-RPC request and returns the result payload.
func (c *Client) call(ctx context.Context, method string, params any) (json.RawMessage, error) {
	req := rpcRequest{
		JSONRPC: "2.0",
		ID:      uuid.NewString(),
		Method:  method,
		Params:  params,
	}
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal %s request: %w", method, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.serverURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create %s request: %w", method, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json, text/event-stream")
	if c.sessionID != "" {
		httpReq.Header.Set("Mcp-Session-Id", c.sessionID)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", method, err)
	}
	defer func() { _ = resp.Body.Close() }()

	// The server assigns a session on the first request and expects it
	// echoed on every subsequent one.
	if sid := resp.Header.Get("Mcp-Session-Id"); sid != "" {
		c.sessionID = sid
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%s: read response: %w", method, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%s: unexpected status %d", method, resp.StatusCode)
	}

	raw := data
	if strings.Contains(resp.Header.Get("Content-Type"), "text/event-stream") {
		raw = parseSSE(data)
		if raw == nil {
			return nil, fmt.Errorf("%s: no JSON-RPC payload in event stream", method)
		}
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		// Notifications may legitimately get an empty body.
		return nil, nil
	}

	var envelope rpcResponse
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("%s: decode response: %w", method, err)
	}
	if envelope.Error != nil {
		return nil, fmt.Errorf("%s: server error %d: %s", method, envelope.Error.Code, envelope.Error.Message)
	}
	return envelope.Result, nil
}

// parseSSE extracts the last JSON-RPC envelope carried in an SSE body.
// Events arrive as "data: <json>" lines separated by blank lines.
func parseSSE(body []byte) json.RawMessage {
	var last json.RawMessage
	scanner := bufio.NewScanner(bytes.NewReader(body))
	scanner.Buffer(make([]byte, 0, 64*1024), maxResponseBytes)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "data: ") {
			continue
		}
		data := strings.TrimSpace(strings.TrimPrefix(line, "data: "))
		if data == "" {
			continue
		}
		var envelope rpcResponse
		if err := json.Unmarshal([]byte(data), &envelope); err != nil {
			continue
		}
		if envelope.Result != nil || envelope.Error != nil {
			last = json.RawMessage(data)
		}
	}
	return last
}

// Initialize opens the MCP session and sends the initialized notification.
func (c *Client) Initialize(ctx context.Context) error {
	_, err := c.call(ctx, "initialize", map[string]any{
		"protocolVersion": protocolVersion,
		"capabilities":    map[string]any{},
		"clientInfo": map[string]any{
			"name":    c.clientName,
			"version": c.clientVersion,
		},
	})
	if err != nil {
		return fmt.Errorf("initialize session: %w", err)
	}
	if _, err := c.call(ctx, "notifications/initialized", nil); err != nil {
		return fmt.Errorf("initialized notification: %w", err)
	}
	return nil
}

// ListTools fetches the tools advertised by the server and caches them.
func (c *Client) ListTools(ctx context.Context) ([]ToolInfo, error) {
	raw, err := c.call(ctx, "tools/list", nil)
	if err != nil {
		return nil, err
	}
	var result struct {
		Tools []ToolInfo `json:"tools"`
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("tools/list: decode result: %w", err)
	}
	c.tools = result.Tools
	return result.Tools, nil
}

// Tools returns the tool list from the most recent ListTools call.
func (c *Client) Tools() []ToolInfo {
	return c.tools
}

// CallTool invokes a tool on the server and returns the concatenated text
// content of the result. A result flagged isError comes back as an error so
// the caller can feed it to the model as a failed tool outcome.
func (c *Client) CallTool(ctx context.Context, name string, args map[string]any) (string, error) {
	if args == nil {
		args = map[string]any{}
	}
	raw, err := c.call(ctx, "tools/call", map[string]any{
		"name":      name,
		"arguments": args,
	})
	if err != nil {
		return "", err
	}
	var result struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
		IsError bool `json:"isError"`
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		return "", fmt.Errorf("tools/call %s: decode result: %w", name, err)
	}
	parts := make([]string, 0, len(result.Content))
	for _, item := range result.Content {
		if item.Type == "text" {
			parts = append(parts, item.Text)
		}
	}
	text := strings.Join(parts, "\n")
	if result.IsError {
		if text == "" {
			text = "tool reported an error"
		}
		return "", errors.New(text)
	}
	return text, nil
}
