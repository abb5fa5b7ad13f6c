// Tool interface and registry for the Microsoft Learn tools.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/openai/openai-go"

	"github.com/minhyannv/learn-mcp-agent/pkg/mcp"
)

// docsProvider is the slice of the MCP client the tools depend on.
type docsProvider interface {
	CallTool(ctx context.Context, name string, args map[string]any) (string, error)
}

// Tool represents a tool that can be called by the model.
type Tool interface {
	// Definition returns the tool definition for the chat completions API.
	Definition() openai.ChatCompletionToolParam
	// Execute executes the tool with the given arguments.
	Execute(ctx context.Context, argText string) (string, error)
	// Name returns the tool name.
	Name() string
}

// ToolContext provides shared context for all tools.
type ToolContext struct {
	Provider docsProvider
	// Timeout bounds each provider call.
	Timeout time.Duration
	Verbose bool
}

// Tools holds the fixed tool set and dispatches model tool calls.
type Tools struct {
	tools  map[string]Tool
	params []openai.ChatCompletionToolParam
}

// toolResponse is the wrapper sent back to the model after tool execution.
type toolResponse struct {
	OK   bool        `json:"ok"`
	Tool string      `json:"tool,omitempty"`
	Data interface{} `json:"data,omitempty"`
	Err  string      `json:"error,omitempty"`
}

// NewTools creates the tool set backed by the documentation provider.
func NewTools(ctx ToolContext) *Tools {
	t := &Tools{
		tools: make(map[string]Tool),
	}

	t.Register(&DocsSearchTool{ctx: ctx})
	t.Register(&DocsFetchTool{ctx: ctx})
	t.Register(&CodeSampleSearchTool{ctx: ctx})

	return t
}

// Register adds a tool to the collection.
func (t *Tools) Register(tool Tool) {
	t.tools[tool.Name()] = tool
	t.params = append(t.params, tool.Definition())
}

// Definitions returns all tool definitions for the chat completions API.
func (t *Tools) Definitions() []openai.ChatCompletionToolParam {
	return t.params
}

// Names returns the registered tool names.
func (t *Tools) Names() []string {
	names := make([]string, 0, len(t.tools))
	for name := range t.tools {
		names = append(names, name)
	}
	return names
}

// Execute dispatches a model tool call. An unregistered tool name fails
// fast without contacting the provider.
func (t *Tools) Execute(ctx context.Context, call openai.ChatCompletionMessageToolCall) (string, error) {
	tool, ok := t.tools[call.Function.Name]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownTool, call.Function.Name)
	}
	return tool.Execute(ctx, call.Function.Arguments)
}

// marshalToolResponse encodes a tool response as JSON.
func marshalToolResponse(tool string, data interface{}, err error) (string, error) {
	resp := toolResponse{
		OK:   err == nil,
		Tool: tool,
		Data: data,
	}
	if err != nil {
		resp.Err = err.Error()
	}
	payload, marshalErr := json.Marshal(resp)
	if marshalErr != nil {
		return "", marshalErr
	}
	return string(payload), nil
}

// callProvider forwards one tool call with the per-call timeout applied.
// Provider failures and timeouts come back as descriptions, not raised
// errors, so the chat loop can feed them to the model as context.
func callProvider(ctx context.Context, toolCtx ToolContext, name string, args map[string]any) (string, error) {
	timeout := toolCtx.Timeout
	if timeout <= 0 {
		timeout = defaultToolTimeout
	}
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	text, err := toolCtx.Provider.CallTool(callCtx, name, args)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || callCtx.Err() != nil {
			return "", fmt.Errorf("timeout after %s", timeout)
		}
		return "", err
	}
	if toolCtx.Verbose {
		log.Printf("[verbose] %s: provider returned %d bytes in %s", name, len(text), time.Since(start).Round(time.Millisecond))
	}
	return text, nil
}

// verifyAdvertised warns when a registered tool is absent from the
// server's advertised list. The registry stays authoritative; the server
// list may evolve independently.
func verifyAdvertised(tools *Tools, advertised []mcp.ToolInfo, verbose bool) {
	known := make(map[string]bool, len(advertised))
	for _, info := range advertised {
		known[info.Name] = true
	}
	for _, name := range tools.Names() {
		if !known[name] {
			log.Printf("Warning: tool %q is not advertised by the MCP server", name)
		} else if verbose {
			log.Printf("[verbose] tool %q advertised by server", name)
		}
	}
}
