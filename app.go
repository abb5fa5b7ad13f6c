// Application initialization and setup.
package main

import (
	"context"
	"fmt"
	"log"

	"github.com/minhyannv/learn-mcp-agent/pkg/mcp"
)

// App holds the application state and dependencies.
type App struct {
	Config       *Config
	Model        completer
	MCP          *mcp.Client
	Tools        *Tools
	SystemPrompt string
	Ctx          context.Context
}

// NewApp initializes and returns a new App instance. It opens the MCP
// session and validates the tool registry against the server's advertised
// tools before any conversation starts.
func NewApp(config *Config) (*App, error) {
	if config.Verbose {
		log.Printf("[verbose] app init: endpoint=%s deployment=%s mcp_server=%s max_tool_calls=%d tool_timeout=%s",
			config.Endpoint, config.Deployment, config.MCPServerURL, config.MaxToolCalls, config.ToolTimeout)
	}

	ctx := context.Background()

	// Open the MCP session
	mcpClient := mcp.NewClient(config.MCPServerURL, config.ToolTimeout)
	if err := mcpClient.Initialize(ctx); err != nil {
		return nil, fmt.Errorf("connect to MCP server: %w", err)
	}
	advertised, err := mcpClient.ListTools(ctx)
	if err != nil {
		return nil, fmt.Errorf("list MCP tools: %w", err)
	}
	if config.Verbose {
		log.Printf("[verbose] mcp server advertises %d tool(s)", len(advertised))
	}

	// Build the fixed tool set and cross-check it against the server
	tools := NewTools(ToolContext{
		Provider: mcpClient,
		Timeout:  config.ToolTimeout,
		Verbose:  config.Verbose,
	})
	verifyAdvertised(tools, advertised, config.Verbose)

	// Initialize the model client
	model := newModelClient(config)

	return &App{
		Config:       config,
		Model:        model,
		MCP:          mcpClient,
		Tools:        tools,
		SystemPrompt: systemPrompt,
		Ctx:          ctx,
	}, nil
}
