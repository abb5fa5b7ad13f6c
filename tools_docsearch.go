// DocsSearchTool implementation.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"github.com/openai/openai-go"
)

const docsSearchToolName = "microsoft_docs_search"

// DocsSearchTool searches Microsoft Learn documentation through the
// MCP server.
type DocsSearchTool struct {
	ctx ToolContext
}

func (t *DocsSearchTool) Name() string {
	return docsSearchToolName
}

func (t *DocsSearchTool) Definition() openai.ChatCompletionToolParam {
	return openai.ChatCompletionToolParam{
		Function: openai.FunctionDefinitionParam{
			Name:        docsSearchToolName,
			Description: openai.String("Search official Microsoft/Azure documentation on Microsoft Learn"),
			Parameters: openai.FunctionParameters{
				"type": "object",
				"properties": map[string]any{
					"query": map[string]any{
						"type":        "string",
						"description": "Search query for Microsoft documentation",
					},
				},
				"required": []string{"query"},
			},
		},
	}
}

func (t *DocsSearchTool) Execute(ctx context.Context, argText string) (string, error) {
	var args struct {
		Query string `json:"query"`
	}
	if err := json.Unmarshal([]byte(argText), &args); err != nil {
		return marshalToolResponse(docsSearchToolName, nil, err)
	}
	if args.Query == "" {
		return marshalToolResponse(docsSearchToolName, nil, errors.New("query is required"))
	}
	if t.ctx.Verbose {
		log.Printf("[verbose] %s: query=%q", docsSearchToolName, args.Query)
	}

	content, err := callProvider(ctx, t.ctx, docsSearchToolName, map[string]any{"query": args.Query})
	if err != nil {
		return marshalToolResponse(docsSearchToolName, nil, err)
	}

	result := struct {
		Query   string `json:"query"`
		Content string `json:"content"`
	}{
		Query:   args.Query,
		Content: content,
	}
	return marshalToolResponse(docsSearchToolName, result, nil)
}
