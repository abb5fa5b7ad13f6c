// CodeSampleSearchTool implementation.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"github.com/openai/openai-go"
)

const codeSampleToolName = "microsoft_code_sample_search"

// CodeSampleSearchTool searches official Microsoft code samples through
// the MCP server.
type CodeSampleSearchTool struct {
	ctx ToolContext
}

func (t *CodeSampleSearchTool) Name() string {
	return codeSampleToolName
}

func (t *CodeSampleSearchTool) Definition() openai.ChatCompletionToolParam {
	return openai.ChatCompletionToolParam{
		Function: openai.FunctionDefinitionParam{
			Name:        codeSampleToolName,
			Description: openai.String("Search official Microsoft code samples and snippets"),
			Parameters: openai.FunctionParameters{
				"type": "object",
				"properties": map[string]any{
					"query": map[string]any{
						"type":        "string",
						"description": "Search query for code samples",
					},
					"language": map[string]any{
						"type":        "string",
						"description": "Optional programming language filter",
					},
				},
				"required": []string{"query"},
			},
		},
	}
}

func (t *CodeSampleSearchTool) Execute(ctx context.Context, argText string) (string, error) {
	var args struct {
		Query    string `json:"query"`
		Language string `json:"language"`
	}
	if err := json.Unmarshal([]byte(argText), &args); err != nil {
		return marshalToolResponse(codeSampleToolName, nil, err)
	}
	if args.Query == "" {
		return marshalToolResponse(codeSampleToolName, nil, errors.New("query is required"))
	}
	if t.ctx.Verbose {
		log.Printf("[verbose] %s: query=%q language=%q", codeSampleToolName, args.Query, args.Language)
	}

	providerArgs := map[string]any{"query": args.Query}
	if args.Language != "" {
		providerArgs["language"] = args.Language
	}
	content, err := callProvider(ctx, t.ctx, codeSampleToolName, providerArgs)
	if err != nil {
		return marshalToolResponse(codeSampleToolName, nil, err)
	}

	result := struct {
		Query    string `json:"query"`
		Language string `json:"language,omitempty"`
		Content  string `json:"content"`
	}{
		Query:    args.Query,
		Language: args.Language,
		Content:  content,
	}
	return marshalToolResponse(codeSampleToolName, result, nil)
}
