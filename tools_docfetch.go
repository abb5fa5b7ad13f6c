// DocsFetchTool implementation.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/url"
	"strings"

	"github.com/openai/openai-go"
)

const docsFetchToolName = "microsoft_docs_fetch"

// DocsFetchTool fetches a specific documentation page through the
// MCP server.
type DocsFetchTool struct {
	ctx ToolContext
}

func (t *DocsFetchTool) Name() string {
	return docsFetchToolName
}

func (t *DocsFetchTool) Definition() openai.ChatCompletionToolParam {
	return openai.ChatCompletionToolParam{
		Function: openai.FunctionDefinitionParam{
			Name:        docsFetchToolName,
			Description: openai.String("Fetch the full content of a Microsoft Learn documentation page by URL"),
			Parameters: openai.FunctionParameters{
				"type": "object",
				"properties": map[string]any{
					"url": map[string]any{
						"type":        "string",
						"description": "URL of the documentation page to fetch",
					},
				},
				"required": []string{"url"},
			},
		},
	}
}

func (t *DocsFetchTool) Execute(ctx context.Context, argText string) (string, error) {
	var args struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal([]byte(argText), &args); err != nil {
		return marshalToolResponse(docsFetchToolName, nil, err)
	}
	if args.URL == "" {
		return marshalToolResponse(docsFetchToolName, nil, errors.New("url is required"))
	}
	if err := validateDocURL(args.URL); err != nil {
		return marshalToolResponse(docsFetchToolName, nil, err)
	}
	if t.ctx.Verbose {
		log.Printf("[verbose] %s: url=%s", docsFetchToolName, args.URL)
	}

	content, err := callProvider(ctx, t.ctx, docsFetchToolName, map[string]any{"url": args.URL})
	if err != nil {
		return marshalToolResponse(docsFetchToolName, nil, err)
	}

	result := struct {
		URL     string `json:"url"`
		Content string `json:"content"`
	}{
		URL:     args.URL,
		Content: content,
	}
	return marshalToolResponse(docsFetchToolName, result, nil)
}

// validateDocURL rejects malformed or non-HTTP URLs before they reach
// the provider.
func validateDocURL(raw string) error {
	parsed, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}
	scheme := strings.ToLower(parsed.Scheme)
	if scheme != "http" && scheme != "https" {
		return fmt.Errorf("invalid url scheme: %q", parsed.Scheme)
	}
	if parsed.Host == "" {
		return errors.New("url host is required")
	}
	return nil
}
