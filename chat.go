// The tool-calling conversation loop.
package main

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/openai/openai-go"
)

// previewLimit caps tool output echoed in verbose logs.
const previewLimit = 500

// runChatLoop drives one user turn: it calls the model with the full
// history, executes any requested tools sequentially in the order
// received, feeds each result back, and repeats until the model answers
// with plain text. Every tool call gets exactly one tool message, with
// the matching call ID, before the next model request.
//
// The loop is capped at maxToolCalls model rounds; a model that is still
// requesting tools at the cap fails the turn with ErrToolLoopExceeded.
// On error the original messages slice is returned unchanged so the
// caller can keep history consistent.
func runChatLoop(ctx context.Context, client completer, model openai.ChatModel, messages []openai.ChatCompletionMessageParamUnion, tools *Tools, maxToolCalls int, progress io.Writer, verbose bool) ([]openai.ChatCompletionMessageParamUnion, string, error) {
	if maxToolCalls <= 0 {
		maxToolCalls = 1
	}
	if progress == nil {
		progress = io.Discard
	}

	currentMessages := messages

	for round := 0; round < maxToolCalls; round++ {
		if verbose {
			log.Printf("[verbose] chat: round %d/%d, sending %d messages", round+1, maxToolCalls, len(currentMessages))
		}

		message, err := client.Complete(ctx, openai.ChatCompletionNewParams{
			Model:    model,
			Messages: currentMessages,
			Tools:    tools.Definitions(),
		})
		if err != nil {
			return messages, "", err
		}

		if len(message.ToolCalls) == 0 {
			if verbose {
				log.Printf("[verbose] chat: final answer after %d round(s), %d bytes", round+1, len(message.Content))
			}
			currentMessages = append(currentMessages, message.ToParam())
			return currentMessages, message.Content, nil
		}

		if verbose {
			log.Printf("[verbose] chat: round %d: %d tool call(s) requested", round+1, len(message.ToolCalls))
		}
		currentMessages = append(currentMessages, message.ToParam())
		for _, call := range message.ToolCalls {
			_, _ = fmt.Fprintf(progress, "Calling tool: %s\n", call.Function.Name)
			if verbose {
				log.Printf("[verbose] chat: tool %s(id=%s) arguments: %s", call.Function.Name, call.ID, call.Function.Arguments)
			}

			output, err := tools.Execute(ctx, call)
			if err != nil {
				// Feed the failure to the model instead of aborting;
				// it can recover or explain.
				output = fmt.Sprintf(`{"ok":false,"error":%q}`, err.Error())
			}
			if verbose {
				log.Printf("[verbose] chat: tool %s output: %s", call.Function.Name, preview(output))
			}
			currentMessages = append(currentMessages, openai.ToolMessage(output, call.ID))
		}
	}

	return messages, "", fmt.Errorf("%w after %d rounds", ErrToolLoopExceeded, maxToolCalls)
}

// preview truncates long tool output for log lines.
func preview(s string) string {
	if len(s) <= previewLimit {
		return s
	}
	return s[:previewLimit] + "..."
}
