// Tests for interactive command handling.
package main

import (
	"strings"
	"testing"

	"github.com/openai/openai-go"

	"github.com/minhyannv/learn-mcp-agent/pkg/mcp"
)

// TestHandleCommandClear verifies /clear resets history to the system
// prompt only.
func TestHandleCommandClear(t *testing.T) {
	messages := []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage("system"),
		openai.UserMessage("hello"),
		openai.AssistantMessage("hi"),
	}

	var out strings.Builder
	handled, quit := handleCommand("/clear", &messages, "system", &out)
	if !handled || quit {
		t.Fatalf("unexpected command result: handled=%v quit=%v", handled, quit)
	}
	if len(messages) != 1 {
		t.Fatalf("expected history reset to 1 message, got %d", len(messages))
	}
	if !strings.Contains(out.String(), "cleared") {
		t.Fatalf("missing confirmation: %q", out.String())
	}
}

// TestHandleCommandQuit verifies /quit and /exit end the session.
func TestHandleCommandQuit(t *testing.T) {
	for _, cmd := range []string{"/quit", "/exit", "/q"} {
		messages := []openai.ChatCompletionMessageParamUnion{}
		var out strings.Builder
		handled, quit := handleCommand(cmd, &messages, "system", &out)
		if !handled || !quit {
			t.Fatalf("%s: handled=%v quit=%v", cmd, handled, quit)
		}
	}
}

// TestHandleCommandUnknown verifies unknown commands are reported but do
// not end the session.
func TestHandleCommandUnknown(t *testing.T) {
	messages := []openai.ChatCompletionMessageParamUnion{}
	var out strings.Builder
	handled, quit := handleCommand("/bogus", &messages, "system", &out)
	if !handled || quit {
		t.Fatalf("unexpected command result: handled=%v quit=%v", handled, quit)
	}
	if !strings.Contains(out.String(), "Unknown command") {
		t.Fatalf("missing unknown-command message: %q", out.String())
	}
}

// TestPrintWelcomeListsTools verifies the banner shows advertised tools
// with truncated descriptions.
func TestPrintWelcomeListsTools(t *testing.T) {
	var out strings.Builder
	printWelcome(&out, []mcp.ToolInfo{
		{Name: "microsoft_docs_search", Description: strings.Repeat("long description ", 20)},
	})
	banner := out.String()
	if !strings.Contains(banner, "microsoft_docs_search") {
		t.Fatalf("banner missing tool name: %q", banner)
	}
	if !strings.Contains(banner, "...") {
		t.Fatalf("long description not truncated: %q", banner)
	}
}
