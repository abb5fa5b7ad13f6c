// Interactive terminal mode for user interaction.
package main

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/openai/openai-go"

	"github.com/minhyannv/learn-mcp-agent/pkg/mcp"
)

// runInteractiveMode runs an interactive chat session.
func runInteractiveMode(app *App) {
	if app.Config.Verbose {
		log.Printf("[verbose] interactive mode start: deployment=%s max_tool_calls=%d", app.Config.Deployment, app.Config.MaxToolCalls)
	}

	// Initialize conversation history with system message
	messages := []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage(app.SystemPrompt),
	}

	scanner := bufio.NewScanner(os.Stdin)

	printWelcome(os.Stdout, app.MCP.Tools())

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}

		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}

		// Handle commands
		if strings.HasPrefix(input, "/") {
			handled, quit := handleCommand(input, &messages, app.SystemPrompt, os.Stdout)
			if quit {
				break
			}
			if handled {
				continue
			}
		}

		// Add user message to history
		messages = append(messages, openai.UserMessage(input))

		// Run the tool-calling loop for this turn
		updatedMessages, content, err := runChatLoop(
			app.Ctx,
			app.Model,
			openai.ChatModel(app.Config.Deployment),
			messages,
			app.Tools,
			app.Config.MaxToolCalls,
			os.Stdout,
			app.Config.Verbose,
		)
		if err != nil {
			fmt.Printf("Error: %v\n\n", err)
			// Remove the user message on error to keep history consistent
			messages = messages[:len(messages)-1]
			continue
		}

		messages = updatedMessages
		fmt.Println(content)
		fmt.Println()
	}

	if err := scanner.Err(); err != nil {
		log.Printf("Error reading input: %v", err)
	}
}

// printWelcome prints the welcome banner and the tools advertised by the
// MCP server.
func printWelcome(out io.Writer, tools []mcp.ToolInfo) {
	_, _ = fmt.Fprintln(out, "=== Azure AI Foundry + Microsoft Learn MCP Agent ===")
	_, _ = fmt.Fprintln(out, "Type your message and press Enter. Commands:")
	_, _ = fmt.Fprintln(out, "  /help  - Show this help message")
	_, _ = fmt.Fprintln(out, "  /clear - Clear conversation history")
	_, _ = fmt.Fprintln(out, "  /quit  - Exit the program")
	_, _ = fmt.Fprintln(out)
	if len(tools) > 0 {
		_, _ = fmt.Fprintln(out, "Available MCP tools:")
		for _, tool := range tools {
			_, _ = fmt.Fprintf(out, "  - %s: %s\n", tool.Name, truncateDescription(tool.Description, 60))
		}
		_, _ = fmt.Fprintln(out)
	}
}

// handleCommand processes interactive commands. It returns whether the
// command was handled and whether the session should end.
func handleCommand(input string, messages *[]openai.ChatCompletionMessageParamUnion, systemPrompt string, out io.Writer) (handled bool, quit bool) {
	cmd := strings.ToLower(input)
	switch cmd {
	case "/help", "/h":
		printHelp(out)
		return true, false
	case "/clear", "/c":
		*messages = []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
		}
		_, _ = fmt.Fprintln(out, "Conversation history cleared.")
		_, _ = fmt.Fprintln(out)
		return true, false
	case "/quit", "/exit", "/q":
		_, _ = fmt.Fprintln(out, "Goodbye!")
		return true, true
	default:
		_, _ = fmt.Fprintf(out, "Unknown command: %s. Type /help for available commands.\n", input)
		_, _ = fmt.Fprintln(out)
		return true, false
	}
}

// printHelp prints the help message.
func printHelp(out io.Writer) {
	_, _ = fmt.Fprintln(out, "Commands:")
	_, _ = fmt.Fprintln(out, "  /help  - Show this help message")
	_, _ = fmt.Fprintln(out, "  /clear - Clear conversation history")
	_, _ = fmt.Fprintln(out, "  /quit  - Exit the program")
	_, _ = fmt.Fprintln(out, "  /exit  - Exit the program")
	_, _ = fmt.Fprintln(out)
}

// truncateDescription shortens long tool descriptions for the banner.
func truncateDescription(s string, limit int) string {
	s = strings.TrimSpace(strings.ReplaceAll(s, "\n", " "))
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "..."
}
